package audits

import (
	"strings"

	"hotel-audit-pro/internal/users"
)

// VisibleTo reports whether viewer sees a on the dashboard and audit list.
// Admins see everything; staff see audits with an item assigned to them or
// any unassigned item.
func VisibleTo(a Audit, viewer users.User) bool {
	if viewer.IsAdmin() {
		return true
	}
	for _, it := range a.Items {
		if it.Assignee.IsZero() || users.Matches(it.Assignee, viewer) {
			return true
		}
	}
	return false
}

// ArchivedFor reports whether a completed audit belongs in viewer's report
// archive: admins see all, staff see their department or their assignments.
func ArchivedFor(a Audit, viewer users.User) bool {
	if a.Status != StatusCompleted {
		return false
	}
	if viewer.IsAdmin() {
		return true
	}
	if viewer.Department != "" && a.Department == viewer.Department {
		return true
	}
	for _, it := range a.Items {
		if users.Matches(it.Assignee, viewer) {
			return true
		}
	}
	return false
}

// Filter narrows a list by status (empty = any) and a case-insensitive title search.
type Filter struct {
	Status Status
	Query  string
}

func (f Filter) Apply(list []Audit) []Audit {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]Audit, 0, len(list))
	for _, a := range list {
		if f.Status != "" && a.Status != f.Status {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(a.Title), q) {
			continue
		}
		out = append(out, a)
	}
	return out
}
