package incidents

import (
	"slices"
	"strings"

	"hotel-audit-pro/internal/users"
)

// Sort orders for List.
const (
	SortDateDesc     = "date-desc"
	SortDateAsc      = "date-asc"
	SortPriorityDesc = "priority-desc"
	SortPriorityAsc  = "priority-asc"
)

// Query filters and sorts the incident list. Empty fields (or "All") match everything.
type Query struct {
	Type       Type
	Department string
	Status     Status
	// Assignee matches the resolved display name.
	Assignee string
	Search   string
	Sort     string
}

func all(v string) bool { return v == "" || v == "All" }

// List returns the matching incidents in the requested order (date-desc by
// default). Ties keep their original order.
func List(list []Incident, q Query, people []users.User) []Incident {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]Incident, 0, len(list))
	for _, inc := range list {
		if !all(string(q.Type)) && inc.Type.OrDefault() != q.Type {
			continue
		}
		if !all(q.Department) && inc.Department != q.Department {
			continue
		}
		if !all(string(q.Status)) && inc.Status != q.Status {
			continue
		}
		if !all(q.Assignee) && users.Resolve(inc.Assignee, people) != q.Assignee {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(inc.Title), search) {
			continue
		}
		out = append(out, inc)
	}

	var cmp func(a, b Incident) int
	switch q.Sort {
	case SortPriorityDesc:
		cmp = func(a, b Incident) int { return b.Priority.Rank() - a.Priority.Rank() }
	case SortPriorityAsc:
		cmp = func(a, b Incident) int { return a.Priority.Rank() - b.Priority.Rank() }
	case SortDateAsc:
		cmp = func(a, b Incident) int { return a.ReportedAt.Compare(b.ReportedAt) }
	default:
		cmp = func(a, b Incident) int { return b.ReportedAt.Compare(a.ReportedAt) }
	}
	slices.SortStableFunc(out, cmp)
	return out
}

// ArchivedFor reports whether a closed incident belongs in viewer's report
// archive: admins see all, staff see their department or their assignments.
func ArchivedFor(inc Incident, viewer users.User) bool {
	if !inc.Status.Closed() {
		return false
	}
	if viewer.IsAdmin() {
		return true
	}
	if viewer.Department != "" && inc.Department == viewer.Department {
		return true
	}
	return users.Matches(inc.Assignee, viewer)
}

// Assignees lists the distinct resolved assignee names, in first-seen order.
func Assignees(list []Incident, people []users.User) []string {
	seen := map[string]bool{}
	var out []string
	for _, inc := range list {
		name := users.Resolve(inc.Assignee, people)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
