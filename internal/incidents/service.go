package incidents

import (
	"fmt"
	"strings"
	"time"

	"hotel-audit-pro/internal/apperror"
	"hotel-audit-pro/internal/users"
)

// IDFunc mints a fresh identifier with the given prefix.
type IDFunc func(prefix string) string

// Service creates incidents and appends to their history.
type Service struct {
	newID IDFunc
	clock func() time.Time
}

func NewService(newID IDFunc) *Service {
	return &Service{newID: newID, clock: time.Now}
}

// WithClock overrides the time source, for tests.
func (s *Service) WithClock(clock func() time.Time) *Service {
	s.clock = clock
	return s
}

type ReportInput struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Department  string             `json:"department"`
	Assignee    *users.AssigneeRef `json:"assignee,omitempty"`
	Priority    Priority           `json:"priority"`
	Type        Type               `json:"type"`
	Photo       string             `json:"photo,omitempty"`
}

// Report opens a new incident with a single "Reported" history entry.
// Type defaults to Emergency; priority defaults to High for emergencies
// and Medium for daily logs. reporter is "Unknown" when empty.
func (s *Service) Report(in ReportInput, reporter string) (Incident, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Incident{}, apperror.NewValidation("Title is required.")
	}
	typ := in.Type.OrDefault()
	if !typ.Valid() {
		return Incident{}, apperror.NewValidation("Type must be Emergency or Daily Log.")
	}
	prio := in.Priority
	if prio == "" {
		prio = PriorityMedium
		if typ == TypeEmergency {
			prio = PriorityHigh
		}
	}
	if prio.Rank() == 0 {
		return Incident{}, apperror.NewValidation("Priority must be Low, Medium, High or Critical.")
	}
	if strings.TrimSpace(reporter) == "" {
		reporter = "Unknown"
	}

	now := s.clock().UTC()
	var ref *users.AssigneeRef
	if !in.Assignee.IsZero() {
		a := *in.Assignee
		ref = &a
	}
	return Incident{
		ID:          s.newID("inc"),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Department:  strings.TrimSpace(in.Department),
		Assignee:    ref,
		Status:      StatusOpen,
		Priority:    prio,
		Type:        typ,
		ReportedAt:  now,
		Photo:       in.Photo,
		History: []Activity{{
			ID:        s.newID("log"),
			Timestamp: now,
			Action:    ActionReported,
			User:      reporter,
			Details:   "Initial report created.",
		}},
	}, nil
}

// UpdateStatus moves inc to next and prepends exactly one "Status Update"
// entry. Earlier entries are left untouched. Setting the current status again
// is rejected.
func (s *Service) UpdateStatus(inc Incident, next Status, comment, actor string) (Incident, error) {
	if !next.Valid() {
		return Incident{}, apperror.NewValidation("Unknown incident status.")
	}
	if next == inc.Status {
		return Incident{}, apperror.NewValidation(fmt.Sprintf("Incident is already %s.", next))
	}
	if strings.TrimSpace(actor) == "" {
		actor = "Unknown"
	}

	details := fmt.Sprintf("Changed status to %s.", next)
	if c := strings.TrimSpace(comment); c != "" {
		details += " Note: " + c
	}
	entry := Activity{
		ID:        s.newID("log"),
		Timestamp: s.clock().UTC(),
		Action:    ActionStatusUpdate,
		User:      actor,
		Details:   details,
	}

	history := make([]Activity, 0, len(inc.History)+1)
	history = append(history, entry)
	history = append(history, inc.History...)

	inc.Status = next
	inc.History = history
	return inc, nil
}

func Find(list []Incident, id string) (Incident, bool) {
	for _, i := range list {
		if i.ID == id {
			return i, true
		}
	}
	return Incident{}, false
}
