package incidents

import (
	"fmt"
	"testing"
	"time"

	"hotel-audit-pro/internal/users"
)

func newTestService() *Service {
	n := 0
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return NewService(func(prefix string) string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}).WithClock(func() time.Time { return now })
}

func TestReport_SingleReportedEntry(t *testing.T) {
	svc := newTestService()

	inc, err := svc.Report(ReportInput{Title: " Broken ice machine ", Department: "Kitchen"}, "Bob Smith")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if inc.Status != StatusOpen || inc.Type != TypeEmergency || inc.Priority != PriorityHigh {
		t.Fatalf("unexpected defaults %+v", inc)
	}
	if len(inc.History) != 1 || inc.History[0].Action != ActionReported || inc.History[0].User != "Bob Smith" {
		t.Fatalf("unexpected history %+v", inc.History)
	}
	if inc.Title != "Broken ice machine" || inc.ID == "" || inc.History[0].ID == inc.ID {
		t.Fatalf("unexpected incident %+v", inc)
	}
}

func TestReport_Defaults(t *testing.T) {
	svc := newTestService()

	log, err := svc.Report(ReportInput{Title: "Drip", Type: TypeDailyLog}, "")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if log.Priority != PriorityMedium || log.History[0].User != "Unknown" {
		t.Fatalf("unexpected daily log %+v", log)
	}

	if _, err := svc.Report(ReportInput{Title: " "}, "x"); err == nil {
		t.Fatalf("title is required")
	}
	if _, err := svc.Report(ReportInput{Title: "x", Priority: "Urgent"}, "x"); err == nil {
		t.Fatalf("unknown priority must be rejected")
	}
	if _, err := svc.Report(ReportInput{Title: "x", Type: "Rumour"}, "x"); err == nil {
		t.Fatalf("unknown type must be rejected")
	}
}

func TestUpdateStatus_PrependsExactlyOneEntry(t *testing.T) {
	svc := newTestService()
	inc, _ := svc.Report(ReportInput{Title: "Pest sighting"}, "Jane Doe")
	original := inc.History[0]

	next, err := svc.UpdateStatus(inc, StatusInProgress, "Exterminator contacted", "Jane Doe")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(next.History) != 2 || next.Status != StatusInProgress {
		t.Fatalf("unexpected incident %+v", next)
	}
	head := next.History[0]
	if head.Action != ActionStatusUpdate || head.Details != "Changed status to In Progress. Note: Exterminator contacted" {
		t.Fatalf("unexpected entry %+v", head)
	}
	if next.History[1] != original {
		t.Fatalf("earlier entries must be unchanged")
	}
	if len(inc.History) != 1 {
		t.Fatalf("input history must not be mutated")
	}

	if _, err := svc.UpdateStatus(next, StatusInProgress, "", "Jane Doe"); err == nil {
		t.Fatalf("same status must be rejected")
	}
	if _, err := svc.UpdateStatus(next, "Closed", "", "Jane Doe"); err == nil {
		t.Fatalf("unknown status must be rejected")
	}

	plain, err := svc.UpdateStatus(next, StatusResolved, "", "")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if plain.History[0].Details != "Changed status to Resolved." || plain.History[0].User != "Unknown" {
		t.Fatalf("unexpected entry %+v", plain.History[0])
	}
}

func TestPriorityRank(t *testing.T) {
	if PriorityLow.Rank() != 1 || PriorityCritical.Rank() != 4 || Priority("x").Rank() != 0 {
		t.Fatalf("unexpected ranks")
	}
}

func TestList_FiltersAndSorts(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 8, d, 8, 0, 0, 0, time.UTC) }
	people := []users.User{{ID: "u3", Name: "Alice Johnson"}}
	list := []Incident{
		{ID: "a", Title: "Pest", Type: TypeEmergency, Department: "Kitchen", Status: StatusInProgress, Priority: PriorityCritical, ReportedAt: day(14)},
		{ID: "b", Title: "Leak", Type: TypeDailyLog, Department: "Maintenance", Status: StatusOpen, Priority: PriorityMedium, ReportedAt: day(15), Assignee: &users.AssigneeRef{UserID: "u3", Name: "Alice J."}},
		{ID: "c", Title: "Stain", Type: TypeDailyLog, Department: "Housekeeping", Status: StatusResolved, Priority: PriorityLow, ReportedAt: day(13)},
		{ID: "d", Title: "Leaking pipe", Type: TypeDailyLog, Department: "Maintenance", Status: StatusOpen, Priority: PriorityMedium, ReportedAt: day(12)},
	}

	ids := func(in []Incident) string {
		s := ""
		for _, i := range in {
			s += i.ID
		}
		return s
	}

	tests := []struct {
		name string
		q    Query
		want string
	}{
		{name: "default newest first", q: Query{}, want: "bacd"},
		{name: "oldest first", q: Query{Sort: SortDateAsc}, want: "dcab"},
		{name: "priority desc stable", q: Query{Sort: SortPriorityDesc}, want: "abdc"},
		{name: "priority asc stable", q: Query{Sort: SortPriorityAsc}, want: "cbda"},
		{name: "type", q: Query{Type: TypeDailyLog}, want: "bcd"},
		{name: "all is a wildcard", q: Query{Department: "All", Status: "All"}, want: "bacd"},
		{name: "department and status", q: Query{Department: "Maintenance", Status: StatusOpen}, want: "bd"},
		{name: "assignee resolves current name", q: Query{Assignee: "Alice Johnson"}, want: "b"},
		{name: "search", q: Query{Search: "leak"}, want: "bd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ids(List(list, tt.q, people)); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}

	if got := Assignees(list, people); len(got) != 1 || got[0] != "Alice Johnson" {
		t.Fatalf("unexpected assignees %v", got)
	}
}

func TestList_UntypedCountsAsEmergency(t *testing.T) {
	list := []Incident{
		{ID: "old", Title: "Flooded basement", Status: StatusOpen},
		{ID: "log", Title: "Lift noise", Type: TypeDailyLog, Status: StatusOpen},
	}

	got := List(list, Query{Type: TypeEmergency}, nil)
	if len(got) != 1 || got[0].ID != "old" {
		t.Fatalf("expected untyped record under Emergency, got %+v", got)
	}
	if got := List(list, Query{Type: TypeDailyLog}, nil); len(got) != 1 || got[0].ID != "log" {
		t.Fatalf("expected only the daily log, got %+v", got)
	}
}

func TestArchivedFor(t *testing.T) {
	bob := users.User{ID: "u2", Name: "Bob Smith", Department: "Kitchen", Role: users.RoleStaff}
	admin := users.User{ID: "u1", Role: users.RoleAdmin}

	kitchen := Incident{Status: StatusResolved, Department: "Kitchen"}
	assigned := Incident{Status: StatusVerified, Department: "Maintenance", Assignee: &users.AssigneeRef{UserID: "u2"}}
	other := Incident{Status: StatusResolved, Department: "Maintenance"}
	open := Incident{Status: StatusOpen, Department: "Kitchen"}

	if !ArchivedFor(kitchen, bob) || !ArchivedFor(assigned, bob) || ArchivedFor(other, bob) || ArchivedFor(open, bob) {
		t.Fatalf("unexpected staff archive visibility")
	}
	if !ArchivedFor(other, admin) || ArchivedFor(open, admin) {
		t.Fatalf("unexpected admin archive visibility")
	}
}
