package audits

import (
	"testing"

	"hotel-audit-pro/internal/users"
)

func TestVisibleTo(t *testing.T) {
	admin := users.User{ID: "u1", Name: "Jane Doe", Role: users.RoleAdmin}
	bob := users.User{ID: "u2", Name: "Bob Smith", Role: users.RoleStaff, Department: "Kitchen"}

	assignedToAlice := Audit{Items: []Item{{Assignee: &users.AssigneeRef{UserID: "u3", Name: "Alice Johnson"}}}}
	hasOpenItem := Audit{Items: []Item{{Assignee: &users.AssigneeRef{UserID: "u3", Name: "Alice Johnson"}}, {}}}
	assignedToBobByName := Audit{Items: []Item{{Assignee: &users.AssigneeRef{Name: "Bob Smith"}}}}

	if !VisibleTo(assignedToAlice, admin) {
		t.Fatalf("admins see everything")
	}
	if VisibleTo(assignedToAlice, bob) {
		t.Fatalf("bob must not see alice-only audits")
	}
	if !VisibleTo(hasOpenItem, bob) || !VisibleTo(assignedToBobByName, bob) {
		t.Fatalf("bob sees unassigned and own items")
	}
}

func TestArchivedFor(t *testing.T) {
	bob := users.User{ID: "u2", Name: "Bob Smith", Role: users.RoleStaff, Department: "Kitchen"}

	kitchen := Audit{Status: StatusCompleted, Department: "Kitchen"}
	lobby := Audit{Status: StatusCompleted, Department: "Front Office", Items: []Item{{Assignee: &users.AssigneeRef{UserID: "u2"}}}}
	other := Audit{Status: StatusCompleted, Department: "Front Office"}
	pending := Audit{Status: StatusPending, Department: "Kitchen"}

	if !ArchivedFor(kitchen, bob) || !ArchivedFor(lobby, bob) {
		t.Fatalf("department and assignment grant archive access")
	}
	if ArchivedFor(other, bob) || ArchivedFor(pending, bob) {
		t.Fatalf("unexpected archive access")
	}
}

func TestFilter(t *testing.T) {
	list := []Audit{
		{ID: "1", Title: "Morning Kitchen Prep", Status: StatusPending},
		{ID: "2", Title: "Evening Kitchen Close", Status: StatusCompleted},
		{ID: "3", Title: "Lobby Check", Status: StatusCompleted},
	}
	got := Filter{Status: StatusCompleted, Query: "KITCHEN"}.Apply(list)
	if len(got) != 1 || got[0].ID != "2" {
		t.Fatalf("unexpected filter result %+v", got)
	}
	if len(Filter{}.Apply(list)) != 3 {
		t.Fatalf("empty filter keeps all")
	}
}
