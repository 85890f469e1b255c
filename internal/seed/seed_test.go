package seed

import (
	"testing"

	"hotel-audit-pro/internal/users"
)

func TestSeed_IDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	check := func(id string) {
		if id == "" || seen[id] {
			t.Fatalf("duplicate or empty id %q", id)
		}
		seen[id] = true
	}
	for _, u := range Users() {
		check(u.ID)
	}
	for _, a := range Audits() {
		check(a.ID)
		for _, it := range a.Items {
			check(it.ID)
		}
	}
	for _, i := range Incidents() {
		check(i.ID)
	}
	for _, s := range SOPs() {
		check(s.ID)
	}
	for _, tpl := range Templates() {
		check(tpl.ID)
	}
	for _, c := range Collections() {
		check(c.ID)
	}
}

func TestSeed_AssigneesLinkToUsers(t *testing.T) {
	list := Users()
	for _, tpl := range Templates() {
		for _, it := range tpl.Items {
			if _, ok := users.Find(list, it.Assignee.UserID); !ok {
				t.Fatalf("template %s assignee %+v is not a user", tpl.ID, it.Assignee)
			}
		}
	}
}

func TestSeed_ReturnsFreshCopies(t *testing.T) {
	a := Audits()
	a[0].Items[0].Assignee.Name = "changed"
	if Audits()[0].Items[0].Assignee.Name != "Alice Johnson" {
		t.Fatalf("seed data must not be shared")
	}
}
