package users

import (
	"errors"
	"net/http"
	"testing"

	"hotel-audit-pro/internal/apperror"
)

var staff = []User{
	{ID: "u1", Name: "Jane Doe", Email: "admin@hotel.com", Password: "password123", Role: RoleAdmin, Status: StatusActive},
	{ID: "u2", Name: "Bob Smith", Email: "bob@hotel.com", Password: "password123", Role: RoleStaff, Status: StatusActive},
	{ID: "u4", Name: "Charlie Brown", Email: "charlie@hotel.com", Password: "password123", Role: RoleStaff, Status: StatusOnHold},
}

func TestInitials(t *testing.T) {
	tests := map[string]string{
		"Jane Doe":           "JD",
		"alice":              "A",
		"Mary Ann Robertson": "MA",
		"  ":                 "",
		"élodie martin":      "ÉM",
	}
	for in, want := range tests {
		if got := Initials(in); got != want {
			t.Fatalf("Initials(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestAuthenticate(t *testing.T) {
	u, err := Authenticate(staff, "  ADMIN@hotel.com ", "password123")
	if err != nil || u.ID != "u1" {
		t.Fatalf("expected u1, got %+v %v", u, err)
	}
	if _, err := Authenticate(staff, "admin@hotel.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := Authenticate(staff, "nobody@hotel.com", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := Authenticate(staff, "charlie@hotel.com", "password123"); !errors.Is(err, ErrAccountOnHold) {
		t.Fatalf("expected on-hold rejection, got %v", err)
	}
}

func TestBuildAndApply(t *testing.T) {
	if _, err := Build("u9", Input{Name: " "}); !apperror.Is(err, http.StatusUnprocessableEntity) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := Build("u9", Input{Name: "X", Role: "owner"}); err == nil {
		t.Fatalf("expected role validation error")
	}

	u, err := Build("u9", Input{Name: " new hire ", Email: "n@hotel.com", Department: "Kitchen"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if u.Avatar != "NH" || u.Status != StatusActive || u.Role != RoleStaff || u.Name != "new hire" {
		t.Fatalf("unexpected user %+v", u)
	}

	u.Status = StatusOnHold
	edited, err := Apply(u, Input{Name: "Nina Hale", Email: "nina@hotel.com", Role: RoleAdmin})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if edited.ID != "u9" || edited.Status != StatusOnHold || edited.Avatar != "NH" || edited.Password != u.Password || !edited.IsAdmin() {
		t.Fatalf("unexpected edit %+v", edited)
	}
}

func TestToggleStatus(t *testing.T) {
	u := ToggleStatus(staff[1])
	if u.Status != StatusOnHold || u.Active() {
		t.Fatalf("expected on-hold")
	}
	if ToggleStatus(u).Status != StatusActive {
		t.Fatalf("expected active")
	}
}

func TestResolve_FollowsRenames(t *testing.T) {
	list := []User{{ID: "u3", Name: "Alice Johnson-Smith"}}

	if got := Resolve(&AssigneeRef{UserID: "u3", Name: "Alice Johnson"}, list); got != "Alice Johnson-Smith" {
		t.Fatalf("expected current name, got %q", got)
	}
	if got := Resolve(&AssigneeRef{UserID: "gone", Name: "Former Staff"}, list); got != "Former Staff" {
		t.Fatalf("expected captured name, got %q", got)
	}
	if got := Resolve(&AssigneeRef{Name: "Exterminator Co."}, list); got != "Exterminator Co." {
		t.Fatalf("expected free text, got %q", got)
	}
	if got := Resolve(nil, list); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestNormalize_LinksKnownNames(t *testing.T) {
	ref := Normalize(&AssigneeRef{Name: " Bob Smith "}, staff)
	if ref.UserID != "u2" || ref.Name != "Bob Smith" {
		t.Fatalf("unexpected ref %+v", ref)
	}
	if Normalize(&AssigneeRef{}, staff) != nil {
		t.Fatalf("empty ref normalizes to nil")
	}
	if !Matches(ref, staff[1]) || Matches(ref, staff[0]) {
		t.Fatalf("matches mismatch")
	}
}
