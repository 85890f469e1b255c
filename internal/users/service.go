package users

import (
	"errors"
	"strings"
	"unicode"

	"hotel-audit-pro/internal/apperror"
)

var (
	ErrInvalidCredentials = errors.New("users: invalid email or password")
	ErrAccountOnHold      = errors.New("users: account on hold")
)

// Input is the editable part of a user.
type Input struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Role       Role   `json:"role"`
	Department string `json:"department"`
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperror.NewValidation("Name is required")
	}
	switch in.Role {
	case "", RoleAdmin, RoleStaff:
	default:
		return apperror.NewValidation("Role must be admin or staff")
	}
	return nil
}

// Build creates a new active user.
func Build(id string, in Input) (User, error) {
	if err := in.validate(); err != nil {
		return User{}, err
	}
	role := in.Role
	if role == "" {
		role = RoleStaff
	}
	name := strings.TrimSpace(in.Name)
	return User{
		ID:         id,
		Name:       name,
		Email:      strings.TrimSpace(in.Email),
		Password:   in.Password,
		Role:       role,
		Avatar:     Initials(name),
		Department: strings.TrimSpace(in.Department),
		Status:     StatusActive,
	}, nil
}

// Apply edits u; id and status are kept. An empty password keeps the old one.
func Apply(u User, in Input) (User, error) {
	if err := in.validate(); err != nil {
		return User{}, err
	}
	u.Name = strings.TrimSpace(in.Name)
	u.Email = strings.TrimSpace(in.Email)
	if in.Password != "" {
		u.Password = in.Password
	}
	if in.Role != "" {
		u.Role = in.Role
	}
	u.Avatar = Initials(u.Name)
	u.Department = strings.TrimSpace(in.Department)
	return u, nil
}

// Initials returns up to two upper-case initials, one per word.
func Initials(name string) string {
	var out []rune
	for _, w := range strings.Fields(name) {
		out = append(out, unicode.ToUpper([]rune(w)[0]))
		if len(out) == 2 {
			break
		}
	}
	return string(out)
}

func Find(list []User, id string) (User, bool) {
	for _, u := range list {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// FindByEmail matches case-insensitively.
func FindByEmail(list []User, email string) (User, bool) {
	email = strings.TrimSpace(email)
	if email == "" {
		return User{}, false
	}
	for _, u := range list {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return User{}, false
}

// Authenticate checks the plain-text password and that the account is active.
func Authenticate(list []User, email, password string) (User, error) {
	u, ok := FindByEmail(list, email)
	if !ok || u.Password != password {
		return User{}, ErrInvalidCredentials
	}
	if !u.Active() {
		return User{}, ErrAccountOnHold
	}
	return u, nil
}

func ToggleStatus(u User) User {
	if u.Status == StatusOnHold {
		u.Status = StatusActive
	} else {
		u.Status = StatusOnHold
	}
	return u
}

// Resolve returns the display name for ref: the current name of the
// referenced user when it still exists, otherwise the captured name.
func Resolve(ref *AssigneeRef, list []User) string {
	if ref.IsZero() {
		return ""
	}
	if ref.UserID != "" {
		if u, ok := Find(list, ref.UserID); ok {
			return u.Name
		}
	}
	return ref.Name
}

// Matches reports whether ref points at u, by id or by display name.
func Matches(ref *AssigneeRef, u User) bool {
	if ref.IsZero() {
		return false
	}
	if ref.UserID != "" {
		return ref.UserID == u.ID
	}
	return ref.Name == u.Name
}

// Normalize links a free-text name to a user when one has that exact name.
func Normalize(ref *AssigneeRef, list []User) *AssigneeRef {
	if ref.IsZero() {
		return nil
	}
	out := *ref
	out.Name = strings.TrimSpace(out.Name)
	if out.UserID != "" {
		if u, ok := Find(list, out.UserID); ok {
			out.Name = u.Name
		}
		return &out
	}
	for _, u := range list {
		if u.Name == out.Name {
			out.UserID = u.ID
			break
		}
	}
	return &out
}
