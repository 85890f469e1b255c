package users

type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

type Status string

const (
	StatusActive Status = "active"
	StatusOnHold Status = "on-hold"
)

// User is a member of the hotel staff. The user list is the only source of
// truth for login and assignee names.
//
// Password is stored and compared as plain text; the tool is an internal demo
// and does not claim authentication security.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password,omitempty"`
	Role       Role   `json:"role"`
	Avatar     string `json:"avatar"`
	Department string `json:"department,omitempty"`
	Status     Status `json:"status"`
}

func (u User) RecordID() string { return u.ID }

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// Active reports whether the user may sign in. Records written before
// statuses existed count as active.
func (u User) Active() bool { return u.Status != StatusOnHold }

// Public strips the password for API responses.
func (u User) Public() User {
	u.Password = ""
	return u
}

// AssigneeRef points at the person responsible for an item or incident.
// UserID is set when the assignee is a known user; Name is the display name
// captured at assignment and is used for free-text assignees.
type AssigneeRef struct {
	UserID string `json:"user_id,omitempty"`
	Name   string `json:"name"`
}

func (a *AssigneeRef) IsZero() bool {
	return a == nil || (a.UserID == "" && a.Name == "")
}

// RefFor builds a reference that tracks the user's future renames.
func RefFor(u User) *AssigneeRef {
	return &AssigneeRef{UserID: u.ID, Name: u.Name}
}
