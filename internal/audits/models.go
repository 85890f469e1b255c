package audits

import (
	"time"

	"hotel-audit-pro/internal/users"
)

type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// rank orders statuses along the only allowed direction of travel.
func (s Status) rank() int {
	switch s {
	case StatusInProgress:
		return 1
	case StatusCompleted:
		return 2
	default:
		return 0
	}
}

// Result is the outcome of one inspection item. The zero value means the
// item has not been inspected yet.
type Result string

const (
	ResultNone Result = ""
	ResultPass Result = "Pass"
	ResultFail Result = "Fail"
	ResultNA   Result = "N/A"
)

func (r Result) Valid() bool {
	switch r {
	case ResultNone, ResultPass, ResultFail, ResultNA:
		return true
	default:
		return false
	}
}

// Scored reports whether r counts towards pass rates.
func (r Result) Scored() bool { return r == ResultPass || r == ResultFail }

type Item struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Result      Result   `json:"result,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	// Photo is an inline data URL or an external link.
	Photo    string             `json:"photo,omitempty"`
	Notes    string             `json:"notes"`
	Assignee *users.AssigneeRef `json:"assignee,omitempty"`
}

type Audit struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Department  string     `json:"department"`
	HotelName   string     `json:"hotel_name,omitempty"`
	Status      Status     `json:"status"`
	DueDate     time.Time  `json:"due_date"`
	Items       []Item     `json:"items"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func (a Audit) RecordID() string { return a.ID }

type TemplateItem struct {
	Description string             `json:"description"`
	Assignee    *users.AssigneeRef `json:"assignee,omitempty"`
}

// Template is a reusable checklist; starting it copies the items into a new audit.
type Template struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Department string         `json:"department"`
	Items      []TemplateItem `json:"items"`
}

func (t Template) RecordID() string { return t.ID }
