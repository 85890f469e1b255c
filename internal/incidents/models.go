package incidents

import (
	"time"

	"hotel-audit-pro/internal/users"
)

type Status string

const (
	StatusOpen       Status = "Open"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
	StatusVerified   Status = "Verified"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusVerified:
		return true
	default:
		return false
	}
}

// Closed reports whether the incident belongs in the report archive.
func (s Status) Closed() bool { return s == StatusResolved || s == StatusVerified }

type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

// Rank orders priorities from 1 (Low) to 4 (Critical); unknown values rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityCritical:
		return 4
	default:
		return 0
	}
}

type Type string

const (
	TypeEmergency Type = "Emergency"
	TypeDailyLog  Type = "Daily Log"
)

func (t Type) Valid() bool { return t == TypeEmergency || t == TypeDailyLog }

// OrDefault reads a missing type as Emergency, the type of records written
// before daily logs existed.
func (t Type) OrDefault() Type {
	if t == "" {
		return TypeEmergency
	}
	return t
}

// Activity actions.
const (
	ActionReported     = "Reported"
	ActionStatusUpdate = "Status Update"
)

// Activity is one history entry.
//
// Invariants:
// - Entries are never modified or removed.
// - History is stored newest first.
type Activity struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	User      string    `json:"user"`
	Details   string    `json:"details,omitempty"`
}

type Incident struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Department  string             `json:"department"`
	Assignee    *users.AssigneeRef `json:"assignee,omitempty"`
	Status      Status             `json:"status"`
	Priority    Priority           `json:"priority"`
	Type        Type               `json:"type"`
	ReportedAt  time.Time          `json:"reported_at"`
	Photo       string             `json:"photo,omitempty"`
	History     []Activity         `json:"history"`
}

func (i Incident) RecordID() string { return i.ID }
