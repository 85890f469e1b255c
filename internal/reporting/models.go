package reporting

import (
	"hotel-audit-pro/internal/analytics"
	"hotel-audit-pro/internal/audits"
	"hotel-audit-pro/internal/incidents"
	"hotel-audit-pro/internal/users"
)

// ArchiveRequest scopes a report archive to one viewer.
// Viewer is required; Query is a case-insensitive title search.
type ArchiveRequest struct {
	Viewer users.User `json:"-"`
	Query  string     `json:"q,omitempty"`
}

type AuditReport struct {
	audits.Audit
	Score     int `json:"score"`
	Inspected int `json:"inspected"`
}

type IncidentReport struct {
	incidents.Incident
	AssigneeName string `json:"assignee_name"`
}

// Dashboard is the landing view: counters for everyone, pending audits
// narrowed to what the viewer works on.
type Dashboard struct {
	analytics.Summary
	Pending []audits.Audit  `json:"pending"`
	Trend   analytics.Trend `json:"trend"`
}

// AnalyticsView is the admin analytics screen for one department filter.
type AnalyticsView struct {
	Department string                 `json:"department"`
	Heatmap    []analytics.HeatmapRow `json:"heatmap"`
	Failures   []analytics.Failure    `json:"top_failures"`
	Trend      analytics.Trend        `json:"trend"`
	Team       []analytics.Progress   `json:"team"`
}
