package analytics

import "time"

// Weekdays is the fixed column order of the heatmap and the trend.
var Weekdays = [7]time.Weekday{
	time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
	time.Thursday, time.Friday, time.Saturday,
}

// Cell is one (row, weekday) bucket. Score is nil when Total is zero.
type Cell struct {
	Day    string `json:"day"`
	Passed int    `json:"passed"`
	Total  int    `json:"total"`
	Score  *int   `json:"score"`
}

type HeatmapRow struct {
	Key   string  `json:"key"`
	Cells [7]Cell `json:"cells"`
	// Score is the aggregate across all days.
	Score int `json:"score"`

	passed, total int
}

type Failure struct {
	Description string `json:"description"`
	Department  string `json:"department"`
	Count       int    `json:"count"`
}

type TrendPoint struct {
	Day    string `json:"day"`
	Passed int    `json:"passed"`
	Total  int    `json:"total"`
	Score  int    `json:"score"`
}

type Trend struct {
	Days    [7]TrendPoint `json:"days"`
	Average int           `json:"average"`
}

type Progress struct {
	Name      string `json:"name"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Passed    int    `json:"passed"`
	Failed    int    `json:"failed"`
	Percent   int    `json:"percent"`
}

type Summary struct {
	PendingAudits     int `json:"pending_audits"`
	CriticalIncidents int `json:"critical_incidents"`
	HygieneScore      int `json:"hygiene_score"`
}
