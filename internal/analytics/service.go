// Package analytics derives read-only summaries from audits and incidents.
// All functions are pure; callers pass snapshots.
package analytics

import (
	"math"
	"sort"

	"hotel-audit-pro/internal/audits"
	"hotel-audit-pro/internal/incidents"
	"hotel-audit-pro/internal/users"
)

const (
	MaxHeatmapRows = 10
	MaxFailures    = 5

	// Unassigned buckets items without an assignee in TeamProgress.
	Unassigned = "Unassigned"
)

// Percent returns round(part/total*100), or 0 when total is zero.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}

func allDepartments(dept string) bool { return dept == "" || dept == "All" }

// scoredItems calls fn for every Pass/Fail item of a completed audit.
func scoredItems(list []audits.Audit, fn func(a audits.Audit, it audits.Item)) {
	for _, a := range list {
		if a.Status != audits.StatusCompleted {
			continue
		}
		for _, it := range a.Items {
			if it.Result.Scored() {
				fn(a, it)
			}
		}
	}
}

// Heatmap buckets pass rates by row key and weekday of the due date. Rows are
// departments, or item descriptions of one department when department is set.
// The worst rows come first.
func Heatmap(list []audits.Audit, department string) []HeatmapRow {
	index := map[string]int{}
	var rows []HeatmapRow

	scoredItems(list, func(a audits.Audit, it audits.Item) {
		key := a.Department
		if !allDepartments(department) {
			if a.Department != department {
				return
			}
			key = it.Description
		}
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, newRow(key))
		}
		row := &rows[i]
		cell := &row.Cells[a.DueDate.Weekday()]
		cell.Total++
		row.total++
		if it.Result == audits.ResultPass {
			cell.Passed++
			row.passed++
		}
	})

	for i := range rows {
		row := &rows[i]
		for d := range row.Cells {
			c := &row.Cells[d]
			if c.Total > 0 {
				s := Percent(c.Passed, c.Total)
				c.Score = &s
			}
		}
		row.Score = Percent(row.passed, row.total)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		// compare passed/total exactly instead of the rounded score
		li := rows[i].passed * rows[j].total
		lj := rows[j].passed * rows[i].total
		if li != lj {
			return li < lj
		}
		return rows[i].Key < rows[j].Key
	})
	if len(rows) > MaxHeatmapRows {
		rows = rows[:MaxHeatmapRows]
	}
	return rows
}

func newRow(key string) HeatmapRow {
	row := HeatmapRow{Key: key}
	for i, d := range Weekdays {
		row.Cells[i].Day = d.String()[:3]
	}
	return row
}

// TopFailures counts Fail results per item description across departments.
// Each entry is tagged with the department of the last contributing audit.
func TopFailures(list []audits.Audit) []Failure {
	index := map[string]int{}
	var out []Failure

	scoredItems(list, func(a audits.Audit, it audits.Item) {
		if it.Result != audits.ResultFail {
			return
		}
		i, ok := index[it.Description]
		if !ok {
			i = len(out)
			index[it.Description] = i
			out = append(out, Failure{Description: it.Description})
		}
		out[i].Count++
		out[i].Department = a.Department
	})

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Description < out[j].Description
	})
	if len(out) > MaxFailures {
		out = out[:MaxFailures]
	}
	return out
}

// WeeklyTrend scores every weekday. Average is the mean of the non-zero daily
// scores, or baseline when there are none.
func WeeklyTrend(list []audits.Audit, baseline int) Trend {
	var t Trend
	for i, d := range Weekdays {
		t.Days[i].Day = d.String()[:3]
	}
	scoredItems(list, func(a audits.Audit, it audits.Item) {
		p := &t.Days[a.DueDate.Weekday()]
		p.Total++
		if it.Result == audits.ResultPass {
			p.Passed++
		}
	})

	sum, n := 0, 0
	for i := range t.Days {
		p := &t.Days[i]
		p.Score = Percent(p.Passed, p.Total)
		if p.Score > 0 {
			sum += p.Score
			n++
		}
	}
	t.Average = baseline
	if n > 0 {
		t.Average = int(math.Round(float64(sum) / float64(n)))
	}
	return t
}

// TeamProgress tallies every item of every audit per resolved assignee name,
// in order of first appearance.
func TeamProgress(list []audits.Audit, people []users.User) []Progress {
	index := map[string]int{}
	var out []Progress
	for _, a := range list {
		for _, it := range a.Items {
			name := users.Resolve(it.Assignee, people)
			if name == "" {
				name = Unassigned
			}
			i, ok := index[name]
			if !ok {
				i = len(out)
				index[name] = i
				out = append(out, Progress{Name: name})
			}
			p := &out[i]
			p.Total++
			if it.Result != audits.ResultNone {
				p.Completed++
			}
			switch it.Result {
			case audits.ResultPass:
				p.Passed++
			case audits.ResultFail:
				p.Failed++
			}
		}
	}
	for i := range out {
		out[i].Percent = Percent(out[i].Completed, out[i].Total)
	}
	return out
}

// Summarize builds the dashboard counters.
func Summarize(auditList []audits.Audit, incidentList []incidents.Incident, baseline int) Summary {
	var s Summary
	for _, a := range auditList {
		if a.Status == audits.StatusPending {
			s.PendingAudits++
		}
	}
	for _, inc := range incidentList {
		if inc.Priority == incidents.PriorityCritical && !inc.Status.Closed() {
			s.CriticalIncidents++
		}
	}
	s.HygieneScore = WeeklyTrend(auditList, baseline).Average
	return s
}
