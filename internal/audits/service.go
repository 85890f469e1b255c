package audits

import (
	"math"
	"regexp"
	"strings"
	"time"

	"hotel-audit-pro/internal/apperror"
	"hotel-audit-pro/internal/users"
)

// IDFunc mints a fresh identifier with the given prefix.
type IDFunc func(prefix string) string

type ItemInput struct {
	Description string             `json:"description"`
	Assignee    *users.AssigneeRef `json:"assignee,omitempty"`
}

// NewAuditInput is an audit scheduled by hand.
type NewAuditInput struct {
	Title      string      `json:"title"`
	Department string      `json:"department"`
	HotelName  string      `json:"hotel_name"`
	DueDate    time.Time   `json:"due_date"`
	Items      []ItemInput `json:"items"`
}

// Build validates in and returns a pending audit. Blank item rows are dropped.
func Build(in NewAuditInput, newID IDFunc) (Audit, error) {
	title := strings.TrimSpace(in.Title)
	dept := strings.TrimSpace(in.Department)
	if title == "" || dept == "" || in.DueDate.IsZero() {
		return Audit{}, apperror.NewValidation("Please fill in all required fields (Title, Department, Date) and add at least one item.")
	}
	items := make([]Item, 0, len(in.Items))
	for _, it := range in.Items {
		desc := strings.TrimSpace(it.Description)
		if desc == "" {
			continue
		}
		items = append(items, Item{ID: newID("item"), Description: desc, Assignee: assignee(it.Assignee)})
	}
	if len(items) == 0 {
		return Audit{}, apperror.NewValidation("Please fill in all required fields (Title, Department, Date) and add at least one item.")
	}
	return Audit{
		ID:         newID("audit"),
		Title:      title,
		Department: dept,
		HotelName:  strings.TrimSpace(in.HotelName),
		Status:     StatusPending,
		DueDate:    in.DueDate,
		Items:      items,
	}, nil
}

// FromTemplate starts a pending audit due now with fresh item ids.
func FromTemplate(t Template, hotel string, now time.Time, newID IDFunc) Audit {
	items := make([]Item, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, Item{ID: newID("item"), Description: it.Description, Assignee: assignee(it.Assignee)})
	}
	return Audit{
		ID:         newID("audit"),
		Title:      t.Title,
		Department: t.Department,
		HotelName:  hotel,
		Status:     StatusPending,
		DueDate:    now,
		Items:      items,
	}
}

type TemplateInput struct {
	Title      string         `json:"title"`
	Department string         `json:"department"`
	Items      []TemplateItem `json:"items"`
}

func BuildTemplate(id string, in TemplateInput) (Template, error) {
	title := strings.TrimSpace(in.Title)
	dept := strings.TrimSpace(in.Department)
	if title == "" || dept == "" {
		return Template{}, apperror.NewValidation("Title and Department are required.")
	}
	items := make([]TemplateItem, 0, len(in.Items))
	for _, it := range in.Items {
		desc := strings.TrimSpace(it.Description)
		if desc == "" {
			continue
		}
		items = append(items, TemplateItem{Description: desc, Assignee: assignee(it.Assignee)})
	}
	if len(items) == 0 {
		return Template{}, apperror.NewValidation("Please add at least one checklist item.")
	}
	return Template{ID: id, Title: title, Department: dept, Items: items}, nil
}

var bulletPrefix = regexp.MustCompile(`^[-*•]\s*`)

// TemplateFromSOP turns each non-blank content line into a checklist item.
// The department is the SOP category when it names a known department,
// otherwise the first known department.
func TemplateFromSOP(id, title, category, content string, departments []string) Template {
	var items []TemplateItem
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(bulletPrefix.ReplaceAllString(strings.TrimSpace(line), ""))
		if line == "" {
			continue
		}
		items = append(items, TemplateItem{Description: line})
	}
	if len(items) == 0 {
		items = []TemplateItem{{Description: "Review procedure: " + title}}
	}

	dept := ""
	for _, d := range departments {
		if d == category {
			dept = d
			break
		}
	}
	if dept == "" && len(departments) > 0 {
		dept = departments[0]
	}
	return Template{ID: id, Title: title, Department: dept, Items: items}
}

// ItemUpdate replaces the inspector-editable fields of one item.
type ItemUpdate struct {
	Result      Result             `json:"result"`
	Temperature *float64           `json:"temperature,omitempty"`
	Photo       string             `json:"photo,omitempty"`
	Notes       string             `json:"notes"`
	Assignee    *users.AssigneeRef `json:"assignee,omitempty"`
}

// RecordItem applies upd to one item. A pending audit moves to in progress
// once any item has a result; completed audits are read-only.
func RecordItem(a Audit, itemID string, upd ItemUpdate) (Audit, error) {
	if a.Status == StatusCompleted {
		return Audit{}, apperror.NewConflict("Audit is already completed.")
	}
	if !upd.Result.Valid() {
		return Audit{}, apperror.NewValidation("Result must be Pass, Fail or N/A.")
	}

	items := make([]Item, len(a.Items))
	copy(items, a.Items)
	found := false
	for i := range items {
		if items[i].ID != itemID {
			continue
		}
		items[i].Result = upd.Result
		items[i].Temperature = upd.Temperature
		items[i].Photo = upd.Photo
		items[i].Notes = upd.Notes
		items[i].Assignee = assignee(upd.Assignee)
		found = true
		break
	}
	if !found {
		return Audit{}, apperror.NewNotFound("Inspection item not found.")
	}

	a.Items = items
	if a.Status == StatusPending && Inspected(a) > 0 {
		a.Status = StatusInProgress
	}
	return a, nil
}

// Complete marks a as completed at now.
func Complete(a Audit, now time.Time) (Audit, error) {
	if a.Status == StatusCompleted {
		return Audit{}, apperror.NewConflict("Audit is already completed.")
	}
	a.Status = StatusCompleted
	done := now
	a.CompletedAt = &done
	return a, nil
}

// Replace validates a full-record edit of existing. The id is kept.
// Completed audits are frozen and status never moves backwards. CompletedAt
// follows the status: stamped with now on completion, cleared otherwise.
func Replace(existing, next Audit, now time.Time) (Audit, error) {
	if existing.Status == StatusCompleted {
		return Audit{}, apperror.NewConflict("Audit is already completed.")
	}
	if strings.TrimSpace(next.Title) == "" || strings.TrimSpace(next.Department) == "" {
		return Audit{}, apperror.NewValidation("Title and Department are required.")
	}
	if !next.Status.Valid() {
		return Audit{}, apperror.NewValidation("Unknown audit status.")
	}
	if next.Status.rank() < existing.Status.rank() {
		return Audit{}, apperror.NewValidation("Audit status cannot move back to " + string(next.Status) + ".")
	}
	for _, it := range next.Items {
		if it.ID == "" || strings.TrimSpace(it.Description) == "" {
			return Audit{}, apperror.NewValidation("Every item needs an id and a description.")
		}
		if !it.Result.Valid() {
			return Audit{}, apperror.NewValidation("Result must be Pass, Fail or N/A.")
		}
	}
	next.ID = existing.ID
	if next.DueDate.IsZero() {
		next.DueDate = existing.DueDate
	}
	next.CompletedAt = nil
	if next.Status == StatusCompleted {
		done := now
		next.CompletedAt = &done
	}
	return next, nil
}

// Inspected counts items with any result.
func Inspected(a Audit) int {
	n := 0
	for _, it := range a.Items {
		if it.Result != ResultNone {
			n++
		}
	}
	return n
}

// Progress is the inspected share of items in percent.
func Progress(a Audit) int {
	if len(a.Items) == 0 {
		return 0
	}
	return int(math.Round(float64(Inspected(a)) / float64(len(a.Items)) * 100))
}

// Score is the passed share of all items in percent; 0 for empty audits.
func Score(a Audit) int {
	if len(a.Items) == 0 {
		return 0
	}
	passed := 0
	for _, it := range a.Items {
		if it.Result == ResultPass {
			passed++
		}
	}
	return int(math.Round(float64(passed) / float64(len(a.Items)) * 100))
}

func Find(list []Audit, id string) (Audit, bool) {
	for _, a := range list {
		if a.ID == id {
			return a, true
		}
	}
	return Audit{}, false
}

func FindTemplate(list []Template, id string) (Template, bool) {
	for _, t := range list {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

func assignee(ref *users.AssigneeRef) *users.AssigneeRef {
	if ref.IsZero() {
		return nil
	}
	out := *ref
	out.Name = strings.TrimSpace(out.Name)
	return &out
}
