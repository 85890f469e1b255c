package library

import (
	"strings"

	"hotel-audit-pro/internal/apperror"
	"hotel-audit-pro/internal/audits"
)

type SOPInput struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
	Document string `json:"document,omitempty"`
	FileName string `json:"file_name,omitempty"`
}

// BuildSOP validates in. An empty category falls back to defaultCategory.
func BuildSOP(id string, in SOPInput, defaultCategory string) (SOP, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || content == "" {
		return SOP{}, apperror.NewValidation("Title and Content are required.")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = defaultCategory
	}
	if in.Document == "" {
		in.FileName = ""
	}
	return SOP{
		ID:       id,
		Title:    title,
		Category: category,
		Content:  content,
		Document: in.Document,
		FileName: strings.TrimSpace(in.FileName),
	}, nil
}

type CollectionInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	TemplateIDs []string `json:"template_ids"`
	SOPIDs      []string `json:"sop_ids"`
}

func BuildCollection(id string, in CollectionInput) (Collection, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return Collection{}, apperror.NewValidation("Title is required.")
	}
	return Collection{
		ID:          id,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		TemplateIDs: dedupe(in.TemplateIDs),
		SOPIDs:      dedupe(in.SOPIDs),
	}, nil
}

// SearchSOPs matches title or category, case-insensitively.
func SearchSOPs(list []SOP, query string) []SOP {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]SOP(nil), list...)
	}
	var out []SOP
	for _, s := range list {
		if strings.Contains(strings.ToLower(s.Title), q) || strings.Contains(strings.ToLower(s.Category), q) {
			out = append(out, s)
		}
	}
	return out
}

// Bundle is a collection with its references resolved.
type Bundle struct {
	Collection Collection        `json:"collection"`
	Templates  []audits.Template `json:"templates"`
	SOPs       []SOP             `json:"sops"`
}

// Resolve looks up every reference of c. References to deleted templates or
// SOPs are dropped silently.
func Resolve(c Collection, templates []audits.Template, sops []SOP) Bundle {
	b := Bundle{Collection: c, Templates: []audits.Template{}, SOPs: []SOP{}}
	for _, id := range c.TemplateIDs {
		if t, ok := audits.FindTemplate(templates, id); ok {
			b.Templates = append(b.Templates, t)
		}
	}
	for _, id := range c.SOPIDs {
		if s, ok := FindSOP(sops, id); ok {
			b.SOPs = append(b.SOPs, s)
		}
	}
	return b
}

func FindSOP(list []SOP, id string) (SOP, bool) {
	for _, s := range list {
		if s.ID == id {
			return s, true
		}
	}
	return SOP{}, false
}

func FindCollection(list []Collection, id string) (Collection, bool) {
	for _, c := range list {
		if c.ID == id {
			return c, true
		}
	}
	return Collection{}, false
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := map[string]bool{}
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
