package library

// SOP is a standard operating procedure document.
type SOP struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
	// Document is an optional inline attachment (data URL) named by FileName.
	Document string `json:"document,omitempty"`
	FileName string `json:"file_name,omitempty"`
}

func (s SOP) RecordID() string { return s.ID }

// Collection bundles templates and SOPs by id.
type Collection struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	TemplateIDs []string `json:"template_ids"`
	SOPIDs      []string `json:"sop_ids"`
}

func (c Collection) RecordID() string { return c.ID }
