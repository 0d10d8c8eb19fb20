// Package drafts persists saved letters. A Draft is a snapshot: it is never
// changed after creation, and the collection is stored as one blob, most
// recent first.
package drafts

import (
	"time"

	"github.com/google/uuid"

	"github.com/sant0-9/patra/internal/catalog"
)

// Draft is one saved letter.
type Draft struct {
	ID string `json:"id"`
	// TemplateID is nil for letters generated by the AI writer.
	TemplateID   *string          `json:"templateId"`
	Title        string           `json:"title"`
	Content      string           `json:"content"`
	Language     catalog.Language `json:"language,omitempty"`
	LastModified time.Time        `json:"lastModified"`
}

// New stamps a fresh draft with a random id.
func New(templateID *string, title, content string, lang catalog.Language, now time.Time) Draft {
	return Draft{
		ID:           uuid.NewString(),
		TemplateID:   templateID,
		Title:        title,
		Content:      content,
		Language:     lang,
		LastModified: now,
	}
}

// FromCatalog reports whether the draft was built from a catalog template.
func (d Draft) FromCatalog() bool {
	return d.TemplateID != nil && *d.TemplateID != ""
}
