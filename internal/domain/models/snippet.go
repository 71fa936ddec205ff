package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"docporter/internal/collection"
)

// Snippet is a reusable content fragment. It points to its current
// SnippetVersion and back-links to the snippet lists it appears in; those
// back-links may target lists outside the snippet's own containing list.
type Snippet struct {
	ID                    string         `json:"id"`
	URI                   string         `json:"uri"`
	Position              *int           `json:"position,omitempty"`
	CreatedOn             time.Time      `json:"createdOn"`
	UpdatedOn             time.Time      `json:"updatedOn"`
	CurrentVersionURI     string         `json:"currentVersionUri"`
	LinkedSnippetListURIs collection.Set `json:"linkedSnippetListUris"`
}

// Validate checks the structural shape of a deserialized snippet.
func (s Snippet) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.ID, validation.Required),
		validation.Field(&s.URI, validation.Required),
		validation.Field(&s.CreatedOn, validation.Required),
		validation.Field(&s.UpdatedOn, validation.Required),
		validation.Field(&s.CurrentVersionURI, validation.Required),
	)
}
