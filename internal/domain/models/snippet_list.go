package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"docporter/internal/collection"
)

// SnippetList is a named collection of snippets, linkable from both document
// containers and snippets.
type SnippetList struct {
	ID                   string         `json:"id"`
	URI                  string         `json:"uri"`
	Label                string         `json:"label"`
	CreatedOn            time.Time      `json:"createdOn"`
	SnippetURIs          collection.Set `json:"snippetUris"`
	ImportedResourceURIs collection.Set `json:"importedResourceUris"`
}

// Validate checks the structural shape of a deserialized snippet list.
func (l SnippetList) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.ID, validation.Required),
		validation.Field(&l.URI, validation.Required),
		validation.Field(&l.Label, validation.Required),
		validation.Field(&l.CreatedOn, validation.Required),
	)
}
