package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// SnippetVersion is one immutable revision of a snippet's content. Versions
// may form a chain through PreviousVersionURI.
type SnippetVersion struct {
	ID                 string     `json:"id"`
	URI                string     `json:"uri"`
	Title              string     `json:"title"`
	Content            string     `json:"content"`
	CreatedOn          time.Time  `json:"createdOn"`
	SnippetURI         string     `json:"snippetUri"`
	PreviousVersionURI string     `json:"previousVersionUri,omitempty"`
	ValidThrough       *time.Time `json:"validThrough,omitempty"`
}

// Validate checks the structural shape of a deserialized snippet version.
func (v SnippetVersion) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.ID, validation.Required),
		validation.Field(&v.URI, validation.Required),
		validation.Field(&v.Title, validation.Required),
		validation.Field(&v.CreatedOn, validation.Required),
		validation.Field(&v.SnippetURI, validation.Required),
	)
}
