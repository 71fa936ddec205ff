package models

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// EditorDocument is one immutable version of a document's content, owned by
// exactly one DocumentContainer.
type EditorDocument struct {
	ID                   string    `json:"id"`
	URI                  string    `json:"uri"`
	Title                string    `json:"title"`
	Content              string    `json:"content"`
	Context              string    `json:"context,omitempty"`
	CreatedOn            time.Time `json:"createdOn"`
	UpdatedOn            time.Time `json:"updatedOn"`
	PreviousVersionURI   string    `json:"previousVersionUri,omitempty"`
	DocumentContainerURI string    `json:"documentContainerUri"`
}

// Validate checks the structural shape of a deserialized editor document.
func (d EditorDocument) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.ID, validation.Required),
		validation.Field(&d.URI, validation.Required),
		validation.Field(&d.Title, validation.Required),
		validation.Field(&d.CreatedOn, validation.Required),
		validation.Field(&d.UpdatedOn, validation.Required),
		validation.Field(&d.DocumentContainerURI, validation.Required),
	)
}
