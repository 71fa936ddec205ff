package models

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"docporter/internal/collection"
)

// DocumentContainer is the stable identity for a document. It points to the
// current EditorDocument version and to zero or more linked snippet lists.
type DocumentContainer struct {
	ID                    string         `json:"id"`
	URI                   string         `json:"uri"`
	CurrentVersionURI     string         `json:"currentVersionUri"`
	FolderURI             string         `json:"folderUri,omitempty"`
	LinkedSnippetListURIs collection.Set `json:"linkedSnippetListUris"`
}

// Validate checks the structural shape of a deserialized container.
func (c DocumentContainer) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required),
		validation.Field(&c.URI, validation.Required),
		validation.Field(&c.CurrentVersionURI, validation.Required),
	)
}
