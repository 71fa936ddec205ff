package models

import "time"

// LogicalFile is the logical record for a stored file. The physical
// counterpart carries the storage location through SourceURI.
type LogicalFile struct {
	ID        string    `json:"id"`
	URI       string    `json:"uri"`
	Name      string    `json:"name"`
	Format    string    `json:"format"`
	Extension string    `json:"extension"`
	Size      int64     `json:"size"`
	CreatedOn time.Time `json:"createdOn"`
}

// PhysicalFile is the stored-bytes record for a logical file. URI is the
// storage location; SourceURI points back to the logical file.
type PhysicalFile struct {
	ID        string    `json:"id"`
	URI       string    `json:"uri"`
	Name      string    `json:"name"`
	Format    string    `json:"format"`
	Extension string    `json:"extension"`
	Size      int64     `json:"size"`
	CreatedOn time.Time `json:"createdOn"`
	SourceURI string    `json:"sourceUri"`
}

// Archive wraps a logical file reference as the result container of an
// export task.
type Archive struct {
	ID      string `json:"id"`
	URI     string `json:"uri"`
	FileURI string `json:"fileUri"`
}

// ResourceURI returns the archive's URI so it can be linked as a task result.
func (a *Archive) ResourceURI() string {
	return a.URI
}
