package models

import "time"

// Task statuses, strictly forward: scheduled → busy → (success | failed).
// Canceled is a defined terminal status but no flow in this service
// produces it.
const (
	TaskStatusScheduled = "http://redpencil.data.gift/id/concept/JobStatus/scheduled"
	TaskStatusBusy      = "http://redpencil.data.gift/id/concept/JobStatus/busy"
	TaskStatusSuccess   = "http://redpencil.data.gift/id/concept/JobStatus/success"
	TaskStatusFailed    = "http://redpencil.data.gift/id/concept/JobStatus/failed"
	TaskStatusCanceled  = "http://redpencil.data.gift/id/concept/JobStatus/canceled"
)

// Task operation URIs identifying what a task is doing.
const (
	TaskOperationExport = "http://redpencil.data.gift/id/jobs/concept/JobOperation/export"
	TaskOperationImport = "http://redpencil.data.gift/id/jobs/concept/JobOperation/import"
)

// Task is a persisted record tracking the lifecycle of one asynchronous
// export or import operation. Each task is owned exclusively by the handler
// invocation that created it; concurrent writers are not expected.
type Task struct {
	ID           string    `json:"id"`
	URI          string    `json:"uri"`
	StatusURI    string    `json:"statusUri"`
	CreatedOn    time.Time `json:"createdOn"`
	UpdatedOn    time.Time `json:"updatedOn"`
	OperationURI string    `json:"operationUri,omitempty"`
	ErrorURI     string    `json:"errorUri,omitempty"`
	ResultURI    string    `json:"resultUri,omitempty"`
}

// JobError is the persisted error record linked to a failed task. Created
// once, never mutated.
type JobError struct {
	ID      string `json:"id"`
	URI     string `json:"uri"`
	Message string `json:"message"`
}
