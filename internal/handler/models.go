package handler

import (
	"time"

	"docporter/internal/domain/models"
)

// taskAttributes is the wire shape of a task's attributes
type taskAttributes struct {
	URI       string    `json:"uri"`
	CreatedOn time.Time `json:"createdOn"`
	UpdatedOn time.Time `json:"updatedOn"`
	Status    string    `json:"status"`
	Operation string    `json:"operation,omitempty"`
	Error     string    `json:"error,omitempty"`
	Result    string    `json:"result,omitempty"`
}

// taskData wraps a task's id and attributes
type taskData struct {
	ID         string         `json:"id"`
	Attributes taskAttributes `json:"attributes"`
}

// taskResponse is the response envelope for task-producing endpoints
type taskResponse struct {
	Data taskData `json:"data"`
}

// newTaskResponse builds the wire representation of a task
func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		Data: taskData{
			ID: task.ID,
			Attributes: taskAttributes{
				URI:       task.URI,
				CreatedOn: task.CreatedOn,
				UpdatedOn: task.UpdatedOn,
				Status:    task.StatusURI,
				Operation: task.OperationURI,
				Error:     task.ErrorURI,
				Result:    task.ResultURI,
			},
		},
	}
}
