package handler

import (
	"log/slog"
	"net/http"

	"docporter/internal/domain/repositories"
	"docporter/internal/httputil"
)

// TaskHandler serves task status lookups. Asynchronous failures are only
// visible by polling a task and inspecting its linked error.
type TaskHandler struct {
	taskRepo repositories.TaskRepository
	logger   *slog.Logger
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskRepo repositories.TaskRepository, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{taskRepo: taskRepo, logger: logger}
}

// GetTask handles GET /tasks/{id}
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	task, err := h.taskRepo.GetByID(r.Context(), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, newTaskResponse(task))
}

// HealthCheck handles GET /health
func (h *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
