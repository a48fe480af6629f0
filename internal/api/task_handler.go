package api

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// TaskHandler handles the /lists/{listID}/tasks/ endpoints. Ownership of
// the parent list is checked on every operation and violations surface as
// not found.
type TaskHandler struct {
	taskStore store.TaskStore
	listStore store.ListStore
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskStore store.TaskStore, listStore store.ListStore, log *slog.Logger) *TaskHandler {
	if log == nil {
		log = slog.Default()
	}
	return &TaskHandler{taskStore: taskStore, listStore: listStore, logger: log}
}

// Index handles GET /lists/{listID}/tasks/. Results are ordered newest first.
func (h *TaskHandler) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	listID, ok := requirePathUUID(w, r, "listID")
	if !ok {
		return
	}

	// An empty list and a list the caller does not own both produce zero
	// rows, so the parent is checked explicitly to keep the 404 contract.
	if _, err := h.listStore.GetForUser(r.Context(), listID, userID); err != nil {
		HandleError(w, r, err)
		return
	}

	page := parsePage(r)
	result, err := h.taskStore.ListForList(r.Context(), listID, userID, page)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	results := make([]TaskResponse, 0, len(result.Items))
	for _, t := range result.Items {
		results = append(results, NewTaskResponse(t))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PageResponse{
		Count:   result.Count,
		Results: results,
	})
}

// Create handles POST /lists/{listID}/tasks/.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	listID, ok := requirePathUUID(w, r, "listID")
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithDetail(w, r, http.StatusBadRequest, MsgInvalidRequestBody)
		return
	}
	if fields := shared.ValidateRequest(req); fields != nil {
		shared.RespondWithFieldErrors(w, r, fields)
		return
	}

	if _, err := h.listStore.GetForUser(r.Context(), listID, userID); err != nil {
		HandleError(w, r, err)
		return
	}

	t, err := domain.NewTask(listID, req.Name, req.Description)
	if err != nil {
		fields := shared.FieldErrors{}
		fields.Add("name", shared.MsgTooLong)
		shared.RespondWithFieldErrors(w, r, fields)
		return
	}

	if err := h.taskStore.Create(r.Context(), t); err != nil {
		if errors.Is(err, store.ErrListNotFound) {
			shared.RespondWithDetail(w, r, http.StatusNotFound, MsgNotFound)
			return
		}
		log.Error("failed to create task", "error", err, "list_id", listID)
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewTaskResponse(t))
}

// Get handles GET /lists/{listID}/tasks/{taskID}/.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	listID, ok := requirePathUUID(w, r, "listID")
	if !ok {
		return
	}
	taskID, ok := requirePathUUID(w, r, "taskID")
	if !ok {
		return
	}

	t, err := h.taskStore.GetForOwner(r.Context(), taskID, listID, userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(t))
}

// Update handles PATCH /lists/{listID}/tasks/{taskID}/. A task cannot be
// moved between lists; a body list_id that differs from the path is
// rejected.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	listID, ok := requirePathUUID(w, r, "listID")
	if !ok {
		return
	}
	taskID, ok := requirePathUUID(w, r, "taskID")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithDetail(w, r, http.StatusBadRequest, MsgInvalidRequestBody)
		return
	}
	if fields := shared.ValidateRequest(req); fields != nil {
		shared.RespondWithFieldErrors(w, r, fields)
		return
	}
	if req.ListID != nil && *req.ListID != listID {
		fields := shared.FieldErrors{}
		fields.Add("list_id", MsgListChangeNotAllowed)
		shared.RespondWithFieldErrors(w, r, fields)
		return
	}

	t, err := h.taskStore.GetForOwner(r.Context(), taskID, listID, userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if err := t.Validate(); err != nil {
		fields := shared.FieldErrors{}
		fields.Add("name", shared.MsgTooLong)
		shared.RespondWithFieldErrors(w, r, fields)
		return
	}
	t.UpdatedAt = time.Now().UTC()

	if err := h.taskStore.Update(r.Context(), t, userID); err != nil {
		log.Error("failed to update task", "error", err, "task_id", taskID)
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(t))
}

// Delete handles DELETE /lists/{listID}/tasks/{taskID}/.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	listID, ok := requirePathUUID(w, r, "listID")
	if !ok {
		return
	}
	taskID, ok := requirePathUUID(w, r, "taskID")
	if !ok {
		return
	}

	if err := h.taskStore.Delete(r.Context(), taskID, listID, userID); err != nil {
		HandleError(w, r, err)
		return
	}

	shared.NoContent(w)
}
