package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// ListHandler handles the /lists/ endpoints. Every operation is scoped to
// the authenticated owner; a list belonging to another user is reported as
// not found, never as forbidden.
type ListHandler struct {
	listStore store.ListStore
	logger    *slog.Logger
}

// NewListHandler creates a new ListHandler with the given dependencies.
func NewListHandler(listStore store.ListStore, log *slog.Logger) *ListHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ListHandler{listStore: listStore, logger: log}
}

// Index handles GET /lists/. Results are ordered newest first.
func (h *ListHandler) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	page := parsePage(r)
	result, err := h.listStore.ListForUser(r.Context(), userID, page)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	results := make([]ListResponse, 0, len(result.Items))
	for _, list := range result.Items {
		results = append(results, NewListResponse(list))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PageResponse{
		Count:   result.Count,
		Results: results,
	})
}

// Create handles POST /lists/.
func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateListRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithDetail(w, r, http.StatusBadRequest, MsgInvalidRequestBody)
		return
	}
	if fields := shared.ValidateRequest(req); fields != nil {
		shared.RespondWithFieldErrors(w, r, fields)
		return
	}

	list, err := domain.NewList(userID, req.Name)
	if err != nil {
		fields := shared.FieldErrors{}
		fields.Add("name", shared.MsgTooLong)
		shared.RespondWithFieldErrors(w, r, fields)
		return
	}

	if err := h.listStore.Create(r.Context(), list); err != nil {
		log.Error("failed to create list", "error", err, "user_id", userID)
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewListResponse(list))
}

// Get handles GET /lists/{listID}/.
func (h *ListHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	listID, ok := requirePathUUID(w, r, "listID")
	if !ok {
		return
	}

	list, err := h.listStore.GetForUser(r.Context(), listID, userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewListResponse(list))
}

// Update handles PATCH /lists/{listID}/.
func (h *ListHandler) Update(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	listID, ok := requirePathUUID(w, r, "listID")
	if !ok {
		return
	}

	var req UpdateListRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithDetail(w, r, http.StatusBadRequest, MsgInvalidRequestBody)
		return
	}
	if fields := shared.ValidateRequest(req); fields != nil {
		shared.RespondWithFieldErrors(w, r, fields)
		return
	}

	list, err := h.listStore.GetForUser(r.Context(), listID, userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if req.Name != nil {
		if err := list.Rename(*req.Name); err != nil {
			fields := shared.FieldErrors{}
			fields.Add("name", shared.MsgTooLong)
			shared.RespondWithFieldErrors(w, r, fields)
			return
		}
	}
	list.UpdatedAt = time.Now().UTC()

	if err := h.listStore.Update(r.Context(), list); err != nil {
		log.Error("failed to update list", "error", err, "list_id", listID)
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewListResponse(list))
}

// Delete handles DELETE /lists/{listID}/. Tasks on the list are removed
// with it.
func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	listID, ok := requirePathUUID(w, r, "listID")
	if !ok {
		return
	}

	if err := h.listStore.Delete(r.Context(), listID, userID); err != nil {
		HandleError(w, r, err)
		return
	}

	shared.NoContent(w)
}
