package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// UserHandler handles the authenticated account endpoints under /users/me/.
type UserHandler struct {
	userStore store.UserStore
	sessions  auth.SessionManager
	verifier  auth.PasswordVerifier
	cookies   CookieSettings
	logger    *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(
	userStore store.UserStore,
	sessions auth.SessionManager,
	verifier auth.PasswordVerifier,
	cookies CookieSettings,
	log *slog.Logger,
) *UserHandler {
	if log == nil {
		log = slog.Default()
	}
	return &UserHandler{
		userStore: userStore,
		sessions:  sessions,
		verifier:  verifier,
		cookies:   cookies,
		logger:    log,
	}
}

// Me handles GET /users/me/.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// UpdateMe handles PATCH /users/me/. Only the fields present in the body
// are updated.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpdateMeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithDetail(w, r, http.StatusBadRequest, MsgInvalidRequestBody)
		return
	}
	if fields := shared.ValidateRequest(req); fields != nil {
		shared.RespondWithFieldErrors(w, r, fields)
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if req.Email != nil {
		if err := user.SetEmail(*req.Email); err != nil {
			fields := shared.FieldErrors{}
			fields.Add("email", shared.MsgInvalidEmail)
			shared.RespondWithFieldErrors(w, r, fields)
			return
		}
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	user.UpdatedAt = time.Now().UTC()

	if err := h.userStore.Update(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			fields := shared.FieldErrors{}
			fields.Add("email", shared.MsgUnique)
			shared.RespondWithFieldErrors(w, r, fields)
			return
		}
		log.Error("failed to update user", "error", err, "user_id", user.ID)
		HandleError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}

// DeleteMe handles DELETE /users/me/. The current password must be supplied
// in the body; deletion cascades to the user's lists and tasks.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	// A missing body or password is treated like a wrong password: the
	// confirmation failed, so the caller lacks permission to delete.
	var req DeleteMeRequest
	if err := shared.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		shared.RespondWithDetail(w, r, http.StatusBadRequest, MsgInvalidRequestBody)
		return
	}
	if req.Password == "" {
		shared.RespondWithDetail(w, r, http.StatusForbidden, MsgPasswordPermission)
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	if err := h.verifier.Compare(user.HashedPassword, req.Password); err != nil {
		shared.RespondWithDetail(w, r, http.StatusForbidden, MsgPasswordPermission)
		return
	}

	if err := h.userStore.Delete(r.Context(), user.ID); err != nil {
		HandleError(w, r, err)
		return
	}

	if err := h.sessions.DeleteAllForUser(r.Context(), user.ID); err != nil {
		log.Warn("failed to delete sessions after account deletion",
			"error", err, "user_id", user.ID)
	}
	clearSessionCookies(w, h.cookies)

	shared.NoContent(w)
}
