package api

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/taskdeck/taskdeck-api/internal/api/middleware"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
	"github.com/taskdeck/taskdeck-api/internal/store"
	"github.com/taskdeck/taskdeck-api/internal/task"
)

// AuthHandler handles authentication-related API requests: registration,
// login/logout, CSRF token issuance, and the password reset/change flows.
type AuthHandler struct {
	userStore   store.UserStore
	sessions    auth.SessionManager
	hasher      auth.PasswordHasher
	verifier    auth.PasswordVerifier
	resetTokens *auth.ResetTokenService
	queue       task.Enqueuer
	mailer      task.Mailer
	baseURL     string
	cookies     CookieSettings
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	sessions auth.SessionManager,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	resetTokens *auth.ResetTokenService,
	queue task.Enqueuer,
	mailer task.Mailer,
	baseURL string,
	cookies CookieSettings,
	log *slog.Logger,
) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}
	return &AuthHandler{
		userStore:   userStore,
		sessions:    sessions,
		hasher:      hasher,
		verifier:    verifier,
		resetTokens: resetTokens,
		queue:       queue,
		mailer:      mailer,
		baseURL:     baseURL,
		cookies:     cookies,
		logger:      log,
	}
}

// Register handles POST /users/register/.
// A successful registration also establishes a session, so the client is
// logged in immediately.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithDetail(w, r, http.StatusBadRequest, MsgInvalidRequestBody)
		return
	}
	if fields := shared.ValidateRequest(req); fields != nil {
		shared.RespondWithFieldErrors(w, r, fields)
		return
	}
	if err := domain.ValidatePassword(req.Password); err != nil {
		shared.RespondWithFieldErrors(w, r, passwordFieldErrors("password", err))
		return
	}

	user, err := domain.NewUser(req.Email, req.FirstName, req.LastName)
	if err != nil {
		fields := shared.FieldErrors{}
		fields.Add("email", shared.MsgInvalidEmail)
		shared.RespondWithFieldErrors(w, r, fields)
		return
	}

	user.HashedPassword, err = h.hasher.Hash(req.Password)
	if err != nil {
		log.Error("failed to hash password", "error", err)
		shared.RespondWithDetail(w, r, http.StatusInternalServerError, MsgInternalError)
		return
	}

	if err := h.userStore.Create(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			fields := shared.FieldErrors{}
			fields.Add("email", shared.MsgUnique)
			shared.RespondWithFieldErrors(w, r, fields)
			return
		}
		log.Error("failed to create user", "error", err)
		shared.RespondWithDetail(w, r, http.StatusInternalServerError, MsgInternalError)
		return
	}

	session, err := h.sessions.Create(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to create session after registration",
			"error", err, "user_id", user.ID)
		shared.RespondWithDetail(w, r, http.StatusInternalServerError, MsgInternalError)
		return
	}
	setSessionCookies(w, session, h.cookies)

	shared.RespondWithJSON(w, r, http.StatusCreated, RegisterResponse{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

// Login handles POST /users/login/.
// The failure body is identical for unknown email and wrong password so
// that account existence is not disclosed.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithDetail(w, r, http.StatusBadRequest, MsgInvalidRequestBody)
		return
	}
	if fields := shared.ValidateRequest(req); fields != nil {
		shared.RespondWithFieldErrors(w, r, fields)
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			h.respondBadCredentials(w, r)
			return
		}
		log.Error("failed to look up user", "error", err)
		shared.RespondWithDetail(w, r, http.StatusInternalServerError, MsgInternalError)
		return
	}

	if err := h.verifier.Compare(user.HashedPassword, req.Password); err != nil {
		h.respondBadCredentials(w, r)
		return
	}

	// Rotate the session identifier: a session established before
	// authentication must never survive it (session fixation).
	if cookie, err := r.Cookie(shared.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.Delete(r.Context(), cookie.Value); err != nil {
			log.Warn("failed to delete pre-login session", "error", err)
		}
	}

	session, err := h.sessions.Create(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to create session", "error", err, "user_id", user.ID)
		shared.RespondWithDetail(w, r, http.StatusInternalServerError, MsgInternalError)
		return
	}
	setSessionCookies(w, session, h.cookies)

	shared.NoContent(w)
}

func (h *AuthHandler) respondBadCredentials(w http.ResponseWriter, r *http.Request) {
	fields := shared.FieldErrors{}
	fields.Add(shared.NonFieldErrorsKey, MsgIncorrectEmailOrPassword)
	shared.RespondWithFieldErrors(w, r, fields)
}

// Logout handles POST /users/logout/. Requires an authenticated session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	session, ok := middleware.GetSession(r)
	if !ok {
		shared.RespondWithDetail(w, r, http.StatusForbidden, middleware.MsgNotAuthenticated)
		return
	}

	if err := h.sessions.Delete(r.Context(), session.Token); err != nil {
		log.Error("failed to delete session", "error", err)
		shared.RespondWithDetail(w, r, http.StatusInternalServerError, MsgInternalError)
		return
	}
	clearSessionCookies(w, h.cookies)

	shared.NoContent(w)
}

// CSRFToken handles GET /users/csrf/. Authenticated clients get the token
// bound to their session; anonymous clients get a double-submit cookie for
// the registration/login/reset endpoints.
func (h *AuthHandler) CSRFToken(w http.ResponseWriter, r *http.Request) {
	if session, ok := middleware.GetSession(r); ok {
		shared.RespondWithJSON(w, r, http.StatusOK, CSRFResponse{CSRFToken: session.CSRFToken})
		return
	}

	token, err := generateCSRFToken()
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).
			Error("failed to generate CSRF token", "error", err)
		shared.RespondWithDetail(w, r, http.StatusInternalServerError, MsgInternalError)
		return
	}
	setAnonymousCSRFCookie(w, token, h.cookies)

	shared.RespondWithJSON(w, r, http.StatusOK, CSRFResponse{CSRFToken: token})
}

// ResetPassword handles POST /users/reset-password/.
// The response is 204 whether or not the email belongs to an account, so
// the endpoint cannot be used to probe for registered addresses. The email
// send is queued, never performed inline.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req ResetPasswordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithDetail(w, r, http.StatusBadRequest, MsgInvalidRequestBody)
		return
	}
	if fields := shared.ValidateRequest(req); fields != nil {
		shared.RespondWithFieldErrors(w, r, fields)
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, store.ErrUserNotFound) {
			log.Error("failed to look up user for password reset", "error", err)
		}
		shared.NoContent(w)
		return
	}

	token, err := h.resetTokens.Generate(r.Context(), user)
	if err != nil {
		log.Error("failed to generate reset token", "error", err, "user_id", user.ID)
		shared.NoContent(w)
		return
	}

	emailTask := task.NewResetEmailTask(user.ID, user.Email, token, h.baseURL, h.mailer)
	if err := h.queue.Enqueue(emailTask); err != nil {
		// The client still gets 204: reporting the failure would disclose
		// that the address is registered.
		log.Error("failed to enqueue reset email task",
			"error", err, "user_id", user.ID)
	}

	shared.NoContent(w)
}

// ResetPasswordConfirm handles PATCH /users/reset-password-confirm/{userID}/.
func (h *AuthHandler) ResetPasswordConfirm(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requirePathUUID(w, r, "userID")
	if !ok {
		return
	}

	var req ResetPasswordConfirmRequest
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

	if err := h.resetTokens.Validate(r.Context(), user, req.Token); err != nil {
		fields := shared.FieldErrors{}
		fields.Add("token", MsgInvalidToken)
		shared.RespondWithFieldErrors(w, r, fields)
		return
	}

	if err := domain.ValidatePassword(req.Password); err != nil {
		shared.RespondWithFieldErrors(w, r, passwordFieldErrors("password", err))
		return
	}

	if err := h.setPassword(r, user, req.Password); err != nil {
		log.Error("failed to set password", "error", err, "user_id", user.ID)
		shared.RespondWithDetail(w, r, http.StatusInternalServerError, MsgInternalError)
		return
	}

	// Changing the hash invalidated the token; outstanding sessions go too.
	if err := h.sessions.DeleteAllForUser(r.Context(), user.ID); err != nil {
		log.Warn("failed to delete sessions after password reset",
			"error", err, "user_id", user.ID)
	}

	shared.RespondWithJSON(w, r, http.StatusOK, struct{}{})
}

// ChangePassword handles PATCH /users/change-password/. Requires an
// authenticated session and the current password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req ChangePasswordRequest
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

	if err := h.verifier.Compare(user.HashedPassword, req.CurrentPassword); err != nil {
		fields := shared.FieldErrors{}
		fields.Add("current_password", MsgCurrentPasswordIncorrect)
		shared.RespondWithFieldErrors(w, r, fields)
		return
	}

	if err := domain.ValidatePassword(req.NewPassword); err != nil {
		shared.RespondWithFieldErrors(w, r, passwordFieldErrors("new_password", err))
		return
	}

	if err := h.setPassword(r, user, req.NewPassword); err != nil {
		log.Error("failed to change password", "error", err, "user_id", user.ID)
		shared.RespondWithDetail(w, r, http.StatusInternalServerError, MsgInternalError)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, struct{}{})
}

// setPassword hashes and persists a new password for the user.
func (h *AuthHandler) setPassword(r *http.Request, user *domain.User, password string) error {
	hashed, err := h.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.HashedPassword = hashed
	user.UpdatedAt = time.Now().UTC()
	return h.userStore.Update(r.Context(), user)
}

// generateCSRFToken returns a URL-safe random token for anonymous clients.
func generateCSRFToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
