package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/api/middleware"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// requireUserID extracts the authenticated user's UUID from the request
// context, writing an error response when it is missing. The auth
// middleware guarantees presence on protected routes; this guards against
// wiring mistakes.
func requireUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithDetail(w, r, http.StatusForbidden, middleware.MsgNotAuthenticated)
		return uuid.Nil, false
	}
	return userID, true
}

// pathUUID extracts a UUID from the URL path parameters. A missing or
// malformed value is indistinguishable from an unknown resource, so the
// caller should respond with 404.
func pathUUID(r *http.Request, paramName string) (uuid.UUID, bool) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// requirePathUUID is pathUUID plus the 404 response on failure.
func requirePathUUID(w http.ResponseWriter, r *http.Request, paramName string) (uuid.UUID, bool) {
	id, ok := pathUUID(r, paramName)
	if !ok {
		shared.RespondWithDetail(w, r, http.StatusNotFound, MsgNotFound)
		return uuid.Nil, false
	}
	return id, true
}

// parsePage reads page-number pagination parameters from the query string,
// falling back to defaults for absent or malformed values.
func parsePage(r *http.Request) store.Page {
	page := store.DefaultPage()

	if raw := r.URL.Query().Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			page.Number = n
		}
	}
	if raw := r.URL.Query().Get("page_size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			page.Size = n
		}
	}

	return page.Normalize()
}
