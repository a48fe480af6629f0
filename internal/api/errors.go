package api

import (
	"errors"
	"net/http"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// User-facing error messages. Resources that exist but belong to another
// user are reported with the same body as absent ones so that ownership
// violations never confirm existence.
const (
	MsgNotFound                 = "Not found."
	MsgInvalidRequestBody       = "Invalid request body."
	MsgInternalError            = "An unexpected error occurred."
	MsgIncorrectEmailOrPassword = "Incorrect email or password."
	MsgInvalidToken             = "Invalid token"
	MsgCurrentPasswordIncorrect = "Current password was incorrect"
	MsgPasswordPermission       = "You do not have permission to perform this action."
	MsgListChangeNotAllowed     = "Cannot change the list of an existing task."
)

// HandleError maps internal errors to HTTP responses without leaking
// internal error types or messages to clients. Validation errors are
// expected to be handled field-wise by the caller before reaching here.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case store.IsNotFoundError(err):
		shared.RespondWithDetail(w, r, http.StatusNotFound, MsgNotFound)
	case errors.Is(err, domain.ErrUnauthorized):
		shared.RespondWithDetail(w, r, http.StatusForbidden, MsgPasswordPermission)
	default:
		log := logger.FromContext(r.Context())
		log.Error("unhandled API error", "error", err)
		shared.RespondWithDetail(w, r, http.StatusInternalServerError, MsgInternalError)
	}
}

// passwordFieldErrors maps a password policy failure to the field-keyed
// messages for the given request field.
func passwordFieldErrors(field string, err error) shared.FieldErrors {
	fields := shared.FieldErrors{}
	switch {
	case errors.Is(err, domain.ErrPasswordTooShort):
		fields.Add(field, "This password is too short. It must contain at least 8 characters.")
	case errors.Is(err, domain.ErrPasswordTooLong):
		fields.Add(field, "This password is too long. It must contain at most 72 characters.")
	case errors.Is(err, domain.ErrPasswordNumeric):
		fields.Add(field, "This password is entirely numeric.")
	default:
		fields.Add(field, "This password is not valid.")
	}
	return fields
}
