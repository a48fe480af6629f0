package shared

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Standard validation messages, matching the serializer wording clients
// already depend on.
const (
	MsgRequired     = "This field is required."
	MsgBlank        = "This field may not be blank."
	MsgInvalidEmail = "Enter a valid email address."
	MsgTooLong      = "Ensure this field has no more than 255 characters."
	MsgUnique       = "This field must be unique."
)

// Global validator instance for reuse. Field names in validation errors use
// the json tag so they line up with the request body.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// DecodeJSON decodes the request body into the given struct.
func DecodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// ValidateRequest validates the given struct and converts any failures into
// field-keyed messages. Returns nil when the struct is valid.
func ValidateRequest(v interface{}) FieldErrors {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fields := FieldErrors{}

	var validationErrs validator.ValidationErrors
	if ok := errorsAs(err, &validationErrs); !ok {
		fields.Add(NonFieldErrorsKey, "Invalid request.")
		return fields
	}

	for _, fe := range validationErrs {
		fields.Add(fe.Field(), messageForTag(fe))
	}
	return fields
}

func errorsAs(err error, target *validator.ValidationErrors) bool {
	ve, ok := err.(validator.ValidationErrors)
	if ok {
		*target = ve
	}
	return ok
}

func messageForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "email":
		return MsgInvalidEmail
	case "max":
		return MsgTooLong
	case "min":
		return MsgBlank
	default:
		return "Invalid value."
	}
}
