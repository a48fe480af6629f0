package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrPasswordTooShort    = fmt.Errorf("%w: must be at least 8 characters long", ErrInvalidPassword)
	ErrPasswordTooLong     = fmt.Errorf("%w: must be at most 72 characters long", ErrInvalidPassword)
	ErrPasswordNumeric     = fmt.Errorf("%w: cannot be entirely numeric", ErrInvalidPassword)
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered account. Emails are normalized to lower case
// so that uniqueness and lookups are case-insensitive.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	IsStaff        bool      `json:"is_staff"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given email and name fields.
// It generates a new UUID for the user ID and sets the creation/update
// timestamps. The caller is responsible for hashing a password and assigning
// HashedPassword before the user is stored.
func NewUser(email, firstName, lastName string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Email:     NormalizeEmail(email),
		FirstName: firstName,
		LastName:  lastName,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// HashedPassword is allowed to be empty here so that a user can be validated
// before its password has been hashed.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	return nil
}

// SetEmail normalizes and validates a new email address for the user.
func (u *User) SetEmail(email string) error {
	normalized := NormalizeEmail(email)
	if normalized == "" {
		return ErrEmptyEmail
	}
	if !validEmailFormat(normalized) {
		return ErrInvalidEmail
	}
	u.Email = normalized
	return nil
}

// NormalizeEmail lower-cases and trims an email address. All comparisons on
// email are done against the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidatePassword checks a candidate plaintext password against the
// password policy: between 8 and 72 bytes (bcrypt's practical limit) and not
// entirely numeric.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	if len(password) > 72 {
		return ErrPasswordTooLong
	}

	numeric := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			numeric = false
			break
		}
	}
	if numeric {
		return ErrPasswordNumeric
	}

	return nil
}

// validEmailFormat performs basic validation of email format: a local part,
// an @, and a domain containing at least one interior dot.
func validEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.IndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}
