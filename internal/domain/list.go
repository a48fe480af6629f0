package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// List validation errors
var (
	ErrEmptyListID     = errors.New("list ID cannot be empty")
	ErrEmptyListOwner  = errors.New("list owner cannot be empty")
	ErrEmptyListName   = errors.New("list name cannot be empty")
	ErrListNameTooLong = errors.New("list name must be at most 255 characters long")
)

// maxNameLength bounds the name columns the same way the database schema does.
const maxNameLength = 255

// List is a named collection of tasks owned by exactly one user.
// Deleting the owning user deletes the list; deleting a list deletes its
// tasks. Both cascades are enforced by foreign keys in the schema.
type List struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewList creates a new List owned by the given user.
// Returns an error if validation fails.
func NewList(userID uuid.UUID, name string) (*List, error) {
	list := &List{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := list.Validate(); err != nil {
		return nil, err
	}

	return list, nil
}

// Validate checks if the List has valid data.
func (l *List) Validate() error {
	if l.ID == uuid.Nil {
		return ErrEmptyListID
	}
	if l.UserID == uuid.Nil {
		return ErrEmptyListOwner
	}
	if l.Name == "" {
		return ErrEmptyListName
	}
	if len(l.Name) > maxNameLength {
		return ErrListNameTooLong
	}
	return nil
}

// Rename validates and applies a new name.
func (l *List) Rename(name string) error {
	if name == "" {
		return ErrEmptyListName
	}
	if len(name) > maxNameLength {
		return ErrListNameTooLong
	}
	l.Name = name
	l.UpdatedAt = time.Now().UTC()
	return nil
}
