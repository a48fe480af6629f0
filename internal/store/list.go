package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// ListPage is one page of a user's lists together with the total count.
type ListPage struct {
	Count int
	Items []*domain.List
}

// ListStore defines the interface for task-list persistence.
// Every read and write is scoped to an owner: a list that exists but belongs
// to a different user is reported as ErrListNotFound, never as a permission
// error, so that existence is not leaked.
type ListStore interface {
	// Create saves a new list.
	Create(ctx context.Context, list *domain.List) error

	// GetForUser retrieves a list by ID, scoped to the given owner.
	// Returns ErrListNotFound if the list does not exist or is owned by
	// another user.
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.List, error)

	// ListForUser returns the owner's lists ordered by creation time
	// descending, paginated, along with the total count.
	ListForUser(ctx context.Context, userID uuid.UUID, page Page) (*ListPage, error)

	// Update modifies a list's mutable fields, scoped to the given owner.
	// Returns ErrListNotFound if the list does not exist or is owned by
	// another user.
	Update(ctx context.Context, list *domain.List) error

	// Delete removes a list, scoped to the given owner. The list's tasks are
	// deleted by the schema's foreign-key cascade.
	// Returns ErrListNotFound if the list does not exist or is owned by
	// another user.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
