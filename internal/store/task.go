package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

// TaskPage is one page of a list's tasks together with the total count.
type TaskPage struct {
	Count int
	Items []*domain.Task
}

// TaskStore defines the interface for task persistence.
// A task's effective owner is its list's owner, so every operation is scoped
// transitively: the task must belong to the given list AND that list must be
// owned by the given user. Mismatches surface as ErrTaskNotFound.
type TaskStore interface {
	// Create saves a new task.
	Create(ctx context.Context, task *domain.Task) error

	// GetForOwner retrieves a task by ID, verifying that it belongs to the
	// given list and that the list is owned by the given user.
	// Returns ErrTaskNotFound otherwise.
	GetForOwner(ctx context.Context, id, listID, ownerID uuid.UUID) (*domain.Task, error)

	// ListForList returns the tasks of one list ordered by creation time
	// descending, paginated, along with the total count. Only tasks of lists
	// owned by ownerID are visible.
	ListForList(ctx context.Context, listID, ownerID uuid.UUID, page Page) (*TaskPage, error)

	// Update modifies a task's mutable fields, scoped to the owner through
	// its list. Returns ErrTaskNotFound if the task is not visible to the
	// owner.
	Update(ctx context.Context, task *domain.Task, ownerID uuid.UUID) error

	// Delete removes a task, scoped to the owner through its list.
	// Returns ErrTaskNotFound if the task is not visible to the owner.
	Delete(ctx context.Context, id, listID, ownerID uuid.UUID) error
}
