package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Task validation errors
var (
	ErrEmptyTaskID     = errors.New("task ID cannot be empty")
	ErrEmptyTaskList   = errors.New("task list cannot be empty")
	ErrEmptyTaskName   = errors.New("task name cannot be empty")
	ErrTaskNameTooLong = errors.New("task name must be at most 255 characters long")
)

// Task is a single to-do item. It belongs to exactly one list and its
// effective owner is that list's owner; every task operation must verify
// ownership transitively through the list.
type Task struct {
	ID          uuid.UUID `json:"id"`
	ListID      uuid.UUID `json:"list_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask creates a new Task under the given list.
// Returns an error if validation fails.
func NewTask(listID uuid.UUID, name, description string) (*Task, error) {
	task := &Task{
		ID:          uuid.New(),
		ListID:      listID,
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.ListID == uuid.Nil {
		return ErrEmptyTaskList
	}
	if t.Name == "" {
		return ErrEmptyTaskName
	}
	if len(t.Name) > maxNameLength {
		return ErrTaskNameTooLong
	}
	return nil
}
