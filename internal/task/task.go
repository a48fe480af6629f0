// Package task provides the in-process background job queue used to decouple
// slow side effects (outgoing email) from the request/response cycle.
package task

import (
	"context"

	"github.com/google/uuid"
)

// Task type constants
const (
	// TaskTypePasswordResetEmail represents the task type for sending a
	// password-reset email.
	TaskTypePasswordResetEmail = "password_reset_email"
)

// Task represents a unit of background work to be processed.
type Task interface {
	// ID returns the task's unique identifier
	ID() uuid.UUID

	// Type returns the task type identifier
	Type() string

	// Execute runs the task logic
	Execute(ctx context.Context) error
}

// Enqueuer is the producer side of the queue. Request handlers depend on
// this interface only, never on the queue implementation.
type Enqueuer interface {
	// Enqueue adds a task to the queue for processing.
	// Returns an error if the queue is full or closed.
	Enqueue(task Task) error
}

// QueueReader provides read-only access to the task channel, allowing
// workers to consume tasks without the ability to enqueue.
type QueueReader interface {
	// GetChannel returns a read-only channel for consuming tasks
	GetChannel() <-chan Task
}
