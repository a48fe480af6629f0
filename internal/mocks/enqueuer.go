package mocks

import (
	"sync"

	"github.com/taskdeck/taskdeck-api/internal/task"
)

// MockEnqueuer implements task.Enqueuer for testing. It records enqueued
// tasks without executing them.
type MockEnqueuer struct {
	EnqueueFn func(t task.Task) error

	mu    sync.Mutex
	tasks []task.Task
}

// Enqueue implements the Enqueuer interface.
func (m *MockEnqueuer) Enqueue(t task.Task) error {
	if m.EnqueueFn != nil {
		return m.EnqueueFn(t)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.tasks = append(m.tasks, t)
	return nil
}

// Enqueued returns a copy of the recorded tasks.
func (m *MockEnqueuer) Enqueued() []task.Task {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]task.Task, len(m.tasks))
	copy(out, m.tasks)
	return out
}
