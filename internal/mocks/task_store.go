package mocks

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
type MockTaskStore struct {
	CreateFn      func(ctx context.Context, task *domain.Task) error
	GetForOwnerFn func(ctx context.Context, id, listID, ownerID uuid.UUID) (*domain.Task, error)
	ListForListFn func(ctx context.Context, listID, ownerID uuid.UUID, page store.Page) (*store.TaskPage, error)
	UpdateFn      func(ctx context.Context, task *domain.Task, ownerID uuid.UUID) error
	DeleteFn      func(ctx context.Context, id, listID, ownerID uuid.UUID) error

	// Tasks backs the default implementation, keyed by task ID. ListOwners
	// maps list ID to owning user ID so ownership scoping can be simulated.
	Tasks      map[uuid.UUID]*domain.Task
	ListOwners map[uuid.UUID]uuid.UUID
}

// NewMockTaskStore creates a mock store with empty in-memory maps.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks:      make(map[uuid.UUID]*domain.Task),
		ListOwners: make(map[uuid.UUID]uuid.UUID),
	}
}

func (m *MockTaskStore) visible(task *domain.Task, listID, ownerID uuid.UUID) bool {
	if task.ListID != listID {
		return false
	}
	return m.ListOwners[listID] == ownerID
}

// Create implements the TaskStore interface.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if _, ok := m.ListOwners[task.ListID]; !ok {
		return store.ErrListNotFound
	}
	m.Tasks[task.ID] = task
	return nil
}

// GetForOwner implements the TaskStore interface.
func (m *MockTaskStore) GetForOwner(
	ctx context.Context,
	id, listID, ownerID uuid.UUID,
) (*domain.Task, error) {
	if m.GetForOwnerFn != nil {
		return m.GetForOwnerFn(ctx, id, listID, ownerID)
	}

	task, ok := m.Tasks[id]
	if !ok || !m.visible(task, listID, ownerID) {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

// ListForList implements the TaskStore interface. The default implementation
// orders by creation time descending, matching the real store.
func (m *MockTaskStore) ListForList(
	ctx context.Context,
	listID, ownerID uuid.UUID,
	page store.Page,
) (*store.TaskPage, error) {
	if m.ListForListFn != nil {
		return m.ListForListFn(ctx, listID, ownerID, page)
	}

	var visible []*domain.Task
	for _, task := range m.Tasks {
		if m.visible(task, listID, ownerID) {
			visible = append(visible, task)
		}
	}
	sort.Slice(visible, func(i, j int) bool {
		return visible[i].CreatedAt.After(visible[j].CreatedAt)
	})

	page = page.Normalize()
	start := page.Offset()
	if start > len(visible) {
		start = len(visible)
	}
	end := start + page.Limit()
	if end > len(visible) {
		end = len(visible)
	}

	return &store.TaskPage{Count: len(visible), Items: visible[start:end]}, nil
}

// Update implements the TaskStore interface.
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task, ownerID uuid.UUID) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task, ownerID)
	}

	existing, ok := m.Tasks[task.ID]
	if !ok || !m.visible(existing, task.ListID, ownerID) {
		return store.ErrTaskNotFound
	}
	m.Tasks[task.ID] = task
	return nil
}

// Delete implements the TaskStore interface.
func (m *MockTaskStore) Delete(ctx context.Context, id, listID, ownerID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id, listID, ownerID)
	}

	existing, ok := m.Tasks[id]
	if !ok || !m.visible(existing, listID, ownerID) {
		return store.ErrTaskNotFound
	}
	delete(m.Tasks, id)
	return nil
}
