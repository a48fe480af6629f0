package mocks

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// MockListStore implements store.ListStore for testing.
type MockListStore struct {
	CreateFn      func(ctx context.Context, list *domain.List) error
	GetForUserFn  func(ctx context.Context, id, userID uuid.UUID) (*domain.List, error)
	ListForUserFn func(ctx context.Context, userID uuid.UUID, page store.Page) (*store.ListPage, error)
	UpdateFn      func(ctx context.Context, list *domain.List) error
	DeleteFn      func(ctx context.Context, id, userID uuid.UUID) error

	// Lists backs the default implementation, keyed by list ID.
	Lists map[uuid.UUID]*domain.List
}

// NewMockListStore creates a mock store with an empty in-memory list map.
func NewMockListStore() *MockListStore {
	return &MockListStore{Lists: make(map[uuid.UUID]*domain.List)}
}

// Create implements the ListStore interface.
func (m *MockListStore) Create(ctx context.Context, list *domain.List) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, list)
	}

	m.Lists[list.ID] = list
	return nil
}

// GetForUser implements the ListStore interface.
func (m *MockListStore) GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.List, error) {
	if m.GetForUserFn != nil {
		return m.GetForUserFn(ctx, id, userID)
	}

	list, ok := m.Lists[id]
	if !ok || list.UserID != userID {
		return nil, store.ErrListNotFound
	}
	return list, nil
}

// ListForUser implements the ListStore interface. The default implementation
// orders by creation time descending, matching the real store.
func (m *MockListStore) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	page store.Page,
) (*store.ListPage, error) {
	if m.ListForUserFn != nil {
		return m.ListForUserFn(ctx, userID, page)
	}

	var owned []*domain.List
	for _, list := range m.Lists {
		if list.UserID == userID {
			owned = append(owned, list)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	page = page.Normalize()
	start := page.Offset()
	if start > len(owned) {
		start = len(owned)
	}
	end := start + page.Limit()
	if end > len(owned) {
		end = len(owned)
	}

	return &store.ListPage{Count: len(owned), Items: owned[start:end]}, nil
}

// Update implements the ListStore interface.
func (m *MockListStore) Update(ctx context.Context, list *domain.List) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, list)
	}

	existing, ok := m.Lists[list.ID]
	if !ok || existing.UserID != list.UserID {
		return store.ErrListNotFound
	}
	m.Lists[list.ID] = list
	return nil
}

// Delete implements the ListStore interface.
func (m *MockListStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id, userID)
	}

	existing, ok := m.Lists[id]
	if !ok || existing.UserID != userID {
		return store.ErrListNotFound
	}
	delete(m.Lists, id)
	return nil
}
