package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/platform/logger"
	"github.com/taskdeck/taskdeck-api/internal/store"
)

// ListStore implements the store.ListStore interface using a PostgreSQL
// database as the storage backend. All queries filter on the owning user so
// that other users' lists are indistinguishable from absent ones.
type ListStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewListStore creates a new PostgreSQL implementation of the ListStore
// interface. If logger is nil, a default logger will be used.
func NewListStore(db store.DBTX, log *slog.Logger) *ListStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &ListStore{
		db:     db,
		logger: log.With(slog.String("component", "list_store")),
	}
}

// Ensure ListStore implements store.ListStore interface
var _ store.ListStore = (*ListStore)(nil)

// Create implements store.ListStore.Create
func (s *ListStore) Create(ctx context.Context, list *domain.List) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := list.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO lists (id, user_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		list.ID,
		list.UserID,
		list.Name,
		list.CreatedAt,
		list.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrInvalidEntity
		}

		log.Error("failed to create list",
			slog.String("error", err.Error()),
			slog.String("list_id", list.ID.String()),
			slog.String("user_id", list.UserID.String()))
		return err
	}

	log.Info("list created",
		slog.String("list_id", list.ID.String()),
		slog.String("user_id", list.UserID.String()))
	return nil
}

// GetForUser implements store.ListStore.GetForUser
func (s *ListStore) GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.List, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM lists
		WHERE id = $1 AND user_id = $2
	`

	var list domain.List
	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(
		&list.ID,
		&list.UserID,
		&list.Name,
		&list.CreatedAt,
		&list.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrListNotFound
		}
		return nil, err
	}

	return &list, nil
}

// ListForUser implements store.ListStore.ListForUser
func (s *ListStore) ListForUser(ctx context.Context, userID uuid.UUID, page store.Page) (*store.ListPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM lists WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM lists
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := s.db.QueryContext(ctx, query, userID, page.Limit(), page.Offset())
	if err != nil {
		log.Error("failed to query lists",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Warn("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	result := &store.ListPage{Count: count, Items: []*domain.List{}}
	for rows.Next() {
		var list domain.List
		if err := rows.Scan(
			&list.ID,
			&list.UserID,
			&list.Name,
			&list.CreatedAt,
			&list.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result.Items = append(result.Items, &list)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// Update implements store.ListStore.Update
func (s *ListStore) Update(ctx context.Context, list *domain.List) error {
	if err := list.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE lists
		SET name = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
	`
	result, err := s.db.ExecContext(ctx, query, list.Name, list.UpdatedAt, list.ID, list.UserID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrListNotFound
	}

	return nil
}

// Delete implements store.ListStore.Delete
// The list's tasks are removed by ON DELETE CASCADE.
func (s *ListStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM lists WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		log.Error("failed to delete list",
			slog.String("error", err.Error()),
			slog.String("list_id", id.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrListNotFound
	}

	log.Info("list deleted",
		slog.String("list_id", id.String()),
		slog.String("user_id", userID.String()))
	return nil
}
