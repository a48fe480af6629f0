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

// TaskStore implements the store.TaskStore interface using a PostgreSQL
// database as the storage backend. Ownership is enforced transitively: every
// query joins through lists and filters on the list owner.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface. If logger is nil, a default logger will be used.
func NewTaskStore(db store.DBTX, log *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: log.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO tasks (id, list_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.ListID,
		task.Name,
		task.Description,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return store.ErrListNotFound
		}

		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()),
			slog.String("list_id", task.ListID.String()))
		return err
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("list_id", task.ListID.String()))
	return nil
}

// GetForOwner implements store.TaskStore.GetForOwner
func (s *TaskStore) GetForOwner(ctx context.Context, id, listID, ownerID uuid.UUID) (*domain.Task, error) {
	query := `
		SELECT t.id, t.list_id, t.name, t.description, t.created_at, t.updated_at
		FROM tasks t
		JOIN lists l ON l.id = t.list_id
		WHERE t.id = $1 AND t.list_id = $2 AND l.user_id = $3
	`

	var task domain.Task
	err := s.db.QueryRowContext(ctx, query, id, listID, ownerID).Scan(
		&task.ID,
		&task.ListID,
		&task.Name,
		&task.Description,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrTaskNotFound
		}
		return nil, err
	}

	return &task, nil
}

// ListForList implements store.TaskStore.ListForList
func (s *TaskStore) ListForList(ctx context.Context, listID, ownerID uuid.UUID, page store.Page) (*store.TaskPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM tasks t
		JOIN lists l ON l.id = t.list_id
		WHERE t.list_id = $1 AND l.user_id = $2
	`, listID, ownerID).Scan(&count)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT t.id, t.list_id, t.name, t.description, t.created_at, t.updated_at
		FROM tasks t
		JOIN lists l ON l.id = t.list_id
		WHERE t.list_id = $1 AND l.user_id = $2
		ORDER BY t.created_at DESC
		LIMIT $3 OFFSET $4
	`
	rows, err := s.db.QueryContext(ctx, query, listID, ownerID, page.Limit(), page.Offset())
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("error", err.Error()),
			slog.String("list_id", listID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Warn("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	result := &store.TaskPage{Count: count, Items: []*domain.Task{}}
	for rows.Next() {
		var task domain.Task
		if err := rows.Scan(
			&task.ID,
			&task.ListID,
			&task.Name,
			&task.Description,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result.Items = append(result.Items, &task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, task *domain.Task, ownerID uuid.UUID) error {
	if err := task.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE tasks t
		SET name = $1, description = $2, updated_at = $3
		FROM lists l
		WHERE t.id = $4 AND t.list_id = $5 AND l.id = t.list_id AND l.user_id = $6
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Name,
		task.Description,
		task.UpdatedAt,
		task.ID,
		task.ListID,
		ownerID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}

// Delete implements store.TaskStore.Delete
func (s *TaskStore) Delete(ctx context.Context, id, listID, ownerID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM tasks t
		USING lists l
		WHERE t.id = $1 AND t.list_id = $2 AND l.id = t.list_id AND l.user_id = $3
	`
	result, err := s.db.ExecContext(ctx, query, id, listID, ownerID)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return store.ErrTaskNotFound
	}

	log.Info("task deleted",
		slog.String("task_id", id.String()),
		slog.String("list_id", listID.String()))
	return nil
}
