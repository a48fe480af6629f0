package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/store"
	"github.com/taskdeck/taskdeck-api/migrations"
)

// The tests in this file require a live PostgreSQL database and are skipped
// unless DATABASE_URL is set. Each test runs inside a transaction that is
// rolled back, so the database is left untouched.

func integrationLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestTx opens the test database, applies the embedded migrations, and
// returns a transaction that is rolled back when the test finishes.
func newTestTx(t *testing.T) *sql.Tx {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("Skipping integration test - DATABASE_URL environment variable required")
	}

	db, err := sql.Open("pgx", dbURL)
	require.NoError(t, err, "failed to open database connection")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("error closing database connection: %v", err)
		}
	})

	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())
	require.NoError(t, goose.SetDialect("postgres"))
	require.NoError(t, goose.Up(db, "."), "failed to apply migrations")

	tx, err := db.Begin()
	require.NoError(t, err, "failed to begin transaction")
	t.Cleanup(func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("error rolling back transaction: %v", err)
		}
	})

	return tx
}

// seedDBUser inserts a user directly through the store.
func seedDBUser(t *testing.T, users *UserStore, email string) *domain.User {
	t.Helper()

	user, err := domain.NewUser(email, "Test", "User")
	require.NoError(t, err)
	user.HashedPassword = "not-a-real-hash"
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestUserStoreIntegration(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	users := NewUserStore(tx, integrationLogger())

	t.Run("create and fetch", func(t *testing.T) {
		user := seedDBUser(t, users, "integration@example.com")

		got, err := users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Email, got.Email)
		assert.Equal(t, user.HashedPassword, got.HashedPassword)
	})

	t.Run("email lookup is case-insensitive", func(t *testing.T) {
		user := seedDBUser(t, users, "casefold@example.com")

		got, err := users.GetByEmail(ctx, "CaseFold@Example.COM")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("update persists new fields", func(t *testing.T) {
		user := seedDBUser(t, users, "before@example.com")

		require.NoError(t, user.SetEmail("after@example.com"))
		user.FirstName = "Renamed"
		user.UpdatedAt = time.Now().UTC()
		require.NoError(t, users.Update(ctx, user))

		got, err := users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "after@example.com", got.Email)
		assert.Equal(t, "Renamed", got.FirstName)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := users.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrUserNotFound)

		assert.ErrorIs(t, users.Delete(ctx, uuid.New()), store.ErrUserNotFound)
	})

	// The unique violation aborts the shared transaction, so this runs last.
	t.Run("duplicate email differing only in case", func(t *testing.T) {
		seedDBUser(t, users, "taken@example.com")

		dup, err := domain.NewUser("Taken@Example.com", "Other", "User")
		require.NoError(t, err)
		dup.HashedPassword = "not-a-real-hash"

		err = users.Create(ctx, dup)
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})
}

func TestListStoreIntegration(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	users := NewUserStore(tx, integrationLogger())
	lists := NewListStore(tx, integrationLogger())

	owner := seedDBUser(t, users, "list-owner@example.com")
	stranger := seedDBUser(t, users, "list-stranger@example.com")

	newDBList := func(t *testing.T, userID uuid.UUID, name string) *domain.List {
		t.Helper()
		list, err := domain.NewList(userID, name)
		require.NoError(t, err)
		require.NoError(t, lists.Create(ctx, list))
		return list
	}

	t.Run("listing is owner-scoped and newest first", func(t *testing.T) {
		var ids []uuid.UUID
		for i := 0; i < 3; i++ {
			list := newDBList(t, owner.ID, fmt.Sprintf("groceries %d", i))
			// Distinct created_at values make the ordering deterministic.
			_, err := tx.ExecContext(ctx,
				"UPDATE lists SET created_at = $1 WHERE id = $2",
				time.Now().UTC().Add(time.Duration(i)*time.Second), list.ID)
			require.NoError(t, err)
			ids = append(ids, list.ID)
		}
		newDBList(t, stranger.ID, "not yours")

		page, err := lists.ListForUser(ctx, owner.ID, store.DefaultPage())
		require.NoError(t, err)
		assert.Equal(t, 3, page.Count)
		require.Len(t, page.Items, 3)
		assert.Equal(t, ids[2], page.Items[0].ID, "most recent list comes first")
		assert.Equal(t, ids[0], page.Items[2].ID)
	})

	t.Run("foreign list is invisible", func(t *testing.T) {
		list := newDBList(t, owner.ID, "private")

		_, err := lists.GetForUser(ctx, list.ID, stranger.ID)
		assert.ErrorIs(t, err, store.ErrListNotFound)

		list.Name = "hijacked"
		list.UserID = stranger.ID
		assert.ErrorIs(t, lists.Update(ctx, list), store.ErrListNotFound)

		assert.ErrorIs(t, lists.Delete(ctx, list.ID, stranger.ID), store.ErrListNotFound)
	})

	t.Run("deleting a list removes its tasks", func(t *testing.T) {
		tasks := NewTaskStore(tx, integrationLogger())
		list := newDBList(t, owner.ID, "doomed")

		for _, name := range []string{"first", "second"} {
			task, err := domain.NewTask(list.ID, name, "")
			require.NoError(t, err)
			require.NoError(t, tasks.Create(ctx, task))
		}

		require.NoError(t, lists.Delete(ctx, list.ID, owner.ID))

		var count int
		err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM tasks WHERE list_id = $1", list.ID).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 0, count, "both tasks are gone with the list")
	})
}

func TestTaskStoreIntegration(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	users := NewUserStore(tx, integrationLogger())
	lists := NewListStore(tx, integrationLogger())
	tasks := NewTaskStore(tx, integrationLogger())

	owner := seedDBUser(t, users, "task-owner@example.com")
	stranger := seedDBUser(t, users, "task-stranger@example.com")

	list, err := domain.NewList(owner.ID, "chores")
	require.NoError(t, err)
	require.NoError(t, lists.Create(ctx, list))

	newDBTask := func(t *testing.T, name string) *domain.Task {
		t.Helper()
		task, err := domain.NewTask(list.ID, name, "")
		require.NoError(t, err)
		require.NoError(t, tasks.Create(ctx, task))
		return task
	}

	t.Run("ownership is checked through the list", func(t *testing.T) {
		task := newDBTask(t, "dishes")

		got, err := tasks.GetForOwner(ctx, task.ID, list.ID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, task.Name, got.Name)

		_, err = tasks.GetForOwner(ctx, task.ID, list.ID, stranger.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		task.Name = "hijacked"
		assert.ErrorIs(t, tasks.Update(ctx, task, stranger.ID), store.ErrTaskNotFound)

		assert.ErrorIs(t, tasks.Delete(ctx, task.ID, list.ID, stranger.ID), store.ErrTaskNotFound)
	})

	t.Run("update persists through the owner join", func(t *testing.T) {
		task := newDBTask(t, "laundry")

		task.Name = "laundry, folded"
		task.Description = "fold it this time"
		task.UpdatedAt = time.Now().UTC()
		require.NoError(t, tasks.Update(ctx, task, owner.ID))

		got, err := tasks.GetForOwner(ctx, task.ID, list.ID, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, "laundry, folded", got.Name)
		assert.Equal(t, "fold it this time", got.Description)
	})

	t.Run("listing is scoped to the list owner", func(t *testing.T) {
		newDBTask(t, "sweep")

		page, err := tasks.ListForList(ctx, list.ID, stranger.ID, store.DefaultPage())
		require.NoError(t, err)
		assert.Equal(t, 0, page.Count)
		assert.Empty(t, page.Items)
	})

	// The foreign key violation aborts the shared transaction, so this runs
	// last.
	t.Run("create rejects unknown list", func(t *testing.T) {
		task, err := domain.NewTask(uuid.New(), "orphan", "")
		require.NoError(t, err)

		assert.ErrorIs(t, tasks.Create(ctx, task), store.ErrListNotFound)
	})
}

func TestUserDeleteCascadesIntegration(t *testing.T) {
	tx := newTestTx(t)
	ctx := context.Background()
	users := NewUserStore(tx, integrationLogger())
	lists := NewListStore(tx, integrationLogger())
	tasks := NewTaskStore(tx, integrationLogger())

	user := seedDBUser(t, users, "cascade@example.com")

	list, err := domain.NewList(user.ID, "everything")
	require.NoError(t, err)
	require.NoError(t, lists.Create(ctx, list))

	task, err := domain.NewTask(list.ID, "all of it", "")
	require.NoError(t, err)
	require.NoError(t, tasks.Create(ctx, task))

	require.NoError(t, users.Delete(ctx, user.ID))

	var listCount, taskCount int
	require.NoError(t, tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM lists WHERE user_id = $1", user.ID).Scan(&listCount))
	require.NoError(t, tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tasks WHERE list_id = $1", list.ID).Scan(&taskCount))
	assert.Equal(t, 0, listCount, "lists go with the user")
	assert.Equal(t, 0, taskCount, "tasks go with the user's lists")
}
