package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

func TestNewTask(t *testing.T) {
	t.Parallel()

	listID := uuid.New()

	t.Run("creates valid task", func(t *testing.T) {
		t.Parallel()

		task, err := domain.NewTask(listID, "Buy milk", "Two liters, whole")
		require.NoError(t, err)

		assert.Equal(t, listID, task.ListID)
		assert.Equal(t, "Buy milk", task.Name)
		assert.Equal(t, "Two liters, whole", task.Description)
		assert.NotEqual(t, uuid.Nil, task.ID)
	})

	t.Run("allows empty description", func(t *testing.T) {
		t.Parallel()

		task, err := domain.NewTask(listID, "Buy milk", "")
		require.NoError(t, err)
		assert.Empty(t, task.Description)
	})

	t.Run("rejects missing list", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewTask(uuid.Nil, "Buy milk", "")
		assert.ErrorIs(t, err, domain.ErrEmptyTaskList)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewTask(listID, "", "")
		assert.ErrorIs(t, err, domain.ErrEmptyTaskName)
	})

	t.Run("rejects overlong name", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewTask(listID, strings.Repeat("x", 256), "")
		assert.ErrorIs(t, err, domain.ErrTaskNameTooLong)
	})
}
