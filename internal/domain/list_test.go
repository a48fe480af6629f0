package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

func TestNewList(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()

	t.Run("creates valid list", func(t *testing.T) {
		t.Parallel()

		list, err := domain.NewList(ownerID, "Groceries")
		require.NoError(t, err)

		assert.Equal(t, ownerID, list.UserID)
		assert.Equal(t, "Groceries", list.Name)
		assert.NotEqual(t, uuid.Nil, list.ID)
	})

	t.Run("rejects missing owner", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewList(uuid.Nil, "Groceries")
		assert.ErrorIs(t, err, domain.ErrEmptyListOwner)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewList(ownerID, "")
		assert.ErrorIs(t, err, domain.ErrEmptyListName)
	})

	t.Run("rejects overlong name", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewList(ownerID, strings.Repeat("x", 256))
		assert.ErrorIs(t, err, domain.ErrListNameTooLong)
	})
}

func TestListRename(t *testing.T) {
	t.Parallel()

	list, err := domain.NewList(uuid.New(), "Groceries")
	require.NoError(t, err)

	require.NoError(t, list.Rename("Errands"))
	assert.Equal(t, "Errands", list.Name)

	assert.ErrorIs(t, list.Rename(""), domain.ErrEmptyListName)
	assert.ErrorIs(t, list.Rename(strings.Repeat("x", 256)), domain.ErrListNameTooLong)
	assert.Equal(t, "Errands", list.Name, "failed rename must not change the name")
}
