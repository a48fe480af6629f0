package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("creates user with normalized email", func(t *testing.T) {
		t.Parallel()

		user, err := domain.NewUser("  Alice@Example.COM ", "Alice", "Smith")
		require.NoError(t, err)

		assert.Equal(t, "alice@example.com", user.Email)
		assert.Equal(t, "Alice", user.FirstName)
		assert.Equal(t, "Smith", user.LastName)
		assert.False(t, user.IsStaff)
		assert.NotEmpty(t, user.ID)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("rejects empty email", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewUser("", "Alice", "Smith")
		assert.ErrorIs(t, err, domain.ErrEmptyEmail)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewUser("not-an-email", "Alice", "Smith")
		assert.ErrorIs(t, err, domain.ErrInvalidEmail)
	})
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercases", input: "Bob@Example.com", want: "bob@example.com"},
		{name: "trims whitespace", input: "  bob@example.com  ", want: "bob@example.com"},
		{name: "already normalized", input: "bob@example.com", want: "bob@example.com"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, domain.NormalizeEmail(tc.input))
		})
	}
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{name: "valid password", password: "correct horse battery", wantErr: nil},
		{name: "exactly eight characters", password: "pass1234", wantErr: nil},
		{name: "too short", password: "short1", wantErr: domain.ErrPasswordTooShort},
		{
			name:     "too long",
			password: strings.Repeat("a", 73),
			wantErr:  domain.ErrPasswordTooLong,
		},
		{name: "entirely numeric", password: "1234567890", wantErr: domain.ErrPasswordNumeric},
		{name: "numeric with letter", password: "1234567a90", wantErr: nil},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := domain.ValidatePassword(tc.password)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.ErrorIs(t, err, domain.ErrInvalidPassword,
					"every policy failure reports the common sentinel")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserSetEmail(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser("alice@example.com", "Alice", "Smith")
	require.NoError(t, err)

	require.NoError(t, user.SetEmail("  NEW@Example.com "))
	assert.Equal(t, "new@example.com", user.Email)

	assert.ErrorIs(t, user.SetEmail("bogus"), domain.ErrInvalidEmail)
	assert.Equal(t, "new@example.com", user.Email, "failed update must not change the email")
}

func TestUserValidate(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser("alice@example.com", "Alice", "Smith")
	require.NoError(t, err)
	assert.NoError(t, user.Validate())

	user.ID = uuid.Nil
	assert.ErrorIs(t, user.Validate(), domain.ErrEmptyUserID)
}
