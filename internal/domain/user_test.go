package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	birth := time.Date(1990, time.March, 14, 0, 0, 0, 0, time.UTC)

	t.Run("valid user with generated id", func(t *testing.T) {
		user, err := NewUser(uuid.Nil, " ana@example.com ", "Ana", "Pérez", &birth, "password123")

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "ana@example.com", user.Email)
		assert.Equal(t, "Ana", user.FirstName)
		assert.Equal(t, "Pérez", user.LastName)
		assert.Equal(t, &birth, user.BirthDate)
		assert.Equal(t, "password123", user.Password)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("keeps provided id", func(t *testing.T) {
		id := uuid.MustParse("3fa85f64-5717-4562-b3fc-2c963f66afa6")
		user, err := NewUser(id, "ana@example.com", "Ana", "Pérez", nil, "password123")

		require.NoError(t, err)
		assert.Equal(t, id, user.ID)
		assert.Nil(t, user.BirthDate)
	})
}

func TestUserValidate(t *testing.T) {
	future := time.Now().Add(48 * time.Hour)
	valid := func() User {
		return User{
			ID:        uuid.New(),
			Email:     "ana@example.com",
			FirstName: "Ana",
			LastName:  "Pérez",
			Password:  "password123",
		}
	}

	tests := []struct {
		name    string
		mutate  func(u *User)
		wantErr error
		field   string
	}{
		{"valid", func(u *User) {}, nil, ""},
		{"stored user with hash only", func(u *User) { u.Password = ""; u.PasswordHash = "$2a$10$hash" }, nil, ""},
		{"nil id", func(u *User) { u.ID = uuid.Nil }, ErrInvalidID, "user_id"},
		{"empty email", func(u *User) { u.Email = "" }, ErrInvalidEmail, "email"},
		{"malformed email", func(u *User) { u.Email = "not-an-email" }, ErrInvalidEmail, "email"},
		{"empty first name", func(u *User) { u.FirstName = "" }, ErrInvalidName, "first_name"},
		{"long last name", func(u *User) { u.LastName = strings.Repeat("a", MaxNameLength+1) }, ErrInvalidName, "last_name"},
		{"name at limit", func(u *User) { u.FirstName = strings.Repeat("ñ", MaxNameLength) }, nil, ""},
		{"future birth date", func(u *User) { u.BirthDate = &future }, ErrInvalidBirthDate, "birth_date"},
		{"short password", func(u *User) { u.Password = "short" }, ErrInvalidPassword, "password"},
		{"long password", func(u *User) { u.Password = strings.Repeat("p", MaxPasswordLength+1) }, ErrInvalidPassword, "password"},
		{"no credentials", func(u *User) { u.Password = "" }, ErrInvalidPassword, "password"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			u := valid()
			tc.mutate(&u)

			err := u.Validate()

			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.wantErr), "expected %v, got %v", tc.wantErr, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestUserAuthor(t *testing.T) {
	birth := time.Date(1985, time.July, 1, 0, 0, 0, 0, time.UTC)
	user := User{
		ID:           uuid.New(),
		Email:        "ana@example.com",
		FirstName:    "Ana",
		LastName:     "Pérez",
		BirthDate:    &birth,
		PasswordHash: "secret-hash",
	}

	author := user.Author()

	assert.Equal(t, Author{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		BirthDate: &birth,
	}, author)
}

func TestParseBirthDate(t *testing.T) {
	got, err := ParseBirthDate("2001-09-30")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2001-09-30", *FormatBirthDate(got))

	got, err = ParseBirthDate("  ")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Nil(t, FormatBirthDate(got))

	_, err = ParseBirthDate("30/09/2001")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidBirthDate))
}

func TestValidationErrorMessage(t *testing.T) {
	err := NewValidationError("email", "has invalid format", nil)

	assert.Equal(t, "email has invalid format", err.Error())
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, ErrValidation, errors.Unwrap(err))
}
