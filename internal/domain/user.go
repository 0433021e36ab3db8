package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Field limits shared by the domain and the request structs in the api package.
const (
	MaxNameLength     = 50
	MinPasswordLength = 8
	MaxPasswordLength = 64

	// BirthDateLayout is the wire and storage format of User.BirthDate.
	BirthDateLayout = "2006-01-02"
)

var emailValidator = validator.New()

// User represents a registered user.
type User struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	BirthDate *time.Time

	// Password is the plaintext password. It only lives between the request and
	// hashing in the service layer and is never persisted.
	Password string

	// PasswordHash is the bcrypt hash that is persisted.
	PasswordHash string
}

// Author is the public snapshot of a user embedded in a tweet.
type Author struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	BirthDate *time.Time
}

// NewUser builds a User from registration data and validates it.
// A nil id generates a fresh one.
func NewUser(id uuid.UUID, email, firstName, lastName string, birthDate *time.Time, password string) (*User, error) {
	if id == uuid.Nil {
		id = uuid.New()
	}

	user := &User{
		ID:        id,
		Email:     strings.TrimSpace(email),
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
		BirthDate: birthDate,
		Password:  password,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks if the User has valid data.
// Either a plaintext Password (new or changed credentials) or a PasswordHash
// (a stored user) must be present.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return NewValidationError("user_id", "cannot be empty", ErrInvalidID)
	}

	if u.Email == "" {
		return NewValidationError("email", "cannot be empty", ErrInvalidEmail)
	}
	if emailValidator.Var(u.Email, "email") != nil {
		return NewValidationError("email", "has invalid format", ErrInvalidEmail)
	}

	if err := validateName("first_name", u.FirstName); err != nil {
		return err
	}
	if err := validateName("last_name", u.LastName); err != nil {
		return err
	}

	if u.BirthDate != nil && u.BirthDate.After(time.Now()) {
		return NewValidationError("birth_date", "cannot be in the future", ErrInvalidBirthDate)
	}

	if u.Password != "" {
		n := utf8.RuneCountInString(u.Password)
		if n < MinPasswordLength {
			return NewValidationError("password", "is too short", ErrInvalidPassword)
		}
		if n > MaxPasswordLength {
			return NewValidationError("password", "is too long", ErrInvalidPassword)
		}
	} else if u.PasswordHash == "" {
		return NewValidationError("password", "cannot be empty", ErrInvalidPassword)
	}

	return nil
}

// Author returns the public snapshot of u used as a tweet's author.
func (u *User) Author() Author {
	return Author{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		BirthDate: u.BirthDate,
	}
}

// ParseBirthDate parses a YYYY-MM-DD string. An empty string means no birth date.
func ParseBirthDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(BirthDateLayout, s)
	if err != nil {
		return nil, NewValidationError("birth_date", "must use the YYYY-MM-DD format", ErrInvalidBirthDate)
	}
	return &t, nil
}

// FormatBirthDate is the inverse of ParseBirthDate.
func FormatBirthDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(BirthDateLayout)
	return &s
}

func validateName(field, value string) error {
	if value == "" {
		return NewValidationError(field, "cannot be empty", ErrInvalidName)
	}
	if utf8.RuneCountInString(value) > MaxNameLength {
		return NewValidationError(field, "is too long", ErrInvalidName)
	}
	return nil
}
