package mocks

import (
	"strings"

	"github.com/twitterclone/twitter-api/internal/service/auth"
)

// MockPasswordHasher implements auth.PasswordHasher for testing.
// By default Hash prefixes the password with "hashed:" and Compare accepts
// exactly that form.
type MockPasswordHasher struct {
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	// CompareCallCount tracks how many times Compare was called
	CompareCallCount int
}

// Hash implements auth.PasswordHasher.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}

// Compare implements auth.PasswordHasher.
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	m.CompareCallCount++
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if strings.TrimPrefix(hashedPassword, "hashed:") == password && strings.HasPrefix(hashedPassword, "hashed:") {
		return nil
	}
	return auth.ErrInvalidCredentials
}
