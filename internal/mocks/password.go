package mocks

import (
	"errors"

	"github.com/fmardones/reparto-api/internal/service/auth"
)

// MockPasswordHasher implements auth.PasswordHasher for testing. The
// default prefixes the plaintext so MockPasswordVerifier can match it.
type MockPasswordHasher struct {
	HashFn func(password string) (string, error)
	Err    error
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

// Hash implements the auth.PasswordHasher interface.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return "hashed:" + password, nil
}

// MockPasswordVerifier implements auth.PasswordVerifier for testing.
type MockPasswordVerifier struct {
	// CompareFn allows for custom comparison logic in tests
	CompareFn func(hashedPassword, password string) error

	// CompareCallCount tracks how many times Compare was called
	CompareCallCount int
}

var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)

// Compare implements the auth.PasswordVerifier interface. The default
// accepts hashes produced by MockPasswordHasher's default.
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.CompareCallCount++
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if hashedPassword == "hashed:"+password {
		return nil
	}
	return errors.New("password mismatch")
}
