package mocks

import (
	"errors"

	"github.com/phrazzld/food-delivery-api/internal/service/auth"
)

// MockPasswordVerifier implements auth.PasswordVerifier for testing
type MockPasswordVerifier struct {
	// ShouldSucceed determines whether the password comparison should succeed
	ShouldSucceed bool

	// CompareFn allows for custom comparison logic in tests
	CompareFn func(hashedPassword, password string) error

	// CompareCallCount tracks how many times Compare was called
	CompareCallCount int
}

var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	m.CompareCallCount++

	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.ShouldSucceed {
		return nil
	}
	return errors.New("password mismatch")
}

// PlainHasher implements both auth.PasswordHasher and auth.PasswordVerifier
// with a reversible "hashed:" prefix, so service tests avoid bcrypt's cost
// while still telling hashes from plaintext.
type PlainHasher struct {
	// HashErr, when set, is returned by Hash.
	HashErr error
}

var (
	_ auth.PasswordHasher   = (*PlainHasher)(nil)
	_ auth.PasswordVerifier = (*PlainHasher)(nil)
)

// Hash implements auth.PasswordHasher.
func (h *PlainHasher) Hash(password string) (string, error) {
	if h.HashErr != nil {
		return "", h.HashErr
	}
	return "hashed:" + password, nil
}

// Compare implements auth.PasswordVerifier.
func (h *PlainHasher) Compare(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}
