package domain

import (
	"fmt"
	"strings"
	"time"
)

// User validation errors.
var (
	ErrEmptyUsername = fmt.Errorf("%w: username cannot be empty", ErrValidation)
	ErrEmptyEmail    = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrInvalidEmail  = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrEmptyPassword = fmt.Errorf("%w: password cannot be empty", ErrValidation)
)

// User represents a registered customer account.
// The ID is assigned by the store when the user is first persisted.
type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext password, used only until hashed
	HashedPassword string    `json:"-"`
	Superuser      bool      `json:"superuser"`
	CreatedAt      time.Time `json:"createdAt"`
}

// NewUser creates a new User with the given credentials.
// The caller is responsible for hashing the password before storing the user.
func NewUser(username, email, password string) (*User, error) {
	user := &User{
		Username:  strings.TrimSpace(username),
		Email:     strings.TrimSpace(email),
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrEmptyUsername
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	// Either a plaintext password awaiting hashing or a stored hash is required.
	if u.Password == "" && u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// validateEmailFormat requires a non-empty local part and a dotted domain.
func validateEmailFormat(email string) bool {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domainPart := email[at+1:]
	if strings.ContainsAny(domainPart, "@ ") {
		return false
	}

	dot := strings.IndexByte(domainPart, '.')
	return dot > 0 && dot < len(domainPart)-1
}
