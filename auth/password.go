package auth

import (
	"errors"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

const (
	// PasswordHashCost is the bcrypt work factor applied to every stored password.
	PasswordHashCost = 10
	// MinPasswordLength is the shortest password accepted at registration.
	MinPasswordLength = 6
	// maxPasswordBytes is the bcrypt input limit; longer inputs are rejected, not truncated.
	maxPasswordBytes = 72
)

var (
	ErrEmptyPassword    = errors.New("password is required")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong  = errors.New("password must be at most 72 bytes")
)

// ValidatePassword applies the registration rules to a plaintext password.
func ValidatePassword(password string) error {
	switch {
	case password == "":
		return ErrEmptyPassword
	case len([]rune(password)) < MinPasswordLength:
		return ErrPasswordTooShort
	case len(password) > maxPasswordBytes:
		return ErrPasswordTooLong
	}
	return nil
}

// HashPassword validates password and returns its salted bcrypt hash.
func HashPassword(password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches hash. A malformed hash
// yields false.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var (
	missingUserHashOnce sync.Once
	missingUserHash     []byte
)

// CompareMissing performs the same bcrypt work as VerifyPassword against a
// throwaway hash. Login calls it when no user matches so both failure paths
// take comparable time.
func CompareMissing(password string) {
	missingUserHashOnce.Do(func() {
		h, err := bcrypt.GenerateFromPassword([]byte("no-such-user-placeholder"), PasswordHashCost)
		if err != nil {
			panic(err)
		}
		missingUserHash = h
	})
	_ = bcrypt.CompareHashAndPassword(missingUserHash, []byte(password))
}
