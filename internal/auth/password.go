// Package auth holds the credential and token codec: bcrypt password hashing,
// the password policy, and HS256 signed tokens for sessions, geofence checks
// and guest table sessions.
package auth

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultCost       = 10
	MinPasswordLength = 8
	MaxPasswordLength = 100
)

var (
	ErrPasswordTooShort = errors.New("La contraseña debe tener al menos 8 caracteres")
	ErrPasswordTooLong  = errors.New("La contraseña no puede tener más de 100 caracteres")
)

// HashPassword hashes plain with bcrypt. cost <= 0 uses DefaultCost.
func HashPassword(plain string, cost int) (string, error) {
	if cost <= 0 {
		cost = DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword(bcryptInput(plain), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// CheckPassword reports whether plain matches the stored bcrypt hash.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(plain)) == nil
}

// bcryptInput truncates to the 72 bytes bcrypt actually reads. Hashes created
// by the previous service were produced the same way, so they keep verifying.
func bcryptInput(plain string) []byte {
	b := []byte(plain)
	if len(b) > 72 {
		b = b[:72]
	}
	return b
}

// ValidatePasswordPolicy returns the first rule plain violates, or nil.
func ValidatePasswordPolicy(plain string) error {
	n := utf8.RuneCountInString(plain)
	if n < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if n > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}
