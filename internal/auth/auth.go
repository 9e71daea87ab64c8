// Package auth checks admin credentials against a configured bcrypt hash
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrNotConfigured      = errors.New("auth: admin account not configured")
	ErrPasswordTooShort   = errors.New("auth: password must be at least 8 characters")
)

const minPasswordLength = 8

// Admin is the single configured administrator
type Admin struct {
	Email        string
	PasswordHash string
}

// Authenticator verifies admin logins
type Authenticator struct {
	admin Admin
}

// NewAuthenticator creates an authenticator for admin
func NewAuthenticator(admin Admin) *Authenticator {
	admin.Email = strings.ToLower(strings.TrimSpace(admin.Email))
	return &Authenticator{admin: admin}
}

// Configured reports whether logins can succeed at all
func (a *Authenticator) Configured() bool {
	return a.admin.Email != "" && a.admin.PasswordHash != ""
}

// Check returns nil when email and password match the admin account
func (a *Authenticator) Check(email, password string) error {
	if !a.Configured() {
		return ErrNotConfigured
	}

	given := strings.ToLower(strings.TrimSpace(email))
	emailOK := subtle.ConstantTimeCompare([]byte(given), []byte(a.admin.Email)) == 1

	// bcrypt runs even when the email is wrong
	pwErr := bcrypt.CompareHashAndPassword([]byte(a.admin.PasswordHash), []byte(password))
	if !emailOK || pwErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword returns a bcrypt hash for storing in configuration
func HashPassword(password string) (string, error) {
	if len(password) < minPasswordLength {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
