// SPDX-License-Identifier: AGPL-3.0-only
// Package auth holds the stateless login, signup and forgot-password form
// controllers. Each validates locally, issues one call per submit, and
// keeps nothing between calls beyond what its own flow needs.
package auth

import (
	"errors"
	"strings"
)

// MinPasswordLength is the shortest password the signup and reset forms
// accept, matching the server's own rule.
const MinPasswordLength = 8

// Validation failures. They are raised before any network call and map to
// immediate local notices.
var (
	ErrMissingFields       = errors.New("all fields are required")
	ErrMissingCredentials  = errors.New("a username and password are required")
	ErrInvalidEmail        = errors.New("enter a valid e-mail address")
	ErrPasswordTooShort    = errors.New("the password must be at least 8 characters long")
	ErrPasswordMismatch    = errors.New("the passwords do not match")
	ErrUsernameUnavailable = errors.New("that username is already taken")
	ErrEmailUnavailable    = errors.New("that e-mail address is already in use")
	ErrNoCodeSent          = errors.New("request a verification code first")
)

// ValidEmail checks shape only: one @ with something on both sides and a
// dot somewhere in the domain. Real validation is the server's job.
func ValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at != strings.LastIndex(email, "@") {
		return false
	}
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}
