// SPDX-License-Identifier: AGPL-3.0-only
package auth

import (
	"sync"

	"github.com/mirrorapp/mirror/internal/api"
)

// ForgotController is the two-phase reset flow: send a code to an e-mail
// address, then redeem it with a new password. The address is locked in by
// the first phase.
type ForgotController struct {
	api *api.Client

	mu       sync.Mutex
	email    string
	codeSent bool
}

func NewForgotController(client *api.Client) *ForgotController {
	return &ForgotController{api: client}
}

func (f *ForgotController) SendCode(email string) error {
	if !ValidEmail(email) {
		return ErrInvalidEmail
	}

	if err := f.api.SendResetCode(email); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.email = email
	f.codeSent = true

	return nil
}

func (f *ForgotController) Reset(code, newPassword, confirm string) error {
	f.mu.Lock()
	email := f.email
	codeSent := f.codeSent
	f.mu.Unlock()

	if !codeSent {
		return ErrNoCodeSent
	}
	if code == "" || newPassword == "" || confirm == "" {
		return ErrMissingFields
	}
	if len(newPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if newPassword != confirm {
		return ErrPasswordMismatch
	}

	return f.api.ResetPassword(email, code, newPassword)
}

func (f *ForgotController) CodeSent() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.codeSent
}
