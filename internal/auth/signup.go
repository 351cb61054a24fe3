// SPDX-License-Identifier: AGPL-3.0-only
package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/mirrorapp/mirror/internal/api"
)

// DefaultCheckDelay is how long the availability checker waits after the
// last keystroke before asking the server.
const DefaultCheckDelay = 300 * time.Millisecond

// Availability states for a checked field.
const (
	AvailabilityUnknown = "unknown"
	AvailabilityPending = "pending"
	Available           = "available"
	Unavailable         = "taken"
)

// SignupController owns the signup form: two live availability checkers
// and the final submit.
type SignupController struct {
	api      *api.Client
	Username *AvailabilityChecker
	Email    *AvailabilityChecker
}

func NewSignupController(client *api.Client) *SignupController {
	return &SignupController{
		api: client,
		Username: NewAvailabilityChecker(DefaultCheckDelay,
			func(v string) bool { return len(v) >= 3 },
			client.CheckUsername),
		Email: NewAvailabilityChecker(DefaultCheckDelay,
			ValidEmail,
			client.CheckEmail),
	}
}

// Submit validates the form, gates on both availability checks, and
// performs one signup call.
func (s *SignupController) Submit(username, email, password, confirm string) error {
	if username == "" || email == "" || password == "" || confirm == "" {
		return ErrMissingFields
	}
	if s.Username.State() != Available {
		return ErrUsernameUnavailable
	}
	if s.Email.State() != Available {
		return ErrEmailUnavailable
	}
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if password != confirm {
		return ErrPasswordMismatch
	}

	return s.api.Signup(username, email, password)
}

// AvailabilityChecker debounces live availability lookups for one field.
// Each keystroke resets the quiet-period timer and cancels any in-flight
// request, so a burst of typing costs at most one call and a stale reply
// can never overwrite a newer value's result.
type AvailabilityChecker struct {
	delay time.Duration
	ready func(string) bool
	check func(context.Context, string) (bool, error)

	mu     sync.Mutex
	value  string
	state  string
	timer  *time.Timer
	cancel context.CancelFunc
}

func NewAvailabilityChecker(delay time.Duration, ready func(string) bool, check func(context.Context, string) (bool, error)) *AvailabilityChecker {
	return &AvailabilityChecker{
		delay: delay,
		ready: ready,
		check: check,
		state: AvailabilityUnknown,
	}
}

// Set records the field's current value. Values the ready gate rejects
// (too short, malformed) reset the state to unknown without a lookup.
func (a *AvailabilityChecker) Set(value string) {
	value = strings.TrimSpace(value)

	a.mu.Lock()
	defer a.mu.Unlock()

	a.value = value

	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}

	if !a.ready(value) {
		a.state = AvailabilityUnknown
		return
	}

	a.state = AvailabilityPending
	a.timer = time.AfterFunc(a.delay, func() { a.lookup(value) })
}

func (a *AvailabilityChecker) lookup(value string) {
	ctx, cancel := context.WithCancel(context.Background())

	a.mu.Lock()
	if a.value != value {
		a.mu.Unlock()
		cancel()
		return
	}
	a.cancel = cancel
	a.mu.Unlock()

	available, err := a.check(ctx, value)

	a.mu.Lock()
	defer a.mu.Unlock()
	cancel()

	if a.value != value {
		// A newer keystroke owns the state now.
		return
	}
	a.cancel = nil

	switch {
	case err != nil:
		a.state = AvailabilityUnknown
	case available:
		a.state = Available
	default:
		a.state = Unavailable
	}
}

// State returns the current availability of the last value set.
func (a *AvailabilityChecker) State() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}
