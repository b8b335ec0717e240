// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package form

import (
	"context"
	"fmt"
	"sync"

	"github.com/danielhkuo/signup-web/models"
)

// DefaultRedirectPath is the authenticated area entered after sign up.
const DefaultRedirectPath = "/dashboard"

// Registrar calls the remote registration endpoint.
type Registrar interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.RegisteredUser, error)
}

// Captcha is an invisible challenge. Execute may block until the challenge
// resolves; Reset invalidates the current token.
type Captcha interface {
	Execute(ctx context.Context) (string, error)
	Reset()
}

// SessionWriter persists the session of a freshly registered user.
type SessionWriter interface {
	SaveSession(ctx context.Context, s models.Session) error
}

// Navigator performs the hard redirect that ends the form's lifecycle.
type Navigator interface {
	Navigate(path string)
}

// Collaborators are the external services one submission talks to.
// A nil Captcha means no site key is configured and the step is skipped.
type Collaborators struct {
	Registrar    Registrar
	Captcha      Captcha
	Sessions     SessionWriter
	Navigator    Navigator
	RedirectPath string
}

// Status is the submission state.
type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSubmitting:
		return "submitting"
	case StatusSucceeded:
		return "succeeded"
	case StatusFailed:
		return "failed"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Form is the state of one rendered sign-up form: its values, the set of
// touched fields, the derived errors and the submission state.
// It is safe for concurrent use.
type Form struct {
	ID string

	mu            sync.Mutex
	values        Values
	touched       map[Field]bool
	errors        Errors
	showPasswords bool
	loading       bool
	serverError   string
	status        Status
}

// New returns an empty, untouched form.
func New(id string) *Form {
	return &Form{
		ID:      id,
		touched: make(map[Field]bool),
		errors:  Validate(Values{}),
	}
}

// Change records a new value for field and re-validates the whole form.
func (f *Form) Change(field Field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values = f.values.Set(field, value)
	f.errors = Validate(f.values)
}

// Blur marks field as touched and re-validates the whole form.
func (f *Form) Blur(field Field) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if field.Valid() {
		f.touched[field] = true
	}
	f.errors = Validate(f.values)
}

// TouchAll marks every field as touched so all errors become visible.
func (f *Form) TouchAll() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.touchAllLocked()
}

func (f *Form) touchAllLocked() {
	for _, field := range Fields {
		f.touched[field] = true
	}
}

func (f *Form) Values() Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Errors returns every current validation error, touched or not.
func (f *Form) Errors() Errors {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(Errors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// VisibleErrors returns the errors of touched fields only.
func (f *Form) VisibleErrors() Errors {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := Errors{}
	for field, msg := range f.errors {
		if f.touched[field] {
			out[field] = msg
		}
	}
	return out
}

func (f *Form) Touched(field Field) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touched[field]
}

// SetShowPasswords toggles plaintext rendering of both password inputs.
// It has no effect on validation.
func (f *Form) SetShowPasswords(show bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.showPasswords = show
}

func (f *Form) ShowPasswords() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.showPasswords
}

// Loading reports whether a submission is in flight.
func (f *Form) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loading
}

// ServerError is the message of the last failed submission, if any.
func (f *Form) ServerError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.serverError
}

// DismissError hides the alert.
func (f *Form) DismissError() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.serverError = ""
}

func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Submit runs one submission: validation, the optional CAPTCHA challenge, the
// registration call, then session persistence and navigation on success.
//
// While a submission is in flight further calls return ErrSubmissionInFlight
// without side effects. Invalid values return ErrInvalid before any network
// call. A failed submission leaves the values intact and sets ServerError.
func (f *Form) Submit(ctx context.Context, c Collaborators) (Status, error) {
	return f.submit(ctx, nil, c)
}

// SubmitValues replaces every value, as a full form post does, and submits
// them. The in-flight check and the replacement happen under one lock, so a
// post that arrives while another submission runs changes nothing.
func (f *Form) SubmitValues(ctx context.Context, v Values, c Collaborators) (Status, error) {
	return f.submit(ctx, &v, c)
}

func (f *Form) submit(ctx context.Context, posted *Values, c Collaborators) (Status, error) {
	f.mu.Lock()
	if f.loading {
		f.mu.Unlock()
		return StatusSubmitting, ErrSubmissionInFlight
	}

	if posted != nil {
		f.values = *posted
	}
	f.touchAllLocked()
	f.errors = Validate(f.values)
	if len(f.errors) > 0 {
		f.mu.Unlock()
		return f.status, ErrInvalid
	}

	f.loading = true
	f.serverError = ""
	f.status = StatusSubmitting
	values := f.values
	f.mu.Unlock()

	err := register(ctx, c, values)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.loading = false
	if err != nil {
		f.status = StatusFailed
		f.serverError = ServerMessage(err)
		return StatusFailed, err
	}

	f.status = StatusSucceeded
	return StatusSucceeded, nil
}

func register(ctx context.Context, c Collaborators, v Values) (err error) {
	var token string
	if c.Captcha != nil {
		// Tokens are single use, success or not
		defer c.Captcha.Reset()

		token, err = c.Captcha.Execute(ctx)
		if err != nil {
			return fmt.Errorf("captcha challenge failed: %w", err)
		}
	}

	user, err := c.Registrar.Register(ctx, models.RegisterRequest{
		Email:        v.Email,
		Password:     v.Password,
		Name:         v.Name,
		CaptchaToken: token,
	})
	if err != nil {
		return err
	}

	err = c.Sessions.SaveSession(ctx, models.Session{
		Token:   user.AccessToken,
		Subject: user.UserID,
		Email:   user.Email,
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	redirect := c.RedirectPath
	if redirect == "" {
		redirect = DefaultRedirectPath
	}
	c.Navigator.Navigate(redirect)

	return nil
}
