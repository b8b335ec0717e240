// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package form

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/signup-web/models"
)

type fakeRegistrar struct {
	mu      sync.Mutex
	reqs    []models.RegisterRequest
	user    *models.RegisteredUser
	err     error
	started chan struct{}
	release chan struct{}
}

func (r *fakeRegistrar) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisteredUser, error) {
	r.mu.Lock()
	r.reqs = append(r.reqs, req)
	r.mu.Unlock()

	if r.started != nil {
		close(r.started)
	}
	if r.release != nil {
		<-r.release
	}
	if r.err != nil {
		return nil, r.err
	}
	return r.user, nil
}

func (r *fakeRegistrar) calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reqs)
}

type fakeCaptcha struct {
	token    string
	err      error
	executes int
	resets   int
}

func (c *fakeCaptcha) Execute(ctx context.Context) (string, error) {
	c.executes++
	return c.token, c.err
}

func (c *fakeCaptcha) Reset() { c.resets++ }

type fakeSessions struct {
	saved []models.Session
	err   error
}

func (s *fakeSessions) SaveSession(ctx context.Context, sess models.Session) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, sess)
	return nil
}

type fakeNavigator struct{ paths []string }

func (n *fakeNavigator) Navigate(path string) { n.paths = append(n.paths, path) }

type harness struct {
	registrar *fakeRegistrar
	sessions  *fakeSessions
	navigator *fakeNavigator
}

func newHarness() *harness {
	return &harness{
		registrar: &fakeRegistrar{user: &models.RegisteredUser{
			AccessToken: "tok-123",
			UserID:      "user-1",
			Email:       "ada@example.com",
		}},
		sessions:  &fakeSessions{},
		navigator: &fakeNavigator{},
	}
}

func (h *harness) collaborators(c Captcha) Collaborators {
	return Collaborators{
		Registrar:    h.registrar,
		Captcha:      c,
		Sessions:     h.sessions,
		Navigator:    h.navigator,
		RedirectPath: "/dashboard",
	}
}

func filledForm(v Values) *Form {
	f := New("form-1")
	f.Change(FieldName, v.Name)
	f.Change(FieldEmail, v.Email)
	f.Change(FieldPassword, v.Password)
	f.Change(FieldConfirmPassword, v.ConfirmPassword)
	return f
}

func TestForm_InitialState(t *testing.T) {
	f := New("id")

	assert.Equal(t, StatusIdle, f.Status())
	assert.False(t, f.Loading())
	assert.Empty(t, f.ServerError())
	assert.Empty(t, f.VisibleErrors(), "no errors before any interaction")
	assert.NotEmpty(t, f.Errors())
}

func TestForm_TouchedGatesErrors(t *testing.T) {
	f := New("id")

	f.Change(FieldName, "A")
	assert.Empty(t, f.VisibleErrors())

	f.Blur(FieldName)
	assert.True(t, f.Touched(FieldName))
	assert.Equal(t, Errors{FieldName: "Name must contain at least 2 characters"}, f.VisibleErrors())

	f.Change(FieldName, "Ada")
	assert.Empty(t, f.VisibleErrors())

	// Changing password re-evaluates the confirm rule too
	f.Change(FieldConfirmPassword, "abc123!@")
	f.Blur(FieldConfirmPassword)
	assert.Contains(t, f.VisibleErrors(), FieldConfirmPassword)
	f.Change(FieldPassword, "abc123!@")
	assert.NotContains(t, f.VisibleErrors(), FieldConfirmPassword)
}

func TestForm_ShowPasswordsDoesNotValidate(t *testing.T) {
	f := filledForm(validValues())
	before := f.Errors()

	f.SetShowPasswords(true)

	assert.True(t, f.ShowPasswords())
	assert.Equal(t, before, f.Errors())
}

func TestSubmit_Success(t *testing.T) {
	h := newHarness()
	f := filledForm(validValues())

	status, err := f.Submit(context.Background(), h.collaborators(nil))
	require.NoError(t, err)

	assert.Equal(t, StatusSucceeded, status)
	assert.Equal(t, StatusSucceeded, f.Status())
	assert.False(t, f.Loading())

	require.Len(t, h.registrar.reqs, 1)
	assert.Equal(t, models.RegisterRequest{
		Email:        "ada@example.com",
		Password:     "abc123!@",
		Name:         "Ada Lovelace",
		CaptchaToken: "",
	}, h.registrar.reqs[0])

	require.Len(t, h.sessions.saved, 1)
	assert.Equal(t, models.Session{Token: "tok-123", Subject: "user-1", Email: "ada@example.com"}, h.sessions.saved[0])

	assert.Equal(t, []string{"/dashboard"}, h.navigator.paths)
}

func TestSubmit_DefaultRedirect(t *testing.T) {
	h := newHarness()
	c := h.collaborators(nil)
	c.RedirectPath = ""

	_, err := filledForm(validValues()).Submit(context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultRedirectPath}, h.navigator.paths)
}

func TestSubmit_InvalidBlocksNetwork(t *testing.T) {
	h := newHarness()
	v := validValues()
	v.ConfirmPassword = "different1!"
	f := filledForm(v)

	status, err := f.Submit(context.Background(), h.collaborators(nil))

	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, StatusIdle, status)
	assert.Zero(t, h.registrar.calls())
	assert.Empty(t, h.sessions.saved)
	assert.Empty(t, h.navigator.paths)
	assert.Equal(t, "Password and Confirm Password must match", f.VisibleErrors()[FieldConfirmPassword])
	assert.Empty(t, f.ServerError(), "validation and server errors never mix")
}

func TestSubmit_ServerErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"user exists", &codedError{"USER_ALREADY_EXIST"}, "Email address already taken"},
		{"unknown code", &codedError{"UNKNOWN_X"}, DefaultServerError},
		{"no body", &codedError{""}, DefaultServerError},
		{"transport", errors.New("dial tcp: connection refused"), DefaultServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness()
			h.registrar.err = tt.err
			f := filledForm(validValues())

			status, err := f.Submit(context.Background(), h.collaborators(nil))

			assert.Error(t, err)
			assert.Equal(t, StatusFailed, status)
			assert.Equal(t, tt.want, f.ServerError())
			assert.False(t, f.Loading(), "submit is re-enabled")
			assert.Equal(t, validValues(), f.Values(), "values are kept")
			assert.Empty(t, h.sessions.saved)
			assert.Empty(t, h.navigator.paths)
		})
	}
}

func TestSubmit_RetryClearsServerError(t *testing.T) {
	h := newHarness()
	h.registrar.err = &codedError{"USER_ALREADY_EXIST"}
	f := filledForm(validValues())

	_, _ = f.Submit(context.Background(), h.collaborators(nil))
	require.Equal(t, "Email address already taken", f.ServerError())

	h.registrar.err = nil
	status, err := f.Submit(context.Background(), h.collaborators(nil))
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, status)
	assert.Empty(t, f.ServerError())
	assert.Equal(t, 2, h.registrar.calls())
}

func TestSubmit_SessionWriteFailure(t *testing.T) {
	h := newHarness()
	h.sessions.err = errors.New("disk full")
	f := filledForm(validValues())

	status, err := f.Submit(context.Background(), h.collaborators(nil))

	assert.Error(t, err)
	assert.Equal(t, StatusFailed, status)
	assert.Equal(t, DefaultServerError, f.ServerError())
	assert.Empty(t, h.navigator.paths)
}

func TestSubmit_Captcha(t *testing.T) {
	t.Run("token forwarded and reset after success", func(t *testing.T) {
		h := newHarness()
		captcha := &fakeCaptcha{token: "captcha-token"}

		_, err := filledForm(validValues()).Submit(context.Background(), h.collaborators(captcha))
		require.NoError(t, err)

		assert.Equal(t, 1, captcha.executes)
		assert.Equal(t, 1, captcha.resets)
		assert.Equal(t, "captcha-token", h.registrar.reqs[0].CaptchaToken)
	})

	t.Run("reset after server failure", func(t *testing.T) {
		h := newHarness()
		h.registrar.err = &codedError{"INVALID_CAPTCHA"}
		captcha := &fakeCaptcha{token: "captcha-token"}
		f := filledForm(validValues())

		_, err := f.Submit(context.Background(), h.collaborators(captcha))
		assert.Error(t, err)

		assert.Equal(t, 1, captcha.resets)
		assert.Equal(t, "Captcha validation failed, Sign up Restricted", f.ServerError())
	})

	t.Run("challenge failure skips the network", func(t *testing.T) {
		h := newHarness()
		captcha := &fakeCaptcha{err: errors.New("challenge expired")}
		f := filledForm(validValues())

		status, err := f.Submit(context.Background(), h.collaborators(captcha))

		assert.Error(t, err)
		assert.Equal(t, StatusFailed, status)
		assert.Zero(t, h.registrar.calls())
		assert.Equal(t, 1, captcha.resets)
		assert.Equal(t, DefaultServerError, f.ServerError())
	})

	t.Run("invalid form never invokes the challenge", func(t *testing.T) {
		h := newHarness()
		captcha := &fakeCaptcha{token: "t"}

		_, err := New("id").Submit(context.Background(), h.collaborators(captcha))

		assert.ErrorIs(t, err, ErrInvalid)
		assert.Zero(t, captcha.executes)
		assert.Zero(t, captcha.resets)
	})
}

func TestSubmit_SecondSubmitWhileLoading(t *testing.T) {
	h := newHarness()
	h.registrar.started = make(chan struct{})
	h.registrar.release = make(chan struct{})
	f := filledForm(validValues())

	done := make(chan error, 1)
	go func() {
		_, err := f.Submit(context.Background(), h.collaborators(nil))
		done <- err
	}()

	select {
	case <-h.registrar.started:
	case <-time.After(5 * time.Second):
		t.Fatal("first submission never reached the registrar")
	}
	assert.True(t, f.Loading())

	status, err := f.Submit(context.Background(), h.collaborators(nil))
	assert.ErrorIs(t, err, ErrSubmissionInFlight)
	assert.Equal(t, StatusSubmitting, status)

	close(h.registrar.release)
	require.NoError(t, <-done)

	assert.Equal(t, 1, h.registrar.calls(), "exactly one network call")
	assert.Len(t, h.sessions.saved, 1)
	assert.Len(t, h.navigator.paths, 1)
}

func TestSubmitValues_InterleavedPosts(t *testing.T) {
	h := newHarness()
	h.registrar.started = make(chan struct{})
	h.registrar.release = make(chan struct{})
	h.registrar.err = &codedError{"USER_ALREADY_EXIST"}
	f := New("form-1")

	first := validValues()
	second := validValues()
	second.Email = "grace@example.com"

	done := make(chan error, 1)
	go func() {
		_, err := f.SubmitValues(context.Background(), first, h.collaborators(nil))
		done <- err
	}()

	select {
	case <-h.registrar.started:
	case <-time.After(5 * time.Second):
		t.Fatal("first submission never reached the registrar")
	}

	status, err := f.SubmitValues(context.Background(), second, h.collaborators(nil))
	assert.ErrorIs(t, err, ErrSubmissionInFlight)
	assert.Equal(t, StatusSubmitting, status)
	assert.Equal(t, first, f.Values(), "a post during a submission leaves its values alone")

	close(h.registrar.release)
	require.Error(t, <-done)

	require.Equal(t, 1, h.registrar.calls())
	assert.Equal(t, first.Email, h.registrar.reqs[0].Email)
	assert.Equal(t, first, f.Values(), "the failed submission re-renders its own values")
	assert.Equal(t, "Email address already taken", f.ServerError())
}

func TestSubmitValues_ReplacesValues(t *testing.T) {
	h := newHarness()
	f := New("form-1")
	f.Change(FieldName, "draft")

	invalid := validValues()
	invalid.Name = ""
	_, err := f.SubmitValues(context.Background(), invalid, h.collaborators(nil))
	assert.ErrorIs(t, err, ErrInvalid)
	assert.Equal(t, invalid, f.Values())
	assert.Equal(t, 0, h.registrar.calls())

	_, err = f.SubmitValues(context.Background(), validValues(), h.collaborators(nil))
	require.NoError(t, err)
	assert.Equal(t, validValues().Email, h.registrar.reqs[0].Email)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "idle", StatusIdle.String())
	assert.Equal(t, "succeeded", StatusSucceeded.String())
	assert.Equal(t, "status(9)", Status(9).String())
}
