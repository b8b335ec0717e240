// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ui

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderRegister(t *testing.T, view RegisterView) string {
	t.Helper()

	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageRegister, view))
	return buf.String()
}

func TestRender_RegisterPage(t *testing.T) {
	html := renderRegister(t, RegisterView{
		FormID:    "form-123",
		Values:    map[string]string{"name": "Ada", "email": "ada@example.com"},
		Errors:    map[string]string{"password": "Please enter your password"},
		LoginPath: "/login",
	})

	assert.Contains(t, html, `<title>Sign up</title>`)
	assert.Contains(t, html, `name="formId" value="form-123"`)
	assert.Contains(t, html, `value="Ada"`)
	assert.Contains(t, html, `value="ada@example.com"`)
	assert.Contains(t, html, "Please enter your password")
	assert.Contains(t, html, `href="/login"`)
	assert.Contains(t, html, `type="password" id="password"`)
	assert.Contains(t, html, "spinner--inherit", "button carries the busy spinner")
	assert.NotContains(t, html, "recaptcha", "no CAPTCHA without a site key")
	assert.NotContains(t, html, `role="alert"`)
}

func TestRender_RegisterPageStates(t *testing.T) {
	html := renderRegister(t, RegisterView{
		FormID:           "f",
		ServerError:      "Email address already taken",
		ShowPasswords:    true,
		Loading:          true,
		RecaptchaSiteKey: "site-key",
		LoginPath:        "/login",
	})

	assert.Contains(t, html, "Email address already taken")
	assert.Contains(t, html, `role="alert"`)
	assert.Contains(t, html, `type="text" id="password"`)
	assert.Contains(t, html, `type="text" id="confirmPassword"`)
	assert.Contains(t, html, `id="submit" disabled`)
	assert.Contains(t, html, `data-sitekey="site-key"`)
	assert.Contains(t, html, "https://www.google.com/recaptcha/api.js")
}

func TestRender_EscapesInput(t *testing.T) {
	html := renderRegister(t, RegisterView{
		FormID: "f",
		Values: map[string]string{"name": `"><script>alert(1)</script>`},
	})

	assert.NotContains(t, html, "<script>alert(1)</script>")
}

func TestRender_OtherPages(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, PageDashboard, DashboardView{Email: "ada@example.com"}))
	assert.Contains(t, buf.String(), "ada@example.com")
	assert.Contains(t, buf.String(), "<title>Dashboard</title>")

	buf.Reset()
	require.NoError(t, r.Render(&buf, PageLogin, LoginView{RegisterPath: "/register"}))
	assert.Contains(t, buf.String(), `href="/register"`)

	assert.Error(t, r.Render(&buf, "missing.html", nil))
}

func TestStatic(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/static/app.css", nil)
	w := httptest.NewRecorder()

	Static().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ".spinner--center")
}
