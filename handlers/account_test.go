// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/danielhkuo/signup-web/session"
	"github.com/danielhkuo/signup-web/testutil"
)

func TestDashboard_RequiresSession(t *testing.T) {
	env := newTestEnv(t, nil, "")

	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{"no cookie", nil},
		{"unknown session", &http.Cookie{Name: session.CookieName, Value: "8f14e45f-ceea-467e-a9f1-0c9d2e2b6c11"}},
		{"garbage", &http.Cookie{Name: session.CookieName, Value: "garbage"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			w := env.do(req)

			testutil.AssertStatus(t, w, http.StatusSeeOther)
			assert.Equal(t, "/login", w.Header().Get("Location"))
		})
	}
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t, nil, "")

	w := env.do(httptest.NewRequest(http.MethodGet, "/login", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	assert.Contains(t, w.Body.String(), `href="/register"`)
	assert.NotContains(t, w.Body.String(), "Signed in as")

	id := testutil.CreateTestSession(t, env.conn, "grace@example.com")
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: id})
	w = env.do(req)
	assert.Contains(t, w.Body.String(), "Signed in as grace@example.com")
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t, nil, "")
	id := testutil.CreateTestSession(t, env.conn, "grace@example.com")

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: id})
	w := env.do(req)

	testutil.AssertStatus(t, w, http.StatusSeeOther)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	if assert.Len(t, cookies, 1) {
		assert.Negative(t, cookies[0].MaxAge)
	}

	_, err := env.svc.Sessions.Get(context.Background(), id)
	assert.ErrorIs(t, err, session.ErrNotFound)
}
