// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/signup-web/cliparse"
	"github.com/danielhkuo/signup-web/db"
	"github.com/danielhkuo/signup-web/mockapi"
	"github.com/danielhkuo/signup-web/testutil"
)

// testEnv is a site wired to a registration API served by httptest.
type testEnv struct {
	conn     *db.Conn
	cfg      cliparse.Config
	svc      *Services
	mux      *http.ServeMux
	apiCalls *atomic.Int32
}

// newTestEnv serves api as the registration API. A nil api uses the
// development implementation backed by the same database.
func newTestEnv(t *testing.T, api http.Handler, siteKey string) *testEnv {
	t.Helper()

	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	cfg.RecaptchaSiteKey = siteKey

	if api == nil {
		api = http.HandlerFunc(mockapi.NewHandler(conn, cfg, nil).Register)
	}

	calls := &atomic.Int32{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		api.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	cfg.AuthAPIURL = srv.URL

	svc, err := NewServices(conn, cfg, prometheus.NewRegistry())
	require.NoError(t, err)

	register := NewRegisterHandler(svc, cfg)
	account := NewAccountHandler(svc, cfg)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /register", register.ShowForm)
	mux.HandleFunc("POST /register", register.Submit)
	mux.HandleFunc("POST /register/validate", register.Validate)
	mux.HandleFunc("GET /login", account.Login)
	mux.HandleFunc("GET /dashboard", account.Dashboard)
	mux.HandleFunc("POST /logout", account.Logout)

	return &testEnv{conn: conn, cfg: cfg, svc: svc, mux: mux, apiCalls: calls}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.mux.ServeHTTP(w, req)
	return w
}

// submit posts the sign-up form for a fresh form ID.
func (e *testEnv) submit(values url.Values) *httptest.ResponseRecorder {
	if values.Get("formId") == "" {
		values.Set("formId", e.svc.Forms.New().ID)
	}
	req := testutil.MakeFormRequest(http.MethodPost, "/register", values)
	req.RemoteAddr = "203.0.113.7:5555"
	req.Header.Set("User-Agent", "signup-test")
	return e.do(req)
}

func validForm() url.Values {
	return url.Values{
		"name":            {"Ada Lovelace"},
		"email":           {"ada@example.com"},
		"password":        {"Secret1!x"},
		"confirmPassword": {"Secret1!x"},
	}
}

// codedAPI answers every registration with status and {"error": code}.
func codedAPI(status int, code string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(`{"error":"` + code + `"}`))
	})
}
