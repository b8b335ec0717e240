// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/signup-web/cliparse"
	"github.com/danielhkuo/signup-web/db"
	"github.com/danielhkuo/signup-web/handlers"
	"github.com/danielhkuo/signup-web/metrics"
	"github.com/danielhkuo/signup-web/middleware"
	"github.com/danielhkuo/signup-web/mockapi"
	"github.com/danielhkuo/signup-web/ui"
)

func NewRouter(svc *handlers.Services, cfg cliparse.Config, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	registerHandler := handlers.NewRegisterHandler(svc, cfg)
	accountHandler := handlers.NewAccountHandler(svc, cfg)

	// Health check
	mux.HandleFunc("GET /health", health)
	mux.Handle("GET /metrics", metrics.Handler(gatherer))
	mux.Handle("GET /static/", ui.Static())

	// Sign up
	mux.HandleFunc("GET /register", middleware.WithLogging(middleware.NoStore(registerHandler.ShowForm)))
	mux.HandleFunc("POST /register", middleware.WithLogging(middleware.NoStore(registerHandler.Submit)))
	mux.HandleFunc("POST /register/validate", registerHandler.Validate)

	// Session pages
	mux.HandleFunc("GET /login", middleware.WithLogging(middleware.NoStore(accountHandler.Login)))
	mux.HandleFunc("GET /dashboard", middleware.WithLogging(middleware.NoStore(accountHandler.Dashboard)))
	mux.HandleFunc("POST /logout", middleware.WithLogging(accountHandler.Logout))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, handlers.RegisterPath, http.StatusFound)
	})

	return mux
}

// NewMockRouter serves the development registration API.
func NewMockRouter(conn *db.Conn, cfg cliparse.Config, verifier mockapi.Verifier) http.Handler {
	mux := http.NewServeMux()

	apiHandler := mockapi.NewHandler(conn, cfg, verifier)

	mux.HandleFunc("GET /health", health)
	mux.HandleFunc("POST /auth/register", middleware.WithLogging(apiHandler.Register))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(apiHandler.Login))
	mux.HandleFunc("GET /auth/me", middleware.WithLogging(apiHandler.Me))

	return middleware.CORS(mux)
}

func health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
