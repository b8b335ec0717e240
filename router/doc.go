// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes of the sign-up site and of the
development registration API.

# Route Registration

NewRouter creates a configured http.ServeMux for the site:

	svc, err := handlers.NewServices(conn, cfg, reg)
	mux := router.NewRouter(svc, cfg, reg)

# Endpoints

Operational:

	GET /health
	GET /metrics
	GET /static/...

Sign up:

	GET  /register          - Render a fresh form
	POST /register          - Submit (303 to the redirect path on success)
	POST /register/validate - Live validation of one field

Session pages:

	GET  /login     - Sign-in placeholder
	GET  /dashboard - Requires a session
	POST /logout    - Drop the session

GET / redirects to /register.

# Development API

NewMockRouter serves POST /auth/register (see package mockapi) behind the
CORS middleware.
*/
package router
