// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the signup-web server.

signup-web renders the sign-up page, validates it live and on submit, calls
the registration API (optionally behind an invisible reCAPTCHA), keeps the
returned session in a cookie backed by the database, and redirects into the
authenticated area.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	AUTH_API_URL=http://localhost:3319 IP_HASH_SALT=... go run .

Or with flags:

	go run . -p 3318 --api-url http://localhost:3319 --ip-salt dev

A .env file in the working directory is loaded first; variables already set
in the environment win.

# Development API

The mock-api command serves the registration API the site talks to:

	JWT_SECRET=dev go run . mock-api -p 3319 -d "file:mock.db"

# Configuration

Required settings:

  - AUTH_API_URL (--api-url): Registration API base URL
  - IP_HASH_SALT (--ip-salt): Secret for hashing client IPs in the audit log

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t), DATABASE_URL (-d): sqlite (default) or postgres
  - RECAPTCHA_SITE_KEY (--recaptcha-site-key): enables the CAPTCHA step
  - REDIRECT_PATH (--redirect): where to go after sign up (default: /dashboard)
  - CONFIG_FILE (-c): YAML file filling anything not set otherwise

# Architecture

  - handlers: sign-up, validation and session pages
  - router: Route definitions using Go 1.22+ routing
  - form: form state, validation rules and the submission state machine
  - ui: embedded templates and the spinner partial
  - apiclient: registration API client
  - captcha: invisible widget tokens and server side verification
  - session, audit: database backed session and attempt stores
  - mockapi: development registration API
  - middleware, metrics, auth, db, cliparse: shared infrastructure

See package documentation for each component.
*/
package main
