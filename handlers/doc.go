// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP handlers of the sign-up site.

# Handler Types

Each handler is a struct holding the shared Services and the Config:

  - RegisterHandler: the sign-up page, its submission and live validation
  - AccountHandler: sign-in placeholder, dashboard and logout

Services are wired once from the configuration:

	svc, err := handlers.NewServices(conn, cfg, prometheus.DefaultRegisterer)
	registerHandler := handlers.NewRegisterHandler(svc, cfg)

# Sign-up Flow

	GET  /register          → ShowForm (new form ID)
	POST /register/validate → Validate (change, blur or dismiss; JSON)
	POST /register          → Submit

Submit drives form.Form.Submit with collaborators bound to the request: the
posted CAPTCHA token (only when a site key is configured), a session writer
that sets the session cookie, and a navigator answering 303 See Other.

Status codes of a re-rendered sign-up page:

	409 a submission for the form is already in flight, or the email is taken
	422 the values are invalid
	403 the CAPTCHA was rejected
	502 any other registration failure

Every submission is recorded in registration_attempt and counted in
signup_registration_submissions_total.

# Session Pages

GET /dashboard requires a live session cookie and otherwise redirects to the
sign-in page. POST /logout deletes the session and clears the cookie.
*/
package handlers
