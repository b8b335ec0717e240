// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs one line per request with method, path, status and duration_ms.
Server errors are logged at warn level.

# Caching

Pages that render form or session state are wrapped with NoStore so the
back button never shows a stale form:

	mux.HandleFunc("GET /register", middleware.WithLogging(middleware.NoStore(h)))

# CORS Middleware

The development registration API accepts cross-origin calls:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")
	middleware.CodedErrorResponse(w, http.StatusConflict, "USER_ALREADY_EXIST", "message")

Parse JSON request bodies (capped at MaxJSONBody bytes):

	var req models.ValidateFieldRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)

Registration attempts store only a salted hash of it.
*/
package middleware
