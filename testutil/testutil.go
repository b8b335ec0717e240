// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/signup-web/cliparse"
	"github.com/danielhkuo/signup-web/db"
)

// TestDBURL is a private in-memory sqlite database per connection
const TestDBURL = "file::memory:"

// SetupTestDB opens a fresh in-memory database with the full schema
func SetupTestDB(t *testing.T) *db.Conn {
	t.Helper()

	conn, err := db.Open(db.DialectSQLite, TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseType: db.DialectSQLite,
		DatabaseURL:  TestDBURL,
		AuthAPIURL:   "http://127.0.0.1:0",
		APITimeout:   5 * time.Second,
		RedirectPath: cliparse.DefaultRedirectPath,
		LoginPath:    cliparse.DefaultLoginPath,
		SessionTTL:   time.Hour,
		IPHashSalt:   "test-ip-salt",
		JWTSecret:    "test-jwt-secret",
	}
}

// CreateTestSession inserts a live session and returns its ID
func CreateTestSession(t *testing.T, conn *db.Conn, email string) string {
	t.Helper()

	id := uuid.NewString()
	now := time.Now()
	_, err := conn.Exec(conn.Rebind(`
		INSERT INTO session (id, token, subject, email, created_at, expires_at)
		VALUES (?, 'test-token', 'test-subject', ?, ?, ?)
	`), id, email, now.Unix(), now.Add(time.Hour).Unix())
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return id
}

// CountRows returns the number of rows in table matching the optional where clause
func CountRows(t *testing.T, conn *db.Conn, table, where string, args ...any) int {
	t.Helper()

	q := "SELECT COUNT(*) FROM " + table
	if where != "" {
		q += " WHERE " + where
	}

	var n int
	if err := conn.QueryRow(conn.Rebind(q), args...).Scan(&n); err != nil {
		t.Fatalf("Failed to count %s rows: %v", table, err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeFormRequest creates a form-encoded HTTP test request
func MakeFormRequest(method, path string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
