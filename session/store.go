// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/signup-web/db"
	"github.com/danielhkuo/signup-web/models"
)

// CookieName carries the session ID.
const CookieName = "signup_session"

var ErrNotFound = errors.New("session not found")

// Store persists sessions in the session table.
type Store struct {
	conn *db.Conn
	ttl  time.Duration
	now  func() time.Time
}

func NewStore(conn *db.Conn, ttl time.Duration) *Store {
	return &Store{conn: conn, ttl: ttl, now: time.Now}
}

// Save writes s under a new session ID and returns the ID.
func (s *Store) Save(ctx context.Context, sess models.Session) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate session ID: %w", err)
	}

	now := s.now()
	_, err = s.conn.ExecContext(ctx, s.conn.Rebind(`
		INSERT INTO session (id, token, subject, email, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), id.String(), sess.Token, sess.Subject, sess.Email, now.Unix(), now.Add(s.ttl).Unix())
	if err != nil {
		return "", fmt.Errorf("failed to insert session: %w", err)
	}

	return id.String(), nil
}

// Get returns a live session. Expired and unknown IDs yield ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (*models.Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	var sess models.Session
	err := s.conn.QueryRowContext(ctx, s.conn.Rebind(`
		SELECT token, subject, email, expires_at
		FROM session
		WHERE id = ? AND expires_at > ?
	`), id, s.now().Unix()).Scan(&sess.Token, &sess.Subject, &sess.Email, &sess.ExpiresAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	return &sess, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.conn.ExecContext(ctx, s.conn.Rebind(`DELETE FROM session WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// PurgeExpired removes expired sessions and returns how many were removed.
func (s *Store) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := s.conn.ExecContext(ctx, s.conn.Rebind(`DELETE FROM session WHERE expires_at <= ?`), s.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to purge sessions: %w", err)
	}
	return res.RowsAffected()
}

// TTL is the lifetime of new sessions.
func (s *Store) TTL() time.Duration { return s.ttl }

// SetCookie hands the session ID to the browser.
func SetCookie(w http.ResponseWriter, id string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie removes the session cookie.
func ClearCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest returns the session ID of the request's cookie, or "".
func FromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
