// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/danielhkuo/signup-web/auth"
	"github.com/danielhkuo/signup-web/db"
	"github.com/danielhkuo/signup-web/models"
)

// Store appends to the registration_attempt table.
type Store struct {
	conn *db.Conn
	now  func() time.Time
}

func NewStore(conn *db.Conn) *Store {
	return &Store{conn: conn, now: time.Now}
}

// Record stores one attempt. ID and CreatedAt are filled in when empty.
func (s *Store) Record(ctx context.Context, a models.RegistrationAttempt) error {
	if a.ID == "" {
		id, err := auth.GenerateID(16)
		if err != nil {
			return err
		}
		a.ID = id
	}
	if a.CreatedAt == 0 {
		a.CreatedAt = s.now().Unix()
	}

	_, err := s.conn.ExecContext(ctx, s.conn.Rebind(`
		INSERT INTO registration_attempt (id, email, outcome, error_code, ip_hash, user_agent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`), a.ID, a.Email, a.Outcome, nullable(a.ErrorCode), nullable(a.IPHash), nullable(a.UserAgent), a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert registration attempt: %w", err)
	}
	return nil
}

// ListByEmail returns the attempts for email, newest first.
func (s *Store) ListByEmail(ctx context.Context, email string, limit int) ([]models.RegistrationAttempt, error) {
	rows, err := s.conn.QueryContext(ctx, s.conn.Rebind(`
		SELECT id, email, outcome, COALESCE(error_code, ''), COALESCE(ip_hash, ''), COALESCE(user_agent, ''), created_at
		FROM registration_attempt
		WHERE email = ?
		ORDER BY created_at DESC, id
		LIMIT ?
	`), email, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query registration attempts: %w", err)
	}
	defer rows.Close()

	var out []models.RegistrationAttempt
	for rows.Next() {
		var a models.RegistrationAttempt
		if err := rows.Scan(&a.ID, &a.Email, &a.Outcome, &a.ErrorCode, &a.IPHash, &a.UserAgent, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan registration attempt: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
