// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"net/http"

	"github.com/danielhkuo/signup-web/models"
)

// CookieWriter persists a session and sets its cookie on one response.
// It implements form.SessionWriter.
type CookieWriter struct {
	Store  *Store
	W      http.ResponseWriter
	Secure bool

	// ID is set once the session was saved
	ID string
}

func (cw *CookieWriter) SaveSession(ctx context.Context, s models.Session) error {
	id, err := cw.Store.Save(ctx, s)
	if err != nil {
		return err
	}
	cw.ID = id
	SetCookie(cw.W, id, cw.Store.TTL(), cw.Secure)
	return nil
}
