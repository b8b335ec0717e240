// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package captcha

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ResponseField is the form field the invisible widget fills with its token.
const ResponseField = "g-recaptcha-response"

var (
	ErrNoToken      = errors.New("captcha token missing")
	ErrTokenReused  = errors.New("captcha token already used")
	ErrInvalidToken = errors.New("captcha token rejected")
)

// Ledger remembers consumed tokens until they could no longer be valid.
type Ledger struct {
	mu   sync.Mutex
	used map[string]time.Time
	ttl  time.Duration
	now  func() time.Time
}

// NewLedger keeps tokens for ttl; reCAPTCHA tokens expire after two minutes.
func NewLedger(ttl time.Duration) *Ledger {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &Ledger{
		used: make(map[string]time.Time),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Consume marks token as used. It reports false if it already was.
func (l *Ledger) Consume(token string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.seenLocked(token) {
		return false
	}
	l.used[token] = l.now()
	return true
}

func (l *Ledger) Seen(token string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seenLocked(token)
}

func (l *Ledger) seenLocked(token string) bool {
	at, ok := l.used[token]
	return ok && l.now().Sub(at) <= l.ttl
}

// Sweep forgets tokens older than the ledger TTL.
func (l *Ledger) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for token, at := range l.used {
		if l.now().Sub(at) > l.ttl {
			delete(l.used, token)
			n++
		}
	}
	return n
}

// Challenge is the per-submission side of the invisible widget: the browser
// already executed the challenge and posted the token with the form.
type Challenge struct {
	token  string
	ledger *Ledger
}

func NewChallenge(token string, ledger *Ledger) *Challenge {
	return &Challenge{token: token, ledger: ledger}
}

// Execute returns the posted token. It never blocks: the widget resolved
// before the form was posted.
func (c *Challenge) Execute(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if c.token == "" {
		return "", ErrNoToken
	}
	if c.ledger != nil && c.ledger.Seen(c.token) {
		return "", ErrTokenReused
	}
	return c.token, nil
}

// Reset consumes the token so the next attempt needs a fresh challenge.
func (c *Challenge) Reset() {
	if c.token != "" && c.ledger != nil {
		c.ledger.Consume(c.token)
	}
}
