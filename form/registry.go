// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package form

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultFormTTL bounds how long an abandoned form is kept.
const DefaultFormTTL = 30 * time.Minute

type entry struct {
	form     *Form
	lastSeen time.Time
}

// Registry holds the live forms, one per rendered sign-up page.
type Registry struct {
	mu    sync.Mutex
	forms map[string]*entry
	ttl   time.Duration
	now   func() time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultFormTTL
	}
	return &Registry{
		forms: make(map[string]*entry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// New creates and tracks a form with a fresh ID.
func (r *Registry) New() *Form {
	f := New(uuid.NewString())

	r.mu.Lock()
	defer r.mu.Unlock()
	r.forms[f.ID] = &entry{form: f, lastSeen: r.now()}
	return f
}

// Get returns a live form and refreshes its expiry.
func (r *Registry) Get(id string) (*Form, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.forms[id]
	if !ok || r.expired(e) {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.form, true
}

// GetOrCreate returns the form with the given ID. Unknown or expired IDs get a
// new form; IDs that are not UUIDs are never used as keys.
func (r *Registry) GetOrCreate(id string) *Form {
	if f, ok := r.Get(id); ok {
		return f
	}
	if _, err := uuid.Parse(id); err != nil {
		return r.New()
	}

	f := New(id)
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.forms[id]; ok && !r.expired(e) {
		// lost a race with another request for the same page
		e.lastSeen = r.now()
		return e.form
	}
	r.forms[id] = &entry{form: f, lastSeen: r.now()}
	return f
}

// Remove forgets a form, e.g. once it navigated away.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.forms, id)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forms)
}

// Sweep drops expired forms that are not mid-submission and returns how many
// were dropped.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, e := range r.forms {
		if r.expired(e) && !e.form.Loading() {
			delete(r.forms, id)
			n++
		}
	}
	return n
}

// Run sweeps on every tick until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

func (r *Registry) expired(e *entry) bool {
	return r.now().Sub(e.lastSeen) > r.ttl
}
