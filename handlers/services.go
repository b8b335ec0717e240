// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/signup-web/apiclient"
	"github.com/danielhkuo/signup-web/audit"
	"github.com/danielhkuo/signup-web/captcha"
	"github.com/danielhkuo/signup-web/cliparse"
	"github.com/danielhkuo/signup-web/db"
	"github.com/danielhkuo/signup-web/form"
	"github.com/danielhkuo/signup-web/metrics"
	"github.com/danielhkuo/signup-web/models"
	"github.com/danielhkuo/signup-web/session"
	"github.com/danielhkuo/signup-web/ui"
)

// Services are the collaborators shared by the page handlers.
type Services struct {
	Pages    *ui.Renderer
	Forms    *form.Registry
	API      form.Registrar
	Sessions *session.Store
	Attempts *audit.Store
	Captchas *captcha.Ledger
	Metrics  *metrics.Metrics
}

// NewServices wires the collaborators from the configuration and registers
// the metrics with reg.
func NewServices(conn *db.Conn, cfg cliparse.Config, reg prometheus.Registerer) (*Services, error) {
	pages, err := ui.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	m := metrics.New(reg)
	client := apiclient.New(cfg.AuthAPIURL, nil, cfg.APITimeout)

	return &Services{
		Pages:    pages,
		Forms:    form.NewRegistry(form.DefaultFormTTL),
		API:      &timedRegistrar{next: client, metrics: m},
		Sessions: session.NewStore(conn, cfg.SessionTTL),
		Attempts: audit.NewStore(conn),
		Captchas: captcha.NewLedger(0),
		Metrics:  m,
	}, nil
}

// timedRegistrar records the latency of every registration API call.
type timedRegistrar struct {
	next    form.Registrar
	metrics *metrics.Metrics
}

func (t *timedRegistrar) Register(ctx context.Context, req models.RegisterRequest) (*models.RegisteredUser, error) {
	start := time.Now()
	user, err := t.next.Register(ctx, req)
	t.metrics.Upstream(start, err)
	return user, err
}
