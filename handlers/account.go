// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/signup-web/cliparse"
	"github.com/danielhkuo/signup-web/models"
	"github.com/danielhkuo/signup-web/session"
	"github.com/danielhkuo/signup-web/ui"
)

// RegisterPath is the sign-up page linked from the sign-in page.
const RegisterPath = "/register"

// AccountHandler serves the pages that read the persisted session.
type AccountHandler struct {
	svc *Services
	cfg cliparse.Config
}

func NewAccountHandler(svc *Services, cfg cliparse.Config) *AccountHandler {
	return &AccountHandler{svc: svc, cfg: cfg}
}

// Login handles GET /login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	view := ui.LoginView{RegisterPath: RegisterPath}
	if sess := h.current(r); sess != nil {
		view.Email = sess.Email
	}
	renderPage(w, h.svc.Pages, http.StatusOK, ui.PageLogin, view)
}

// Dashboard handles GET /dashboard
func (h *AccountHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	sess := h.current(r)
	if sess == nil {
		http.Redirect(w, r, h.cfg.LoginPath, http.StatusSeeOther)
		return
	}

	renderPage(w, h.svc.Pages, http.StatusOK, ui.PageDashboard, ui.DashboardView{
		Email:     sess.Email,
		Subject:   sess.Subject,
		LoginPath: h.cfg.LoginPath,
	})
}

// Logout handles POST /logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if id := session.FromRequest(r); id != "" {
		if err := h.svc.Sessions.Delete(r.Context(), id); err != nil {
			slog.Error("failed to delete session", "error", err)
		}
	}

	session.ClearCookie(w, h.cfg.SecureCookies)
	http.Redirect(w, r, h.cfg.LoginPath, http.StatusSeeOther)
}

// current returns the live session of the request, or nil.
func (h *AccountHandler) current(r *http.Request) *models.Session {
	id := session.FromRequest(r)
	if id == "" {
		return nil
	}

	sess, err := h.svc.Sessions.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			slog.Error("failed to load session", "error", err)
		}
		return nil
	}
	return sess
}
