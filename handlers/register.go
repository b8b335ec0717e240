// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/signup-web/auth"
	"github.com/danielhkuo/signup-web/captcha"
	"github.com/danielhkuo/signup-web/cliparse"
	"github.com/danielhkuo/signup-web/form"
	"github.com/danielhkuo/signup-web/middleware"
	"github.com/danielhkuo/signup-web/models"
	"github.com/danielhkuo/signup-web/session"
	"github.com/danielhkuo/signup-web/ui"
)

// Live validation events
const (
	EventChange  = "change"
	EventBlur    = "blur"
	EventDismiss = "dismiss"
)

type RegisterHandler struct {
	svc *Services
	cfg cliparse.Config
}

func NewRegisterHandler(svc *Services, cfg cliparse.Config) *RegisterHandler {
	return &RegisterHandler{svc: svc, cfg: cfg}
}

// ShowForm handles GET /register
func (h *RegisterHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	f := h.svc.Forms.New()
	h.render(w, http.StatusOK, f)
}

// Submit handles POST /register
func (h *RegisterHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	f := h.svc.Forms.GetOrCreate(r.PostFormValue("formId"))
	values := form.Values{
		Name:            r.PostFormValue(string(form.FieldName)),
		Email:           r.PostFormValue(string(form.FieldEmail)),
		Password:        r.PostFormValue(string(form.FieldPassword)),
		ConfirmPassword: r.PostFormValue(string(form.FieldConfirmPassword)),
	}

	show := r.PostFormValue("showPasswords") != ""

	sessions := &session.CookieWriter{Store: h.svc.Sessions, W: w, Secure: h.cfg.SecureCookies}
	nav := &redirector{w: w, r: r}
	c := form.Collaborators{
		Registrar:    h.svc.API,
		Sessions:     sessions,
		Navigator:    nav,
		RedirectPath: h.cfg.RedirectPath,
	}
	if h.cfg.RecaptchaSiteKey != "" {
		c.Captcha = captcha.NewChallenge(r.PostFormValue(captcha.ResponseField), h.svc.Captchas)
	}

	_, err := f.SubmitValues(r.Context(), values, c)
	switch {
	case err == nil:
		h.svc.Forms.Remove(f.ID)
		h.record(r, values.Email, models.OutcomeSucceeded, "")
		slog.Info("user registered", "form_id", f.ID, "session_id", sessions.ID, "redirect", nav.path)

	case errors.Is(err, form.ErrSubmissionInFlight):
		// The values in flight stay untouched; this post only gets its own page back
		h.record(r, values.Email, models.OutcomeBusy, "")
		h.renderBusy(w, f.ID, values, show)

	case errors.Is(err, form.ErrInvalid):
		f.SetShowPasswords(show)
		h.record(r, values.Email, models.OutcomeInvalid, "")
		h.render(w, http.StatusUnprocessableEntity, f)

	default:
		f.SetShowPasswords(show)
		code := form.CodeOf(err)
		h.record(r, values.Email, models.OutcomeFailed, string(code))
		slog.Warn("registration failed", "form_id", f.ID, "code", code, "error", err)
		h.render(w, failureStatus(code), f)
	}
}

// Validate handles POST /register/validate
func (h *RegisterHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req models.ValidateFieldRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	f := h.svc.Forms.GetOrCreate(req.FormID)
	field := form.Field(req.Field)

	switch req.Event {
	case EventChange, EventBlur:
		if !field.Valid() {
			middleware.ErrorResponse(w, http.StatusBadRequest, "unknown field")
			return
		}
		f.Change(field, req.Values[req.Field])
		if req.Event == EventBlur {
			f.Blur(field)
		}
	case EventDismiss:
		f.DismissError()
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "event must be change, blur or dismiss")
		return
	}

	h.svc.Metrics.Validation(req.Event)

	middleware.JSONResponse(w, http.StatusOK, models.ValidateFieldResponse{
		Errors: f.VisibleErrors().StringMap(),
	})
}

func (h *RegisterHandler) render(w http.ResponseWriter, status int, f *form.Form) {
	view := h.view(f.ID, f.Values(), f.ShowPasswords())
	view.Errors = f.VisibleErrors().StringMap()
	view.ServerError = f.ServerError()

	renderPage(w, h.svc.Pages, status, ui.PageRegister, view)
}

// renderBusy answers a post that raced a submission in flight. The button
// stays enabled so the user can retry once the first submission settles.
func (h *RegisterHandler) renderBusy(w http.ResponseWriter, formID string, v form.Values, show bool) {
	view := h.view(formID, v, show)
	view.ServerError = form.BusyMessage

	renderPage(w, h.svc.Pages, http.StatusConflict, ui.PageRegister, view)
}

func (h *RegisterHandler) view(formID string, v form.Values, show bool) ui.RegisterView {
	return ui.RegisterView{
		FormID: formID,
		Values: map[string]string{
			string(form.FieldName):            v.Name,
			string(form.FieldEmail):           v.Email,
			string(form.FieldPassword):        v.Password,
			string(form.FieldConfirmPassword): v.ConfirmPassword,
		},
		ShowPasswords:    show,
		RecaptchaSiteKey: h.cfg.RecaptchaSiteKey,
		LoginPath:        h.cfg.LoginPath,
	}
}

// record audits one submission. Failures are logged, never surfaced.
func (h *RegisterHandler) record(r *http.Request, email, outcome, code string) {
	err := h.svc.Attempts.Record(r.Context(), models.RegistrationAttempt{
		Email:     email,
		Outcome:   outcome,
		ErrorCode: code,
		IPHash:    auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		slog.Error("failed to record registration attempt", "outcome", outcome, "error", err)
	}
	h.svc.Metrics.Submission(outcome)
}

// failureStatus mirrors the registration API's verdict in the re-rendered page.
func failureStatus(code form.ErrorCode) int {
	switch code {
	case form.CodeUserAlreadyExist:
		return http.StatusConflict
	case form.CodeInvalidCaptcha:
		return http.StatusForbidden
	default:
		return http.StatusBadGateway
	}
}

// redirector ends a successful submission with 303 See Other.
type redirector struct {
	w    http.ResponseWriter
	r    *http.Request
	path string
}

func (n *redirector) Navigate(path string) {
	n.path = path
	http.Redirect(n.w, n.r, path, http.StatusSeeOther)
}

// renderPage writes a full page with the given status. A template error
// becomes a plain 500 since nothing was written yet.
func renderPage(w http.ResponseWriter, pages *ui.Renderer, status int, page string, data any) {
	var buf bytes.Buffer
	if err := pages.Render(&buf, page, data); err != nil {
		slog.Error("failed to render page", "page", page, "error", err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
