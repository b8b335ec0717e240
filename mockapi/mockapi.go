// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mockapi

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/signup-web/auth"
	"github.com/danielhkuo/signup-web/captcha"
	"github.com/danielhkuo/signup-web/cliparse"
	"github.com/danielhkuo/signup-web/db"
	"github.com/danielhkuo/signup-web/form"
	"github.com/danielhkuo/signup-web/middleware"
	"github.com/danielhkuo/signup-web/models"
)

// Error codes returned in the "error" field
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeValidationFailed   = "VALIDATION_FAILED"
	CodeCaptchaUnavailable = "CAPTCHA_UNAVAILABLE"
	CodeInternal           = "INTERNAL_ERROR"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeUnauthorized       = "UNAUTHORIZED"
)

// Verifier checks a CAPTCHA token with the CAPTCHA service.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) error
}

type Handler struct {
	conn     *db.Conn
	cfg      cliparse.Config
	verifier Verifier
	now      func() time.Time
}

// NewHandler returns the registration API. A nil verifier skips the CAPTCHA
// check.
func NewHandler(conn *db.Conn, cfg cliparse.Config, verifier Verifier) *Handler {
	return &Handler{conn: conn, cfg: cfg, verifier: verifier, now: time.Now}
}

// Register handles POST /auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.CodedErrorResponse(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid JSON")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	// The API has no confirm field, so the password confirms itself
	errs := form.Validate(form.Values{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.Password,
	})
	if len(errs) > 0 {
		for _, field := range form.Fields {
			if msg, ok := errs[field]; ok {
				middleware.CodedErrorResponse(w, http.StatusBadRequest, CodeValidationFailed, msg)
				return
			}
		}
	}

	if h.verifier != nil {
		err := h.verifier.Verify(r.Context(), req.CaptchaToken, middleware.GetClientIP(r))
		switch {
		case err == nil:
		case errors.Is(err, captcha.ErrInvalidToken), errors.Is(err, captcha.ErrNoToken):
			slog.Info("captcha rejected", "email", req.Email, "error", err)
			middleware.CodedErrorResponse(w, http.StatusForbidden, string(form.CodeInvalidCaptcha), "captcha verification failed")
			return
		default:
			slog.Error("captcha verification unavailable", "error", err)
			middleware.CodedErrorResponse(w, http.StatusBadGateway, CodeCaptchaUnavailable, "captcha service unavailable")
			return
		}
	}

	exists, err := h.emailTaken(r.Context(), req.Email)
	if err != nil {
		slog.Error("failed to check email", "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, CodeInternal, "Failed to register user")
		return
	}
	if exists {
		middleware.CodedErrorResponse(w, http.StatusConflict, string(form.CodeUserAlreadyExist), "email already registered")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, CodeInternal, "Failed to register user")
		return
	}

	userID := uuid.NewString()
	now := h.now()

	_, err = h.conn.ExecContext(r.Context(), h.conn.Rebind(`
		INSERT INTO app_user (id, email, name, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`), userID, req.Email, req.Name, hash, now.Unix())
	if err != nil {
		// lost a race on the unique email
		if taken, _ := h.emailTaken(r.Context(), req.Email); taken {
			middleware.CodedErrorResponse(w, http.StatusConflict, string(form.CodeUserAlreadyExist), "email already registered")
			return
		}
		slog.Error("failed to insert user", "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, CodeInternal, "Failed to register user")
		return
	}

	token, err := auth.IssueAccessToken(userID, req.Email, h.cfg.JWTSecret, now)
	if err != nil {
		slog.Error("failed to issue access token", "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, CodeInternal, "Failed to register user")
		return
	}

	slog.Info("user created", "user_id", userID)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisteredUser{
		AccessToken: token,
		UserID:      userID,
		Email:       req.Email,
	})
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.CodedErrorResponse(w, http.StatusBadRequest, CodeInvalidRequest, "Invalid JSON")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var userID, hash string
	err := h.conn.QueryRowContext(r.Context(), h.conn.Rebind(`
		SELECT id, password_hash FROM app_user WHERE email = ?
	`), email).Scan(&userID, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.CodedErrorResponse(w, http.StatusUnauthorized, CodeInvalidCredentials, "invalid email or password")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, CodeInternal, "Failed to sign in")
		return
	}

	if err := auth.CheckPassword(hash, req.Password); err != nil {
		slog.Info("sign in rejected", "user_id", userID)
		middleware.CodedErrorResponse(w, http.StatusUnauthorized, CodeInvalidCredentials, "invalid email or password")
		return
	}

	token, err := auth.IssueAccessToken(userID, email, h.cfg.JWTSecret, h.now())
	if err != nil {
		slog.Error("failed to issue access token", "error", err)
		middleware.CodedErrorResponse(w, http.StatusInternalServerError, CodeInternal, "Failed to sign in")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RegisteredUser{
		AccessToken: token,
		UserID:      userID,
		Email:       email,
	})
}

// Me handles GET /auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		middleware.CodedErrorResponse(w, http.StatusUnauthorized, CodeUnauthorized, "Bearer token required")
		return
	}

	claims, err := auth.ParseAccessToken(token, h.cfg.JWTSecret)
	if err != nil {
		middleware.CodedErrorResponse(w, http.StatusUnauthorized, CodeUnauthorized, "invalid access token")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CurrentUser{
		UserID: claims.Subject,
		Email:  claims.Email,
	})
}

func (h *Handler) emailTaken(ctx context.Context, email string) (bool, error) {
	var one int
	err := h.conn.QueryRowContext(ctx, h.conn.Rebind(`SELECT 1 FROM app_user WHERE email = ?`), email).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
