package models

// Request types

// RegisterRequest is the payload sent to the registration endpoint.
type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Name         string `json:"name"`
	CaptchaToken string `json:"captchaToken"`
}

// LoginRequest is the payload of the registration API's sign-in endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ValidateFieldRequest is posted by the sign-up page on every change and blur.
type ValidateFieldRequest struct {
	FormID string            `json:"formId"`
	Field  string            `json:"field"`
	Event  string            `json:"event"`
	Values map[string]string `json:"values"`
}

// Response types

// RegisteredUser is the success body of the registration endpoint.
type RegisteredUser struct {
	AccessToken string `json:"accessToken"`
	UserID      string `json:"userId"`
	Email       string `json:"email"`
}

// CurrentUser identifies the holder of an access token.
type CurrentUser struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type ValidateFieldResponse struct {
	Errors map[string]string `json:"errors"`
}

// Domain types

// Session is the locally persisted proof of an authenticated user.
type Session struct {
	Token     string `json:"token"`
	Subject   string `json:"sub"`
	Email     string `json:"email"`
	ExpiresAt int64  `json:"-"` // unix seconds
}

// Attempt outcomes recorded in registration_attempt
const (
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeInvalid   = "invalid"
	OutcomeBusy      = "busy"
)

type RegistrationAttempt struct {
	ID        string
	Email     string
	Outcome   string
	ErrorCode string
	IPHash    string
	UserAgent string
	CreatedAt int64
}

// Error response

// ErrorResponse is the error body shared by this service and the registration API.
// The registration API puts its error code (e.g. USER_ALREADY_EXIST) in Error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
