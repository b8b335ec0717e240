// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package form

import "errors"

// DefaultServerError is shown for transport failures and unknown error codes.
const DefaultServerError = "Something went wrong, please try again later"

// BusyMessage answers a post made while the same form is still submitting.
const BusyMessage = "Your sign up is still being processed, please wait a moment and try again"

var (
	ErrInvalid            = errors.New("form has validation errors")
	ErrSubmissionInFlight = errors.New("submission already in flight")
)

// ErrorCode is a business error code reported by the registration endpoint.
type ErrorCode string

const (
	CodeUserAlreadyExist ErrorCode = "USER_ALREADY_EXIST"
	CodeInvalidCaptcha   ErrorCode = "INVALID_CAPTCHA"
)

// Message returns the user facing text for the code. Unknown and empty codes
// fall back to DefaultServerError so raw codes never reach the page.
func (c ErrorCode) Message() string {
	switch c {
	case CodeUserAlreadyExist:
		return "Email address already taken"
	case CodeInvalidCaptcha:
		return "Captcha validation failed, Sign up Restricted"
	default:
		return DefaultServerError
	}
}

// Coded is implemented by errors carrying a server provided error code.
type Coded interface {
	ErrorCode() string
}

// CodeOf extracts the server error code from err, or "" when there is none.
func CodeOf(err error) ErrorCode {
	var coded Coded
	if errors.As(err, &coded) {
		return ErrorCode(coded.ErrorCode())
	}
	return ""
}

// ServerMessage translates a failed submission into the single alert message.
func ServerMessage(err error) string {
	return CodeOf(err).Message()
}
