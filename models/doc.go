// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types.

# Request Types

  - RegisterRequest: email, password, name, captchaToken (sent upstream)
  - ValidateFieldRequest: formId, field, event, values (live validation)

# Response Types

  - RegisteredUser: accessToken, userId, email
  - ValidateFieldResponse: errors
  - ErrorResponse: error, message

# Domain Types

  - Session: token, sub, email persisted after a successful sign up
  - RegistrationAttempt: audit record of a submission

# Constants

Attempt outcomes:

	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeInvalid   = "invalid"
	OutcomeBusy      = "busy"
*/
package models
