// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package form implements the sign-up form: field state, declarative
validation, and the submission state machine.

# Validation

Validate runs every rule on each call; the first failing rule per field wins:

	name             2..60 characters, then required (an empty name reports the length rule)
	email            required, email address
	password         required, at most 30 characters, at least 8 characters
	                 with a letter, a digit and one of @$!%*#?&
	confirmPassword  equal to password

A Form re-validates on every Change and Blur. Errors are only shown for
touched fields (VisibleErrors); a submit attempt touches every field.

# Submission

	Idle → Submitting → Succeeded
	                  → Failed → (retry) Submitting

Submit validates, resolves the optional CAPTCHA, calls the Registrar, and on
success saves the session and navigates. The loading flag admits one
submission at a time. Failures are translated to a single alert message by
ServerMessage; unknown codes fall back to DefaultServerError.

# Registry

A Registry keeps one Form per rendered page, keyed by a UUID form ID, and
expires abandoned forms.
*/
package form
