// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package audit records every sign-up submission in registration_attempt:
// the email, the outcome, the registration API error code if any, and a
// salted hash of the client IP (see auth.HashIP).
package audit
