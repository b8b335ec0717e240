// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package captcha integrates the invisible reCAPTCHA widget.

The page runs the challenge in the browser and posts the token in the
g-recaptcha-response field. A Challenge wraps that token for one submission
and implements form.Captcha; Reset consumes the token in a Ledger so it can
not be replayed.

The Verifier is the server side check performed by the registration API.
*/
package captcha
