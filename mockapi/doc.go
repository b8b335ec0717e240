// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package mockapi is a development implementation of the registration API the
sign-up site talks to.

	POST /auth/register  {email, password, name, captchaToken}

	201 {accessToken, userId, email}
	400 {"error": "INVALID_REQUEST" | "VALIDATION_FAILED"}
	403 {"error": "INVALID_CAPTCHA"}
	409 {"error": "USER_ALREADY_EXIST"}
	502 {"error": "CAPTCHA_UNAVAILABLE"}

	POST /auth/login     {email, password}

	200 {accessToken, userId, email}
	401 {"error": "INVALID_CREDENTIALS"}

	GET  /auth/me        Authorization: Bearer <accessToken>

	200 {userId, email}
	401 {"error": "UNAUTHORIZED"}

Passwords are stored as bcrypt hashes in app_user. Access tokens are HS256
JWTs signed with JWT_SECRET whose subject is the user ID. When a reCAPTCHA
secret is configured the token is verified with the siteverify endpoint.
*/
package mockapi
