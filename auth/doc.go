// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential and token utilities.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

Registration attempts store a salted hash of the client address, never the
address itself:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.

# Passwords

The development registration API stores bcrypt hashes:

	hash, err := auth.HashPassword(password)
	err = auth.CheckPassword(hash, password)

# Access Tokens

Access tokens are HS256 JWTs whose subject is the user ID:

	token, err := auth.IssueAccessToken(userID, email, secret, time.Now())
	claims, err := auth.ParseAccessToken(token, secret)
*/
package auth
