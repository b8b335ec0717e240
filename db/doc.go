// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Connections

Open supports sqlite (modernc.org/sqlite, the default) and postgres
(github.com/lib/pq):

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

Queries use ? placeholders; Rebind converts them to $1, $2, ... on postgres.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Uses CREATE TABLE IF NOT EXISTS, safe to call on every startup.

# Tables

  - session: token, subject and email of signed up users, keyed by a UUID
    session ID stored in the session cookie
  - registration_attempt: outcome, error code, hashed client IP and user
    agent of every submission
  - app_user: accounts held by the development registration API
*/
package db
