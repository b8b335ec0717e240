// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns the web server Config:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

ParseMockFlags returns the Config for the development registration API.

# Precedence

Each setting is resolved in this order, first non-empty wins:

 1. CLI flags
 2. Environment variables (a .env file can seed them via LoadEnvFile)
 3. YAML config file (-c / CONFIG_FILE)
 4. Built-in defaults

# CLI Flags and Environment Variables

	-p, --port              PORT               (default 3318)
	-d, --database-url      DATABASE_URL       (default file:signup.db)
	-t, --database-type     DATABASE_TYPE      (sqlite or postgres, default sqlite)
	-c, --config            CONFIG_FILE
	--api-url               AUTH_API_URL       (required for the web server)
	--api-timeout           AUTH_API_TIMEOUT   (default 15s)
	--recaptcha-site-key    RECAPTCHA_SITE_KEY (empty disables CAPTCHA)
	--recaptcha-secret      RECAPTCHA_SECRET
	--redirect              REDIRECT_PATH      (default /dashboard)
	--login-path            LOGIN_PATH         (default /login)
	--session-ttl           SESSION_TTL        (default 168h)
	--secure-cookies        SECURE_COOKIES
	--ip-salt               IP_HASH_SALT       (required for the web server)
	--jwt-secret            JWT_SECRET         (required for mock-api)
*/
package cliparse
