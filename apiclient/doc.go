// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apiclient is the HTTP client of the remote registration endpoint.

	client := apiclient.New(cfg.AuthAPIURL, nil, cfg.APITimeout)
	user, err := client.Register(ctx, req)

Non-2xx answers become *APIError carrying the "error" code of the JSON body.
APIError implements form.Coded, so the form maps it to a user facing message.
Transport failures are returned as plain wrapped errors.
*/
package apiclient
