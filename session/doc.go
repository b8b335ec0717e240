// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session persists the session of a signed up user.

The session ({token, sub, email}) is stored server side under a random UUID;
the browser only holds that ID in an HttpOnly cookie, so the session survives
reloads. The sign-up flow only writes sessions (CookieWriter); other pages
read them with Store.Get.
*/
package session
