// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides the admin credential check and session token helpers.

# Admin Credentials

The kiosk has one shared admin login. The password is bcrypt-hashed once at
startup and only the hash is kept:

	creds, err := auth.NewCredentials(cfg.AdminUser, cfg.AdminPass, bcrypt.DefaultCost)
	ok := creds.Verify(username, password)

Verify compares the username in constant time and always runs the bcrypt
comparison, so callers cannot tell an unknown username from a bad password.

# Session Tokens

Admin session ids are random hex strings stored server side. The cookie
carries the id together with an HMAC-SHA256 of it:

	value := auth.SignSessionID(sid, secret)      // "<sid>.<mac>"
	sid, err := auth.VerifySessionID(value, secret)

The MAC is URL-safe base64 without padding. Tampered or malformed values
return ErrInvalidSession without a database lookup.

# ID Generation

Random hex IDs:

	id, err := auth.GenerateID(32)  // 64 hex characters
*/
package auth
