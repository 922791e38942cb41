// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides anonymous identities, sessions and secret checks.

# Auth Tokens

Signup generates a 32-symbol token over "abcd0123456789" and stores only its
bcrypt hash:

	res, err := authn.Signup(ctx)
	// res.AuthToken is shown to the user once

Verify compares a candidate with every stored hash in turn and returns the
first match. There is no index on the hash, so login cost grows linearly with
the number of identities.

# Sessions

Sessions are HS256 JWTs carrying userId and username, valid for seven days
and never refreshed:

	token, err := sessions.Issue(id, username)
	claims, err := sessions.Parse(token)
	auth.SetCookie(w, token)

The cookie is named "token" and is HttpOnly with SameSite=Lax.

# Admin Secret

SecretsEqual compares SHA-256 digests in constant time:

	if !auth.SecretsEqual(password, cfg.AdminPassword) { ... }
*/
package auth
