// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package moderation runs admin actions behind the single admin secret.

# Actions

Action is a closed set of request types. ParseAction maps the "action" field
of POST /admin to one of them and validates its payload:

	a, err := moderation.ParseAction(req)
	out, err := gateway.Execute(ctx, req.Password, a)

Execute compares the secret in constant time before anything else. A wrong
secret returns ErrUnauthorized without touching storage.

# Sticker Uploads

UploadStickers validates each file (png, gif or webp up to 2 MiB) and stores
them concurrently. Files succeed or fail on their own; the batch returns
ErrNoValidFiles only when none were stored.
*/
package moderation
