// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Post API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(router.Services{Store: s, Authn: authn, ...})

# Endpoints

Health:

	GET /health

Accounts:

	POST /auth/signup           - Create an anonymous identity
	POST /auth/complete-profile - Set username and picture once
	POST /auth/login            - Exchange auth token for a session
	POST /auth/logout           - Clear the session cookie
	GET  /profile               - Current identity (session)
	PUT  /profile               - Edit identity (session)

Content:

	GET  /posts                - Feed and notice
	POST /posts                - Create post, optionally with image and poll
	GET  /posts/{id}/comments  - Reply tree
	POST /posts/{id}/comments  - Add comment or reply
	GET  /likes                - Read a like counter
	POST /likes                - Like or unlike
	POST /polls/vote           - Vote for a poll option
	GET  /stickers             - List stickers
	POST /stickers             - Upload one sticker

Moderation (admin password):

	GET  /admin          - Read everything
	POST /admin          - Run an action
	POST /admin/stickers - Bulk sticker upload

Other:

	GET /realtime/token - Delivery token (503 when realtime is off)
	GET /blobs/...      - Uploaded objects, when stored on local disk
*/
package router
