// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Post API.

# Handler Types

Each handler is a struct holding the components it calls:

  - AuthHandler: signup, profile completion, login, logout, profile edits
  - PostHandler: feed listing and post creation
  - CommentHandler: threaded comments on a post
  - LikeHandler: like counters on posts and comments
  - PollHandler: poll votes
  - StickerHandler: public sticker list and upload
  - AdminHandler: moderation actions behind the admin password
  - RealtimeHandler: short-lived realtime delivery tokens

Handlers are created via constructor functions:

	postHandler := handlers.NewPostHandler(store, blobs)

# Accounts

Accounts are anonymous. Signup hands out an auth token once; the token is
the only credential and is exchanged for a session cookie:

	POST /auth/signup           → Signup (returns authToken)
	POST /auth/complete-profile → CompleteProfile (one time, sets cookie)
	POST /auth/login            → Login (sets cookie)
	GET  /profile               → GetProfile (session required)
	PUT  /profile               → UpdateProfile (session required)

Sessions are read from the token cookie or an Authorization: Bearer header.

# Content

	GET  /posts                → ListPosts (newest first, with the notice)
	POST /posts                → CreatePost (multipart, optional image and poll)
	GET  /posts/{id}/comments  → ListComments (reply tree)
	POST /posts/{id}/comments  → CreateComment (multipart)
	POST /likes                → Like
	POST /polls/vote           → Vote

# Errors

Package errors are mapped to status codes in errors.go. Validation failures
return their message; internal failures are logged and return a generic one.
*/
package handlers
