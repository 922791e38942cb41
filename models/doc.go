// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - LoginRequest: authToken
  - LikeRequest: type, id, action
  - VoteRequest: optionId
  - AdminRequest: password, action, id, content, likes

Multipart endpoints (complete-profile, posts, comments, stickers) read form
fields directly and do not have request types.

# Response Types

Types for JSON responses:

  - SignupResponse: authToken (shown once), userId
  - ProfileResponse: user projection
  - CreatedResponse: id of the created row
  - LikesResponse, VoteResponse: new counter value
  - PostsResponse: posts with poll options, notice
  - BulkUploadResponse: per-file outcomes of an admin sticker upload
  - RealtimeTokenResponse: delivery token, clientId, expiresAt
  - ErrorResponse: error, message

# Domain Types

Rows as stored:

  - Identity: anonymous account; AuthTokenHash is never serialized
  - Post, PollOption, Comment, Sticker, Notice
  - PostWithPoll: post plus its options
  - Dump: moderation read-all payload

StringList stores a []string as JSON text so PostgreSQL and SQLite share
one column type.

# Constants

Like targets and actions:

	TargetPost    = "post"
	TargetComment = "comment"
	ActionLike    = "like"
	ActionUnlike  = "unlike"
*/
package models
