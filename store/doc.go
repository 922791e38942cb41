// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the persistence layer for identities and content.

A Store wraps one *sqlx.DB opened by package db and is shared by every
handler:

	st := store.New(conn)

# Credentials

Identities are created holding only a bcrypt hash of their auth token:

	id, err := st.CreateIdentity(ctx, hash)
	all, err := st.ListIdentities(ctx) // scanned by auth.Authenticator.Verify

CompleteProfile sets the username exactly once; UpdateProfile keeps the
existing profile picture unless a new URL is given.

# Content

CreatePost writes the post and its poll options in one transaction.
CreateComment stores parent_id verbatim; threading tolerates dangling parents.
ListPosts returns at most 50 posts newest first with their options and the
notice text; ListComments returns comments oldest first.

# Counters

AdjustLikes, Vote and the other counter writes are a single
UPDATE ... RETURNING statement, so concurrent requests never lose updates.
Unlike stops at zero.

# Moderation

Delete* and Update* are idempotent and never report missing rows.
UpsertNotice writes the singleton notice row. Dump reads everything.

# Errors

  - ErrInvalid: missing or malformed input, nothing was written
  - ErrNotFound: referenced row does not exist
  - ErrConflict: the profile was already completed

All other errors are driver failures wrapped with context.
*/
package store
