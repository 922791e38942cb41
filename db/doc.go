// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Connecting

Open accepts "postgres" (lib/pq) or "sqlite" (modernc.org/sqlite):

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

SQLite connections enable foreign keys and a busy timeout, and the pool is
capped at one connection.

# Schema Creation

CreateSchema initializes all required tables for the connection's dialect:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - users: anonymous identities (bcrypt token hash, optional profile)
  - posts: short messages with optional image and like counter
  - poll_options: options owned by a post, with vote counters
  - comments: replies to a post, optionally to another comment
  - stickers: URLs of stored sticker images
  - notice: singleton banner row (id = 1)

# Relationships

	posts 1──* poll_options
	posts 1──* comments
	comments 1──* comments (parent_id, not enforced)

Foreign keys to posts use ON DELETE CASCADE.
*/
package db
