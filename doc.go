// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Post API server.

Quickly Post is an anonymous message board. Accounts are identified only by
a random auth token handed out at signup; posts can carry an image and a
poll, comments form reply trees, and a moderator holding the admin password
can edit or remove anything.

# Starting the Server

The server reads CLI flags, then environment variables (and a .env file),
then an optional YAML config file:

	DATABASE_URL=./board.db JWT_SECRET=... ADMIN_PASSWORD=... go run .

Or with flags:

	go run . -p 3318 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - JWT_SECRET (--jwt-secret): Session signing secret
  - ADMIN_PASSWORD (--admin-password): Moderation secret

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - BLOB_DIR (--blob-dir): Upload directory (default: ./blobs)
  - PUBLIC_BASE_URL (--base-url): Prefix for uploaded object URLs
  - REDIS_URL (--redis): Enables realtime delivery tokens
  - CONFIG_FILE (-c): YAML file with the same keys

# Architecture

  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, sessions, JSON and multipart helpers
  - auth: Auth tokens, bcrypt verification and JWT sessions
  - store: SQL access for every table
  - thread: Comment reply trees
  - moderation: Admin actions behind the admin password
  - storage: Upload rules and object storage
  - realtime: Redis-backed delivery tokens
  - models: Request/response and row types
  - db: Connection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
