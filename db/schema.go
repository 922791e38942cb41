// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported database types
const (
	TypePostgres = "postgres"
	TypeSQLite   = "sqlite"
)

// Open connects to the database and verifies the connection.
// SQLite pools are limited to a single connection so concurrent writers
// queue inside database/sql instead of failing with SQLITE_BUSY.
func Open(dbType, url string) (*sqlx.DB, error) {
	var dsn string
	switch dbType {
	case TypePostgres:
		dsn = url
	case TypeSQLite:
		dsn = sqliteDSN(url)
		// modernc registers as "sqlite", which sqlx does not know
		sqlx.BindDriver(TypeSQLite, sqlx.QUESTION)
	default:
		return nil, fmt.Errorf("unsupported database type %q", dbType)
	}

	conn, err := sqlx.Open(dbType, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbType == TypeSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite"
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sqlx.DB) error {
	_, err := db.Exec(schemaFor(db.DriverName()))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

func schemaFor(dbType string) string {
	id := "BIGSERIAL PRIMARY KEY"
	if dbType == TypeSQLite {
		id = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	return strings.ReplaceAll(schema, "{{id}}", id)
}

const schema = `
-- Anonymous identities. auth_token_hash is deliberately not indexed:
-- it is only ever compared one row at a time with bcrypt.
CREATE TABLE IF NOT EXISTS users (
    id {{id}},
    auth_token_hash TEXT NOT NULL,
    username TEXT,
    profile_picture_url TEXT,
    bio TEXT,
    urls TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Posts
CREATE TABLE IF NOT EXISTS posts (
    id {{id}},
    content TEXT NOT NULL,
    image_url TEXT,
    likes BIGINT NOT NULL DEFAULT 0 CHECK (likes >= 0),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at);

-- Poll options (a post is a poll iff it owns at least one)
CREATE TABLE IF NOT EXISTS poll_options (
    id {{id}},
    post_id BIGINT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
    option_text TEXT NOT NULL,
    votes BIGINT NOT NULL DEFAULT 0 CHECK (votes >= 0)
);

CREATE INDEX IF NOT EXISTS idx_poll_options_post_id ON poll_options(post_id);

-- Comments. parent_id has no foreign key: replies to deleted or unknown
-- comments are kept and threaded as roots.
CREATE TABLE IF NOT EXISTS comments (
    id {{id}},
    post_id BIGINT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
    parent_id BIGINT,
    content TEXT NOT NULL,
    image_url TEXT,
    likes BIGINT NOT NULL DEFAULT 0 CHECK (likes >= 0),
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id);

-- Stickers
CREATE TABLE IF NOT EXISTS stickers (
    id {{id}},
    url TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

-- Singleton notice
CREATE TABLE IF NOT EXISTS notice (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    content TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
