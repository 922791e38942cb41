// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: PostgreSQL connection string or SQLite path (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - JWTSecret: Session signing secret (required)
  - AdminPassword: Moderation secret (required)
  - BlobDir: Where uploaded images are written (default: ./blobs)
  - PublicBaseURL: Prefix for image URLs (default: http://localhost:<port>)
  - RedisURL: Enables realtime delivery tokens when set

# CLI Flags

	-c               YAML config file
	-p               Server port
	-d               Database URL
	-t               Database type
	-blob-dir        Image directory
	-base-url        Public base URL
	-redis           Redis URL
	-jwt-secret      Session secret
	-admin-password  Moderation secret

# Environment Variables

Flags fall back to environment variables. A .env file in the working
directory is loaded first (joho/godotenv) and never overrides variables
that are already set.

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	BLOB_DIR        → -blob-dir
	PUBLIC_BASE_URL → -base-url
	REDIS_URL       → -redis
	JWT_SECRET      → -jwt-secret
	ADMIN_PASSWORD  → -admin-password
	CONFIG_FILE     → -c

# Config File

Values missing from both flags and environment are taken from the YAML file
named by -c, using the snake_case keys of Config:

	port: 3318
	database_url: quickly-post.db
	jwt_secret: change-me

CLI flags take precedence over environment variables, which take precedence
over the file.
*/
package cliparse
