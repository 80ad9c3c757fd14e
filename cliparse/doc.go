// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 8090)
  - DatabaseURL: sqlite file path or PostgreSQL connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - AdminKey: shared admin API key (required)
  - AllowedOrigins: CORS origins for the companion web UI

# CLI Flags

	-p          Server port
	-d          Database URL or file path
	-t          Database type (sqlite or postgres)
	-admin-key  Admin API key
	-origins    Comma-separated CORS origins

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	ADMIN_API_KEY   → -admin-key
	ALLOWED_ORIGINS → -origins

CLI flags take precedence over environment variables. main loads a
.env file via godotenv before parsing, so a local .env works for dev.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - ADMIN_API_KEY must be provided
  - DATABASE_TYPE, when set, must be sqlite or postgres
*/
package cliparse
