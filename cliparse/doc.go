// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

main loads an optional .env file (github.com/joho/godotenv) before calling
ParseFlags, so values there behave like ordinary environment variables.

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite, postgres or pgx (default: sqlite)
  - DatabaseURL: connection string (default for sqlite: file:assembly.db)
  - SessionSecret: HMAC secret for member session tokens (required)
  - SessionTTL: session token lifetime (default: 12h)

# CLI Flags

	-p                Server port
	-d                Database URL
	-t                Database type
	--session-secret  Session signing secret
	--session-ttl     Session lifetime (Go duration)

# Environment Variables

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	SESSION_SECRET → --session-secret
	SESSION_TTL    → --session-ttl

CLI flags take precedence over environment variables.
*/
package cliparse
