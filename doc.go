// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the assembly-vote API server.

assembly-vote tallies yes/no/abstain votes for a small assembly: members
register, anyone may table a proposal, each member votes at most once per
proposal, and clients poll live results.

# Starting the Server

With no configuration beyond the session secret the server uses a local
SQLite file:

	SESSION_SECRET=... go run .

Or against PostgreSQL:

	go run . -p 3318 -t postgres -d "postgres://..." --session-secret ...

A .env file in the working directory is loaded first when present.

# Configuration

Required settings:

  - SESSION_SECRET (--session-secret): HMAC key for session tokens

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres or pgx (default: sqlite)
  - DATABASE_URL (-d): connection string (default: file:assembly.db for sqlite)
  - SESSION_TTL (--session-ttl): session lifetime (default: 12h)

# Architecture

  - assembly: membership registry, proposals, ballots and tallies
  - handlers: HTTP request handlers (members, proposals, voting, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, request logging, JSON and error helpers
  - models: Request/response and domain types
  - auth: Credential hashing and session tokens
  - db: Connection setup and schema creation
  - cliparse: Configuration parsing
*/
package main
