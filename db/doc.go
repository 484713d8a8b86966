// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Database Types

Open accepts one of three types:

  - sqlite: embedded database via modernc.org/sqlite (default)
  - postgres: PostgreSQL via github.com/lib/pq
  - pgx: PostgreSQL via the pgx stdlib driver

	conn, err := db.Open(ctx, db.TypeSQLite, "file:assembly.db")

SQLite pools are capped at one connection, which serializes all writes.

# Schema Creation

	if err := db.CreateSchema(ctx, conn, db.TypeSQLite); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

  - member: registered members, never deleted
  - proposal: proposals, immutable after creation
  - ballot: one row per (proposal_id, member_id)

# Relationships

	member 1──* ballot
	proposal 1──* ballot

The ballot primary key (proposal_id, member_id) is what makes a second vote
fail; IsUniqueViolation recognizes that failure for every driver.
*/
package db
