// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(ctx context.Context, db *sql.DB, dbType string) error {
	schema := postgresSchema
	if dbType == TypeSQLite {
		schema = sqliteSchema
	}

	_, err := db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const sqliteSchema = `
-- Members (never deleted; ids never reused)
CREATE TABLE IF NOT EXISTS member (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    country TEXT NOT NULL,
    credential_hash TEXT NOT NULL DEFAULT '',
    registered_at TIMESTAMP NOT NULL
);

-- Proposals
CREATE TABLE IF NOT EXISTS proposal (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    proposed_by TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

-- Ballots: one per (proposal, member)
CREATE TABLE IF NOT EXISTS ballot (
    proposal_id INTEGER NOT NULL REFERENCES proposal(id),
    member_id INTEGER NOT NULL REFERENCES member(id),
    choice TEXT NOT NULL CHECK (choice IN ('yes', 'no', 'abstain')),
    cast_at TIMESTAMP NOT NULL,
    PRIMARY KEY (proposal_id, member_id)
);

CREATE INDEX IF NOT EXISTS idx_ballot_member_id ON ballot(member_id);

-- Tiebreak ballots: a second round, one per (proposal, member), kept apart
-- so first-round ballots are never rewritten
CREATE TABLE IF NOT EXISTS tiebreak_ballot (
    proposal_id INTEGER NOT NULL REFERENCES proposal(id),
    member_id INTEGER NOT NULL REFERENCES member(id),
    choice TEXT NOT NULL CHECK (choice IN ('yes', 'no', 'abstain')),
    cast_at TIMESTAMP NOT NULL,
    PRIMARY KEY (proposal_id, member_id)
);
`

const postgresSchema = `
-- Members (never deleted; ids never reused)
CREATE TABLE IF NOT EXISTS member (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    country TEXT NOT NULL,
    credential_hash TEXT NOT NULL DEFAULT '',
    registered_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Proposals
CREATE TABLE IF NOT EXISTS proposal (
    id BIGSERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    proposed_by TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- Ballots: one per (proposal, member)
CREATE TABLE IF NOT EXISTS ballot (
    proposal_id BIGINT NOT NULL REFERENCES proposal(id),
    member_id BIGINT NOT NULL REFERENCES member(id),
    choice TEXT NOT NULL CHECK (choice IN ('yes', 'no', 'abstain')),
    cast_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (proposal_id, member_id)
);

CREATE INDEX IF NOT EXISTS idx_ballot_member_id ON ballot(member_id);

-- Tiebreak ballots: a second round, one per (proposal, member), kept apart
-- so first-round ballots are never rewritten
CREATE TABLE IF NOT EXISTS tiebreak_ballot (
    proposal_id BIGINT NOT NULL REFERENCES proposal(id),
    member_id BIGINT NOT NULL REFERENCES member(id),
    choice TEXT NOT NULL CHECK (choice IN ('yes', 'no', 'abstain')),
    cast_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (proposal_id, member_id)
);
`
