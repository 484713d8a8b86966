// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestOpen_UnsupportedType(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "whatever")
	if err == nil {
		t.Fatal("Expected error for unsupported database type")
	}
}

func TestCreateSchema_Idempotent(t *testing.T) {
	ctx := context.Background()
	conn, err := Open(ctx, TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer conn.Close()

	for i := 0; i < 2; i++ {
		if err := CreateSchema(ctx, conn, TypeSQLite); err != nil {
			t.Fatalf("CreateSchema run %d failed: %v", i+1, err)
		}
	}
}

func TestIsUniqueViolation_SQLite(t *testing.T) {
	ctx := context.Background()
	conn, err := Open(ctx, TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer conn.Close()

	if err := CreateSchema(ctx, conn, TypeSQLite); err != nil {
		t.Fatalf("CreateSchema failed: %v", err)
	}

	now := time.Now().UTC()
	conn.Exec(`INSERT INTO member (name, country, registered_at) VALUES ('A', 'Norway', $1)`, now)
	conn.Exec(`INSERT INTO proposal (title, description, created_at) VALUES ('T', 'D', $1)`, now)

	insert := `INSERT INTO ballot (proposal_id, member_id, choice, cast_at) VALUES (1, 1, 'yes', $1)`
	if _, err := conn.Exec(insert, now); err != nil {
		t.Fatalf("First ballot failed: %v", err)
	}

	_, err = conn.Exec(insert, now)
	if !IsUniqueViolation(err) {
		t.Errorf("Expected unique violation, got %v", err)
	}

	// A CHECK failure is a constraint error but not a uniqueness one
	_, err = conn.Exec(`INSERT INTO ballot (proposal_id, member_id, choice, cast_at) VALUES (1, 1, 'maybe', $1)`, now)
	if err == nil {
		t.Fatal("Expected CHECK constraint failure")
	}

	// Foreign keys are enforced
	_, err = conn.Exec(`INSERT INTO ballot (proposal_id, member_id, choice, cast_at) VALUES (9, 9, 'yes', $1)`, now)
	if err == nil {
		t.Error("Expected foreign key failure for unknown proposal and member")
	}
	if IsUniqueViolation(err) {
		t.Error("Foreign key failure should not count as a unique violation")
	}
}

func TestIsUniqueViolation_Postgres(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"pq unique", &pq.Error{Code: "23505"}, true},
		{"pq foreign key", &pq.Error{Code: "23503"}, false},
		{"pgx unique", &pgconn.PgError{Code: "23505"}, true},
		{"pgx check", &pgconn.PgError{Code: "23514"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsUniqueViolation(tt.err); got != tt.want {
				t.Errorf("IsUniqueViolation(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
