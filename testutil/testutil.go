// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/assembly-vote/cliparse"
	"github.com/danielhkuo/assembly-vote/db"
)

// TestSessionSecret signs session tokens in tests
const TestSessionSecret = "test-session-secret"

// SetupTestDB creates a fresh in-memory SQLite database with the full schema.
// The database is closed when the test finishes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	ctx := context.Background()
	conn, err := db.Open(ctx, db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(ctx, conn, db.TypeSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   ":memory:",
		DatabaseType:  db.TypeSQLite,
		SessionSecret: TestSessionSecret,
		SessionTTL:    time.Hour,
	}
}

// CreateTestMember inserts a member without a credential and returns its id
func CreateTestMember(t *testing.T, conn *sql.DB, name, country string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO member (name, country, registered_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`, name, country, time.Now().UTC()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test member: %v", err)
	}

	return id
}

// CreateTestProposal inserts a proposal and returns its id
func CreateTestProposal(t *testing.T, conn *sql.DB, title, proposedBy string) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRow(`
		INSERT INTO proposal (title, description, proposed_by, created_at)
		VALUES ($1, 'A test proposal', $2, $3)
		RETURNING id
	`, title, proposedBy, time.Now().UTC()).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test proposal: %v", err)
	}

	return id
}

// CastTestVote inserts a ballot directly
func CastTestVote(t *testing.T, conn *sql.DB, proposalID, memberID int64, choice string) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO ballot (proposal_id, member_id, choice, cast_at)
		VALUES ($1, $2, $3, $4)
	`, proposalID, memberID, choice, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test ballot: %v", err)
	}
}

// CountBallots returns the number of ballots on a proposal
func CountBallots(t *testing.T, conn *sql.DB, proposalID int64) int {
	t.Helper()

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM ballot WHERE proposal_id = $1`, proposalID).Scan(&count); err != nil {
		t.Fatalf("Failed to count ballots: %v", err)
	}
	return count
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
