// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assembly

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/assembly-vote/auth"
	"github.com/danielhkuo/assembly-vote/models"
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Registry stores member identities. Members are immutable once registered
// and are never deleted, so ballots always resolve to a member.
type Registry struct {
	db  *sql.DB
	now func() time.Time
}

func NewRegistry(db *sql.DB) *Registry {
	return &Registry{db: db, now: time.Now}
}

// Register validates and stores a new member. The credential is optional;
// when given it is stored as a bcrypt hash.
func (r *Registry) Register(ctx context.Context, name, country, credential string) (models.Member, error) {
	name = strings.TrimSpace(name)
	country = strings.TrimSpace(country)

	if name == "" {
		return models.Member{}, invalid("name", "is required")
	}
	if country == "" {
		return models.Member{}, invalid("country", "is required")
	}

	var hash string
	if credential != "" {
		if len(credential) < auth.MinCredentialLength {
			return models.Member{}, invalid("credential", fmt.Sprintf("must be at least %d characters", auth.MinCredentialLength))
		}
		if len(credential) > auth.MaxCredentialLength {
			return models.Member{}, invalid("credential", fmt.Sprintf("must be at most %d bytes", auth.MaxCredentialLength))
		}
		var err error
		hash, err = auth.HashCredential(credential)
		if err != nil {
			return models.Member{}, err
		}
	}

	member := models.Member{
		Name:           name,
		Country:        country,
		HasCredential:  hash != "",
		CredentialHash: hash,
		RegisteredAt:   r.now().UTC(),
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO member (name, country, credential_hash, registered_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, member.Name, member.Country, member.CredentialHash, member.RegisteredAt).Scan(&member.ID)
	if err != nil {
		return models.Member{}, fmt.Errorf("failed to insert member: %w", err)
	}

	slog.Info("member registered", "member_id", member.ID, "country", member.Country)

	return member, nil
}

// Get returns the member with the given id
func (r *Registry) Get(ctx context.Context, id int64) (models.Member, error) {
	return getMember(ctx, r.db, id)
}

// List returns all members in registration order
func (r *Registry) List(ctx context.Context) ([]models.Member, error) {
	return listMembers(ctx, r.db)
}

// Count returns the number of registered members
func (r *Registry) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM member`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count members: %w", err)
	}
	return count, nil
}

// Authenticate checks a credential against the member's stored hash.
// Members registered without a credential cannot authenticate.
func (r *Registry) Authenticate(ctx context.Context, id int64, credential string) (models.Member, error) {
	member, err := r.Get(ctx, id)
	if err != nil {
		return models.Member{}, err
	}
	if err := auth.CheckCredential(member.CredentialHash, credential); err != nil {
		return models.Member{}, err
	}
	return member, nil
}

func getMember(ctx context.Context, q querier, id int64) (models.Member, error) {
	var m models.Member
	err := q.QueryRowContext(ctx, `
		SELECT id, name, country, credential_hash, registered_at
		FROM member
		WHERE id = $1
	`, id).Scan(&m.ID, &m.Name, &m.Country, &m.CredentialHash, &m.RegisteredAt)

	if errors.Is(err, sql.ErrNoRows) {
		return models.Member{}, &NotFoundError{Entity: "member", ID: id}
	}
	if err != nil {
		return models.Member{}, fmt.Errorf("failed to query member: %w", err)
	}

	m.HasCredential = m.CredentialHash != ""
	return m, nil
}

func listMembers(ctx context.Context, q querier) ([]models.Member, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, country, credential_hash, registered_at
		FROM member
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	members := []models.Member{}
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Country, &m.CredentialHash, &m.RegisteredAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.HasCredential = m.CredentialHash != ""
		members = append(members, m)
	}

	return members, rows.Err()
}
