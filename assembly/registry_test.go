// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package assembly

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/danielhkuo/assembly-vote/auth"
	"github.com/danielhkuo/assembly-vote/testutil"
)

func TestRegister_Success(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	registry := NewRegistry(conn)
	ctx := context.Background()

	member, err := registry.Register(ctx, "  Alice ", " Norway ", "")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if member.ID != 1 {
		t.Errorf("Expected first member id 1, got %d", member.ID)
	}
	if member.Name != "Alice" || member.Country != "Norway" {
		t.Errorf("Expected trimmed name and country, got %q / %q", member.Name, member.Country)
	}
	if member.HasCredential {
		t.Error("Member registered without credential should not have one")
	}
	if member.RegisteredAt.IsZero() {
		t.Error("RegisteredAt should be set")
	}

	got, err := registry.Get(ctx, member.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Name != "Alice" || got.Country != "Norway" {
		t.Errorf("Stored member mismatch: %+v", got)
	}
}

func TestRegister_Validation(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	registry := NewRegistry(conn)
	ctx := context.Background()

	testCases := []struct {
		name       string
		member     string
		country    string
		credential string
		field      string
	}{
		{"empty name", "", "Norway", "", "name"},
		{"blank name", "   ", "Norway", "", "name"},
		{"empty country", "Alice", "", "", "country"},
		{"short credential", "Alice", "Norway", "abc", "credential"},
		{"long credential", "Alice", "Norway", strings.Repeat("x", auth.MaxCredentialLength+1), "credential"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := registry.Register(ctx, tc.member, tc.country, tc.credential)

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected ValidationError, got %v", err)
			}
			if verr.Field != tc.field {
				t.Errorf("Expected field %q, got %q", tc.field, verr.Field)
			}
			if !errors.Is(err, ErrValidation) {
				t.Error("ValidationError should match ErrValidation")
			}
		})
	}

	count, err := registry.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Rejected registrations should not be stored, got %d members", count)
	}
}

func TestRegister_CredentialAtMaxLength(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	registry := NewRegistry(conn)
	ctx := context.Background()

	credential := strings.Repeat("x", auth.MaxCredentialLength)
	member, err := registry.Register(ctx, "Alice", "Norway", credential)
	if err != nil {
		t.Fatalf("Register with %d-byte credential failed: %v", auth.MaxCredentialLength, err)
	}
	if _, err := registry.Authenticate(ctx, member.ID, credential); err != nil {
		t.Errorf("Expected credential to authenticate, got %v", err)
	}
}

func TestRegister_IDsIncrease(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	registry := NewRegistry(conn)
	ctx := context.Background()

	var last int64
	for _, name := range []string{"Alice", "Bob", "Carol"} {
		member, err := registry.Register(ctx, name, "Chile", "")
		if err != nil {
			t.Fatalf("Register %s failed: %v", name, err)
		}
		if member.ID <= last {
			t.Errorf("Expected id greater than %d, got %d", last, member.ID)
		}
		last = member.ID
	}

	members, err := registry.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(members) != 3 {
		t.Fatalf("Expected 3 members, got %d", len(members))
	}
	for i, want := range []string{"Alice", "Bob", "Carol"} {
		if members[i].Name != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, members[i].Name)
		}
	}
}

func TestList_Empty(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	registry := NewRegistry(conn)

	members, err := registry.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if members == nil || len(members) != 0 {
		t.Errorf("Expected empty non-nil list, got %v", members)
	}
}

func TestGet_NotFound(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	registry := NewRegistry(conn)

	_, err := registry.Get(context.Background(), 42)

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Expected NotFoundError, got %v", err)
	}
	if nf.Entity != "member" || nf.ID != 42 {
		t.Errorf("Unexpected NotFoundError %+v", nf)
	}
}

func TestAuthenticate(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	registry := NewRegistry(conn)
	ctx := context.Background()

	withCred, err := registry.Register(ctx, "Alice", "Norway", "hunter22")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if !withCred.HasCredential {
		t.Fatal("Expected HasCredential")
	}
	if withCred.CredentialHash == "hunter22" {
		t.Fatal("Credential stored in plain text")
	}

	withoutCred, err := registry.Register(ctx, "Bob", "Peru", "")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := registry.Authenticate(ctx, withCred.ID, "hunter22"); err != nil {
		t.Errorf("Expected correct credential to authenticate, got %v", err)
	}
	if _, err := registry.Authenticate(ctx, withCred.ID, "wrong"); !errors.Is(err, auth.ErrInvalidCredential) {
		t.Errorf("Expected ErrInvalidCredential for wrong credential, got %v", err)
	}
	if _, err := registry.Authenticate(ctx, withoutCred.ID, ""); !errors.Is(err, auth.ErrInvalidCredential) {
		t.Errorf("Expected ErrInvalidCredential for member without credential, got %v", err)
	}
	if _, err := registry.Authenticate(ctx, 999, "hunter22"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown member, got %v", err)
	}
}
