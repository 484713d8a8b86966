// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides member credential hashing and session tokens.

# Credentials

A member may register with an optional credential. It is stored only as a
bcrypt hash:

	hash, err := auth.HashCredential(credential)
	err = auth.CheckCredential(hash, attempt) // ErrInvalidCredential on mismatch

# Session Tokens

Logging in exchanges a credential for an HS256 token whose subject is the
member id:

	token, expiresAt, err := auth.IssueSessionToken(memberID, secret, ttl, time.Now())
	memberID, err := auth.ParseSessionToken(token, secret)

Clients send it as "Authorization: Bearer <token>"; BearerToken extracts it
from a request. Expired, tampered, or non-HS256 tokens fail with
ErrInvalidToken.
*/
package auth
