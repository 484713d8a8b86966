// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredential = errors.New("invalid credential")
	ErrInvalidToken      = errors.New("invalid session token")
)

// Credential bounds accepted at registration. bcrypt refuses input longer
// than 72 bytes.
const (
	MinCredentialLength = 4
	MaxCredentialLength = 72
)

// HashCredential hashes a member credential for storage
func HashCredential(credential string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash credential: %w", err)
	}
	return string(hash), nil
}

// CheckCredential compares a plaintext credential against a stored hash
func CheckCredential(hash, credential string) error {
	if hash == "" || credential == "" {
		return ErrInvalidCredential
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(credential)); err != nil {
		return ErrInvalidCredential
	}
	return nil
}

// IssueSessionToken signs an HS256 token whose subject is the member id.
// Returns the token and its expiry.
func IssueSessionToken(memberID int64, secret string, ttl time.Duration, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(memberID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, expiresAt, nil
}

// ParseSessionToken validates the signature and expiry of a session token
// and returns the member id it was issued for
func ParseSessionToken(tokenString, secret string) (int64, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	memberID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || memberID < 1 {
		return 0, ErrInvalidToken
	}
	return memberID, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
// Returns "" when the header is absent or uses another scheme.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
