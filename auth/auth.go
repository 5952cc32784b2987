// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"net/http"
)

// AdminKeyHeader carries the admin API key.
const AdminKeyHeader = "X-Admin-Key"

var (
	ErrAdminDisabled   = errors.New("admin API disabled")
	ErrInvalidAdminKey = errors.New("invalid admin key")
)

// ValidateAdminKey checks the provided key against the configured one.
// An empty configured key disables admin access entirely.
func ValidateAdminKey(provided, configured string) error {
	if configured == "" {
		return ErrAdminDisabled
	}
	// Compare digests so the comparison time does not depend on key length
	p := sha256.Sum256([]byte(provided))
	c := sha256.Sum256([]byte(configured))
	if !hmac.Equal(p[:], c[:]) {
		return ErrInvalidAdminKey
	}
	return nil
}

// AdminKeyFromRequest extracts the admin key header
func AdminKeyFromRequest(r *http.Request) string {
	return r.Header.Get(AdminKeyHeader)
}
