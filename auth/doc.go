// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth guards the admin API.

# Admin Keys

Admin requests carry the X-Admin-Key header, checked against the configured
ADMIN_KEY:

	err := auth.ValidateAdminKey(auth.AdminKeyFromRequest(r), cfg.AdminKey)

Both values are hashed with SHA-256 and compared with hmac.Equal so the
comparison runs in constant time. When no key is configured every request
fails with ErrAdminDisabled.
*/
package auth
