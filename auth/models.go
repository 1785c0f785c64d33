// Package auth implements opaque session tokens: issuing them in exchange
// for credentials and resolving them back to users on every request.
package auth

import "time"

// Token is a stored session token. Exactly one exists per user; a token is
// either absent (never issued, or revoked) or active. There is no expiry.
type Token struct {
	Key       string
	UserID    int
	CreatedAt time.Time
}
