package authdomain

import (
	"strings"
	"time"
)

// Source tells where an admin credential came from.
type Source string

const (
	// SourceStatic is the single administrator configured through the environment.
	SourceStatic Source = "static"
	// SourceAccount is an admin row created through signup.
	SourceAccount Source = "account"
)

// IsValid checks if the source is a known value.
func (s Source) IsValid() bool {
	return s == SourceStatic || s == SourceAccount
}

// Claims represents an authenticated admin session.
type Claims struct {
	AdminID   int64 // zero for the static admin
	Email     string
	Source    Source
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// IsExpired checks if the claims have expired.
func (c *Claims) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}

// NormalizeEmail lowercases and trims an email for comparison and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
