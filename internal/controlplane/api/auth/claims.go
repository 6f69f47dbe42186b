// Package auth provides JWT authentication functionality for the FileHaven API.
package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenType indicates what kind of session a token carries.
type TokenType string

const (
	// TokenTypeAccess is a short-lived token used for API authorization.
	TokenTypeAccess TokenType = "access"
	// TokenTypeRefresh is a long-lived token used to obtain new access tokens.
	TokenTypeRefresh TokenType = "refresh"
	// TokenTypeGuest is a token scoped to a single share, issued to
	// unauthenticated visitors who redeem a share link.
	TokenTypeGuest TokenType = "guest"
)

// Claims represents JWT claims for FileHaven authentication.
//
// User tokens carry the user's identity and role. Guest tokens carry no
// user identity at all, only the ID of the share the session is scoped to.
type Claims struct {
	jwt.RegisteredClaims

	// UserID is the unique identifier (UUID) for the user.
	// Empty for guest tokens.
	UserID string `json:"uid,omitempty"`

	// Username is the human-readable username. Empty for guest tokens.
	Username string `json:"username,omitempty"`

	// Role is the user's role ("admin" or "user"). Empty for guest tokens.
	Role string `json:"role,omitempty"`

	// ShareID is the share a guest session is scoped to.
	// Set only on guest tokens.
	ShareID string `json:"share_id,omitempty"`

	// TokenType indicates whether this is an access, refresh, or guest token.
	TokenType TokenType `json:"token_type"`
}

// IsAccessToken returns true if this is an access token.
func (c *Claims) IsAccessToken() bool {
	return c.TokenType == TokenTypeAccess
}

// IsRefreshToken returns true if this is a refresh token.
func (c *Claims) IsRefreshToken() bool {
	return c.TokenType == TokenTypeRefresh
}

// IsGuestToken returns true if this is a share-scoped guest token.
func (c *Claims) IsGuestToken() bool {
	return c.TokenType == TokenTypeGuest
}

// IsAdmin returns true if the user has admin role.
func (c *Claims) IsAdmin() bool {
	return c.Role == "admin"
}
