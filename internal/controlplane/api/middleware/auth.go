// Package middleware provides HTTP middleware for the FileHaven API.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/filehaven/filehaven/internal/controlplane/api/auth"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

// claimsContextKey is the context key for JWT claims.
const claimsContextKey contextKey = "jwt_claims"

// GetClaimsFromContext extracts the JWT claims from a request context.
// Returns nil if no claims are present.
func GetClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// ContextWithClaims returns a context carrying the given claims, as the
// auth middleware would after validating a token.
func ContextWithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// extractBearerToken extracts the token from an Authorization header.
// Returns the token and whether extraction succeeded.
func extractBearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	if parts[1] == "" {
		return "", false
	}

	return parts[1], true
}

// writeAuthProblem writes an RFC 7807 problem response without importing
// the handlers package, which would create an import cycle.
func writeAuthProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":   "about:blank",
		"title":  title,
		"status": status,
		"detail": detail,
	})
}

// JWTAuth requires a valid user access token. Guest tokens are rejected;
// browsing endpoints that accept guests use SessionAuth instead.
func JWTAuth(jwtService *auth.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := extractBearerToken(r)
			if !ok {
				writeAuthProblem(w, http.StatusUnauthorized, "Unauthorized", "Missing or malformed Authorization header")
				return
			}

			claims, err := jwtService.ValidateAccessToken(token)
			if err != nil {
				writeAuthProblem(w, http.StatusUnauthorized, "Unauthorized", "Invalid or expired token")
				return
			}

			ctx := ContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionAuth requires either a user access token or a share-scoped
// guest token. Used on the file browsing endpoints, where guests
// redeem shares.
func SessionAuth(jwtService *auth.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := extractBearerToken(r)
			if !ok {
				writeAuthProblem(w, http.StatusUnauthorized, "Unauthorized", "Missing or malformed Authorization header")
				return
			}

			claims, err := jwtService.ValidateSessionToken(token)
			if err != nil {
				writeAuthProblem(w, http.StatusUnauthorized, "Unauthorized", "Invalid or expired token")
				return
			}

			ctx := ContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalSessionAuth attaches claims when a valid access or guest token
// is present but lets unauthenticated requests through. The handler
// decides what an anonymous caller may do.
func OptionalSessionAuth(jwtService *auth.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := extractBearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := jwtService.ValidateSessionToken(token)
			if err != nil {
				// An invalid token degrades to anonymous rather than
				// failing the request.
				next.ServeHTTP(w, r)
				return
			}

			ctx := ContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin requires the authenticated user to have the admin role.
// Must run after JWTAuth.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaimsFromContext(r.Context())
			if claims == nil {
				writeAuthProblem(w, http.StatusUnauthorized, "Unauthorized", "Authentication required")
				return
			}

			if !claims.IsAdmin() {
				writeAuthProblem(w, http.StatusForbidden, "Forbidden", "Admin role required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
