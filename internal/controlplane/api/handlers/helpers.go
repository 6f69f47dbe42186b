package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/filehaven/filehaven/internal/controlplane/api/middleware"
	"github.com/filehaven/filehaven/pkg/access"
	"github.com/filehaven/filehaven/pkg/controlplane/models"
	"github.com/filehaven/filehaven/pkg/controlplane/store"
)

// decodeJSONBody decodes a JSON request body into the provided pointer.
// Returns true if successful, false if decoding fails (error response is written automatically).
func decodeJSONBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		BadRequest(w, "Invalid request body")
		return false
	}
	return true
}

// resolveCaller turns the request's JWT claims into an access.Caller,
// writing the error response itself on failure. The boolean reports
// whether the caller is usable.
//
// User claims are resolved to a fresh user record so disabled accounts
// lose access at the next request, not at token expiry. Guest claims
// become guest callers without touching the store. Requests without
// claims become anonymous callers; the access engine decides what an
// anonymous caller may do.
func resolveCaller(w http.ResponseWriter, r *http.Request, s store.Store) (access.Caller, bool) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		return access.Anonymous(), true
	}

	if claims.IsGuestToken() {
		return access.GuestCaller(claims.ShareID), true
	}

	user, err := s.GetUser(r.Context(), claims.Username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			Unauthorized(w, "User not found")
			return access.Caller{}, false
		}
		InternalServerError(w, "Failed to fetch user")
		return access.Caller{}, false
	}
	if !user.Enabled {
		Forbidden(w, "User account is disabled")
		return access.Caller{}, false
	}

	return access.UserCaller(user), true
}
