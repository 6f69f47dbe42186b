package access

import "github.com/filehaven/filehaven/pkg/controlplane/models"

// Caller is the established identity a decision is made for.
//
// A caller can be an authenticated user, a guest session minted against
// a single share, or anonymous (neither set). When both are present the
// authenticated user wins: a stale guest session left over from a
// previous visit never downgrades a logged-in user.
type Caller struct {
	// User is the authenticated user, or nil.
	User *models.User

	// GuestShareID is the share ID a guest session was minted for,
	// or "" when there is no guest session.
	GuestShareID string
}

// UserCaller returns a caller for an authenticated user.
func UserCaller(user *models.User) Caller {
	return Caller{User: user}
}

// GuestCaller returns a caller for a guest session scoped to one share.
func GuestCaller(shareID string) Caller {
	return Caller{GuestShareID: shareID}
}

// Anonymous returns a caller with no identity at all.
func Anonymous() Caller {
	return Caller{}
}

// IsAuthenticated reports whether an authenticated user is present.
func (c Caller) IsAuthenticated() bool {
	return c.User != nil
}

// IsGuest reports whether the caller is a guest session without an
// authenticated user.
func (c Caller) IsGuest() bool {
	return c.User == nil && c.GuestShareID != ""
}

// IsAdmin reports whether the caller is an authenticated administrator.
func (c Caller) IsAdmin() bool {
	return c.User != nil && c.User.IsAdmin()
}

// UserID returns the authenticated user's ID, or "".
func (c Caller) UserID() string {
	if c.User == nil {
		return ""
	}
	return c.User.ID
}

// Username returns the authenticated user's username, or "".
func (c Caller) Username() string {
	if c.User == nil {
		return ""
	}
	return c.User.Username
}
