package access

import (
	"time"

	"github.com/filehaven/filehaven/pkg/controlplane/models"
)

// Denial reasons. These are policy outcomes, not errors: a denial is a
// first-class decision value with every capability off.
const (
	ReasonGuestsCannotAccessVolumes = "guests cannot access volumes"
	ReasonAuthenticationRequired    = "authentication required"
	ReasonVolumeNotAssigned         = "volume not assigned to user"
	ReasonPathHidden                = "path is hidden"
	ReasonShareTokenMissing         = "share token missing"
	ReasonShareNotFound             = "share not found"
	ReasonShareExpired              = "share has expired"
	ReasonShareUserNotPermitted     = "user not permitted on this share"
	ReasonInvalidGuestSession       = "invalid guest session for this share"
	ReasonShareSourceMismatch       = "share source volume mismatch"
	ReasonNotInShare                = "path does not exist in this share"
	ReasonUnknownSpace              = "unknown path space"
)

// ShareInfo describes the share a decision was reached through. It is
// attached to decisions in the share space for breadcrumb and UI use.
type ShareInfo struct {
	Token       string            `json:"token"`
	Name        string            `json:"name"`
	IsDirectory bool              `json:"is_directory"`
	Mode        models.AccessMode `json:"mode"`
	ExpiresAt   *time.Time        `json:"expires_at,omitempty"`
	IsOwner     bool              `json:"is_owner"`
}

// Decision is the result of one authorization check. It is computed
// fresh per call and never persisted.
type Decision struct {
	CanAccess       bool `json:"can_access"`
	CanRead         bool `json:"can_read"`
	CanWrite        bool `json:"can_write"`
	CanDelete       bool `json:"can_delete"`
	CanUpload       bool `json:"can_upload"`
	CanCreateFolder bool `json:"can_create_folder"`
	CanShare        bool `json:"can_share"`
	CanDownload     bool `json:"can_download"`

	IsShared bool       `json:"is_shared"`
	Share    *ShareInfo `json:"share,omitempty"`

	EffectivePermission models.PathPermission `json:"effective_permission"`
	DenialReason        string                `json:"denial_reason,omitempty"`

	// Resolution metadata, reused by the Resolver so the physical
	// mapping never re-queries what the Engine already fetched.
	parsed     ParsedPath
	userVolume *models.UserVolume
	shareRec   *models.Share
}

// Parsed returns the parsed logical path the decision was made for.
func (d *Decision) Parsed() ParsedPath {
	return d.parsed
}

// denied builds a denial for a parsed path. Every capability is off and
// the effective permission is hidden.
func denied(parsed ParsedPath, reason string) *Decision {
	return &Decision{
		EffectivePermission: models.PermissionHidden,
		DenialReason:        reason,
		parsed:              parsed,
	}
}
