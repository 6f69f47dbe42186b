package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/filehaven/filehaven/internal/controlplane/api/middleware"
	"github.com/filehaven/filehaven/pkg/access"
	"github.com/filehaven/filehaven/pkg/controlplane/models"
	"github.com/filehaven/filehaven/pkg/controlplane/runtime"
	"github.com/filehaven/filehaven/pkg/controlplane/store"
)

// ShareHandler handles share link management API endpoints.
//
// Shares are owner-scoped: users manage only their own shares, admins
// can manage everyone's. The share's access mode set here is an upper
// bound; the engine caps it against the owner's live permission on
// every access.
type ShareHandler struct {
	runtime *runtime.Runtime
	store   store.Store
}

// NewShareHandler creates a new ShareHandler.
func NewShareHandler(rt *runtime.Runtime) *ShareHandler {
	return &ShareHandler{runtime: rt, store: rt.Store()}
}

// CreateShareRequest is the request body for POST /api/v1/shares.
type CreateShareRequest struct {
	Source      string     `json:"source,omitempty"`
	VolumeID    string     `json:"volume_id,omitempty"`
	SourcePath  string     `json:"source_path"`
	IsDirectory bool       `json:"is_directory,omitempty"`
	SharingType string     `json:"sharing_type,omitempty"`
	AccessMode  string     `json:"access_mode,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	UserIDs     []string   `json:"user_ids,omitempty"`
}

// UpdateShareRequest is the request body for PUT /api/v1/shares/{token}.
type UpdateShareRequest struct {
	SharingType *string    `json:"sharing_type,omitempty"`
	AccessMode  *string    `json:"access_mode,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	ClearExpiry bool       `json:"clear_expiry,omitempty"`
	UserIDs     *[]string  `json:"user_ids,omitempty"`
}

// List handles GET /api/v1/shares.
// Lists the caller's shares. Admins list all shares with ?all=true.
func (h *ShareHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	ownerID := claims.UserID
	if claims.IsAdmin() && r.URL.Query().Get("all") == "true" {
		ownerID = ""
	}

	shares, err := h.store.ListShares(r.Context(), ownerID)
	if err != nil {
		InternalServerError(w, "Failed to list shares")
		return
	}

	WriteJSONOK(w, shares)
}

// Get handles GET /api/v1/shares/{token}.
func (h *ShareHandler) Get(w http.ResponseWriter, r *http.Request) {
	share, ok := h.fetchOwnedShare(w, r)
	if !ok {
		return
	}

	WriteJSONOK(w, share)
}

// Create handles POST /api/v1/shares.
func (h *ShareHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return
	}

	var req CreateShareRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	share := &models.Share{
		ID:          uuid.New().String(),
		Token:       uuid.New().String(),
		OwnerID:     claims.UserID,
		Source:      req.Source,
		VolumeID:    req.VolumeID,
		SourcePath:  req.SourcePath,
		IsDirectory: req.IsDirectory,
		SharingType: req.SharingType,
		AccessMode:  req.AccessMode,
		ExpiresAt:   req.ExpiresAt,
	}
	if share.Source == "" {
		share.Source = string(models.SourceVolume)
	}
	if share.SharingType == "" {
		share.SharingType = string(models.SharingAnyone)
	}
	if share.AccessMode == "" {
		share.AccessMode = string(models.DefaultAccessMode)
	}

	// Volume-backed shares must point at a volume the caller owns
	var volume *models.UserVolume
	if share.GetSource() == models.SourceUserVolume {
		var err error
		volume, err = h.store.GetVolume(r.Context(), share.VolumeID)
		if err != nil {
			if errors.Is(err, models.ErrVolumeNotFound) {
				BadRequest(w, "Volume not found")
				return
			}
			InternalServerError(w, "Failed to get volume")
			return
		}
		if volume.UserID != claims.UserID {
			Forbidden(w, "Volume is not owned by you")
			return
		}
	}

	if err := share.Validate(); err != nil {
		BadRequest(w, err.Error())
		return
	}

	// The caller must hold the share capability on the source path.
	// Without this check a user denied access to a path could mint a
	// share over it and redeem the token for the access they lack.
	caller, ok := resolveCaller(w, r, h.store)
	if !ok {
		return
	}
	logicalSource := share.SourcePath
	if volume != nil {
		joined, err := access.JoinLogical(volume.Label, share.SourcePath)
		if err != nil {
			BadRequest(w, "Invalid source path")
			return
		}
		logicalSource = joined
	}
	result, err := h.runtime.Authorizer().Authorize(r.Context(), caller, logicalSource, access.ActionCreateShare, nil)
	if err != nil {
		if errors.Is(err, access.ErrInvalidPath) {
			BadRequest(w, "Invalid source path")
			return
		}
		InternalServerError(w, "Authorization failed")
		return
	}
	if !result.Allowed {
		writeDenial(w, result.Decision)
		return
	}

	if _, err := h.store.CreateShare(r.Context(), share); err != nil {
		if errors.Is(err, models.ErrDuplicateShare) {
			Conflict(w, "Share already exists")
			return
		}
		InternalServerError(w, "Failed to create share")
		return
	}

	if share.GetSharingType() == models.SharingUsers && len(req.UserIDs) > 0 {
		if err := h.store.SetShareUsers(r.Context(), share.ID, req.UserIDs); err != nil {
			InternalServerError(w, "Failed to set share users")
			return
		}
	}

	created, err := h.store.GetShareByID(r.Context(), share.ID)
	if err != nil {
		InternalServerError(w, "Failed to get share")
		return
	}

	WriteJSONCreated(w, created)
}

// Update handles PUT /api/v1/shares/{token}.
func (h *ShareHandler) Update(w http.ResponseWriter, r *http.Request) {
	share, ok := h.fetchOwnedShare(w, r)
	if !ok {
		return
	}

	var req UpdateShareRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.SharingType != nil {
		share.SharingType = *req.SharingType
	}
	if req.AccessMode != nil {
		share.AccessMode = *req.AccessMode
	}
	if req.ClearExpiry {
		share.ExpiresAt = nil
	} else if req.ExpiresAt != nil {
		share.ExpiresAt = req.ExpiresAt
	}

	if err := share.Validate(); err != nil {
		BadRequest(w, err.Error())
		return
	}

	if err := h.store.UpdateShare(r.Context(), share); err != nil {
		if errors.Is(err, models.ErrShareNotFound) {
			NotFound(w, "Share not found")
			return
		}
		InternalServerError(w, "Failed to update share")
		return
	}

	if req.UserIDs != nil {
		if err := h.store.SetShareUsers(r.Context(), share.ID, *req.UserIDs); err != nil {
			InternalServerError(w, "Failed to set share users")
			return
		}
	}

	updated, err := h.store.GetShareByID(r.Context(), share.ID)
	if err != nil {
		InternalServerError(w, "Failed to get share")
		return
	}

	WriteJSONOK(w, updated)
}

// Delete handles DELETE /api/v1/shares/{token}.
func (h *ShareHandler) Delete(w http.ResponseWriter, r *http.Request) {
	share, ok := h.fetchOwnedShare(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteShare(r.Context(), share.ID); err != nil {
		if errors.Is(err, models.ErrShareNotFound) {
			NotFound(w, "Share not found")
			return
		}
		InternalServerError(w, "Failed to delete share")
		return
	}

	WriteNoContent(w)
}

// fetchOwnedShare loads the share from the URL token and enforces
// ownership. Writes the error response and returns false when the share
// is missing or the caller is neither the owner nor an admin.
func (h *ShareHandler) fetchOwnedShare(w http.ResponseWriter, r *http.Request) (*models.Share, bool) {
	claims := middleware.GetClaimsFromContext(r.Context())
	if claims == nil {
		Unauthorized(w, "Authentication required")
		return nil, false
	}

	token := chi.URLParam(r, "token")
	if token == "" {
		BadRequest(w, "Share token is required")
		return nil, false
	}

	share, err := h.store.GetShareByToken(r.Context(), token)
	if err != nil {
		if errors.Is(err, models.ErrShareNotFound) {
			NotFound(w, "Share not found")
			return nil, false
		}
		InternalServerError(w, "Failed to get share")
		return nil, false
	}

	if share.OwnerID != claims.UserID && !claims.IsAdmin() {
		// Hide other users' shares rather than confirming they exist
		NotFound(w, "Share not found")
		return nil, false
	}

	return share, true
}
