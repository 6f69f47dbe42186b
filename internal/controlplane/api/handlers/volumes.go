package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/filehaven/filehaven/pkg/controlplane/models"
	"github.com/filehaven/filehaven/pkg/controlplane/store"
)

// VolumeHandler handles user volume management API endpoints.
//
// Volume assignment is admin-only: volumes decide which storage roots a
// user reaches when volume restrictions are enabled, so letting users
// mount their own would defeat the restriction.
type VolumeHandler struct {
	store store.Store
}

// NewVolumeHandler creates a new VolumeHandler.
func NewVolumeHandler(s store.Store) *VolumeHandler {
	return &VolumeHandler{store: s}
}

// CreateVolumeRequest is the request body for POST /api/v1/volumes.
type CreateVolumeRequest struct {
	UserID     string `json:"user_id"`
	Label      string `json:"label"`
	AccessMode string `json:"access_mode,omitempty"`
	RootPath   string `json:"root_path"`
}

// UpdateVolumeRequest is the request body for PUT /api/v1/volumes/{id}.
type UpdateVolumeRequest struct {
	Label      *string `json:"label,omitempty"`
	AccessMode *string `json:"access_mode,omitempty"`
	RootPath   *string `json:"root_path,omitempty"`
}

// List handles GET /api/v1/volumes.
// Lists all volumes, or one user's volumes when user_id is given.
func (h *VolumeHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")

	volumes, err := h.store.ListVolumes(r.Context(), userID)
	if err != nil {
		InternalServerError(w, "Failed to list volumes")
		return
	}

	WriteJSONOK(w, volumes)
}

// Get handles GET /api/v1/volumes/{id}.
func (h *VolumeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		BadRequest(w, "Volume ID is required")
		return
	}

	volume, err := h.store.GetVolume(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrVolumeNotFound) {
			NotFound(w, "Volume not found")
			return
		}
		InternalServerError(w, "Failed to get volume")
		return
	}

	WriteJSONOK(w, volume)
}

// Create handles POST /api/v1/volumes.
func (h *VolumeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateVolumeRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	// Verify the owner exists before creating the volume
	if _, err := h.store.GetUserByID(r.Context(), req.UserID); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			BadRequest(w, "Volume owner does not exist")
			return
		}
		InternalServerError(w, "Failed to get user")
		return
	}

	volume := &models.UserVolume{
		ID:         uuid.New().String(),
		UserID:     req.UserID,
		Label:      req.Label,
		AccessMode: req.AccessMode,
		RootPath:   req.RootPath,
	}
	if volume.AccessMode == "" {
		volume.AccessMode = string(models.AccessReadWrite)
	}

	if err := volume.Validate(); err != nil {
		if errors.Is(err, models.ErrReservedLabel) {
			BadRequest(w, "Volume label is reserved")
			return
		}
		BadRequest(w, err.Error())
		return
	}

	if _, err := h.store.CreateVolume(r.Context(), volume); err != nil {
		if errors.Is(err, models.ErrDuplicateVolume) {
			Conflict(w, "A volume with this label already exists for the user")
			return
		}
		InternalServerError(w, "Failed to create volume")
		return
	}

	WriteJSONCreated(w, volume)
}

// Update handles PUT /api/v1/volumes/{id}.
func (h *VolumeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		BadRequest(w, "Volume ID is required")
		return
	}

	var req UpdateVolumeRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	volume, err := h.store.GetVolume(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrVolumeNotFound) {
			NotFound(w, "Volume not found")
			return
		}
		InternalServerError(w, "Failed to get volume")
		return
	}

	if req.Label != nil {
		volume.Label = *req.Label
	}
	if req.AccessMode != nil {
		volume.AccessMode = *req.AccessMode
	}
	if req.RootPath != nil {
		volume.RootPath = *req.RootPath
	}

	if err := volume.Validate(); err != nil {
		if errors.Is(err, models.ErrReservedLabel) {
			BadRequest(w, "Volume label is reserved")
			return
		}
		BadRequest(w, err.Error())
		return
	}

	if err := h.store.UpdateVolume(r.Context(), volume); err != nil {
		if errors.Is(err, models.ErrDuplicateVolume) {
			Conflict(w, "A volume with this label already exists for the user")
			return
		}
		InternalServerError(w, "Failed to update volume")
		return
	}

	WriteJSONOK(w, volume)
}

// Delete handles DELETE /api/v1/volumes/{id}.
func (h *VolumeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		BadRequest(w, "Volume ID is required")
		return
	}

	if err := h.store.DeleteVolume(r.Context(), id); err != nil {
		if errors.Is(err, models.ErrVolumeNotFound) {
			NotFound(w, "Volume not found")
			return
		}
		InternalServerError(w, "Failed to delete volume")
		return
	}

	WriteNoContent(w)
}
