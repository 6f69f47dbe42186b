package handlers

import (
	"net/http"
	"strconv"

	"github.com/filehaven/filehaven/pkg/controlplane/models"
	"github.com/filehaven/filehaven/pkg/controlplane/store"
)

// SettingsHandler handles system settings API endpoints (admin only).
//
// Settings written here are picked up by the settings watcher on its
// next poll, so a change can take up to one poll interval to reach the
// access engine.
type SettingsHandler struct {
	store store.Store
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(s store.Store) *SettingsHandler {
	return &SettingsHandler{store: s}
}

// FeatureSettingsResponse is the response body for GET /api/v1/settings.
type FeatureSettingsResponse struct {
	UserVolumesEnabled bool `json:"user_volumes_enabled"`
	ThumbnailsEnabled  bool `json:"thumbnails_enabled"`
}

// PatchSettingsRequest uses pointer fields for partial updates (nil = keep current).
type PatchSettingsRequest struct {
	UserVolumesEnabled *bool `json:"user_volumes_enabled,omitempty"`
	ThumbnailsEnabled  *bool `json:"thumbnails_enabled,omitempty"`
}

// Get handles GET /api/v1/settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	response, ok := h.readSettings(w, r)
	if !ok {
		return
	}

	WriteJSONOK(w, response)
}

// Patch handles PATCH /api/v1/settings.
// Applies partial updates and returns the resulting settings.
func (h *SettingsHandler) Patch(w http.ResponseWriter, r *http.Request) {
	var req PatchSettingsRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	if req.UserVolumesEnabled != nil {
		if err := h.store.SetSetting(r.Context(), models.SettingUserVolumesEnabled,
			strconv.FormatBool(*req.UserVolumesEnabled)); err != nil {
			InternalServerError(w, "Failed to update settings")
			return
		}
	}
	if req.ThumbnailsEnabled != nil {
		if err := h.store.SetSetting(r.Context(), models.SettingThumbnailsEnabled,
			strconv.FormatBool(*req.ThumbnailsEnabled)); err != nil {
			InternalServerError(w, "Failed to update settings")
			return
		}
	}

	response, ok := h.readSettings(w, r)
	if !ok {
		return
	}

	WriteJSONOK(w, response)
}

// readSettings reads the current feature settings from the store.
// Writes the error response and returns false on failure.
func (h *SettingsHandler) readSettings(w http.ResponseWriter, r *http.Request) (FeatureSettingsResponse, bool) {
	var response FeatureSettingsResponse

	userVolumes, err := h.store.GetSetting(r.Context(), models.SettingUserVolumesEnabled)
	if err != nil {
		InternalServerError(w, "Failed to read settings")
		return response, false
	}
	thumbnails, err := h.store.GetSetting(r.Context(), models.SettingThumbnailsEnabled)
	if err != nil {
		InternalServerError(w, "Failed to read settings")
		return response, false
	}

	userVolumesSetting := models.Setting{Value: userVolumes}
	thumbnailsSetting := models.Setting{Value: thumbnails}
	response.UserVolumesEnabled = userVolumesSetting.Bool()
	response.ThumbnailsEnabled = thumbnailsSetting.Bool()

	return response, true
}
