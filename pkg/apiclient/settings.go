package apiclient

// FeatureSettings are the server-wide feature flags.
type FeatureSettings struct {
	UserVolumesEnabled bool `json:"user_volumes_enabled"`
	ThumbnailsEnabled  bool `json:"thumbnails_enabled"`
}

// PatchSettingsRequest updates feature flags. Nil fields keep the
// current value.
type PatchSettingsRequest struct {
	UserVolumesEnabled *bool `json:"user_volumes_enabled,omitempty"`
	ThumbnailsEnabled  *bool `json:"thumbnails_enabled,omitempty"`
}

// GetSettings returns the current feature flags.
func (c *Client) GetSettings() (*FeatureSettings, error) {
	return getResource[FeatureSettings](c, "/api/v1/settings")
}

// PatchSettings updates feature flags and returns the new state.
func (c *Client) PatchSettings(req PatchSettingsRequest) (*FeatureSettings, error) {
	var resp FeatureSettings
	if err := c.patch("/api/v1/settings", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
