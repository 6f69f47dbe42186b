package apiclient

import (
	"net/url"
	"time"
)

// Volume represents a per-user volume mounted under the volumes/
// segment of the owner's personal space.
type Volume struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Label      string    `json:"label"`
	AccessMode string    `json:"access_mode"`
	RootPath   string    `json:"root_path"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

// CreateVolumeRequest is the request to create a volume.
type CreateVolumeRequest struct {
	UserID     string `json:"user_id"`
	Label      string `json:"label"`
	AccessMode string `json:"access_mode,omitempty"`
	RootPath   string `json:"root_path"`
}

// UpdateVolumeRequest is the request to update a volume.
type UpdateVolumeRequest struct {
	Label      *string `json:"label,omitempty"`
	AccessMode *string `json:"access_mode,omitempty"`
	RootPath   *string `json:"root_path,omitempty"`
}

// ListVolumes returns all volumes. Pass a non-empty userID to list
// only that user's volumes.
func (c *Client) ListVolumes(userID string) ([]Volume, error) {
	path := "/api/v1/volumes"
	if userID != "" {
		path += "?user_id=" + url.QueryEscape(userID)
	}
	return listResources[Volume](c, path)
}

// GetVolume returns a volume by ID.
func (c *Client) GetVolume(id string) (*Volume, error) {
	return getResource[Volume](c, resourcePath("/api/v1/volumes/%s", id))
}

// CreateVolume creates a new volume.
func (c *Client) CreateVolume(req CreateVolumeRequest) (*Volume, error) {
	return createResource[Volume](c, "/api/v1/volumes", req)
}

// UpdateVolume updates an existing volume.
func (c *Client) UpdateVolume(id string, req UpdateVolumeRequest) (*Volume, error) {
	return updateResource[Volume](c, resourcePath("/api/v1/volumes/%s", id), req)
}

// DeleteVolume deletes a volume by ID.
func (c *Client) DeleteVolume(id string) error {
	return deleteResource(c, resourcePath("/api/v1/volumes/%s", id))
}
