package apiclient

import (
	"time"
)

// ShareUserGrant names one user granted access to a user-restricted share.
type ShareUserGrant struct {
	ShareID string `json:"share_id"`
	UserID  string `json:"user_id"`
}

// Share represents a share link addressed by its token.
type Share struct {
	ID          string           `json:"id"`
	Token       string           `json:"token"`
	OwnerID     string           `json:"owner_id"`
	Source      string           `json:"source"`
	VolumeID    string           `json:"volume_id,omitempty"`
	SourcePath  string           `json:"source_path"`
	IsDirectory bool             `json:"is_directory"`
	SharingType string           `json:"sharing_type"`
	AccessMode  string           `json:"access_mode"`
	ExpiresAt   *time.Time       `json:"expires_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at,omitempty"`
	UpdatedAt   time.Time        `json:"updated_at,omitempty"`
	UserGrants  []ShareUserGrant `json:"user_grants,omitempty"`
}

// CreateShareRequest is the request to create a share.
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

// UpdateShareRequest is the request to update a share.
type UpdateShareRequest struct {
	SharingType *string    `json:"sharing_type,omitempty"`
	AccessMode  *string    `json:"access_mode,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	ClearExpiry bool       `json:"clear_expiry,omitempty"`
	UserIDs     *[]string  `json:"user_ids,omitempty"`
}

// ListShares returns the caller's shares. Admins may pass all=true to
// list every share on the server.
func (c *Client) ListShares(all bool) ([]Share, error) {
	path := "/api/v1/shares"
	if all {
		path += "?all=true"
	}
	return listResources[Share](c, path)
}

// GetShare returns one of the caller's shares by token.
func (c *Client) GetShare(token string) (*Share, error) {
	return getResource[Share](c, resourcePath("/api/v1/shares/%s", token))
}

// CreateShare creates a new share.
func (c *Client) CreateShare(req CreateShareRequest) (*Share, error) {
	return createResource[Share](c, "/api/v1/shares", req)
}

// UpdateShare updates one of the caller's shares.
func (c *Client) UpdateShare(token string, req UpdateShareRequest) (*Share, error) {
	return updateResource[Share](c, resourcePath("/api/v1/shares/%s", token), req)
}

// DeleteShare revokes a share by token.
func (c *Client) DeleteShare(token string) error {
	return deleteResource(c, resourcePath("/api/v1/shares/%s", token))
}
