package apiclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Decision mirrors the server's per-request access decision.
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

	EffectivePermission string `json:"effective_permission"`
	DenialReason        string `json:"denial_reason,omitempty"`
}

// ShareInfo summarizes the share a decision was capped by.
type ShareInfo struct {
	Token       string     `json:"token"`
	Name        string     `json:"name"`
	IsDirectory bool       `json:"is_directory"`
	Mode        string     `json:"mode"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	IsOwner     bool       `json:"is_owner"`
}

// Item is one visible directory entry.
type Item struct {
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	Kind        string    `json:"kind"`
	IsDirectory bool      `json:"is_directory"`
	Size        int64     `json:"size"`
	ModTime     time.Time `json:"mod_time"`
	Thumbnail   bool      `json:"thumbnail"`
}

// Listing is the access-filtered content of one logical directory.
type Listing struct {
	Items  []Item     `json:"items"`
	Access *Decision  `json:"access"`
	Share  *ShareInfo `json:"share,omitempty"`
}

// AuthorizeRequest asks for one action on one logical path.
type AuthorizeRequest struct {
	Path   string `json:"path"`
	Action string `json:"action"`
}

// AuthorizeResponse carries the full decision for an authorization check.
type AuthorizeResponse struct {
	Allowed bool      `json:"allowed"`
	Access  *Decision `json:"access"`
}

// CreateFolderRequest is the request to create a folder.
type CreateFolderRequest struct {
	Path string `json:"path"`
}

// RenameRequest is the request to rename or move an entry.
type RenameRequest struct {
	Path    string `json:"path"`
	NewPath string `json:"new_path"`
}

// Browse returns the access-filtered listing of one logical directory.
func (c *Client) Browse(path string) (*Listing, error) {
	return getResource[Listing](c, "/api/v1/files?path="+url.QueryEscape(path))
}

// Authorize checks one action on one logical path. Denials come back
// as Allowed=false with a populated decision, not as an error.
func (c *Client) Authorize(path, action string) (*AuthorizeResponse, error) {
	req := AuthorizeRequest{Path: path, Action: action}
	return createResource[AuthorizeResponse](c, "/api/v1/files/authorize", req)
}

// CreateFolder creates a directory at the given logical path.
func (c *Client) CreateFolder(path string) error {
	return c.post("/api/v1/files/folders", CreateFolderRequest{Path: path}, nil)
}

// Rename moves an entry to a new logical path.
func (c *Client) Rename(path, newPath string) error {
	return c.put("/api/v1/files", RenameRequest{Path: path, NewPath: newPath}, nil)
}

// DeleteFile removes the entry at the given logical path.
func (c *Client) DeleteFile(path string) error {
	return c.delete("/api/v1/files?path="+url.QueryEscape(path), nil)
}

// Download streams the file at the given logical path. The caller must
// close the returned reader.
func (c *Client) Download(path string) (io.ReadCloser, error) {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/api/v1/files/download?path="+url.QueryEscape(path), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode >= 400 {
		defer func() { _ = resp.Body.Close() }()
		body, _ := io.ReadAll(resp.Body)
		var apiErr APIError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Title != "" {
			apiErr.StatusCode = resp.StatusCode
			return nil, &apiErr
		}
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Title:      http.StatusText(resp.StatusCode),
			Detail:     string(body),
		}
	}

	return resp.Body, nil
}

// Upload writes the reader's content to the given logical path.
func (c *Client) Upload(path string, content io.Reader) error {
	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/api/v1/files?path="+url.QueryEscape(path), content)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		var apiErr APIError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Title != "" {
			apiErr.StatusCode = resp.StatusCode
			return &apiErr
		}
		return &APIError{
			StatusCode: resp.StatusCode,
			Title:      http.StatusText(resp.StatusCode),
			Detail:     string(body),
		}
	}

	return nil
}
