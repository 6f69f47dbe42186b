package apiclient

import (
	"time"
)

// User represents a user in the system.
type User struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name,omitempty"`
	Email       string     `json:"email,omitempty"`
	Role        string     `json:"role"`
	Enabled     bool       `json:"enabled"`
	CreatedAt   time.Time  `json:"created_at,omitempty"`
	LastLogin   *time.Time `json:"last_login,omitempty"`
}

// CreateUserRequest is the request to create a user.
type CreateUserRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Role        string `json:"role,omitempty"`
	Enabled     *bool  `json:"enabled,omitempty"`
}

// UpdateUserRequest is the request to update a user.
type UpdateUserRequest struct {
	Email       *string `json:"email,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
	Role        *string `json:"role,omitempty"`
	Enabled     *bool   `json:"enabled,omitempty"`
}

// ChangePasswordRequest is the request to change a password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password,omitempty"`
	NewPassword     string `json:"new_password"`
}

// ListUsers returns all users.
func (c *Client) ListUsers() ([]User, error) {
	return listResources[User](c, "/api/v1/users")
}

// GetUser returns a user by username.
func (c *Client) GetUser(username string) (*User, error) {
	return getResource[User](c, resourcePath("/api/v1/users/%s", username))
}

// CreateUser creates a new user.
func (c *Client) CreateUser(req CreateUserRequest) (*User, error) {
	return createResource[User](c, "/api/v1/users", req)
}

// UpdateUser updates an existing user.
func (c *Client) UpdateUser(username string, req UpdateUserRequest) (*User, error) {
	return updateResource[User](c, resourcePath("/api/v1/users/%s", username), req)
}

// DeleteUser deletes a user along with their volumes, rules and shares.
func (c *Client) DeleteUser(username string) error {
	return deleteResource(c, resourcePath("/api/v1/users/%s", username))
}

// SetUserPassword sets another user's password (admin only).
func (c *Client) SetUserPassword(username, newPassword string) error {
	req := ChangePasswordRequest{NewPassword: newPassword}
	return c.post(resourcePath("/api/v1/users/%s/password", username), req, nil)
}

// ChangeOwnPassword changes the authenticated user's password.
func (c *Client) ChangeOwnPassword(currentPassword, newPassword string) error {
	req := ChangePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	}
	return c.post("/api/v1/users/me/password", req, nil)
}
