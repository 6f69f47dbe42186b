// Package store provides the control plane persistence layer.
//
// This package implements the Store interface for managing control plane data
// including users, path rules, user volumes, shares, and settings.
//
// Two backends are supported:
//   - SQLite (single-node, default)
//   - PostgreSQL (HA-capable)
package store

import (
	"context"
	"time"

	"github.com/filehaven/filehaven/pkg/controlplane/models"
)

// Store provides the control plane persistence interface.
//
// Thread Safety: Implementations must be safe for concurrent use from multiple
// goroutines.
type Store interface {
	// ============================================
	// USER OPERATIONS
	// ============================================

	// GetUser returns a user by username.
	// Returns models.ErrUserNotFound if the user doesn't exist.
	GetUser(ctx context.Context, username string) (*models.User, error)

	// GetUserByID returns a user by their unique ID (UUID).
	// Returns models.ErrUserNotFound if no user has this ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// ListUsers returns all users.
	// Use with caution for large user counts.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// CreateUser creates a new user.
	// The user ID will be generated if empty.
	// Returns the generated ID.
	// Returns models.ErrDuplicateUser if a user with the same username exists.
	CreateUser(ctx context.Context, user *models.User) (string, error)

	// UpdateUser updates an existing user.
	// Returns models.ErrUserNotFound if the user doesn't exist.
	UpdateUser(ctx context.Context, user *models.User) error

	// DeleteUser deletes a user by username, along with their volumes,
	// shares, and share grants.
	// Returns models.ErrUserNotFound if the user doesn't exist.
	DeleteUser(ctx context.Context, username string) error

	// UpdatePassword updates a user's password hash.
	// Returns models.ErrUserNotFound if the user doesn't exist.
	UpdatePassword(ctx context.Context, username, passwordHash string) error

	// UpdateLastLogin records the user's last login time.
	// Returns models.ErrUserNotFound if the user doesn't exist.
	UpdateLastLogin(ctx context.Context, username string, timestamp time.Time) error

	// ValidateCredentials checks a username/password pair.
	// Returns models.ErrInvalidCredentials on bad credentials and
	// models.ErrUserDisabled for disabled accounts.
	ValidateCredentials(ctx context.Context, username, password string) (*models.User, error)

	// EnsureAdminUser creates the admin user if missing.
	// Returns the generated password, or "" if the admin already existed.
	EnsureAdminUser(ctx context.Context) (string, error)

	// IsAdminInitialized reports whether the admin user exists.
	IsAdminInitialized(ctx context.Context) (bool, error)

	// ============================================
	// PATH RULE OPERATIONS
	// ============================================

	// GetRule returns a path rule by ID.
	// Returns models.ErrRuleNotFound if the rule doesn't exist.
	GetRule(ctx context.Context, id string) (*models.PathRule, error)

	// ListRules returns all path rules ordered by position.
	// Rule order is significant: the first matching rule wins.
	ListRules(ctx context.Context) ([]*models.PathRule, error)

	// CreateRule creates a new path rule at the end of the rule list.
	// The rule ID will be generated if empty. Returns the generated ID.
	CreateRule(ctx context.Context, rule *models.PathRule) (string, error)

	// UpdateRule updates an existing rule's path, recursion, and permission.
	// Returns models.ErrRuleNotFound if the rule doesn't exist.
	UpdateRule(ctx context.Context, rule *models.PathRule) error

	// DeleteRule deletes a path rule by ID.
	// Returns models.ErrRuleNotFound if the rule doesn't exist.
	DeleteRule(ctx context.Context, id string) error

	// ReorderRules rewrites rule positions to match the given ID order.
	// IDs not present in the list keep their relative order after the
	// listed ones. Returns models.ErrRuleNotFound on unknown IDs.
	ReorderRules(ctx context.Context, ids []string) error

	// ============================================
	// USER VOLUME OPERATIONS
	// ============================================

	// GetVolume returns a user volume by ID.
	// Returns models.ErrVolumeNotFound if the volume doesn't exist.
	GetVolume(ctx context.Context, id string) (*models.UserVolume, error)

	// GetVolumeByLabel returns the volume with the given label owned by userID.
	// Returns models.ErrVolumeNotFound if no such volume exists.
	GetVolumeByLabel(ctx context.Context, userID, label string) (*models.UserVolume, error)

	// ListVolumes returns all volumes owned by userID, or all volumes
	// when userID is empty.
	ListVolumes(ctx context.Context, userID string) ([]*models.UserVolume, error)

	// CreateVolume creates a new user volume.
	// The volume ID will be generated if empty. Returns the generated ID.
	// Returns models.ErrDuplicateVolume if the owner already has a volume
	// with the same label.
	CreateVolume(ctx context.Context, volume *models.UserVolume) (string, error)

	// UpdateVolume updates a volume's label, access mode, and root path.
	// Returns models.ErrVolumeNotFound if the volume doesn't exist.
	UpdateVolume(ctx context.Context, volume *models.UserVolume) error

	// DeleteVolume deletes a volume and all shares sourced from it.
	// Returns models.ErrVolumeNotFound if the volume doesn't exist.
	DeleteVolume(ctx context.Context, id string) error

	// ============================================
	// SHARE OPERATIONS
	// ============================================

	// GetShareByToken returns a share by its opaque token, with user
	// grants preloaded.
	// Returns models.ErrShareNotFound if no share has this token.
	GetShareByToken(ctx context.Context, token string) (*models.Share, error)

	// GetShareByID returns a share by ID, with user grants preloaded.
	// Returns models.ErrShareNotFound if the share doesn't exist.
	GetShareByID(ctx context.Context, id string) (*models.Share, error)

	// ListShares returns all shares owned by a user, or all shares when
	// ownerID is empty.
	ListShares(ctx context.Context, ownerID string) ([]*models.Share, error)

	// CreateShare creates a new share. The ID and token are generated if
	// empty. Returns the generated ID.
	// Returns models.ErrDuplicateShare on a token collision.
	CreateShare(ctx context.Context, share *models.Share) (string, error)

	// UpdateShare updates a share's sharing type, access mode, and expiry.
	// Returns models.ErrShareNotFound if the share doesn't exist.
	UpdateShare(ctx context.Context, share *models.Share) error

	// DeleteShare deletes a share and its user grants by ID.
	// Returns models.ErrShareNotFound if the share doesn't exist.
	DeleteShare(ctx context.Context, id string) error

	// SetShareUsers replaces the set of users allowed to redeem a share
	// whose sharing type is users.
	// Returns models.ErrShareNotFound if the share doesn't exist.
	SetShareUsers(ctx context.Context, shareID string, userIDs []string) error

	// DeleteExpiredShares removes all shares whose expiry has passed.
	// Returns the number of shares removed.
	DeleteExpiredShares(ctx context.Context, now time.Time) (int64, error)

	// ============================================
	// SETTINGS OPERATIONS
	// ============================================

	// GetSetting returns the value for a key, or "" if not set.
	GetSetting(ctx context.Context, key string) (string, error)

	// SetSetting stores a key-value setting, overwriting any previous value.
	SetSetting(ctx context.Context, key, value string) error

	// DeleteSetting removes a setting. Deleting a missing key is not an error.
	DeleteSetting(ctx context.Context, key string) error

	// ListSettings returns all settings.
	ListSettings(ctx context.Context) ([]*models.Setting, error)

	// ============================================
	// HEALTH & LIFECYCLE
	// ============================================

	// Healthcheck verifies the database connection is alive.
	Healthcheck(ctx context.Context) error

	// Close releases the database connection.
	Close() error
}
