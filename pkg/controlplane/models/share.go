package models

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// Share defines a FileHaven share link.
//
// A share grants access to a single file or directory through an opaque
// token. The share's access mode is an upper bound only: the effective
// permission is recomputed on every access by capping the mode against
// the owner's current permission on the underlying path.
type Share struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	Token       string     `gorm:"uniqueIndex;not null;size:64" json:"token"`
	OwnerID     string     `gorm:"not null;size:36;index" json:"owner_id"`
	Source      string     `gorm:"default:volume;size:50" json:"source"` // volume, user_volume
	VolumeID    string     `gorm:"size:36" json:"volume_id,omitempty"`   // set when Source is user_volume
	SourcePath  string     `gorm:"not null;size:1024" json:"source_path"`
	IsDirectory bool       `gorm:"default:false" json:"is_directory"`
	SharingType string     `gorm:"default:anyone;size:50" json:"sharing_type"` // anyone, users
	AccessMode  string     `gorm:"default:readonly;size:50" json:"access_mode"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Owner      User             `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	UserGrants []ShareUserGrant `gorm:"foreignKey:ShareID" json:"user_grants,omitempty"`
}

// TableName returns the table name for Share.
func (Share) TableName() string {
	return "shares"
}

// GetSource returns the source as a ShareSource type.
func (s *Share) GetSource() ShareSource {
	return ParseShareSource(s.Source)
}

// GetSharingType returns the sharing type as a SharingType type.
func (s *Share) GetSharingType() SharingType {
	return ParseSharingType(s.SharingType)
}

// GetAccessMode returns the access mode as an AccessMode type.
func (s *Share) GetAccessMode() AccessMode {
	return ParseAccessMode(s.AccessMode)
}

// IsExpired reports whether the share has expired at the given time.
// A share with no expiry never expires.
func (s *Share) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && !now.Before(*s.ExpiresAt)
}

// Name returns the base name of the shared file or directory.
func (s *Share) Name() string {
	return path.Base(s.SourcePath)
}

// GrantsUser reports whether the share's user grants include the given
// user ID. Only meaningful when SharingType is users.
func (s *Share) GrantsUser(userID string) bool {
	for _, g := range s.UserGrants {
		if g.UserID == userID {
			return true
		}
	}
	return false
}

// Validate checks if the share has valid configuration.
func (s *Share) Validate() error {
	if s.Token == "" {
		return fmt.Errorf("share token is required")
	}
	if s.OwnerID == "" {
		return fmt.Errorf("share owner is required")
	}
	if !strings.HasPrefix(s.SourcePath, "/") {
		return fmt.Errorf("source path must be absolute")
	}
	if !ShareSource(s.Source).IsValid() {
		return fmt.Errorf("invalid share source %q", s.Source)
	}
	if s.GetSource() == SourceUserVolume && s.VolumeID == "" {
		return fmt.Errorf("user volume shares require a volume id")
	}
	if !SharingType(s.SharingType).IsValid() {
		return fmt.Errorf("invalid sharing type %q", s.SharingType)
	}
	if !AccessMode(s.AccessMode).IsValid() {
		return fmt.Errorf("invalid access mode %q", s.AccessMode)
	}
	return nil
}

// ShareUserGrant names an authenticated user allowed to redeem a share
// whose sharing type is users.
type ShareUserGrant struct {
	ShareID string `gorm:"primaryKey;size:36" json:"share_id"`
	UserID  string `gorm:"primaryKey;size:36" json:"user_id"`
}

// TableName returns the table name for ShareUserGrant.
func (ShareUserGrant) TableName() string {
	return "share_user_grants"
}
