package models

import (
	"fmt"
	"time"
)

// ReservedVolumeLabels are labels that collide with first segments of
// the logical path space and can never be used for user volumes.
var ReservedVolumeLabels = []string{"personal", "share", "volumes"}

// IsReservedVolumeLabel reports whether the label is reserved.
func IsReservedVolumeLabel(label string) bool {
	for _, r := range ReservedVolumeLabels {
		if label == r {
			return true
		}
	}
	return false
}

// UserVolume is an extra storage root mounted under a user's account.
//
// When volume restrictions are enabled, a non-admin user reaches the
// volume space only through their assigned volumes, addressed by label
// as the first path segment. The volume's access mode bounds what the
// owner can do inside it, and shares created from a volume are capped
// by it on every access.
type UserVolume struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     string    `gorm:"not null;size:36;index:idx_volume_user_label,unique" json:"user_id"`
	Label      string    `gorm:"not null;size:255;index:idx_volume_user_label,unique" json:"label"`
	AccessMode string    `gorm:"default:readwrite;size:50" json:"access_mode"`
	RootPath   string    `gorm:"not null;size:1024" json:"root_path"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for UserVolume.
func (UserVolume) TableName() string {
	return "user_volumes"
}

// GetAccessMode returns the access mode as an AccessMode type.
func (v *UserVolume) GetAccessMode() AccessMode {
	return ParseAccessMode(v.AccessMode)
}

// IsReadOnly reports whether the volume is mounted read-only.
func (v *UserVolume) IsReadOnly() bool {
	return v.GetAccessMode() == AccessReadOnly
}

// Validate checks if the volume has valid configuration.
func (v *UserVolume) Validate() error {
	if v.UserID == "" {
		return fmt.Errorf("volume owner is required")
	}
	if v.Label == "" {
		return fmt.Errorf("volume label is required")
	}
	if IsReservedVolumeLabel(v.Label) {
		return ErrReservedLabel
	}
	if v.RootPath == "" {
		return fmt.Errorf("volume root path is required")
	}
	if !AccessMode(v.AccessMode).IsValid() {
		return fmt.Errorf("invalid access mode %q", v.AccessMode)
	}
	return nil
}
