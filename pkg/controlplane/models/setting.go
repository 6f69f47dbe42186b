package models

import "time"

// Well-known setting keys.
const (
	// SettingUserVolumesEnabled toggles the user volumes feature for
	// non-admin users. Stored as "true" or "false".
	SettingUserVolumesEnabled = "user_volumes.enabled"

	// SettingThumbnailsEnabled toggles thumbnail generation on image
	// listings. Stored as "true" or "false".
	SettingThumbnailsEnabled = "thumbnails.enabled"
)

// Setting stores system-wide key-value settings.
type Setting struct {
	Key       string    `gorm:"primaryKey;size:255" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for Setting.
func (Setting) TableName() string {
	return "settings"
}

// Bool interprets the setting value as a boolean. Anything other than
// "true" is false.
func (s *Setting) Bool() bool {
	return s.Value == "true"
}
