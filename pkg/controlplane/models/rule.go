package models

import (
	"fmt"
	"strings"
	"time"
)

// PathRule maps a volume-space path prefix to a permission.
//
// Rules are evaluated in position order and the first match wins, so a
// specific rule placed before a broader one takes precedence. Paths are
// matched on whole segments: a rule for /projects never matches
// /projects-archive.
type PathRule struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Path        string    `gorm:"not null;size:1024" json:"path"`
	Recursive   bool      `gorm:"default:true" json:"recursive"`
	Permissions string    `gorm:"not null;size:50" json:"permissions"` // rw, ro, hidden
	Position    int       `gorm:"not null;index" json:"position"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for PathRule.
func (PathRule) TableName() string {
	return "path_rules"
}

// GetPermission returns the rule's permission as a PathPermission type.
func (r *PathRule) GetPermission() PathPermission {
	return ParsePathPermission(r.Permissions)
}

// Validate checks if the rule has valid configuration.
func (r *PathRule) Validate() error {
	if r.Path == "" {
		return fmt.Errorf("rule path is required")
	}
	if !strings.HasPrefix(r.Path, "/") {
		return fmt.Errorf("rule path must be absolute")
	}
	if !PathPermission(r.Permissions).IsValid() {
		return fmt.Errorf("invalid permission %q", r.Permissions)
	}
	return nil
}
