package models

import "errors"

// Common errors for control plane operations.
var (
	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user already exists")
	ErrUserDisabled  = errors.New("user account is disabled")

	// Path rule errors
	ErrRuleNotFound = errors.New("path rule not found")

	// User volume errors
	ErrVolumeNotFound  = errors.New("user volume not found")
	ErrDuplicateVolume = errors.New("user volume already exists")
	ErrReservedLabel   = errors.New("volume label is reserved")

	// Share errors
	ErrShareNotFound  = errors.New("share not found")
	ErrDuplicateShare = errors.New("share already exists")
	ErrShareExpired   = errors.New("share has expired")

	// Setting errors
	ErrSettingNotFound = errors.New("setting not found")
)
