// Package models provides shared domain types for the FileHaven control plane.
//
// This package contains all data models used across the control plane,
// including users, path rules, user volumes, and shares. It provides a
// single source of truth for domain types with GORM annotations for
// database persistence.
package models

// PathPermission represents the effective permission a path rule assigns.
//
// Permission levels are hierarchical:
//   - hidden: path does not exist as far as the caller is concerned
//   - ro: read-only access
//   - rw: full read/write access
type PathPermission string

const (
	// PermissionHidden denies all access and hides the path from listings.
	PermissionHidden PathPermission = "hidden"

	// PermissionReadOnly allows reading files and listing directories.
	PermissionReadOnly PathPermission = "ro"

	// PermissionReadWrite allows reading, writing, creating, and deleting files.
	PermissionReadWrite PathPermission = "rw"
)

// Level returns the numeric level of the permission for comparison.
// Higher values indicate more permissive access.
//
// Returns:
//   - 0: hidden
//   - 1: ro
//   - 2: rw
func (p PathPermission) Level() int {
	switch p {
	case PermissionHidden:
		return 0
	case PermissionReadOnly:
		return 1
	case PermissionReadWrite:
		return 2
	default:
		return 0
	}
}

// CanRead returns true if this permission level allows reading.
func (p PathPermission) CanRead() bool {
	return p.Level() >= PermissionReadOnly.Level()
}

// CanWrite returns true if this permission level allows writing.
func (p PathPermission) CanWrite() bool {
	return p.Level() >= PermissionReadWrite.Level()
}

// IsValid returns true if this is a valid permission value.
func (p PathPermission) IsValid() bool {
	switch p {
	case PermissionHidden, PermissionReadOnly, PermissionReadWrite:
		return true
	default:
		return false
	}
}

// String returns the string representation of the permission.
func (p PathPermission) String() string {
	return string(p)
}

// ParsePathPermission converts a string to a PathPermission.
// Returns PermissionHidden if the string is not a valid permission.
func ParsePathPermission(s string) PathPermission {
	p := PathPermission(s)
	if p.IsValid() {
		return p
	}
	return PermissionHidden
}

// MinPermission returns the lower of two permissions. Capping a share's
// access against the underlying path permission means taking the minimum.
func MinPermission(a, b PathPermission) PathPermission {
	if a.Level() < b.Level() {
		return a
	}
	return b
}

// AccessMode is the access level granted by a share or a user volume.
//
// Options:
//   - readonly: recipients may read and list but not modify
//   - readwrite: recipients may also upload, create, rename, and delete
type AccessMode string

const (
	// AccessReadOnly grants read and list access only.
	AccessReadOnly AccessMode = "readonly"

	// AccessReadWrite grants full read/write access.
	AccessReadWrite AccessMode = "readwrite"
)

// DefaultAccessMode is the access mode for new shares and user volumes
// when none is given.
const DefaultAccessMode = AccessReadOnly

// IsValid returns true if this is a valid access mode.
func (m AccessMode) IsValid() bool {
	switch m {
	case AccessReadOnly, AccessReadWrite:
		return true
	default:
		return false
	}
}

// String returns the string representation of the access mode.
func (m AccessMode) String() string {
	return string(m)
}

// ParseAccessMode converts a string to an AccessMode.
// Returns DefaultAccessMode if the string is not a valid mode.
func ParseAccessMode(s string) AccessMode {
	m := AccessMode(s)
	if m.IsValid() {
		return m
	}
	return DefaultAccessMode
}

// Permission converts the access mode to the equivalent path permission.
func (m AccessMode) Permission() PathPermission {
	if m == AccessReadWrite {
		return PermissionReadWrite
	}
	return PermissionReadOnly
}

// SharingType controls who may redeem a share link.
//
// Options:
//   - anyone: any holder of the link, including anonymous guests
//   - users: only the authenticated users named on the share
type SharingType string

const (
	// SharingAnyone lets any holder of the link access the share,
	// including unauthenticated guests.
	SharingAnyone SharingType = "anyone"

	// SharingUsers restricts the share to the authenticated users
	// listed in the share's user grants.
	SharingUsers SharingType = "users"
)

// IsValid returns true if this is a valid sharing type.
func (t SharingType) IsValid() bool {
	switch t {
	case SharingAnyone, SharingUsers:
		return true
	default:
		return false
	}
}

// String returns the string representation of the sharing type.
func (t SharingType) String() string {
	return string(t)
}

// ParseSharingType converts a string to a SharingType. An unrecognized
// value is passed through unchanged rather than coerced to SharingAnyone:
// a sharing type that grants nobody must never widen into one that grants
// everybody. Callers switch on the result and treat anything outside the
// known constants as granting no access.
func ParseSharingType(s string) SharingType {
	return SharingType(s)
}

// ShareSource identifies which logical space a share's content lives in.
//
// Options:
//   - volume: a path under the shared volume tree
//   - user_volume: a path inside one of the owner's mounted user volumes
type ShareSource string

const (
	// SourceVolume means the shared content lives in the volume space.
	SourceVolume ShareSource = "volume"

	// SourceUserVolume means the shared content lives in a user volume
	// owned by the share's creator.
	SourceUserVolume ShareSource = "user_volume"
)

// IsValid returns true if this is a valid share source.
func (s ShareSource) IsValid() bool {
	switch s {
	case SourceVolume, SourceUserVolume:
		return true
	default:
		return false
	}
}

// String returns the string representation of the share source.
func (s ShareSource) String() string {
	return string(s)
}

// ParseShareSource converts a string to a ShareSource.
// Returns SourceVolume if the string is not a valid source.
func ParseShareSource(s string) ShareSource {
	src := ShareSource(s)
	if src.IsValid() {
		return src
	}
	return SourceVolume
}
