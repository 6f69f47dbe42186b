// Package access implements the authorization core for logical paths.
//
// A logical path begins with a space discriminator: paths under
// "personal" belong to the caller's private tree, paths under
// "share/<token>" are reached through a share link, and everything else
// lives in the volume space. The Engine decides, for a caller and a
// logical path, which capabilities apply; the Resolver then maps
// allowed paths to physical filesystem locations.
package access

import (
	"errors"
	"fmt"
	"strings"
)

// Space identifies the logical namespace a path belongs to.
type Space string

const (
	// SpaceVolume is the default namespace backed by the shared volume tree.
	SpaceVolume Space = "volume"

	// SpacePersonal is the caller's private per-user namespace.
	SpacePersonal Space = "personal"

	// SpaceShare is delegated access through a share token.
	SpaceShare Space = "share"
)

// Reserved first segments of a logical path. Volume labels may never
// collide with these; models.IsReservedVolumeLabel enforces that at
// creation time.
const (
	segmentPersonal = "personal"
	segmentShare    = "share"
	segmentVolumes  = "volumes"
)

// ErrInvalidPath is returned for malformed logical paths, including
// path traversal attempts. It is a validation failure, not a policy
// denial.
var ErrInvalidPath = errors.New("invalid logical path")

// ParsedPath is the result of classifying a logical path.
type ParsedPath struct {
	// Space is the namespace the path belongs to.
	Space Space

	// RelativePath is the normalized path inside the space, without
	// leading or trailing slashes. Empty for the space root. For the
	// share space it is "<token>/<inner>" as given.
	RelativePath string

	// ShareToken is the share token, set only for the share space.
	ShareToken string

	// InnerPath is the path inside the shared subtree, set only for
	// the share space. Empty when the share itself is addressed.
	InnerPath string
}

// Parse classifies a logical path string.
//
// The path is normalized first: repeated separators collapse, leading
// and trailing slashes are stripped. Any "." or ".." segment fails with
// ErrInvalidPath.
func Parse(logicalPath string) (ParsedPath, error) {
	segments, err := splitPath(logicalPath)
	if err != nil {
		return ParsedPath{}, err
	}

	if len(segments) == 0 {
		return ParsedPath{Space: SpaceVolume}, nil
	}

	switch segments[0] {
	case segmentPersonal:
		return ParsedPath{
			Space:        SpacePersonal,
			RelativePath: strings.Join(segments[1:], "/"),
		}, nil

	case segmentShare:
		parsed := ParsedPath{Space: SpaceShare}
		if len(segments) > 1 {
			parsed.ShareToken = segments[1]
			parsed.InnerPath = strings.Join(segments[2:], "/")
			parsed.RelativePath = strings.Join(segments[1:], "/")
		}
		return parsed, nil

	default:
		return ParsedPath{
			Space:        SpaceVolume,
			RelativePath: strings.Join(segments, "/"),
		}, nil
	}
}

// Normalize cleans a logical path without classifying it. Returns
// ErrInvalidPath on traversal attempts.
func Normalize(logicalPath string) (string, error) {
	segments, err := splitPath(logicalPath)
	if err != nil {
		return "", err
	}
	return strings.Join(segments, "/"), nil
}

// JoinLogical joins path parts into a normalized logical path. Parts
// are validated the same way Parse validates its input.
func JoinLogical(parts ...string) (string, error) {
	return Normalize(strings.Join(parts, "/"))
}

func splitPath(p string) ([]string, error) {
	raw := strings.Split(p, "/")
	segments := make([]string, 0, len(raw))
	for _, seg := range raw {
		switch seg {
		case "", ".":
			// collapsed separator or no-op segment
		case "..":
			return nil, fmt.Errorf("%w: traversal segment in %q", ErrInvalidPath, p)
		default:
			segments = append(segments, seg)
		}
	}
	return segments, nil
}

// firstSegment returns the first segment of a normalized relative path,
// and the remainder after it.
func firstSegment(relativePath string) (string, string) {
	if relativePath == "" {
		return "", ""
	}
	if i := strings.IndexByte(relativePath, '/'); i >= 0 {
		return relativePath[:i], relativePath[i+1:]
	}
	return relativePath, ""
}
