package access

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ResolvedLocation is the physical location a logical path maps to.
type ResolvedLocation struct {
	// AbsolutePath is the absolute filesystem path.
	AbsolutePath string

	// RelativePath is the normalized logical path inside its space.
	RelativePath string

	// Share carries share metadata when the path was reached through
	// a share.
	Share *ShareInfo
}

// Roots configures the physical layout the resolver maps into.
type Roots struct {
	// Volume is the root of the shared volume tree.
	Volume string

	// Personal is the directory holding per-user personal trees, one
	// subdirectory per username.
	Personal string
}

// Resolver maps allowed logical paths to physical locations. It reuses
// the volume and share records already fetched by the Engine; it never
// queries the stores itself.
type Resolver struct {
	roots Roots
}

// NewResolver builds a Resolver for the given physical roots.
func NewResolver(roots Roots) *Resolver {
	return &Resolver{roots: roots}
}

// Resolve maps the logical path behind a decision to a physical
// location. It must only be called with a decision whose CanAccess is
// true; calling it on a denial is a programming error and fails.
//
// Existence of the resulting path is the filesystem layer's concern,
// not the resolver's.
func (r *Resolver) Resolve(caller Caller, decision *Decision) (*ResolvedLocation, error) {
	if decision == nil || !decision.CanAccess {
		return nil, fmt.Errorf("cannot resolve a denied path")
	}

	parsed := decision.parsed

	switch parsed.Space {
	case SpaceVolume:
		return r.resolveVolume(decision, parsed)
	case SpacePersonal:
		return r.resolvePersonal(caller, parsed)
	case SpaceShare:
		return r.resolveShare(decision, parsed)
	default:
		return nil, fmt.Errorf("cannot resolve space %q", parsed.Space)
	}
}

func (r *Resolver) resolveVolume(decision *Decision, parsed ParsedPath) (*ResolvedLocation, error) {
	// A user-volume record carries its own physical root; the path
	// after the label lives under it.
	if vol := decision.userVolume; vol != nil {
		_, rest := firstSegment(parsed.RelativePath)
		return &ResolvedLocation{
			AbsolutePath: joinRoot(vol.RootPath, rest),
			RelativePath: parsed.RelativePath,
		}, nil
	}

	return &ResolvedLocation{
		AbsolutePath: joinRoot(r.roots.Volume, parsed.RelativePath),
		RelativePath: parsed.RelativePath,
	}, nil
}

func (r *Resolver) resolvePersonal(caller Caller, parsed ParsedPath) (*ResolvedLocation, error) {
	username := caller.Username()
	if username == "" {
		return nil, fmt.Errorf("personal path without an authenticated user")
	}

	root := filepath.Join(r.roots.Personal, username)
	return &ResolvedLocation{
		AbsolutePath: joinRoot(root, parsed.RelativePath),
		RelativePath: parsed.RelativePath,
	}, nil
}

func (r *Resolver) resolveShare(decision *Decision, parsed ParsedPath) (*ResolvedLocation, error) {
	share := decision.shareRec
	if share == nil {
		return nil, fmt.Errorf("share decision without share record")
	}

	sourceRel, err := Normalize(share.SourcePath)
	if err != nil {
		return nil, err
	}

	var sourceRoot string
	if vol := decision.userVolume; vol != nil {
		// Label-qualified source path inside the owner's volume.
		_, rest := firstSegment(sourceRel)
		sourceRoot = joinRoot(vol.RootPath, rest)
	} else {
		sourceRoot = joinRoot(r.roots.Volume, sourceRel)
	}

	abs := joinRoot(sourceRoot, parsed.InnerPath)

	// Parse already rejects traversal segments; this guards against a
	// regression letting an inner path escape the shared subtree.
	if abs != sourceRoot && !strings.HasPrefix(abs, sourceRoot+string(filepath.Separator)) {
		return nil, fmt.Errorf("%w: inner path escapes share", ErrInvalidPath)
	}

	return &ResolvedLocation{
		AbsolutePath: abs,
		RelativePath: parsed.RelativePath,
		Share:        decision.Share,
	}, nil
}

func joinRoot(root, rel string) string {
	if rel == "" {
		return filepath.Clean(root)
	}
	return filepath.Join(root, filepath.FromSlash(rel))
}
