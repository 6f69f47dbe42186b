package access

import (
	"context"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/filehaven/filehaven/internal/logger"
	"github.com/filehaven/filehaven/internal/telemetry"
)

// FS is the filesystem surface the lister needs.
type FS interface {
	Stat(path string) (fs.FileInfo, error)
	ReadDir(path string) ([]fs.DirEntry, error)
}

// OSFS implements FS over the host filesystem.
type OSFS struct{}

func (OSFS) Stat(path string) (fs.FileInfo, error)      { return os.Stat(path) }
func (OSFS) ReadDir(path string) ([]fs.DirEntry, error) { return os.ReadDir(path) }

// maxKindLength caps the extension reported as an item's kind. Longer
// extensions are noise, not types.
const maxKindLength = 8

// KindDirectory is the kind reported for directories.
const KindDirectory = "directory"

// KindUnknown is the kind reported for files without a usable extension.
const KindUnknown = "unknown"

// previewableExtensions are the kinds eligible for thumbnails.
var previewableExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true,
	"webp": true, "bmp": true, "tiff": true, "svg": true,
}

// Item is one visible directory entry.
type Item struct {
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	Kind        string    `json:"kind"`
	IsDirectory bool      `json:"is_directory"`
	Size        int64     `json:"size"`
	ModTime     time.Time `json:"mod_time"`
	Thumbnail   bool      `json:"thumbnail"`
}

// Listing is the access-filtered content of one logical directory.
type Listing struct {
	Items  []Item     `json:"items"`
	Access *Decision  `json:"access"`
	Share  *ShareInfo `json:"share,omitempty"`
}

// ListOptions tunes one listing call.
type ListOptions struct {
	// ExcludeNames are entry names dropped outright, such as
	// in-progress upload markers.
	ExcludeNames []string

	// Thumbnails enables thumbnail eligibility flags on previewable
	// files.
	Thumbnails bool
}

// Lister produces access-filtered directory listings. Every child is
// re-decided with the same capping logic as a direct request, so a
// hidden child disappears rather than showing up read-only.
type Lister struct {
	engine   *Engine
	resolver *Resolver
	fsys     FS
}

// NewLister builds a Lister. Pass OSFS{} for the host filesystem.
func NewLister(engine *Engine, resolver *Resolver, fsys FS) *Lister {
	return &Lister{
		engine:   engine,
		resolver: resolver,
		fsys:     fsys,
	}
}

// List reads the logical directory and returns the children the caller
// may see.
//
// A denied parent comes back as a Listing with no items and a denied
// Access decision, not an error. Stat failures on individual children
// are logged and skipped; the listing itself never partially fails
// because of one bad entry.
func (l *Lister) List(ctx context.Context, caller Caller, logicalPath string, opts ListOptions) (*Listing, error) {
	start := l.engine.now()

	ctx, span := telemetry.StartListSpan(ctx, logicalPath,
		telemetry.UserID(caller.UserID()),
		telemetry.Guest(caller.IsGuest()),
	)
	defer span.End()

	// One rule snapshot and one cache serve the parent and every child.
	rules, err := l.engine.ruleSet(ctx, nil)
	if err != nil {
		return nil, err
	}
	decideOpts := &Options{Rules: rules, Cache: NewCache()}

	decision, err := l.engine.Decide(ctx, caller, logicalPath, decideOpts)
	if err != nil {
		return nil, err
	}
	if !decision.CanAccess {
		return &Listing{Access: decision}, nil
	}

	resolved, err := l.resolver.Resolve(caller, decision)
	if err != nil {
		return nil, err
	}

	entries, err := l.fsys.ReadDir(resolved.AbsolutePath)
	if err != nil {
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	excluded := make(map[string]bool, len(opts.ExcludeNames))
	for _, name := range opts.ExcludeNames {
		excluded[name] = true
	}

	items := make([]Item, 0, len(entries))
	filtered := 0

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := entry.Name()
		if excluded[name] {
			continue
		}

		childPath, err := JoinLogical(logicalPath, name)
		if err != nil {
			// A child name that does not survive logical joining is
			// unreachable through this API; skip it.
			filtered++
			continue
		}

		childDecision, err := l.engine.Decide(ctx, caller, childPath, decideOpts)
		if err != nil {
			return nil, err
		}
		if !childDecision.CanAccess {
			filtered++
			continue
		}

		info, err := entry.Info()
		if err != nil {
			logger.WarnCtx(ctx, "skipping unreadable directory entry",
				logger.KeyPath, childPath,
				logger.KeyError, err.Error(),
			)
			continue
		}

		item := Item{
			Name:        name,
			Path:        childPath,
			IsDirectory: info.IsDir(),
			ModTime:     info.ModTime(),
		}
		if info.IsDir() {
			item.Kind = KindDirectory
		} else {
			item.Size = info.Size()
			item.Kind = fileKind(name)
			item.Thumbnail = opts.Thumbnails && previewableExtensions[item.Kind]
		}
		items = append(items, item)
	}

	span.SetAttributes(
		telemetry.Entries(len(entries)),
		telemetry.Filtered(filtered),
	)

	if l.engine.metrics != nil {
		l.engine.metrics.ObserveListing(string(decision.parsed.Space), len(entries), filtered, l.engine.now().Sub(start))
	}

	return &Listing{
		Items:  items,
		Access: decision,
		Share:  decision.Share,
	}, nil
}

// fileKind derives an item kind from the file extension.
func fileKind(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 || i == len(name)-1 {
		return KindUnknown
	}
	ext := strings.ToLower(name[i+1:])
	if len(ext) > maxKindLength {
		return KindUnknown
	}
	return ext
}
