package runtime

import (
	"context"
	"sync"
	"time"

	"github.com/filehaven/filehaven/internal/logger"
	"github.com/filehaven/filehaven/pkg/controlplane/models"
	"github.com/filehaven/filehaven/pkg/controlplane/store"
)

// DefaultPollInterval is the default interval for polling the DB for
// feature flag changes.
const DefaultPollInterval = 10 * time.Second

// FeatureFlags is the cached snapshot of dynamic feature settings.
type FeatureFlags struct {
	// UserVolumesEnabled restricts non-admin volume access to labeled
	// user volumes when true.
	UserVolumesEnabled bool

	// ThumbnailsEnabled marks previewable files in directory listings
	// when true.
	ThumbnailsEnabled bool
}

// SettingsWatcher polls the database for feature flag changes and
// provides thread-safe access to the cached flags.
//
// Design:
//   - Polls DB every pollInterval (default 10s)
//   - Atomic struct swap for thread safety: the whole snapshot is replaced
//   - Flag flips are logged at INFO level for audit trail
//
// Thread safety:
//   - Writer (poll goroutine): acquires mu.Lock(), swaps the snapshot
//   - Readers (request goroutines): acquire mu.RLock(), copy the snapshot
type SettingsWatcher struct {
	mu    sync.RWMutex
	store store.Store

	flags FeatureFlags

	pollInterval time.Duration
	stopCh       chan struct{}
	stopped      chan struct{} // closed when polling goroutine exits
}

// NewSettingsWatcher creates a new SettingsWatcher with the given store
// and poll interval. If pollInterval is 0, DefaultPollInterval is used.
func NewSettingsWatcher(s store.Store, pollInterval time.Duration) *SettingsWatcher {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &SettingsWatcher{
		store:        s,
		pollInterval: pollInterval,
		stopCh:       make(chan struct{}),
		stopped:      make(chan struct{}),
	}
}

// LoadInitial performs an initial load of feature flags from the database.
// Call it once at startup so the cache is populated before serving begins.
func (w *SettingsWatcher) LoadInitial(ctx context.Context) error {
	flags, err := w.readFlags(ctx)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.flags = flags
	w.mu.Unlock()

	return nil
}

// Start begins the background polling goroutine. On each tick it reads
// the feature settings and updates the cache atomically.
//
// The goroutine continues until Stop is called or the context is cancelled.
func (w *SettingsWatcher) Start(ctx context.Context) {
	go func() {
		defer close(w.stopped)

		ticker := time.NewTicker(w.pollInterval)
		defer ticker.Stop()

		logger.Info("Settings watcher started", "poll_interval", w.pollInterval)

		for {
			select {
			case <-ctx.Done():
				logger.Debug("Settings watcher stopping (context cancelled)")
				return
			case <-w.stopCh:
				logger.Debug("Settings watcher stopping (stop signal)")
				return
			case <-ticker.C:
				w.poll(ctx)
			}
		}
	}()
}

// Stop signals the polling goroutine to stop and waits for it to exit.
func (w *SettingsWatcher) Stop() {
	select {
	case <-w.stopCh:
		// Already stopped
		return
	default:
		close(w.stopCh)
	}
	<-w.stopped
	logger.Debug("Settings watcher stopped")
}

// Flags returns the cached feature flag snapshot.
func (w *SettingsWatcher) Flags() FeatureFlags {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.flags
}

// UserVolumesEnabled reports whether the user volume restriction is
// active. It serves the access engine from the cached snapshot, so a
// flag read never costs a DB round trip on the request path.
func (w *SettingsWatcher) UserVolumesEnabled(ctx context.Context) (bool, error) {
	return w.Flags().UserVolumesEnabled, nil
}

// poll reads the feature settings and swaps the cache on change.
func (w *SettingsWatcher) poll(ctx context.Context) {
	flags, err := w.readFlags(ctx)
	if err != nil {
		logger.Warn("Settings watcher: failed to poll feature flags", "error", err)
		return
	}

	w.mu.RLock()
	current := w.flags
	w.mu.RUnlock()

	if flags == current {
		return
	}

	w.mu.Lock()
	w.flags = flags
	w.mu.Unlock()

	logger.Info("Feature flags reloaded",
		"user_volumes_enabled", flags.UserVolumesEnabled,
		"thumbnails_enabled", flags.ThumbnailsEnabled,
	)
}

// readFlags reads the feature settings from the store.
func (w *SettingsWatcher) readFlags(ctx context.Context) (FeatureFlags, error) {
	var flags FeatureFlags

	userVolumes, err := w.store.GetSetting(ctx, models.SettingUserVolumesEnabled)
	if err != nil {
		return flags, err
	}
	thumbnails, err := w.store.GetSetting(ctx, models.SettingThumbnailsEnabled)
	if err != nil {
		return flags, err
	}

	userVolumesSetting := models.Setting{Value: userVolumes}
	thumbnailsSetting := models.Setting{Value: thumbnails}
	flags.UserVolumesEnabled = userVolumesSetting.Bool()
	flags.ThumbnailsEnabled = thumbnailsSetting.Bool()
	return flags, nil
}
