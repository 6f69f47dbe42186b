// Package runtime wires the control plane store into the access engine
// and exposes the assembled services to the API server and CLI.
package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/filehaven/filehaven/internal/logger"
	"github.com/filehaven/filehaven/pkg/access"
	"github.com/filehaven/filehaven/pkg/controlplane/models"
	"github.com/filehaven/filehaven/pkg/controlplane/store"
)

// Config contains the static configuration the runtime needs.
type Config struct {
	// VolumeRoot is the physical root of the shared volume space.
	VolumeRoot string

	// PersonalRoot is the physical root of per-user personal spaces.
	PersonalRoot string

	// ExcludeNames are entry names hidden from every directory listing.
	ExcludeNames []string

	// SettingsPollInterval is the feature flag poll interval.
	// Zero means DefaultPollInterval.
	SettingsPollInterval time.Duration

	// ShareSweepInterval is how often expired shares are purged.
	// Zero disables the background sweep.
	ShareSweepInterval time.Duration
}

// Runtime owns the assembled access services backed by the control
// plane store. It is safe for concurrent use.
type Runtime struct {
	store    store.Store
	watcher  *SettingsWatcher
	engine   *access.Engine
	resolver *access.Resolver
	auth     *access.Authorizer
	lister   *access.Lister

	excludeNames []string

	sweepInterval time.Duration
	sweepStop     chan struct{}
	sweepDone     chan struct{}
}

// storeBridge adapts store.Store to the lookup interfaces the access
// engine consumes.
type storeBridge struct {
	store store.Store
}

func (b storeBridge) GetRules(ctx context.Context) ([]*models.PathRule, error) {
	return b.store.ListRules(ctx)
}

func (b storeBridge) GetVolumeByLabel(ctx context.Context, userID, label string) (*models.UserVolume, error) {
	return b.store.GetVolumeByLabel(ctx, userID, label)
}

func (b storeBridge) GetVolume(ctx context.Context, id string) (*models.UserVolume, error) {
	return b.store.GetVolume(ctx, id)
}

func (b storeBridge) GetShareByToken(ctx context.Context, token string) (*models.Share, error) {
	return b.store.GetShareByToken(ctx, token)
}

// New assembles a Runtime from the store and configuration.
// Pass nil metrics to disable instrumentation.
func New(s store.Store, cfg Config, metrics access.Metrics) (*Runtime, error) {
	if s == nil {
		return nil, fmt.Errorf("store is required")
	}
	if cfg.VolumeRoot == "" {
		return nil, fmt.Errorf("volume root is required")
	}
	if cfg.PersonalRoot == "" {
		return nil, fmt.Errorf("personal root is required")
	}

	watcher := NewSettingsWatcher(s, cfg.SettingsPollInterval)

	bridge := storeBridge{store: s}
	engine := access.NewEngine(bridge, bridge, bridge, watcher, metrics)
	resolver := access.NewResolver(access.Roots{
		Volume:   cfg.VolumeRoot,
		Personal: cfg.PersonalRoot,
	})

	return &Runtime{
		store:         s,
		watcher:       watcher,
		engine:        engine,
		resolver:      resolver,
		auth:          access.NewAuthorizer(engine, resolver),
		lister:        access.NewLister(engine, resolver, access.OSFS{}),
		excludeNames:  cfg.ExcludeNames,
		sweepInterval: cfg.ShareSweepInterval,
	}, nil
}

// Start loads the feature flag cache and launches background workers.
func (rt *Runtime) Start(ctx context.Context) error {
	if err := rt.watcher.LoadInitial(ctx); err != nil {
		return fmt.Errorf("failed to load feature flags: %w", err)
	}
	rt.watcher.Start(ctx)

	if rt.sweepInterval > 0 {
		rt.sweepStop = make(chan struct{})
		rt.sweepDone = make(chan struct{})
		go rt.sweepExpiredShares(ctx)
	}

	return nil
}

// Stop shuts down background workers. The store is closed by the caller.
func (rt *Runtime) Stop() {
	rt.watcher.Stop()

	if rt.sweepStop != nil {
		close(rt.sweepStop)
		<-rt.sweepDone
	}
}

// Store returns the control plane store.
func (rt *Runtime) Store() store.Store {
	return rt.store
}

// Authorizer returns the action authorization facade.
func (rt *Runtime) Authorizer() *access.Authorizer {
	return rt.auth
}

// Lister returns the access-filtered directory lister.
func (rt *Runtime) Lister() *access.Lister {
	return rt.lister
}

// Flags returns the current feature flag snapshot.
func (rt *Runtime) Flags() FeatureFlags {
	return rt.watcher.Flags()
}

// ListOptions returns the listing options for the current configuration
// and feature flags.
func (rt *Runtime) ListOptions() access.ListOptions {
	return access.ListOptions{
		ExcludeNames: rt.excludeNames,
		Thumbnails:   rt.watcher.Flags().ThumbnailsEnabled,
	}
}

// Healthcheck verifies the store connection.
func (rt *Runtime) Healthcheck(ctx context.Context) error {
	return rt.store.Healthcheck(ctx)
}

// sweepExpiredShares periodically deletes shares whose expiry passed.
// Expired shares already deny access; the sweep just keeps the table
// from accumulating dead rows.
func (rt *Runtime) sweepExpiredShares(ctx context.Context) {
	defer close(rt.sweepDone)

	ticker := time.NewTicker(rt.sweepInterval)
	defer ticker.Stop()

	logger.Info("Share expiry sweep started", "interval", rt.sweepInterval)

	for {
		select {
		case <-ctx.Done():
			return
		case <-rt.sweepStop:
			return
		case <-ticker.C:
			removed, err := rt.store.DeleteExpiredShares(ctx, time.Now())
			if err != nil {
				logger.Warn("Failed to sweep expired shares", "error", err)
				continue
			}
			if removed > 0 {
				logger.Info("Removed expired shares", "count", removed)
			}
		}
	}
}
