// Package controlplane provides the control plane for FileHaven.
//
// The control plane manages:
//   - Persistent configuration (users, rules, volumes, shares) via Store
//   - The assembled access services (authorizer, lister) via Runtime
//   - REST API for browsing and management operations via API Server
//
// Usage:
//
//	cp, err := controlplane.New(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer cp.Close()
//
//	// Access the authorizer and lister
//	rt := cp.Runtime()
package controlplane

import (
	"context"
	"fmt"

	"github.com/filehaven/filehaven/internal/logger"
	"github.com/filehaven/filehaven/pkg/access"
	"github.com/filehaven/filehaven/pkg/controlplane/api"
	"github.com/filehaven/filehaven/pkg/controlplane/runtime"
	"github.com/filehaven/filehaven/pkg/controlplane/store"
)

// ControlPlane is the central management component for FileHaven.
//
// It owns and coordinates:
//   - Store: Persistent configuration (users, rules, volumes, shares)
//   - Runtime: Assembled access services and background workers
//   - API Server: REST API for browsing and management (optional)
//
// The ControlPlane provides a unified initialization path and ensures
// proper coordination between components.
type ControlPlane struct {
	store     *store.GORMStore
	runtime   *runtime.Runtime
	apiServer *api.Server
}

// Options configures the ControlPlane.
type Options struct {
	// Database configuration for persistent storage
	Database *store.Config

	// Runtime configuration (storage roots, intervals)
	Runtime runtime.Config

	// API configuration (optional - nil disables the HTTP server,
	// useful for CLI tools that only need the store and authorizer)
	API *api.APIConfig

	// Metrics for the access engine (nil disables instrumentation)
	Metrics access.Metrics
}

// New creates a new ControlPlane with the given options.
//
// This initializes:
//  1. Persistent store (SQLite/PostgreSQL)
//  2. Runtime with the access engine and resolvers
//  3. API server (if configured)
//
// The runtime's background workers are not started. Call Start() to
// launch them, and Close() when done to release resources.
func New(ctx context.Context, opts *Options) (*ControlPlane, error) {
	if opts == nil {
		return nil, fmt.Errorf("options cannot be nil")
	}
	if opts.Database == nil {
		return nil, fmt.Errorf("database configuration is required")
	}

	// Create persistent store
	cpStore, err := store.New(opts.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	// Create runtime with store
	rt, err := runtime.New(cpStore, opts.Runtime, opts.Metrics)
	if err != nil {
		_ = cpStore.Close()
		return nil, fmt.Errorf("failed to create runtime: %w", err)
	}

	cp := &ControlPlane{
		store:   cpStore,
		runtime: rt,
	}

	// Initialize API server if configured
	if opts.API != nil {
		apiServer, err := api.NewServer(*opts.API, rt, cpStore)
		if err != nil {
			_ = cpStore.Close()
			return nil, fmt.Errorf("failed to create API server: %w", err)
		}
		cp.apiServer = apiServer
		logger.Info("Control plane API server initialized", "port", opts.API.Port)
	}

	return cp, nil
}

// Start loads the feature flag cache and launches the runtime's
// background workers. It does not start the API server; use
// APIServer().Start(ctx) for that.
func (cp *ControlPlane) Start(ctx context.Context) error {
	return cp.runtime.Start(ctx)
}

// Store returns the persistent configuration store.
func (cp *ControlPlane) Store() *store.GORMStore {
	return cp.store
}

// Runtime returns the assembled access services.
//
// The API server and CLI use the runtime to:
//   - Authorize file operations
//   - Resolve logical paths to physical locations
//   - Produce filtered directory listings
func (cp *ControlPlane) Runtime() *runtime.Runtime {
	return cp.runtime
}

// APIServer returns the API server (may be nil if not configured).
func (cp *ControlPlane) APIServer() *api.Server {
	return cp.apiServer
}

// EnsureAdminUser creates the admin user if it doesn't exist.
// Returns the generated password (empty string if user already exists).
func (cp *ControlPlane) EnsureAdminUser(ctx context.Context) (string, error) {
	return cp.store.EnsureAdminUser(ctx)
}

// Close releases all resources held by the ControlPlane.
func (cp *ControlPlane) Close() error {
	cp.runtime.Stop()
	return cp.store.Close()
}
