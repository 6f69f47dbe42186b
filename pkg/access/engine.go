package access

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/filehaven/filehaven/internal/logger"
	"github.com/filehaven/filehaven/internal/telemetry"
	"github.com/filehaven/filehaven/pkg/controlplane/models"
)

// RuleSource supplies the ordered path rule list.
type RuleSource interface {
	GetRules(ctx context.Context) ([]*models.PathRule, error)
}

// VolumeSource resolves user volumes.
type VolumeSource interface {
	// GetVolumeByLabel returns models.ErrVolumeNotFound when the user
	// has no volume with this label.
	GetVolumeByLabel(ctx context.Context, userID, label string) (*models.UserVolume, error)

	// GetVolume returns models.ErrVolumeNotFound for unknown IDs.
	GetVolume(ctx context.Context, id string) (*models.UserVolume, error)
}

// ShareSource resolves shares by token.
type ShareSource interface {
	// GetShareByToken returns models.ErrShareNotFound for unknown
	// tokens. Returned shares carry their user grants.
	GetShareByToken(ctx context.Context, token string) (*models.Share, error)
}

// FeatureSource exposes runtime feature flags.
type FeatureSource interface {
	UserVolumesEnabled(ctx context.Context) (bool, error)
}

// Metrics receives decision and listing observations. A nil Metrics is
// a no-op.
type Metrics interface {
	ObserveDecision(space string, allowed bool, reason string, duration time.Duration)
	ObserveListing(space string, entries, filtered int, duration time.Duration)
}

// Engine is the authorization oracle. It is stateless and safe for
// concurrent use; every call works on a read-only snapshot of rules,
// shares, and volumes.
type Engine struct {
	rules    RuleSource
	volumes  VolumeSource
	shares   ShareSource
	features FeatureSource
	metrics  Metrics
	now      func() time.Time
}

// NewEngine builds an Engine over the collaborator stores. metrics may
// be nil.
func NewEngine(rules RuleSource, volumes VolumeSource, shares ShareSource, features FeatureSource, metrics Metrics) *Engine {
	return &Engine{
		rules:    rules,
		volumes:  volumes,
		shares:   shares,
		features: features,
		metrics:  metrics,
		now:      time.Now,
	}
}

// Options tunes a single decision. Bulk operations pass a pre-compiled
// RuleSet and a shared Cache so per-child decisions stop hitting the
// stores.
type Options struct {
	// Rules is a pre-compiled rule set. When nil the Engine fetches
	// and compiles rules itself.
	Rules *RuleSet

	// Cache collapses share and volume lookups within one request.
	Cache *Cache
}

// Decide produces an access decision for a caller and a logical path.
//
// Policy denials come back as a Decision with CanAccess=false and a
// DenialReason, never as an error. Errors are reserved for malformed
// paths (ErrInvalidPath) and collaborator failures.
func (e *Engine) Decide(ctx context.Context, caller Caller, logicalPath string, opts *Options) (*Decision, error) {
	start := e.now()

	parsed, err := Parse(logicalPath)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartDecideSpan(ctx, logicalPath,
		telemetry.Space(string(parsed.Space)),
		telemetry.UserID(caller.UserID()),
		telemetry.Guest(caller.IsGuest()),
	)
	defer span.End()

	rules, err := e.ruleSet(ctx, opts)
	if err != nil {
		return nil, err
	}

	var decision *Decision
	switch parsed.Space {
	case SpaceVolume:
		decision, err = e.decideVolume(ctx, caller, parsed, rules, opts)
	case SpacePersonal:
		decision = e.decidePersonal(caller, parsed)
	case SpaceShare:
		decision, err = e.decideShare(ctx, caller, parsed, rules, opts)
	default:
		decision = denied(parsed, ReasonUnknownSpace)
	}
	if err != nil {
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	span.SetAttributes(
		telemetry.Allowed(decision.CanAccess),
		telemetry.Permission(decision.EffectivePermission.String()),
	)
	if decision.DenialReason != "" {
		span.SetAttributes(telemetry.Reason(decision.DenialReason))
	}

	if e.metrics != nil {
		e.metrics.ObserveDecision(string(parsed.Space), decision.CanAccess, decision.DenialReason, e.now().Sub(start))
	}

	if !decision.CanAccess {
		logger.DebugCtx(ctx, "access denied",
			logger.KeyPath, logicalPath,
			logger.KeySpace, string(parsed.Space),
			logger.KeyUserID, caller.UserID(),
			logger.KeyReason, decision.DenialReason,
		)
	}

	return decision, nil
}

func (e *Engine) ruleSet(ctx context.Context, opts *Options) (*RuleSet, error) {
	if opts != nil && opts.Rules != nil {
		return opts.Rules, nil
	}
	rules, err := e.rules.GetRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load path rules: %w", err)
	}
	return NewRuleSet(rules), nil
}

func (e *Engine) decideVolume(ctx context.Context, caller Caller, parsed ParsedPath, rules *RuleSet, opts *Options) (*Decision, error) {
	if caller.IsGuest() {
		return denied(parsed, ReasonGuestsCannotAccessVolumes), nil
	}
	if !caller.IsAuthenticated() {
		return denied(parsed, ReasonAuthenticationRequired), nil
	}

	perm := rules.Resolve(parsed.RelativePath)

	restricted, err := e.volumeRestrictionsApply(ctx, caller)
	if err != nil {
		return nil, err
	}

	if restricted {
		if parsed.RelativePath == "" {
			// The space root only enumerates the caller's assigned
			// volumes; nothing is written there.
			return &Decision{
				CanAccess:           true,
				CanRead:             true,
				CanDownload:         true,
				EffectivePermission: models.PermissionReadOnly,
				parsed:              parsed,
			}, nil
		}

		label, _ := firstSegment(parsed.RelativePath)
		volume, err := e.lookupVolumeByLabel(ctx, caller.UserID(), label, opts)
		if errors.Is(err, models.ErrVolumeNotFound) {
			return denied(parsed, ReasonVolumeNotAssigned), nil
		}
		if err != nil {
			return nil, err
		}

		if perm == models.PermissionHidden {
			return denied(parsed, ReasonPathHidden), nil
		}

		readOnly := volume.IsReadOnly() || perm == models.PermissionReadOnly

		d := &Decision{
			CanAccess:           true,
			CanRead:             true,
			CanWrite:            !readOnly,
			CanDelete:           !readOnly,
			CanUpload:           !readOnly,
			CanCreateFolder:     !readOnly,
			CanShare:            true,
			CanDownload:         true,
			EffectivePermission: models.PermissionReadWrite,
			parsed:              parsed,
			userVolume:          volume,
		}
		if readOnly {
			d.EffectivePermission = models.PermissionReadOnly
		}
		return d, nil
	}

	if perm == models.PermissionHidden {
		return denied(parsed, ReasonPathHidden), nil
	}

	readOnly := perm == models.PermissionReadOnly
	canWrite := !readOnly || caller.IsAdmin()

	d := &Decision{
		CanAccess:           true,
		CanRead:             true,
		CanWrite:            canWrite,
		CanDelete:           canWrite,
		CanUpload:           canWrite,
		CanCreateFolder:     canWrite,
		CanShare:            true,
		CanDownload:         true,
		EffectivePermission: models.PermissionReadWrite,
		parsed:              parsed,
	}
	if !canWrite {
		d.EffectivePermission = models.PermissionReadOnly
	}
	return d, nil
}

func (e *Engine) decidePersonal(caller Caller, parsed ParsedPath) *Decision {
	if caller.IsGuest() {
		return denied(parsed, ReasonAuthenticationRequired)
	}
	if !caller.IsAuthenticated() {
		return denied(parsed, ReasonAuthenticationRequired)
	}

	// Personal space is private by construction: no rule consultation,
	// full rw on the caller's own subtree. Shares are sourced from the
	// volume spaces only, so re-sharing from here is off.
	return &Decision{
		CanAccess:           true,
		CanRead:             true,
		CanWrite:            true,
		CanDelete:           true,
		CanUpload:           true,
		CanCreateFolder:     true,
		CanDownload:         true,
		EffectivePermission: models.PermissionReadWrite,
		parsed:              parsed,
	}
}

func (e *Engine) decideShare(ctx context.Context, caller Caller, parsed ParsedPath, rules *RuleSet, opts *Options) (*Decision, error) {
	if parsed.ShareToken == "" {
		return denied(parsed, ReasonShareTokenMissing), nil
	}

	share, err := e.lookupShare(ctx, parsed.ShareToken, opts)
	if errors.Is(err, models.ErrShareNotFound) {
		return denied(parsed, ReasonShareNotFound), nil
	}
	if err != nil {
		return nil, err
	}

	if share.IsExpired(e.now()) {
		return denied(parsed, ReasonShareExpired), nil
	}

	isOwner := caller.IsAuthenticated() && caller.UserID() == share.OwnerID

	switch share.GetSharingType() {
	case models.SharingUsers:
		if !caller.IsAuthenticated() {
			return denied(parsed, ReasonAuthenticationRequired), nil
		}
		if !isOwner && !share.GrantsUser(caller.UserID()) {
			return denied(parsed, ReasonShareUserNotPermitted), nil
		}
	case models.SharingAnyone:
		if !caller.IsAuthenticated() {
			if caller.GuestShareID == "" {
				return denied(parsed, ReasonAuthenticationRequired), nil
			}
			if caller.GuestShareID != share.ID {
				return denied(parsed, ReasonInvalidGuestSession), nil
			}
		}
	default:
		// Unknown sharing type in the record is treated as corrupt
		// data and fails closed.
		return denied(parsed, ReasonShareUserNotPermitted), nil
	}

	if !share.IsDirectory && parsed.InnerPath != "" {
		return denied(parsed, ReasonNotInShare), nil
	}

	// Underlying permission is recomputed on every access so rule
	// changes apply retroactively to already-issued shares.
	underlyingPath, err := JoinLogical(share.SourcePath, parsed.InnerPath)
	if err != nil {
		return nil, err
	}

	perm := rules.Resolve(underlyingPath)

	var volume *models.UserVolume
	if share.GetSource() == models.SourceUserVolume {
		volume, err = e.lookupVolume(ctx, share.VolumeID, opts)
		if errors.Is(err, models.ErrVolumeNotFound) {
			return denied(parsed, ReasonShareSourceMismatch), nil
		}
		if err != nil {
			return nil, err
		}
		if volume.UserID != share.OwnerID {
			return denied(parsed, ReasonShareSourceMismatch), nil
		}
		if volume.IsReadOnly() {
			perm = models.MinPermission(perm, models.PermissionReadOnly)
		}
	}

	if perm == models.PermissionHidden {
		return denied(parsed, ReasonPathHidden), nil
	}

	// Capping: the share's nominal mode is an upper bound, never a
	// floor. A readwrite share over a path the rules mark ro is ro.
	effective := models.MinPermission(share.GetAccessMode().Permission(), perm)
	canWrite := effective.CanWrite()
	canCreate := canWrite && share.IsDirectory

	d := &Decision{
		CanAccess:       true,
		CanRead:         true,
		CanWrite:        canWrite,
		CanDelete:       canWrite,
		CanUpload:       canCreate,
		CanCreateFolder: canCreate,
		CanDownload:     true,
		IsShared:        true,
		Share: &ShareInfo{
			Token:       share.Token,
			Name:        share.Name(),
			IsDirectory: share.IsDirectory,
			Mode:        models.AccessReadOnly,
			ExpiresAt:   share.ExpiresAt,
			IsOwner:     isOwner,
		},
		EffectivePermission: models.PermissionReadOnly,
		parsed:              parsed,
		userVolume:          volume,
		shareRec:            share,
	}
	if canWrite {
		d.Share.Mode = models.AccessReadWrite
		d.EffectivePermission = models.PermissionReadWrite
	}
	return d, nil
}

// volumeRestrictionsApply reports whether the caller's reachable volume
// namespace is limited to explicitly assigned user volumes.
func (e *Engine) volumeRestrictionsApply(ctx context.Context, caller Caller) (bool, error) {
	if caller.IsAdmin() {
		return false, nil
	}
	enabled, err := e.features.UserVolumesEnabled(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read feature flags: %w", err)
	}
	return enabled, nil
}

func (e *Engine) lookupShare(ctx context.Context, token string, opts *Options) (*models.Share, error) {
	var cache *Cache
	if opts != nil {
		cache = opts.Cache
	}
	return cache.shareByToken(ctx, token, e.shares.GetShareByToken)
}

func (e *Engine) lookupVolume(ctx context.Context, id string, opts *Options) (*models.UserVolume, error) {
	var cache *Cache
	if opts != nil {
		cache = opts.Cache
	}
	return cache.volumeByKey(ctx, "id:"+id, func(ctx context.Context) (*models.UserVolume, error) {
		return e.volumes.GetVolume(ctx, id)
	})
}

func (e *Engine) lookupVolumeByLabel(ctx context.Context, userID, label string, opts *Options) (*models.UserVolume, error) {
	var cache *Cache
	if opts != nil {
		cache = opts.Cache
	}
	return cache.volumeByKey(ctx, "label:"+userID+"/"+label, func(ctx context.Context) (*models.UserVolume, error) {
		return e.volumes.GetVolumeByLabel(ctx, userID, label)
	})
}
