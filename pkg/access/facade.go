package access

import (
	"context"
	"errors"
	"fmt"
)

// Action is a coarse operation name a route wants to perform.
type Action string

const (
	ActionList         Action = "list"
	ActionRead         Action = "read"
	ActionWrite        Action = "write"
	ActionRename       Action = "rename"
	ActionDelete       Action = "delete"
	ActionUpload       Action = "upload"
	ActionCreateFolder Action = "createFolder"
	ActionDownload     Action = "download"
	ActionCreateShare  Action = "createShare"
)

// ErrUnknownAction is returned for action names outside the closed set.
// An unknown action is a malformed request, never a silent allow.
var ErrUnknownAction = errors.New("unknown action")

// Result is the outcome of an authorization request.
type Result struct {
	Allowed  bool
	Decision *Decision

	// Resolved is set by AuthorizeAndResolve on allowed requests.
	Resolved *ResolvedLocation
}

// Authorizer is the single entry point mutating routes use to check an
// action against a logical path. Routes never consult rules or shares
// directly; divergent ad-hoc checks are exactly what this facade
// removes.
type Authorizer struct {
	engine   *Engine
	resolver *Resolver
}

// NewAuthorizer builds the facade over an engine and a resolver.
func NewAuthorizer(engine *Engine, resolver *Resolver) *Authorizer {
	return &Authorizer{
		engine:   engine,
		resolver: resolver,
	}
}

// Engine returns the underlying decision engine, for components such as
// the Lister that re-decide per child.
func (a *Authorizer) Engine() *Engine {
	return a.engine
}

// Authorize checks one action on one logical path.
//
// A policy denial comes back as Result{Allowed: false} with the full
// decision attached; errors are reserved for malformed input
// (ErrInvalidPath, ErrUnknownAction) and collaborator failures.
func (a *Authorizer) Authorize(ctx context.Context, caller Caller, logicalPath string, action Action, opts *Options) (*Result, error) {
	// Validate the action before paying for a decision.
	if !knownAction(action) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}

	decision, err := a.engine.Decide(ctx, caller, logicalPath, opts)
	if err != nil {
		return nil, err
	}

	return &Result{
		Allowed:  capabilityFor(decision, action),
		Decision: decision,
	}, nil
}

// AuthorizeAndResolve is Authorize plus physical resolution of allowed
// paths.
func (a *Authorizer) AuthorizeAndResolve(ctx context.Context, caller Caller, logicalPath string, action Action, opts *Options) (*Result, error) {
	result, err := a.Authorize(ctx, caller, logicalPath, action, opts)
	if err != nil {
		return nil, err
	}
	if !result.Allowed {
		return result, nil
	}

	resolved, err := a.resolver.Resolve(caller, result.Decision)
	if err != nil {
		return nil, err
	}
	result.Resolved = resolved
	return result, nil
}

func knownAction(action Action) bool {
	switch action {
	case ActionList, ActionRead, ActionWrite, ActionRename, ActionDelete,
		ActionUpload, ActionCreateFolder, ActionDownload, ActionCreateShare:
		return true
	default:
		return false
	}
}

// capabilityFor maps each action to exactly one capability flag.
func capabilityFor(d *Decision, action Action) bool {
	switch action {
	case ActionList, ActionRead:
		return d.CanRead
	case ActionWrite, ActionRename:
		return d.CanWrite
	case ActionDelete:
		return d.CanDelete
	case ActionUpload:
		return d.CanUpload
	case ActionCreateFolder:
		return d.CanCreateFolder
	case ActionDownload:
		return d.CanDownload
	case ActionCreateShare:
		return d.CanShare
	default:
		return false
	}
}
