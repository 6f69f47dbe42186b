package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Common attribute keys for authorization and file operations.
// These follow OpenTelemetry semantic conventions where applicable.
const (
	// ========================================================================
	// Client attributes
	// ========================================================================
	AttrClientIP   = "client.ip"
	AttrClientAddr = "client.address"

	// ========================================================================
	// Authorization attributes
	// ========================================================================
	AttrSpace      = "access.space"      // volume, personal, share
	AttrAction     = "access.action"     // list, read, upload, delete, etc.
	AttrAllowed    = "access.allowed"    // Decision outcome
	AttrReason     = "access.reason"     // Denial reason
	AttrPermission = "access.permission" // Effective permission: rw, ro, hidden
	AttrShareToken = "access.share"      // Share token
	AttrVolume     = "access.volume"     // Volume label

	// ========================================================================
	// Filesystem attributes
	// ========================================================================
	AttrPath     = "fs.path"     // Logical path
	AttrAbsPath  = "fs.abs_path" // Resolved physical path
	AttrFilename = "fs.filename" // File name (basename)
	AttrEntries  = "fs.entries"  // Directory entries read
	AttrFiltered = "fs.filtered" // Entries dropped by authorization

	// ========================================================================
	// User attributes
	// ========================================================================
	AttrUserID   = "user.id"
	AttrUsername = "user.name"
	AttrRole     = "user.role"
	AttrGuest    = "user.guest"

	// ========================================================================
	// Store attributes
	// ========================================================================
	AttrStoreEntity = "store.entity" // users, rules, volumes, shares
)

// Span names for operations.
// Format: <component>.<operation>
const (
	SpanDecide  = "access.decide"
	SpanResolve = "access.resolve"
	SpanList    = "access.list"

	SpanStoreRules   = "store.rules"
	SpanStoreShare   = "store.share"
	SpanStoreVolume  = "store.volume"
	SpanFSStat       = "fs.stat"
	SpanFSReadDir    = "fs.readdir"
	SpanHTTPRequest  = "http.request"
	SpanHTTPDownload = "http.download"
)

// ClientIP returns an attribute for client IP address
func ClientIP(ip string) attribute.KeyValue {
	return attribute.String(AttrClientIP, ip)
}

// ClientAddr returns an attribute for full client address
func ClientAddr(addr string) attribute.KeyValue {
	return attribute.String(AttrClientAddr, addr)
}

// Space returns an attribute for the path space
func Space(space string) attribute.KeyValue {
	return attribute.String(AttrSpace, space)
}

// Action returns an attribute for the requested action
func Action(action string) attribute.KeyValue {
	return attribute.String(AttrAction, action)
}

// Allowed returns an attribute for the decision outcome
func Allowed(allowed bool) attribute.KeyValue {
	return attribute.Bool(AttrAllowed, allowed)
}

// Reason returns an attribute for a denial reason
func Reason(reason string) attribute.KeyValue {
	return attribute.String(AttrReason, reason)
}

// Permission returns an attribute for the effective permission
func Permission(perm string) attribute.KeyValue {
	return attribute.String(AttrPermission, perm)
}

// ShareToken returns an attribute for a share token
func ShareToken(token string) attribute.KeyValue {
	return attribute.String(AttrShareToken, token)
}

// Volume returns an attribute for a volume label
func Volume(label string) attribute.KeyValue {
	return attribute.String(AttrVolume, label)
}

// Path returns an attribute for a logical path
func Path(path string) attribute.KeyValue {
	return attribute.String(AttrPath, path)
}

// AbsPath returns an attribute for a resolved physical path
func AbsPath(path string) attribute.KeyValue {
	return attribute.String(AttrAbsPath, path)
}

// Filename returns an attribute for a filename
func Filename(name string) attribute.KeyValue {
	return attribute.String(AttrFilename, name)
}

// Entries returns an attribute for directory entries read
func Entries(n int) attribute.KeyValue {
	return attribute.Int(AttrEntries, n)
}

// Filtered returns an attribute for entries dropped by authorization
func Filtered(n int) attribute.KeyValue {
	return attribute.Int(AttrFiltered, n)
}

// UserID returns an attribute for a user ID
func UserID(id string) attribute.KeyValue {
	return attribute.String(AttrUserID, id)
}

// Username returns an attribute for a username
func Username(name string) attribute.KeyValue {
	return attribute.String(AttrUsername, name)
}

// Role returns an attribute for a user role
func Role(role string) attribute.KeyValue {
	return attribute.String(AttrRole, role)
}

// Guest returns an attribute marking a guest session
func Guest(isGuest bool) attribute.KeyValue {
	return attribute.Bool(AttrGuest, isGuest)
}

// StoreEntity returns an attribute for a control plane store entity
func StoreEntity(entity string) attribute.KeyValue {
	return attribute.String(AttrStoreEntity, entity)
}

// StartDecideSpan starts a span for an access decision.
func StartDecideSpan(ctx context.Context, path string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{Path(path)}
	allAttrs = append(allAttrs, attrs...)
	return StartSpan(ctx, SpanDecide, trace.WithAttributes(allAttrs...))
}

// StartListSpan starts a span for a filtered directory listing.
func StartListSpan(ctx context.Context, path string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{Path(path)}
	allAttrs = append(allAttrs, attrs...)
	return StartSpan(ctx, SpanList, trace.WithAttributes(allAttrs...))
}

// StartStoreSpan starts a span for a control plane store operation.
func StartStoreSpan(ctx context.Context, entity string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := []attribute.KeyValue{StoreEntity(entity)}
	allAttrs = append(allAttrs, attrs...)
	return StartSpan(ctx, "store."+entity, trace.WithAttributes(allAttrs...))
}
