package logger

import "log/slog"

// Standard field keys for structured logging.
// Use these keys consistently across all log statements so authorization
// decisions and file operations can be aggregated and queried.
const (
	// ========================================================================
	// Distributed Tracing
	// ========================================================================
	KeyTraceID = "trace_id" // OpenTelemetry trace ID for request correlation
	KeySpanID  = "span_id"  // OpenTelemetry span ID for operation tracking

	// ========================================================================
	// Request & Operation
	// ========================================================================
	KeyOperation = "operation"  // Operation name: list, read, upload, delete, etc.
	KeyRequestID = "request_id" // HTTP request ID
	KeyStatus    = "status"     // HTTP status code

	// ========================================================================
	// Authorization
	// ========================================================================
	KeySpace      = "space"      // Path space: volume, personal, share
	KeyShare      = "share"      // Share token
	KeyVolume     = "volume"     // Volume label
	KeyDecision   = "decision"   // Access decision outcome: allowed, denied
	KeyReason     = "reason"     // Denial reason
	KeyPermission = "permission" // Effective permission: rw, ro, hidden

	// ========================================================================
	// File System
	// ========================================================================
	KeyPath       = "path"        // Logical path
	KeyAbsPath    = "abs_path"    // Resolved physical path
	KeyFilename   = "filename"    // File or directory name (basename)
	KeyParentPath = "parent_path" // Parent directory logical path
	KeySize       = "size"        // File size in bytes

	// ========================================================================
	// Caller Identification
	// ========================================================================
	KeyClientIP = "client_ip" // Client IP address
	KeyUserID   = "user_id"   // Authenticated user ID
	KeyUsername = "username"  // Username
	KeyRole     = "role"      // User role: user, admin
	KeyGuest    = "guest"     // Guest session indicator

	// ========================================================================
	// Directory Listings
	// ========================================================================
	KeyEntries  = "entries"  // Number of directory entries read
	KeyFiltered = "filtered" // Number of entries dropped by authorization

	// ========================================================================
	// Operation Metadata
	// ========================================================================
	KeyDurationMs = "duration_ms" // Operation duration in milliseconds
	KeyError      = "error"       // Error message
)

// ============================================================================
// Field constructors for type safety
// ============================================================================

// TraceID returns a slog.Attr for OpenTelemetry trace ID
func TraceID(id string) slog.Attr {
	return slog.String(KeyTraceID, id)
}

// SpanID returns a slog.Attr for OpenTelemetry span ID
func SpanID(id string) slog.Attr {
	return slog.String(KeySpanID, id)
}

// Operation returns a slog.Attr for the operation name
func Operation(op string) slog.Attr {
	return slog.String(KeyOperation, op)
}

// RequestIDStr returns a slog.Attr for the HTTP request ID
func RequestIDStr(id string) slog.Attr {
	return slog.String(KeyRequestID, id)
}

// Status returns a slog.Attr for an HTTP status code
func Status(code int) slog.Attr {
	return slog.Int(KeyStatus, code)
}

// Space returns a slog.Attr for the path space
func Space(s string) slog.Attr {
	return slog.String(KeySpace, s)
}

// Share returns a slog.Attr for a share token
func Share(token string) slog.Attr {
	return slog.String(KeyShare, token)
}

// Volume returns a slog.Attr for a volume label
func Volume(label string) slog.Attr {
	return slog.String(KeyVolume, label)
}

// Decision returns a slog.Attr for an access decision outcome
func Decision(allowed bool) slog.Attr {
	if allowed {
		return slog.String(KeyDecision, "allowed")
	}
	return slog.String(KeyDecision, "denied")
}

// Reason returns a slog.Attr for a denial reason
func Reason(r string) slog.Attr {
	return slog.String(KeyReason, r)
}

// Permission returns a slog.Attr for an effective permission
func Permission(p string) slog.Attr {
	return slog.String(KeyPermission, p)
}

// Path returns a slog.Attr for a logical path
func Path(p string) slog.Attr {
	return slog.String(KeyPath, p)
}

// AbsPath returns a slog.Attr for a resolved physical path
func AbsPath(p string) slog.Attr {
	return slog.String(KeyAbsPath, p)
}

// Filename returns a slog.Attr for a filename (basename)
func Filename(name string) slog.Attr {
	return slog.String(KeyFilename, name)
}

// ParentPath returns a slog.Attr for a parent directory logical path
func ParentPath(p string) slog.Attr {
	return slog.String(KeyParentPath, p)
}

// Size returns a slog.Attr for a file size
func Size(s int64) slog.Attr {
	return slog.Int64(KeySize, s)
}

// ClientIP returns a slog.Attr for a client IP address
func ClientIP(addr string) slog.Attr {
	return slog.String(KeyClientIP, addr)
}

// UserID returns a slog.Attr for an authenticated user ID
func UserID(id string) slog.Attr {
	return slog.String(KeyUserID, id)
}

// Username returns a slog.Attr for a username
func Username(name string) slog.Attr {
	return slog.String(KeyUsername, name)
}

// Role returns a slog.Attr for a user role
func Role(role string) slog.Attr {
	return slog.String(KeyRole, role)
}

// Guest returns a slog.Attr marking a guest session
func Guest(isGuest bool) slog.Attr {
	return slog.Bool(KeyGuest, isGuest)
}

// Entries returns a slog.Attr for the number of directory entries
func Entries(n int) slog.Attr {
	return slog.Int(KeyEntries, n)
}

// Filtered returns a slog.Attr for entries dropped by authorization
func Filtered(n int) slog.Attr {
	return slog.Int(KeyFiltered, n)
}

// DurationMs returns a slog.Attr for duration in milliseconds
func DurationMs(ms float64) slog.Attr {
	return slog.Float64(KeyDurationMs, ms)
}

// Err returns a slog.Attr for an error
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}
