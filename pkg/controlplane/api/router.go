package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/filehaven/filehaven/internal/controlplane/api/auth"
	"github.com/filehaven/filehaven/internal/controlplane/api/handlers"
	apiMiddleware "github.com/filehaven/filehaven/internal/controlplane/api/middleware"
	"github.com/filehaven/filehaven/internal/logger"
	"github.com/filehaven/filehaven/pkg/controlplane/runtime"
	"github.com/filehaven/filehaven/pkg/controlplane/store"
)

// NewRouter creates and configures the chi router with all middleware and routes.
//
// The router is configured with:
//   - Request ID middleware for request tracking
//   - Real IP extraction for proper client identification
//   - Custom request logging using the internal logger
//   - Panic recovery to prevent server crashes
//   - Request timeout to prevent hung requests
//
// Routes:
//   - GET /health - Liveness probe
//   - GET /health/ready - Readiness probe
//   - POST /api/v1/auth/login - User authentication
//   - POST /api/v1/auth/refresh - Token refresh
//   - GET /api/v1/auth/me - Current user info
//   - POST /api/v1/users/me/password - Change own password
//   - /api/v1/users/* - User management (admin only, self read allowed)
//   - /api/v1/rules/* - Path rule management (admin only)
//   - /api/v1/volumes/* - User volume management (admin only)
//   - /api/v1/settings - Feature settings (admin only)
//   - POST /api/v1/shares/{token}/session - Guest share session (token required for restricted shares)
//   - /api/v1/shares/* - Share management (authenticated, owner scoped)
//   - /api/v1/files/* - File browsing and operations (user or guest session)
func NewRouter(rt *runtime.Runtime, jwtService *auth.JWTService, cpStore store.Store, maxUploadSize int64) http.Handler {
	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Health check handlers
	healthHandler := handlers.NewHealthHandler(rt)

	// Health routes - unauthenticated
	r.Route("/health", func(r chi.Router) {
		r.Get("/", healthHandler.Liveness)
		r.Get("/ready", healthHandler.Readiness)
	})

	// Root redirect to health for convenience
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	// API handlers - use cpStore directly since API handlers have request context
	authHandler := handlers.NewAuthHandler(cpStore, jwtService)
	userHandler := handlers.NewUserHandler(cpStore)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Auth routes - mostly unauthenticated
		r.Route("/auth", func(r chi.Router) {
			// Public endpoints
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)

			// Authenticated endpoint
			r.Group(func(r chi.Router) {
				r.Use(apiMiddleware.JWTAuth(jwtService))
				r.Get("/me", authHandler.Me)
			})
		})

		// Password change - authenticated users only, guests have no password
		r.Route("/users/me/password", func(r chi.Router) {
			r.Use(apiMiddleware.JWTAuth(jwtService))
			r.Post("/", userHandler.ChangeOwnPassword)
		})

		// Guest share sessions - a valid user token widens access to
		// user-restricted shares, anonymous callers can still open
		// shares of type "anyone"
		r.Route("/shares", func(r chi.Router) {
			r.With(apiMiddleware.OptionalSessionAuth(jwtService)).
				Post("/{token}/session", authHandler.ShareSession)

			// Share management - owner scoped, admins see everything
			r.Group(func(r chi.Router) {
				r.Use(apiMiddleware.JWTAuth(jwtService))

				shareHandler := handlers.NewShareHandler(rt)
				r.Post("/", shareHandler.Create)
				r.Get("/", shareHandler.List)
				r.Get("/{token}", shareHandler.Get)
				r.Put("/{token}", shareHandler.Update)
				r.Delete("/{token}", shareHandler.Delete)
			})
		})

		// File browsing and operations - users and guest sessions
		r.Route("/files", func(r chi.Router) {
			r.Use(apiMiddleware.OptionalSessionAuth(jwtService))

			fileHandler := handlers.NewFileHandler(rt, maxUploadSize)
			r.Get("/", fileHandler.Browse)
			r.Get("/download", fileHandler.Download)
			r.Post("/", fileHandler.Upload)
			r.Post("/authorize", fileHandler.Authorize)
			r.Post("/folders", fileHandler.CreateFolder)
			r.Put("/", fileHandler.Rename)
			r.Delete("/", fileHandler.Delete)
		})

		// Protected routes - require a full user session
		r.Group(func(r chi.Router) {
			r.Use(apiMiddleware.JWTAuth(jwtService))

			// User management
			r.Route("/users", func(r chi.Router) {
				// Self-access allowed - handler does its own authorization
				r.Get("/{username}", userHandler.Get)

				// Admin-only operations
				r.Group(func(r chi.Router) {
					r.Use(apiMiddleware.RequireAdmin())

					r.Post("/", userHandler.Create)
					r.Get("/", userHandler.List)
					r.Put("/{username}", userHandler.Update)
					r.Delete("/{username}", userHandler.Delete)
					r.Post("/{username}/password", userHandler.ResetPassword)
				})
			})

			// Path rule management (admin only)
			r.Route("/rules", func(r chi.Router) {
				r.Use(apiMiddleware.RequireAdmin())

				ruleHandler := handlers.NewRuleHandler(cpStore)
				r.Post("/", ruleHandler.Create)
				r.Get("/", ruleHandler.List)
				r.Put("/order", ruleHandler.Reorder)
				r.Get("/{id}", ruleHandler.Get)
				r.Put("/{id}", ruleHandler.Update)
				r.Delete("/{id}", ruleHandler.Delete)
			})

			// User volume management (admin only)
			r.Route("/volumes", func(r chi.Router) {
				r.Use(apiMiddleware.RequireAdmin())

				volumeHandler := handlers.NewVolumeHandler(cpStore)
				r.Post("/", volumeHandler.Create)
				r.Get("/", volumeHandler.List)
				r.Get("/{id}", volumeHandler.Get)
				r.Put("/{id}", volumeHandler.Update)
				r.Delete("/{id}", volumeHandler.Delete)
			})

			// Feature settings (admin only)
			r.Route("/settings", func(r chi.Router) {
				r.Use(apiMiddleware.RequireAdmin())

				settingsHandler := handlers.NewSettingsHandler(cpStore)
				r.Get("/", settingsHandler.Get)
				r.Patch("/", settingsHandler.Patch)
			})
		})
	})

	return r
}

// isHealthPath returns true if the request path is a healthcheck endpoint.
func isHealthPath(path string) bool {
	return path == "/health" || strings.HasPrefix(path, "/health/")
}

// requestLogger is a custom middleware that logs requests using the internal logger.
//
// It logs:
//   - Request start (DEBUG level): method, path, remote addr
//   - Request completion (INFO level): method, path, status, duration
//   - Healthcheck requests are logged at DEBUG level to reduce noise
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := middleware.GetReqID(r.Context())

		logger.Debug("API request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)

		// Wrap response writer to capture status code
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		duration := time.Since(start)

		logArgs := []any{
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", duration.String(),
		}

		// Log healthcheck requests at DEBUG to avoid polluting logs in k8s
		if isHealthPath(r.URL.Path) {
			logger.Debug("API request completed", logArgs...)
		} else {
			logger.Info("API request completed", logArgs...)
		}
	})
}
