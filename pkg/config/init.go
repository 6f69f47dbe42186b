package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// InitConfig creates a configuration file at the default location.
//
// Returns the path of the created file. If a config file already exists
// and force is false, an error is returned.
func InitConfig(force bool) (string, error) {
	configPath := GetDefaultConfigPath()
	if err := InitConfigToPath(configPath, force); err != nil {
		return "", err
	}
	return configPath, nil
}

// InitConfigToPath creates a configuration file at the given path.
//
// The generated file contains a commented sample configuration with all
// defaults filled in and a freshly generated JWT secret. If the file
// already exists and force is false, an error is returned.
func InitConfigToPath(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}

	// Create parent directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	secret, err := generateJWTSecret()
	if err != nil {
		return fmt.Errorf("failed to generate JWT secret: %w", err)
	}

	content := generateSampleConfig(secret)

	// Restricted permissions: the file contains the JWT secret
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// generateJWTSecret returns a 64-character hex-encoded random secret.
func generateJWTSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// generateSampleConfig renders the sample YAML configuration.
//
// The sample carries every section with its default values spelled out,
// so operators can edit in place instead of consulting documentation.
func generateSampleConfig(jwtSecret string) string {
	defaults := GetDefaultConfig()

	return fmt.Sprintf(`# FileHaven Configuration File
#
# This file was generated by 'filehaven init'.
# Environment variables with the FILEHAVEN_ prefix override file values,
# e.g. FILEHAVEN_LOGGING_LEVEL=DEBUG.

logging:
  # Minimum log level: DEBUG, INFO, WARN, ERROR
  level: "INFO"
  # Output format: text or json
  format: "text"
  # Where logs are written: stdout, stderr, or a file path
  output: "stdout"

storage:
  # Directory backing the shared volume space (required)
  volume_root: "%s"
  # Directory holding per-user personal spaces (required)
  personal_root: "%s"
  # Entry names hidden from every directory listing
  exclude_names:
    - ".DS_Store"
    - "Thumbs.db"
    - "desktop.ini"

database:
  # Control plane database: sqlite or postgres
  type: "sqlite"
  sqlite:
    path: "%s"

controlplane:
  # HTTP port for the REST API
  port: 8080
  jwt:
    # HMAC signing key for JWT tokens (min 32 characters).
    # Can also be set via the FILEHAVEN_CONTROLPLANE_SECRET environment variable.
    secret: "%s"
    # Token lifetimes, parsed as Go durations when loaded through viper
    # access_token_duration: "15m"
    # refresh_token_duration: "168h"
    # guest_token_duration: "24h"

metrics:
  # Prometheus metrics endpoint (opt-in)
  enabled: false
  port: 9090

telemetry:
  # OpenTelemetry distributed tracing (opt-in)
  enabled: false
  endpoint: "localhost:4317"

admin:
  # Initial admin username, created on first start
  username: "admin"
`,
		defaults.Storage.VolumeRoot,
		defaults.Storage.PersonalRoot,
		defaults.Database.SQLite.Path,
		jwtSecret,
	)
}
