package commands

import (
	"fmt"

	"github.com/filehaven/filehaven/pkg/config"
	"github.com/filehaven/filehaven/pkg/controlplane/api"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a sample configuration file",
	Long: `Initialize a sample FileHaven configuration file.

By default, the configuration file is created at $XDG_CONFIG_HOME/filehaven/config.yaml.
Use --config to specify a custom path.

Examples:
  # Initialize with default location
  filehaven init

  # Initialize with custom path
  filehaven init --config /etc/filehaven/config.yaml

  # Force overwrite existing config
  filehaven init --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Force overwrite existing config file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := GetConfigFile()

	var configPath string
	var err error

	if configFile != "" {
		// Use custom path
		err = config.InitConfigToPath(configFile, initForce)
		configPath = configFile
	} else {
		// Use default path
		configPath, err = config.InitConfig(initForce)
	}

	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Edit the configuration file and set storage.volume_root and storage.personal_root")
	fmt.Println("  2. Start the server with: filehaven start")
	fmt.Printf("  3. Or specify custom config: filehaven start --config %s\n", configPath)
	fmt.Println("\nSecurity note:")
	fmt.Println("  A random JWT secret has been generated for development use.")
	fmt.Println("  For production, generate a secure secret and use an environment variable:")
	fmt.Println("    # Generates a 64-character hex string (32 bytes of entropy)")
	fmt.Printf("    export %s=$(openssl rand -hex 32)\n", api.EnvControlPlaneSecret)

	return nil
}
