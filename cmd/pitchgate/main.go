package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/pitchgate/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "pitchgate",
	Short:   "Password-protected static site server",
	Long: `Pitchgate serves a directory of static assets (HTML, CSS, scripts,
images, audio) behind a shared HTTP Basic login.

Credentials come from PITCH_USER/PITCH_PASS (and optionally
PITCH_USER_NEXT/PITCH_PASS_NEXT for rotation), a config file,
or a JSON keys file.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringSlice("config", nil, "config file path(s), later files override earlier ones (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("root", "", "directory to serve (default: executable directory, env: PITCHGATE_STORAGE_PATH)")
	rootCmd.PersistentFlags().Int("port", 8080, "HTTP server port (env: PORT, PITCHGATE_SERVER_PORT)")
	rootCmd.PersistentFlags().String("realm", "", "Basic auth realm (default: Pitch Industrial)")
	rootCmd.PersistentFlags().String("keys-file", "", "JSON file with credential pairs (env: PITCHGATE_AUTH_FILE)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env: PITCHGATE_LOG_LEVEL)")
}

// loadConfig loads and validates configuration, sets up logging, and stores
// the config in the command context.
func loadConfig(cmd *cobra.Command, _ []string) error {
	configFiles, _ := cmd.Flags().GetStringSlice("config")

	cfg, err := config.Load(configFiles, cmd.Flags())
	if err != nil {
		return err
	}

	setupLogging(cfg)
	cmd.SetContext(config.WithContext(cmd.Context(), cfg))
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
