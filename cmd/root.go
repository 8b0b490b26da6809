// ABOUTME: Root command for the trackdemic CLI
// ABOUTME: Handles global flags and launches the interactive TUI by default

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/trackdemic/trackdemic-cli/internal/client"
	"github.com/trackdemic/trackdemic-cli/internal/config"
	"github.com/trackdemic/trackdemic-cli/internal/debuglog"
	"github.com/trackdemic/trackdemic-cli/internal/session"
	"github.com/trackdemic/trackdemic-cli/internal/store"
	"github.com/trackdemic/trackdemic-cli/internal/tui"
)

var (
	apiURL     string
	jsonOutput bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "trackdemic",
	Short: "Terminal client for the Trackdemic e-learning platform",
	Long: `trackdemic is a terminal client for the Trackdemic e-learning platform.

Run without arguments to open the interactive UI. Subcommands cover
scripted use: authentication, course listings, and quiz listings.

Environment Variables:
  TRACKDEMIC_API_URL     Backend API URL (default: http://localhost:8000)
  TRACKDEMIC_CONFIG_DIR  Credential and log directory (default: ~/.config/trackdemic)
  TRACKDEMIC_DEBUG       Write a TUI debug log when set to true`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if cfg.Debug {
			if err := debuglog.Init(cfg.ConfigDir); err == nil {
				defer debuglog.Close()
			}
		}
		api, sess, st := buildSession(cfg)
		return tui.Run(api, sess, st)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides TRACKDEMIC_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
}

// loadConfig merges the environment config with command-line overrides.
func loadConfig() *config.Config {
	cfg := config.Load()
	if apiURL != "" {
		cfg.APIURL = apiURL
	}
	return cfg
}

// buildSession wires the store, API client, and session controller.
func buildSession(cfg *config.Config) (*client.Client, *session.Controller, *store.Store) {
	st := store.New(cfg.ConfigDir)
	api := client.New(cfg.APIURL, st)
	return api, session.New(api, st), st
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}
