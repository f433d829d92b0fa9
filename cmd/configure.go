package cmd

import (
	"fmt"

	"github.com/ghostlogs/ghost/internal/ui"
	"github.com/spf13/cobra"
)

var (
	configureBaseURL    string
	configureWebBaseURL string
)

var configureCmd = &cobra.Command{
	Use:   "configure <api-key>",
	Short: "Configure the Ghost API key",
	Long: `Save your GhostGraph API key. The key is kept in the OS keychain
(or a file in the config directory when no keychain exists);
config.json only stores a reference to it.

Examples:
  ghost configure gg_xxxxxxxx
  ghost configure gg_xxxxxxxx --base-url http://localhost:8080`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openKeystore(cfg.Dir())
		if err != nil {
			return err
		}
		if configureBaseURL != "" {
			cfg.BaseURL = configureBaseURL
		}
		if configureWebBaseURL != "" {
			cfg.WebBaseURL = configureWebBaseURL
		}
		out := cmd.OutOrStdout()
		if cfg.APIKeyRef != "" {
			fmt.Fprintln(out, ui.Warn("Replacing the API key saved in "+cfg.Path()))
		}
		if err := cfg.SetAPIKey(store, args[0]); err != nil {
			return err
		}
		fmt.Fprintln(out, ui.Success(fmt.Sprintf("API key saved successfully in %s", cfg.Path())))
		return nil
	},
}

func init() {
	configureCmd.Flags().StringVar(&configureBaseURL, "base-url", "", "persist a GhostGraph API base URL")
	configureCmd.Flags().StringVar(&configureWebBaseURL, "web-base-url", "", "persist a GhostGraph web app base URL")
}
