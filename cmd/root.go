package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/ghostlogs/ghost/internal/api"
	"github.com/ghostlogs/ghost/internal/chain"
	"github.com/ghostlogs/ghost/internal/config"
	"github.com/ghostlogs/ghost/internal/logging"
	"github.com/ghostlogs/ghost/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/ghostlogs/ghost/cmd.Version=1.2.3" .
var Version = "0.1.0"

// dotenvFile is read from the working directory before anything else.
const dotenvFile = ".env"

var (
	cfgDir  string
	verbose bool

	env    *config.Env
	cfg    *config.Config
	logger = zap.NewNop()
	chains = chain.NewRegistry()

	// openKeystore is replaced in tests.
	openKeystore = func(dir string) (config.SecretStore, error) { return config.OpenKeystore(dir) }
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "ghost",
	Short: "Ghost CLI - Interact with the GhostGraph API",
	Long: ui.Banner(Version) + `
Create, build and deploy GhostGraph indexers from your terminal.

Start with 'ghost configure <api-key>', then 'ghost create <dir> --chain <chain>'.
Inside a graph directory run 'ghost codegen', 'ghost compile' and 'ghost deploy'.`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		l, err := logging.New(verbose)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		logger = l

		env, err = config.LoadEnv(dotenvFile)
		if err != nil {
			return err
		}
		dir := cfgDir
		if dir == "" {
			dir = env.ConfigDir
		}
		cfg, err = config.Load(dir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		logger.Debug("config loaded", zap.String("dir", cfg.Dir()), zap.Bool("exists", cfg.Exists()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Err(errorMessage(err)))
		os.Exit(1)
	}
}

// errorMessage renders API error details in their multi-line form.
func errorMessage(err error) string {
	var details *api.ErrorDetails
	if errors.As(err, &details) {
		return "\n" + details.Error()
	}
	return err.Error()
}

// apiClient builds the GhostGraph client. GHOST_API_KEY takes precedence
// over the key saved by 'configure'.
func apiClient() (*api.Client, error) {
	key := env.APIKey
	if key == "" {
		if !cfg.Exists() {
			return nil, apiKeyError(config.ErrConfigNotFound)
		}
		store, err := openKeystore(cfg.Dir())
		if err != nil {
			return nil, apiKeyError(err)
		}
		key, err = cfg.APIKey(store)
		if err != nil {
			return nil, apiKeyError(err)
		}
	}
	base, web := cfg.Endpoints(env)
	return api.NewClient(base, web, key, logger), nil
}

func apiKeyError(err error) error {
	return fmt.Errorf("failed to retrieve API key: %w. Please run the 'configure' command first", err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", "", "config directory (default: ~/.config/ghost, env GHOST_CONFIG_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		configureCmd,
		createCmd,
		codegenCmd,
		compileCmd,
		deployCmd,
		listCmd,
		forkCmd,
		deleteCmd,
		eventsCmd,
	)
}
