package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/userportal/internal/dependencies/navigation"
	"github.com/mcoot/userportal/internal/factory"
)

var (
	cfg *Config
	app *factory.App
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "userctl",
		Short: "CLI client for the users API",
		Long: `userctl registers accounts, signs in and browses users through the users
JSON API.

The session token returned by register and login is kept in the session store
(a file under ~/.userctl by default) and sent with every later request. When
the server rejects it the session is cleared and you are asked to sign in
again.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			cfg = loaded

			fc := cfg.FactoryConfig()
			fc.Logger = newLogger(cmd, cfg.Verbose)
			fc.Navigator = navigation.NewWriterNavigator(cmd.ErrOrStderr())

			app, err = factory.New(fc)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app == nil {
				return nil
			}
			return app.Close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: USERCTL_SERVER)")
	flags.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "YAML config file (env: USERCTL_CONFIG)")
	flags.StringVar(&cfg.Store, "store", cfg.Store, "Session store: memory, file, redis (env: USERCTL_STORE)")
	flags.StringVar(&cfg.StorePath, "store-path", cfg.StorePath, "Session file for the file store (env: USERCTL_STORE_PATH)")
	flags.StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL for the redis store (env: USERCTL_REDIS_URL)")
	flags.StringVar(&cfg.RedisNamespace, "redis-namespace", cfg.RedisNamespace, "Redis key namespace (env: USERCTL_REDIS_NAMESPACE)")
	flags.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "HTTP request timeout (env: USERCTL_TIMEOUT)")
	flags.StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newUsersCmd())
	rootCmd.AddCommand(newProfileCmd())
	rootCmd.AddCommand(newStatusCmd())

	return rootCmd
}

// newLogger logs to stderr so stdout carries only command output
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		NewOutput(cfg.Output, os.Stdout, os.Stderr).PrintError(err)
		os.Exit(1)
	}
}
