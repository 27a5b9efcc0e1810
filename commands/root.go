package commands

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emmaweasley/planet-jersey-shop/config"
)

// NewRootCommand builds the planetjersey command tree. The shared App is
// wired in a persistent pre-run so that flags and environment are
// resolved exactly once, whatever subcommand runs.
func NewRootCommand(version string) *cobra.Command {
	var (
		configPath string
		apiURL     string
		logLevel   string
	)

	app := &App{}

	cmd := &cobra.Command{
		Use:   "planetjersey",
		Short: "Planet Jersey storefront client",
		Long: `Planet Jersey is a terminal storefront for a remote jersey catalog.

Browse and filter the catalog, keep a shopping cart that persists across
sessions, and maintain the catalog through the admin commands. The cart
lives on this machine; all product data lives behind the backend API.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(logLevel)
			slog.SetDefault(logger)

			loader := config.NewLoader(logger)
			cfg, err := loader.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if apiURL != "" {
				cfg.API.BaseURL = apiURL
			}

			app.Config = cfg
			app.Logger = logger
			app.Out = cmd.OutOrStdout()
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Catalog service base URL")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		NewBrowseCommand(app),
		NewShowCommand(app),
		NewCartCommand(app),
		NewAdminCommand(app),
		NewShellCommand(app),
		NewDocsCommand(app),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "planetjersey version %s\n", version)
		},
	})

	return cmd
}

func newLogger(logLevel string) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
