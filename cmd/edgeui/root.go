// Package main provides the CLI entrypoint for edgeui.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/edgeui/internal/config"
	"github.com/jmylchreest/edgeui/internal/coordinator"
	"github.com/jmylchreest/edgeui/internal/format"
	"github.com/jmylchreest/edgeui/internal/i18n"
	"github.com/jmylchreest/edgeui/internal/kv"
	"github.com/jmylchreest/edgeui/internal/model"
	"github.com/jmylchreest/edgeui/internal/output"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		locale     string
		format     string
	}
	logger *slog.Logger

	coord   *coordinator.Coordinator
	catalog *i18n.Catalog
	engine  *format.Engine

	// reported is set once a command failure went out as a notification
	reported bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "edgeui",
	Short: "Session, notification and locale client for energy management devices",
	Long: `edgeui manages the client side of an energy management installation.

It keeps the session token, broadcasts notifications to every listener and
switches the display language (de, en, cz) for messages, numbers and dates.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		coord, err = buildCoordinator(cfg)
		if err != nil {
			return err
		}

		lang := cfg.Locale.Default
		if globalOpts.locale != "" {
			lang = globalOpts.locale
		}
		if err := coord.SetLocale(lang); err != nil {
			return err
		}

		outFormat := cfg.Output.Format
		if globalOpts.format != "" {
			outFormat = globalOpts.format
		}
		if err := config.ValidateOutputFormat(outFormat); err != nil {
			return fmt.Errorf("--format: %w", err)
		}
		opts := output.FormatterOptions{
			Color: cfg.Output.Color,
			Label: typeLabel,
		}
		// Long-running output gets timestamps
		if cmd.Name() == "watch" {
			opts.Time = engine.DateTime
		}
		coord.Subscribe(output.Observer(os.Stdout, output.NewFormatter(output.FormatType(outFormat), opts)))

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if coord != nil {
			return coord.Close()
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !reported {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/edgeui/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&globalOpts.locale, "locale", "l", "",
		"Display language for this run (de, en, cz)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.format, "format", "",
		"Notification output format (plain, json)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// buildCoordinator wires storage, translations and formatting from cfg.
func buildCoordinator(cfg *config.Config) (*coordinator.Coordinator, error) {
	storage, err := kv.Open(kv.Options{
		Backend:  cfg.Session.Backend,
		Path:     cfg.SessionFile(),
		RedisURL: cfg.Session.RedisURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open session storage: %w", err)
	}

	ttl, err := cfg.TokenTTL()
	if err != nil {
		return nil, err
	}

	catalog = i18n.NewCatalog(cfg.Locale.CatalogDir, logger)
	engine = format.NewEngine(model.DefaultLocale)

	c, err := coordinator.New(coordinator.Options{
		Translator: catalog,
		Formatter:  engine,
		Storage:    storage,
		TokenTTL:   ttl,
		Logger:     logger,
	})
	if err != nil {
		if closer, ok := storage.(interface{ Close() error }); ok {
			_ = closer.Close()
		}
		return nil, err
	}
	return c, nil
}

// guarded runs a command body through the uncaught-error sink when enabled.
func guarded(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if !cfg.Errors.NotifyUncaught {
			return run(cmd, args)
		}
		err := coord.Guard(func() error { return run(cmd, args) })
		reported = err != nil
		return err
	}
}

// typeLabel returns the localized label for a notification type.
func typeLabel(t model.NotificationType) string {
	return catalog.T("notification." + string(t))
}

// notify broadcasts a localized message of the given type.
func notify(t model.NotificationType, key string, args ...any) error {
	n, err := model.NewNotification(t, catalog.T(key, args...))
	if err != nil {
		return err
	}
	coord.Notify(n)
	return nil
}
