package main

import (
	"fmt"
	"log/slog"
	"os"

	"eyerest/internal/core/model"
	"eyerest/internal/history"
	"eyerest/internal/storage"

	"github.com/spf13/cobra"
)

const (
	appName = "eyerest"
	appID   = "io.eyerest.app"
)

// Build-time variables (set via ldflags)
var version = "dev"

var (
	globalOpts struct {
		verbose    bool
		configPath string
		historyDB  string
	}
	runOpts struct {
		start       bool
		workMinutes int
		restSeconds int
	}
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Work/rest timer that blacks out every display during breaks",
	Long: `eyerest alternates work and rest phases. When a work phase ends every
connected display is covered by a black overlay showing the remaining rest
time; the overlays close and the next work phase starts when it reaches zero.

Running eyerest without a subcommand opens the control panel and tray icon.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		if globalOpts.configPath == "" {
			path, err := storage.DefaultPath(appName)
			if err != nil {
				return fmt.Errorf("failed to resolve settings path: %w", err)
			}
			globalOpts.configPath = path
		}
		if globalOpts.historyDB == "" {
			path, err := history.DefaultPath(appName)
			if err != nil {
				return fmt.Errorf("failed to resolve history path: %w", err)
			}
			globalOpts.historyDB = path
		}
		return nil
	},
	RunE: runGUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to settings file (default: ~/.config/eyerest/settings.yaml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.historyDB, "history-db", "",
		"Path to break history database (default: ~/.config/eyerest/history.db)")

	rootCmd.Flags().BoolVar(&runOpts.start, "start", false,
		"Start the work/rest cycle immediately")
	rootCmd.Flags().IntVar(&runOpts.workMinutes, "work", 0,
		fmt.Sprintf("Work interval in minutes (%d-%d)", model.MinWorkMinutes, model.MaxWorkMinutes))
	rootCmd.Flags().IntVar(&runOpts.restSeconds, "rest", 0,
		fmt.Sprintf("Rest duration in seconds (1-%d)", model.MaxRestSeconds))
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// applyOverrides layers command-line durations over the loaded settings.
func applyOverrides(cmd *cobra.Command, settings model.Settings) model.Settings {
	if cmd.Flags().Changed("work") {
		settings.WorkMinutes = runOpts.workMinutes
	}
	if cmd.Flags().Changed("rest") {
		settings.RestSeconds = runOpts.restSeconds
	}
	return settings.Normalize()
}
