// Package cli provides the command-line interface for the trading journal.
package cli

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sahastranshpratap/trading-helping-tool/internal/client"
	"github.com/sahastranshpratap/trading-helping-tool/internal/config"
	"github.com/sahastranshpratap/trading-helping-tool/internal/logging"
	"github.com/sahastranshpratap/trading-helping-tool/internal/store"
	"github.com/sahastranshpratap/trading-helping-tool/internal/suggest"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2025-06-01"
)

// App holds the application dependencies.
type App struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Client   client.Client
	Suggest  *suggest.Service
	Settings *store.SettingsStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	app.Settings = store.NewSettingsStore(filepath.Join(config.DefaultConfigDir(), "settings.json"))
	app.Client = client.New(cfg, app.Settings, logger)

	// Prefer a direct OpenAI provider when a key is present, otherwise go
	// through the Gemini HTTP bridge. The suggest service falls back to
	// canned suggestions when the provider is unreachable.
	var provider suggest.Provider
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		provider = suggest.NewOpenAIProvider(key, "")
		logger.Debug().Msg("OpenAI suggestion provider initialized")
	} else if cfg.API.AIBaseURL != "" {
		provider = suggest.NewGeminiProvider(cfg.API.AIBaseURL, cfg.API.Timeout)
		logger.Debug().Str("base_url", cfg.API.AIBaseURL).Msg("Gemini suggestion provider initialized")
	}
	app.Suggest = suggest.NewService(provider, logger)

	rootCmd := &cobra.Command{
		Use:   "journal",
		Short: "Trading Journal - trade tracking and performance analytics CLI",
		Long: `Trading Journal is a CLI for recording trades and analyzing performance.

It tracks entries, exits, strategies and tags per trade, and computes win
rate, profit factor and grouped performance breakdowns over configurable
timeframes. AI-generated improvement suggestions are available when a
provider is configured.

Use 'journal help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/trading-journal)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	addCoreCommands(rootCmd, app)
	addTradeCommands(rootCmd, app)
	addAnalyticsCommands(rootCmd, app)
	addSettingsCommands(rootCmd, app)
	addSuggestCommands(rootCmd, app)
	addDataCommands(rootCmd, app)

	return rootCmd
}

// addCoreCommands adds core utility commands.
func addCoreCommands(rootCmd *cobra.Command, app *App) {
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Trading Journal v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	output.Bold("API")
	output.Printf("  Use Mock Data:  %v\n", cfg.API.UseMockData)
	output.Printf("  Base URL:       %s\n", cfg.API.BaseURL)
	output.Printf("  AI Base URL:    %s\n", cfg.API.AIBaseURL)
	output.Printf("  Timeout:        %s\n", cfg.API.Timeout)
	output.Printf("  Mock Latency:   %s\n", cfg.API.MockLatency)
	output.Println()

	output.Bold("Generator")
	output.Printf("  Count:           %d\n", cfg.Generator.Count)
	output.Printf("  Day Range:       %d\n", cfg.Generator.DayRange)
	output.Printf("  Win Probability: %.2f\n", cfg.Generator.WinProbability)
	output.Println()

	output.Bold("Logging")
	output.Printf("  Level: %s\n", cfg.Logging.Level)
	output.Printf("  File:  %v\n", cfg.Logging.File)
}
