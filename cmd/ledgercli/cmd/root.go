// Package cmd provides CLI commands for ledgercli.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/millspills/ledgercli/pkg/config"
	"github.com/millspills/ledgercli/pkg/pathutil"
)

var (
	cfgFile string
	debug   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ledgercli",
	Short: "Turn bank notifications into ledger entries",
	Long: `ledgercli appends bank push notifications to a plain-text ledger.

It supports:
- Extracting amount, payee and account from CIBC and Tangerine notifications
- Learning payee aliases and usual categories from the existing ledger
- Preventing duplicate imports with SQLite history
- Checking and reformatting ledger files

Example:
  ledgercli import notifications.jsonl
  ledgercli aliases --payee "LOBLAWS #1002"
  ledgercli check`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// configuration errors are reported by the command itself
		cfg, _ := config.Load(getConfigFile())

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel(debug, cfg),
		}))
		slog.SetDefault(logger)
	},
}

// logLevel enables debug logging from --debug or from DEBUG in the configuration.
func logLevel(debugFlag bool, cfg *config.Config) slog.Level {
	if debugFlag || (cfg != nil && cfg.Debug) {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .env)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(aliasesCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(statsCmd)
}

// Helper function to get config file path.
func getConfigFile() string {
	if cfgFile != "" {
		return cfgFile
	}
	return "" // Will use default .env loading
}

// loadEnvironment loads and validates the configuration and builds the path resolver.
func loadEnvironment(required ...[]string) (*config.Config, *pathutil.PathResolver) {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "failed to load configuration")

	if err := cfg.Validate(required...); err != nil {
		exitOnError(err, "invalid configuration")
	}

	pathResolver := pathutil.New(pathutil.Config{
		LedgerFile:   cfg.Ledger.File,
		AliasesFile:  cfg.Ledger.AliasesFile,
		DebugLogFile: cfg.Ledger.DebugLogFile,
		SettingsFile: cfg.Ledger.SettingsFile,
		DatabasePath: cfg.Ledger.DBPath,
	})

	return cfg, pathResolver
}

// Helper function to handle errors and exit.
func exitOnError(err error, msg string) {
	if err != nil {
		slog.Error(msg, "error", err)
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
		os.Exit(1)
	}
}
