// =============================================================================
// SEPA Direct Debit Generator - Root Command
// =============================================================================
//
// This module defines the root CLI command and global flags shared by the
// subcommands. The logger is configured before any subcommand runs; the
// profile is loaded lazily by the commands that need one.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gerard76/sepa-king/internal/config"
)

var (
	// configPath is the path to the initiation profile.
	configPath string

	// verbose enables debug logging regardless of the profile's log level.
	verbose bool

	// logger is the shared application logger.
	logger *zap.Logger
)

// rootCmd is the base command of the generator.
var rootCmd = &cobra.Command{
	Use:   "sepa-king",
	Short: "Generate SEPA direct debit initiation documents",
	Long: `sepa-king reads transaction input files (CSV or XLSX), batches the
collections per creditor, collection date and sequence type, and renders
ISO 20022 pain.008 initiation documents.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogger()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Error("command failed", zap.Error(err))
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "profile.yaml", "path to the initiation profile")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// initLogger builds the shared logger. Output goes to stderr so generated
// documents can be piped from stdout.
func initLogger() error {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	built, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = built
	return nil
}

// loadProfile loads the initiation profile and raises the log level to
// debug when the profile asks for it.
func loadProfile() (*config.Profile, error) {
	profile, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if !verbose && profile.LogLevel == "debug" {
		verbose = true
		if err := initLogger(); err != nil {
			return nil, err
		}
	}
	logger.Debug("profile loaded",
		zap.String("path", configPath),
		zap.String("schema_version", profile.SchemaVersion))
	return profile, nil
}
