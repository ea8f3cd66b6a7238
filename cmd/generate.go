// =============================================================================
// SEPA Direct Debit Generator - Generate Command
// =============================================================================
//
// This module implements the generate subcommand: it reads a transaction
// input file (CSV or XLSX), applies the profile's defaults, builds the
// message and writes the rendered pain.008 document.
//
// PROCESS:
//   1. Load the initiation profile
//   2. Parse the input file into transaction options
//   3. Apply profile defaults to blank fields
//   4. Add every transaction to the message (validation happens here)
//   5. Render the document under the selected schema version
//   6. Write the document to the output directory (or stdout with -o -)
//   7. Archive the input file when an archive directory is configured
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gerard76/sepa-king/internal/config"
	"github.com/gerard76/sepa-king/internal/csvparser"
	"github.com/gerard76/sepa-king/internal/sepa"
	"github.com/gerard76/sepa-king/internal/xlsxparser"
	"github.com/gerard76/sepa-king/pkg/utils"
)

var (
	// generateSchema overrides the profile's schema version.
	generateSchema string

	// generateOutput overrides the output destination. "-" writes the
	// document to stdout.
	generateOutput string

	// generateMessageID sets an explicit message identifier instead of a
	// generated one.
	generateMessageID string
)

var generateCmd = &cobra.Command{
	Use:   "generate <input-file>",
	Short: "Generate a pain.008 document from a transaction input file",
	Args:  cobra.ExactArgs(1),
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateSchema, "schema", "", "schema version to render (overrides the profile)")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output file path, or - for stdout")
	generateCmd.Flags().StringVar(&generateMessageID, "message-id", "", "explicit message identifier")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	profile, err := loadProfile()
	if err != nil {
		return err
	}

	options, err := parseInput(inputPath)
	if err != nil {
		return err
	}
	if len(options) == 0 {
		return fmt.Errorf("input file %s contains no transactions", inputPath)
	}
	logger.Info("input parsed",
		zap.String("file", inputPath),
		zap.Int("transactions", len(options)))

	message, err := buildMessage(profile, options)
	if err != nil {
		return err
	}

	version := sepa.SchemaVersion(profile.SchemaVersion)
	if generateSchema != "" {
		version = sepa.SchemaVersion(generateSchema)
	}

	document, err := message.ToXMLVersion(version)
	if err != nil {
		return fmt.Errorf("failed to generate document: %w", err)
	}
	logger.Info("document generated",
		zap.String("message_id", message.MessageID()),
		zap.String("schema_version", string(version)),
		zap.Int("batches", len(message.Batches())),
		zap.String("control_sum", message.ControlSum().StringFixed(2)))

	if generateOutput == "-" {
		_, err := os.Stdout.Write(document)
		return err
	}

	outputPath := generateOutput
	if outputPath == "" {
		fileName := utils.GenerateOutputFileName(profile.Output.FileNameFormat)
		outputPath, err = utils.WriteDocument(profile.Output.Dir, fileName, document)
		if err != nil {
			return err
		}
	} else {
		if err := utils.EnsureDir(filepath.Dir(outputPath)); err != nil {
			return err
		}
		if err := os.WriteFile(outputPath, document, 0644); err != nil {
			return fmt.Errorf("failed to write document: %w", err)
		}
	}
	logger.Info("document written", zap.String("path", outputPath))

	if profile.Output.ArchiveDir != "" {
		archivePath, err := utils.ArchiveInputFile(inputPath, profile.Output.ArchiveDir)
		if err != nil {
			return err
		}
		logger.Info("input archived", zap.String("path", archivePath))
	}
	return nil
}

// parseInput dispatches on the input file extension.
func parseInput(path string) ([]sepa.TransactionOptions, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return csvparser.Parse(path)
	case ".xlsx", ".xlsm":
		return xlsxparser.Parse(path)
	default:
		return nil, fmt.Errorf("unsupported input format %q (expected .csv or .xlsx)", filepath.Ext(path))
	}
}

// buildMessage assembles the message from the profile and the parsed
// options, filling blank fields from the profile's defaults.
func buildMessage(profile *config.Profile, options []sepa.TransactionOptions) (*sepa.DirectDebit, error) {
	message := sepa.NewDirectDebit(profile.CreditorAccount())

	if generateMessageID != "" {
		message.SetMessageID(generateMessageID)
	}

	defaultDate, err := profile.RequestedDate()
	if err != nil {
		return nil, err
	}

	for i, opts := range options {
		applyDefaults(&opts, profile, defaultDate)
		if err := message.AddTransaction(opts); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i+1, err)
		}
	}
	return message, nil
}

func applyDefaults(opts *sepa.TransactionOptions, profile *config.Profile, defaultDate time.Time) {
	if opts.Currency == "" {
		opts.Currency = profile.Defaults.Currency
	}
	if opts.LocalInstrument == "" {
		opts.LocalInstrument = profile.Defaults.LocalInstrument
	}
	if opts.SequenceType == "" {
		opts.SequenceType = profile.Defaults.SequenceType
	}
	if opts.BatchBooking == nil {
		opts.BatchBooking = profile.Defaults.BatchBooking
	}
	if opts.RequestedDate.IsZero() && !defaultDate.IsZero() {
		opts.RequestedDate = defaultDate
	}
}
