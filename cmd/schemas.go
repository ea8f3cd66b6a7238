// =============================================================================
// SEPA Direct Debit Generator - Schemas Command
// =============================================================================

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gerard76/sepa-king/internal/sepa"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List the supported pain.008 schema versions",
	RunE:  runSchemas,
}

func init() {
	rootCmd.AddCommand(schemasCmd)
}

func runSchemas(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "%-18s %-10s %-14s %-12s %s\n",
		"VERSION", "DEFAULT", "CURRENCIES", "BIC", "LOCAL INSTRUMENTS")

	for _, version := range sepa.SupportedSchemaVersions() {
		profile, err := sepa.ProfileFor(version)
		if err != nil {
			return err
		}

		isDefault := ""
		if version == sepa.DefaultSchemaVersion {
			isDefault = "yes"
		}

		currencies := "any"
		if len(profile.Currencies) > 0 {
			currencies = strings.Join(profile.Currencies, ",")
		}

		bic := "optional"
		if profile.CreditorBICRequired {
			bic = "required"
		}

		fmt.Fprintf(out, "%-18s %-10s %-14s %-12s %s\n",
			version, isDefault, currencies, bic,
			strings.Join(profile.LocalInstruments, ","))
	}
	return nil
}
