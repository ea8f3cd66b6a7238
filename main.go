// =============================================================================
// SEPA Direct Debit Generator - Application Entry Point
// =============================================================================

package main

import "github.com/gerard76/sepa-king/cmd"

func main() {
	cmd.Execute()
}
