// =============================================================================
// SEPA Direct Debit Generator - CSV Parser Module
// =============================================================================
//
// This module parses transaction input files into collection options. Each
// data row describes one direct debit collection; the header row names the
// columns using the snake_case option names of the library.
//
// RECOGNIZED COLUMNS:
//   name, iban, bic, amount, currency, reference, remittance_information,
//   mandate_id, mandate_date_of_signature, local_instrument, sequence_type,
//   batch_booking, requested_date, instruction,
//   debtor_address_country, debtor_address_line_1, debtor_address_line_2,
//   debtor_street_name, debtor_building_number, debtor_post_code,
//   debtor_town_name,
//   creditor_name, creditor_iban, creditor_bic, creditor_identifier,
//   original_debtor_iban, same_mandate_new_debtor_agent,
//   original_creditor_name, original_creditor_identifier
//
// Unknown headers are rejected so that a misspelled column surfaces as a
// parse error instead of silently dropping a field. Values are trimmed;
// blank cells leave the option unset and fall through to the defaults.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gerard76/sepa-king/internal/sepa"
)

// dateLayout is the ISO calendar form used for all date columns.
const dateLayout = "2006-01-02"

// knownHeaders is the set of recognized column names.
var knownHeaders = map[string]bool{
	"name":                          true,
	"iban":                          true,
	"bic":                           true,
	"amount":                        true,
	"currency":                      true,
	"reference":                     true,
	"remittance_information":        true,
	"mandate_id":                    true,
	"mandate_date_of_signature":     true,
	"local_instrument":              true,
	"sequence_type":                 true,
	"batch_booking":                 true,
	"requested_date":                true,
	"instruction":                   true,
	"debtor_address_country":        true,
	"debtor_address_line_1":         true,
	"debtor_address_line_2":         true,
	"debtor_street_name":            true,
	"debtor_building_number":        true,
	"debtor_post_code":              true,
	"debtor_town_name":              true,
	"creditor_name":                 true,
	"creditor_iban":                 true,
	"creditor_bic":                  true,
	"creditor_identifier":           true,
	"original_debtor_iban":          true,
	"same_mandate_new_debtor_agent": true,
	"original_creditor_name":        true,
	"original_creditor_identifier":  true,
}

// =============================================================================
// PARSER FUNCTIONS
// =============================================================================

// Parse reads a transaction CSV file and returns one option set per data
// row. The first row must be the header row.
func Parse(filePath string) ([]sepa.TransactionOptions, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(allRows) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	headers, err := ValidateHeaders(allRows[0])
	if err != nil {
		return nil, err
	}

	var options []sepa.TransactionOptions
	for rowIndex, row := range allRows[1:] {
		if isRowEmpty(row) {
			continue
		}
		opts, err := MapRow(rowToMap(headers, row))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowIndex+2, err)
		}
		options = append(options, opts)
	}
	return options, nil
}

// ValidateHeaders trims headers and rejects unknown column names.
func ValidateHeaders(raw []string) ([]string, error) {
	headers := make([]string, len(raw))
	for i, header := range raw {
		header = strings.TrimSpace(strings.TrimPrefix(header, "\uFEFF"))
		if !knownHeaders[header] {
			return nil, fmt.Errorf("unknown column %q in header row", header)
		}
		headers[i] = header
	}
	return headers, nil
}

func rowToMap(headers []string, row []string) map[string]string {
	rowMap := make(map[string]string, len(headers))
	for i, header := range headers {
		if i < len(row) {
			rowMap[header] = strings.TrimSpace(row[i])
		} else {
			rowMap[header] = ""
		}
	}
	return rowMap
}

// isRowEmpty checks if a row contains only empty values.
func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// ROW MAPPING
// =============================================================================

// MapRow converts one header-keyed row into transaction options. It is
// shared with the XLSX parser, which produces the same row maps from
// worksheet cells.
func MapRow(row map[string]string) (sepa.TransactionOptions, error) {
	opts := sepa.TransactionOptions{
		Name:                  row["name"],
		IBAN:                  row["iban"],
		BIC:                   row["bic"],
		Currency:              row["currency"],
		Reference:             row["reference"],
		RemittanceInformation: row["remittance_information"],
		MandateID:             row["mandate_id"],
		LocalInstrument:       row["local_instrument"],
		SequenceType:          row["sequence_type"],
		Instruction:           row["instruction"],
		OriginalDebtorAccount: row["original_debtor_iban"],
	}

	if v := row["amount"]; v != "" {
		amount, err := decimal.NewFromString(v)
		if err != nil {
			return opts, fmt.Errorf("amount %q is not a valid decimal", v)
		}
		opts.Amount = amount
	}
	if v := row["mandate_date_of_signature"]; v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return opts, fmt.Errorf("mandate_date_of_signature %q is not a valid ISO date", v)
		}
		opts.MandateDateOfSignature = t
	}
	if v := row["requested_date"]; v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return opts, fmt.Errorf("requested_date %q is not a valid ISO date", v)
		}
		opts.RequestedDate = t
	}
	if v := row["batch_booking"]; v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("batch_booking %q is not a valid boolean", v)
		}
		opts.BatchBooking = sepa.Bool(b)
	}
	if v := row["same_mandate_new_debtor_agent"]; v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("same_mandate_new_debtor_agent %q is not a valid boolean", v)
		}
		opts.SameMandateNewDebtorAgent = b
	}

	if addr := mapDebtorAddress(row); addr != nil {
		opts.DebtorAddress = addr
	}
	if creditor := mapCreditorOverride(row); creditor != nil {
		opts.CreditorAccount = creditor
	}
	if original := mapOriginalCreditor(row); original != nil {
		opts.OriginalCreditorAccount = original
	}
	return opts, nil
}

func mapDebtorAddress(row map[string]string) *sepa.DebtorAddress {
	addr := sepa.DebtorAddress{
		CountryCode:    row["debtor_address_country"],
		AddressLine1:   row["debtor_address_line_1"],
		AddressLine2:   row["debtor_address_line_2"],
		StreetName:     row["debtor_street_name"],
		BuildingNumber: row["debtor_building_number"],
		PostCode:       row["debtor_post_code"],
		TownName:       row["debtor_town_name"],
	}
	if addr == (sepa.DebtorAddress{}) {
		return nil
	}
	return &addr
}

// mapCreditorOverride builds a per-transaction creditor when any creditor
// column is set. Rows without creditor columns collect for the profile
// creditor.
func mapCreditorOverride(row map[string]string) *sepa.CreditorAccount {
	account := sepa.CreditorAccount{
		Name:               row["creditor_name"],
		IBAN:               row["creditor_iban"],
		BIC:                row["creditor_bic"],
		CreditorIdentifier: row["creditor_identifier"],
	}
	if account == (sepa.CreditorAccount{}) {
		return nil
	}
	return &account
}

func mapOriginalCreditor(row map[string]string) *sepa.CreditorAccount {
	account := sepa.CreditorAccount{
		Name:               row["original_creditor_name"],
		CreditorIdentifier: row["original_creditor_identifier"],
	}
	if account == (sepa.CreditorAccount{}) {
		return nil
	}
	return &account
}
