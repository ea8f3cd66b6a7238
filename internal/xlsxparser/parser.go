// =============================================================================
// SEPA Direct Debit Generator - XLSX Parser Module
// =============================================================================
//
// This module parses transaction input from XLSX workbooks. The first sheet
// is read; its first row must carry the same snake_case column names the
// CSV parser recognizes, and every following non-empty row describes one
// collection. Cell values arrive as formatted strings and run through the
// shared row mapper, so CSV and XLSX inputs behave identically.
//
// =============================================================================

package xlsxparser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/gerard76/sepa-king/internal/csvparser"
	"github.com/gerard76/sepa-king/internal/sepa"
)

// Parse reads a transaction workbook and returns one option set per data
// row of the first sheet.
func Parse(filePath string) ([]sepa.TransactionOptions, error) {
	workbook, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	headers, err := csvparser.ValidateHeaders(rows[0])
	if err != nil {
		return nil, err
	}

	var options []sepa.TransactionOptions
	for rowIndex, row := range rows[1:] {
		if isRowEmpty(row) {
			continue
		}
		rowMap := make(map[string]string, len(headers))
		for i, header := range headers {
			if i < len(row) {
				rowMap[header] = strings.TrimSpace(row[i])
			} else {
				rowMap[header] = ""
			}
		}
		opts, err := csvparser.MapRow(rowMap)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowIndex+2, err)
		}
		options = append(options, opts)
	}
	return options, nil
}

func isRowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
