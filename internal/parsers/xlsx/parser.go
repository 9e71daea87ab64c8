package xlsx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/krishiseeds/catalog-service/internal/types"
)

// Options controls how a workbook is read
type Options struct {
	// SheetNameOrIndex selects the sheet (string name or 0-based int). Default: first sheet.
	SheetNameOrIndex interface{} `json:"sheetNameOrIndex,omitempty"`
	// HeaderRow is the 0-based header row. -1 auto-detects the first row with
	// at least MinHeaderCells non-empty cells.
	HeaderRow int `json:"headerRow"`
	// MinHeaderCells is used by header auto-detection
	MinHeaderCells int `json:"minHeaderCells,omitempty"`
	// SkipEmptyRows drops rows where every cell is blank
	SkipEmptyRows bool `json:"skipEmptyRows"`
}

// DefaultOptions returns default XLSX parser options
func DefaultOptions() Options {
	return Options{
		HeaderRow:      -1,
		MinHeaderCells: 2,
		SkipEmptyRows:  true,
	}
}

// Parser reads catalog workbooks into raw records
type Parser struct {
	options Options
}

// NewParser creates a new XLSX parser
func NewParser(options Options) *Parser {
	if options.MinHeaderCells <= 0 {
		options.MinHeaderCells = 1
	}
	return &Parser{options: options}
}

// Parse parses XLSX content. Unreadable workbooks are reported as a
// row-less ParseError rather than a Go error.
func (p *Parser) Parse(content []byte, filename string) (*types.ParseResult, error) {
	result := &types.ParseResult{
		Records:  make([]types.RawRecord, 0),
		Errors:   make([]types.ParseError, 0),
		Warnings: make([]types.ParseWarning, 0),
	}

	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		result.Errors = append(result.Errors, types.ParseError{
			Message: fmt.Sprintf("Failed to parse Excel file %s: %v", filename, err),
		})
		return result, nil
	}
	defer f.Close()

	sheetName, err := p.selectSheet(f)
	if err != nil {
		result.Errors = append(result.Errors, types.ParseError{Message: err.Error()})
		return result, nil
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		result.Errors = append(result.Errors, types.ParseError{
			Message: fmt.Sprintf("Failed to read worksheet: %v", err),
		})
		return result, nil
	}

	if len(rows) == 0 {
		result.Warnings = append(result.Warnings, types.ParseWarning{
			Message: "Excel file is empty",
		})
		return result, nil
	}

	headerRow := p.options.HeaderRow
	if headerRow < 0 {
		headerRow = detectHeaderRow(rows, p.options.MinHeaderCells)
	}
	if headerRow >= len(rows) {
		result.Errors = append(result.Errors, types.ParseError{
			Message: fmt.Sprintf("header row %d not found. Sheet has %d rows", headerRow+1, len(rows)),
		})
		return result, nil
	}

	headers := make([]string, len(rows[headerRow]))
	for i, cell := range rows[headerRow] {
		headers[i] = strings.TrimSpace(cell)
	}
	result.Headers = headers
	result.TotalRows = len(rows) - headerRow - 1

	for i := headerRow + 1; i < len(rows); i++ {
		rawRow := rows[i]
		rowNumber := i + 1 // 1-based for user-facing

		if p.options.SkipEmptyRows && isEmptyRow(rawRow) {
			continue
		}

		if len(rawRow) > len(headers) && !isEmptyRow(rawRow[len(headers):]) {
			rawData, _ := json.Marshal(rawRow)
			result.Warnings = append(result.Warnings, types.ParseWarning{
				RowNumber: types.IntPtr(rowNumber),
				Message:   fmt.Sprintf("row has %d cells beyond the header, ignored: %s", len(rawRow)-len(headers), rawData),
			})
		}

		result.Records = append(result.Records, types.FromRow(headers, rawRow, rowNumber))
	}

	result.ValidRows = len(result.Records)
	return result, nil
}

// selectSheet selects the appropriate sheet from the workbook
func (p *Parser) selectSheet(f *excelize.File) (string, error) {
	sheetList := f.GetSheetList()
	if len(sheetList) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}

	if p.options.SheetNameOrIndex == nil {
		return sheetList[0], nil
	}

	switch v := p.options.SheetNameOrIndex.(type) {
	case int:
		if v < 0 || v >= len(sheetList) {
			return "", fmt.Errorf("sheet index %d not found. Workbook has %d sheets", v, len(sheetList))
		}
		return sheetList[v], nil
	case string:
		if v == "" {
			return sheetList[0], nil
		}
		for _, name := range sheetList {
			if strings.EqualFold(name, v) {
				return name, nil
			}
		}
		return "", fmt.Errorf("sheet %q not found. Available sheets: %s", v, strings.Join(sheetList, ", "))
	default:
		return sheetList[0], nil
	}
}

// detectHeaderRow returns the first row with at least min non-empty cells.
// Catalog sheets often carry a title banner above the real header.
func detectHeaderRow(rows [][]string, min int) int {
	for i, row := range rows {
		filled := 0
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				filled++
			}
		}
		if filled >= min {
			return i
		}
	}
	return 0
}

// isEmptyRow checks if a row is empty
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
