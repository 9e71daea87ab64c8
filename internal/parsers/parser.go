// Package parsers reads catalog spreadsheets into raw records
package parsers

import (
	"fmt"

	"github.com/krishiseeds/catalog-service/internal/parsers/csv"
	"github.com/krishiseeds/catalog-service/internal/parsers/xlsx"
	"github.com/krishiseeds/catalog-service/internal/types"
)

// Parser reads one file into raw records
type Parser interface {
	Parse(content []byte, filename string) (*types.ParseResult, error)
}

// Options configures parser selection
type Options struct {
	// Sheet selects the workbook sheet (name or 0-based index) for XLSX files
	Sheet interface{}
}

// ForFile returns a parser for the file's extension
func ForFile(filename string, opts Options) (Parser, error) {
	switch types.DetectFileType(filename) {
	case types.FileTypeXLSX:
		o := xlsx.DefaultOptions()
		o.SheetNameOrIndex = opts.Sheet
		return xlsx.NewParser(o), nil
	case types.FileTypeCSV:
		return csv.NewParser(csv.DefaultOptions()), nil
	default:
		return nil, fmt.Errorf("unsupported catalog file type: %s", filename)
	}
}

// ParseFile selects a parser by extension and parses content
func ParseFile(filename string, content []byte, opts Options) (*types.ParseResult, error) {
	p, err := ForFile(filename, opts)
	if err != nil {
		return nil, err
	}
	return p.Parse(content, filename)
}
