package csv

import (
	stdcsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/krishiseeds/catalog-service/internal/parsers/charset"
	"github.com/krishiseeds/catalog-service/internal/types"
)

// Parser implements CSV parsing with encoding and delimiter detection
type Parser struct {
	options Options
}

// NewParser creates a new CSV parser with the given options
func NewParser(options Options) *Parser {
	return &Parser{options: options}
}

// Parse parses CSV content into raw records keyed by the header row
func (p *Parser) Parse(content []byte, filename string) (*types.ParseResult, error) {
	opts := p.options

	if opts.Encoding == "" {
		opts.Encoding = charset.DetectEncoding(content)
	}

	decoded, err := charset.Decode(content, opts.Encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to decode content: %w", err)
	}

	if opts.Delimiter == "" {
		opts.Delimiter = DetectDelimiter(decoded)
	}

	log.Debug().
		Str("file", filename).
		Str("encoding", string(opts.Encoding)).
		Str("delimiter", string(opts.Delimiter)).
		Msg("Parsing CSV")

	result := &types.ParseResult{
		Records:  make([]types.RawRecord, 0),
		Errors:   make([]types.ParseError, 0),
		Warnings: make([]types.ParseWarning, 0),
	}

	r := stdcsv.NewReader(strings.NewReader(decoded))
	r.Comma = []rune(string(opts.Delimiter))[0]
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var headers []string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *stdcsv.ParseError
			if errors.As(err, &pe) {
				result.Errors = append(result.Errors, types.ParseError{
					RowNumber: types.IntPtr(pe.StartLine),
					Message:   fmt.Sprintf("Malformed CSV row: %v", pe.Err),
				})
				continue
			}
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		line, _ := r.FieldPos(0)

		if headers == nil {
			if isEmptyRow(row) {
				continue
			}
			headers = make([]string, len(row))
			for i, h := range row {
				headers[i] = strings.TrimSpace(h)
			}
			result.Headers = headers
			continue
		}

		result.TotalRows++
		if opts.SkipEmptyRows && isEmptyRow(row) {
			continue
		}
		result.Records = append(result.Records, types.FromRow(headers, row, line))
	}

	if headers == nil {
		result.Warnings = append(result.Warnings, types.ParseWarning{
			Message: "CSV file is empty",
		})
	}

	result.ValidRows = len(result.Records)
	return result, nil
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
