package types

import (
	"sort"
	"strings"
	"time"
)

// FileType represents supported catalog file types
type FileType string

const (
	FileTypeCSV  FileType = "csv"
	FileTypeXLSX FileType = "xlsx"
)

// DetectFileType returns the file type for a filename, or "" if unsupported
func DetectFileType(filename string) FileType {
	lower := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xlsm"):
		return FileTypeXLSX
	case strings.HasSuffix(lower, ".csv"), strings.HasSuffix(lower, ".txt"):
		return FileTypeCSV
	default:
		return ""
	}
}

// Cell is one key/value pair of a raw record
type Cell struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// RawRecord is a loosely-keyed source row. Cells keep source column order.
type RawRecord struct {
	Cells     []Cell `json:"cells"`
	RowNumber int    `json:"rowNumber,omitempty"`
}

// FromRow builds a record from a header row and a data row.
// Blank headers are skipped; missing trailing cells read as "".
func FromRow(headers, row []string, rowNumber int) RawRecord {
	rec := RawRecord{Cells: make([]Cell, 0, len(headers)), RowNumber: rowNumber}
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		v := ""
		if i < len(row) {
			v = strings.TrimSpace(row[i])
		}
		rec.Cells = append(rec.Cells, Cell{Key: h, Value: v})
	}
	return rec
}

// FromMap builds a record from a map. Keys are sorted so lookups are deterministic.
func FromMap(m map[string]string) RawRecord {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	rec := RawRecord{Cells: make([]Cell, 0, len(keys))}
	for _, k := range keys {
		rec.Cells = append(rec.Cells, Cell{Key: k, Value: m[k]})
	}
	return rec
}

// Map returns the record as a plain map
func (r RawRecord) Map() map[string]string {
	m := make(map[string]string, len(r.Cells))
	for _, c := range r.Cells {
		m[c.Key] = c.Value
	}
	return m
}

// ParseError represents an error during parsing
type ParseError struct {
	RowNumber     *int    `json:"rowNumber,omitempty"`
	Field         *string `json:"field,omitempty"`
	Message       string  `json:"message"`
	OriginalValue *string `json:"originalValue,omitempty"`
}

// ParseWarning represents a warning during parsing
type ParseWarning struct {
	RowNumber *int    `json:"rowNumber,omitempty"`
	Field     *string `json:"field,omitempty"`
	Message   string  `json:"message"`
}

// ParseResult is the outcome of reading a catalog file into raw records
type ParseResult struct {
	Records   []RawRecord    `json:"records"`
	Headers   []string       `json:"headers"`
	Errors    []ParseError   `json:"errors"`
	Warnings  []ParseWarning `json:"warnings"`
	TotalRows int            `json:"totalRows"`
	ValidRows int            `json:"validRows"`
}

// HasFatalError reports whether the file could not be read at all
func (r *ParseResult) HasFatalError() bool {
	for _, e := range r.Errors {
		if e.RowNumber == nil {
			return true
		}
	}
	return false
}

// Helper functions for creating pointers
func StringPtr(s string) *string {
	return &s
}

func IntPtr(i int) *int {
	return &i
}

func TimePtr(t time.Time) *time.Time {
	return &t
}

func BoolPtr(b bool) *bool {
	return &b
}
