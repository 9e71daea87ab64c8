package csv

import "github.com/krishiseeds/catalog-service/internal/parsers/charset"

// Delimiter represents supported CSV delimiters
type Delimiter string

const (
	DelimiterComma     Delimiter = ","
	DelimiterSemicolon Delimiter = ";"
	DelimiterTab       Delimiter = "\t"
)

// Options represents CSV parser options. Zero values auto-detect.
type Options struct {
	Delimiter     Delimiter        `json:"delimiter,omitempty"`
	Encoding      charset.Encoding `json:"encoding,omitempty"`
	SkipEmptyRows bool             `json:"skipEmptyRows,omitempty"`
}

// DefaultOptions returns default CSV parser options
func DefaultOptions() Options {
	return Options{SkipEmptyRows: true}
}
