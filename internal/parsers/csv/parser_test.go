package csv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Delimiter
	}{
		{"comma", "a,b,c\n1,2,3\n", DelimiterComma},
		{"semicolon", "a;b;c\n1;2;3\n", DelimiterSemicolon},
		{"tab", "a\tb\tc\n1\t2\t3\n", DelimiterTab},
		{"semicolon with commas in values", "name;note\nOkra;green, tender\nMaize;tall\n", DelimiterSemicolon},
		{"empty", "", DelimiterComma},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectDelimiter(tt.input))
		})
	}
}

func TestParse(t *testing.T) {
	content := "Product Name,Crop Name,Season\n" +
		"Hybrid Maize 9120,Hybrid Maize,\"Kharif, Rabi\"\n" +
		",,\n" +
		"GW 496,Wheat\n"

	res, err := NewParser(DefaultOptions()).Parse([]byte(content), "catalog.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"Product Name", "Crop Name", "Season"}, res.Headers)
	assert.Equal(t, 3, res.TotalRows)
	assert.Equal(t, 2, res.ValidRows)
	require.Len(t, res.Records, 2)

	first := res.Records[0]
	assert.Equal(t, 2, first.RowNumber)
	assert.Equal(t, "Kharif, Rabi", first.Map()["Season"])
	assert.Equal(t, "Product Name", first.Cells[0].Key, "cells keep column order")

	second := res.Records[1]
	assert.Equal(t, 4, second.RowNumber)
	assert.Equal(t, "", second.Map()["Season"], "short rows read missing cells as blank")
}

func TestParseWindows1252Semicolon(t *testing.T) {
	content := []byte("Product Name;Crop Name\nJalape\xf1o Chilli;Chilli\n")

	res, err := NewParser(DefaultOptions()).Parse(content, "catalog.csv")
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "Jalapeño Chilli", res.Records[0].Map()["Product Name"])
}

func TestParseEmpty(t *testing.T) {
	res, err := NewParser(DefaultOptions()).Parse([]byte("\n\n"), "empty.csv")
	require.NoError(t, err)
	assert.Empty(t, res.Records)
	require.Len(t, res.Warnings, 1)
	assert.Contains(t, res.Warnings[0].Message, "empty")
	assert.False(t, res.HasFatalError())
}
