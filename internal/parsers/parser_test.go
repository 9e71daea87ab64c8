package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"catalog.xlsx", false},
		{"Catalog.XLSM", false},
		{"catalog.csv", false},
		{"export.txt", false},
		{"catalog.xml", true},
		{"catalog", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			p, err := ForFile(tt.filename, Options{})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, p)
		})
	}
}

func TestParseFileCSV(t *testing.T) {
	res, err := ParseFile("catalog.csv", []byte("Product Name,Crop\nGreen Okra,Okra\n"), Options{})
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "Okra", res.Records[0].Map()["Crop"])
}
