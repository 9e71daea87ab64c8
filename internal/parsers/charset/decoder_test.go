package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// utf16le encodes ASCII text as little-endian UTF-16 with a BOM
func utf16le(s string) []byte {
	out := []byte{0xFF, 0xFE}
	for _, r := range s {
		out = append(out, byte(r), 0)
	}
	return out
}

func TestDetectEncoding(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected Encoding
	}{
		{"plain ascii", []byte("Product Name,Crop"), EncodingUTF8},
		{"utf-8 bom", append([]byte{0xEF, 0xBB, 0xBF}, "a,b"...), EncodingUTF8},
		{"utf-8 multibyte", []byte("Jalapeño"), EncodingUTF8},
		{"utf-16le bom", utf16le("a,b"), EncodingUTF16LE},
		{"utf-16be bom", []byte{0xFE, 0xFF, 0, 'a'}, EncodingUTF16BE},
		{"windows-1252", []byte("Jalape\xf1o"), EncodingWindows1252},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectEncoding(tt.input))
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		enc      Encoding
		expected string
	}{
		{"strips utf-8 bom", append([]byte{0xEF, 0xBB, 0xBF}, "Name"...), "", "Name"},
		{"windows-1252", []byte("Jalape\xf1o"), "", "Jalapeño"},
		{"mislabelled utf-8", []byte("Jalape\xf1o"), EncodingUTF8, "Jalapeño"},
		{"utf-16le", utf16le("Okra,Kharif"), "", "Okra,Kharif"},
		{"iso-8859-1", []byte("Caf\xe9"), EncodingISO88591, "Café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.input, tt.enc)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDecodeUnsupported(t *testing.T) {
	_, err := Decode([]byte{0x80}, Encoding("ebcdic"))
	assert.Error(t, err)
}
