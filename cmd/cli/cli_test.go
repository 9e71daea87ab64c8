package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishiseeds/catalog-service/internal/filter"
	"github.com/krishiseeds/catalog-service/internal/types"
)

func init() {
	nop := zerolog.Nop()
	logger = &nop
}

func writeCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.csv")
	content := "Product Name,Crop,Season,Difficulty,Featured\n" +
		"Hybrid Maize 9120,Hybrid Maize,Kharif,Intermediate,yes\n" +
		"Green Okra,Okra,\"Kharif, Summer\",Beginner,no\n" +
		"GW 496,Wheat,Rabi,Beginner,no\n" +
		",Cotton,Kharif,,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestResolveFormat(t *testing.T) {
	var buf bytes.Buffer
	f, err := resolveFormat("", &buf)
	require.NoError(t, err)
	assert.Equal(t, "json", f, "non-terminal output defaults to json")

	f, err = resolveFormat("TABLE", &buf)
	require.NoError(t, err)
	assert.Equal(t, "table", f)

	_, err = resolveFormat("xml", &buf)
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	loaded, err := loadFile(writeCSV(t), "")
	require.NoError(t, err)

	assert.Equal(t, 4, loaded.Rows)
	assert.Equal(t, 1, loaded.Batch.Skipped)
	require.Len(t, loaded.Batch.Products, 3)

	maize := loaded.Batch.Products[0]
	assert.Equal(t, "hybrid-maize-9120", maize.ID)
	assert.Equal(t, types.CategoryMaize, maize.Category)
	assert.True(t, maize.Featured)

	okra := loaded.Batch.Products[1]
	assert.Equal(t, types.CategoryVegetable, okra.Category)
	assert.Equal(t, []types.Season{types.SeasonMonsoon, types.SeasonSummer}, okra.Seasonality)

	_, err = loadFile(filepath.Join(t.TempDir(), "missing.csv"), "")
	assert.Error(t, err)
}

func TestRunNormalizeJSON(t *testing.T) {
	var out bytes.Buffer
	normalizeCmd.SetOut(&out)
	t.Cleanup(func() { normalizeCmd.SetOut(nil); normalizeOutput = "" })
	normalizeOutput = "json"

	require.NoError(t, runNormalize(normalizeCmd, []string{writeCSV(t)}))

	var products []types.Product
	require.NoError(t, json.Unmarshal(out.Bytes(), &products))
	assert.Len(t, products, 3)
}

func TestRunSearchJSON(t *testing.T) {
	var out bytes.Buffer
	searchCmd.SetOut(&out)
	t.Cleanup(func() {
		searchCmd.SetOut(nil)
		searchOutput, searchSeasons, searchDifficulty, searchSort, searchDir = "", nil, nil, "name", "asc"
	})
	searchOutput = "json"
	searchSeasons = []string{"Monsoon"}
	searchDifficulty = []string{"beginner"}
	searchSort = "name"
	searchDir = "desc"

	require.NoError(t, runSearch(searchCmd, []string{writeCSV(t)}))

	var result filter.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	require.Len(t, result.Products, 1)
	assert.Equal(t, "Green Okra", result.Products[0].Name)
	assert.Equal(t, 3, result.Stats.TotalProducts)
	assert.Equal(t, 1, result.Stats.FilteredCount)
}
