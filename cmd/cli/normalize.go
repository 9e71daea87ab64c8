package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/krishiseeds/catalog-service/internal/catalog"
	"github.com/krishiseeds/catalog-service/internal/parsers"
	"github.com/krishiseeds/catalog-service/internal/types"
)

var (
	normalizeSheet  string
	normalizeOutput string
)

// normalizeCmd represents the normalize command
var normalizeCmd = &cobra.Command{
	Use:   "normalize <file>",
	Short: "Normalize a product spreadsheet into canonical products",
	Long: `Parse a local CSV or XLSX product spreadsheet and normalize every row into a
canonical product: ids are slugged from the name, categories inferred from the crop
name, seasons mapped to tags and specifications grouped. Rows without a product name
are skipped.

Output defaults to a table on a terminal and JSON otherwise.`,
	Example: `  catalogctl normalize ./data/products.xlsx
  catalogctl normalize ./data/products.xlsx --sheet "Seeds 2024"
  catalogctl normalize ./data/products.csv --output json > products.json`,
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func init() {
	rootCmd.AddCommand(normalizeCmd)

	normalizeCmd.Flags().StringVar(&normalizeSheet, "sheet", "", "XLSX sheet name (default: first sheet)")
	normalizeCmd.Flags().StringVarP(&normalizeOutput, "output", "o", "", "Output format: table or json")
}

// loadedFile is a parsed and normalized spreadsheet
type loadedFile struct {
	Rows     int
	Batch    catalog.BatchResult
	Warnings []types.ParseWarning
}

// loadFile parses and normalizes a local spreadsheet
func loadFile(path, sheet string) (*loadedFile, error) {
	logger.Info().Str("file", path).Msg("Reading file")
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	result, err := parsers.ParseFile(path, content, parsers.Options{Sheet: sheet})
	if err != nil {
		return nil, fmt.Errorf("parse failed: %w", err)
	}
	if result.HasFatalError() {
		return nil, fmt.Errorf("parse failed: %s", result.Errors[0].Message)
	}

	batch := catalog.NewNormalizer().NormalizeAll(result.Records)
	logger.Info().
		Int("rows", len(result.Records)).
		Int("products", len(batch.Products)).
		Int("skipped", batch.Skipped).
		Msg("File normalized")

	warnings := append(append([]types.ParseWarning{}, result.Warnings...), batch.Warnings...)
	return &loadedFile{Rows: len(result.Records), Batch: batch, Warnings: warnings}, nil
}

func runNormalize(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	format, err := resolveFormat(normalizeOutput, out)
	if err != nil {
		return err
	}

	loaded, err := loadFile(args[0], normalizeSheet)
	if err != nil {
		return err
	}

	if format == "json" {
		return writeJSON(out, loaded.Batch.Products)
	}

	fmt.Fprintf(out, "\n%s - %s\n\n",
		headerStyle.Render("Normalized products"),
		cyanStyle.Render(fmt.Sprintf("%d from %d rows, %d skipped", len(loaded.Batch.Products), loaded.Rows, loaded.Batch.Skipped)),
	)
	printProducts(out, loaded.Batch.Products)
	printWarnings(out, loaded.Warnings)
	return nil
}
