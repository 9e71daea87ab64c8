package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krishiseeds/catalog-service/internal/database"
)

var (
	importSheet  string
	importDryRun bool
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Normalize a spreadsheet and upsert the products into Postgres",
	Long: `Normalize a spreadsheet and upsert every product into the products table by id.
Existing products keep their view counts and creation time. The schema is created
if it does not exist.`,
	Example: `  catalogctl import ./data/products.xlsx
  catalogctl import ./data/products.xlsx --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importSheet, "sheet", "", "XLSX sheet name (default: first sheet)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Normalize only, do not write to the database")
}

func runImport(cmd *cobra.Command, args []string) error {
	defer database.Close()
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	loaded, err := loadFile(args[0], importSheet)
	if err != nil {
		return err
	}
	printWarnings(out, loaded.Warnings)

	if importDryRun {
		fmt.Fprintf(out, "%s %d products would be imported\n", warningStyle.Render("dry run:"), len(loaded.Batch.Products))
		return nil
	}

	if err := database.EnsureSchema(ctx, database.Pool()); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	n, err := database.NewProductStore(database.Pool()).Upsert(ctx, loaded.Batch.Products)
	if err != nil {
		return fmt.Errorf("import failed after %d products: %w", n, err)
	}

	logger.Info().Int("products", n).Msg("Import complete")
	fmt.Fprintf(out, "%s %d products imported, %d rows skipped\n",
		headerStyle.Render("done:"), n, loaded.Batch.Skipped)
	return nil
}
