// Schema Generator
//
// Generates JSON Schema files from Go types for the storefront's TypeScript
// client. Go is the source of truth for the API types.
//
// Usage:
//
//	go run ./cmd/schema-gen --out ./schemas
//
// Output:
//
//	<out>/catalog.json
//	<out>/search.json
//	<out>/contact.json
//	<out>/admin.json
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/invopop/jsonschema"
	flag "github.com/spf13/pflag"

	"github.com/krishiseeds/catalog-service/internal/filter"
	"github.com/krishiseeds/catalog-service/internal/handlers"
	"github.com/krishiseeds/catalog-service/internal/search"
	"github.com/krishiseeds/catalog-service/internal/types"
)

// SchemaGroup represents a group of related schemas
type SchemaGroup struct {
	Name   string
	Types  []any
	Output string
}

func main() {
	outputDir := flag.StringP("out", "o", "./schemas", "output directory")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	groups := []SchemaGroup{
		{
			Name: "catalog",
			Types: []any{
				// Domain types
				types.Product{},
				types.ProductSummary{},
				types.ProductPatch{},
				// Request types
				handlers.ListProductsRequest{},
				filter.Query{},
				// Response types
				handlers.ListProductsResponse{},
				handlers.CatalogResponse{},
			},
			Output: "catalog.json",
		},
		{
			Name: "search",
			Types: []any{
				handlers.SearchRequest{},
				search.Result{},
			},
			Output: "search.json",
		},
		{
			Name: "contact",
			Types: []any{
				handlers.ContactRequest{},
				handlers.ContactResponse{},
				handlers.VisitRequest{},
			},
			Output: "contact.json",
		},
		{
			Name: "admin",
			Types: []any{
				handlers.LoginRequest{},
				handlers.SessionResponse{},
				handlers.ReloadResponse{},
				handlers.UploadResponse{},
				handlers.HealthResponse{},
			},
			Output: "admin.json",
		},
	}

	for _, group := range groups {
		schema := generateGroupSchema(group)
		outputPath := filepath.Join(*outputDir, group.Output)

		if err := writeSchema(schema, outputPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write %s: %v\n", group.Output, err)
			os.Exit(1)
		}

		fmt.Printf("Generated %s\n", outputPath)
	}

	fmt.Println("Schema generation complete!")
}

// generateGroupSchema creates a combined schema with all types in a group
func generateGroupSchema(group SchemaGroup) map[string]any {
	reflector := &jsonschema.Reflector{
		DoNotReference: false,
		ExpandedStruct: false,
	}

	// Create combined definitions
	definitions := make(map[string]any)

	for _, t := range group.Types {
		schema := reflector.Reflect(t)

		// Get the type name from the schema
		typeName := ""
		if schema.Ref != "" {
			// Extract type name from $ref like "#/$defs/Product"
			typeName = filepath.Base(schema.Ref)
		}

		// Add all definitions from this type's schema
		for name, def := range schema.Definitions {
			definitions[name] = def
		}

		// If there's a main type, add it to definitions too
		if typeName != "" && schema.Definitions[typeName] != nil {
			definitions[typeName] = schema.Definitions[typeName]
		}
	}

	return map[string]any{
		"$schema":     "https://json-schema.org/draft/2020-12/schema",
		"$id":         fmt.Sprintf("https://krishiseeds.example/schemas/%s.json", group.Name),
		"title":       fmt.Sprintf("%s API Types", capitalize(group.Name)),
		"description": fmt.Sprintf("JSON Schema for %s API types generated from Go structs", group.Name),
		"$defs":       definitions,
	}
}

// writeSchema writes a schema to a JSON file
func writeSchema(schema map[string]any, path string) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

func capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
