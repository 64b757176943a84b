// Seeds a sample catalog: per-product JSON files, a raw breadcrumb category
// index, then every derived index via the indexer. Useful for local dev when
// no scraped catalog is around.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/shopsphere/storefront/internal/indexer"
)

const productsPerCategory = 60

var categories = []string{
	"Clothing, Shoes & Jewelry > Women > Dresses > Casual",
	"Clothing, Shoes & Jewelry > Women > Dresses > Formal",
	"Clothing, Shoes & Jewelry > Women > Tops > Blouses",
	"Clothing, Shoes & Jewelry > Women > Shoes > Sandals",
	"Clothing, Shoes & Jewelry > Men > Shirts > T-Shirts",
	"Clothing, Shoes & Jewelry > Men > Shoes > Sneakers",
}

func main() {
	gofakeit.Seed(42)

	publicDir := "./public"
	if len(os.Args) > 1 {
		publicDir = os.Args[1]
	}
	productsDir := filepath.Join(publicDir, "products")
	if err := os.MkdirAll(productsDir, 0o755); err != nil {
		slog.Error("failed to create products dir", "error", err)
		os.Exit(1)
	}

	var indexBuf bytes.Buffer
	indexBuf.WriteString("{\n")

	for ci, breadcrumb := range categories {
		parts := strings.Split(breadcrumb, " > ")
		leaf := parts[len(parts)-1]

		keys := make([]string, 0, productsPerCategory)
		for i := 0; i < productsPerCategory; i++ {
			slug := seedSlug(leaf)

			doc := map[string]any{
				"slug":     slug,
				"title":    fmt.Sprintf("%s %s %s", gofakeit.Company(), gofakeit.AdjectiveDescriptive(), leaf),
				"brand":    gofakeit.Company(),
				"price":    fmt.Sprintf("$%.2f", gofakeit.Price(8, 180)),
				"rating":   float64(gofakeit.Number(20, 50)) / 10,
				"category": leaf,
				"bullet_points": []string{
					gofakeit.Sentence(8),
					gofakeit.Sentence(8),
				},
			}
			// Leave a share of products without images so hydration has
			// something to do against the full documents.
			if gofakeit.Number(0, 9) < 7 {
				doc["images"] = []map[string]any{
					{"url": gofakeit.ImageURL(640, 480), "hiRes": gofakeit.ImageURL(1280, 960)},
				}
			}

			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				slog.Error("failed to marshal product", "slug", slug, "error", err)
				os.Exit(1)
			}
			if err := os.WriteFile(filepath.Join(productsDir, slug+".json"), data, 0o644); err != nil {
				slog.Error("failed to write product", "slug", slug, "error", err)
				os.Exit(1)
			}
			keys = append(keys, slug)
		}

		// Hand-assembled so the raw index keeps category declaration order;
		// a marshaled map would come out alphabetical.
		keyJSON, _ := json.Marshal(breadcrumb)
		valJSON, _ := json.MarshalIndent(keys, "  ", "  ")
		indexBuf.WriteString("  ")
		indexBuf.Write(keyJSON)
		indexBuf.WriteString(": ")
		indexBuf.Write(valJSON)
		if ci < len(categories)-1 {
			indexBuf.WriteString(",")
		}
		indexBuf.WriteString("\n")
	}
	indexBuf.WriteString("}\n")

	if err := os.WriteFile(filepath.Join(productsDir, indexer.CategoryIndexFile), indexBuf.Bytes(), 0o644); err != nil {
		slog.Error("failed to write category index", "error", err)
		os.Exit(1)
	}

	if err := indexer.BuildAll(productsDir); err != nil {
		slog.Error("failed to build indexes", "error", err)
		os.Exit(1)
	}

	slog.Info("seeded catalog",
		"dir", productsDir,
		"categories", len(categories),
		"products", len(categories)*productsPerCategory,
	)
}

func seedSlug(leaf string) string {
	slug := fmt.Sprintf("%s-%s-%d",
		gofakeit.Company(),
		leaf,
		gofakeit.Number(1000, 9999),
	)
	slug = strings.ToLower(slug)
	slug = strings.ReplaceAll(slug, ",", "")
	slug = strings.ReplaceAll(slug, "'", "")
	slug = strings.ReplaceAll(slug, " ", "-")
	return slug
}
