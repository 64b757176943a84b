// Rebuilds the derived catalog indexes (_index.json,
// _category_index_normalized.json, search_index.json) from the per-product
// JSON files. Run after dropping new product files into public/products.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shopsphere/storefront/internal/indexer"
)

func main() {
	publicDir := "./public"
	if len(os.Args) > 1 {
		publicDir = os.Args[1]
	}
	productsDir := filepath.Join(publicDir, "products")

	if err := indexer.BuildAll(productsDir); err != nil {
		slog.Error("failed to build indexes", "dir", productsDir, "error", err)
		os.Exit(1)
	}
	slog.Info("indexes rebuilt", "dir", productsDir)
}
