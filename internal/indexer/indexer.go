// Package indexer rebuilds the static catalog indexes from the per-product
// JSON files: the flat summary index the grid joins against, the normalized
// category index keyed by slug, and the keyword search index.
package indexer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/shopsphere/storefront/internal/catalog"
	"github.com/shopsphere/storefront/internal/search"
)

const (
	SummaryIndexFile       = "_index.json"
	CategoryIndexFile      = "_category_index.json"
	CategoryNormalizedFile = "_category_index_normalized.json"
	SearchIndexFile        = "search_index.json"

	amazonRootBucket = "Clothing, Shoes & Jewelry"
)

// CategoryEntry is one normalized category: slug key plus enough metadata for
// breadcrumbs without another lookup.
type CategoryEntry struct {
	Slug       string   `json:"slug"`
	Title      string   `json:"title"`
	Breadcrumb []string `json:"breadcrumb"`
	Count      int      `json:"count"`
	Items      []string `json:"items"`
}

// BuildAll regenerates every derived index under productsDir.
func BuildAll(productsDir string) error {
	products, err := readProducts(productsDir)
	if err != nil {
		return err
	}

	if err := writeSummaryIndex(productsDir, products); err != nil {
		return err
	}
	if err := writeSearchIndex(productsDir, products); err != nil {
		return err
	}
	if err := NormalizeCategoryIndex(productsDir); err != nil {
		return err
	}
	return nil
}

type productFile struct {
	slug string
	doc  map[string]any
}

// readProducts loads every per-product JSON document, skipping the derived
// index files themselves. A file may hold a single object or an array of
// objects; unreadable files are skipped, not fatal.
func readProducts(dir string) ([]productFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read products dir: %w", err)
	}

	var out []productFile
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		if strings.HasPrefix(name, "_") || name == SearchIndexFile {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			slog.Warn("skipping unreadable product file", "file", name, "error", err)
			continue
		}

		fileSlug := strings.TrimSuffix(name, ".json")
		var v any
		if err := json.Unmarshal(data, &v); err != nil {
			slog.Warn("skipping malformed product file", "file", name, "error", err)
			continue
		}

		switch doc := v.(type) {
		case map[string]any:
			out = append(out, productFile{slug: fileSlug, doc: doc})
		case []any:
			for _, item := range doc {
				if m, ok := item.(map[string]any); ok {
					out = append(out, productFile{slug: fileSlug, doc: m})
				}
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].slug < out[j].slug })
	return out, nil
}

func stringField(doc map[string]any, fields ...string) string {
	for _, f := range fields {
		if s, ok := doc[f].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func productKey(p productFile) string {
	if k := stringField(p.doc, "slug", "handle", "asin", "id"); k != "" {
		return k
	}
	return p.slug
}

func writeSummaryIndex(dir string, products []productFile) error {
	summaries := make([]catalog.Summary, 0, len(products))
	for _, p := range products {
		title := stringField(p.doc, "title")
		if title == "" {
			continue
		}
		summaries = append(summaries, catalog.Summary{
			Slug:   productKey(p),
			Title:  title,
			Brand:  stringField(p.doc, "brand"),
			Price:  p.doc["price"],
			Rating: p.doc["rating"],
			Image:  catalog.ImageFromDetail(p.doc),
		})
	}

	slog.Info("writing summary index", "products", len(summaries))
	return writeJSON(filepath.Join(dir, SummaryIndexFile), summaries)
}

func writeSearchIndex(dir string, products []productFile) error {
	docs := make([]search.Doc, 0, len(products))
	for _, p := range products {
		title := stringField(p.doc, "title")
		if title == "" {
			continue
		}

		var bullets []string
		if bp, ok := p.doc["bullet_points"].([]any); ok {
			for _, b := range bp {
				if s, ok := b.(string); ok {
					bullets = append(bullets, s)
				}
			}
		}

		brand := stringField(p.doc, "brand")
		category := stringField(p.doc, "category")
		searchable := search.Normalize(strings.Join(append([]string{title, brand, category}, bullets...), " "))

		docs = append(docs, search.Doc{
			Asin:       stringField(p.doc, "asin"),
			Slug:       productKey(p),
			Title:      title,
			Brand:      brand,
			Category:   category,
			Image:      catalog.ImageFromDetail(p.doc),
			Searchable: searchable,
		})
	}

	slog.Info("writing search index", "docs", len(docs))
	return writeJSON(filepath.Join(dir, SearchIndexFile), docs)
}

var slugStrip = regexp.MustCompile(`[,&]`)
var slugSpaces = regexp.MustCompile(`\s+`)

// Slugify turns a breadcrumb fragment like "Women > Dresses" into
// "women-dresses".
func Slugify(s string) string {
	s = slugStrip.ReplaceAllString(strings.ToLower(s), "")
	s = slugSpaces.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// NormalizeCategoryIndex rewrites the raw breadcrumb-keyed category index
// ("Clothing, Shoes & Jewelry > Women > Dresses > Casual") into the slug-keyed
// form the pages consume. Source document order is preserved in the output;
// the resolver's tie-break leans on it.
func NormalizeCategoryIndex(dir string) error {
	src := filepath.Join(dir, CategoryIndexFile)
	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("no raw category index, skipping normalization", "file", src)
			return nil
		}
		return fmt.Errorf("read raw category index: %w", err)
	}

	raw, err := catalog.DecodeIndex(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode raw category index: %w", err)
	}

	var order []string
	entries := make(map[string]CategoryEntry)
	for _, fullPath := range raw.Keys() {
		parts := strings.Split(fullPath, ">")
		clean := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p == "" || p == amazonRootBucket {
				continue
			}
			clean = append(clean, p)
		}
		if len(clean) == 0 {
			continue
		}

		leaf := clean[len(clean)-1]
		contextStart := len(clean) - 3
		if contextStart < 0 {
			contextStart = 0
		}
		context := clean[contextStart : len(clean)-1]

		slug := Slugify(strings.Join(append(append([]string{}, context...), leaf), " "))
		items := raw.ProductKeys(fullPath)

		if _, dup := entries[slug]; !dup {
			order = append(order, slug)
		}
		entries[slug] = CategoryEntry{
			Slug:       slug,
			Title:      leaf,
			Breadcrumb: clean,
			Count:      len(items),
			Items:      items,
		}
	}

	slog.Info("writing normalized category index", "categories", len(order))
	return writeOrderedObject(filepath.Join(dir, CategoryNormalizedFile), order, func(key string) any {
		return entries[key]
	})
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, data, 0o644)
}

// writeOrderedObject marshals a JSON object with an explicit key order.
// encoding/json sorts map keys alphabetically, which would throw away the
// source ordering the category index promises.
func writeOrderedObject(path string, keys []string, value func(string) any) error {
	var buf bytes.Buffer
	buf.WriteString("{\n")
	for i, k := range keys {
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return err
		}
		valJSON, err := json.MarshalIndent(value(k), "  ", "  ")
		if err != nil {
			return err
		}
		buf.WriteString("  ")
		buf.Write(keyJSON)
		buf.WriteString(": ")
		buf.Write(valJSON)
		if i < len(keys)-1 {
			buf.WriteString(",")
		}
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
