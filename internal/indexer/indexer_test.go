package indexer

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsphere/storefront/internal/catalog"
	"github.com/shopsphere/storefront/internal/search"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func seedDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeFile(t, dir, "aster-dress.json", `{
		"slug": "aster-dress",
		"title": "Aster Casual Dress",
		"brand": "Aster",
		"price": "$29.99",
		"rating": 4.2,
		"category": "Casual",
		"bullet_points": ["Lightweight cotton", "Machine washable"],
		"images": [{"url": "https://img/aster.jpg"}]
	}`)
	writeFile(t, dir, "briar-dress.json", `{
		"slug": "briar-dress",
		"title": "Briar Formal Dress",
		"price": 15
	}`)
	// No title: excluded from both derived indexes.
	writeFile(t, dir, "untitled.json", `{"slug": "untitled", "price": 9}`)
	// Malformed: skipped, not fatal.
	writeFile(t, dir, "broken.json", `{"slug": "broken"`)

	writeFile(t, dir, CategoryIndexFile, `{
		"Clothing, Shoes & Jewelry > Women > Dresses > Casual": ["aster-dress"],
		"Clothing, Shoes & Jewelry > Women > Dresses > Formal": ["briar-dress"]
	}`)

	return dir
}

func TestBuildAll_WritesAllDerivedIndexes(t *testing.T) {
	dir := seedDir(t)
	require.NoError(t, BuildAll(dir))

	for _, name := range []string{SummaryIndexFile, SearchIndexFile, CategoryNormalizedFile} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "missing %s", name)
	}
}

func TestSummaryIndex_Contents(t *testing.T) {
	dir := seedDir(t)
	require.NoError(t, BuildAll(dir))

	data, err := os.ReadFile(filepath.Join(dir, SummaryIndexFile))
	require.NoError(t, err)

	var summaries []catalog.Summary
	require.NoError(t, json.Unmarshal(data, &summaries))
	require.Len(t, summaries, 2)

	assert.Equal(t, "aster-dress", summaries[0].Key())
	assert.Equal(t, "Aster Casual Dress", summaries[0].Title)
	assert.Equal(t, "https://img/aster.jpg", catalog.ImageFromSummary(summaries[0]))

	price, ok := catalog.NumberMaybe(summaries[0].Price)
	require.True(t, ok)
	assert.InDelta(t, 29.99, price, 1e-9)

	// briar has no image anywhere; the summary stays imageless and the grid
	// will lean on hydration instead.
	assert.Equal(t, "briar-dress", summaries[1].Key())
	assert.Equal(t, "", catalog.ImageFromSummary(summaries[1]))
}

func TestSearchIndex_Contents(t *testing.T) {
	dir := seedDir(t)
	require.NoError(t, BuildAll(dir))

	data, err := os.ReadFile(filepath.Join(dir, SearchIndexFile))
	require.NoError(t, err)

	var docs []search.Doc
	require.NoError(t, json.Unmarshal(data, &docs))
	require.Len(t, docs, 2)

	aster := docs[0]
	assert.Equal(t, "aster-dress", aster.Slug)
	// The blob folds in title, brand, category and bullet points, normalized.
	assert.Contains(t, aster.Searchable, "aster casual dress")
	assert.Contains(t, aster.Searchable, "lightweight cotton")
	assert.Contains(t, aster.Searchable, "machine washable")

	got := search.Query(docs, "washable")
	require.Len(t, got, 1)
	assert.Equal(t, "aster-dress", got[0].Slug)
}

func TestNormalizeCategoryIndex_SlugsAndOrder(t *testing.T) {
	dir := seedDir(t)
	require.NoError(t, BuildAll(dir))

	data, err := os.ReadFile(filepath.Join(dir, CategoryNormalizedFile))
	require.NoError(t, err)

	ix, err := catalog.DecodeIndex(bytes.NewReader(data))
	require.NoError(t, err)

	// Root bucket dropped, remaining breadcrumb slugified, source order kept.
	assert.Equal(t, []string{"women-dresses-casual", "women-dresses-formal"}, ix.Keys())
	assert.Equal(t, []string{"aster-dress"}, ix.ProductKeys("women-dresses-casual"))

	var entries map[string]CategoryEntry
	require.NoError(t, json.Unmarshal(data, &entries))
	casual := entries["women-dresses-casual"]
	assert.Equal(t, "Casual", casual.Title)
	assert.Equal(t, []string{"Women", "Dresses", "Casual"}, casual.Breadcrumb)
	assert.Equal(t, 1, casual.Count)
}

func TestNormalizeCategoryIndex_MissingRawIndexIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "solo.json", `{"slug": "solo", "title": "Solo Shirt"}`)

	require.NoError(t, BuildAll(dir))
	_, err := os.Stat(filepath.Join(dir, CategoryNormalizedFile))
	assert.True(t, os.IsNotExist(err))
}

func TestReadProducts_ArrayDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "batch.json", `[
		{"slug": "one", "title": "One"},
		{"slug": "two", "title": "Two"},
		"not an object"
	]`)

	require.NoError(t, BuildAll(dir))

	data, err := os.ReadFile(filepath.Join(dir, SummaryIndexFile))
	require.NoError(t, err)
	var summaries []catalog.Summary
	require.NoError(t, json.Unmarshal(data, &summaries))
	assert.Len(t, summaries, 2)
}

func TestReadProducts_SkipsDerivedIndexes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "real.json", `{"slug": "real", "title": "Real Product"}`)
	require.NoError(t, BuildAll(dir))

	// Rebuild over the freshly written indexes: they must not be re-ingested
	// as products.
	require.NoError(t, BuildAll(dir))

	data, err := os.ReadFile(filepath.Join(dir, SummaryIndexFile))
	require.NoError(t, err)
	var summaries []catalog.Summary
	require.NoError(t, json.Unmarshal(data, &summaries))
	assert.Len(t, summaries, 1)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "women-dresses", Slugify("Women Dresses"))
	assert.Equal(t, "clothing-shoes-jewelry", Slugify("Clothing, Shoes & Jewelry"))
	assert.Equal(t, "t-shirts", Slugify("  T-Shirts  "))
	assert.Equal(t, "", Slugify("  ,&  "))
}
