package index

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"

	"github.com/shopsphere/storefront/internal/catalog"
	"github.com/shopsphere/storefront/internal/search"
)

// Conventional static locations, primary first. The /static tree is where
// older deployments kept the catalog; probing it keeps those installs alive.
var (
	productIndexPaths = []string{
		"/products/_index.json",
		"/static/products/_index.json",
	}
	categoryIndexPaths = []string{
		"/products/_category_index_normalized.json",
		"/static/products/_category_index_normalized.json",
		"/products/_category_index.json",
		"/static/products/_category_index.json",
	}
	searchIndexPaths = []string{
		"/products/search_index.json",
		"/static/products/search_index.json",
	}
)

// ProductStore loads and caches the flat product summary index.
type ProductStore struct {
	client *Client

	mu        sync.Mutex
	summaries []catalog.Summary
	loaded    bool
}

func NewProductStore(client *Client) *ProductStore {
	return &ProductStore{client: client}
}

func (s *ProductStore) Load(ctx context.Context) ([]catalog.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.summaries, nil
	}

	var summaries []catalog.Summary
	err := s.client.FetchFirst(ctx, productIndexPaths, func(r io.Reader) error {
		return json.NewDecoder(r).Decode(&summaries)
	})
	if err != nil {
		return nil, &LoadError{Resource: "product index", Err: err}
	}

	s.summaries = summaries
	s.loaded = true
	slog.Debug("product index loaded", "products", len(summaries))
	return s.summaries, nil
}

func (s *ProductStore) Invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.summaries = nil
	s.mu.Unlock()
}

// CategoryStore loads and caches the category -> product-keys index,
// preserving document order (the fuzzy resolver's tie-break needs it).
type CategoryStore struct {
	client *Client

	mu     sync.Mutex
	index  *catalog.Index
	loaded bool
}

func NewCategoryStore(client *Client) *CategoryStore {
	return &CategoryStore{client: client}
}

func (s *CategoryStore) Load(ctx context.Context) (*catalog.Index, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.index, nil
	}

	var ix *catalog.Index
	err := s.client.FetchFirst(ctx, categoryIndexPaths, func(r io.Reader) error {
		decoded, err := catalog.DecodeIndex(r)
		if err != nil {
			return err
		}
		ix = decoded
		return nil
	})
	if err != nil {
		return nil, &LoadError{Resource: "category index", Err: err}
	}

	s.index = ix
	s.loaded = true
	slog.Debug("category index loaded", "categories", ix.Len())
	return s.index, nil
}

func (s *CategoryStore) Invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.index = nil
	s.mu.Unlock()
}

// SearchStore loads and caches the keyword search index.
type SearchStore struct {
	client *Client

	mu     sync.Mutex
	docs   []search.Doc
	loaded bool
}

func NewSearchStore(client *Client) *SearchStore {
	return &SearchStore{client: client}
}

func (s *SearchStore) Load(ctx context.Context) ([]search.Doc, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return s.docs, nil
	}

	var docs []search.Doc
	err := s.client.FetchFirst(ctx, searchIndexPaths, func(r io.Reader) error {
		return json.NewDecoder(r).Decode(&docs)
	})
	if err != nil {
		return nil, &LoadError{Resource: "search index", Err: err}
	}

	s.docs = docs
	s.loaded = true
	slog.Debug("search index loaded", "docs", len(docs))
	return s.docs, nil
}

func (s *SearchStore) Invalidate() {
	s.mu.Lock()
	s.loaded = false
	s.docs = nil
	s.mu.Unlock()
}
