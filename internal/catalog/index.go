package catalog

import (
	"encoding/json"
	"fmt"
	"io"
)

// Index is the category -> product-keys mapping. Entries are kept raw until
// asked for because the index has shipped in three shapes over time: a plain
// array of key strings, an array of product-like objects, and a wrapped
// {items:[...]} / {products:[...]} object. Document order of the keys is
// preserved: the fuzzy resolver's first-wins tie-break depends on it, and Go
// map iteration order would not be deterministic.
type Index struct {
	entries map[string]json.RawMessage
	order   []string
}

// DecodeIndex reads a category index object preserving key order.
func DecodeIndex(r io.Reader) (*Index, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read category index: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("category index: expected object, got %v", tok)
	}

	ix := &Index{entries: make(map[string]json.RawMessage)}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read category index key: %w", err)
		}
		key := keyTok.(string)

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("read category index entry %q: %w", key, err)
		}

		if _, dup := ix.entries[key]; !dup {
			ix.order = append(ix.order, key)
		}
		ix.entries[key] = raw
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("read category index: %w", err)
	}
	return ix, nil
}

// NewIndex builds an Index from an already-normalized map, ordered by the
// given key sequence. Used by tests and the indexer.
func NewIndex(keys []string, entries map[string][]string) *Index {
	ix := &Index{entries: make(map[string]json.RawMessage, len(entries))}
	for _, k := range keys {
		raw, _ := json.Marshal(entries[k])
		ix.entries[k] = raw
		ix.order = append(ix.order, k)
	}
	return ix
}

// Len reports the number of categories.
func (ix *Index) Len() int { return len(ix.order) }

// Keys returns the category keys in document order.
func (ix *Index) Keys() []string { return ix.order }

// Has reports whether the category key exists verbatim.
func (ix *Index) Has(key string) bool {
	_, ok := ix.entries[key]
	return ok
}

// ProductKeys normalizes the entry for a category into a deduplicated list of
// product keys, order preserved from the source. Unknown shapes degrade to an
// empty list rather than an error; a malformed entry should not take down
// the whole page.
func (ix *Index) ProductKeys(category string) []string {
	raw, ok := ix.entries[category]
	if !ok {
		return nil
	}
	return dedupe(extractKeys(raw))
}

// extractKeys reduces one raw category entry to product keys. The three
// accepted shapes are tried as tagged variants, not sniffed field by field.
func extractKeys(raw json.RawMessage) []string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return keysFromAny(v)
}

func keysFromAny(v any) []string {
	switch entry := v.(type) {
	case []any:
		keys := make([]string, 0, len(entry))
		for _, item := range entry {
			switch it := item.(type) {
			case string:
				if it != "" {
					keys = append(keys, it)
				}
			case map[string]any:
				// Older builds: array of product-ish objects.
				for _, alias := range []string{"handle", "slug", "asin", "id"} {
					if s, ok := it[alias].(string); ok && s != "" {
						keys = append(keys, s)
						break
					}
				}
			}
		}
		return keys
	case map[string]any:
		// Wrapped builds: {items:[...]} or {products:[...]}.
		if items, ok := entry["items"].([]any); ok {
			return keysFromAny(items)
		}
		if products, ok := entry["products"].([]any); ok {
			return keysFromAny(products)
		}
	}
	return nil
}

func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
