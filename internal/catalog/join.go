package catalog

// Lookup resolves any product alias to its summary.
type Lookup map[string]Summary

// BuildLookup indexes summaries by every alias they carry (handle, slug,
// asin, id). First writer wins per alias; later duplicates are ignored.
func BuildLookup(index []Summary) Lookup {
	m := make(Lookup, len(index))
	for _, s := range index {
		for _, alias := range []string{s.Handle, s.Slug, s.Asin, s.ID} {
			if alias == "" {
				continue
			}
			if _, taken := m[alias]; !taken {
				m[alias] = s
			}
		}
	}
	return m
}

// ResolveProducts joins category keys against the summary lookup. Output
// length and order always match the input keys; a key with no summary
// degrades to a stub so the category never silently loses a listed item.
func ResolveProducts(keys []string, lookup Lookup) []Summary {
	out := make([]Summary, len(keys))
	for i, k := range keys {
		if s, ok := lookup[k]; ok {
			out[i] = s
		} else {
			out[i] = Stub(k)
		}
	}
	return out
}
