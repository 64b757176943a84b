package catalog

import (
	"math"
	"net/url"
	"strings"
)

// NormalizeSlug URL-decodes, trims and lowercases a requested category slug.
func NormalizeSlug(s string) string {
	if decoded, err := url.QueryUnescape(s); err == nil {
		s = decoded
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// ResolveKey maps a requested category slug to the best matching key actually
// present in the index. Menu links and bookmarks keep pointing at slugs from
// older index generations; this keeps them working without a redirect table.
//
// Order, first hit wins: exact match, a fixed list of prefix rewrites, then a
// token-overlap fuzzy fallback. The fuzzy pass requires at least
// max(2, ceil(tokens*0.6)) matching tokens; ties go to the first maximal key
// in index document order. Returns ok=false when nothing clears the
// threshold so the caller can render an explicit not-found state.
func ResolveKey(ix *Index, rawSlug string) (string, bool) {
	if ix == nil {
		return "", false
	}

	slug := NormalizeSlug(rawSlug)
	if slug == "" {
		return "", false
	}

	if ix.Has(slug) {
		return slug, true
	}

	// Prefix rewrites that survived past category regenerations.
	var candidates []string
	if rest, ok := strings.CutPrefix(slug, "women-clothing-"); ok {
		candidates = append(candidates, "women-"+rest)
	}
	if rest, ok := strings.CutPrefix(slug, "clothing-"); ok {
		candidates = append(candidates, rest)
	}
	for _, candidate := range candidates {
		if candidate != "" && ix.Has(candidate) {
			return candidate, true
		}
	}

	tokens := splitTokens(slug)
	if len(tokens) == 0 {
		return "", false
	}
	required := max(2, int(math.Ceil(float64(len(tokens))*0.6)))

	bestKey := ""
	bestScore := 0
	for _, k := range ix.Keys() {
		kk := NormalizeSlug(k)
		score := 0
		for _, t := range tokens {
			if strings.Contains(kk, t) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestKey = k
		}
	}

	if bestKey != "" && bestScore >= required {
		return bestKey, true
	}
	return "", false
}

func splitTokens(slug string) []string {
	parts := strings.Split(slug, "-")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
