package search

import (
	"regexp"
	"sort"
	"strings"
)

// Doc is one entry of the prebuilt keyword index. Searchable is a
// pre-normalized blob (title + brand + category + bullet points) produced by
// the indexer so queries never re-normalize full documents.
type Doc struct {
	Asin     string `json:"asin,omitempty"`
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Brand    string `json:"brand,omitempty"`
	Category string `json:"category,omitempty"`
	Image    string `json:"image,omitempty"`

	Searchable string `json:"searchable"`
}

// Limit caps how many results a query returns.
const Limit = 60

var nonAlnum = regexp.MustCompile(`[^a-z0-9\s]+`)
var multiSpace = regexp.MustCompile(`\s+`)

// Normalize lowercases and strips everything but letters, digits and single
// spaces. The same function builds the Searchable blobs at index time.
func Normalize(s string) string {
	s = nonAlnum.ReplaceAllString(strings.ToLower(s), " ")
	return strings.TrimSpace(multiSpace.ReplaceAllString(s, " "))
}

// Tokenize splits a raw query into normalized tokens.
func Tokenize(q string) []string {
	return strings.Fields(Normalize(q))
}

// Query ranks docs against the query tokens. Per token: +3 for a title hit,
// +2 for brand or category, +1 for the searchable blob. Zero-score docs are
// dropped, ties keep index order, at most Limit results come back. An empty
// query returns nothing.
func Query(docs []Doc, q string) []Doc {
	tokens := Tokenize(q)
	if len(tokens) == 0 {
		return nil
	}

	type scored struct {
		doc   Doc
		score int
	}

	matches := make([]scored, 0, len(docs))
	for _, d := range docs {
		titleN := Normalize(d.Title)
		brandN := Normalize(d.Brand)
		categoryN := Normalize(d.Category)

		score := 0
		for _, t := range tokens {
			if strings.Contains(titleN, t) {
				score += 3
			}
			if strings.Contains(brandN, t) || strings.Contains(categoryN, t) {
				score += 2
			}
			if strings.Contains(d.Searchable, t) {
				score += 1
			}
		}
		if score > 0 {
			matches = append(matches, scored{doc: d, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if len(matches) > Limit {
		matches = matches[:Limit]
	}

	out := make([]Doc, len(matches))
	for i, m := range matches {
		out[i] = m.doc
	}
	return out
}
