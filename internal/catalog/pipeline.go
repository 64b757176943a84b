package catalog

import (
	"sort"
	"strings"
)

// PageSize is the fixed category grid density.
const PageSize = 48

// Sort modes. Two spellings per mode exist in the wild (old menu links use
// price_low/price_high/rating, newer ones price_asc/price_desc/rating_desc).
const (
	SortFeatured   = "featured"
	SortPriceLow   = "price_low"
	SortPriceAsc   = "price_asc"
	SortPriceHigh  = "price_high"
	SortPriceDesc  = "price_desc"
	SortRating     = "rating"
	SortRatingDesc = "rating_desc"
)

// FilterState is the per-render filter/sort/page selection, derived from URL
// query parameters and written back on change. Nil numeric bounds mean "no
// filter".
type FilterState struct {
	Search    string
	Sort      string
	Page      int
	MinPrice  *float64
	MaxPrice  *float64
	MinRating *float64
	Brands    []string
}

// Page is the result of running the pipeline: one grid page plus the counts
// the pagination controls need.
type Page struct {
	Items      []Summary
	Total      int
	Page       int
	TotalPages int
}

// Apply runs the filter -> sort -> paginate pipeline. Pure and idempotent;
// the stage order is load-bearing because Total counts items after filtering
// and before slicing.
//
// Items whose price/rating does not parse are excluded once the matching
// range filter is active, but sort treats a missing value as 0. That
// asymmetry is long-standing UI behavior and is kept deliberately.
func Apply(items []Summary, st FilterState) Page {
	list := items

	if q := strings.ToLower(strings.TrimSpace(st.Search)); q != "" {
		list = keep(list, func(s Summary) bool {
			return strings.Contains(strings.ToLower(s.Title), q)
		})
	}

	if st.MinRating != nil {
		list = keep(list, func(s Summary) bool {
			r, ok := NumberMaybe(s.Rating)
			return ok && r >= *st.MinRating
		})
	}

	if st.MinPrice != nil {
		list = keep(list, func(s Summary) bool {
			p, ok := NumberMaybe(s.Price)
			return ok && p >= *st.MinPrice
		})
	}
	if st.MaxPrice != nil {
		list = keep(list, func(s Summary) bool {
			p, ok := NumberMaybe(s.Price)
			return ok && p <= *st.MaxPrice
		})
	}

	if len(st.Brands) > 0 {
		selected := make(map[string]struct{}, len(st.Brands))
		for _, b := range st.Brands {
			selected[b] = struct{}{}
		}
		list = keep(list, func(s Summary) bool {
			b := BrandOf(s)
			if b == "" {
				return false
			}
			_, ok := selected[b]
			return ok
		})
	}

	sorted := make([]Summary, len(list))
	copy(sorted, list)
	sortItems(sorted, st.Sort)

	total := len(sorted)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	page := clamp(st.Page, 1, totalPages)

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Items:      sorted[start:end],
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}
}

func sortItems(items []Summary, mode string) {
	switch mode {
	case SortPriceLow, SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return numberOrZero(items[i].Price) < numberOrZero(items[j].Price)
		})
	case SortPriceHigh, SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return numberOrZero(items[i].Price) > numberOrZero(items[j].Price)
		})
	case SortRating, SortRatingDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return numberOrZero(items[i].Rating) > numberOrZero(items[j].Rating)
		})
	default:
		// featured: keep upstream (category) order.
	}
}

func numberOrZero(v any) float64 {
	n, ok := NumberMaybe(v)
	if !ok {
		return 0
	}
	return n
}

func keep(items []Summary, pred func(Summary) bool) []Summary {
	out := make([]Summary, 0, len(items))
	for _, s := range items {
		if pred(s) {
			out = append(out, s)
		}
	}
	return out
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
