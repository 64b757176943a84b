package catalog

import (
	"net/url"
	"strconv"
	"strings"
)

// ParseFilterState reads a FilterState from URL query parameters. Unparseable
// numbers are treated as unset, never as zero. The page parameter is floored
// at 1 here; the upper clamp needs the filtered total and happens in Apply.
func ParseFilterState(q url.Values) FilterState {
	st := FilterState{
		Search: q.Get("q"),
		Sort:   q.Get("sort"),
		Page:   1,
	}
	if st.Sort == "" {
		st.Sort = SortFeatured
	}

	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 1 {
		st.Page = p
	}

	st.MinPrice = floatParam(q, "min_price")
	st.MaxPrice = floatParam(q, "max_price")
	st.MinRating = floatParam(q, "min_rating")

	if brands := q.Get("brand"); brands != "" {
		for _, b := range strings.Split(brands, ",") {
			if b = strings.TrimSpace(b); b != "" {
				st.Brands = append(st.Brands, b)
			}
		}
	}

	return st
}

// Values encodes the state back to query parameters. Sort and page are always
// written (the pages keep them pinned in the URL); everything else only when
// set, so cleared filters drop out of the address bar.
func (st FilterState) Values() url.Values {
	q := url.Values{}

	if st.Search != "" {
		q.Set("q", st.Search)
	}

	sortMode := st.Sort
	if sortMode == "" {
		sortMode = SortFeatured
	}
	q.Set("sort", sortMode)

	page := st.Page
	if page < 1 {
		page = 1
	}
	q.Set("page", strconv.Itoa(page))

	setFloat(q, "min_price", st.MinPrice)
	setFloat(q, "max_price", st.MaxPrice)
	setFloat(q, "min_rating", st.MinRating)

	if len(st.Brands) > 0 {
		q.Set("brand", strings.Join(st.Brands, ","))
	}

	return q
}

// ResetPage returns a copy with the page rewound to 1. Every filter change
// goes through this so a narrowed result set never starts on a stale page.
func (st FilterState) ResetPage() FilterState {
	st.Page = 1
	return st
}

func floatParam(q url.Values, key string) *float64 {
	raw := q.Get(key)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

func setFloat(q url.Values, key string, v *float64) {
	if v == nil {
		return
	}
	q.Set(key, strconv.FormatFloat(*v, 'f', -1, 64))
}
