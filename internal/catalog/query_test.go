package catalog

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilterState_Defaults(t *testing.T) {
	st := ParseFilterState(url.Values{})

	assert.Equal(t, "", st.Search)
	assert.Equal(t, SortFeatured, st.Sort)
	assert.Equal(t, 1, st.Page)
	assert.Nil(t, st.MinPrice)
	assert.Nil(t, st.MaxPrice)
	assert.Nil(t, st.MinRating)
	assert.Empty(t, st.Brands)
}

func TestParseFilterState_UnparseableNumbersAreUnset(t *testing.T) {
	q := url.Values{}
	q.Set("min_price", "cheap")
	q.Set("max_price", "")
	q.Set("min_rating", "four")
	q.Set("page", "minus two")

	st := ParseFilterState(q)
	assert.Nil(t, st.MinPrice)
	assert.Nil(t, st.MaxPrice)
	assert.Nil(t, st.MinRating)
	assert.Equal(t, 1, st.Page)
}

func TestParseFilterState_Brands(t *testing.T) {
	q := url.Values{}
	q.Set("brand", "Acme, Borealis ,,Cusp")

	st := ParseFilterState(q)
	assert.Equal(t, []string{"Acme", "Borealis", "Cusp"}, st.Brands)
}

func TestFilterState_RoundTrip(t *testing.T) {
	states := []FilterState{
		{Sort: SortFeatured, Page: 1},
		{Search: "denim jacket", Sort: SortFeatured, Page: 1},
		{Sort: SortPriceLow, Page: 1},
		{Sort: SortFeatured, Page: 7},
		{Sort: SortFeatured, Page: 1, MinPrice: f(25)},
		{Sort: SortFeatured, Page: 1, MaxPrice: f(99.5)},
		{Sort: SortFeatured, Page: 1, MinRating: f(4)},
		{Sort: SortFeatured, Page: 1, Brands: []string{"Acme"}},
		{
			Search:    "boots",
			Sort:      SortRatingDesc,
			Page:      3,
			MinPrice:  f(25),
			MaxPrice:  f(100),
			MinRating: f(3),
			Brands:    []string{"Acme", "Borealis"},
		},
	}

	for _, st := range states {
		decoded := ParseFilterState(st.Values())
		require.Equal(t, st, decoded, "state %+v", st)
	}
}

func TestFilterState_ValuesNormalizesZeroValues(t *testing.T) {
	q := FilterState{}.Values()

	assert.Equal(t, SortFeatured, q.Get("sort"))
	assert.Equal(t, "1", q.Get("page"))
	assert.False(t, q.Has("q"))
	assert.False(t, q.Has("brand"))
	assert.False(t, q.Has("min_price"))
}

func TestFilterState_ResetPage(t *testing.T) {
	st := FilterState{Sort: SortPriceLow, Page: 9, Search: "hat"}

	reset := st.ResetPage()
	assert.Equal(t, 1, reset.Page)
	assert.Equal(t, st.Search, reset.Search)
	// Original is untouched.
	assert.Equal(t, 9, st.Page)
}
