package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummaryKey_AliasPriority(t *testing.T) {
	assert.Equal(t, "h", Summary{Handle: "h", Slug: "s", Asin: "a", ID: "i"}.Key())
	assert.Equal(t, "s", Summary{Slug: "s", Asin: "a", ID: "i"}.Key())
	assert.Equal(t, "a", Summary{Asin: "a", ID: "i"}.Key())
	assert.Equal(t, "i", Summary{ID: "i"}.Key())
	assert.Equal(t, "", Summary{Title: "no key"}.Key())
}

func TestNumberMaybe(t *testing.T) {
	cases := []struct {
		in   any
		want float64
		ok   bool
	}{
		{29.99, 29.99, true},
		{"15", 15, true},
		{"$1,299.00", 1299, true},
		{"  $4.50 ", 4.50, true},
		{"4.5 stars", 4.5, true},
		{"", 0, false},
		{"free", 0, false},
		{nil, 0, false},
		{true, 0, false},
		{[]any{"1"}, 0, false},
	}

	for _, tc := range cases {
		got, ok := NumberMaybe(tc.in)
		assert.Equal(t, tc.ok, ok, "input %v", tc.in)
		if tc.ok {
			assert.InDelta(t, tc.want, got, 1e-9, "input %v", tc.in)
		}
	}
}

func TestImageFromSummary_Shapes(t *testing.T) {
	cases := []struct {
		name string
		in   Summary
		want string
	}{
		{"bare string", Summary{Image: "https://img/a.jpg"}, "https://img/a.jpg"},
		{"url object", Summary{Image: map[string]any{"url": "https://img/b.jpg"}}, "https://img/b.jpg"},
		{"src object", Summary{Image: map[string]any{"src": "https://img/c.jpg"}}, "https://img/c.jpg"},
		{"imageUrl fallback", Summary{ImageURL: "https://img/d.jpg"}, "https://img/d.jpg"},
		{"images string slice", Summary{Images: []any{"https://img/e.jpg", "https://img/x.jpg"}}, "https://img/e.jpg"},
		{"images object slice", Summary{Images: []any{map[string]any{"url": "https://img/f.jpg"}}}, "https://img/f.jpg"},
		{"gallery images", Summary{GalleryImages: []any{"https://img/g.jpg"}}, "https://img/g.jpg"},
		{"image beats images", Summary{Image: "https://img/h.jpg", Images: []any{"https://img/x.jpg"}}, "https://img/h.jpg"},
		{"nothing", Summary{Title: "bare"}, ""},
		{"empty array", Summary{Images: []any{}}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ImageFromSummary(tc.in))
		})
	}
}

func TestImageFromDetail_PrioritizedFields(t *testing.T) {
	// image wins over everything.
	assert.Equal(t, "https://img/main.jpg", ImageFromDetail(map[string]any{
		"image":  "https://img/main.jpg",
		"images": []any{"https://img/other.jpg"},
	}))

	// Amazon-ish nested variants inside images[0].
	assert.Equal(t, "https://img/hires.jpg", ImageFromDetail(map[string]any{
		"images": []any{map[string]any{"hiRes": "https://img/hires.jpg"}},
	}))
	assert.Equal(t, "https://img/large.jpg", ImageFromDetail(map[string]any{
		"images": []any{map[string]any{"large": "https://img/large.jpg"}},
	}))

	// description_images as a last resort.
	assert.Equal(t, "https://img/desc.jpg", ImageFromDetail(map[string]any{
		"description_images": []any{"https://img/desc.jpg"},
	}))

	assert.Equal(t, "", ImageFromDetail(map[string]any{"title": "no images"}))
	assert.Equal(t, "", ImageFromDetail(nil))
}

func TestInferBrand(t *testing.T) {
	assert.Equal(t, "Levi's", InferBrand("Levi's Classic Jeans"))
	assert.Equal(t, "Acme", InferBrand("  Acme®  Waterproof Jacket"))

	// Generic tokens, sizes and numbers are not brands.
	assert.Equal(t, "", InferBrand("Women Summer Dress"))
	assert.Equal(t, "", InferBrand("Casual Shirt"))
	assert.Equal(t, "", InferBrand("XL Hoodie"))
	assert.Equal(t, "", InferBrand("2 Pack Socks"))
	assert.Equal(t, "", InferBrand(""))
}

func TestBrandOf_PrefersExplicit(t *testing.T) {
	assert.Equal(t, "Borealis", BrandOf(Summary{Brand: "Borealis", Title: "Acme Jacket"}))
	assert.Equal(t, "Acme", BrandOf(Summary{Title: "Acme Jacket"}))
	assert.Equal(t, "", BrandOf(Summary{Title: "Winter Jacket"}))
}

func TestTitleizeSlug(t *testing.T) {
	assert.Equal(t, "Women Dresses Casual", TitleizeSlug("women-dresses-casual"))
	assert.Equal(t, "Shoes", TitleizeSlug("--shoes--"))
	assert.Equal(t, "", TitleizeSlug(""))
}
