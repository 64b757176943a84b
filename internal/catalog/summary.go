package catalog

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Summary is the denormalized, display-oriented product record carried by the
// flat summary index. Price, rating and the image fields are left loosely
// typed because the index has been generated by several different scraper
// versions and the shapes drifted between them.
type Summary struct {
	Handle string `json:"handle,omitempty"`
	Slug   string `json:"slug,omitempty"`
	Asin   string `json:"asin,omitempty"`
	ID     string `json:"id,omitempty"`

	Title string `json:"title,omitempty"`
	Brand string `json:"brand,omitempty"`

	Price  any `json:"price,omitempty"`
	Rating any `json:"rating,omitempty"`

	Image            any `json:"image,omitempty"`
	ImageURL         any `json:"imageUrl,omitempty"`
	Images           any `json:"images,omitempty"`
	GalleryImages    any `json:"gallery_images,omitempty"`
	GalleryImagesAlt any `json:"galleryImages,omitempty"`
}

// Key returns the first non-empty alias, in priority order
// handle > slug > asin > id. Empty means the record is unaddressable.
func (s Summary) Key() string {
	for _, k := range []string{s.Handle, s.Slug, s.Asin, s.ID} {
		if k != "" {
			return k
		}
	}
	return ""
}

// Stub builds the synthetic stand-in used when a category lists a key the
// summary index does not know about. The item keeps its slot in the grid
// instead of silently disappearing.
func Stub(key string) Summary {
	return Summary{Handle: key, Title: key}
}

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// NumberMaybe coerces a price/rating value that may be a JSON number or a
// string with currency symbols ("$1,299.00"). Returns false for anything that
// does not parse to a finite number. Absent is not zero here: range filters
// exclude such items, only sorting falls back to 0.
func NumberMaybe(v any) (float64, bool) {
	switch n := v.(type) {
	case nil:
		return 0, false
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case int:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(nonNumeric.ReplaceAllString(n, ""), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// urlFromMaybeObj accepts a bare URL string or an object carrying one under
// url/src/href.
func urlFromMaybeObj(v any) string {
	switch u := v.(type) {
	case string:
		return u
	case map[string]any:
		for _, field := range []string{"url", "src", "href"} {
			if s, ok := u[field].(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// firstFromImages handles the images-collection shapes: a single string, a
// []string, a []{url}, or a rare nested {images:[...]} wrapper.
func firstFromImages(v any) string {
	switch imgs := v.(type) {
	case string:
		return imgs
	case []any:
		if len(imgs) == 0 {
			return ""
		}
		if s, ok := imgs[0].(string); ok {
			return s
		}
		if m, ok := imgs[0].(map[string]any); ok {
			if s, ok := m["url"].(string); ok {
				return s
			}
		}
	case map[string]any:
		if nested, ok := imgs["images"].([]any); ok {
			return firstFromImages(nested)
		}
	}
	return ""
}

// ImageFromSummary resolves a usable image URL from a summary record,
// first non-empty hit wins.
func ImageFromSummary(s Summary) string {
	if u := urlFromMaybeObj(s.Image); u != "" {
		return u
	}
	if u := urlFromMaybeObj(s.ImageURL); u != "" {
		return u
	}
	for _, v := range []any{s.Images, s.GalleryImages, s.GalleryImagesAlt} {
		if u := firstFromImages(v); u != "" {
			return u
		}
	}
	return ""
}

// detailImageFields is the priority order searched in a full product JSON.
var detailImageFields = []string{
	"image",
	"imageUrl",
	"images",
	"gallery_images",
	"galleryImages",
	"description_images",
	"descriptionImages",
}

// ImageFromDetail extracts an image from a full per-product JSON document.
// The summary index often lacks images entirely; this is what hydration uses.
func ImageFromDetail(detail map[string]any) string {
	if detail == nil {
		return ""
	}

	for _, field := range detailImageFields {
		c := detail[field]
		if u := urlFromMaybeObj(c); u != "" {
			return u
		}
		if u := firstFromImages(c); u != "" {
			return u
		}
	}

	// Amazon-ish variants inside the first image object.
	if imgs, ok := detail["images"].([]any); ok && len(imgs) > 0 {
		if img0, ok := imgs[0].(map[string]any); ok {
			for _, field := range []string{"url", "src", "hiRes", "hires", "large", "largeUrl", "main"} {
				if s, ok := img0[field].(string); ok && s != "" {
					return s
				}
			}
		}
	}

	return ""
}

var genericBrandTokens = map[string]struct{}{
	"women":   {},
	"womens":  {},
	"woman":   {},
	"women’s": {},
	"women's": {},
	"ladies":  {},
	"lady":    {},
	"new":     {},
	"fashion": {},
	"sexy":    {},
	"casual":  {},
	"summer":  {},
	"spring":  {},
	"fall":    {},
	"winter":  {},
}

var (
	sizeToken    = regexp.MustCompile(`(?i)^(xs|s|m|l|xl|xxl|xxxl)$`)
	numericToken = regexp.MustCompile(`^\d+$`)
	marks        = strings.NewReplacer("®", "", "™", "")
	spaces       = regexp.MustCompile(`\s+`)
)

// InferBrand guesses a brand from a title's leading token when the record has
// none. Crude but safe: generic marketing words, sizes and bare numbers are
// rejected rather than shown as a fake brand facet.
func InferBrand(title string) string {
	cleaned := strings.TrimSpace(spaces.ReplaceAllString(marks.Replace(title), " "))
	if cleaned == "" {
		return ""
	}

	first := strings.Fields(cleaned)[0]
	if _, generic := genericBrandTokens[strings.ToLower(first)]; generic {
		return ""
	}
	if sizeToken.MatchString(first) || numericToken.MatchString(first) {
		return ""
	}
	return first
}

// BrandOf returns the explicit brand or the inferred one.
func BrandOf(s Summary) string {
	if b := strings.TrimSpace(s.Brand); b != "" {
		return b
	}
	return InferBrand(s.Title)
}

// TitleizeSlug turns "women-dresses-casual" into "Women Dresses Casual" for
// page headings.
func TitleizeSlug(slug string) string {
	parts := strings.Split(slug, "-")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		out = append(out, strings.ToUpper(p[:1])+p[1:])
	}
	return strings.Join(out, " ")
}
