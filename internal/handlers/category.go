package handlers

import (
	"log/slog"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/shopsphere/storefront/internal/catalog"
	"github.com/shopsphere/storefront/internal/hydrate"
	"github.com/shopsphere/storefront/internal/index"
)

// CategoryHandler drives the category grid: slug resolution, key -> summary
// join, filter/sort/paginate, then image hydration for the visible page only.
type CategoryHandler struct {
	products   *index.ProductStore
	categories *index.CategoryStore
	hydrator   *hydrate.Hydrator
}

func NewCategoryHandler(products *index.ProductStore, categories *index.CategoryStore, hydrator *hydrate.Hydrator) *CategoryHandler {
	return &CategoryHandler{
		products:   products,
		categories: categories,
		hydrator:   hydrator,
	}
}

// GridItem is one card of the result grid. Price and rating are pointers so
// "unknown" serializes as null instead of a misleading 0.
type GridItem struct {
	Key    string   `json:"key"`
	Title  string   `json:"title"`
	Price  *float64 `json:"price"`
	Rating *float64 `json:"rating"`
	Image  string   `json:"image,omitempty"`
	Brand  string   `json:"brand,omitempty"`
}

type BrandCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type CategoryResponse struct {
	Slug         string       `json:"slug"`
	ResolvedSlug string       `json:"resolved_slug,omitempty"`
	Title        string       `json:"title"`
	Resolved     bool         `json:"resolved"`
	Message      string       `json:"message,omitempty"`
	Total        int          `json:"total"`
	Page         int          `json:"page"`
	TotalPages   int          `json:"total_pages"`
	Sort         string       `json:"sort"`
	Items        []GridItem   `json:"items"`
	Brands       []BrandCount `json:"brands"`
}

// HandleCategory renders one category page as a JSON view-model.
//
// Only a failed index load is fatal (502). An unresolvable slug keeps the
// page shell alive with an explicit not-found notice, and per-item misses
// degrade to stub cards or missing images.
func (h *CategoryHandler) HandleCategory(c echo.Context) error {
	ctx := c.Request().Context()

	ix, err := h.categories.Load(ctx)
	if err != nil {
		slog.Error("failed to load category index", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "failed to load category index")
	}
	summaries, err := h.products.Load(ctx)
	if err != nil {
		slog.Error("failed to load product index", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "failed to load product index")
	}

	slug := catalog.NormalizeSlug(c.Param("slug"))

	resolvedSlug, ok := catalog.ResolveKey(ix, slug)
	if !ok {
		return c.JSON(http.StatusOK, CategoryResponse{
			Slug:     slug,
			Title:    catalog.TitleizeSlug(slug),
			Resolved: false,
			Message:  "No products found for this category. The link may predate the last category regeneration.",
			Page:     1,
			// TotalPages stays 0: nothing to paginate.
			Sort:   catalog.SortFeatured,
			Items:  []GridItem{},
			Brands: []BrandCount{},
		})
	}

	keys := ix.ProductKeys(resolvedSlug)
	lookup := catalog.BuildLookup(summaries)
	items := catalog.ResolveProducts(keys, lookup)

	st := catalog.ParseFilterState(c.QueryParams())
	page := catalog.Apply(items, st)

	h.hydrateVisible(c, page.Items)

	return c.JSON(http.StatusOK, CategoryResponse{
		Slug:         slug,
		ResolvedSlug: resolvedSlug,
		Title:        catalog.TitleizeSlug(resolvedSlug),
		Resolved:     true,
		Total:        page.Total,
		Page:         page.Page,
		TotalPages:   page.TotalPages,
		Sort:         st.Sort,
		Items:        h.gridItems(page.Items),
		Brands:       brandCounts(items),
	})
}

// hydrateVisible fills image gaps for the current page only. The request
// context doubles as the cancellation flag: a client that navigated away
// stops new hydration fetches.
func (h *CategoryHandler) hydrateVisible(c echo.Context, visible []catalog.Summary) {
	var needs []string
	for _, s := range visible {
		key := s.Key()
		if key == "" {
			continue
		}
		if catalog.ImageFromSummary(s) != "" {
			continue
		}
		if _, cached := h.hydrator.Cache().Lookup(key); cached {
			continue
		}
		needs = append(needs, key)
	}
	if len(needs) == 0 {
		return
	}
	h.hydrator.Hydrate(c.Request().Context(), needs)
}

func (h *CategoryHandler) gridItems(summaries []catalog.Summary) []GridItem {
	items := make([]GridItem, 0, len(summaries))
	for _, s := range summaries {
		key := s.Key()
		if key == "" {
			continue
		}

		img := catalog.ImageFromSummary(s)
		if img == "" {
			img, _ = h.hydrator.Cache().Lookup(key)
		}

		items = append(items, GridItem{
			Key:    key,
			Title:  s.Title,
			Price:  floatPtr(s.Price),
			Rating: floatPtr(s.Rating),
			Image:  img,
			Brand:  catalog.BrandOf(s),
		})
	}
	return items
}

// brandCounts builds the brand facet over the whole category (pre-filter),
// so selecting a brand does not erase the other options.
func brandCounts(items []catalog.Summary) []BrandCount {
	counts := make(map[string]int)
	for _, s := range items {
		if b := catalog.BrandOf(s); b != "" {
			counts[b]++
		}
	}

	out := make([]BrandCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, BrandCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func floatPtr(v any) *float64 {
	n, ok := catalog.NumberMaybe(v)
	if !ok {
		return nil
	}
	return &n
}
