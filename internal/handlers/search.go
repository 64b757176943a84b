package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shopsphere/storefront/internal/index"
	"github.com/shopsphere/storefront/internal/search"
)

type SearchHandler struct {
	store *index.SearchStore
}

func NewSearchHandler(store *index.SearchStore) *SearchHandler {
	return &SearchHandler{store: store}
}

type SearchResponse struct {
	Query string       `json:"query"`
	Total int          `json:"total"`
	Items []search.Doc `json:"items"`
}

// HandleSearch runs a keyword query over the prebuilt search index.
func (h *SearchHandler) HandleSearch(c echo.Context) error {
	docs, err := h.store.Load(c.Request().Context())
	if err != nil {
		slog.Error("failed to load search index", "error", err)
		return echo.NewHTTPError(http.StatusBadGateway, "failed to load search index")
	}

	q := c.QueryParam("q")
	results := search.Query(docs, q)
	if results == nil {
		results = []search.Doc{}
	}

	return c.JSON(http.StatusOK, SearchResponse{
		Query: q,
		Total: len(results),
		Items: results,
	})
}
