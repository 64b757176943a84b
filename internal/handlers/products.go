package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/labstack/echo/v4"

	"github.com/shopsphere/storefront/internal/catalog"
	"github.com/shopsphere/storefront/internal/index"
)

// detailCacheSize bounds memory; full product documents can be large and the
// PDP tends to revisit a small working set.
const detailCacheSize = 512

// ProductHandler serves the product detail page data: the full per-product
// JSON plus a resolved image, behind a bounded LRU.
type ProductHandler struct {
	client *index.Client
	cache  *lru.Cache[string, map[string]any]
}

func NewProductHandler(client *index.Client) (*ProductHandler, error) {
	cache, err := lru.New[string, map[string]any](detailCacheSize)
	if err != nil {
		return nil, err
	}
	return &ProductHandler{client: client, cache: cache}, nil
}

type ProductResponse struct {
	Key    string         `json:"key"`
	Image  string         `json:"image,omitempty"`
	Detail map[string]any `json:"detail"`
}

// HandleProduct returns the full product document for a key, trying the
// primary then the legacy static location.
func (h *ProductHandler) HandleProduct(c echo.Context) error {
	key := c.Param("key")
	if key == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing product key")
	}

	detail, ok := h.cache.Get(key)
	if !ok {
		escaped := url.PathEscape(key)
		paths := []string{
			"/products/" + escaped + ".json",
			"/static/products/" + escaped + ".json",
		}

		err := h.client.FetchFirst(c.Request().Context(), paths, func(r io.Reader) error {
			return json.NewDecoder(r).Decode(&detail)
		})
		if err != nil {
			slog.Debug("product detail not found", "key", key, "error", err)
			return echo.NewHTTPError(http.StatusNotFound, "product not found")
		}
		h.cache.Add(key, detail)
	}

	return c.JSON(http.StatusOK, ProductResponse{
		Key:    key,
		Image:  catalog.ImageFromDetail(detail),
		Detail: detail,
	})
}
