package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsphere/storefront/internal/index"
)

func newSearchServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/search_index.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"slug": "aster-dress", "title": "Aster Casual Dress", "searchable": "aster casual dress"},
			{"slug": "briar-boots", "title": "Briar Leather Boots", "searchable": "briar leather boots"}
		]`)
	}))
}

func searchRequest(t *testing.T, h *SearchHandler, q string) SearchResponse {
	t.Helper()
	c, rec := NewTestContext(http.MethodGet, "/api/search?q="+q, nil)
	require.NoError(t, h.HandleSearch(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SearchResponse
	decodeResponse(t, rec, &resp)
	return resp
}

func TestHandleSearch(t *testing.T) {
	srv := newSearchServer(t)
	defer srv.Close()
	h := NewSearchHandler(index.NewSearchStore(index.NewClient(srv.URL, srv.Client())))

	resp := searchRequest(t, h, "boots")
	assert.Equal(t, "boots", resp.Query)
	assert.Equal(t, 1, resp.Total)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "briar-boots", resp.Items[0].Slug)
}

func TestHandleSearch_EmptyQuery(t *testing.T) {
	srv := newSearchServer(t)
	defer srv.Close()
	h := NewSearchHandler(index.NewSearchStore(index.NewClient(srv.URL, srv.Client())))

	resp := searchRequest(t, h, "")
	assert.Equal(t, 0, resp.Total)
	// Empty slice, not null, so the page can iterate without a guard.
	assert.NotNil(t, resp.Items)
	assert.Empty(t, resp.Items)
}

func TestHandleSearch_IndexLoadFailureIs502(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	h := NewSearchHandler(index.NewSearchStore(index.NewClient(srv.URL, srv.Client())))

	c, _ := NewTestContext(http.MethodGet, "/api/search?q=boots", nil)
	err := h.HandleSearch(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadGateway, he.Code)
}
