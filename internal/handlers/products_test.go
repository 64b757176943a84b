package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsphere/storefront/internal/index"
)

func TestHandleProduct(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/products/aster-dress.json" {
			http.NotFound(w, r)
			return
		}
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"slug": "aster-dress", "title": "Aster Casual Dress", "image": "https://img/aster.jpg"}`)
	}))
	defer srv.Close()

	h, err := NewProductHandler(index.NewClient(srv.URL, srv.Client()))
	require.NoError(t, err)

	fetch := func() ProductResponse {
		c, rec := NewTestContext(http.MethodGet, "/api/products/:key", nil)
		c.SetParamNames("key")
		c.SetParamValues("aster-dress")
		require.NoError(t, h.HandleProduct(c))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp ProductResponse
		decodeResponse(t, rec, &resp)
		return resp
	}

	resp := fetch()
	assert.Equal(t, "aster-dress", resp.Key)
	assert.Equal(t, "https://img/aster.jpg", resp.Image)
	assert.Equal(t, "Aster Casual Dress", resp.Detail["title"])

	// Second request is answered from the LRU.
	fetch()
	assert.Equal(t, int32(1), hits.Load())
}

func TestHandleProduct_FallsBackToStaticPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/static/products/legacy-item.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"slug": "legacy-item", "title": "Legacy Item"}`)
	}))
	defer srv.Close()

	h, err := NewProductHandler(index.NewClient(srv.URL, srv.Client()))
	require.NoError(t, err)

	c, rec := NewTestContext(http.MethodGet, "/api/products/:key", nil)
	c.SetParamNames("key")
	c.SetParamValues("legacy-item")
	require.NoError(t, h.HandleProduct(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ProductResponse
	decodeResponse(t, rec, &resp)
	assert.Equal(t, "Legacy Item", resp.Detail["title"])
}

func TestHandleProduct_UnknownKeyIs404(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	h, err := NewProductHandler(index.NewClient(srv.URL, srv.Client()))
	require.NoError(t, err)

	c, _ := NewTestContext(http.MethodGet, "/api/products/:key", nil)
	c.SetParamNames("key")
	c.SetParamValues("nope")

	handleErr := h.HandleProduct(c)
	var he *echo.HTTPError
	require.ErrorAs(t, handleErr, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
}
