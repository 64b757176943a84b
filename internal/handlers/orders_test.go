package handlers

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopsphere/storefront/storage"
)

func seedCart(t *testing.T, store *storage.Storage, session string) *CartHandler {
	t.Helper()
	cart := NewCartHandler(store)
	addItem(t, cart, session, AddCartItemRequest{ProductKey: "aster-dress", Title: "Aster Dress", Price: 29.99, Quantity: 2})
	addItem(t, cart, session, AddCartItemRequest{ProductKey: "briar-dress", Title: "Briar Dress", Price: 15, Quantity: 1})
	return cart
}

func placeOrder(t *testing.T, h *OrderHandler, session string) OrderResponse {
	t.Helper()
	c, rec := NewTestContext(http.MethodPost, "/api/orders", nil)
	withSession(c, session)
	require.NoError(t, h.HandleCreateOrder(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var order OrderResponse
	decodeResponse(t, rec, &order)
	return order
}

func TestOrderHandler_CreateFromCart(t *testing.T) {
	store, cleanup := NewTestStorage()
	defer cleanup()
	cart := seedCart(t, store, "sess-1")
	h := NewOrderHandler(store)

	order := placeOrder(t, h, "sess-1")

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, "placed", order.Status)
	assert.InDelta(t, 74.98, order.Total, 1e-9)
	require.Len(t, order.Items, 2)
	assert.Equal(t, "aster-dress", order.Items[0].ProductKey)
	assert.Equal(t, int64(2), order.Items[0].Quantity)

	// Placing the order drains the cart.
	assert.Empty(t, getCart(t, cart, "sess-1").Items)
}

func TestOrderHandler_EmptyCartIsRejected(t *testing.T) {
	store, cleanup := NewTestStorage()
	defer cleanup()
	h := NewOrderHandler(store)

	c, _ := NewTestContext(http.MethodPost, "/api/orders", nil)
	withSession(c, "sess-1")

	err := h.HandleCreateOrder(c)
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestOrderHandler_ListOrders(t *testing.T) {
	store, cleanup := NewTestStorage()
	defer cleanup()
	seedCart(t, store, "sess-1")
	h := NewOrderHandler(store)
	placed := placeOrder(t, h, "sess-1")

	c, rec := NewTestContext(http.MethodGet, "/api/orders", nil)
	withSession(c, "sess-1")
	require.NoError(t, h.HandleListOrders(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []OrderResponse
	decodeResponse(t, rec, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, placed.ID, orders[0].ID)
	// Listing stays shallow; items come from the single-order endpoint.
	assert.Empty(t, orders[0].Items)
}

func TestOrderHandler_GetOrderWithItems(t *testing.T) {
	store, cleanup := NewTestStorage()
	defer cleanup()
	seedCart(t, store, "sess-1")
	h := NewOrderHandler(store)
	placed := placeOrder(t, h, "sess-1")

	c, rec := NewTestContext(http.MethodGet, "/api/orders/:id", nil)
	withSession(c, "sess-1")
	c.SetParamNames("id")
	c.SetParamValues(placed.ID)

	require.NoError(t, h.HandleGetOrder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var order OrderResponse
	decodeResponse(t, rec, &order)
	assert.Equal(t, placed.ID, order.ID)
	assert.Len(t, order.Items, 2)
}

func TestOrderHandler_GetOrderScopedToSession(t *testing.T) {
	store, cleanup := NewTestStorage()
	defer cleanup()
	seedCart(t, store, "sess-1")
	h := NewOrderHandler(store)
	placed := placeOrder(t, h, "sess-1")

	// Another session cannot read the order, same as an unknown id.
	for _, tc := range []struct{ session, id string }{
		{"sess-2", placed.ID},
		{"sess-1", "no-such-order"},
	} {
		c, _ := NewTestContext(http.MethodGet, "/api/orders/:id", nil)
		withSession(c, tc.session)
		c.SetParamNames("id")
		c.SetParamValues(tc.id)

		err := h.HandleGetOrder(c)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusNotFound, he.Code)
	}
}
