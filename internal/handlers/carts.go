package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"math"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"

	"github.com/shopsphere/storefront/storage"
	"github.com/shopsphere/storefront/storage/db"
)

// CartHandler is the keyed-list CRUD over persisted cart state, scoped by the
// session cookie.
type CartHandler struct {
	storage *storage.Storage
}

func NewCartHandler(storage *storage.Storage) *CartHandler {
	return &CartHandler{storage: storage}
}

type AddCartItemRequest struct {
	ProductKey string  `json:"product_key"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	Image      string  `json:"image"`
	Quantity   int64   `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

type CartItemResponse struct {
	ID         string  `json:"id"`
	ProductKey string  `json:"product_key"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	Image      string  `json:"image,omitempty"`
	Quantity   int64   `json:"quantity"`
}

type CartResponse struct {
	Items     []CartItemResponse `json:"items"`
	ItemCount int64              `json:"item_count"`
	Subtotal  float64            `json:"subtotal"`
}

func (h *CartHandler) HandleGetCart(c echo.Context) error {
	ctx := c.Request().Context()
	session := sessionID(c)

	items, err := h.storage.Queries.ListCartItems(ctx, session)
	if err != nil {
		slog.Error("failed to list cart items", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load cart")
	}

	return c.JSON(http.StatusOK, cartResponse(items))
}

func (h *CartHandler) HandleAddItem(c echo.Context) error {
	ctx := c.Request().Context()
	session := sessionID(c)

	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ProductKey == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "product_key is required")
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	item, err := h.storage.Queries.UpsertCartItem(ctx, db.UpsertCartItemParams{
		ID:         ulid.Make().String(),
		SessionID:  session,
		ProductKey: req.ProductKey,
		Title:      req.Title,
		PriceCents: toCents(req.Price),
		ImageURL:   req.Image,
		Quantity:   req.Quantity,
	})
	if err != nil {
		slog.Error("failed to add cart item", "error", err, "product_key", req.ProductKey)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to add item")
	}

	return c.JSON(http.StatusOK, cartItemResponse(item))
}

func (h *CartHandler) HandleUpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	session := sessionID(c)
	id := c.Param("id")

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.Quantity <= 0 {
		if err := h.storage.Queries.DeleteCartItem(ctx, db.DeleteCartItemParams{ID: id, SessionID: session}); err != nil {
			slog.Error("failed to remove cart item", "error", err, "id", id)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to remove item")
		}
		return c.NoContent(http.StatusNoContent)
	}

	item, err := h.storage.Queries.UpdateCartItemQuantity(ctx, db.UpdateCartItemQuantityParams{
		Quantity:  req.Quantity,
		ID:        id,
		SessionID: session,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "cart item not found")
		}
		slog.Error("failed to update cart item", "error", err, "id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update item")
	}

	return c.JSON(http.StatusOK, cartItemResponse(item))
}

func (h *CartHandler) HandleRemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	session := sessionID(c)
	id := c.Param("id")

	if err := h.storage.Queries.DeleteCartItem(ctx, db.DeleteCartItemParams{ID: id, SessionID: session}); err != nil {
		slog.Error("failed to remove cart item", "error", err, "id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to remove item")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHandler) HandleClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	session := sessionID(c)

	if err := h.storage.Queries.ClearCart(ctx, session); err != nil {
		slog.Error("failed to clear cart", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to clear cart")
	}
	return c.NoContent(http.StatusNoContent)
}

func cartResponse(items []db.CartItem) CartResponse {
	resp := CartResponse{Items: make([]CartItemResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, cartItemResponse(item))
		resp.ItemCount += item.Quantity
		resp.Subtotal += fromCents(item.PriceCents) * float64(item.Quantity)
	}
	resp.Subtotal = math.Round(resp.Subtotal*100) / 100
	return resp
}

func cartItemResponse(item db.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:         item.ID,
		ProductKey: item.ProductKey,
		Title:      item.Title,
		Price:      fromCents(item.PriceCents),
		Image:      item.ImageURL,
		Quantity:   item.Quantity,
	}
}

func toCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

func fromCents(cents int64) float64 {
	return float64(cents) / 100
}
