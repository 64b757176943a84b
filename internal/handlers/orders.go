package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"

	"github.com/shopsphere/storefront/storage"
	"github.com/shopsphere/storefront/storage/db"
)

// OrderHandler turns a cart into an order and reads orders back. Payment is
// out of scope; orders land directly in "placed".
type OrderHandler struct {
	storage *storage.Storage
}

func NewOrderHandler(storage *storage.Storage) *OrderHandler {
	return &OrderHandler{storage: storage}
}

type OrderItemResponse struct {
	ProductKey string  `json:"product_key"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	Quantity   int64   `json:"quantity"`
}

type OrderResponse struct {
	ID        string              `json:"id"`
	Status    string              `json:"status"`
	Total     float64             `json:"total"`
	CreatedAt time.Time           `json:"created_at"`
	Items     []OrderItemResponse `json:"items,omitempty"`
}

// HandleCreateOrder places an order from the session's cart, atomically:
// order + items are written and the cart cleared in one transaction.
func (h *OrderHandler) HandleCreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	session := sessionID(c)

	cartItems, err := h.storage.Queries.ListCartItems(ctx, session)
	if err != nil {
		slog.Error("failed to list cart items", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load cart")
	}
	if len(cartItems) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "cart is empty")
	}

	var totalCents int64
	for _, item := range cartItems {
		totalCents += item.PriceCents * item.Quantity
	}

	tx, err := h.storage.DB().BeginTx(ctx, nil)
	if err != nil {
		slog.Error("failed to begin order transaction", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to place order")
	}
	defer tx.Rollback()

	qtx := h.storage.Queries.WithTx(tx)

	order, err := qtx.CreateOrder(ctx, db.CreateOrderParams{
		ID:         ulid.Make().String(),
		SessionID:  session,
		Status:     "placed",
		TotalCents: totalCents,
	})
	if err != nil {
		slog.Error("failed to create order", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to place order")
	}

	items := make([]OrderItemResponse, 0, len(cartItems))
	for _, ci := range cartItems {
		if err := qtx.CreateOrderItem(ctx, db.CreateOrderItemParams{
			ID:         ulid.Make().String(),
			OrderID:    order.ID,
			ProductKey: ci.ProductKey,
			Title:      ci.Title,
			PriceCents: ci.PriceCents,
			Quantity:   ci.Quantity,
		}); err != nil {
			slog.Error("failed to create order item", "error", err, "order_id", order.ID)
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to place order")
		}
		items = append(items, OrderItemResponse{
			ProductKey: ci.ProductKey,
			Title:      ci.Title,
			Price:      fromCents(ci.PriceCents),
			Quantity:   ci.Quantity,
		})
	}

	if err := qtx.ClearCart(ctx, session); err != nil {
		slog.Error("failed to clear cart after order", "error", err, "order_id", order.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to place order")
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit order", "error", err, "order_id", order.ID)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to place order")
	}

	return c.JSON(http.StatusCreated, OrderResponse{
		ID:        order.ID,
		Status:    order.Status,
		Total:     fromCents(order.TotalCents),
		CreatedAt: order.CreatedAt,
		Items:     items,
	})
}

func (h *OrderHandler) HandleListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	session := sessionID(c)

	orders, err := h.storage.Queries.ListOrdersBySession(ctx, session)
	if err != nil {
		slog.Error("failed to list orders", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list orders")
	}

	resp := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, OrderResponse{
			ID:        o.ID,
			Status:    o.Status,
			Total:     fromCents(o.TotalCents),
			CreatedAt: o.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) HandleGetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	session := sessionID(c)
	id := c.Param("id")

	order, err := h.storage.Queries.GetOrder(ctx, db.GetOrderParams{ID: id, SessionID: session})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		slog.Error("failed to get order", "error", err, "id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load order")
	}

	orderItems, err := h.storage.Queries.ListOrderItems(ctx, order.ID)
	if err != nil {
		slog.Error("failed to list order items", "error", err, "id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load order")
	}

	items := make([]OrderItemResponse, 0, len(orderItems))
	for _, oi := range orderItems {
		items = append(items, OrderItemResponse{
			ProductKey: oi.ProductKey,
			Title:      oi.Title,
			Price:      fromCents(oi.PriceCents),
			Quantity:   oi.Quantity,
		})
	}

	return c.JSON(http.StatusOK, OrderResponse{
		ID:        order.ID,
		Status:    order.Status,
		Total:     fromCents(order.TotalCents),
		CreatedAt: order.CreatedAt,
		Items:     items,
	})
}
