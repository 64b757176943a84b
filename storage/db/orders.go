package db

import (
	"context"
)

const createOrder = `
INSERT INTO orders (id, session_id, status, total_cents)
VALUES (?, ?, ?, ?)
RETURNING id, session_id, status, total_cents, created_at
`

type CreateOrderParams struct {
	ID         string
	SessionID  string
	Status     string
	TotalCents int64
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	row := q.db.QueryRowContext(ctx, createOrder, arg.ID, arg.SessionID, arg.Status, arg.TotalCents)
	var o Order
	err := row.Scan(&o.ID, &o.SessionID, &o.Status, &o.TotalCents, &o.CreatedAt)
	return o, err
}

const createOrderItem = `
INSERT INTO order_items (id, order_id, product_key, title, price_cents, quantity)
VALUES (?, ?, ?, ?, ?, ?)
`

type CreateOrderItemParams struct {
	ID         string
	OrderID    string
	ProductKey string
	Title      string
	PriceCents int64
	Quantity   int64
}

func (q *Queries) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) error {
	_, err := q.db.ExecContext(ctx, createOrderItem,
		arg.ID, arg.OrderID, arg.ProductKey, arg.Title, arg.PriceCents, arg.Quantity,
	)
	return err
}

const listOrdersBySession = `
SELECT id, session_id, status, total_cents, created_at
FROM orders
WHERE session_id = ?
ORDER BY created_at DESC, id
`

func (q *Queries) ListOrdersBySession(ctx context.Context, sessionID string) ([]Order, error) {
	rows, err := q.db.QueryContext(ctx, listOrdersBySession, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.SessionID, &o.Status, &o.TotalCents, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

const getOrder = `
SELECT id, session_id, status, total_cents, created_at
FROM orders
WHERE id = ? AND session_id = ?
`

type GetOrderParams struct {
	ID        string
	SessionID string
}

func (q *Queries) GetOrder(ctx context.Context, arg GetOrderParams) (Order, error) {
	row := q.db.QueryRowContext(ctx, getOrder, arg.ID, arg.SessionID)
	var o Order
	err := row.Scan(&o.ID, &o.SessionID, &o.Status, &o.TotalCents, &o.CreatedAt)
	return o, err
}

const listOrderItems = `
SELECT id, order_id, product_key, title, price_cents, quantity
FROM order_items
WHERE order_id = ?
ORDER BY id
`

func (q *Queries) ListOrderItems(ctx context.Context, orderID string) ([]OrderItem, error) {
	rows, err := q.db.QueryContext(ctx, listOrderItems, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var i OrderItem
		if err := rows.Scan(&i.ID, &i.OrderID, &i.ProductKey, &i.Title, &i.PriceCents, &i.Quantity); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}
