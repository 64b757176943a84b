package db

import (
	"context"
)

const upsertCartItem = `
INSERT INTO cart_items (id, session_id, product_key, title, price_cents, image_url, quantity)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (session_id, product_key) DO UPDATE SET
    quantity = cart_items.quantity + excluded.quantity,
    updated_at = CURRENT_TIMESTAMP
RETURNING id, session_id, product_key, title, price_cents, image_url, quantity, created_at, updated_at
`

type UpsertCartItemParams struct {
	ID         string
	SessionID  string
	ProductKey string
	Title      string
	PriceCents int64
	ImageURL   string
	Quantity   int64
}

// UpsertCartItem adds a product to the cart, bumping the quantity when the
// session already has it.
func (q *Queries) UpsertCartItem(ctx context.Context, arg UpsertCartItemParams) (CartItem, error) {
	row := q.db.QueryRowContext(ctx, upsertCartItem,
		arg.ID, arg.SessionID, arg.ProductKey, arg.Title, arg.PriceCents, arg.ImageURL, arg.Quantity,
	)
	var i CartItem
	err := row.Scan(&i.ID, &i.SessionID, &i.ProductKey, &i.Title, &i.PriceCents, &i.ImageURL, &i.Quantity, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const listCartItems = `
SELECT id, session_id, product_key, title, price_cents, image_url, quantity, created_at, updated_at
FROM cart_items
WHERE session_id = ?
ORDER BY created_at, id
`

func (q *Queries) ListCartItems(ctx context.Context, sessionID string) ([]CartItem, error) {
	rows, err := q.db.QueryContext(ctx, listCartItems, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []CartItem
	for rows.Next() {
		var i CartItem
		if err := rows.Scan(&i.ID, &i.SessionID, &i.ProductKey, &i.Title, &i.PriceCents, &i.ImageURL, &i.Quantity, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

const updateCartItemQuantity = `
UPDATE cart_items
SET quantity = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ? AND session_id = ?
RETURNING id, session_id, product_key, title, price_cents, image_url, quantity, created_at, updated_at
`

type UpdateCartItemQuantityParams struct {
	Quantity  int64
	ID        string
	SessionID string
}

func (q *Queries) UpdateCartItemQuantity(ctx context.Context, arg UpdateCartItemQuantityParams) (CartItem, error) {
	row := q.db.QueryRowContext(ctx, updateCartItemQuantity, arg.Quantity, arg.ID, arg.SessionID)
	var i CartItem
	err := row.Scan(&i.ID, &i.SessionID, &i.ProductKey, &i.Title, &i.PriceCents, &i.ImageURL, &i.Quantity, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const deleteCartItem = `
DELETE FROM cart_items
WHERE id = ? AND session_id = ?
`

type DeleteCartItemParams struct {
	ID        string
	SessionID string
}

func (q *Queries) DeleteCartItem(ctx context.Context, arg DeleteCartItemParams) error {
	_, err := q.db.ExecContext(ctx, deleteCartItem, arg.ID, arg.SessionID)
	return err
}

const clearCart = `
DELETE FROM cart_items
WHERE session_id = ?
`

func (q *Queries) ClearCart(ctx context.Context, sessionID string) error {
	_, err := q.db.ExecContext(ctx, clearCart, sessionID)
	return err
}
