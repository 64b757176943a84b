package db

import "time"

type CartItem struct {
	ID         string
	SessionID  string
	ProductKey string
	Title      string
	PriceCents int64
	ImageURL   string
	Quantity   int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Order struct {
	ID         string
	SessionID  string
	Status     string
	TotalCents int64
	CreatedAt  time.Time
}

type OrderItem struct {
	ID         string
	OrderID    string
	ProductKey string
	Title      string
	PriceCents int64
	Quantity   int64
}
