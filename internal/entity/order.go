package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is immutable after creation. Total is set once, inside the same
// transaction that creates the lines, and never recomputed.
type Order struct {
	ID        int64
	UserID    int64
	CreatedAt time.Time
	Total     decimal.Decimal
	Lines     []OrderLine
}

// OrderLine stores the price as captured at checkout time. Later catalog
// price changes never alter it.
type OrderLine struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	Price       decimal.Decimal
	Quantity    int64
}

// Subtotal is price * quantity with exact decimal arithmetic.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(l.Quantity))
}
