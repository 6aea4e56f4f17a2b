package store

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is an order row. Items live in their own relation and are loaded
// separately; an order row may exist with zero item rows only transiently
// inside a transaction.
type Order struct {
	OrderID      string
	Value        decimal.Decimal
	CreationDate time.Time
}

// OrderItem is a line item belonging to exactly one order.
type OrderItem struct {
	ID        int64
	OrderID   string
	ProductID string
	Quantity  int32
	Price     decimal.Decimal
}

// User is a row in the users relation.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
}

type CreateOrderParams struct {
	OrderID      string
	Value        decimal.Decimal
	CreationDate time.Time
}

type CreateOrderItemParams struct {
	ProductID string
	Quantity  int32
	Price     decimal.Decimal
}
