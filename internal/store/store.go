// Package store provides interfaces for order and user storage operations.
package store

import (
	"context"

	"github.com/shopspring/decimal"
)

// OrderStore is an interface for order storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type OrderStore interface {
	// CreateOrder adds a new order together with its items as one atomic
	// unit: either every row is persisted or none is.
	// Returns ErrOrderAlreadyExists if the order ID is already taken.
	CreateOrder(ctx context.Context, orderParams *CreateOrderParams, items *[]CreateOrderItemParams) (*Order, *[]OrderItem, error)

	// FindByID retrieves a single order by its unique identifier, with its
	// items. Returns ErrOrderNotFound if no order exists with the given ID.
	// An order with zero items is valid on read.
	FindByID(ctx context.Context, id string) (*Order, *[]OrderItem, error)

	// FindAll returns all order rows. Items are never populated.
	FindAll(ctx context.Context) (*[]Order, error)

	// UpdateValue updates only the order's value.
	// Returns ErrOrderNotFound if no order exists with the given ID.
	UpdateValue(ctx context.Context, id string, value decimal.Decimal) (*Order, error)

	// Delete removes the order's items and then the order itself, in one
	// atomic unit. Deleting an absent order is a no-op.
	Delete(ctx context.Context, id string) error
}

// UserStore is an interface for user storage operations.
type UserStore interface {
	// FindByUsername retrieves a user by username.
	// Returns ErrUserNotFound if no user exists with the given username.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// CreateUser adds a new user with an already-hashed password.
	CreateUser(ctx context.Context, username, passwordHash string) (*User, error)
}
