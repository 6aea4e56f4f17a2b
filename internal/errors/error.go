// Package errors provides custom error types for order and user operations.
package errors

import "errors"

var ErrCreateOrder = errors.New("failed to create order")
var ErrCreateOrderItem = errors.New("failed to create order item")
var ErrOrderAlreadyExists = errors.New("order already exists")

var ErrUpdateOrder = errors.New("failed to update order")
var ErrDeleteOrder = errors.New("failed to delete order")

var ErrOrderNotFound = errors.New("order not found")
var ErrFailedToFindOrder = errors.New("failed to find order")
var ErrFailedToFindOrders = errors.New("failed to find orders")
var ErrFailedToFindOrderItems = errors.New("failed to find order items")

var ErrInvalidCreationDate = errors.New("invalid creation date")

var ErrTransactionBegin = errors.New("failed to begin transaction")
var ErrTransactionCommit = errors.New("failed to commit transaction")
var ErrTransactionRollback = errors.New("failed to rollback transaction")

var ErrUserNotFound = errors.New("user not found")
var ErrFailedToFindUser = errors.New("failed to find user")
var ErrCreateUser = errors.New("failed to create user")
var ErrInvalidCredentials = errors.New("invalid credentials")
