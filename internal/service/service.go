// Package service provides the implementation of order-related business logic.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	ordererrors "github.com/lojadev/pedidos/internal/errors"
	"github.com/lojadev/pedidos/internal/store"
)

// OrderService defines the methods for managing orders.
// It abstracts the underlying business logic and data access.
type OrderService interface {
	// Create persists a new order with its items as one atomic unit and
	// returns the mapped entity as confirmation.
	// Returns ErrOrderAlreadyExists if the order ID is already taken.
	Create(ctx context.Context, order OrderCreateDto) (*OrderDto, error)

	// FindByID retrieves a single order by its identifier, items included.
	// Returns ErrOrderNotFound if no order exists with the given ID.
	FindByID(ctx context.Context, id string) (*OrderDto, error)

	// FindAll returns all orders, items not included.
	FindAll(ctx context.Context) (*[]OrderDto, error)

	// UpdateValue updates only the order's value.
	// Returns ErrOrderNotFound if no order exists with the given ID.
	UpdateValue(ctx context.Context, id string, order OrderUpdateDto) (*OrderDto, error)

	// Delete removes an order and its items. Deleting an absent order is a
	// no-op.
	Delete(ctx context.Context, id string) error
}

// Service implements OrderService and provides methods to manage orders.
type Service struct {
	orderStore store.OrderStore
}

var _ OrderService = (*Service)(nil)

// NewService creates a new instance of OrderService with the provided orderStore.
func NewService(orderStore store.OrderStore) *Service {
	return &Service{orderStore: orderStore}
}

// OrderDto represents an order in the internal shape used by every read and
// write confirmation.
type OrderDto struct {
	OrderID      string          `json:"orderId"`
	Value        decimal.Decimal `json:"value"`
	CreationDate string          `json:"creationDate"`
	Items        []OrderItemDto  `json:"items,omitempty"`
}

type OrderItemDto struct {
	ProductID string          `json:"productId"`
	Quantity  int32           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderCreateDto represents the wire payload for creating a new order. The
// field names follow the external contract and are mapped to the internal
// entity shape before persistence.
type OrderCreateDto struct {
	NumeroPedido string               `json:"numeroPedido" validate:"required"`
	ValorTotal   *decimal.Decimal     `json:"valorTotal" validate:"required"`
	DataCriacao  string               `json:"dataCriacao" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Items        []OrderItemCreateDto `json:"items" validate:"required,gt=0,dive"`
}

// OrderItemCreateDto represents the wire payload for a single line item.
type OrderItemCreateDto struct {
	IdItem         string           `json:"idItem" validate:"required"`
	QuantidadeItem int32            `json:"quantidadeItem" validate:"required,min=1"`
	ValorItem      *decimal.Decimal `json:"valorItem" validate:"required"`
}

// OrderUpdateDto represents the wire payload for updating an existing order.
// Only the order's value is mutable.
type OrderUpdateDto struct {
	ValorTotal *decimal.Decimal `json:"valorTotal" validate:"required"`
}

// Create maps the wire payload to the internal entity shape and delegates
// to the store, which persists order and items in one transaction.
func (s *Service) Create(ctx context.Context, order OrderCreateDto) (*OrderDto, error) {
	creationDate, err := time.Parse(time.RFC3339, order.DataCriacao)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", order.DataCriacao, ordererrors.ErrInvalidCreationDate)
	}

	orderParams := store.CreateOrderParams{
		OrderID:      order.NumeroPedido,
		Value:        *order.ValorTotal,
		CreationDate: creationDate,
	}
	itemParams := make([]store.CreateOrderItemParams, 0, len(order.Items))
	for _, item := range order.Items {
		itemParams = append(itemParams, store.CreateOrderItemParams{
			ProductID: item.IdItem,
			Quantity:  item.QuantidadeItem,
			Price:     *item.ValorItem,
		})
	}

	created, items, err := s.orderStore.CreateOrder(ctx, &orderParams, &itemParams)
	if err != nil {
		return nil, err
	}

	return toDto(created, items), nil
}

// FindByID retrieves an order by its ID and returns it as an OrderDto.
// Returns ErrOrderNotFound if no order exists with the given ID.
func (s *Service) FindByID(ctx context.Context, id string) (*OrderDto, error) {
	order, items, err := s.orderStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDto(order, items), nil
}

// FindAll retrieves a list of all orders and returns them as OrderDtos.
// Items are never populated; callers wanting item detail use FindByID.
func (s *Service) FindAll(ctx context.Context) (*[]OrderDto, error) {
	orders, err := s.orderStore.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	orderDtos := make([]OrderDto, len(*orders))
	for i, order := range *orders {
		orderDtos[i] = *toDto(&order, nil)
	}
	return &orderDtos, nil
}

// UpdateValue modifies the order's value and returns the updated order.
// Returns ErrOrderNotFound if no order exists with the given ID.
func (s *Service) UpdateValue(ctx context.Context, id string, order OrderUpdateDto) (*OrderDto, error) {
	updated, err := s.orderStore.UpdateValue(ctx, id, *order.ValorTotal)
	if err != nil {
		return nil, err
	}
	return toDto(updated, nil), nil
}

// Delete removes an order and its items.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.orderStore.Delete(ctx, id)
}

// toDto converts a store.Order to an OrderDto.
func toDto(order *store.Order, items *[]store.OrderItem) *OrderDto {
	if order == nil {
		return nil
	}

	var itemsDto []OrderItemDto
	if items != nil {
		itemsDto = make([]OrderItemDto, 0, len(*items))
		for _, item := range *items {
			itemsDto = append(itemsDto, OrderItemDto{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
			})
		}
	}

	return &OrderDto{
		OrderID:      order.OrderID,
		Value:        order.Value,
		CreationDate: order.CreationDate.Format(time.RFC3339),
		Items:        itemsDto,
	}
}
