package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	ordererrors "github.com/lojadev/pedidos/internal/errors"
)

const pgUniqueViolation = "23505"

type PgStore struct {
	db *pgxpool.Pool
}

var _ OrderStore = (*PgStore)(nil)

// NewPgStore creates a new instance of OrderStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

// CreateOrder inserts the order row and then each item row in sequence,
// all inside one transaction. Any failure rolls the whole unit back, so
// no partial state is observable by concurrent readers.
func (p *PgStore) CreateOrder(ctx context.Context, orderParams *CreateOrderParams, items *[]CreateOrderItemParams) (*Order, *[]OrderItem, error) {
	var createdOrder *Order
	var createdItems *[]OrderItem

	txErr := p.withTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			INSERT INTO orders (order_id, value, creation_date)
			VALUES ($1, $2, $3)
		`, orderParams.OrderID, orderParams.Value.String(), orderParams.CreationDate); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return ordererrors.ErrOrderAlreadyExists
			}
			return ordererrors.ErrCreateOrder
		}

		orderItems := make([]OrderItem, 0, len(*items))
		for _, item := range *items {
			var id int64
			if err := tx.QueryRow(ctx, `
				INSERT INTO items (order_id, product_id, quantity, price)
				VALUES ($1, $2, $3, $4)
				RETURNING id
			`, orderParams.OrderID, item.ProductID, item.Quantity, item.Price.String()).Scan(&id); err != nil {
				return ordererrors.ErrCreateOrderItem
			}
			orderItems = append(orderItems, OrderItem{
				ID:        id,
				OrderID:   orderParams.OrderID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Price,
			})
		}
		createdOrder = &Order{
			OrderID:      orderParams.OrderID,
			Value:        orderParams.Value,
			CreationDate: orderParams.CreationDate,
		}
		createdItems = &orderItems
		return nil
	})

	if txErr != nil {
		return nil, nil, txErr
	}

	return createdOrder, createdItems, nil
}

func (p *PgStore) FindByID(ctx context.Context, id string) (*Order, *[]OrderItem, error) {
	var order *Order
	var orderItems *[]OrderItem

	// Use transaction to ensure the order row and its item rows come from
	// one consistent snapshot.
	txErr := p.withTransaction(ctx, func(tx pgx.Tx) error {
		o, err := scanOrder(tx.QueryRow(ctx, `
			SELECT order_id, value::text, creation_date
			FROM orders WHERE order_id = $1
		`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ordererrors.ErrOrderNotFound
			}
			return ordererrors.ErrFailedToFindOrder
		}

		rows, err := tx.Query(ctx, `
			SELECT id, order_id, product_id, quantity, price::text
			FROM items WHERE order_id = $1
			ORDER BY id
		`, id)
		if err != nil {
			return ordererrors.ErrFailedToFindOrderItems
		}
		defer rows.Close()

		items := make([]OrderItem, 0)
		for rows.Next() {
			var it OrderItem
			var priceText string
			if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &priceText); err != nil {
				return ordererrors.ErrFailedToFindOrderItems
			}
			if it.Price, err = decimal.NewFromString(priceText); err != nil {
				return ordererrors.ErrFailedToFindOrderItems
			}
			items = append(items, it)
		}
		if err := rows.Err(); err != nil {
			return ordererrors.ErrFailedToFindOrderItems
		}
		order = o
		orderItems = &items
		return nil
	})

	if txErr != nil {
		return nil, nil, txErr
	}

	return order, orderItems, nil
}

func (p *PgStore) FindAll(ctx context.Context) (*[]Order, error) {
	// No need for transaction here as we are making just one query to fetch orders
	rows, err := p.db.Query(ctx, `
		SELECT order_id, value::text, creation_date
		FROM orders
	`)
	if err != nil {
		return nil, ordererrors.ErrFailedToFindOrders
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		var o Order
		var valueText string
		if err := rows.Scan(&o.OrderID, &valueText, &o.CreationDate); err != nil {
			return nil, ordererrors.ErrFailedToFindOrders
		}
		if o.Value, err = decimal.NewFromString(valueText); err != nil {
			return nil, ordererrors.ErrFailedToFindOrders
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, ordererrors.ErrFailedToFindOrders
	}

	return &orders, nil
}

func (p *PgStore) UpdateValue(ctx context.Context, id string, value decimal.Decimal) (*Order, error) {
	order, err := scanOrder(p.db.QueryRow(ctx, `
		UPDATE orders SET value = $2
		WHERE order_id = $1
		RETURNING order_id, value::text, creation_date
	`, id, value.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ordererrors.ErrOrderNotFound
		}
		return nil, ordererrors.ErrUpdateOrder
	}
	return order, nil
}

// Delete removes item rows before the order row to respect the foreign key.
// Both deletes run in one transaction so a failure cannot leave a dangling
// order or item row behind.
func (p *PgStore) Delete(ctx context.Context, id string) error {
	return p.withTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM items WHERE order_id = $1`, id); err != nil {
			return ordererrors.ErrDeleteOrder
		}
		if _, err := tx.Exec(ctx, `DELETE FROM orders WHERE order_id = $1`, id); err != nil {
			return ordererrors.ErrDeleteOrder
		}
		return nil
	})
}

// scanOrder scans one order row, converting the value column from its text
// representation.
func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	var valueText string
	if err := row.Scan(&o.OrderID, &valueText, &o.CreationDate); err != nil {
		return nil, err
	}
	value, err := decimal.NewFromString(valueText)
	if err != nil {
		return nil, err
	}
	o.Value = value
	return &o, nil
}

func (p *PgStore) withTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return ordererrors.ErrTransactionBegin
	}

	err = fn(tx)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return ordererrors.ErrTransactionRollback
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return ordererrors.ErrTransactionCommit
	}

	return nil
}
