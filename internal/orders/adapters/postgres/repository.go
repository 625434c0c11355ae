package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickbite/orders/internal/orders/domain"
	"github.com/quickbite/orders/internal/orders/ports"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	query := `
		INSERT INTO orders (code, status, payment_status, customer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		order.Code,
		order.Status,
		order.PaymentStatus,
		order.CustomerID,
	).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := `
		SELECT id, code, status, payment_status, customer_id, created_at
		FROM orders
		WHERE id = $1
	`

	var order domain.Order
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.Code,
		&order.Status,
		&order.PaymentStatus,
		&order.CustomerID,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ports.ErrNotFound
		}
		return nil, fmt.Errorf("select order: %w", err)
	}

	items, err := r.loadItems(ctx, []int64{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]
	order.RecalculateTotal()

	return &order, nil
}

func (r *Repository) List(ctx context.Context) ([]domain.Order, error) {
	query := `
		SELECT id, code, status, payment_status, customer_id, created_at
		FROM orders
		ORDER BY created_at DESC, id DESC
	`
	return r.queryOrders(ctx, query)
}

func (r *Repository) ListByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	query := `
		SELECT id, code, status, payment_status, customer_id, created_at
		FROM orders
		WHERE status = $1
		ORDER BY created_at ASC, id ASC
	`
	return r.queryOrders(ctx, query, status)
}

func (r *Repository) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	query := `
		UPDATE orders
		SET status = $1, payment_status = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := r.pool.Exec(ctx, query, order.Status, order.PaymentStatus, time.Now().UTC(), order.ID)
	if err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	if result.RowsAffected() == 0 {
		return nil, ports.ErrNotFound
	}

	return r.GetByID(ctx, order.ID)
}

func (r *Repository) AddItem(ctx context.Context, item *domain.Item) error {
	query := `
		INSERT INTO order_items (order_id, product_id, product_name, product_description, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.pool.QueryRow(ctx, query,
		item.OrderID,
		item.ProductID,
		item.ProductName,
		item.ProductDescription,
		item.Quantity,
		item.UnitPrice,
		item.TotalPrice,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *Repository) UpdateItem(ctx context.Context, itemID int64, item *domain.Item) error {
	query := `
		UPDATE order_items
		SET quantity = $1, total_price = $2
		WHERE id = $3
	`

	result, err := r.pool.Exec(ctx, query, item.Quantity, item.TotalPrice, itemID)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) RemoveItem(ctx context.Context, orderID, itemID int64) error {
	query := `
		DELETE FROM order_items
		WHERE id = $1 AND order_id = $2
	`

	result, err := r.pool.Exec(ctx, query, itemID, orderID)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	var ids []int64
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID,
			&order.Code,
			&order.Status,
			&order.PaymentStatus,
			&order.CustomerID,
			&order.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for idx := range orders {
		orders[idx].Items = items[orders[idx].ID]
		orders[idx].RecalculateTotal()
	}

	return orders, nil
}

func (r *Repository) loadItems(ctx context.Context, orderIDs []int64) (map[int64][]domain.Item, error) {
	query := `
		SELECT id, order_id, product_id, product_name, product_description, quantity, unit_price, total_price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id ASC
	`

	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	items := make(map[int64][]domain.Item)
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.ProductDescription,
			&item.Quantity,
			&item.UnitPrice,
			&item.TotalPrice,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}

	return items, nil
}
