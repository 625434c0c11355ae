package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickbite/orders/internal/orders/ports"
)

// CustomerLookup reads the customers table.
type CustomerLookup struct {
	pool *pgxpool.Pool
}

func NewCustomerLookup(pool *pgxpool.Pool) *CustomerLookup {
	return &CustomerLookup{pool: pool}
}

func (l *CustomerLookup) FindByID(ctx context.Context, id int64) (*ports.Customer, error) {
	query := `
		SELECT id, name, email
		FROM customers
		WHERE id = $1
	`

	var customer ports.Customer
	err := l.pool.QueryRow(ctx, query, id).Scan(&customer.ID, &customer.Name, &customer.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select customer: %w", err)
	}
	return &customer, nil
}

// ProductLookup reads the products table.
type ProductLookup struct {
	pool *pgxpool.Pool
}

func NewProductLookup(pool *pgxpool.Pool) *ProductLookup {
	return &ProductLookup{pool: pool}
}

func (l *ProductLookup) FindByID(ctx context.Context, id int64) (*ports.Product, error) {
	query := `
		SELECT id, name, description, price
		FROM products
		WHERE id = $1
	`

	var product ports.Product
	err := l.pool.QueryRow(ctx, query, id).Scan(&product.ID, &product.Name, &product.Description, &product.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select product: %w", err)
	}
	return &product, nil
}
