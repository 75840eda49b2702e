// Package postgres provides the PostgreSQL implementation of the catalog repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/restockwatch/restockwatch/internal/catalog"
	"github.com/restockwatch/restockwatch/internal/domain"
)

const uniqueViolationCode = "23505"

// Repository implements the catalog.Repository interface using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a new product.
func (r *Repository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (product_id, name, url, in_stock)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		product.ProductID,
		product.Name,
		product.URL,
		product.InStock,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return catalog.ErrProductAlreadyExists
		}
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// GetByProductID retrieves a product by its business key.
func (r *Repository) GetByProductID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `
		SELECT id, product_id, name, url, in_stock, created_at, updated_at
		FROM products
		WHERE product_id = $1
	`
	var product domain.Product
	err := r.db.QueryRow(ctx, query, productID).Scan(
		&product.ID,
		&product.ProductID,
		&product.Name,
		&product.URL,
		&product.InStock,
		&product.CreatedAt,
		&product.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product by product_id: %w", err)
	}

	return &product, nil
}

// List retrieves products ordered by name.
func (r *Repository) List(ctx context.Context, filter catalog.Filter) ([]domain.Product, error) {
	query := `
		SELECT id, product_id, name, url, in_stock, created_at, updated_at
		FROM products
	`

	if filter.InStockOnly {
		query += " WHERE in_stock"
	}

	query += " ORDER BY name"

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		var product domain.Product
		err := rows.Scan(
			&product.ID,
			&product.ProductID,
			&product.Name,
			&product.URL,
			&product.InStock,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

// SetStock updates the stock flag in a single statement and returns the
// previous value alongside the updated product.
func (r *Repository) SetStock(ctx context.Context, productID string, inStock bool) (*domain.Product, bool, error) {
	query := `
		WITH old AS (
			SELECT in_stock FROM products WHERE product_id = $1
		)
		UPDATE products
		SET in_stock = $2, updated_at = now()
		WHERE product_id = $1
		RETURNING id, product_id, name, url, in_stock, created_at, updated_at,
			(SELECT in_stock FROM old)
	`
	var product domain.Product
	var wasInStock bool
	err := r.db.QueryRow(ctx, query, productID, inStock).Scan(
		&product.ID,
		&product.ProductID,
		&product.Name,
		&product.URL,
		&product.InStock,
		&product.CreatedAt,
		&product.UpdatedAt,
		&wasInStock,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, catalog.ErrProductNotFound
		}
		return nil, false, fmt.Errorf("set product stock: %w", err)
	}

	return &product, wasInStock, nil
}

// Delete removes a product. Subscriptions are intentionally left behind.
func (r *Repository) Delete(ctx context.Context, productID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrProductNotFound
	}
	return nil
}
