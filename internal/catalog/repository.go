// Package catalog provides product catalog management and the restock hook.
package catalog

import (
	"context"

	"github.com/restockwatch/restockwatch/internal/domain"
)

// Filter narrows product listings.
type Filter struct {
	InStockOnly bool
}

// Repository defines the interface for product data access.
type Repository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByProductID(ctx context.Context, productID string) (*domain.Product, error)
	List(ctx context.Context, filter Filter) ([]domain.Product, error)

	// SetStock updates the stock flag and reports the previous value so the
	// caller can detect an out-of-stock -> in-stock transition.
	SetStock(ctx context.Context, productID string, inStock bool) (product *domain.Product, wasInStock bool, err error)

	Delete(ctx context.Context, productID string) error
}
