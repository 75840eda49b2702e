package catalog

import (
	"context"
	"fmt"

	"github.com/restockwatch/restockwatch/internal/domain"
	"github.com/restockwatch/restockwatch/internal/pkg/ctxlog"
)

// RestockNotifier is invoked when a product transitions back in stock.
// Implemented by the notifications module; nil when notifications are disabled.
type RestockNotifier interface {
	ProductRestocked(ctx context.Context, product *domain.Product) error
}

// Service provides catalog business logic.
type Service struct {
	repo     Repository
	notifier RestockNotifier
}

// NewService creates a new catalog service.
func NewService(repo Repository, notifier RestockNotifier) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
	}
}

// CreateProduct creates a new product.
func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) error {
	return s.repo.Create(ctx, product)
}

// GetProduct returns a product by its business key.
func (s *Service) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	return s.repo.GetByProductID(ctx, productID)
}

// ListProducts returns products matching the filter.
func (s *Service) ListProducts(ctx context.Context, filter Filter) ([]domain.Product, error) {
	return s.repo.List(ctx, filter)
}

// UpdateStock sets the product's stock flag. A transition from out of stock to
// in stock notifies the product's active subscribers; notification failures are
// logged, never surfaced to the caller.
func (s *Service) UpdateStock(ctx context.Context, productID string, inStock bool) (*domain.Product, error) {
	product, wasInStock, err := s.repo.SetStock(ctx, productID, inStock)
	if err != nil {
		return nil, fmt.Errorf("set stock: %w", err)
	}

	if inStock && !wasInStock && s.notifier != nil {
		if err := s.notifier.ProductRestocked(ctx, product); err != nil {
			ctxlog.FromContext(ctx).Error("restock notification failed",
				"product_id", product.ProductID,
				"error", err,
			)
		}
	}

	return product, nil
}

// DeleteProduct removes a product. Subscriptions referencing it are kept and
// simply disappear from list responses.
func (s *Service) DeleteProduct(ctx context.Context, productID string) error {
	return s.repo.Delete(ctx, productID)
}
