package subscriptions

import (
	"context"
	"fmt"

	"github.com/restockwatch/restockwatch/internal/domain"
	"github.com/restockwatch/restockwatch/internal/pkg/ctxlog"
)

// ProductReader checks product existence. Implemented by the catalog service;
// a missing product surfaces as catalog.ErrProductNotFound.
type ProductReader interface {
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
}

// Service provides subscription business logic.
type Service struct {
	repo     Repository
	products ProductReader
}

// NewService creates a new subscriptions service.
func NewService(repo Repository, products ProductReader) *Service {
	return &Service{
		repo:     repo,
		products: products,
	}
}

// SubscribeInput carries validated subscribe parameters. TelegramUsername may
// still carry a leading "@"; the service normalizes it before storage.
type SubscribeInput struct {
	Email            string
	ProductID        string
	TelegramUsername string
}

// Subscribe creates or reactivates the subscription for the input pair.
// The product must exist. An already-active pair returns ErrAlreadySubscribed
// and changes nothing, including the stored telegram username.
func (s *Service) Subscribe(ctx context.Context, input SubscribeInput) (UpsertOutcome, error) {
	if _, err := s.products.GetProduct(ctx, input.ProductID); err != nil {
		return 0, err
	}

	sub := &domain.Subscription{
		Email:            input.Email,
		ProductID:        input.ProductID,
		TelegramUsername: NormalizeTelegramUsername(input.TelegramUsername),
	}

	outcome, err := s.repo.Upsert(ctx, sub)
	if err != nil {
		return 0, fmt.Errorf("upsert subscription: %w", err)
	}

	switch outcome {
	case OutcomeCreated:
		recordSubscribe("created")
	case OutcomeReactivated:
		recordSubscribe("reactivated")
	case OutcomeAlreadyActive:
		recordSubscribe("already_active")
		return outcome, ErrAlreadySubscribed
	}

	return outcome, nil
}

// Unsubscribe soft-deletes the subscription for the pair. Unsubscribing an
// already-inactive pair succeeds again; only a missing row is an error.
func (s *Service) Unsubscribe(ctx context.Context, email, productID string) error {
	return s.repo.Deactivate(ctx, email, productID)
}

// List returns the active subscriptions for email joined with their products.
// Orphaned subscriptions are dropped from the result; the loss is logged and
// counted rather than failing the request.
func (s *Service) List(ctx context.Context, email string) ([]domain.SubscriptionWithProduct, error) {
	subs, orphans, err := s.repo.ListActiveWithProducts(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	if orphans > 0 {
		recordOrphansDropped(orphans)
		ctxlog.FromContext(ctx).Warn("dropped subscriptions with missing products",
			"email", email,
			"count", orphans,
		)
	}

	if subs == nil {
		subs = make([]domain.SubscriptionWithProduct, 0)
	}

	return subs, nil
}
