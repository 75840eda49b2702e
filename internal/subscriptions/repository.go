// Package subscriptions provides subscribe/unsubscribe/list operations keyed
// by the (email, productId) natural key.
package subscriptions

import (
	"context"

	"github.com/restockwatch/restockwatch/internal/domain"
)

// UpsertOutcome classifies what an atomic subscribe upsert did.
type UpsertOutcome int

const (
	// OutcomeCreated means a new subscription row was inserted.
	OutcomeCreated UpsertOutcome = iota
	// OutcomeReactivated means an inactive row was flipped back to active.
	OutcomeReactivated
	// OutcomeAlreadyActive means an active row exists and nothing was changed.
	OutcomeAlreadyActive
)

// Repository defines the interface for subscription data access.
type Repository interface {
	// Upsert atomically creates or reactivates the subscription for
	// (sub.Email, sub.ProductID). An already-active pair is left untouched.
	Upsert(ctx context.Context, sub *domain.Subscription) (UpsertOutcome, error)

	// Deactivate soft-deletes the pair. Returns ErrSubscriptionNotFound when
	// no row exists; deactivating an already-inactive row succeeds.
	Deactivate(ctx context.Context, email, productID string) error

	// ListActiveWithProducts returns active subscriptions for email joined
	// with their products. Subscriptions whose product no longer exists are
	// excluded; orphans reports how many were dropped.
	ListActiveWithProducts(ctx context.Context, email string) (subs []domain.SubscriptionWithProduct, orphans int, err error)
}
