// Package postgres provides the PostgreSQL implementation of the subscriptions repository.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/restockwatch/restockwatch/internal/domain"
	"github.com/restockwatch/restockwatch/internal/subscriptions"
)

// Repository implements the subscriptions.Repository interface using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Upsert creates or reactivates the subscription in one statement. The unique
// index on (email, product_id) makes concurrent subscribes for the same pair
// serialize on the conflict instead of racing a check-then-insert.
//
// The WHERE guard keeps the update from touching an already-active row, so a
// duplicate subscribe returns no row at all and leaves the stored telegram
// username as it was. On reactivation an empty incoming username keeps the old
// value. xmax = 0 distinguishes a fresh insert from a conflict update.
func (r *Repository) Upsert(ctx context.Context, sub *domain.Subscription) (subscriptions.UpsertOutcome, error) {
	query := `
		INSERT INTO subscriptions (email, product_id, telegram_username)
		VALUES ($1, $2, $3)
		ON CONFLICT (email, product_id) DO UPDATE
		SET is_active = true,
			telegram_username = CASE
				WHEN $3 <> '' THEN $3
				ELSE subscriptions.telegram_username
			END,
			updated_at = now()
		WHERE subscriptions.is_active = false
		RETURNING id, telegram_username, is_active, created_at, updated_at, (xmax = 0) AS inserted
	`
	var inserted bool
	err := r.db.QueryRow(ctx, query, sub.Email, sub.ProductID, sub.TelegramUsername).Scan(
		&sub.ID,
		&sub.TelegramUsername,
		&sub.IsActive,
		&sub.CreatedAt,
		&sub.UpdatedAt,
		&inserted,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return subscriptions.OutcomeAlreadyActive, nil
		}
		return 0, fmt.Errorf("upsert subscription: %w", err)
	}

	if inserted {
		return subscriptions.OutcomeCreated, nil
	}
	return subscriptions.OutcomeReactivated, nil
}

// Deactivate soft-deletes the pair. The row is updated even when already
// inactive so repeated unsubscribes stay idempotent.
func (r *Repository) Deactivate(ctx context.Context, email, productID string) error {
	query := `
		UPDATE subscriptions
		SET is_active = false, updated_at = now()
		WHERE email = $1 AND product_id = $2
	`
	tag, err := r.db.Exec(ctx, query, email, productID)
	if err != nil {
		return fmt.Errorf("deactivate subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return subscriptions.ErrSubscriptionNotFound
	}
	return nil
}

// ListActiveWithProducts joins active subscriptions with their products.
// A LEFT JOIN keeps rows whose product was deleted visible so they can be
// counted as orphans instead of silently vanishing.
func (r *Repository) ListActiveWithProducts(ctx context.Context, email string) ([]domain.SubscriptionWithProduct, int, error) {
	query := `
		SELECT s.id, s.email, s.product_id, s.telegram_username, s.is_active,
			s.created_at, s.updated_at,
			p.id, p.product_id, p.name, p.url, p.in_stock, p.created_at, p.updated_at
		FROM subscriptions s
		LEFT JOIN products p ON p.product_id = s.product_id
		WHERE s.email = $1 AND s.is_active
		ORDER BY s.created_at
	`
	rows, err := r.db.Query(ctx, query, email)
	if err != nil {
		return nil, 0, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	subs := make([]domain.SubscriptionWithProduct, 0)
	orphans := 0
	for rows.Next() {
		var sub domain.SubscriptionWithProduct
		var (
			pID        *string
			pProductID *string
			pName      *string
			pURL       *string
			pInStock   *bool
			pCreatedAt *time.Time
			pUpdatedAt *time.Time
		)
		err := rows.Scan(
			&sub.ID,
			&sub.Email,
			&sub.ProductID,
			&sub.TelegramUsername,
			&sub.IsActive,
			&sub.CreatedAt,
			&sub.UpdatedAt,
			&pID,
			&pProductID,
			&pName,
			&pURL,
			&pInStock,
			&pCreatedAt,
			&pUpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("scan subscription: %w", err)
		}

		if pID == nil {
			orphans++
			continue
		}

		sub.Product = domain.Product{
			ID:        *pID,
			ProductID: *pProductID,
			Name:      *pName,
			URL:       *pURL,
			InStock:   *pInStock,
			CreatedAt: *pCreatedAt,
			UpdatedAt: *pUpdatedAt,
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate subscriptions: %w", err)
	}

	return subs, orphans, nil
}

// ActiveSubscriptionsForProduct returns the active subscriptions for a product,
// used to fan out restock notifications.
func (r *Repository) ActiveSubscriptionsForProduct(ctx context.Context, productID string) ([]domain.Subscription, error) {
	query := `
		SELECT id, email, product_id, telegram_username, is_active, created_at, updated_at
		FROM subscriptions
		WHERE product_id = $1 AND is_active
		ORDER BY created_at
	`
	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	defer rows.Close()

	subs := make([]domain.Subscription, 0)
	for rows.Next() {
		var sub domain.Subscription
		err := rows.Scan(
			&sub.ID,
			&sub.Email,
			&sub.ProductID,
			&sub.TelegramUsername,
			&sub.IsActive,
			&sub.CreatedAt,
			&sub.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan subscriber: %w", err)
		}
		subs = append(subs, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscribers: %w", err)
	}

	return subs, nil
}
