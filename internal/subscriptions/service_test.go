package subscriptions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restockwatch/restockwatch/internal/catalog"
	"github.com/restockwatch/restockwatch/internal/domain"
)

// mockRepository implements Repository for testing.
type mockRepository struct {
	upsertOutcome UpsertOutcome
	upsertErr     error
	upserted      *domain.Subscription

	deactivateErr error

	listSubs    []domain.SubscriptionWithProduct
	listOrphans int
	listErr     error
}

func (m *mockRepository) Upsert(_ context.Context, sub *domain.Subscription) (UpsertOutcome, error) {
	m.upserted = sub
	return m.upsertOutcome, m.upsertErr
}

func (m *mockRepository) Deactivate(_ context.Context, _, _ string) error {
	return m.deactivateErr
}

func (m *mockRepository) ListActiveWithProducts(_ context.Context, _ string) ([]domain.SubscriptionWithProduct, int, error) {
	return m.listSubs, m.listOrphans, m.listErr
}

// mockProductReader implements ProductReader for testing.
type mockProductReader struct {
	err error
}

func (m *mockProductReader) GetProduct(_ context.Context, _ string) (*domain.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Product{ProductID: "widget-1"}, nil
}

func TestServiceSubscribe(t *testing.T) {
	t.Run("creates new subscription", func(t *testing.T) {
		repo := &mockRepository{upsertOutcome: OutcomeCreated}
		svc := NewService(repo, &mockProductReader{})

		outcome, err := svc.Subscribe(context.Background(), SubscribeInput{
			Email:     "user@example.com",
			ProductID: "widget-1",
		})

		require.NoError(t, err)
		assert.Equal(t, OutcomeCreated, outcome)
	})

	t.Run("normalizes telegram username before storage", func(t *testing.T) {
		repo := &mockRepository{upsertOutcome: OutcomeCreated}
		svc := NewService(repo, &mockProductReader{})

		_, err := svc.Subscribe(context.Background(), SubscribeInput{
			Email:            "user@example.com",
			ProductID:        "widget-1",
			TelegramUsername: "@some_user",
		})

		require.NoError(t, err)
		assert.Equal(t, "some_user", repo.upserted.TelegramUsername)
	})

	t.Run("missing product short-circuits before upsert", func(t *testing.T) {
		repo := &mockRepository{}
		svc := NewService(repo, &mockProductReader{err: catalog.ErrProductNotFound})

		_, err := svc.Subscribe(context.Background(), SubscribeInput{
			Email:     "user@example.com",
			ProductID: "missing",
		})

		assert.ErrorIs(t, err, catalog.ErrProductNotFound)
		assert.Nil(t, repo.upserted)
	})

	t.Run("already active returns ErrAlreadySubscribed", func(t *testing.T) {
		repo := &mockRepository{upsertOutcome: OutcomeAlreadyActive}
		svc := NewService(repo, &mockProductReader{})

		outcome, err := svc.Subscribe(context.Background(), SubscribeInput{
			Email:     "user@example.com",
			ProductID: "widget-1",
		})

		assert.ErrorIs(t, err, ErrAlreadySubscribed)
		assert.Equal(t, OutcomeAlreadyActive, outcome)
	})

	t.Run("reactivates inactive subscription", func(t *testing.T) {
		repo := &mockRepository{upsertOutcome: OutcomeReactivated}
		svc := NewService(repo, &mockProductReader{})

		outcome, err := svc.Subscribe(context.Background(), SubscribeInput{
			Email:     "user@example.com",
			ProductID: "widget-1",
		})

		require.NoError(t, err)
		assert.Equal(t, OutcomeReactivated, outcome)
	})

	t.Run("repository error is wrapped", func(t *testing.T) {
		repoErr := errors.New("connection reset")
		repo := &mockRepository{upsertErr: repoErr}
		svc := NewService(repo, &mockProductReader{})

		_, err := svc.Subscribe(context.Background(), SubscribeInput{
			Email:     "user@example.com",
			ProductID: "widget-1",
		})

		assert.ErrorIs(t, err, repoErr)
	})
}

func TestServiceUnsubscribe(t *testing.T) {
	t.Run("missing subscription", func(t *testing.T) {
		repo := &mockRepository{deactivateErr: ErrSubscriptionNotFound}
		svc := NewService(repo, &mockProductReader{})

		err := svc.Unsubscribe(context.Background(), "user@example.com", "widget-1")
		assert.ErrorIs(t, err, ErrSubscriptionNotFound)
	})

	t.Run("success", func(t *testing.T) {
		svc := NewService(&mockRepository{}, &mockProductReader{})

		err := svc.Unsubscribe(context.Background(), "user@example.com", "widget-1")
		assert.NoError(t, err)
	})
}

func TestServiceList(t *testing.T) {
	t.Run("returns empty slice instead of nil", func(t *testing.T) {
		svc := NewService(&mockRepository{}, &mockProductReader{})

		subs, err := svc.List(context.Background(), "user@example.com")
		require.NoError(t, err)
		assert.NotNil(t, subs)
		assert.Empty(t, subs)
	})

	t.Run("orphans do not fail the request", func(t *testing.T) {
		repo := &mockRepository{
			listSubs: []domain.SubscriptionWithProduct{
				{Subscription: domain.Subscription{Email: "user@example.com", ProductID: "widget-1"}},
			},
			listOrphans: 2,
		}
		svc := NewService(repo, &mockProductReader{})

		subs, err := svc.List(context.Background(), "user@example.com")
		require.NoError(t, err)
		assert.Len(t, subs, 1)
	})
}
