package subscriptions

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/restockwatch/restockwatch/internal/catalog"
	"github.com/restockwatch/restockwatch/internal/pkg/httputil"
)

func newTestRouter(repo Repository, products ProductReader) *chi.Mux {
	r := chi.NewRouter()
	NewHandler(NewService(repo, products)).RegisterRoutes(r)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) (*httptest.ResponseRecorder, httputil.Envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env httputil.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestSubscribeHandler(t *testing.T) {
	t.Run("missing email", func(t *testing.T) {
		router := newTestRouter(&mockRepository{}, &mockProductReader{})

		rec, env := doJSON(t, router, http.MethodPost, "/subscriptions", map[string]string{
			"productId": "widget-1",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, env.Success)
		assert.Equal(t, "Email and productId are required", env.Error)
	})

	t.Run("missing productId", func(t *testing.T) {
		router := newTestRouter(&mockRepository{}, &mockProductReader{})

		rec, env := doJSON(t, router, http.MethodPost, "/subscriptions", map[string]string{
			"email": "user@example.com",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Email and productId are required", env.Error)
	})

	t.Run("invalid email", func(t *testing.T) {
		router := newTestRouter(&mockRepository{}, &mockProductReader{})

		rec, env := doJSON(t, router, http.MethodPost, "/subscriptions", map[string]string{
			"email":     "not-an-email",
			"productId": "widget-1",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid email format", env.Error)
	})

	t.Run("invalid telegram username", func(t *testing.T) {
		router := newTestRouter(&mockRepository{}, &mockProductReader{})

		rec, env := doJSON(t, router, http.MethodPost, "/subscriptions", map[string]string{
			"email":            "user@example.com",
			"productId":        "widget-1",
			"telegramUsername": "bad",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid Telegram username format (5-32 characters, letters, numbers, underscores only)", env.Error)
	})

	t.Run("empty telegram username is allowed", func(t *testing.T) {
		router := newTestRouter(&mockRepository{upsertOutcome: OutcomeCreated}, &mockProductReader{})

		rec, env := doJSON(t, router, http.MethodPost, "/subscriptions", map[string]string{
			"email":            "user@example.com",
			"productId":        "widget-1",
			"telegramUsername": "",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, env.Success)
	})

	t.Run("unknown product", func(t *testing.T) {
		router := newTestRouter(&mockRepository{}, &mockProductReader{err: catalog.ErrProductNotFound})

		rec, env := doJSON(t, router, http.MethodPost, "/subscriptions", map[string]string{
			"email":     "user@example.com",
			"productId": "missing",
		})

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Product not found", env.Error)
	})

	t.Run("new subscription", func(t *testing.T) {
		router := newTestRouter(&mockRepository{upsertOutcome: OutcomeCreated}, &mockProductReader{})

		rec, env := doJSON(t, router, http.MethodPost, "/subscriptions", map[string]string{
			"email":     "user@example.com",
			"productId": "widget-1",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, env.Success)
		assert.Equal(t, "Successfully subscribed to product notifications", env.Message)
	})

	t.Run("reactivated subscription", func(t *testing.T) {
		router := newTestRouter(&mockRepository{upsertOutcome: OutcomeReactivated}, &mockProductReader{})

		rec, env := doJSON(t, router, http.MethodPost, "/subscriptions", map[string]string{
			"email":     "user@example.com",
			"productId": "widget-1",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Subscription reactivated successfully", env.Message)
	})

	t.Run("duplicate subscription", func(t *testing.T) {
		router := newTestRouter(&mockRepository{upsertOutcome: OutcomeAlreadyActive}, &mockProductReader{})

		rec, env := doJSON(t, router, http.MethodPost, "/subscriptions", map[string]string{
			"email":     "user@example.com",
			"productId": "widget-1",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.False(t, env.Success)
		assert.Equal(t, "Already subscribed to this product", env.Error)
	})
}

func TestUnsubscribeHandler(t *testing.T) {
	t.Run("missing fields", func(t *testing.T) {
		router := newTestRouter(&mockRepository{}, &mockProductReader{})

		rec, env := doJSON(t, router, http.MethodPost, "/subscriptions/unsubscribe", map[string]string{})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Email and productId are required", env.Error)
	})

	t.Run("invalid email", func(t *testing.T) {
		router := newTestRouter(&mockRepository{}, &mockProductReader{})

		rec, env := doJSON(t, router, http.MethodPost, "/subscriptions/unsubscribe", map[string]string{
			"email":     "nope",
			"productId": "widget-1",
		})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid email format", env.Error)
	})

	t.Run("unknown subscription", func(t *testing.T) {
		router := newTestRouter(&mockRepository{deactivateErr: ErrSubscriptionNotFound}, &mockProductReader{})

		rec, env := doJSON(t, router, http.MethodPost, "/subscriptions/unsubscribe", map[string]string{
			"email":     "user@example.com",
			"productId": "widget-1",
		})

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Subscription not found", env.Error)
	})

	t.Run("success", func(t *testing.T) {
		router := newTestRouter(&mockRepository{}, &mockProductReader{})

		rec, env := doJSON(t, router, http.MethodPost, "/subscriptions/unsubscribe", map[string]string{
			"email":     "user@example.com",
			"productId": "widget-1",
		})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, env.Success)
		assert.Equal(t, "Successfully unsubscribed", env.Message)
	})
}

func TestListSubscriptionsHandler(t *testing.T) {
	t.Run("invalid email in path", func(t *testing.T) {
		router := newTestRouter(&mockRepository{}, &mockProductReader{})

		rec, env := doJSON(t, router, http.MethodGet, "/subscriptions/not-an-email", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid email format", env.Error)
	})

	t.Run("empty list serializes as array", func(t *testing.T) {
		router := newTestRouter(&mockRepository{}, &mockProductReader{})

		req := httptest.NewRequest(http.MethodGet, "/subscriptions/user@example.com", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"data":[]}`, rec.Body.String())
	})
}
