//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/restockwatch/restockwatch/internal/domain"
	"github.com/restockwatch/restockwatch/internal/testutil"
)

// operatorClient returns a client authenticated with an operator token.
func operatorClient(t *testing.T) *testutil.Client {
	t.Helper()

	token, err := authenticator.IssueToken("ops@example.com", domain.RoleOperator)
	require.NoError(t, err)

	return newTestClient(t).WithToken(token)
}

// randomEmail returns a unique subscriber address for test isolation.
func randomEmail(t *testing.T) string {
	t.Helper()
	return "sub-" + testutil.RandomSuffix() + "@example.com"
}

// createTestProduct creates a product and returns its business key.
// The product is deleted on cleanup unless the test already removed it.
func createTestProduct(t *testing.T, inStock bool) string {
	t.Helper()

	client := operatorClient(t)
	productID := "prod-" + testutil.RandomSuffix()

	resp, err := client.POST("/api/v1/products", map[string]interface{}{
		"productId": productID,
		"name":      "Test Product " + productID,
		"url":       "https://shop.example.com/" + productID,
		"inStock":   inStock,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode, testutil.ReadBody(t, resp))

	t.Cleanup(func() {
		resp, err := client.WithoutValidation().DELETE("/api/v1/products/" + productID)
		if err == nil {
			_ = resp.Body.Close()
		}
	})

	return productID
}

// subscribe subscribes email to productID and asserts success.
func subscribe(t *testing.T, client *testutil.Client, email, productID string) {
	t.Helper()

	resp, err := client.POST("/api/v1/subscriptions", map[string]string{
		"email":     email,
		"productId": productID,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, testutil.ReadBody(t, resp))
}

// envelope mirrors the API response body.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Error   string      `json:"error"`
	Data    interface{} `json:"data"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	var env envelope
	testutil.DecodeJSON(t, resp, &env)
	return env
}
