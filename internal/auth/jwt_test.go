package auth

import (
	"context"
	"testing"
	"time"

	"github.com/restockwatch/restockwatch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticator_IssueAndValidate(t *testing.T) {
	a := NewAuthenticator(Config{
		SecretKey:     "test-secret-key",
		TokenDuration: time.Hour,
	})

	token, err := a.IssueToken("ops@example.com", domain.RoleOperator)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, role, err := a.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", subject)
	assert.Equal(t, domain.RoleOperator, role)
}

func TestAuthenticator_RejectsUnknownRole(t *testing.T) {
	a := NewAuthenticator(Config{SecretKey: "test-secret-key", TokenDuration: time.Hour})

	_, err := a.IssueToken("ops@example.com", domain.Role("superuser"))
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestAuthenticator_RejectsWrongSecret(t *testing.T) {
	issuer := NewAuthenticator(Config{SecretKey: "secret-a", TokenDuration: time.Hour})
	verifier := NewAuthenticator(Config{SecretKey: "secret-b", TokenDuration: time.Hour})

	token, err := issuer.IssueToken("ops@example.com", domain.RoleAdmin)
	require.NoError(t, err)

	_, _, err = verifier.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthenticator_RejectsExpiredToken(t *testing.T) {
	a := NewAuthenticator(Config{SecretKey: "test-secret-key", TokenDuration: -time.Minute})

	token, err := a.IssueToken("ops@example.com", domain.RoleOperator)
	require.NoError(t, err)

	_, _, err = a.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
