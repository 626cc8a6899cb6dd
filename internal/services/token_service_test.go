package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/taskboard-api/internal/models"
)

func newTestTokenService() *TokenService {
	return NewTokenService("test-secret", "taskboard-api", "taskboard-clients", 15)
}

func testUser() *models.User {
	return &models.User{
		ID:       42,
		Email:    "admin@example.com",
		Username: "admin",
		Role:     models.RoleAdmin,
	}
}

func TestTokenService_GenerateAccessToken(t *testing.T) {
	svc := newTestTokenService()
	user := testUser()

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ParseAccessToken(token)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)
	require.Equal(t, user.Email, claims.Email)
	require.Equal(t, user.Username, claims.Username)
	require.Equal(t, models.RoleAdmin, claims.Role)
	require.Equal(t, "taskboard-api", claims.Issuer)
}

func TestTokenService_AccessTokensAreUnique(t *testing.T) {
	svc := newTestTokenService()
	user := testUser()

	token1, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	token2, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	require.NotEqual(t, token1, token2, "jti must make tokens for the same user distinct")
}

func TestTokenService_GenerateRefreshToken(t *testing.T) {
	svc := newTestTokenService()

	token1, err := svc.GenerateRefreshToken()
	require.NoError(t, err)
	require.NotEmpty(t, token1)

	token2, err := svc.GenerateRefreshToken()
	require.NoError(t, err)
	require.NotEqual(t, token1, token2, "two refresh tokens must differ")
}

func TestTokenService_ParseAccessToken_Invalid(t *testing.T) {
	svc := newTestTokenService()
	user := testUser()

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	// Wrong signing key
	other := NewTokenService("other-secret", "taskboard-api", "taskboard-clients", 15)
	_, err = other.ParseAccessToken(token)
	require.ErrorIs(t, err, ErrInvalidAccessToken)

	// Wrong issuer
	badIssuer := NewTokenService("test-secret", "someone-else", "taskboard-clients", 15)
	_, err = badIssuer.ParseAccessToken(token)
	require.ErrorIs(t, err, ErrInvalidAccessToken)

	// Wrong audience
	badAudience := NewTokenService("test-secret", "taskboard-api", "other-clients", 15)
	_, err = badAudience.ParseAccessToken(token)
	require.ErrorIs(t, err, ErrInvalidAccessToken)

	// Garbage
	_, err = svc.ParseAccessToken("not-a-token")
	require.ErrorIs(t, err, ErrInvalidAccessToken)
}

func TestTokenService_ParseAccessToken_Expired(t *testing.T) {
	svc := NewTokenService("test-secret", "taskboard-api", "taskboard-clients", -1)
	user := testUser()

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	_, err = svc.ParseAccessToken(token)
	require.ErrorIs(t, err, ErrInvalidAccessToken)
}
