package services

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/yukikurage/taskboard-api/internal/models"
)

var ErrInvalidAccessToken = errors.New("invalid access token")

// AccessTokenClaims are the claims embedded in every access token.
type AccessTokenClaims struct {
	Email    string          `json:"email"`
	Username string          `json:"username"`
	Role     models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// UserID returns the subject claim parsed as a user ID.
func (c *AccessTokenClaims) UserID() (uint64, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid subject claim: %w", err)
	}
	return id, nil
}

// TokenService issues signed access tokens and opaque refresh tokens.
type TokenService struct {
	secret         []byte
	issuer         string
	audience       string
	accessTokenTTL time.Duration
}

// NewTokenService creates a new TokenService.
func NewTokenService(secret, issuer, audience string, accessTokenMinutes int) *TokenService {
	return &TokenService{
		secret:         []byte(secret),
		issuer:         issuer,
		audience:       audience,
		accessTokenTTL: time.Duration(accessTokenMinutes) * time.Minute,
	}
}

// GenerateAccessToken produces a signed HS256 token carrying the user's
// identity and role. A fresh jti makes two tokens for the same user
// distinct even when issued in the same second.
func (s *TokenService) GenerateAccessToken(user *models.User) (string, error) {
	now := time.Now()

	claims := &AccessTokenClaims{
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(user.ID, 10),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenTTL)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, nil
}

// GenerateRefreshToken returns the base64 encoding of 32 random bytes.
// Opaque to the caller; carries no claims.
func (s *TokenService) GenerateRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// ParseAccessToken verifies signature, issuer, audience and expiry.
// Any failure means the caller is unauthenticated.
func (s *TokenService) ParseAccessToken(tokenString string) (*AccessTokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessTokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrInvalidAccessToken
	}

	claims, ok := token.Claims.(*AccessTokenClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidAccessToken
	}

	return claims, nil
}
