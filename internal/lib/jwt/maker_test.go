package jwt

import (
	"errors"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magelanov/travel-booking/internal/models"
)

func testUser(email string) *models.User {
	return &models.User{
		UID:   "a3f1c7be-0000-0000-0000-000000000001",
		Email: email,
		Name:  "Alice",
	}
}

func TestJWTMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	tokenTTL := 15 * time.Minute
	maker := NewJWTMaker(secretKey, tokenTTL)

	tests := []struct {
		name  string
		email string
	}{
		{
			name:  "plain email",
			email: "alice@example.com",
		},
		{
			name:  "email with subdomain",
			email: "bob@mail.example.org",
		},
		{
			name:  "email with plus tag",
			email: "carol+travel@example.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(testUser(tt.email))
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.email, claims.Subject)
			assert.Equal(t, "Alice", claims.Name)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestJWTMaker_ParseToken_InvalidTokens(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	maker := NewJWTMaker(secretKey, 15*time.Minute)

	validToken, err := maker.GenerateToken(testUser("alice@example.com"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "malformed token",
			token: "invalid.token.here",
		},
		{
			name:  "expired token",
			token: createExpiredToken(t, secretKey),
		},
		{
			name:  "wrong secret key",
			token: createTokenWithWrongSecret(t),
		},
		{
			name:  "tampered token",
			token: validToken + "tampered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}

func TestJWTMaker_ExpiredTokenError(t *testing.T) {
	secretKey := "test_secret_key"
	maker := NewJWTMaker(secretKey, -time.Hour)

	token, err := maker.GenerateToken(testUser("alice@example.com"))
	require.NoError(t, err)

	_, err = NewJWTMaker(secretKey, time.Hour).ParseToken(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwtlib.ErrTokenExpired))
}

func TestJWTMaker_ValidForUser(t *testing.T) {
	maker := NewJWTMaker("test_secret_key", 15*time.Minute)
	alice := testUser("alice@example.com")
	bob := testUser("bob@example.com")

	token, err := maker.GenerateToken(alice)
	require.NoError(t, err)

	// токен Алисы никогда не валиден для Боба
	assert.True(t, maker.ValidForUser(token, alice))
	assert.False(t, maker.ValidForUser(token, bob))
	assert.False(t, maker.ValidForUser("garbage", alice))

	expired, err := NewJWTMaker("test_secret_key", -time.Minute).GenerateToken(alice)
	require.NoError(t, err)
	assert.False(t, maker.ValidForUser(expired, alice))
}

func TestJWTMaker_DifferentSecretKeys(t *testing.T) {
	maker1 := NewJWTMaker("first_secret_key", 15*time.Minute)
	maker2 := NewJWTMaker("different_secret_key", 15*time.Minute)

	token, err := maker1.GenerateToken(testUser("alice@example.com"))
	require.NoError(t, err)

	claims, err := maker2.ParseToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)

	claims, err = maker1.ParseToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
}

func createExpiredToken(t *testing.T, secretKey string) string {
	maker := NewJWTMaker(secretKey, -time.Hour)
	token, err := maker.GenerateToken(testUser("alice@example.com"))
	require.NoError(t, err)
	return token
}

func createTokenWithWrongSecret(t *testing.T) string {
	wrongMaker := NewJWTMaker("wrong_secret_key", 15*time.Minute)
	token, err := wrongMaker.GenerateToken(testUser("alice@example.com"))
	require.NoError(t, err)
	return token
}
