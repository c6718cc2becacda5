package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmardones/reparto-api/internal/config"
	"github.com/fmardones/reparto-api/internal/domain"
)

const testSecret = "test-secret-thats-long-enough-for-hmac-32"

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:          testSecret,
		TokenLifetimeHours: 24,
		BcryptCost:         DefaultBcryptCost,
	}
}

func testUsuario() *domain.Usuario {
	return &domain.Usuario{
		ID:       42,
		Username: "conductor",
		Email:    "conductor@reparto.cl",
	}
}

func TestNewJWTService_RejectsShortSecret(t *testing.T) {
	cfg := testAuthConfig()
	cfg.JWTSecret = "too-short"

	_, err := NewJWTService(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 characters")
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	token, err := service.GenerateToken(context.Background(), testUsuario())
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, 3, len(strings.Split(token, ".")), "JWT should have three segments")

	claims, err := service.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "conductor", claims.Username)
	assert.Equal(t, "conductor@reparto.cl", claims.Email)
	assert.NotEmpty(t, claims.ID, "token should carry a unique jti")
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt, time.Minute)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	service, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	impl := service.(*hmacJWTService)
	past := time.Now().Add(-48 * time.Hour)
	impl.timeFunc = func() time.Time { return past }

	token, err := service.GenerateToken(context.Background(), testUsuario())
	require.NoError(t, err)

	impl.timeFunc = time.Now
	_, err = service.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_WrongSecret(t *testing.T) {
	service, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	token, err := service.GenerateToken(context.Background(), testUsuario())
	require.NoError(t, err)

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "another-secret-thats-also-32-chars-long!"
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	_, err = other.ValidateToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_MalformedToken(t *testing.T) {
	service, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	_, err = service.ValidateToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_TokensCarryUniqueIDs(t *testing.T) {
	service, err := NewJWTService(testAuthConfig())
	require.NoError(t, err)

	first, err := service.GenerateToken(context.Background(), testUsuario())
	require.NoError(t, err)
	second, err := service.GenerateToken(context.Background(), testUsuario())
	require.NoError(t, err)

	firstClaims, err := service.ValidateToken(context.Background(), first)
	require.NoError(t, err)
	secondClaims, err := service.ValidateToken(context.Background(), second)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}
