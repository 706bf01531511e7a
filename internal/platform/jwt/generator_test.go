package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewGenerator は各種設定でGeneratorが正しく生成されることを検証します。
func TestNewGenerator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		secret     string
		expiration time.Duration
	}{
		{"standard config", "my-secret-key", time.Hour},
		{"long expiration", "secret", 24 * time.Hour * 30},
		{"short expiration", "s", time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			gen := NewGenerator(tt.secret, tt.expiration)

			require.NotNil(t, gen)
			assert.Equal(t, tt.secret, string(gen.secret))
			assert.Equal(t, tt.expiration, gen.expiration)
		})
	}
}

// TestGenerator_GenerateToken は生成されたJWTトークンが有効で正しいクレームを含むことを検証します。
func TestGenerator_GenerateToken(t *testing.T) {
	t.Parallel()

	issued := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	gen := NewGenerator("secret", 2*time.Hour)
	gen.now = func() time.Time { return issued }

	signed, err := gen.GenerateToken("researcher")
	require.NoError(t, err)

	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(signed, &claims, func(t *jwt.Token) (any, error) {
		return []byte("secret"), nil
	}, jwt.WithTimeFunc(func() time.Time { return issued.Add(time.Hour) }))
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, jwt.SigningMethodHS256.Alg(), token.Method.Alg())
	assert.Equal(t, "researcher", claims.Subject)
	assert.Equal(t, issued.Add(2*time.Hour).Unix(), claims.ExpiresAt.Unix())
}

// TestGenerator_GenerateToken_EmptySecret は空のシークレットでは署名しないことを検証します。
func TestGenerator_GenerateToken_EmptySecret(t *testing.T) {
	t.Parallel()

	_, err := NewGenerator("", time.Hour).GenerateToken("researcher")
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(EnvKeyJWTSecret, "abc")
	t.Setenv(EnvKeyJWTExpiration, "90m")
	assert.Equal(t, Config{Secret: "abc", Expiration: 90 * time.Minute}, LoadConfig())

	t.Setenv(EnvKeyJWTExpiration, "soon")
	assert.Equal(t, defaultExpiration, LoadConfig().Expiration)
}
