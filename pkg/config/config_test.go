package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_ValoresPorDefecto(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "Inventario", cfg.App.StoreName)
	assert.Equal(t, "0.0.0.0:3000", cfg.HTTP.Addr())
	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout())
	assert.Equal(t, "/reports", cfg.Routes.LoginDefaultRedirect)
	assert.Equal(t, "/products", cfg.Routes.PageFallback)
	assert.False(t, cfg.Redis.Enabled())
	assert.Zero(t, cfg.Cache.MaxAge())
	assert.Equal(t, 30*time.Minute, cfg.Cache.Idle())
}

func TestFromViper_EnvSobrescribe(t *testing.T) {
	v := viper.New()
	v.Set("API_BASE_URL", "https://api.example.com/v1/")
	v.Set("HTTP_PORT", "8081")
	v.Set("REDIS_HOST", "cache")
	v.Set("CACHE_MAX_AGE_SECONDS", 30)

	cfg, err := fromViper(v)
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/v1", cfg.API.BaseURL, "se recorta la barra final")
	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "cache:6379", cfg.Redis.Addr())
	assert.Equal(t, 30*time.Second, cfg.Cache.MaxAge())
}

func TestFromViper_RutaPorDefectoRelativaEsError(t *testing.T) {
	v := viper.New()
	v.Set("PAGE_FALLBACK", "products")

	_, err := fromViper(v)
	assert.Error(t, err)
}

func TestFromViper_BlockKeyLongitudInvalida(t *testing.T) {
	v := viper.New()
	v.Set("COOKIE_BLOCK_KEY", "corta")

	_, err := fromViper(v)
	assert.Error(t, err)
}
