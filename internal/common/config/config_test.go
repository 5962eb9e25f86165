package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, SessionBackendMemory, cfg.Session.Backend)
	assert.Equal(t, "http://127.0.0.1:8080", cfg.APIBase())
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("API_BASE_URL", "http://localhost:9090/")
	t.Setenv("API_TIMEOUT", "2s")
	t.Setenv("SESSION_BACKEND", "redis")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9090", cfg.APIBase())
	assert.Equal(t, 2*time.Second, cfg.API.Timeout)
	assert.Equal(t, SessionBackendRedis, cfg.Session.Backend)
}

func TestParse_InvalidBackend(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "etcd")

	_, err := Parse()
	assert.Error(t, err)
}
