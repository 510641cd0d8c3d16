package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("MONGODB_URI", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, BackendMemory, cfg.Store.Backend)
	require.Equal(t, "3000", cfg.Server.Port)
	require.Equal(t, "menu", cfg.MongoDB.Collection)
	require.Equal(t, "http://localhost:3000", cfg.UI.APIBaseURL)
	require.Equal(t, 10*time.Second, cfg.UI.RequestTimeout)
}

func TestLoadConfig_MongoInferredFromURI(t *testing.T) {
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DATABASE", "menu_test")
	t.Setenv("MONGODB_TIMEOUT", "3")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, BackendMongo, cfg.Store.Backend)
	require.Equal(t, "menu_test", cfg.MongoDB.Database)
	require.Equal(t, 3*time.Second, cfg.MongoDB.Timeout)
}

func TestLoadConfig_BackendRequirements(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("POSTGRES_DSN", "")
	t.Setenv("REDIS_HOST", "")

	for _, backend := range []string{BackendMongo, BackendPostgres, BackendRedis, "cassandra"} {
		t.Setenv("STORE_BACKEND", backend)
		_, err := LoadConfig()
		require.Error(t, err, backend)
	}

	t.Setenv("STORE_BACKEND", "REDIS")
	t.Setenv("REDIS_HOST", "localhost")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, BackendRedis, cfg.Store.Backend)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr())
}

func TestLoadConfig_ListsAndRateLimit(t *testing.T) {
	t.Setenv("STORE_BACKEND", BackendMemory)
	t.Setenv("CORS_ORIGINS", "http://a.local, http://b.local,")
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "4")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.Server.CORSOrigins)
	require.True(t, cfg.RateLimit.Enabled)
	require.Equal(t, 2.5, cfg.RateLimit.RPS)
	require.Equal(t, 4, cfg.RateLimit.Burst)
}
