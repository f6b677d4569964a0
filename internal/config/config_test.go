package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRedisConfig_Defaults(t *testing.T) {
	t.Setenv(redisAddrEnv, "")
	t.Setenv(redisDBEnv, "")

	cfg, err := LoadRedisConfig()
	require.NoError(t, err)
	assert.Equal(t, defaultRedisAddr, cfg.Addr)
	assert.Equal(t, 0, cfg.DB)
	assert.NoError(t, cfg.Validate())
}

func TestLoadRedisConfig_InvalidDB(t *testing.T) {
	t.Setenv(redisDBEnv, "two")

	_, err := LoadRedisConfig()
	assert.ErrorIs(t, err, ErrInvalidRedisDB)
}

func TestRedisConfig_ValidateNil(t *testing.T) {
	var cfg *RedisConfig
	assert.ErrorIs(t, cfg.Validate(), ErrRedisAddrMissing)
}

func TestLoadServerConfig(t *testing.T) {
	tests := []struct {
		name    string
		backend string
		wantErr error
	}{
		{name: "memory by default", backend: ""},
		{name: "redis", backend: BackendRedis},
		{name: "unknown backend", backend: "postgres", wantErr: ErrInvalidBackend},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(backendEnv, tt.backend)
			t.Setenv(listenAddrEnv, "")

			cfg, err := LoadServerConfig()
			require.NoError(t, err)
			assert.Equal(t, defaultListenAddr, cfg.ListenAddr)
			assert.Equal(t, tt.wantErr, cfg.Validate())
		})
	}
}
