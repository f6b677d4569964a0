package config

import (
	"os"
)

const (
	listenAddrEnv = "PLANNER_LISTEN_ADDR"
	backendEnv    = "PLANNER_STORE"
	versionEnv    = "PLANNER_VERSION"

	defaultListenAddr = ":8080"

	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// ServerConfig configures the dashboard server. Flags override the
// environment.
type ServerConfig struct {
	ListenAddr string
	Backend    string
	Version    string
	Redis      *RedisConfig
}

func LoadServerConfig() (*ServerConfig, error) {
	redisCfg, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}
	cfg := &ServerConfig{
		ListenAddr: os.Getenv(listenAddrEnv),
		Backend:    os.Getenv(backendEnv),
		Version:    os.Getenv(versionEnv),
		Redis:      redisCfg,
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = defaultListenAddr
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendMemory
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	return cfg, nil
}

func (c *ServerConfig) Validate() error {
	switch c.Backend {
	case BackendMemory:
		return nil
	case BackendRedis:
		return c.Redis.Validate()
	default:
		return ErrInvalidBackend
	}
}
