package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Backends soportados para persistir la coleccion de sesiones.
const (
	StoreBackendFile     = "file"
	StoreBackendRedis    = "redis"
	StoreBackendPostgres = "postgres"
	StoreBackendMemory   = "memory"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort            string `env:"HTTP_PORT" envDefault:"8080"`
	AgentURL            string `env:"AGENT_URL,required,notEmpty"`
	AgentAPIKey         string `env:"AGENT_API_KEY"`
	AgentID             string `env:"AGENT_ID" envDefault:"698836b220be1079ff146ee8"`
	AgentTimeoutSeconds int    `env:"AGENT_TIMEOUT_SECONDS" envDefault:"60"`
	StoreBackend        string `env:"STORE_BACKEND" envDefault:"file"`
	StoreKey            string `env:"STORE_KEY" envDefault:"roomcraft_sessions"`
	StorePath           string `env:"STORE_PATH" envDefault:"roomcraft_sessions.json"`
	DatabaseURL         string `env:"DATABASE_URL"`
	RedisAddr           string `env:"REDIS_ADDR"`
	RedisPassword       string `env:"REDIS_PASSWORD"`
	RedisDB             int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// AgentTimeout devuelve el limite para cada llamada al agente.
func (c *Config) AgentTimeout() time.Duration {
	if c.AgentTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.AgentTimeoutSeconds) * time.Second
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case StoreBackendFile, StoreBackendMemory:
	case StoreBackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("config: REDIS_ADDR required for store backend %q", c.StoreBackend)
		}
	case StoreBackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL required for store backend %q", c.StoreBackend)
		}
	default:
		return fmt.Errorf("config: unknown store backend %q", c.StoreBackend)
	}
	return nil
}
