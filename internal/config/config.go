package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config contains server configuration parameters.
type Config struct {
	Port        string   `env:"API_PORT" envDefault:"8080"`
	LogLevel    int      `env:"LOG_LEVEL" envDefault:"0"`
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:3000"`
	BcryptCost  int      `env:"BCRYPT_COST" envDefault:"10"`
	Mongo       Mongo    `envPrefix:"MONGO_"`
	JWT         JWT      `envPrefix:"JWT_"`
}

// Mongo contains document store connection parameters.
type Mongo struct {
	URI      string `env:"URI" envDefault:"mongodb://localhost:27017"`
	Database string `env:"DATABASE" envDefault:"crm"`
}

// JWT contains token signing parameters. TTL values accept Go duration
// syntax ("15m", "720h").
type JWT struct {
	Secret     string        `env:"SECRET" envDefault:"devsecret"`
	AccessTTL  time.Duration `env:"ACCESS_TTL" envDefault:"15m"`
	RefreshTTL time.Duration `env:"REFRESH_TTL" envDefault:"720h"`
}

// New loads configuration from environment variables.
func New() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
