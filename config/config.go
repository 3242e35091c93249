package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config contains server configuration parameters.
type Config struct {
	Port           string        `env:"PORT" envDefault:"8080"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	MongoURI       string        `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
	DatabaseName   string        `env:"DATABASE_NAME" envDefault:"etudify"`
	AccessSecret   string        `env:"JWT_SECRET"`
	RefreshSecret  string        `env:"JWT_REFRESH_SECRET"`
	AccessTTL      time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTTL     time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`
	CookieDomain   string        `env:"COOKIE_DOMAIN"`
	CookieSecure   bool          `env:"COOKIE_SECURE" envDefault:"false"`
}

// Load reads .env if present, then parses configuration from the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("missing JWT_SECRET or JWT_REFRESH_SECRET env vars")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, fmt.Errorf("JWT_SECRET and JWT_REFRESH_SECRET must differ")
	}

	return &cfg, nil
}
