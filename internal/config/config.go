package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Database
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"volunteer_hub"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// JWT
	JWTSecret        string        `env:"JWT_SECRET"`
	JWTAccessExpiry  time.Duration `env:"JWT_ACCESS_EXPIRY" envDefault:"15m"`
	JWTRefreshExpiry time.Duration `env:"JWT_REFRESH_EXPIRY" envDefault:"168h"`

	// Admin elevation on top of the role claim
	AdminEmails  []string `env:"ADMIN_EMAILS" envSeparator:","`
	AdminUserIDs []string `env:"ADMIN_USER_IDS" envSeparator:","`

	// Server
	Port        string `env:"PORT" envDefault:"8080"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`
	BodyLimit   int    `env:"BODY_LIMIT" envDefault:"4194304"`

	// Requests per minute per IP on /api/auth; 0 disables the limiter.
	AuthRateLimit int `env:"AUTH_RATE_LIMIT" envDefault:"10"`

	// Observability
	LogRetention time.Duration `env:"LOG_RETENTION" envDefault:"720h"`
	SentryDSN    string        `env:"SENTRY_DSN"`
	AppEnv       string        `env:"APP_ENV" envDefault:"development"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}
