package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	// Database
	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBUser     string `env:"DB_USER" env-default:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" env-default:"campuslink_db"`
	DBSSLMode  string `env:"DB_SSLMODE" env-default:"disable"`

	// JWT (issued by the auth service, only verified here)
	JWTSecret string `env:"JWT_SECRET"`

	// Admin
	AdminToken string `env:"ADMIN_TOKEN"`

	// Server
	Port        string `env:"PORT" env-default:"8080"`
	CORSOrigins string `env:"CORS_ORIGINS" env-default:"*"`

	// Observability
	SentryDSN string `env:"SENTRY_DSN"`
	AppEnv    string `env:"APP_ENV" env-default:"development"`

	// system_logs retention in days
	LogRetentionDays int `env:"LOG_RETENTION_DAYS" env-default:"30"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment config: %w", err)
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
