package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the process configuration.
type Config struct {
	AppPort        string
	AppEnv         string
	DatabaseDriver string
	DatabaseDSN    string
	JWTSecret      string
	RawgAPIKey     string
	RawgBaseURL    string
	RabbitMQURL    string
	EventsQueue    string
	CORSOrigins    string
	LogLevel       string
	LogFormat      string
}

// SetDefaults registers default values on v. JWT_SECRET has no default.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=ludoteca port=5432 sslmode=disable")
	v.SetDefault("RAWG_BASE_URL", "https://api.rawg.io/api")
	v.SetDefault("RAWG_API_KEY", "")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("EVENTS_QUEUE", "game_events")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("JWT_SECRET", "")
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds a Config from v and validates it.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:        v.GetString("APP_PORT"),
		AppEnv:         strings.ToLower(v.GetString("APP_ENV")),
		DatabaseDriver: strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		RawgAPIKey:     v.GetString("RAWG_API_KEY"),
		RawgBaseURL:    v.GetString("RAWG_BASE_URL"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		EventsQueue:    v.GetString("EVENTS_QUEUE"),
		CORSOrigins:    v.GetString("CORS_ORIGINS"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFormat:      v.GetString("LOG_FORMAT"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server must not start with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.DatabaseDriver {
	case "postgres", "sqlite", "memory":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	return nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
