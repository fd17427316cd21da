package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "your-secret-key"

type Config struct {
	AppEnv             string        `mapstructure:"APP_ENV"`
	Port               string        `mapstructure:"PORT"`
	MongoURI           string        `mapstructure:"MONGODB_URI"`
	MongoDatabase      string        `mapstructure:"MONGODB_DATABASE"`
	JWTSecret          string        `mapstructure:"JWT_SECRET"`
	JWTTTL             time.Duration `mapstructure:"JWT_TTL"`
	RedisAddr          string        `mapstructure:"REDIS_ADDR"`
	RedisPassword      string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB            int           `mapstructure:"REDIS_DB"`
	CORSOrigins        []string      `mapstructure:"CORS_ORIGINS"`
	CacheTTL           time.Duration `mapstructure:"CACHE_TTL"`
	AdminUIDir         string        `mapstructure:"ADMIN_UI_DIR"`
	RateLimitPerMinute int           `mapstructure:"RATE_LIMIT_PER_MINUTE"`
}

// Load reads .env (when present) and the process environment into a Config.
// The result is treated as immutable after startup.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found; using system environment")
	}

	v := viper.New()
	v.SetDefault("APP_ENV", "production")
	v.SetDefault("PORT", "3001")
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DATABASE", "reisegruppen")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_TTL", "24h")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CORS_ORIGINS", []string{"http://localhost:5173", "http://localhost:5174"})
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("ADMIN_UI_DIR", "")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 30)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == defaultJWTSecret {
		log.Warn().Msg("JWT_SECRET is not set; using the development default")
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.JWTTTL)
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive, got %d", c.RateLimitPerMinute)
	}
	if strings.TrimSpace(c.MongoDatabase) == "" {
		return fmt.Errorf("MONGODB_DATABASE must not be empty")
	}
	return nil
}

// Development reports whether internal error details may be exposed to clients.
func (c *Config) Development() bool {
	return c.AppEnv == "development" || c.AppEnv == "dev"
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}
