package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Captcha   CaptchaConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
}

type ServerConfig struct {
	Port        string
	Environment string
	Region      string
}

type DatabaseConfig struct {
	URL string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (r RedisConfig) GetRedisAddr() string {
	return r.Host + ":" + r.Port
}

type CaptchaConfig struct {
	Secret    string
	VerifyURL string
}

type AuthConfig struct {
	JWTSecret     string
	JWTExpiry     time.Duration
	AdminUIDs     []string
	AdminEmail    string
	AdminPassword string
}

// RateLimitDimension holds the cap and fixed-window length for one key space.
type RateLimitDimension struct {
	Max    int
	Window time.Duration
}

type RateLimitConfig struct {
	IP RateLimitDimension
	ID RateLimitDimension
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load builds the configuration from the environment. The captcha secret and
// JWT secret have no usable defaults: accepting signatures without them would
// fail open, so their absence is a startup error.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			Environment: getEnv("ENVIRONMENT", "development"),
			Region:      getEnv("REGION", ""),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Captcha: CaptchaConfig{
			Secret:    getEnv("CAPTCHA_SECRET", ""),
			VerifyURL: getEnv("CAPTCHA_VERIFY_URL", "https://hcaptcha.com/siteverify"),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			JWTExpiry:     time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
			AdminUIDs:     getEnvList("ADMIN_UIDS"),
			AdminEmail:    getEnv("ADMIN_EMAIL", ""),
			AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		},
		RateLimit: RateLimitConfig{
			IP: RateLimitDimension{
				Max:    getEnvInt("RATE_IP_MAX", 20),
				Window: getEnvDuration("RATE_IP_WINDOW", time.Hour),
			},
			ID: RateLimitDimension{
				Max:    getEnvInt("RATE_ID_MAX", 5),
				Window: getEnvDuration("RATE_ID_WINDOW", 24*time.Hour),
			},
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("ALLOWED_ORIGINS"),
		},
	}

	if cfg.Database.URL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	if cfg.Captcha.Secret == "" {
		return nil, errors.New("CAPTCHA_SECRET is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.RateLimit.IP.Max <= 0 || cfg.RateLimit.ID.Max <= 0 {
		return nil, fmt.Errorf("rate limit maximums must be positive (ip=%d, id=%d)",
			cfg.RateLimit.IP.Max, cfg.RateLimit.ID.Max)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}

	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}

	return d
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			list = append(list, trimmed)
		}
	}

	return list
}
