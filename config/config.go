// Package config loads runtime settings from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppName string
	AppEnv  string
	Port    string

	// DBPath is the SQLite database file; ":memory:" works for
	// throwaway runs.
	DBPath string

	SessionMaxAge    time.Duration
	SessionCacheTTL  time.Duration
	SessionCacheSize int

	// AdminUsername/AdminPassword seed the first account when the
	// users table is empty.
	AdminUsername string
	AdminPassword string
}

func Load() *Config {
	// Missing .env is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	return &Config{
		AppName:          getEnv("APP_NAME", "stele"),
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		DBPath:           getEnv("DB_PATH", "site.db"),
		SessionMaxAge:    getDuration("SESSION_MAX_AGE", 24*time.Hour),
		SessionCacheTTL:  getDuration("SESSION_CACHE_TTL", 5*time.Minute),
		SessionCacheSize: getInt("SESSION_CACHE_SIZE", 500),
		AdminUsername:    getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:    getEnv("ADMIN_PASSWORD", "admin"),
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
