package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

type Config struct {
	Port              string
	GinMode           string
	LogLevel          zerolog.Level
	Debounce          time.Duration
	SessionTTL        time.Duration
	DisposableTimeout int
	MaxLogoBytes      int64
}

func Load() *Config {
	level, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	return &Config{
		Port:              getEnv("PORT", "8080"),
		GinMode:           getEnv("GIN_MODE", "release"),
		LogLevel:          level,
		Debounce:          time.Duration(getEnvInt("DEBOUNCE_MS", 300)) * time.Millisecond,
		SessionTTL:        getEnvDuration("SESSION_TTL", 30*time.Minute),
		DisposableTimeout: getEnvInt("DISPOSABLE_TIMEOUT", 60),
		MaxLogoBytes:      int64(getEnvInt("MAX_LOGO_BYTES", 2<<20)),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
