package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServiceName string

	ServerPort int

	DatabaseURL string

	JWTSecret []byte
	TokenTTL  time.Duration

	CORSOrigins []string

	LogLevel string
	LogFile  string

	KafkaBrokers []string
}

func Load() Config {
	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "printshop"),

		ServerPort: EnvIntDefault("SERVER_PORT", 9000),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),
		TokenTTL:  EnvDurationDefault("TOKEN_TTL", 30*24*time.Hour),

		CORSOrigins: CSV(EnvDefault("CORS_ORIGINS", "http://localhost:5173")),

		LogLevel: EnvDefault("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
