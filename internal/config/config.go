package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingSecret = errors.New("missing required env JWT_SECRET")

type Config struct {
	ServiceName string

	ServerPort int

	StoreURL string

	JWTSecret      []byte
	AccessTokenTTL time.Duration

	KafkaBrokers []string

	LogLevel    string
	SeedOnStart bool
}

func Load(envFile string) Config {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Printf("Notice: %s file not found: %v. Using system environment variables", envFile, err)
		}
	}

	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "vogue_nest"),

		ServerPort: EnvIntDefault("SERVER_PORT", 8080),

		StoreURL: EnvDefault("STORE_URL", "sqlite://vogue_nest.db"),

		JWTSecret:      []byte(os.Getenv("JWT_SECRET")),
		AccessTokenTTL: EnvDurationDefault("ACCESS_TOKEN_TTL", 15*time.Minute),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		LogLevel:    EnvDefault("LOG_LEVEL", "info"),
		SeedOnStart: EnvBoolDefault("SEED_ON_START", true),
	}
}

// RequireServe checks what only the HTTP server needs.
func (c Config) RequireServe() error {
	if len(c.JWTSecret) == 0 {
		return ErrMissingSecret
	}
	return nil
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

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
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
