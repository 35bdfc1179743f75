package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config centraliza la configuración cargada del ambiente.
type Config struct {
	Port            int
	APIBase         string
	RedisURL        string
	SessionTTL      time.Duration
	HTTPTimeout     time.Duration
	AllowOrigins    []string
	RateLimitPublic RateLimitConfig
	RateLimitAdmin  RateLimitConfig
}

// RateLimitConfig representa límites simples para throttling.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load carga variables de ambiente y aplica defaults seguros.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 {
		return nil, errors.New("PORT inválida")
	}
	cfg.Port = port

	cfg.APIBase = strings.TrimRight(strings.TrimSpace(getEnv("API_BASE", "")), "/")
	if cfg.APIBase == "" {
		return nil, errors.New("API_BASE obligatoria")
	}

	cfg.RedisURL = getEnv("REDIS_URL", "")
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL obligatoria")
	}

	// SESSION_TTL = 0 significa sesión sin expiración automática.
	sessionTTL, err := parseDurationEnv("SESSION_TTL", 0)
	if err != nil {
		return nil, err
	}
	cfg.SessionTTL = sessionTTL

	httpTimeout, err := parseDurationEnv("HTTP_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout = httpTimeout

	allowOrigins := strings.Split(getEnv("ALLOW_ORIGINS", ""), ",")
	cfg.AllowOrigins = nil
	for _, origin := range allowOrigins {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
		}
	}

	cfg.RateLimitPublic = RateLimitConfig{RequestsPerSecond: 10, Burst: 20}
	cfg.RateLimitAdmin = RateLimitConfig{RequestsPerSecond: 10, Burst: 40}

	return cfg, nil
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	val := getEnv(key, "")
	if val == "" {
		return def, nil
	}
	dur, err := time.ParseDuration(val)
	if err != nil {
		return 0, errors.New(key + " inválido")
	}
	return dur, nil
}
