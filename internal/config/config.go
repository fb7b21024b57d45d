// Package config reads server settings from the environment, after loading an
// optional .env file.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment names.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// SeedAccount is a login created at startup if missing.
type SeedAccount struct {
	Email    string
	Password string
	Role     string
}

// Config holds every runtime setting of the server.
type Config struct {
	Addr           string
	DBPath         string
	Env            string
	LogLevel       slog.Level
	CSRFKey        []byte
	SessionKey     []byte
	JWTSecret      []byte
	JWTTTL         time.Duration
	RedisAddr      string
	RedisPassword  string
	RateLimit      int
	SlowQuery      time.Duration
	SlowRequest    time.Duration
	TrustedOrigins []string
	SeedAccounts   []SeedAccount
}

// IsProduction reports whether secure cookies and mandatory secrets apply.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Load reads .env (if present) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from FITTRACK_* variables.
// PRE: none
// POST: In production, every secret is present and well-formed; in development,
// missing keys are replaced by random ones
func FromEnv() (Config, error) {
	cfg := Config{
		Addr:          getEnv("FITTRACK_ADDR", ":8080"),
		DBPath:        getEnv("FITTRACK_DB_PATH", "fittrack.db"),
		Env:           normalizeEnv(getEnv("FITTRACK_ENV", EnvDevelopment)),
		RedisAddr:     getEnv("FITTRACK_REDIS_ADDR", ""),
		RedisPassword: getEnv("FITTRACK_REDIS_PASSWORD", ""),
	}

	var err error
	if cfg.LogLevel, err = parseLevel(getEnv("FITTRACK_LOG_LEVEL", "info")); err != nil {
		return Config{}, err
	}
	if cfg.RateLimit, err = getEnvInt("FITTRACK_RATE_LIMIT", 10); err != nil {
		return Config{}, err
	}
	if cfg.SlowQuery, err = getEnvMillis("FITTRACK_SLOW_QUERY_MS", 50); err != nil {
		return Config{}, err
	}
	if cfg.SlowRequest, err = getEnvMillis("FITTRACK_SLOW_REQUEST_MS", 200); err != nil {
		return Config{}, err
	}
	if cfg.JWTTTL, err = time.ParseDuration(getEnv("FITTRACK_JWT_TTL", "24h")); err != nil || cfg.JWTTTL <= 0 {
		return Config{}, fmt.Errorf("FITTRACK_JWT_TTL must be a positive duration")
	}

	prod := cfg.IsProduction()
	if cfg.CSRFKey, err = hexKey("FITTRACK_CSRF_KEY", prod); err != nil {
		return Config{}, err
	}
	if cfg.SessionKey, err = hexKey("FITTRACK_SESSION_KEY", prod); err != nil {
		return Config{}, err
	}
	if secret := getEnv("FITTRACK_JWT_SECRET", ""); secret != "" {
		cfg.JWTSecret = []byte(secret)
	} else if prod {
		return Config{}, fmt.Errorf("FITTRACK_JWT_SECRET is required in production")
	} else {
		cfg.JWTSecret = randomKey("FITTRACK_JWT_SECRET")
	}

	if origins := getEnv("FITTRACK_TRUSTED_ORIGINS", ""); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.TrustedOrigins = append(cfg.TrustedOrigins, o)
			}
		}
	} else if !prod {
		cfg.TrustedOrigins = []string{"localhost:8080", "127.0.0.1:8080"}
	}

	cfg.SeedAccounts = []SeedAccount{
		{Email: getEnv("FITTRACK_SEED_TRAINER_EMAIL", ""), Password: getEnv("FITTRACK_SEED_TRAINER_PASSWORD", ""), Role: "trainer"},
		{Email: getEnv("FITTRACK_SEED_USER_EMAIL", ""), Password: getEnv("FITTRACK_SEED_USER_PASSWORD", ""), Role: "user"},
	}
	return cfg, nil
}

// getEnv treats an empty variable as unset.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", key)
	}
	return n, nil
}

func getEnvMillis(key string, fallback int) (time.Duration, error) {
	n, err := getEnvInt(key, fallback)
	return time.Duration(n) * time.Millisecond, err
}

// hexKey reads a 32-byte key encoded as 64 hex characters.
func hexKey(key string, required bool) ([]byte, error) {
	value := getEnv(key, "")
	if value == "" {
		if required {
			return nil, fmt.Errorf("%s is required in production", key)
		}
		return randomKey(key), nil
	}
	decoded, err := hex.DecodeString(value)
	if err != nil || len(decoded) != 32 {
		return nil, fmt.Errorf("%s must be 64 hex characters (32 bytes)", key)
	}
	return decoded, nil
}

func randomKey(name string) []byte {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		panic(fmt.Sprintf("generate %s: %v", name, err))
	}
	slog.Warn("config_random_key", "key", name, "note", "sessions and tokens won't survive restart")
	return key
}

func parseLevel(value string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return 0, fmt.Errorf("FITTRACK_LOG_LEVEL: %w", err)
	}
	return level, nil
}

func normalizeEnv(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "dev", "develop", "development", "local":
		return EnvDevelopment
	case "prod", "production":
		return EnvProduction
	default:
		return strings.ToLower(strings.TrimSpace(value))
	}
}
