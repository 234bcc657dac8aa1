package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/vaultpass/passfx-go/internal/rates"
)

const devSessionSecret = "dev-secret-change-in-production"

var ErrInsecureSecret = errors.New("SESSION_SECRET must be set in production environment")

type Config struct {
	Port          string
	Env           string
	SessionSecret string
	SessionTTL    time.Duration
	RatesSeedFile string
	RatesLatency  time.Duration
	RatesSpread   float64
	LogLevel      string
	LogFormat     string
}

func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		Env:           getEnv("ENV", "development"),
		SessionSecret: getEnv("SESSION_SECRET", devSessionSecret),
		SessionTTL:    24 * time.Hour,
		RatesSeedFile: os.Getenv("RATES_SEED_FILE"),
		RatesLatency:  rates.DefaultLatency,
		RatesSpread:   rates.DefaultSpread,
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", cfg.SessionTTL); err != nil {
		return Config{}, err
	}
	if cfg.RatesLatency, err = getDuration("RATES_LATENCY", cfg.RatesLatency); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("RATES_SPREAD"); v != "" {
		spread, err := strconv.ParseFloat(v, 64)
		if err != nil || spread < 0 || spread > rates.MaxSpread {
			return Config{}, fmt.Errorf("invalid RATES_SPREAD %q: must be between 0 and %v", v, rates.MaxSpread)
		}
		cfg.RatesSpread = spread
	}

	if cfg.Env == "production" && cfg.SessionSecret == devSessionSecret {
		return Config{}, ErrInsecureSecret
	}

	return cfg, nil
}

// ProviderOptions returns the rate provider settings from cfg.
func (c Config) ProviderOptions() rates.ProviderOptions {
	return rates.ProviderOptions{Latency: c.RatesLatency, Spread: c.RatesSpread}
}

// Seed returns the configured rate seed, or the built-in table when no file is set.
func (c Config) Seed() (rates.Seed, error) {
	if c.RatesSeedFile == "" {
		return rates.DefaultSeed(), nil
	}
	return rates.LoadSeed(c.RatesSeedFile)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
