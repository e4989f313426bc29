// Package config loads server configuration from an optional YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPAddr          string `yaml:"http_addr"`
	MySQLDSN          string `yaml:"mysql_dsn"`
	RedisAddr         string `yaml:"redis_addr"`
	OfferCacheSeconds int    `yaml:"offer_cache_seconds"`
	PaymentBaseURL    string `yaml:"payment_base_url"`
}

func Default() Config {
	return Config{
		HTTPAddr:          ":8080",
		MySQLDSN:          "root:root@tcp(localhost:3306)/fashionstore?parseTime=true",
		RedisAddr:         "localhost:6379",
		OfferCacheSeconds: 30,
		PaymentBaseURL:    "http://localhost:9090",
	}
}

// Load reads path (when non-empty) over the defaults, then applies the
// HTTP_ADDR, MYSQL_DSN, REDIS_ADDR and PAYMENT_BASE_URL environment
// overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("MYSQL_DSN"); v != "" {
		cfg.MySQLDSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("PAYMENT_BASE_URL"); v != "" {
		cfg.PaymentBaseURL = v
	}

	if cfg.OfferCacheSeconds <= 0 {
		cfg.OfferCacheSeconds = Default().OfferCacheSeconds
	}

	return cfg, nil
}

func (c Config) OfferCacheTTL() time.Duration {
	return time.Duration(c.OfferCacheSeconds) * time.Second
}
