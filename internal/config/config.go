package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration. Values come from defaults, then
// an optional YAML file, then ORDERDESK_* environment variables, last one
// winning.
type Config struct {
	HTTPAddr string      `yaml:"http_addr"`
	Store    StoreConfig `yaml:"store"`
}

type StoreConfig struct {
	Backend   string `yaml:"backend"` // "redis" or "mysql"
	RedisAddr string `yaml:"redis_addr"`
	MySQLDSN  string `yaml:"mysql_dsn"`
}

func Default() Config {
	return Config{
		HTTPAddr: ":8080",
		Store: StoreConfig{
			Backend:   "redis",
			RedisAddr: "localhost:6379",
			MySQLDSN:  "root:root@tcp(localhost:3306)/orderdesk?parseTime=true",
		},
	}
}

// Load reads the configuration. path may be empty to skip the file layer.
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

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.HTTPAddr = getEnv("ORDERDESK_HTTP_ADDR", cfg.HTTPAddr)
	cfg.Store.Backend = getEnv("ORDERDESK_STORE_BACKEND", cfg.Store.Backend)
	cfg.Store.RedisAddr = getEnv("ORDERDESK_REDIS_ADDR", cfg.Store.RedisAddr)
	cfg.Store.MySQLDSN = getEnv("ORDERDESK_MYSQL_DSN", cfg.Store.MySQLDSN)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
