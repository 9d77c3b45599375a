package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/nikolayk812/caja-isv/internal/domain"
)

// Config holds the sales API server configuration.
type Config struct {
	AppEnv           string
	Port             string
	DatabaseURL      string
	RedisURL         string
	ProductCacheTTL  time.Duration
	LogFormat        string
	LogLevel         string
	MetricsNamespace string
	MigrateOnStart   bool
	// Location is the business time zone invoice dates are counted in.
	Location *time.Location
	Company  Company
}

// Company is the header printed on every invoice.
type Company struct {
	Name    string
	RTN     string
	Address string
	Phone   string
}

// RegisterConfig holds the configuration of a register terminal.
type RegisterConfig struct {
	APIURL      string
	HTTPTimeout time.Duration
	PrintDir    string
	LogFormat   string
	LogLevel    string
}

// Load reads the server configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	k, err := loadEnv()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppEnv:           valueOrDefault(k.String("APP_ENV"), "development"),
		Port:             valueOrDefault(k.String("PORT"), "8080"),
		DatabaseURL:      k.String("DATABASE_URL"),
		RedisURL:         strings.TrimSpace(k.String("REDIS_URL")),
		ProductCacheTTL:  parseDuration(k.String("PRODUCT_CACHE_TTL"), "10m"),
		LogFormat:        valueOrDefault(k.String("LOG_FORMAT"), "json"),
		LogLevel:         valueOrDefault(k.String("LOG_LEVEL"), "info"),
		MetricsNamespace: valueOrDefault(k.String("METRICS_NAMESPACE"), "caja"),
		MigrateOnStart:   parseBool(k.String("MIGRATE_ON_START")),
		Company: Company{
			Name:    valueOrDefault(k.String("COMPANY_NAME"), "MI NEGOCIO"),
			RTN:     strings.TrimSpace(k.String("COMPANY_RTN")),
			Address: strings.TrimSpace(k.String("COMPANY_ADDRESS")),
			Phone:   strings.TrimSpace(k.String("COMPANY_PHONE")),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	loc, err := time.LoadLocation(valueOrDefault(k.String("BUSINESS_TIMEZONE"), domain.BusinessTimezone))
	if err != nil {
		return nil, fmt.Errorf("BUSINESS_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	return cfg, nil
}

// LoadRegister reads the register configuration. Every value has a default.
func LoadRegister() (*RegisterConfig, error) {
	k, err := loadEnv()
	if err != nil {
		return nil, err
	}

	return &RegisterConfig{
		APIURL:      strings.TrimRight(valueOrDefault(k.String("CAJA_API_URL"), "http://127.0.0.1:8080"), "/"),
		HTTPTimeout: parseDuration(k.String("CAJA_HTTP_TIMEOUT"), "10s"),
		PrintDir:    strings.TrimSpace(k.String("CAJA_PRINT_DIR")),
		LogFormat:   valueOrDefault(k.String("LOG_FORMAT"), "console"),
		LogLevel:    valueOrDefault(k.String("LOG_LEVEL"), "warn"),
	}, nil
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func loadEnv() (*koanf.Koanf, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}
	return k, nil
}

func valueOrDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil || d <= 0 {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

// LoadForTests runs Load with env applied on top of the real environment and
// restores the previous values afterwards.
func LoadForTests(env map[string]string) (*Config, error) {
	return withEnv(env, Load)
}

func LoadRegisterForTests(env map[string]string) (*RegisterConfig, error) {
	return withEnv(env, LoadRegister)
}

func withEnv[T any](env map[string]string, load func() (T, error)) (T, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			var zero T
			return zero, err
		}
	}

	cfg, err := load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return cfg, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
