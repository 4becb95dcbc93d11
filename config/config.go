package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Spreadsheet purposes accepted under sheets.spreadsheets.
const (
	SheetRegistrations = "registrations"
	SheetSeating       = "seating"
	SheetSync          = "sync"
)

// DefaultAdminPassword is accepted for the static admin when no password hash is configured.
const DefaultAdminPassword = "gala-admin"

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	HTTP          HTTPConfig          `yaml:"http"`
	Admin         AdminConfig         `yaml:"admin"`
	JWT           JWTConfig           `yaml:"jwt"`
	Sheets        SheetsConfig        `yaml:"sheets"`
	Queue         QueueConfig         `yaml:"queue"`
	Event         EventConfig         `yaml:"event"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// HTTPConfig holds the HTTP listener settings.
type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	SecureCookies  *bool    `yaml:"secure_cookies"`
}

// AdminConfig holds the static administrator credential.
type AdminConfig struct {
	Email        string `yaml:"email"`
	PasswordHash string `yaml:"password_hash"`
}

// JWTConfig holds JWT configuration.
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	Issuer     string        `yaml:"issuer"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

// SheetsConfig is the single spreadsheet integration: one credential, one id per purpose.
type SheetsConfig struct {
	CredentialsFile string            `yaml:"credentials_file"`
	CredentialsJSON string            `yaml:"credentials_json"`
	Spreadsheets    map[string]string `yaml:"spreadsheets"`
}

// QueueConfig toggles the river job queue.
type QueueConfig struct {
	Enabled bool `yaml:"enabled"`
}

// EventConfig describes the event itself.
type EventConfig struct {
	Name     string `yaml:"name"`
	Timezone string `yaml:"timezone"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level"`
	MetricsEnabled bool   `yaml:"metrics_enabled"`
}

// LoadConfig loads the configuration from a YAML file, a .env file and the environment.
// A missing YAML file is not an error; env vars override anything read from it.
func LoadConfig(filename string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := &Config{
		Observability: ObservabilityConfig{MetricsEnabled: true},
	}

	if filename != "" {
		data, err := os.ReadFile(filename)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		case !errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	} else if v := os.Getenv("PORT"); v != "" {
		cfg.HTTP.Addr = ":" + v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("SECURE_COOKIES"); v != "" {
		b := v == "true"
		cfg.HTTP.SecureCookies = &b
	}
	if v := os.Getenv("ADMIN_EMAIL"); v != "" {
		cfg.Admin.Email = v
	}
	if v := os.Getenv("ADMIN_PASSWORD_HASH"); v != "" {
		cfg.Admin.PasswordHash = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("JWT_ISSUER"); v != "" {
		cfg.JWT.Issuer = v
	}
	if v := os.Getenv("JWT_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid JWT_SESSION_TTL value: %v", err)
		}
		cfg.JWT.SessionTTL = d
	}
	if v := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); v != "" {
		cfg.Sheets.CredentialsFile = v
	}
	if v := os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"); v != "" {
		cfg.Sheets.CredentialsJSON = v
	}
	for purpose, key := range map[string]string{
		SheetRegistrations: "SHEETS_REGISTRATIONS_ID",
		SheetSeating:       "SHEETS_SEATING_ID",
		SheetSync:          "SHEETS_SYNC_ID",
	} {
		if v := os.Getenv(key); v != "" {
			if cfg.Sheets.Spreadsheets == nil {
				cfg.Sheets.Spreadsheets = map[string]string{}
			}
			cfg.Sheets.Spreadsheets[purpose] = v
		}
	}
	if v := os.Getenv("QUEUE_ENABLED"); v != "" {
		cfg.Queue.Enabled = v == "true"
	}
	if v := os.Getenv("EVENT_NAME"); v != "" {
		cfg.Event.Name = v
	}
	if v := os.Getenv("EVENT_TIMEZONE"); v != "" {
		cfg.Event.Timezone = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid METRICS_ENABLED value: %v", err)
		}
		cfg.Observability.MetricsEnabled = b
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":3000"
	}
	if cfg.HTTP.SecureCookies == nil {
		secure := !cfg.IsDevelopment()
		cfg.HTTP.SecureCookies = &secure
	}
	if cfg.Admin.Email == "" {
		cfg.Admin.Email = "admin@gala.local"
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "gala-night"
	}
	if cfg.JWT.SessionTTL == 0 {
		cfg.JWT.SessionTTL = 12 * time.Hour
	}
	if cfg.Event.Timezone == "" {
		cfg.Event.Timezone = "America/Chicago"
	}
	if cfg.Observability.Environment == "" {
		cfg.Observability.Environment = "production"
	}
	if cfg.Observability.LogLevel == "" {
		cfg.Observability.LogLevel = "info"
	}
	if cfg.JWT.Secret == "" && cfg.IsDevelopment() {
		cfg.JWT.Secret = "development-only-secret"
	}
}

// Validate reports configuration that would make the server unusable.
func (c *Config) Validate() error {
	if c.Postgres.DSN == "" {
		return fmt.Errorf("postgres dsn not set (DATABASE_URL)")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret not set (JWT_SECRET)")
	}
	if _, err := time.LoadLocation(c.Event.Timezone); err != nil {
		return fmt.Errorf("invalid event timezone %q: %w", c.Event.Timezone, err)
	}
	return nil
}

// IsDevelopment reports whether the app runs in a development environment.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Observability.Environment, "development")
}

// UseSecureCookies reports whether session cookies carry the Secure flag.
func (c *Config) UseSecureCookies() bool {
	return c.HTTP.SecureCookies == nil || *c.HTTP.SecureCookies
}

// Location returns the event timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Event.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// SheetsEnabled reports whether a spreadsheet credential is configured.
func (c SheetsConfig) SheetsEnabled() bool {
	return c.CredentialsFile != "" || c.CredentialsJSON != ""
}

// SpreadsheetID returns the configured id for a purpose, or "".
func (c SheetsConfig) SpreadsheetID(purpose string) string {
	return c.Spreadsheets[purpose]
}

// Credentials returns the raw service-account JSON from the inline value or the file.
func (c SheetsConfig) Credentials() ([]byte, error) {
	if c.CredentialsJSON != "" {
		return []byte(c.CredentialsJSON), nil
	}
	if c.CredentialsFile == "" {
		return nil, fmt.Errorf("no spreadsheet credentials configured")
	}
	data, err := os.ReadFile(c.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return data, nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
