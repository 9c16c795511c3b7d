package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/juju/errors"
)

type Config struct {
	Environment       string
	HTTPAddr          string
	EnableMetrics     bool
	ExpiryWarningDays int

	// MaintenanceInterval is how often the API server refreshes contract
	// statuses, raises expiry notifications and prunes old documents.
	// Zero disables the loop.
	MaintenanceInterval time.Duration

	Logger    LoggerConfig
	Documents DocumentsConfig
	SMTP      SMTPConfig
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

// DocumentsConfig controls where generated PDFs and exports are written.
type DocumentsConfig struct {
	Dir           string
	CompanyName   string
	RetentionDays int // 0 keeps documents forever
}

// SMTPConfig holds the mail relay settings. Without credentials mail is
// simulated.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Configured reports whether real delivery is possible.
func (c SMTPConfig) Configured() bool {
	return c.User != "" && c.Password != ""
}

func Load() *Config {
	return &Config{
		Environment:         getEnv("ENVIRONMENT", "development"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		EnableMetrics:       getEnvBool("ENABLE_METRICS", false),
		ExpiryWarningDays:   getEnvInt("EXPIRY_WARNING_DAYS", 30),
		MaintenanceInterval: getEnvDuration("MAINTENANCE_INTERVAL", time.Hour),
		Logger: LoggerConfig{
			Level:             getEnv("LOG_LEVEL", "info"),
			Encoding:          getEnv("LOG_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOG_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOG_DISABLE_STACKTRACE", true),
		},
		Documents: DocumentsConfig{
			Dir:           getEnv("DOCUMENTS_DIR", "generated_documents"),
			CompanyName:   getEnv("COMPANY_NAME", "Example Corporation"),
			RetentionDays: getEnvInt("DOCUMENT_RETENTION_DAYS", 90),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvInt("SMTP_PORT", 587),
			User:     getEnv("EMAIL_USER", ""),
			Password: getEnv("EMAIL_PASSWORD", ""),
			From:     getEnv("EMAIL_FROM", ""),
		},
	}
}

// LoadDotEnv reads variables from the given .env files into the process
// environment. Missing files are skipped and existing variables win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Annotatef(err, "loading %s", f)
		}
	}
	return nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logger.Level) {
	case "debug", "info", "warn", "error":
	default:
		return errors.NotValidf("LOG_LEVEL %q", c.Logger.Level)
	}
	switch c.Logger.Encoding {
	case "json", "console":
	default:
		return errors.NotValidf("LOG_ENCODING %q", c.Logger.Encoding)
	}
	if strings.TrimSpace(c.Documents.Dir) == "" {
		return errors.NewNotValid(nil, "DOCUMENTS_DIR must not be empty")
	}
	if c.ExpiryWarningDays < 1 || c.ExpiryWarningDays > 365 {
		return errors.NotValidf("EXPIRY_WARNING_DAYS %d (want 1..365)", c.ExpiryWarningDays)
	}
	if c.Documents.RetentionDays < 0 {
		return errors.NotValidf("DOCUMENT_RETENTION_DAYS %d", c.Documents.RetentionDays)
	}
	if c.MaintenanceInterval != 0 && c.MaintenanceInterval < time.Minute {
		return errors.NotValidf("MAINTENANCE_INTERVAL %s (want at least 1m)", c.MaintenanceInterval)
	}
	if c.SMTP.Port < 1 || c.SMTP.Port > 65535 {
		return errors.NotValidf("SMTP_PORT %d", c.SMTP.Port)
	}
	if (c.SMTP.User == "") != (c.SMTP.Password == "") {
		return errors.NewNotValid(nil, "EMAIL_USER and EMAIL_PASSWORD must be set together")
	}
	return nil
}

// LoadAndValidate loads and validates configuration
func LoadAndValidate() (*Config, error) {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Annotate(err, "invalid configuration")
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
