package config

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvFile is loaded before the environment is read, when present.
const EnvFile = "dashboard.env"

// Config holds the dashboard settings read from the environment.
type Config struct {
	HTTPPort string `envconfig:"DASHBOARD_PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Data     DataConfig
	Blob     BlobConfig
}

// DataConfig locates and describes the input batches.
type DataConfig struct {
	Dir              string   `envconfig:"DATA_DIR" default:"."`
	TransactionFiles []string `envconfig:"TRANSACTION_FILES" default:"SWIFT_csv_20250924_a62566.txt,SWIFT_csv_2.txt,SWIFT_csv_3.txt"`
	LimitFile        string   `envconfig:"LIMIT_FILE" default:"Wire Transfer KYC.txt"`
	Delimiter        string   `envconfig:"CSV_DELIMITER" default:","`
	DateLayouts      []string `envconfig:"DATE_LAYOUTS"`
}

// BlobConfig switches input reading to Azure Blob Storage when ServiceURL is set.
type BlobConfig struct {
	ServiceURL string `envconfig:"BLOB_SERVICE_URL"`
	Container  string `envconfig:"BLOB_CONTAINER" default:"wire-data"`
}

// TransactionBatches is the number of SWIFT batch files the dashboard joins.
const TransactionBatches = 3

// NewConfig loads EnvFile if it exists, then the process environment.
func NewConfig() (*Config, error) {
	if err := godotenv.Load(EnvFile); err != nil {
		slog.Debug("env file not loaded, using process environment only", "file", EnvFile, "error", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values envconfig cannot.
func (c *Config) Validate() error {
	if len(c.Data.TransactionFiles) != TransactionBatches {
		return fmt.Errorf("TRANSACTION_FILES must name %d files, got %d", TransactionBatches, len(c.Data.TransactionFiles))
	}
	for i, f := range c.Data.TransactionFiles {
		c.Data.TransactionFiles[i] = strings.TrimSpace(f)
		if c.Data.TransactionFiles[i] == "" {
			return fmt.Errorf("TRANSACTION_FILES entry %d is empty", i+1)
		}
	}
	if strings.TrimSpace(c.Data.LimitFile) == "" {
		return fmt.Errorf("LIMIT_FILE is required")
	}
	if utf8.RuneCountInString(c.Data.Delimiter) != 1 {
		return fmt.Errorf("CSV_DELIMITER must be a single character, got %q", c.Data.Delimiter)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// DelimiterRune returns the configured field separator.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Data.Delimiter)
	return r
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// UseBlob reports whether inputs come from Azure Blob Storage.
func (c *Config) UseBlob() bool {
	return c.Blob.ServiceURL != ""
}
