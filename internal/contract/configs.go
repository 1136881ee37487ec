package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/casemap/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 1

	DefaultGenerateCount    = 5
	DefaultGenerateParallel = 3
	MaxGenerateParallel     = 8
	DefaultGenerateRetries  = 2

	DefaultGenerateModel   = "gpt-4o-mini"
	DefaultGenerateBaseURL = "https://api.openai.com/v1"
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for casemap.
// This struct remains the "final, validated" config.
type Config struct {
	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Detail      bool

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	GenerateBaseURL  string
	GenerateModel    string
	GenerateAPIKey   string // Read from environment only, never from flags
	GenerateCount    int
	GenerateParallel int
	GenerateRetries  int

	UseColors bool
	Width     int // Terminal width override (0 = auto-detect)
}

// ConfigRawInput holds the raw inputs from all sources (flags, env,
// config file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	Limit      int    `mapstructure:"limit"`
	Precision  int    `mapstructure:"precision"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Detail     bool   `mapstructure:"detail"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`

	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`

	GenerateBaseURL  string `mapstructure:"generate-base-url"`
	GenerateModel    string `mapstructure:"generate-model"`
	GenerateAPIKey   string `mapstructure:"generate-api-key"`
	GenerateCount    int    `mapstructure:"count"`
	GenerateParallel int    `mapstructure:"parallel"`
	GenerateRetries  int    `mapstructure:"retries"`
}

// Clone returns a copy of the config for per-request overrides.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate turns raw input into the final validated config.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be between 1 and %d, got %d", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	cfg.Precision = input.Precision
	if cfg.Precision < 1 {
		cfg.Precision = 1
	}
	if cfg.Precision > 2 {
		cfg.Precision = 2
	}

	switch out := schema.OutputMode(strings.ToLower(input.Output)); out {
	case schema.TextOut, schema.CSVOut, schema.JSONOut, schema.ParquetOut:
		cfg.Output = out
	default:
		return fmt.Errorf("output must be text, csv, json or parquet, got %q", input.Output)
	}
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.Width = input.Width
	cfg.UseColors = parseYesNo(input.Color)

	switch backend := schema.DatabaseBackend(strings.ToLower(input.StoreBackend)); backend {
	case schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend, schema.NoneBackend:
		cfg.StoreBackend = backend
	default:
		return fmt.Errorf("store backend must be sqlite, mysql, postgresql or none, got %q", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect

	cfg.GenerateBaseURL = input.GenerateBaseURL
	if cfg.GenerateBaseURL == "" {
		cfg.GenerateBaseURL = DefaultGenerateBaseURL
	}
	cfg.GenerateModel = input.GenerateModel
	if cfg.GenerateModel == "" {
		cfg.GenerateModel = DefaultGenerateModel
	}
	cfg.GenerateAPIKey = input.GenerateAPIKey

	cfg.GenerateCount = input.GenerateCount
	if cfg.GenerateCount <= 0 {
		cfg.GenerateCount = DefaultGenerateCount
	}
	cfg.GenerateParallel = input.GenerateParallel
	if cfg.GenerateParallel <= 0 {
		cfg.GenerateParallel = DefaultGenerateParallel
	}
	if cfg.GenerateParallel > MaxGenerateParallel {
		cfg.GenerateParallel = MaxGenerateParallel
	}
	cfg.GenerateRetries = input.GenerateRetries
	if cfg.GenerateRetries <= 0 {
		cfg.GenerateRetries = DefaultGenerateRetries
	}

	return nil
}

// parseYesNo interprets the usual truthy spellings.
func parseYesNo(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1", "y", "on", "":
		return true
	default:
		return false
	}
}
