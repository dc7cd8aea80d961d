// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/resume-builder/internal/llm"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvOutputDir   = "RESUME_OUTPUT_DIR"
	EnvMOSDataset  = "MOS_DATASET_PATH"
	EnvAIProvider  = "AI_PROVIDER"
	EnvAPIKey      = "GEMINI_API_KEY"
	EnvModel       = "AI_MODEL"
	EnvLogLevel    = "LOG_LEVEL"
	EnvLogFormat   = "LOG_FORMAT"
	EnvDatabaseURL = "DATABASE_URL"
)

// Config is the application configuration. It is read from a JSON or YAML
// file, overridden from the environment, then merged over Default().
type Config struct {
	// Paths
	OutputDir      string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`             // Directory generated documents are written to
	MOSDatasetPath string `json:"mos_dataset_path,omitempty" yaml:"mos_dataset_path,omitempty"` // CSV or XLSX MOS reference data
	Template       string `json:"template,omitempty" yaml:"template,omitempty"`                 // Default layout template name

	// Text generation
	AIProvider string `json:"ai_provider,omitempty" yaml:"ai_provider,omitempty"` // "template" or "gemini"
	APIKey     string `json:"api_key,omitempty" yaml:"api_key,omitempty"`         // Gemini API key
	Model      string `json:"model,omitempty" yaml:"model,omitempty"`             // Overrides every model tier

	// Logging
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`   // debug, info, warn or error
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"` // json or console

	// Storage and limits
	DatabaseURL      string `json:"database_url,omitempty" yaml:"database_url,omitempty"`           // PostgreSQL connection URL
	BatchConcurrency int    `json:"batch_concurrency,omitempty" yaml:"batch_concurrency,omitempty"` // Profiles generated at once in a batch

	// Behavior
	LenientDates bool `json:"lenient_dates,omitempty" yaml:"lenient_dates,omitempty"` // Replace malformed work dates instead of rejecting them
	Verbose      bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`             // Print detailed output
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		OutputDir:        "generated_resumes",
		MOSDatasetPath:   filepath.Join("data", "mos_civilian_skills.csv"),
		Template:         "classic",
		AIProvider:       string(llm.ProviderTemplate),
		LogLevel:         "info",
		LogFormat:        "console",
		BatchConcurrency: 4,
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Load reads the optional file at path, applies environment overrides, fills
// the remaining fields from Default() and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.ApplyEnv(os.Getenv)
	merged := cfg.MergeWithDefaults(Default())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// ApplyEnv overwrites fields whose environment variable is set and non-empty.
func (c *Config) ApplyEnv(getenv func(string) string) {
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	set(&c.OutputDir, EnvOutputDir)
	set(&c.MOSDatasetPath, EnvMOSDataset)
	set(&c.AIProvider, EnvAIProvider)
	set(&c.APIKey, EnvAPIKey)
	set(&c.Model, EnvModel)
	set(&c.LogLevel, EnvLogLevel)
	set(&c.LogFormat, EnvLogFormat)
	set(&c.DatabaseURL, EnvDatabaseURL)
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by merging with defaults.
func (c *Config) Validate() error {
	if c.AIProvider != "" {
		if _, err := llm.ParseProvider(c.AIProvider); err != nil {
			return fmt.Errorf("config error: 'ai_provider': %w", err)
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config error: 'log_level' must be one of debug, info, warn, error")
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "json", "console":
	default:
		return fmt.Errorf("config error: 'log_format' must be json or console")
	}

	// Validate numeric ranges
	if c.BatchConcurrency < 0 {
		return fmt.Errorf("config error: 'batch_concurrency' must be non-negative")
	}

	if c.OutputDir != "" {
		if info, err := os.Stat(c.OutputDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: output_dir is not a directory: %s", c.OutputDir)
		}
	}

	return nil
}

// Provider returns the parsed AI provider. An invalid value yields the template provider.
func (c *Config) Provider() llm.Provider {
	p, err := llm.ParseProvider(c.AIProvider)
	if err != nil {
		return llm.ProviderTemplate
	}
	return p
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.MOSDatasetPath == "" {
		result.MOSDatasetPath = defaults.MOSDatasetPath
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.AIProvider == "" {
		result.AIProvider = defaults.AIProvider
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.BatchConcurrency == 0 {
		result.BatchConcurrency = defaults.BatchConcurrency
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Redacted returns a copy with the API key and database URL masked, for printing.
func (c *Config) Redacted() Config {
	r := *c
	if r.APIKey != "" {
		r.APIKey = "****"
	}
	if r.DatabaseURL != "" {
		r.DatabaseURL = "****"
	}
	return r
}
