// Package config loads, validates and persists the solarsizer configuration.
//
// The configuration lives in ~/.solarsizer/config.yaml (SOLARSIZER_HOME moves
// the directory, SOLARSIZER_CONFIG points at a specific file). A missing file
// means defaults. Environment variables override the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rshade/solarsizer/internal/engine"
)

// Environment variables read by the configuration layer.
const (
	EnvHome      = "SOLARSIZER_HOME"
	EnvConfig    = "SOLARSIZER_CONFIG"
	EnvLogLevel  = "SOLARSIZER_LOG_LEVEL"
	EnvLogFormat = "SOLARSIZER_LOG_FORMAT"
	EnvAddr      = "SOLARSIZER_ADDR"
	EnvOpenAIKey = "OPENAI_API_KEY"
)

const (
	configFileName    = "config.yaml"
	quotesFileName    = "quotes.json"
	defaultBrandKey   = "default"
	outputTypeFile    = "file"
	defaultAddr       = ":8080"
	defaultModel      = "gpt-4o-mini"
	defaultOpenAIURL  = "https://api.openai.com/v1"
	defaultTimeoutSec = 60
	defaultUploadMB   = 10
	defaultFee        = 315900
)

// ErrInvalidConfig is returned by Validate for non-catalog problems.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete solarsizer configuration.
type Config struct {
	Catalog    engine.Catalog         `yaml:"catalog"`
	Logging    LoggingConfig          `yaml:"logging"`
	Output     OutputConfig           `yaml:"output"`
	Server     ServerConfig           `yaml:"server"`
	Quotes     QuotesConfig           `yaml:"quotes"`
	Extraction ExtractionConfig       `yaml:"extraction"`
	Brands     map[string]BrandConfig `yaml:"brands"`

	// loadErr records why the config file could not be read by New.
	loadErr error
	path    string
}

// LoggingConfig controls log level, format and destination.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	MaxUploadMB int    `yaml:"max_upload_mb"`
}

// QuotesConfig controls quote numbering and the printed terms.
type QuotesConfig struct {
	StorePath      string          `yaml:"store_path,omitempty"`
	DefaultBrand   string          `yaml:"default_brand"`
	MaintenanceFee decimal.Decimal `yaml:"maintenance_fee"`
	Conditions     []string        `yaml:"conditions,omitempty"`
}

// ExtractionConfig controls the LLM used to read invoices.
type ExtractionConfig struct {
	Model          string `yaml:"model"`
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// BrandConfig identifies the company issuing a quote.
type BrandConfig struct {
	Name     string `yaml:"name"`
	LegalID  string `yaml:"legal_id,omitempty"`
	Website  string `yaml:"website,omitempty"`
	LogoPath string `yaml:"logo_path,omitempty"`
}

// Default returns the built-in configuration without reading any file.
func Default() *Config {
	return &Config{
		Catalog: engine.DefaultCatalog(),
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Output:  OutputConfig{DefaultFormat: "table"},
		Server:  ServerConfig{Addr: defaultAddr, MaxUploadMB: defaultUploadMB},
		Quotes: QuotesConfig{
			DefaultBrand:   defaultBrandKey,
			MaintenanceFee: decimal.NewFromInt(defaultFee),
		},
		Extraction: ExtractionConfig{
			Model:          defaultModel,
			BaseURL:        defaultOpenAIURL,
			TimeoutSeconds: defaultTimeoutSec,
		},
		Brands: map[string]BrandConfig{
			defaultBrandKey: {Name: "Solar Sizer"},
		},
	}
}

// New returns the configuration from the default location with environment
// overrides applied. A file that cannot be read leaves the defaults in place;
// the reason is available from LoadError and wraps engine.ErrConfiguration.
func New() *Config {
	path, err := ConfigPath()
	if err != nil {
		cfg := Default()
		cfg.loadErr = err
		cfg.applyEnv()
		return cfg
	}

	cfg, err := Load(path)
	if err != nil {
		cfg = Default()
		cfg.path = path
		cfg.loadErr = err
	}
	cfg.applyEnv()
	return cfg
}

// Load reads the configuration at path over the defaults. A missing file is
// not an error; a file that cannot be read or parsed wraps engine.ErrConfiguration.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading config %s: %w", engine.ErrConfiguration, path, err)
	}

	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing config %s: %w", engine.ErrConfiguration, path, err)
	}
	return cfg, nil
}

// Save writes the configuration to its path, creating the directory if needed.
func (c *Config) Save() error {
	if c.path == "" {
		path, err := ConfigPath()
		if err != nil {
			return err
		}
		c.path = path
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err = os.WriteFile(c.path, data, 0o600); err != nil {
		return fmt.Errorf("writing config %s: %w", c.path, err)
	}
	return nil
}

// Path returns the file the configuration was loaded from or will be saved to.
func (c *Config) Path() string {
	return c.path
}

// SetPath changes where Save writes.
func (c *Config) SetPath(path string) {
	c.path = path
}

// LoadError returns the error New hit while reading the file, if any.
func (c *Config) LoadError() error {
	return c.loadErr
}

// Validate checks every section. Catalog problems wrap engine.ErrConfiguration.
func (c *Config) Validate() error {
	if err := c.Catalog.Validate(); err != nil {
		return err
	}

	var problems []string
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		problems = append(problems, fmt.Sprintf("logging.level %q is not a valid level", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q must be console or json", c.Logging.Format))
	}
	switch c.Output.DefaultFormat {
	case "table", "json", "ndjson":
	default:
		problems = append(problems,
			fmt.Sprintf("output.default_format %q must be table, json or ndjson", c.Output.DefaultFormat))
	}
	if c.Server.MaxUploadMB <= 0 {
		problems = append(problems, "server.max_upload_mb must be positive")
	}
	if c.Quotes.MaintenanceFee.IsNegative() {
		problems = append(problems, "quotes.maintenance_fee must not be negative")
	}
	if _, ok := c.Brands[c.Quotes.DefaultBrand]; !ok {
		problems = append(problems, fmt.Sprintf("quotes.default_brand %q is not defined in brands", c.Quotes.DefaultBrand))
	}
	if c.Extraction.TimeoutSeconds <= 0 {
		problems = append(problems, "extraction.timeout_seconds must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Brand returns the named brand, falling back to the default brand for "".
func (c *Config) Brand(name string) (BrandConfig, error) {
	if name == "" {
		name = c.Quotes.DefaultBrand
	}
	b, ok := c.Brands[name]
	if !ok {
		return BrandConfig{}, fmt.Errorf("%w: unknown brand %q", ErrInvalidConfig, name)
	}
	return b, nil
}

// QuoteStorePath returns where the quote counter is kept.
func (c *Config) QuoteStorePath() (string, error) {
	if c.Quotes.StorePath != "" {
		return c.Quotes.StorePath, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, quotesFileName), nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvOpenAIKey); v != "" && c.Extraction.APIKey == "" {
		c.Extraction.APIKey = v
	}
}

// ConfigPath returns the configuration file location.
func ConfigPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
