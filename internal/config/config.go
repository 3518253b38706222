package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/jsonpc/internal/errors"
	"gopkg.in/yaml.v3"
)

// Output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// Key cases applied to object keys when rendering
const (
	KeyCasePreserve   = "preserve"
	KeyCaseSnake      = "snake"
	KeyCaseCamel      = "camel"
	KeyCaseLowerCamel = "lower_camel"
	KeyCaseKebab      = "kebab"
)

// Config represents the complete configuration for jsonpc
type Config struct {
	Parsing ParsingConfig `yaml:"parsing"`
	Output  OutputConfig  `yaml:"output"`
	Display DisplayConfig `yaml:"display"`
	Dev     DevConfig     `yaml:"dev"`
}

// ParsingConfig controls how much of the input must be consumed
type ParsingConfig struct {
	// Strict rejects input that has anything left over after the value
	Strict bool `yaml:"strict"`
	// AllowTrailingWhitespace lets strict mode accept whitespace after the value
	AllowTrailingWhitespace bool `yaml:"allow_trailing_whitespace"`
}

// OutputConfig controls how the parsed value is rendered
type OutputConfig struct {
	Format        string `yaml:"format"`
	Indent        int    `yaml:"indent"`
	KeyCase       string `yaml:"key_case"`
	ShowRemaining bool   `yaml:"show_remaining"`
}

// DisplayConfig controls terminal output
type DisplayConfig struct {
	Color bool `yaml:"color"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug   bool `yaml:"debug"`
	Verbose bool `yaml:"verbose"`
}

// CLIOverrides holds the command-line values that take precedence over the config file
type CLIOverrides struct {
	Format  string
	Strict  bool
	NoColor bool
	Debug   bool
	Verbose bool
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Parsing: ParsingConfig{
			Strict:                  false,
			AllowTrailingWhitespace: true,
		},
		Output: OutputConfig{
			Format:        FormatJSON,
			Indent:        2,
			KeyCase:       KeyCasePreserve,
			ShowRemaining: true,
		},
		Display: DisplayConfig{
			Color: true,
		},
		Dev: DevConfig{
			Debug:   false,
			Verbose: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".jsonpc.yml", ".jsonpc.yaml", "jsonpc.yml", "jsonpc.yaml"}

	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks that enumerated settings hold known values
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatJSON, FormatYAML, FormatText:
	default:
		return fmt.Errorf("output format '%s': %w", c.Output.Format, errors.ErrUnsupportedFormat)
	}

	switch c.Output.KeyCase {
	case KeyCasePreserve, KeyCaseSnake, KeyCaseCamel, KeyCaseLowerCamel, KeyCaseKebab:
	default:
		return fmt.Errorf("key case '%s': %w", c.Output.KeyCase, errors.ErrInvalidKeyCase)
	}

	if c.Output.Indent < 0 {
		return fmt.Errorf("indent must not be negative, got %d", c.Output.Indent)
	}

	return nil
}

// TransformKey rewrites an object key according to the configured key case
func (c *Config) TransformKey(key string) string {
	switch c.Output.KeyCase {
	case KeyCaseSnake:
		return strcase.ToSnake(key)
	case KeyCaseCamel:
		return strcase.ToCamel(key)
	case KeyCaseLowerCamel:
		return strcase.ToLowerCamel(key)
	case KeyCaseKebab:
		return strcase.ToKebab(key)
	default:
		return key
	}
}

// LoadConfigWithCLI loads config with CLI argument precedence.
// Boolean flags can only switch a behaviour on, so an unset flag never
// overrides the file.
func LoadConfigWithCLI(configPath string, cli CLIOverrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cli.Format != "" {
		cfg.Output.Format = cli.Format
	}
	if cli.Strict {
		cfg.Parsing.Strict = true
	}
	if cli.NoColor {
		cfg.Display.Color = false
	}
	if cli.Debug {
		cfg.Dev.Debug = true
	}
	if cli.Verbose {
		cfg.Dev.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
