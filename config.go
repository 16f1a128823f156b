package transpiler

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// Config holds the settings consumed by the CLI and the code generators.
type Config struct {
	// Target names the output language. Only "python" is registered.
	Target string `yaml:"target"`
	// Output is the default output path ("" or "-" means stdout).
	Output string `yaml:"output"`
	// Indent is reserved for generators that emit multi-line output.
	Indent int `yaml:"indent"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Target: "python",
		Output: "-",
		Indent: 4,
	}
}

// LoadConfig reads a YAML configuration file. Environment variables in the
// form ${VAR} or $VAR are expanded before parsing, and a .env file in the
// current directory is loaded first if one exists.
func LoadConfig(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}

		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	expanded := expandEnvVars(string(data))

	config := DefaultConfig()
	if err := yaml.Unmarshal([]byte(expanded), config); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadConfigOrDefault behaves like LoadConfig but falls back to the default
// configuration when the file does not exist.
func LoadConfigOrDefault(path string) (*Config, error) {
	config, err := LoadConfig(path)
	if err != nil {
		if errors.Is(err, ErrConfigNotFound) {
			return DefaultConfig(), nil
		}

		return nil, err
	}

	return config, nil
}

// Validate checks that the configuration names a registered target.
func (c *Config) Validate() error {
	if c.Target != "python" {
		return fmt.Errorf("%w: %q", ErrUnsupportedTarget, c.Target)
	}

	if c.Indent < 0 {
		return fmt.Errorf("%w: indent must not be negative", ErrInvalidConfig)
	}

	return nil
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}

	return nil
}

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	re1 := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re1.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[1:])
	})

	return s
}
