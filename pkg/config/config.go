package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/MakerMaker19/countryinfo/pkg/restcountries"
)

// Config is shared by the TUI, the lookup command and countryd.
//
//	COUNTRYINFO_BASE_URL   upstream API base (default https://restcountries.com/v3.1)
//	COUNTRYINFO_TIMEOUT    per-request timeout, Go duration (default 10s)
//	COUNTRYINFO_ADDR       countryd listen address (default :8000)
//	COUNTRYINFO_LOG_LEVEL  debug|info|warn|error (default info)
//	COUNTRYINFO_LOG_FILE   TUI log file; "-" disables TUI logging
//	COUNTRYINFO_THEME      light|dark (default dark)
type Config struct {
	BaseURL  string        `yaml:"base_url" validate:"required"`
	Timeout  time.Duration `yaml:"timeout" validate:"gt=0"`
	Addr     string        `yaml:"addr" validate:"required"`
	LogLevel string        `yaml:"log_level"`
	LogFile  string        `yaml:"log_file"`
	Theme    string        `yaml:"theme" validate:"oneof=light dark"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

func Default() *Config {
	return &Config{
		BaseURL:  restcountries.DefaultBaseURL,
		Timeout:  restcountries.DefaultTimeout,
		Addr:     ":8000",
		LogLevel: "info",
		LogFile:  defaultLogFile(),
		Theme:    ThemeDark,
	}
}

// DefaultPath is ~/.countryinfo/config.yaml, or "" when there is no home.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".countryinfo", "config.yaml")
}

func defaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "countryinfo", "countryinfo.log")
}

// Load reads the YAML file at path on top of the defaults, then applies
// environment overrides. A missing file, or an empty path, is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("COUNTRYINFO_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("COUNTRYINFO_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse COUNTRYINFO_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v := os.Getenv("COUNTRYINFO_ADDR"); v != "" {
		c.Addr = v
	}
	if v := os.Getenv("COUNTRYINFO_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("COUNTRYINFO_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("COUNTRYINFO_THEME"); v != "" {
		c.Theme = v
	}
	return nil
}

// Validate checks the values a run cannot do without.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base_url %q: scheme must be http or https", c.BaseURL)
	}
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return c.fieldError(fieldErrs[0])
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) fieldError(fe validator.FieldError) error {
	switch fe.Field() {
	case "Timeout":
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	case "Theme":
		return fmt.Errorf("unknown theme %q", c.Theme)
	case "Addr":
		return errors.New("addr must not be empty")
	default:
		return fmt.Errorf("invalid %s: failed %q check", fe.Field(), fe.Tag())
	}
}

// Save writes the config as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
