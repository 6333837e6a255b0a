package langcfg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/lexcodex/nodelang/framework/nodelang"
)

// FileName is the config file looked up in the workspace root.
const FileName = ".nodelang.yaml"

var validate = validator.New()

// Config models the persisted CLI settings.
type Config struct {
	Color         bool      `yaml:"color"`
	ContextLines  int       `yaml:"context_lines" validate:"gte=0,lte=10"`
	LogLevel      string    `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat     string    `yaml:"log_format" validate:"oneof=console json"`
	WatchDebounce string    `yaml:"watch_debounce" validate:"required"`
	LSP           LSPConfig `yaml:"lsp"`
}

// LSPConfig holds language server settings.
type LSPConfig struct {
	LanguageID string `yaml:"language_id" validate:"required"`
	ServerName string `yaml:"server_name" validate:"required"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Color:         true,
		ContextLines:  nodelang.DefaultContextLines,
		LogLevel:      "info",
		LogFormat:     "console",
		WatchDebounce: "100ms",
		LSP: LSPConfig{
			LanguageID: "nodelang",
			ServerName: "nodelang-lsp",
		},
	}
}

// DefaultPath resolves the config path for a workspace.
func DefaultPath(workspace string) string {
	if workspace == "" {
		workspace = "."
	}
	return filepath.Join(workspace, FileName)
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating directories.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("config missing")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	if _, err := time.ParseDuration(c.WatchDebounce); err != nil {
		return fmt.Errorf("watch_debounce: %w", err)
	}
	return nil
}

// Debounce returns the parsed watch debounce interval.
func (c *Config) Debounce() time.Duration {
	d, err := time.ParseDuration(c.WatchDebounce)
	if err != nil || d < 0 {
		return 100 * time.Millisecond
	}
	return d
}

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := strings.ToLower(e.Field())
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, e.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
