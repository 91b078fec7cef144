package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/julianstephens/habitlog/internal/constants"
)

// Config holds user settings. Priority: ENV > YAML > env-default tags.
type Config struct {
	Data      string        `yaml:"data" env:"HABITLOG_DATA" env-default:"~/.config/habitlog/habits.json"`
	APIKey    string        `yaml:"api_key" env:"HABITLOG_API_KEY"`
	Model     string        `yaml:"model" env:"HABITLOG_MODEL" env-default:"claude-sonnet-4-5"`
	MaxTokens int64         `yaml:"max_tokens" env:"HABITLOG_MAX_TOKENS" env-default:"1024"`
	Timeout   time.Duration `yaml:"timeout" env:"HABITLOG_TIMEOUT" env-default:"60s"`
	ExportDir string        `yaml:"export_dir" env:"HABITLOG_EXPORT_DIR" env-default:"."`
	Debug     bool          `yaml:"debug" env:"HABITLOG_DEBUG"`
	LogLevel  string        `yaml:"log_level" env:"HABITLOG_LOG_LEVEL" env-default:"warn"`
}

// DefaultPath is where the YAML file is looked up when none is given.
func DefaultPath() string {
	return filepath.Join(constants.DefaultConfigDir, "config.yaml")
}

// Load reads the YAML file at path (if present) and applies env overrides.
// An explicitly named file must exist; the default one is optional.
func Load(path string) (*Config, error) {
	var cfg Config

	explicitPath := path != ""
	if !explicitPath {
		path = DefaultPath()
	}

	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if _, err := os.Stat(expanded); err == nil {
		if err := cleanenv.ReadConfig(expanded, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", expanded, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", expanded, err)
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Data) == "" {
		return fmt.Errorf("data location cannot be empty")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error, got %q", c.LogLevel)
	}
	return nil
}

// ExpandPath replaces a leading "~" with the user's home directory.
// Connection strings and other paths pass through unchanged.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
