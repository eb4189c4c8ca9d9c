package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/dshills/codelens/internal/logger"
	"github.com/dshills/codelens/internal/providers"
	"github.com/dshills/codelens/internal/review"
)

// Config represents the codelens configuration.
type Config struct {
	Model           string        `json:"model"`
	Endpoint        string        `json:"endpoint"`
	Format          string        `json:"format"`
	FailOn          string        `json:"failOn"`
	Temperature     float64       `json:"temperature"`
	MaxOutputTokens int           `json:"maxOutputTokens"`
	Server          ServerConfig  `json:"server"`
	Log             logger.Config `json:"log"`

	// APIKey is the fallback credential. It only ever comes from the
	// environment and is never written to the config file.
	APIKey string `json:"-"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr         string `json:"addr"`
	MaxBodyBytes int64  `json:"maxBodyBytes"`
}

var (
	validFormats = map[string]bool{"text": true, "json": true, "markdown": true, "pretty": true, "sarif": true}
	validFailOn  = map[string]bool{"none": true, "low": true, "medium": true, "high": true, "critical": true}
)

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Model:           review.DefaultModel,
		Endpoint:        providers.DefaultGeminiURL,
		Format:          "text",
		FailOn:          "none",
		Temperature:     review.DefaultTemperature,
		MaxOutputTokens: review.DefaultMaxOutputTokens,
		Server: ServerConfig{
			Addr:         "localhost:8080",
			MaxBodyBytes: 1 << 20,
		},
		Log: logger.Config{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	if !validFormats[c.Format] {
		return fmt.Errorf("unsupported format %q (want text, json, markdown, pretty or sarif)", c.Format)
	}
	if !validFailOn[c.FailOn] {
		return fmt.Errorf("unsupported failOn %q (want none, low, medium, high or critical)", c.FailOn)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %v", c.Temperature)
	}
	if c.MaxOutputTokens < 0 {
		return fmt.Errorf("maxOutputTokens must not be negative, got %d", c.MaxOutputTokens)
	}
	return nil
}

// MaskedAPIKey returns the fallback credential with all but its last four
// characters hidden.
func (c Config) MaskedAPIKey() string {
	if c.APIKey == "" {
		return "(not set)"
	}
	if len(c.APIKey) <= 4 {
		return "****"
	}
	return "****" + c.APIKey[len(c.APIKey)-4:]
}

// ConfigDir returns the platform-appropriate config directory for codelens.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "codelens"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "codelens"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "codelens"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "codelens"), nil
	default:
		return filepath.Join(home, ".config", "codelens"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil error if file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.Endpoint != "" {
		dst.Endpoint = src.Endpoint
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if src.FailOn != "" {
		dst.FailOn = src.FailOn
	}
	if src.Temperature > 0 {
		dst.Temperature = src.Temperature
	}
	if src.MaxOutputTokens > 0 {
		dst.MaxOutputTokens = src.MaxOutputTokens
	}
	if src.Server.Addr != "" {
		dst.Server.Addr = src.Server.Addr
	}
	if src.Server.MaxBodyBytes > 0 {
		dst.Server.MaxBodyBytes = src.Server.MaxBodyBytes
	}
	if src.Log.Level != "" {
		dst.Log.Level = src.Log.Level
	}
	if src.Log.Format != "" {
		dst.Log.Format = src.Log.Format
	}
}

// envKeys maps environment variables to config keys understood by SetField.
var envKeys = []struct {
	env string
	key string
}{
	{"CODELENS_MODEL", "model"},
	{"CODELENS_ENDPOINT", "endpoint"},
	{"CODELENS_FORMAT", "format"},
	{"CODELENS_FAIL_ON", "failOn"},
	{"CODELENS_TEMPERATURE", "temperature"},
	{"CODELENS_MAX_OUTPUT_TOKENS", "maxOutputTokens"},
	{"CODELENS_ADDR", "addr"},
	{"CODELENS_LOG_LEVEL", "logLevel"},
	{"CODELENS_LOG_FORMAT", "logFormat"},
}

func mergeEnv(cfg *Config) error {
	for _, e := range envKeys {
		v := os.Getenv(e.env)
		if v == "" {
			continue
		}
		if err := SetField(cfg, e.key, v); err != nil {
			return fmt.Errorf("%s: %w", e.env, err)
		}
	}

	cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GOOGLE_API_KEY")
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for k, v := range overrides {
		if v == "" {
			continue
		}
		if k == "apiKey" {
			cfg.APIKey = v
			continue
		}
		if err := SetField(cfg, k, v); err != nil {
			return err
		}
	}
	return nil
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "model":
		cfg.Model = value
	case "endpoint":
		cfg.Endpoint = value
	case "format":
		if !validFormats[value] {
			return fmt.Errorf("unsupported format %q (want text, json, markdown, pretty or sarif)", value)
		}
		cfg.Format = value
	case "failOn":
		if !validFailOn[value] {
			return fmt.Errorf("unsupported failOn %q (want none, low, medium, high or critical)", value)
		}
		cfg.FailOn = value
	case "temperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("temperature must be a number: %w", err)
		}
		cfg.Temperature = f
	case "maxOutputTokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxOutputTokens must be an integer: %w", err)
		}
		cfg.MaxOutputTokens = n
	case "addr":
		cfg.Server.Addr = value
	case "maxBodyBytes":
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("maxBodyBytes must be an integer: %w", err)
		}
		cfg.Server.MaxBodyBytes = n
	case "logLevel":
		cfg.Log.Level = value
	case "logFormat":
		cfg.Log.Format = value
	case "apiKey":
		return fmt.Errorf("apiKey is not stored in the config file; set GEMINI_API_KEY instead")
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
