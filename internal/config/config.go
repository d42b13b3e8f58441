package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the specparse tool settings.
type Config struct {
	Format    string       `yaml:"format"`
	MaxDepth  int          `yaml:"maxDepth"`
	LogLevel  string       `yaml:"logLevel"`
	LogFormat string       `yaml:"logFormat"`
	Redact    RedactConfig `yaml:"redact"`
}

// RedactConfig controls masking of sensitive values in printed namespaces.
type RedactConfig struct {
	Enabled bool `yaml:"enabled"`

	// Keys are doublestar globs over key paths, with '/' between segments
	// ("**/password", "db/*").
	Keys []string `yaml:"keys,omitempty"`
}

// Formats accepted by the format setting.
var Formats = []string{"yaml", "json", "text"}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Format:    "yaml",
		MaxDepth:  0,
		LogLevel:  "warn",
		LogFormat: "text",
		Redact: RedactConfig{
			Enabled: false,
			Keys:    []string{"**/password", "**/*_token", "**/secret*"},
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for specparse.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "specparse"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "specparse"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "specparse"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "specparse"), nil
	default:
		return filepath.Join(home, ".config", "specparse"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LoadFile returns the defaults overlaid with the config file. A missing
// file yields the defaults.
func LoadFile() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	// Fields absent from the file keep their defaults.
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
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
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags; only flags the user set should be
// present.
func Load(overrides map[string]string) (Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	if err := mergeEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var envKeys = map[string]string{
	"SPECPARSE_FORMAT":     "format",
	"SPECPARSE_MAX_DEPTH":  "maxDepth",
	"SPECPARSE_LOG_LEVEL":  "logLevel",
	"SPECPARSE_LOG_FORMAT": "logFormat",
	"SPECPARSE_REDACT":     "redact.enabled",
}

func mergeEnv(cfg *Config) error {
	for env, key := range envKeys {
		v := os.Getenv(env)
		if v == "" {
			continue
		}
		if err := SetField(cfg, key, v); err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
	}
	return nil
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	for key, v := range overrides {
		if v == "" {
			continue
		}
		if err := SetField(cfg, key, v); err != nil {
			return err
		}
	}
	return nil
}

// Keys lists the keys SetField accepts.
func Keys() []string {
	return []string{"format", "maxDepth", "logLevel", "logFormat", "redact.enabled", "redact.keys"}
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "format":
		cfg.Format = strings.ToLower(value)
	case "maxDepth":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxDepth must be an integer: %w", err)
		}
		cfg.MaxDepth = n
	case "logLevel":
		cfg.LogLevel = strings.ToLower(value)
	case "logFormat":
		cfg.LogFormat = strings.ToLower(value)
	case "redact.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("redact.enabled must be a boolean: %w", err)
		}
		cfg.Redact.Enabled = b
	case "redact.keys":
		cfg.Redact.Keys = splitList(value)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks settings that have a closed set of values.
func Validate(cfg Config) error {
	valid := false
	for _, f := range Formats {
		if cfg.Format == f {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid format %q (want one of %s)", cfg.Format, strings.Join(Formats, ", "))
	}
	if cfg.MaxDepth < 0 {
		return fmt.Errorf("maxDepth must not be negative, got %d", cfg.MaxDepth)
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid logFormat %q (want text or json)", cfg.LogFormat)
	}
	return nil
}
