package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/mainbong/restly/internal/composer"
	"github.com/mainbong/restly/internal/filesystem"
)

// DefaultUserAgent is sent when no user_agent is configured.
const DefaultUserAgent = "restly/0.1.0"

// Config holds the application configuration
type Config struct {
	LogLevel           string `json:"log_level" yaml:"log_level" toml:"log_level"` // "debug", "info", "warn", "error"
	LogDir             string `json:"log_dir" yaml:"log_dir" toml:"log_dir"`
	DefaultMethod      string `json:"default_method" yaml:"default_method" toml:"default_method"`
	DefaultContentType string `json:"default_content_type" yaml:"default_content_type" toml:"default_content_type"`
	TimeoutSeconds     int    `json:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"` // 0 keeps the transport default
	UserAgent          string `json:"user_agent" yaml:"user_agent" toml:"user_agent"`

	path string
	// fileLogLevel is what Save writes while RESTLY_LOG_LEVEL overrides LogLevel
	fileLogLevel string
	envOverride  bool
}

var (
	configDir = filepath.Join(os.Getenv("HOME"), ".restly")
	defaultFS = filesystem.NewOSFileSystem()

	// searched in order, first match wins
	configFileNames = []string{"config.json", "config.yaml", "config.yml", "config.toml"}
)

// Load loads the configuration from file or creates a default one
func Load() (*Config, error) {
	return LoadWithFS(defaultFS, configDir)
}

// LoadWithFS loads the configuration using a custom FileSystem (for testing)
func LoadWithFS(fs filesystem.FileSystem, dir string) (*Config, error) {
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfg := defaultConfig(dir)

	file := FindConfigFile(fs, dir)
	if file == "" {
		file = filepath.Join(dir, configFileNames[0])
		if err := cfg.SaveWithFS(fs, file); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	} else {
		data, err := fs.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := decode(file, data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	cfg.path = file

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", file, err)
	}

	// env overrides are applied per run and never saved
	if level := strings.TrimSpace(os.Getenv("RESTLY_LOG_LEVEL")); level != "" {
		fileLevel := cfg.LogLevel
		if err := cfg.Set("log_level", level); err != nil {
			return nil, fmt.Errorf("invalid RESTLY_LOG_LEVEL: %w", err)
		}
		cfg.fileLogLevel = fileLevel
		cfg.envOverride = true
	}

	if err := cfg.ensureDir(fs, filepath.Join(dir, "logs")); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaultConfig(dir string) *Config {
	return &Config{
		LogLevel:      "info",
		LogDir:        filepath.Join(dir, "logs"),
		DefaultMethod: string(composer.MethodGet),
		UserAgent:     DefaultUserAgent,
	}
}

// FindConfigFile returns the first existing config file in dir, or "".
func FindConfigFile(fs filesystem.FileSystem, dir string) string {
	for _, name := range configFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := fs.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// Save saves the configuration to the file it was loaded from
func (c *Config) Save() error {
	return c.SaveWithFS(defaultFS, c.Path())
}

// SaveWithFS saves the configuration using a custom FileSystem (for testing)
func (c *Config) SaveWithFS(fs filesystem.FileSystem, file string) error {
	out := *c
	if c.envOverride {
		out.LogLevel = c.fileLogLevel
	}
	data, err := encode(file, &out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(file)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := fs.WriteFile(file, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Path returns the file this configuration was loaded from
func (c *Config) Path() string {
	if c.path == "" {
		return filepath.Join(configDir, configFileNames[0])
	}
	return c.path
}

// Timeout returns the request timeout, zero when none is configured
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GetConfigDir returns the configuration directory path
func GetConfigDir() string {
	return configDir
}

// fileFormat determines the config format based on extension
func fileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".toml":
		return "toml"
	default:
		return "json"
	}
}

func decode(path string, data []byte, cfg *Config) error {
	switch fileFormat(path) {
	case "yaml":
		return yaml.Unmarshal(data, cfg)
	case "toml":
		return toml.Unmarshal(data, cfg)
	default:
		return json.Unmarshal(data, cfg)
	}
}

func encode(path string, cfg *Config) ([]byte, error) {
	switch fileFormat(path) {
	case "yaml":
		return yaml.Marshal(cfg)
	case "toml":
		return toml.Marshal(cfg)
	default:
		return json.MarshalIndent(cfg, "", "  ")
	}
}

func (c *Config) validate() error {
	checks := map[string]string{
		"log_level":            c.LogLevel,
		"default_method":       c.DefaultMethod,
		"default_content_type": c.DefaultContentType,
		"timeout_seconds":      strconv.Itoa(c.TimeoutSeconds),
	}
	for _, key := range []string{"log_level", "default_method", "default_content_type", "timeout_seconds"} {
		if err := c.Set(key, checks[key]); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) ensureDir(fs filesystem.FileSystem, fallback string) error {
	if strings.TrimSpace(c.LogDir) == "" {
		c.LogDir = fallback
	}

	if err := fs.MkdirAll(c.LogDir, 0755); err != nil {
		c.LogDir = fallback
		if err := fs.MkdirAll(c.LogDir, 0755); err != nil {
			return fmt.Errorf("failed to create log_dir directory: %w", err)
		}
	}

	return nil
}

// Set updates a config value by key.
func (c *Config) Set(key, value string) error {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "log_level":
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "debug", "info", "warn", "error":
			c.LogLevel = strings.ToLower(strings.TrimSpace(value))
		case "":
			c.LogLevel = "info"
		default:
			return fmt.Errorf("invalid log_level: %s", value)
		}
		// an explicit set replaces the value on disk too
		c.fileLogLevel = c.LogLevel
	case "log_dir":
		c.LogDir = value
	case "default_method":
		if strings.TrimSpace(value) == "" {
			c.DefaultMethod = ""
			return nil
		}
		method, err := composer.ParseMethod(value)
		if err != nil {
			return fmt.Errorf("invalid default_method: %s", value)
		}
		c.DefaultMethod = string(method)
	case "default_content_type":
		value = strings.TrimSpace(value)
		if value != "" && !isKnownContentType(value) {
			return fmt.Errorf("invalid default_content_type: %s", value)
		}
		c.DefaultContentType = value
	case "timeout_seconds":
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || parsed < 0 {
			return fmt.Errorf("invalid timeout_seconds: %s", value)
		}
		c.TimeoutSeconds = parsed
	case "user_agent":
		c.UserAgent = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}

	return nil
}

func isKnownContentType(value string) bool {
	for _, ct := range composer.ContentTypes() {
		if ct == value {
			return true
		}
	}
	return false
}
