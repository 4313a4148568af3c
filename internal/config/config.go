package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sadopc/streakr/internal/store"
	"gopkg.in/yaml.v3"
)

// Environment variables that override values from the config file.
const (
	EnvDataDir          = "STREAKR_DATA_DIR"
	EnvBackend          = "STREAKR_BACKEND"
	EnvLogLevel         = "STREAKR_LOG_LEVEL"
	EnvRejectDuplicates = "STREAKR_REJECT_DUPLICATES"
)

// Config is the application configuration stored in config.yaml.
type Config struct {
	// DataDir holds the record file (or database) and the log file.
	DataDir string `yaml:"data_dir"`

	// Backend selects the storage format: "file" (plain text records)
	// or "sqlite".
	Backend string `yaml:"backend"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// RejectDuplicates refuses to log the same day twice. Off by default.
	RejectDuplicates bool `yaml:"reject_duplicates"`

	// ExportDir is where CSV/JSON exports are written. Defaults to $HOME.
	ExportDir string `yaml:"export_dir"`
}

// DefaultPath returns ~/.config/streakr/config.yaml
func DefaultPath() (string, error) {
	dir, err := store.DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	c := &Config{}
	c.Normalize()
	return c
}

// Normalize fills in missing values so partially written files still work.
func (c *Config) Normalize() {
	if c.DataDir == "" {
		if dir, err := store.DefaultDir(); err == nil {
			c.DataDir = dir
		} else {
			c.DataDir = "."
		}
	}
	switch c.Backend {
	case store.BackendFile, store.BackendSQLite:
	default:
		c.Backend = store.BackendFile
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = "info"
	}
	if c.ExportDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.ExportDir = home
		} else {
			c.ExportDir = c.DataDir
		}
	}
}

// LogPath is the log file inside DataDir.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "streakr.log")
}

// Load reads the YAML config at path. On first run the file does not exist
// yet; a default config is written there and returned. If that write fails
// the defaults are still returned alongside the error.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, fmt.Errorf("write default config: %w", err)
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes cfg to path with 0600 permissions via a temp file and rename.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}
	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".streakr-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// Update loads the file at path, applies fn and writes it back. Environment
// overrides are not applied, so they never leak into the file.
func Update(path string, fn func(*Config)) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	fn(cfg)
	if err := Save(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnvFile loads a .env file from the working directory if one exists.
func LoadEnvFile() error {
	err := godotenv.Load()
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// ApplyEnv overrides file values with STREAKR_* environment variables.
func (c *Config) ApplyEnv() {
	c.DataDir = getEnv(EnvDataDir, c.DataDir)
	c.Backend = getEnv(EnvBackend, c.Backend)
	c.LogLevel = getEnv(EnvLogLevel, c.LogLevel)
	c.RejectDuplicates = getEnvBool(EnvRejectDuplicates, c.RejectDuplicates)
	c.Normalize()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
