package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
)

// Storage backend names accepted in storage.backend.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// DefaultStorageKey is the slot that holds the serialized task list.
const DefaultStorageKey = "todo_tasks_v1"

// EnvPrefix prefixes environment overrides, e.g. TASKTRACKER_STORAGE_BACKEND.
const EnvPrefix = "TASKTRACKER"

// RedisConfig holds connection settings for the Redis backend.
type RedisConfig struct {
	Addr   string `mapstructure:"addr" yaml:"addr"`
	DB     int    `mapstructure:"db" yaml:"db"`
	Prefix string `mapstructure:"prefix" yaml:"prefix"`

	// PasswordKey names the keyring entry holding the Redis password.
	// Empty means no authentication.
	PasswordKey string `mapstructure:"password_key" yaml:"password_key"`
}

// StorageConfig selects and configures the key-value backend.
type StorageConfig struct {
	// Backend is one of "sqlite", "redis" or "memory".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Path is the SQLite database file.
	Path string `mapstructure:"path" yaml:"path"`

	// Key is the slot the task list is stored under.
	Key string `mapstructure:"key" yaml:"key"`

	Redis RedisConfig `mapstructure:"redis" yaml:"redis"`
}

// LogConfig controls the application log file.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	// DefaultFilter is the priority filter applied at startup.
	DefaultFilter string `mapstructure:"default_filter" yaml:"default_filter"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
}

// ConfigDir returns ~/.config/tasktracker, or "." when the home
// directory cannot be determined.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "tasktracker")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/tasktracker/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// DefaultAppConfig returns the configuration used when no file exists.
func DefaultAppConfig() *AppConfig {
	dir := ConfigDir()
	return &AppConfig{
		Storage: StorageConfig{
			Backend: BackendSQLite,
			Path:    filepath.Join(dir, "tasks.db"),
			Key:     DefaultStorageKey,
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "tasktracker:",
			},
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(dir, "tasktracker.log"),
		},
		Display: DisplayConfig{
			DefaultFilter: "all",
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultAppConfig()
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.path", d.Storage.Path)
	v.SetDefault("storage.key", d.Storage.Key)
	v.SetDefault("storage.redis.addr", d.Storage.Redis.Addr)
	v.SetDefault("storage.redis.db", d.Storage.Redis.DB)
	v.SetDefault("storage.redis.prefix", d.Storage.Redis.Prefix)
	v.SetDefault("storage.redis.password_key", d.Storage.Redis.PasswordKey)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("display.default_filter", d.Display.DefaultFilter)
}

// NewViper returns a Viper instance with defaults and environment
// overrides registered. Callers may bind flags to it before LoadConfigFrom.
func NewViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// A missing file is not an error; defaults and environment overrides still apply.
func LoadConfig(path string) (*AppConfig, error) {
	return LoadConfigFrom(NewViper(path))
}

// LoadConfigFrom reads and validates configuration from a prepared Viper.
func LoadConfigFrom(v *viper.Viper) (*AppConfig, error) {
	path := v.ConfigFileUsed()
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, os.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.Storage.Path = expandHome(cfg.Storage.Path)
	cfg.Log.File = expandHome(cfg.Log.File)
	if strings.TrimSpace(cfg.Storage.Key) == "" {
		cfg.Storage.Key = DefaultStorageKey
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c *AppConfig) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Storage.Backend == BackendSQLite && c.Storage.Path == "" {
		return errors.New("storage.path must be set for the sqlite backend")
	}
	if c.Storage.Backend == BackendRedis && c.Storage.Redis.Prefix == "" {
		return errors.New("storage.redis.prefix must be set for the redis backend")
	}
	if !slices.Contains([]string{"all", "high", "medium", "low"}, c.Display.DefaultFilter) {
		return fmt.Errorf("unknown default filter %q", c.Display.DefaultFilter)
	}
	return nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("log", cfg.Log)
	v.Set("display", cfg.Display)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
