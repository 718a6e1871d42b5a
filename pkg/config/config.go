package config

import (
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	apperrors "github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/errors"
)

// Storage backends understood by storage.Open
const (
	BackendFile   = "file"
	BackendBolt   = "bolt"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

const (
	appDirName        = "emerald-notes"
	defaultStorageKey = "notes"
	defaultListenAddr = "127.0.0.1:8080"
)

// Config holds application configuration
type Config struct {
	Backend    string         `json:"backend" toml:"backend" yaml:"backend"`
	DataDir    string         `json:"dataDir" toml:"data_dir" yaml:"dataDir"`
	StorageKey string         `json:"storageKey" toml:"storage_key" yaml:"storageKey"`
	Redis      RedisConfig    `json:"redis" toml:"redis" yaml:"redis"`
	ListenAddr string         `json:"listenAddr" toml:"listen_addr" yaml:"listenAddr"`
	Watch      bool           `json:"watch" toml:"watch" yaml:"watch"`
	LogLevel   string         `json:"logLevel" toml:"log_level" yaml:"logLevel"`
	Splash     SequenceConfig `json:"splash" toml:"splash" yaml:"splash"`
	Busy       SequenceConfig `json:"busy" toml:"busy" yaml:"busy"`
}

// RedisConfig configures the redis slot backend
type RedisConfig struct {
	Addr     string `json:"addr" toml:"addr" yaml:"addr"`
	Password string `json:"password,omitempty" toml:"password" yaml:"password"`
	DB       int    `json:"db" toml:"db" yaml:"db"`
	Prefix   string `json:"prefix" toml:"prefix" yaml:"prefix"`
}

// SequenceConfig describes a progress sequence: the counter advances by Step
// percent every IntervalMS milliseconds, then waits SettleMS at 100.
type SequenceConfig struct {
	Enabled    bool `json:"enabled" toml:"enabled" yaml:"enabled"`
	Step       int  `json:"step" toml:"step" yaml:"step"`
	IntervalMS int  `json:"intervalMs" toml:"interval_ms" yaml:"intervalMs"`
	SettleMS   int  `json:"settleMs" toml:"settle_ms" yaml:"settleMs"`
}

// Interval returns the tick interval as a duration
func (s SequenceConfig) Interval() time.Duration {
	return time.Duration(s.IntervalMS) * time.Millisecond
}

// Settle returns the post-completion pause as a duration
func (s SequenceConfig) Settle() time.Duration {
	return time.Duration(s.SettleMS) * time.Millisecond
}

func homeDir() string {
	if currentUser, err := user.Current(); err == nil && currentUser.HomeDir != "" {
		return currentUser.HomeDir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return ""
}

// GetDefaultDataPath returns the default directory for the notes slot
func GetDefaultDataPath() string {
	home := homeDir()
	if home == "" {
		return "./data"
	}
	return filepath.Join(home, ".local", "share", appDirName)
}

// GetConfigFilePath returns the path where the config file is stored
func GetConfigFilePath() string {
	home := homeDir()
	if home == "" {
		return "./config.json"
	}
	return filepath.Join(home, ".config", appDirName, "config")
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Backend:    BackendFile,
		DataDir:    GetDefaultDataPath(),
		StorageKey: defaultStorageKey,
		Redis: RedisConfig{
			Addr:   "127.0.0.1:6379",
			Prefix: appDirName + ":",
		},
		ListenAddr: defaultListenAddr,
		Watch:      true,
		LogLevel:   "info",
		Splash: SequenceConfig{
			Enabled:    true,
			Step:       2,
			IntervalMS: 60,
			SettleMS:   200,
		},
		Busy: SequenceConfig{
			Enabled:    true,
			Step:       20,
			IntervalMS: 40,
		},
	}
}

// Load loads configuration from the default file, using defaults if the file doesn't exist
func Load() (*Config, error) {
	return LoadFile(GetConfigFilePath())
}

// LoadFile loads configuration from path on top of the defaults. A missing
// file is not an error. The format follows the extension: .toml, .yaml/.yml,
// anything else is JSON.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, apperrors.Wrap(err, apperrors.ErrTypeConfig, "CONFIG_LOAD_FAILED",
			"failed to read configuration").WithContext("path", path)
	}

	if err := decode(path, data, cfg); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrTypeConfig, "CONFIG_LOAD_FAILED",
			"failed to parse configuration").
			WithUserMessage("Configuration file could not be parsed").
			WithContext("path", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	default:
		return json.Unmarshal(data, cfg)
	}
}

// encode mirrors decode so a saved file loads back from the same path
func encode(path string, cfg *Config) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Marshal(cfg)
	case ".yaml", ".yml":
		return yaml.Marshal(cfg)
	default:
		return json.MarshalIndent(cfg, "", "  ")
	}
}

// Validate checks the values a running app depends on
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendBolt, BackendRedis, BackendMemory:
	default:
		return apperrors.ErrUnknownBackend.WithContext("backend", c.Backend)
	}

	if result := apperrors.NewValidator().ValidateSlotKey(c.StorageKey); !result.IsValid {
		return result.GetFirstError()
	}

	if (c.Backend == BackendFile || c.Backend == BackendBolt) && strings.TrimSpace(c.DataDir) == "" {
		return apperrors.New(apperrors.ErrTypeConfig, "DATA_DIR_EMPTY", "data directory cannot be empty").
			WithUserMessage("A data directory is required for the " + c.Backend + " backend")
	}

	for name, seq := range map[string]SequenceConfig{"splash": c.Splash, "busy": c.Busy} {
		if seq.Enabled && (seq.Step <= 0 || seq.Step > 100 || seq.IntervalMS < 0 || seq.SettleMS < 0) {
			return apperrors.New(apperrors.ErrTypeConfig, "SEQUENCE_INVALID",
				fmt.Sprintf("invalid %s sequence", name)).
				WithUserMessage("Progress step must be between 1 and 100 and timings non-negative").
				WithContext("sequence", name)
		}
	}
	return nil
}

// Save saves the configuration to the default file
func (c *Config) Save() error {
	return c.SaveFile(GetConfigFilePath())
}

// SaveFile writes the configuration in the format its extension names
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.Wrap(err, apperrors.ErrTypeConfig, "CONFIG_SAVE_FAILED",
			"failed to create config directory").WithContext("path", path)
	}

	data, err := encode(path, c)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrTypeConfig, "CONFIG_SAVE_FAILED",
			"failed to encode configuration").WithContext("path", path)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.Wrap(err, apperrors.ErrTypeConfig, "CONFIG_SAVE_FAILED",
			"failed to write configuration").WithContext("path", path)
	}
	return nil
}
