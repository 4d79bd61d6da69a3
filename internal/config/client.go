package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultSlotKey names the durable slot that holds the serialised
// conversation.
const DefaultSlotKey = "rehnumaChatHistory"

// Storage backends accepted by ClientConfig.Storage.
const (
	StorageFile     = "file"
	StorageSQLite   = "sqlite"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// ClientConfig drives the terminal client.
type ClientConfig struct {
	ServerURL   string
	Storage     string
	StoragePath string
	RedisURL    string
	DatabaseURL string
	SlotKey     string
	Width       int
}

// UserConfigDir returns $HOME/.config/rehnuma.
func UserConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".config", "rehnuma"), nil
}

// SetClientDefaults registers defaults and REHNUMA_* environment bindings on v.
func SetClientDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("server_url", "http://localhost:3000")
	v.SetDefault("storage", StorageFile)
	v.SetDefault("storage_path", filepath.Join(configDir, "history"))
	v.SetDefault("redis_url", "redis://localhost:6379/0")
	v.SetDefault("database_url", "")
	v.SetDefault("slot_key", DefaultSlotKey)
	v.SetDefault("width", 80)

	v.SetEnvPrefix("REHNUMA")
	v.AutomaticEnv()
}

// ReadClientConfigFile loads cfgFile, or config.{toml,yaml,json} from
// configDir when cfgFile is empty. A missing default file is not an error.
func ReadClientConfigFile(v *viper.Viper, cfgFile, configDir string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
		return nil
	}

	v.AddConfigPath(configDir)
	v.SetConfigName("config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// ClientFromViper snapshots v into a ClientConfig.
func ClientFromViper(v *viper.Viper) (*ClientConfig, error) {
	cfg := &ClientConfig{
		ServerURL:   v.GetString("server_url"),
		Storage:     v.GetString("storage"),
		StoragePath: v.GetString("storage_path"),
		RedisURL:    v.GetString("redis_url"),
		DatabaseURL: v.GetString("database_url"),
		SlotKey:     v.GetString("slot_key"),
		Width:       v.GetInt("width"),
	}

	switch cfg.Storage {
	case StorageFile, StorageSQLite, StorageRedis:
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("storage %q requires database_url", cfg.Storage)
		}
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
	if cfg.SlotKey == "" {
		cfg.SlotKey = DefaultSlotKey
	}
	if cfg.Width <= 0 {
		cfg.Width = 80
	}
	return cfg, nil
}
