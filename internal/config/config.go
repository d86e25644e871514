package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const dataDirName = ".promptbook"

// Config represents the application configuration. It is passed explicitly
// into the store and server constructors; there is no process-wide default.
type Config struct {
	DataDir      string `mapstructure:"data_dir"`
	DatabasePath string `mapstructure:"database_path"`
}

// Load resolves configuration from defaults, an optional config file in the
// data directory, and PROMPTBOOK_* environment variables.
func Load() (*Config, error) {
	// Best effort .env load, same as a missing file
	_ = godotenv.Load()

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	dataDir := filepath.Join(home, dataDirName)

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)
	v.AddConfigPath(".")

	v.SetDefault("data_dir", dataDir)
	v.SetDefault("database_path", filepath.Join(dataDir, "prompts.db"))

	v.SetEnvPrefix("promptbook")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional; defaults and env vars cover everything
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &cfg, nil
}

// EnsureDataDir creates the data directory if it does not exist yet.
func (c *Config) EnsureDataDir() error {
	dir := filepath.Dir(c.DatabasePath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	return nil
}
