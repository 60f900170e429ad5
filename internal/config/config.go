package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all application configuration
type Config struct {
	Trainer       TrainerConfig       `toml:"trainer"`
	History       HistoryConfig       `toml:"history"`
	Notifications NotificationsConfig `toml:"notifications"`
	Architectures ArchitecturesConfig `toml:"architectures"`
}

// TrainerConfig holds defaults for launch parameters that rarely change
// between runs. Any of these can be overridden per launch on the CLI.
type TrainerConfig struct {
	PythonLoc string `toml:"python_loc"`
	Script    string `toml:"script"`
	NumGPUs   int    `toml:"num_gpus"`
	NumCores  int    `toml:"num_cores"`
	BatchSize int    `toml:"batch_size"`
	NumEpochs int    `toml:"num_epochs"`
	MaxToKeep int    `toml:"max_to_keep"`
	Delimiter string `toml:"delimiter"`
}

// HistoryConfig holds launch-history settings
type HistoryConfig struct {
	DatabasePath string `toml:"database_path"`
}

// NotificationsConfig holds notification settings
type NotificationsConfig struct {
	Desktop      bool   `toml:"desktop"`
	SlackWebhook string `toml:"slack_webhook"`
}

// ArchitecturesConfig holds the optional architecture profile override file
type ArchitecturesConfig struct {
	ProfilesPath string `toml:"profiles_path"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Trainer: TrainerConfig{
			PythonLoc: "/usr/bin/",
			Script:    "main.py",
			NumGPUs:   1,
			NumCores:  4,
			BatchSize: 64,
			NumEpochs: 10,
			MaxToKeep: 5,
			Delimiter: ",",
		},
		History: HistoryConfig{
			DatabasePath: filepath.Join(home, ".trainlaunch", "runs.db"),
		},
		Notifications: NotificationsConfig{
			Desktop: true,
		},
	}
}

// Load reads configuration from a TOML file, falling back to defaults
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	// Expand paths
	cfg.Trainer.PythonLoc = ExpandPath(cfg.Trainer.PythonLoc)
	cfg.History.DatabasePath = ExpandPath(cfg.History.DatabasePath)
	cfg.Architectures.ProfilesPath = ExpandPath(cfg.Architectures.ProfilesPath)

	return cfg, nil
}

// Save writes the configuration to a TOML file
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ExpandPath expands ~ to the user's home directory
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// DefaultConfigPath returns the default config file location
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "trainlaunch", "config.toml")
}
