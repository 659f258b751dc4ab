// Package config loads the optional config.yaml from the user config
// directory. A missing file is not an error; defaults apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyDBPath           = "db_path"
	cfgKeyBeforeLunchHours = "before_lunch_hours"
	cfgKeyTickSeconds      = "tick_seconds"

	defaultBeforeLunchHours = 4
	defaultTickSeconds      = 60
)

// defaultConfigYAML is written on first run so the knobs are discoverable.
const defaultConfigYAML = `# tydlig configuration

# Snapshot database location (default: <user config dir>/tydlig/tydlig.db)
# db_path:

# Nominal span of the before-lunch timeline axis, in hours.
before_lunch_hours: 4

# How often the current entry's end time is advanced, in seconds.
tick_seconds: 60
`

type Config struct {
	DBPath           string
	BeforeLunchHours int
	TickSeconds      int
}

// BeforeLunchWindow is the before-lunch axis span as a duration.
func (c Config) BeforeLunchWindow() time.Duration {
	return time.Duration(c.BeforeLunchHours) * time.Hour
}

// TickInterval is the tick period as a duration.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickSeconds) * time.Second
}

// DefaultDir returns the tydlig config directory under os.UserConfigDir.
func DefaultDir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "tydlig"), nil
}

// Load reads config.yaml from configDir, creating the directory and a
// default file on first run.
func Load(configDir string) (Config, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return Config{}, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return Config{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBeforeLunchHours, defaultBeforeLunchHours)
	v.SetDefault(cfgKeyTickSeconds, defaultTickSeconds)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	return Config{
		DBPath:           v.GetString(cfgKeyDBPath),
		BeforeLunchHours: v.GetInt(cfgKeyBeforeLunchHours),
		TickSeconds:      v.GetInt(cfgKeyTickSeconds),
	}, nil
}

func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
