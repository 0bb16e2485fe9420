// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Test TestConfig `toml:"test"`
}

// TestConfig maps test-related settings. Nil fields were not set in the file.
type TestConfig struct {
	Duration       *int     `toml:"duration"`
	Numbers        *bool    `toml:"numbers"`
	NumbersRatio   *float64 `toml:"numbers-ratio"`
	Symbols        *bool    `toml:"symbols"`
	SymbolsRatio   *float64 `toml:"symbols-ratio"`
	Uppercase      *bool    `toml:"uppercase"`
	UppercaseRatio *float64 `toml:"uppercase-ratio"`
	DictionaryPath *string  `toml:"dictionary"`
	SaveResults    *bool    `toml:"save-results"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
