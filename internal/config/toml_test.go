package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg.Test.Duration != nil {
		t.Fatalf("expected empty config for missing file")
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigDecodesValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[test]
duration = 60
numbers = true
numbers-ratio = 0.2
uppercase = true
uppercase-ratio = 0.3
dictionary = "/tmp/words.txt"
save-results = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Test.Duration == nil || *cfg.Test.Duration != 60 {
		t.Fatalf("unexpected duration: %v", cfg.Test.Duration)
	}
	if cfg.Test.Numbers == nil || !*cfg.Test.Numbers {
		t.Fatalf("expected numbers enabled")
	}
	if cfg.Test.NumbersRatio == nil || *cfg.Test.NumbersRatio != 0.2 {
		t.Fatalf("unexpected numbers ratio: %v", cfg.Test.NumbersRatio)
	}
	if cfg.Test.UppercaseRatio == nil || *cfg.Test.UppercaseRatio != 0.3 {
		t.Fatalf("unexpected uppercase ratio: %v", cfg.Test.UppercaseRatio)
	}
	if cfg.Test.DictionaryPath == nil || *cfg.Test.DictionaryPath != "/tmp/words.txt" {
		t.Fatalf("unexpected dictionary path: %v", cfg.Test.DictionaryPath)
	}
	if cfg.Test.SaveResults == nil || *cfg.Test.SaveResults {
		t.Fatalf("expected save-results disabled")
	}
	if cfg.Test.Symbols != nil || cfg.Test.SymbolsRatio != nil {
		t.Fatalf("expected unset symbols fields to stay nil")
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[test\nbroken"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestDefaultPathsUseXDGHomes(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")

	if got := DefaultConfigPath(); got != "/cfg/gallop/config.toml" {
		t.Fatalf("unexpected config path: %q", got)
	}
	if got := DefaultResultsPath(); got != "/data/gallop/results.csv" {
		t.Fatalf("unexpected results path: %q", got)
	}
	if got := DefaultDBPath(); got != "/data/gallop/gallop.db" {
		t.Fatalf("unexpected db path: %q", got)
	}
}
