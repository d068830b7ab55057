package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
)

// Config holds user defaults. Flags and environment variables override it.
type Config struct {
	// Dir is the data directory. Empty means discover .organizer upwards from
	// the working directory.
	Dir string `json:"dir,omitempty"`
	// Backend is one of file, sqlite or memory.
	Backend string `json:"backend,omitempty"`
	// Format is the default output format (json, edn or text).
	Format   string `json:"format,omitempty"`
	LogLevel string `json:"logLevel,omitempty"`
	// DefaultColor is used for projects created without --color.
	DefaultColor string `json:"defaultColor,omitempty"`
}

const DefaultProjectColor = "#6366f1"

// ConfigKeys lists the settable keys in file order.
var ConfigKeys = []string{"dir", "backend", "format", "logLevel", "defaultColor"}

// Set assigns one key by its JSON name. An empty value clears the key.
func (c *Config) Set(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "dir":
		c.Dir = value
	case "backend":
		c.Backend = value
	case "format":
		c.Format = value
	case "logLevel":
		c.LogLevel = value
	case "defaultColor":
		c.DefaultColor = value
	default:
		return fmt.Errorf("unknown config key: %s (want %s)", key, strings.Join(ConfigKeys, "|"))
	}
	return nil
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.organizer).
	if v := strings.TrimSpace(os.Getenv("ORGANIZER_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, storeDirName), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadConfig reads config.json. Comments and trailing commas are allowed.
// A missing file yields an empty config.
func LoadConfig() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}
	std, err := hujson.Standardize(b)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	var cfg Config
	if err := sonic.ConfigStd.Unmarshal(std, &cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &cfg, nil
}

// SaveConfig writes cfg atomically and keeps the previous file as config.json.bak.
func SaveConfig(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := sonic.ConfigStd.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// Keep a copy of the previous config; errors here never block the save.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomic.WriteFile(path+".bak", bytes.NewReader(prev))
	}
	return atomic.WriteFile(path, bytes.NewReader(append(b, '\n')))
}
