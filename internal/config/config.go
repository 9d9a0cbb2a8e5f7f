package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvExportPath overrides export_path when set
const EnvExportPath = "CHATGPT_EXPORT_PATH"

// Config holds user settings read from config.toml
type Config struct {
	ExportPath    string `toml:"export_path"`
	CacheDir      string `toml:"cache_dir"`
	ArchiveDB     string `toml:"archive_db"`
	DefaultFormat string `toml:"default_format"`
	PreviewLength int    `toml:"preview_length"`
	Timezone      string `toml:"timezone"`
}

// DefaultPath returns $XDG_CONFIG_HOME/chatgpt-export/config.toml, falling
// back to ~/.config
func DefaultPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "chatgpt-export"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "chatgpt-export"), nil
}

// Defaults returns the settings used when no config file exists
func Defaults() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir, err := configDir()
	if err != nil {
		return nil, err
	}
	return &Config{
		CacheDir:      filepath.Join(home, ".cache", "chatgpt-export"),
		ArchiveDB:     filepath.Join(dir, "archive.db"),
		DefaultFormat: "md",
		PreviewLength: 200,
		Timezone:      "UTC",
	}, nil
}

// Load reads the config file at path, or the default path when path is
// empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	explicit := path != ""
	if !explicit {
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	if env := os.Getenv(EnvExportPath); env != "" {
		cfg.ExportPath = env
	}

	home, _ := os.UserHomeDir()
	cfg.ExportPath = expandHome(cfg.ExportPath, home)
	cfg.CacheDir = expandHome(cfg.CacheDir, home)
	cfg.ArchiveDB = expandHome(cfg.ArchiveDB, home)

	if cfg.PreviewLength <= 0 {
		cfg.PreviewLength = 200
	}

	return cfg, nil
}

// Location returns the configured timezone, UTC when unset or unknown
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func expandHome(path, home string) string {
	if home != "" && len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
