// Package rconfig loads roogle's server/CLI configuration from an
// optional TOML file, environment variables, and flags, in that
// increasing order of precedence.
package rconfig

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is roogle's runtime configuration.
type Config struct {
	// IndexDir is the directory holding crate/*.json and set/*.json.
	IndexDir string `toml:"index_dir"`

	// ListenAddr is the HTTP surface's bind address, e.g. ":8080".
	ListenAddr string `toml:"listen_addr"`

	// Threshold is the similarity score at or above which hits are discarded.
	Threshold float64 `toml:"threshold"`

	// LogLevel is one of "off", "error", "info", "debug".
	LogLevel string `toml:"log_level"`
}

// Default returns the configuration used when no file, env var, or flag
// overrides a field.
func Default() Config {
	return Config{
		IndexDir:   "roogle-index",
		ListenAddr: ":8080",
		Threshold:  0.75,
		LogLevel:   "error",
	}
}

// Load reads path if it exists, layering ROOGLE_* environment variables
// on top. A missing path is not an error — Default() is used, with the
// environment variables still applied.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return Config{}, fmt.Errorf("rconfig: parsing %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("rconfig: statting %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ROOGLE_INDEX_DIR"); v != "" {
		cfg.IndexDir = v
	}
	if v := os.Getenv("ROOGLE_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("ROOGLE_LOG"); v != "" {
		cfg.LogLevel = v
	}
}
