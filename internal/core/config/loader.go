package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads path, applies defaults and validates. A missing file is not an
// error when optional is set; the defaults are returned instead.
func Load(path string, optional bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return Decode(string(data))
}

// Decode decodes TOML content. Keys the decoder does not know are rejected
// so typos surface instead of silently falling back to defaults.
func Decode(content string) (*Config, error) {
	cfg := Config{Output: Output{Header: true}}
	md, err := toml.Decode(content, &cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}

	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadEnvFile loads a .env file into the process environment when present.
// Existing variables win.
func LoadEnvFile(path string, logger *slog.Logger) {
	if err := godotenv.Load(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn("failed to load env file", "path", path, "error", err)
		}
		return
	}
	logger.Debug("loaded env file", "path", path)
}
