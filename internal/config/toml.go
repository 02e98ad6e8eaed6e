// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Server   ServerConfig   `toml:"server"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Duration *int    `toml:"duration"`
	User     *string `toml:"user"`
	API      *string `toml:"api"`
	Theme    *string `toml:"theme"`
}

// ServerConfig maps settings of the text/result service.
type ServerConfig struct {
	Addr       *string `toml:"addr"`
	DB         *string `toml:"db"`
	Production *bool   `toml:"production"`
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
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Template returns the commented config written by `typeflow config`.
func Template() string {
	return fmt.Sprintf(`# typeflow configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# duration = %d           # Test length in seconds: 60, 90 or 120
# user = "ada"            # Name shown on the leaderboard (empty: anonymous)
# api = %q  # Base URL of the text/result service
# theme = %q           # dark or light

[server]
# addr = %q             # Listen address for typeflow serve
# db = "/path/to/typeflow.db"  # SQLite database path
# production = false      # Release mode for the HTTP router
`,
		DefaultDuration,
		DefaultAPIBase,
		DefaultTheme,
		DefaultAddr,
	)
}
