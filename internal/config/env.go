package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
)

// Environment variables that override file values.
const (
	EnvAPI  = "TYPEFLOW_API"
	EnvDB   = "TYPEFLOW_DB"
	EnvAddr = "TYPEFLOW_ADDR"
)

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables already set are kept. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg with non-empty environment values from lookup.
func ApplyEnv(cfg *FileConfig, lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAPI); ok && v != "" {
		cfg.Practice.API = &v
	}
	if v, ok := lookup(EnvDB); ok && v != "" {
		cfg.Server.DB = &v
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		cfg.Server.Addr = &v
	}
}
