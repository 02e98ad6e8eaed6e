package config

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/typeflow/internal/model"
)

// Defaults used when neither flags, environment nor file set a value.
const (
	DefaultDuration = model.DefaultDuration
	DefaultAPIBase  = "http://localhost:8000"
	DefaultTheme    = ThemeDark
	DefaultAddr     = ":8000"
)

// Supported themes.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// ValidatePractice checks settings that must hold before a session starts.
func ValidatePractice(cfg model.Config) error {
	if cfg.Duration <= 0 {
		return fmt.Errorf("--duration must be > 0")
	}
	if !model.ValidDuration(cfg.Duration) {
		return fmt.Errorf("--duration must be one of %s", durationList())
	}
	if cfg.Theme != ThemeDark && cfg.Theme != ThemeLight {
		return fmt.Errorf("--theme must be %q or %q", ThemeDark, ThemeLight)
	}
	if strings.TrimSpace(cfg.APIBase) == "" {
		return fmt.Errorf("--api must not be empty")
	}
	return nil
}

// ValidateServer checks the service settings.
func ValidateServer(cfg model.ServerConfig) error {
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("--addr must not be empty")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return fmt.Errorf("--db must not be empty")
	}
	return nil
}

func durationList() string {
	parts := make([]string, len(model.Durations))
	for i, d := range model.Durations {
		parts[i] = fmt.Sprint(d)
	}
	return strings.Join(parts, ", ")
}
