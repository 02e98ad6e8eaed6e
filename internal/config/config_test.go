package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verte-zerg/typeflow/internal/model"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Practice.Duration != nil || cfg.Server.Addr != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigDecodesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[practice]
duration = 60
user = "ada"
theme = "light"

[server]
addr = ":9000"
production = true
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Practice.Duration == nil || *cfg.Practice.Duration != 60 {
		t.Fatalf("expected duration 60, got %v", cfg.Practice.Duration)
	}
	if cfg.Practice.User == nil || *cfg.Practice.User != "ada" {
		t.Fatalf("expected user ada, got %v", cfg.Practice.User)
	}
	if cfg.Practice.API != nil {
		t.Fatalf("expected api unset")
	}
	if cfg.Server.Addr == nil || *cfg.Server.Addr != ":9000" {
		t.Fatalf("expected addr :9000, got %v", cfg.Server.Addr)
	}
	if cfg.Server.Production == nil || !*cfg.Server.Production {
		t.Fatalf("expected production true")
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[practice]\nwords = 25\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil || !strings.Contains(err.Error(), "practice.words") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestTemplateDecodesToEmptyConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(Template()), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("template should decode: %v", err)
	}
	if cfg.Practice.Duration != nil || cfg.Server.DB != nil {
		t.Fatalf("template values must be commented out, got %+v", cfg)
	}
}

func TestApplyEnvOverridesFile(t *testing.T) {
	fileAPI := "http://file"
	cfg := FileConfig{Practice: PracticeConfig{API: &fileAPI}}
	env := map[string]string{
		EnvAPI:  "http://env",
		EnvDB:   "/tmp/t.db",
		EnvAddr: "",
	}
	ApplyEnv(&cfg, func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
	if *cfg.Practice.API != "http://env" {
		t.Fatalf("expected env api, got %s", *cfg.Practice.API)
	}
	if cfg.Server.DB == nil || *cfg.Server.DB != "/tmp/t.db" {
		t.Fatalf("expected env db")
	}
	if cfg.Server.Addr != nil {
		t.Fatalf("empty env value must not override")
	}
}

func TestLoadDotEnv(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Fatalf("missing .env must be ignored: %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("TYPEFLOW_TEST_DOTENV=loaded\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("TYPEFLOW_TEST_DOTENV", "")
	if err := os.Unsetenv("TYPEFLOW_TEST_DOTENV"); err != nil {
		t.Fatalf("unset: %v", err)
	}
	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("TYPEFLOW_TEST_DOTENV"); got != "loaded" {
		t.Fatalf("expected loaded, got %q", got)
	}
}

func TestValidatePractice(t *testing.T) {
	ok := model.Config{Duration: 90, APIBase: DefaultAPIBase, Theme: ThemeDark}
	if err := ValidatePractice(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := ok
	bad.Duration = 0
	if err := ValidatePractice(bad); err == nil {
		t.Fatalf("expected error for zero duration")
	}
	bad = ok
	bad.Duration = 45
	if err := ValidatePractice(bad); err == nil || !strings.Contains(err.Error(), "60, 90, 120") {
		t.Fatalf("expected duration list error, got %v", err)
	}
	bad = ok
	bad.Theme = "solarized"
	if err := ValidatePractice(bad); err == nil {
		t.Fatalf("expected error for theme")
	}
	bad = ok
	bad.APIBase = " "
	if err := ValidatePractice(bad); err == nil {
		t.Fatalf("expected error for empty api")
	}
}

func TestValidateServer(t *testing.T) {
	if err := ValidateServer(model.ServerConfig{Addr: ":8000", DBPath: "x.db"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateServer(model.ServerConfig{DBPath: "x.db"}); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Setenv("XDG_STATE_HOME", "/state")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "typeflow", "config.toml") {
		t.Fatalf("config path: %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "typeflow", "typeflow.db") {
		t.Fatalf("db path: %s", got)
	}
	if got := DefaultLogPath(); got != filepath.Join("/state", "typeflow", "typeflow.log") {
		t.Fatalf("log path: %s", got)
	}
}
