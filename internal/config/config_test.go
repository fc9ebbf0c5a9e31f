package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
	if cfg.Database.Driver != nil || cfg.LLM.Model != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, "[database\ndriver = ")
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestLoadPrecedence(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	writeFile(t, path, `
[database]
driver = "mysql"
dsn = "user:pass@tcp(db:3306)/typing"

[llm]
provider = "gemini"
model = "gemini-2.5-flash"

[server]
port = 9000
cors-origins = ["https://school.example"]

[logging]
level = "debug"
`)
	t.Setenv("DRILLREPORT_LLM_MODEL", "gemini-2.5-pro")
	t.Setenv("DRILLREPORT_HTTP_PORT", "9100")
	t.Setenv("GOOGLE_API_KEY", "secret")

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings.Database.Driver != "mysql" || settings.Database.DSN != "user:pass@tcp(db:3306)/typing" {
		t.Fatalf("expected database from file, got %+v", settings.Database)
	}
	if settings.LLM.Provider != "gemini" || settings.LLM.Model != "gemini-2.5-pro" {
		t.Fatalf("expected env to override file model, got %+v", settings.LLM)
	}
	if settings.LLM.APIKey != "secret" {
		t.Fatalf("expected api key from env")
	}
	if settings.Server.Port != 9100 || settings.Server.Addr() != "127.0.0.1:9100" {
		t.Fatalf("expected env port, got %s", settings.Server.Addr())
	}
	if !reflect.DeepEqual(settings.Server.CORSOrigins, []string{"https://school.example"}) {
		t.Fatalf("unexpected cors origins %v", settings.Server.CORSOrigins)
	}
	if settings.Logging.Level != "debug" || settings.Logging.MaxBackups != 5 {
		t.Fatalf("expected file level with default backups, got %+v", settings.Logging)
	}
	if err := settings.Validate(); err != nil {
		t.Fatalf("expected valid settings, got %v", err)
	}
}

func TestProviderWithoutModelKeepsModelEmpty(t *testing.T) {
	t.Setenv("DRILLREPORT_LLM_PROVIDER", "gemini")
	t.Setenv("DRILLREPORT_LLM_MODEL", "")

	settings, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings.LLM.Provider != ProviderGemini || settings.LLM.Model != "" {
		t.Fatalf("expected gemini with provider default model, got %+v", settings.LLM)
	}
}

func TestValidate(t *testing.T) {
	settings := Defaults()
	if err := settings.Validate(); err != nil {
		t.Fatalf("expected defaults to be valid, got %v", err)
	}

	bad := Defaults()
	bad.Database.Driver = "oracle"
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected invalid driver error")
	}

	noModel := Defaults()
	noModel.LLM.Provider = ProviderGemini
	if err := noModel.Validate(); err != nil {
		t.Fatalf("expected provider without model to be valid, got %v", err)
	}
}

func TestLoadDotenvIfPresent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	writeFile(t, path, "DRILLREPORT_TEST_DOTENV=loaded\n")
	t.Setenv("DRILLREPORT_TEST_DOTENV", "")
	if err := os.Unsetenv("DRILLREPORT_TEST_DOTENV"); err != nil {
		t.Fatalf("unsetenv: %v", err)
	}
	if err := LoadDotenvIfPresent(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("load dotenv: %v", err)
	}
	if got := os.Getenv("DRILLREPORT_TEST_DOTENV"); got != "loaded" {
		t.Fatalf("expected dotenv value, got %q", got)
	}
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "drillreport", "config.toml") {
		t.Fatalf("unexpected config path %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/tmp/data", "drillreport", "drills.db") {
		t.Fatalf("unexpected db path %s", got)
	}
}
