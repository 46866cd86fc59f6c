package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		EnvPort, EnvLogLevel, EnvConfigFile, EnvAuthToken,
		EnvProcessorBaseURL, EnvProcessorToken,
		EnvStorageBaseURL, EnvStorageToken,
		EnvOutputFormat, EnvOffline,
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestNew_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.Port() != DefaultPort {
		t.Errorf("port = %d, want %d", cfg.Port(), DefaultPort)
	}
	if cfg.LogLevel() != DefaultLogLevel {
		t.Errorf("log level = %q, want %q", cfg.LogLevel(), DefaultLogLevel)
	}
	if cfg.OutputFormat() != DefaultOutputFormat {
		t.Errorf("output format = %q, want %q", cfg.OutputFormat(), DefaultOutputFormat)
	}
	if cfg.AuthToken() != "" || cfg.Offline() {
		t.Error("auth and offline should default to off")
	}
}

func TestNew_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvPort, "9999")
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvAuthToken, "tok")
	t.Setenv(EnvProcessorBaseURL, "http://proc:8001")
	t.Setenv(EnvStorageBaseURL, "http://store:8002")
	t.Setenv(EnvOutputFormat, "webm")
	t.Setenv(EnvOffline, "true")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.Port() != 9999 {
		t.Errorf("port = %d, want 9999", cfg.Port())
	}
	if cfg.LogLevel() != "debug" || cfg.AuthToken() != "tok" {
		t.Errorf("log/auth = %q/%q", cfg.LogLevel(), cfg.AuthToken())
	}
	if cfg.ProcessorBaseURL() != "http://proc:8001" || cfg.StorageBaseURL() != "http://store:8002" {
		t.Errorf("service urls = %q/%q", cfg.ProcessorBaseURL(), cfg.StorageBaseURL())
	}
	if cfg.OutputFormat() != "webm" || !cfg.Offline() {
		t.Errorf("format = %q offline = %v", cfg.OutputFormat(), cfg.Offline())
	}
}

func TestNew_InvalidPort(t *testing.T) {
	clearEnv(t)

	t.Setenv(EnvPort, "not-a-port")
	if _, err := New(); err == nil {
		t.Error("non-numeric port should fail")
	}

	t.Setenv(EnvPort, "70000")
	if _, err := New(); err == nil {
		t.Error("out-of-range port should fail")
	}
}

func TestNew_ConfigFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "engine.yaml")
	content := `
port: 8200
log_level: warn
output_format: mov
processor:
  base_url: http://proc.local
  token: ptok
storage:
  base_url: http://store.local
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfigFile, path)

	cfg, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.Port() != 8200 || cfg.LogLevel() != "warn" || cfg.OutputFormat() != "mov" {
		t.Errorf("file values not applied: %d/%q/%q", cfg.Port(), cfg.LogLevel(), cfg.OutputFormat())
	}
	if cfg.ProcessorBaseURL() != "http://proc.local" || cfg.ProcessorToken() != "ptok" {
		t.Errorf("processor = %q/%q", cfg.ProcessorBaseURL(), cfg.ProcessorToken())
	}
	if cfg.StorageBaseURL() != "http://store.local" {
		t.Errorf("storage = %q", cfg.StorageBaseURL())
	}
}

func TestNew_EnvBeatsFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "engine.yaml")
	if err := os.WriteFile(path, []byte("port: 8200\nlog_level: warn\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfigFile, path)
	t.Setenv(EnvPort, "8300")

	cfg, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if cfg.Port() != 8300 {
		t.Errorf("port = %d, want env override 8300", cfg.Port())
	}
	if cfg.LogLevel() != "warn" {
		t.Errorf("log level = %q, want file value warn", cfg.LogLevel())
	}
}

func TestNew_MissingConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfigFile, "/nonexistent/engine.yaml")
	if _, err := New(); err == nil {
		t.Error("missing config file should fail")
	}
}

func TestNew_BadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "engine.yaml")
	if err := os.WriteFile(path, []byte("port: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfigFile, path)
	if _, err := New(); err == nil {
		t.Error("malformed YAML should fail")
	}
}
