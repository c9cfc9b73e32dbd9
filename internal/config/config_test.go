package config

import "testing"

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.ArtifactsDir != "export" {
		t.Errorf("ArtifactsDir = %q, want export", cfg.ArtifactsDir)
	}
	if len(cfg.AllowedOrigins) == 0 {
		t.Error("AllowedOrigins should not be empty by default")
	}
}

func TestParseOverrides(t *testing.T) {
	raw := []byte(`
port: "9000"
artifacts_dir: /opt/models
allowed_origins:
  - https://app.example.com
log:
  level: debug
  file: /var/log/emosense.log
`)

	cfg, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Port = %q, want 9000", cfg.Port)
	}
	if cfg.ArtifactsDir != "/opt/models" {
		t.Errorf("ArtifactsDir = %q", cfg.ArtifactsDir)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "https://app.example.com" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.Log.Level != "debug" || cfg.Log.File != "/var/log/emosense.log" {
		t.Errorf("Log = %+v", cfg.Log)
	}
	// Не заданные в файле поля остаются дефолтными
	if cfg.Log.MaxSizeMB != 50 {
		t.Errorf("MaxSizeMB = %d, want default 50", cfg.Log.MaxSizeMB)
	}
}

func TestParseInvalidYAML(t *testing.T) {
	if _, err := Parse([]byte("port: [broken")); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}
