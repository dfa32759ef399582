package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"recast/internal/config"
)

func TestLoadDefaultsExpandPathsAndReadEnv(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("RECAST_PLEX_TOKEN", "env-token")
	t.Setenv("RECAST_VAAPI_DEVICE", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogDir := filepath.Join(tempHome, ".local", "share", "recast", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	if cfg.Transcode.FFmpegBinary != "ffmpeg" {
		t.Fatalf("unexpected ffmpeg binary: %q", cfg.Transcode.FFmpegBinary)
	}
	if cfg.Transcode.VAAPIDevice != "/dev/dri/renderD128" {
		t.Fatalf("unexpected vaapi device: %q", cfg.Transcode.VAAPIDevice)
	}
	if !cfg.Transcode.PreferHardware {
		t.Fatal("expected hardware preference enabled by default")
	}
	if cfg.Plex.Token != "env-token" {
		t.Fatalf("expected plex token from env, got %q", cfg.Plex.Token)
	}
	if cfg.OCR.TimeoutSeconds != 600 {
		t.Fatalf("unexpected ocr timeout: %d", cfg.OCR.TimeoutSeconds)
	}
	if cfg.Validation.DurationTolerance != 0.01 {
		t.Fatalf("unexpected duration tolerance: %v", cfg.Validation.DurationTolerance)
	}
	if !cfg.History.Enabled {
		t.Fatal("expected history store enabled by default")
	}
}

func TestLoadParsesFileAndOverridesDefaults(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(t.TempDir(), "config.toml")
	contents := `
[transcode]
vaapi_qp = 22
prefer_hardware = false

[ocr]
timeout_seconds = 120

[logging]
format = "json"
level = "debug"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if cfg.Transcode.VAAPIQP != 22 {
		t.Fatalf("unexpected vaapi qp: %d", cfg.Transcode.VAAPIQP)
	}
	if cfg.Transcode.PreferHardware {
		t.Fatal("expected hardware preference disabled")
	}
	if cfg.OCR.TimeoutSeconds != 120 {
		t.Fatalf("unexpected ocr timeout: %d", cfg.OCR.TimeoutSeconds)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"zero duration tolerance", func(c *config.Config) { c.Validation.DurationTolerance = 1.5 }},
		{"crf out of range", func(c *config.Config) { c.Transcode.CRF = 70 }},
		{"bad log format", func(c *config.Config) { c.Logging.Format = "yaml" }},
		{"bad log level", func(c *config.Config) { c.Logging.Level = "trace" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Logging.Format = "console"
			cfg.Logging.Level = "info"
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestSampleConfigIsNotEmpty(t *testing.T) {
	if config.SampleConfig() == "" {
		t.Fatal("expected embedded sample config")
	}
}
