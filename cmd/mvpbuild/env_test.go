package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-mvpbuild/internal/config"
)

func TestDefaultEnv(t *testing.T) {
	t.Parallel()

	env := DefaultEnv()
	if env.Stdout != os.Stdout {
		t.Error("Stdout should be os.Stdout")
	}
	if env.Stderr != os.Stderr {
		t.Error("Stderr should be os.Stderr")
	}
	if env.Now == nil || env.LookupEnv == nil || env.Environ == nil {
		t.Error("all functions should be set")
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnknownEnvVars - Typo detection for MVPBUILD_* variables
// ---------------------------------------------------------------------------

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, map[string]string{
		"MVPBUILD_REDIS_ADR":     "x",
		config.EnvTargetOrigin:   "https://app.example.com",
		"MVPBUILD_LOGLEVEL":      "debug",
		"UNRELATED_MVPBUILD_VAR": "y",
	})

	warnUnknownEnvVars(env.Environment)

	out := env.stderr.String()
	for _, want := range []string{"MVPBUILD_LOGLEVEL", "MVPBUILD_REDIS_ADR"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected warning for %s, got %q", want, out)
		}
	}
	if strings.Contains(out, config.EnvTargetOrigin) || strings.Contains(out, "UNRELATED") {
		t.Errorf("unexpected warning in %q", out)
	}
	if strings.Index(out, "MVPBUILD_LOGLEVEL") > strings.Index(out, "MVPBUILD_REDIS_ADR") {
		t.Error("warnings should be sorted")
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - Precedence of config file and environment
// ---------------------------------------------------------------------------

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, map[string]string{
		config.EnvTargetOrigin: "https://app.example.com",
		config.EnvAddr:         ":9090",
	})

	cfg, err := loadConfig("", env.Environment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Builder.TargetOrigin != "https://app.example.com" {
		t.Errorf("TargetOrigin = %q, want env value", cfg.Builder.TargetOrigin)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Server.Addr)
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("Level = %q, want value from file", cfg.Logging.Level)
	}
}

func TestLoadConfig_FlagPathWins(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)
	path := filepath.Join(t.TempDir(), "other.yaml")
	writeFile(t, path, "server:\n  addr: \":7070\"\n")

	cfg, err := loadConfig(path, env.Environment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("Addr = %q, want :7070", cfg.Server.Addr)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Level = %q, want default since MVPBUILD_CONFIG is ignored", cfg.Logging.Level)
	}
}

func TestLoadConfig_InvalidEnvValue(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, map[string]string{config.EnvTargetOrigin: "not a url"})

	if _, err := loadConfig("", env.Environment); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadConfig_ExplicitMissing(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, map[string]string{envConfigPath: filepath.Join(t.TempDir(), "absent.yaml")})

	if _, err := loadConfig("", env.Environment); err == nil {
		t.Fatal("expected error for a missing explicit config")
	}
}
