package main

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-mvpbuild/internal/config"
	"github.com/alnah/go-mvpbuild/internal/store"
)

func fakeDoctorDeps(chromePath string, storeErr error) doctorDeps {
	return doctorDeps{
		lookPath: func() (string, bool) { return chromePath, chromePath != "" },
		version:  func(string) (string, error) { return "Chromium 131.0", nil },
		openStore: func(ctx context.Context, cfg config.StoreConfig) (store.Store, error) {
			if storeErr != nil {
				return nil, storeErr
			}
			return store.New(ctx, cfg)
		},
	}
}

// fakeChrome creates an empty file standing in for a browser binary.
func fakeChrome(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chromium")
	writeFile(t, path, "")
	return path
}

// ---------------------------------------------------------------------------
// TestRunDoctor - Diagnostic checks and status
// ---------------------------------------------------------------------------

func TestRunDoctor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		chrome     bool
		storeErr   error
		vars       map[string]string
		wantCode   int
		wantStatus string
	}{
		{
			name:       "all good",
			chrome:     true,
			vars:       map[string]string{"ROD_NO_SANDBOX": "1"},
			wantCode:   ExitSuccess,
			wantStatus: statusReady,
		},
		{
			name:       "no chrome only warns",
			wantCode:   ExitSuccess,
			wantStatus: statusWarnings,
		},
		{
			name:       "store down is an error",
			chrome:     true,
			vars:       map[string]string{"ROD_NO_SANDBOX": "1"},
			storeErr:   errors.New("connection refused"),
			wantCode:   ExitGeneral,
			wantStatus: statusErrors,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(t, tt.vars)
			chrome := ""
			if tt.chrome {
				chrome = fakeChrome(t)
			}

			code := runDoctorWith(context.Background(), []string{"--json"}, env.Environment, fakeDoctorDeps(chrome, tt.storeErr))
			if code != tt.wantCode {
				t.Errorf("code = %d, want %d\nstdout: %s", code, tt.wantCode, env.stdout)
			}

			var result doctorResult
			if err := json.Unmarshal(env.stdout.Bytes(), &result); err != nil {
				t.Fatalf("invalid JSON output: %v", err)
			}
			if result.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q (warnings %v, errors %v)", result.Status, tt.wantStatus, result.Warnings, result.Errors)
			}
			if result.Store.Driver != config.DriverMemory {
				t.Errorf("store driver = %q, want memory", result.Store.Driver)
			}
			if result.CheckedAt.IsZero() {
				t.Error("checked_at should be set")
			}
		})
	}
}

func TestRunDoctor_HumanOutput(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, map[string]string{"ROD_NO_SANDBOX": "1"})

	code := runDoctorWith(context.Background(), nil, env.Environment, fakeDoctorDeps(fakeChrome(t), nil))
	if code != ExitSuccess {
		t.Fatalf("code = %d, want %d", code, ExitSuccess)
	}

	out := env.stdout.String()
	for _, want := range []string{"mvpbuild doctor", "Chromium 131.0", "Sandbox: disabled", "Page store", "[OK] memory", "Status: Ready"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got:\n%s", want, out)
		}
	}
}

func TestRunDoctor_ContainerWithoutSandboxFlag(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, map[string]string{"CI": "true"})

	runDoctorWith(context.Background(), []string{"--json"}, env.Environment, fakeDoctorDeps(fakeChrome(t), nil))

	var result doctorResult
	if err := json.Unmarshal(env.stdout.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if !result.Env.CI {
		t.Error("CI should be detected")
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "ROD_NO_SANDBOX") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected ROD_NO_SANDBOX warning, got %v", result.Warnings)
	}
}

func TestRunDoctor_BadFlag(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, nil)

	code := runDoctorWith(context.Background(), []string{"--yaml"}, env.Environment, fakeDoctorDeps("", nil))
	if code != ExitUsage {
		t.Errorf("code = %d, want %d", code, ExitUsage)
	}
}

func TestCheckChrome_BrowserBinMissing(t *testing.T) {
	t.Parallel()

	result := &doctorResult{Env: envInfo{BrowserBin: filepath.Join(os.TempDir(), "no-such-chrome-binary")}}
	checkChrome(result, fakeDoctorDeps("", nil))

	if result.Chrome.Found {
		t.Error("chrome should not be found")
	}
	if len(result.Warnings) != 1 {
		t.Errorf("expected one warning, got %v", result.Warnings)
	}
}
