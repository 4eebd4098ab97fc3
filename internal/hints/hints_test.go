package hints

// ForBrowserConnect tests cannot run in parallel: they use t.Setenv and
// replace the package-level IsInContainer.

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-mvpbuild/internal/config"
)

func withContainer(t *testing.T, in bool) {
	t.Helper()
	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return in }
}

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name       string
		container  bool
		ci         string
		noSandbox  string
		browserBin string
		want       []string
		notWant    []string
	}{
		{
			name:    "in CI",
			ci:      "true",
			want:    []string{"hint:", "ROD_NO_SANDBOX", "ROD_BROWSER_BIN"},
			notWant: nil,
		},
		{
			name:      "in Docker",
			container: true,
			want:      []string{"ROD_NO_SANDBOX"},
		},
		{
			name:      "sandbox already disabled",
			ci:        "true",
			noSandbox: "1",
			want:      []string{"ROD_BROWSER_BIN"},
			notWant:   []string{"ROD_NO_SANDBOX"},
		},
		{
			name:       "browser bin already set",
			browserBin: "/usr/bin/chrome",
			notWant:    []string{"ROD_BROWSER_BIN", "ROD_NO_SANDBOX"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withContainer(t, tt.container)
			t.Setenv("CI", tt.ci)
			t.Setenv("GITHUB_ACTIONS", "")
			t.Setenv("GITLAB_CI", "")
			t.Setenv("JENKINS_URL", "")
			t.Setenv("ROD_NO_SANDBOX", tt.noSandbox)
			t.Setenv("ROD_BROWSER_BIN", tt.browserBin)

			hint := ForBrowserConnect()

			for _, s := range tt.want {
				if !strings.Contains(hint, s) {
					t.Errorf("expected %q in hint, got %q", s, hint)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(hint, s) {
					t.Errorf("unexpected %q in hint %q", s, hint)
				}
			}
		})
	}
}

func TestForBrowserConnect_AllConfigured(t *testing.T) {
	withContainer(t, true)
	t.Setenv("CI", "true")
	t.Setenv("ROD_NO_SANDBOX", "1")
	t.Setenv("ROD_BROWSER_BIN", "/usr/bin/chrome")

	if hint := ForBrowserConnect(); hint != "" {
		t.Errorf("expected empty hint when all configured, got %q", hint)
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	userPath := filepath.Join("home", ".config", "mvpbuild", "site.yaml")

	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{
			name:     "plain sentinel",
			err:      config.ErrConfigNotFound,
			contains: "--config",
		},
		{
			name:     "searched paths",
			err:      &config.NotFoundError{Tried: []string{"site.yaml", userPath}},
			contains: "create " + userPath,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForConfigNotFound(tt.err)
			if !strings.Contains(hint, tt.contains) {
				t.Errorf("expected hint to contain %q, got %q", tt.contains, hint)
			}
		})
	}
}

func TestForRedis(t *testing.T) {
	t.Parallel()

	if hint := ForRedis(""); !strings.Contains(hint, config.EnvRedisAddr) {
		t.Errorf("expected %s mention, got %q", config.EnvRedisAddr, hint)
	}
	if hint := ForRedis("cache:6379"); !strings.Contains(hint, "cache:6379") {
		t.Errorf("expected address mention, got %q", hint)
	}
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	hints := []string{
		ForTimeout(),
		ForOutputDirectory(),
		ForPageInvalid(),
		ForRedis("localhost:6379"),
		ForConfigNotFound(nil),
	}

	for _, h := range hints {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint format inconsistent: %q", h)
		}
	}
}

func TestFormatHints_Empty(t *testing.T) {
	t.Parallel()

	if got := formatHints(nil); got != "" {
		t.Errorf("formatHints(nil) = %q, want empty", got)
	}
}

func TestForPageInvalid(t *testing.T) {
	t.Parallel()

	hint := ForPageInvalid()
	for _, want := range []string{"<button>", "ctaButtonId"} {
		if !strings.Contains(hint, want) {
			t.Errorf("expected %q in hint, got %q", want, hint)
		}
	}
	for _, wrong := range []string{"unique", "<head>"} {
		if strings.Contains(hint, wrong) {
			t.Errorf("hint should not mention %q, got %q", wrong, hint)
		}
	}
}
