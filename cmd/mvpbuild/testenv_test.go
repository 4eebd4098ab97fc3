package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// testEnv is an Environment backed by buffers and a fixed variable set.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestEnv returns an environment whose config is a temp file with
// quiet logging, so tests never pick up a developer's mvpbuild.yaml.
func newTestEnv(t *testing.T, vars map[string]string) *testEnv {
	t.Helper()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "mvpbuild.yaml")
	writeFile(t, cfgPath, "logging:\n  level: error\n")

	all := map[string]string{envConfigPath: cfgPath}
	for k, v := range vars {
		all[k] = v
	}

	var stdout, stderr bytes.Buffer
	return &testEnv{
		Environment: &Environment{
			Now:    func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
			Stdout: &stdout,
			Stderr: &stderr,
			LookupEnv: func(key string) (string, bool) {
				v, ok := all[key]
				return v, ok
			},
			Environ: func() []string {
				out := make([]string, 0, len(all))
				for k, v := range all {
					out = append(out, k+"="+v)
				}
				return out
			},
		},
		stdout: &stdout,
		stderr: &stderr,
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// writeSpec writes a page spec and returns its path.
func writeSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "page.yaml")
	writeFile(t, path, content)
	return path
}

const validSpecYAML = `ideaId: idea-7
ctaButtonId: join
metaTitle: Smart Kettle
metaDescription: Boil water from your phone
bodyContent: |
  <main>
    <h1 onclick="steal()">Smart Kettle</h1>
    <button id="join">Join the waitlist</button>
  </main>
`

const markdownSpecYAML = `ideaId: idea-8
ctaButtonId: signup
format: markdown
bodyContent: |
  # Ship faster

  <button id="signup">Sign up</button>
`

const missingCTASpecYAML = `ideaId: idea-9
ctaButtonId: join
bodyContent: <p>No button here</p>
`
