// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"errors"
	"os"
	"strings"

	"github.com/alnah/go-mvpbuild/internal/config"
	"github.com/alnah/go-mvpbuild/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing the preview timeout.
func ForTimeout() string {
	return format("for heavy pages, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// It suggests --config and, when one was searched, the user config path.
func ForConfigNotFound(err error) string {
	hint := "use --config /path/to/file.yaml"

	var nf *config.NotFoundError
	if errors.As(err, &nf) {
		for _, p := range nf.Tried {
			if strings.Contains(p, "mvpbuild"+string(os.PathSeparator)) {
				hint += " or create " + p
				break
			}
		}
	}

	return format(hint)
}

// ForRedis returns hints for an unreachable page store.
func ForRedis(addr string) string {
	if addr == "" {
		return format("set " + config.EnvRedisAddr + " or store.redis.addr")
	}
	return format("check redis is running at " + addr + ", or set store.driver: memory")
}

// ForOutputDirectory returns hints for output file creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForPageInvalid restates the CTA rules a page must meet.
func ForPageInvalid() string {
	return format("add a <button> carrying the ctaButtonId, and use that id on <button> elements only")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
