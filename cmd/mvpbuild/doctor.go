package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/launcher"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mvpbuild/internal/config"
	"github.com/alnah/go-mvpbuild/internal/store"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// storePingTimeout bounds the store reachability check.
const storePingTimeout = 3 * time.Second

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string     `json:"status"`
	CheckedAt time.Time  `json:"checked_at"`
	Chrome    chromeInfo `json:"chrome"`
	Env       envInfo    `json:"environment"`
	System    systemInfo `json:"system"`
	Store     storeInfo  `json:"store"`
	Warnings  []string   `json:"warnings,omitempty"`
	Errors    []string   `json:"errors,omitempty"`
}

type chromeInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
	Sandbox bool   `json:"sandbox"`
}

type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
}

type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// storeInfo reports whether the configured page store answers.
type storeInfo struct {
	Driver    string `json:"driver"`
	Addr      string `json:"addr,omitempty"`
	Reachable bool   `json:"reachable"`
}

// doctorDeps are the probes doctor runs, swappable in tests.
type doctorDeps struct {
	lookPath  func() (string, bool)
	version   func(path string) (string, error)
	openStore func(ctx context.Context, cfg config.StoreConfig) (store.Store, error)
}

func defaultDoctorDeps() doctorDeps {
	return doctorDeps{
		lookPath: launcher.LookPath,
		version: func(path string) (string, error) {
			out, err := exec.Command(path, "--version").Output() // #nosec G204 -- path comes from launcher lookup or ROD_BROWSER_BIN
			return strings.TrimSpace(string(out)), err
		},
		openStore: store.New,
	}
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	return runDoctorWith(ctx, args, env, defaultDoctorDeps())
}

func runDoctorWith(ctx context.Context, args []string, env *Environment, deps doctorDeps) int {
	f, positional, err := parseDoctorFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		printError(env, err)
		return exitCodeFor(err)
	}
	if len(positional) > 0 {
		printError(env, usageError("unexpected argument: %s", positional[0]))
		return ExitUsage
	}

	cfg, err := loadConfig(f.common.config, env)
	if err != nil {
		printError(env, err)
		return exitCodeFor(err)
	}

	result := runDoctor(ctx, env, cfg, deps)

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(ctx context.Context, env *Environment, cfg *config.Config, deps doctorDeps) *doctorResult {
	getenv := func(key string) string {
		v, _ := env.LookupEnv(key)
		return v
	}

	result := &doctorResult{
		Status:    statusReady,
		CheckedAt: env.Now().UTC(),
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  getenv("ROD_NO_SANDBOX"),
			BrowserBin: getenv("ROD_BROWSER_BIN"),
		},
	}

	checkChrome(result, deps)
	checkEnvironment(result, getenv)
	checkSystem(result)
	checkStore(ctx, result, cfg.Store, deps)

	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}
	return result
}

// checkChrome locates Chrome/Chromium. A missing browser only disables
// preview, so it is a warning.
func checkChrome(result *doctorResult, deps doctorDeps) {
	chromePath := result.Env.BrowserBin
	if chromePath == "" {
		var found bool
		chromePath, found = deps.lookPath()
		if !found {
			result.Warnings = append(result.Warnings,
				"Chrome/Chromium not found; preview is unavailable. Install Chrome or set ROD_BROWSER_BIN")
			return
		}
	}

	if _, err := os.Stat(chromePath); err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Chrome not found at %s; preview is unavailable", chromePath))
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath

	if v, err := deps.version(chromePath); err == nil {
		result.Chrome.Version = v
	} else {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get Chrome version: %v", err))
	}

	result.Chrome.Sandbox = result.Env.NoSandbox != "1"
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, getenv func(string) string) {
	result.Env.Container, result.Env.ContainerHint = isContainer(getenv)

	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}

	if (result.Env.Container || result.Env.CI) && result.Chrome.Found && result.Env.NoSandbox != "1" {
		result.Warnings = append(result.Warnings,
			"Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// isContainer returns whether a container was detected and which signal matched.
func isContainer(getenv func(string) string) (bool, string) {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := getenv("container"); v != "" {
		return true, "container=" + v
	}
	if getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory used for previews is writable.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "mvpbuild-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
		return
	}
	_ = os.Remove(testFile)
	result.System.TempWritable = true
}

// checkStore opens the configured store and pings it.
func checkStore(ctx context.Context, result *doctorResult, cfg config.StoreConfig, deps doctorDeps) {
	result.Store.Driver = cfg.Driver
	if cfg.Driver == config.DriverRedis {
		result.Store.Addr = cfg.Redis.Addr
	}

	ctx, cancel := context.WithTimeout(ctx, storePingTimeout)
	defer cancel()

	st, err := deps.openStore(ctx, cfg)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Page store unreachable: %v", err))
		return
	}
	defer func() { _ = st.Close() }()

	if err := st.Ping(ctx); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Page store unreachable: %v", err))
		return
	}
	result.Store.Reachable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "mvpbuild doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Chrome/Chromium (preview)")
	if r.Chrome.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Chrome.Path)
		if r.Chrome.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Chrome.Version)
		}
		if r.Chrome.Sandbox {
			fmt.Fprintln(w, "  [OK] Sandbox: enabled")
		} else {
			fmt.Fprintln(w, "  [OK] Sandbox: disabled (ROD_NO_SANDBOX=1)")
		}
	} else {
		fmt.Fprintln(w, "  [WARN] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Page store")
	target := r.Store.Driver
	if r.Store.Addr != "" {
		target += " at " + r.Store.Addr
	}
	if r.Store.Reachable {
		fmt.Fprintf(w, "  [OK] %s\n", target)
	} else {
		fmt.Fprintf(w, "  [ERROR] %s unreachable\n", target)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, e := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", e)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
