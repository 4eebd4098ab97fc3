package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/alnah/go-mvpbuild/internal/config"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now       func() time.Time
	Stdout    io.Writer
	Stderr    io.Writer
	LookupEnv func(string) (string, bool)
	Environ   func() []string
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:       time.Now,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		LookupEnv: os.LookupEnv,
		Environ:   os.Environ,
	}
}

// envConfigPath names the config file when --config is not given.
const envConfigPath = "MVPBUILD_CONFIG"

// defaultConfigName is searched for when neither --config nor
// MVPBUILD_CONFIG is set. A missing default config is not an error.
const defaultConfigName = "mvpbuild"

// knownEnvVars lists valid MVPBUILD_* environment variables.
var knownEnvVars = map[string]bool{
	envConfigPath:          true,
	config.EnvTargetOrigin: true,
	config.EnvRedisAddr:    true,
	config.EnvAddr:         true,
	config.EnvLogLevel:     true,
	// used by the store integration tests
	"MVPBUILD_TEST_REDIS_ADDR": true,
}

// warnUnknownEnvVars flags MVPBUILD_* variables that nothing reads.
func warnUnknownEnvVars(env *Environment) {
	var unknown []string
	for _, kv := range env.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, "MVPBUILD_") && !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(env.Stderr, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// loadConfig resolves configuration with precedence
// flags > environment > config file > defaults. Flags are applied by callers.
func loadConfig(flagPath string, env *Environment) (*config.Config, error) {
	path := flagPath
	if path == "" {
		path, _ = env.LookupEnv(envConfigPath)
	}

	var cfg *config.Config
	switch {
	case path != "":
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	default:
		loaded, err := config.LoadConfig(defaultConfigName)
		if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
			return nil, err
		}
		if loaded == nil {
			loaded = config.DefaultConfig()
		}
		cfg = loaded
	}

	warnUnknownEnvVars(env)
	cfg.ApplyEnv(env.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
