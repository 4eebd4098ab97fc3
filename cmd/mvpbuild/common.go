package main

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	mvpbuild "github.com/alnah/go-mvpbuild"
	"github.com/alnah/go-mvpbuild/internal/config"
	"github.com/alnah/go-mvpbuild/internal/hints"
	"github.com/alnah/go-mvpbuild/internal/logging"
	"github.com/alnah/go-mvpbuild/internal/yamlutil"
)

// hintFor picks the hint matching err, or "" when none applies.
func hintFor(err error) string {
	switch {
	case errors.Is(err, mvpbuild.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, mvpbuild.ErrPageLoad), errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(err)
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, ErrPageInvalid):
		return hints.ForPageInvalid()
	}
	return ""
}

// resolveConfig loads config and applies builder flag overrides.
func resolveConfig(common commonFlags, bf *builderFlags, env *Environment) (*config.Config, error) {
	cfg, err := loadConfig(common.config, env)
	if err != nil {
		return nil, err
	}

	if common.verbose {
		cfg.Logging.Level = "debug"
	}
	if common.quiet {
		cfg.Logging.Level = "error"
	}

	if bf != nil {
		if bf.targetOrigin != "" {
			cfg.Builder.TargetOrigin = bf.targetOrigin
		}
		if bf.stylesheet != "" {
			cfg.Builder.StylesheetURL = bf.stylesheet
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// newLogger builds the CLI logger writing to stderr.
func newLogger(cfg *config.Config, env *Environment) (*zap.Logger, func(), error) {
	logger, closeFn, err := logging.New(cfg.Logging, env.Stderr)
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = closeFn() }, nil
}

// newBuilder creates a Builder from config.
func newBuilder(cfg config.BuilderConfig, logger *zap.Logger) (*mvpbuild.Builder, error) {
	return mvpbuild.NewBuilder(
		mvpbuild.WithLogger(logger),
		mvpbuild.WithTargetOrigin(cfg.TargetOrigin),
		mvpbuild.WithStylesheetURL(cfg.StylesheetURL),
		mvpbuild.WithAcknowledgement(cfg.Acknowledgement),
		mvpbuild.WithHighlightStyle(cfg.HighlightStyle),
	)
}

// specFile returns the page spec path from -f or the single positional arg.
func specFile(f specFlags, positional []string) (string, error) {
	switch {
	case f.file != "" && len(positional) > 0:
		return "", usageError("unexpected argument: %s", positional[0])
	case f.file != "":
		return f.file, nil
	case len(positional) == 1:
		return positional[0], nil
	case len(positional) > 1:
		return "", usageError("expected one page spec, got %d", len(positional))
	}
	return "", usageError("missing page spec: use -f <page.yaml>")
}

// readSpec decodes a YAML or JSON page spec.
func readSpec(path, format string) (*mvpbuild.PageSpec, error) {
	var spec mvpbuild.PageSpec
	if err := yamlutil.DecodeFile(path, &spec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadSpec, err)
	}
	if format != "" {
		spec.Format = format
	}
	return &spec, nil
}

// buildPage runs the pipeline and turns a rejected page into an error.
func buildPage(ctx context.Context, b *mvpbuild.Builder, spec *mvpbuild.PageSpec) (string, error) {
	result := b.Build(ctx, *spec)
	if !result.IsValid {
		return "", &pageInvalidError{message: result.ErrorMessage}
	}
	return result.HTML, nil
}
