package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/alnah/go-mvpbuild/internal/fileutil"
)

// runBuild builds one page spec into a validated HTML document.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	path, err := specFile(f.spec, positional)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(f.common, &f.builder, env)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg, env)
	if err != nil {
		return err
	}
	defer closeLog()

	spec, err := readSpec(path, f.spec.format)
	if err != nil {
		return err
	}

	builder, err := newBuilder(cfg.Builder, logger)
	if err != nil {
		return err
	}

	html, err := buildPage(ctx, builder, spec)
	if err != nil {
		return err
	}

	if f.spec.output == "" {
		_, err := io.WriteString(env.Stdout, html)
		return err
	}

	if err := fileutil.WriteFileAtomic(f.spec.output, []byte(html), 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	logger.Info("page written",
		zap.String("idea_id", spec.IdeaID),
		zap.String("path", f.spec.output),
		zap.Int("bytes", len(html)))
	return nil
}
