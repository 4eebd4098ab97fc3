package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	mvpbuild "github.com/alnah/go-mvpbuild"
	"github.com/alnah/go-mvpbuild/internal/fileutil"
)

// runPreview builds a page and saves a PNG capture of it.
func runPreview(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parsePreviewFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	path, err := specFile(f.spec, positional)
	if err != nil {
		return err
	}
	if f.spec.output == "" {
		return usageError("missing output: use -o <thumb.png>")
	}
	if f.timeout < 0 {
		return usageError("invalid timeout: %s", f.timeout)
	}

	cfg, err := resolveConfig(f.common, &f.builder, env)
	if err != nil {
		return err
	}

	vp := &mvpbuild.Viewport{Width: cfg.Preview.Width, Height: cfg.Preview.Height}
	if f.width != 0 {
		vp.Width = f.width
	}
	if f.height != 0 {
		vp.Height = f.height
	}
	if err := vp.Validate(); err != nil {
		return err
	}

	timeout := cfg.Preview.Timeout
	if f.timeout > 0 {
		timeout = f.timeout
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

	previewer := mvpbuild.NewPreviewer(timeout)
	defer func() {
		if cerr := previewer.Close(); cerr != nil {
			logger.Warn("closing browser", zap.Error(cerr))
		}
	}()

	png, err := previewer.Screenshot(ctx, html, vp)
	if err != nil {
		return err
	}

	if err := fileutil.WriteFileAtomic(f.spec.output, png, 0o644); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	logger.Info("preview written",
		zap.String("idea_id", spec.IdeaID),
		zap.String("path", f.spec.output),
		zap.Int("width", vp.Width),
		zap.Int("height", vp.Height))
	return nil
}
