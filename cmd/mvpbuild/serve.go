package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/alnah/go-mvpbuild/internal/config"
	"github.com/alnah/go-mvpbuild/internal/hints"
	"github.com/alnah/go-mvpbuild/internal/server"
	"github.com/alnah/go-mvpbuild/internal/store"
)

// runServe runs the HTTP API until the context is canceled by a signal.
func runServe(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return usageError("unexpected argument: %s", positional[0])
	}

	cfg, err := resolveConfig(f.common, nil, env)
	if err != nil {
		return err
	}
	if f.addr != "" {
		cfg.Server.Addr = f.addr
	}

	logger, closeLog, err := newLogger(cfg, env)
	if err != nil {
		return err
	}
	defer closeLog()
	defer func() { _ = logger.Sync() }()

	builder, err := newBuilder(cfg.Builder, logger)
	if err != nil {
		return err
	}

	st, err := store.New(ctx, cfg.Store)
	if err != nil {
		return withStoreHint(err, cfg.Store)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn("closing store", zap.Error(cerr))
		}
	}()

	logger.Info("starting server",
		zap.String("version", Version),
		zap.String("addr", cfg.Server.Addr),
		zap.String("store", cfg.Store.Driver),
		zap.String("target_origin", cfg.Builder.TargetOrigin))

	if err := server.New(builder, st, logger, cfg.Server).Run(ctx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// withStoreHint appends the redis hint to store connection errors.
func withStoreHint(err error, cfg config.StoreConfig) error {
	if cfg.Driver != config.DriverRedis {
		return err
	}
	return fmt.Errorf("%w%s", err, hints.ForRedis(cfg.Redis.Addr))
}
