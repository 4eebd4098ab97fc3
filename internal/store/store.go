// Package store keeps built landing pages keyed by idea id.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-mvpbuild/internal/config"
)

// Sentinel errors for store operations.
var (
	ErrNotFound      = errors.New("page not found")
	ErrEmptyIdeaID   = errors.New("idea id cannot be empty")
	ErrUnknownDriver = errors.New("unknown store driver")
)

// Store persists the latest valid page for each idea.
type Store interface {
	Put(ctx context.Context, ideaID, html string) error
	Get(ctx context.Context, ideaID string) (string, error) // ErrNotFound when absent
	Delete(ctx context.Context, ideaID string) error        // absent ids are not an error
	Ping(ctx context.Context) error
	Close() error
}

// New selects a Store by cfg.Driver. The redis driver pings the server
// before returning.
func New(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", config.DriverMemory:
		return NewMemoryStore(), nil
	case config.DriverRedis:
		s := NewRedisStore(cfg.Redis)
		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}
