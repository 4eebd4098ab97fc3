package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/go-mvpbuild/internal/config"
)

// storeContract runs the behavior every Store must share.
func storeContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, "idea-1", "<html>v1</html>"))
	got, err := s.Get(ctx, "idea-1")
	require.NoError(t, err)
	assert.Equal(t, "<html>v1</html>", got)

	require.NoError(t, s.Put(ctx, "idea-1", "<html>v2</html>"))
	got, err = s.Get(ctx, "idea-1")
	require.NoError(t, err)
	assert.Equal(t, "<html>v2</html>", got, "put replaces")

	require.NoError(t, s.Delete(ctx, "idea-1"))
	_, err = s.Get(ctx, "idea-1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, s.Delete(ctx, "idea-1"), "deleting twice is fine")

	assert.ErrorIs(t, s.Put(ctx, "", "x"), ErrEmptyIdeaID)
	assert.NoError(t, s.Ping(ctx))
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	storeContract(t, NewMemoryStore())
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewMemoryStore()
	assert.ErrorIs(t, s.Put(ctx, "a", "b"), context.Canceled)
	_, err := s.Get(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Ping(ctx), context.Canceled)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("idea-%d", i%5)
			_ = s.Put(ctx, id, "page")
			_, _ = s.Get(ctx, id)
			if i%7 == 0 {
				_ = s.Delete(ctx, id)
			}
		}(i)
	}
	wg.Wait()
}

func TestNew(t *testing.T) {
	t.Parallel()

	s, err := New(context.Background(), config.StoreConfig{Driver: ""})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = New(context.Background(), config.StoreConfig{Driver: "MEMORY"})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	_, err = New(context.Background(), config.StoreConfig{Driver: "etcd"})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestNew_RedisUnreachable(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(ctx, config.StoreConfig{
		Driver: config.DriverRedis,
		Redis:  config.RedisConfig{Addr: "127.0.0.1:1"},
	})
	assert.ErrorIs(t, err, ErrRedis)
}

func TestRedisStore_Key(t *testing.T) {
	t.Parallel()

	s := NewRedisStore(config.RedisConfig{Addr: "127.0.0.1:1", KeyPrefix: "mvpbuild:"})
	t.Cleanup(func() { _ = s.Close() })
	assert.Equal(t, "mvpbuild:page:idea-9", s.key("idea-9"))
}
