package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"l10nify.io/l10nify/internal/pkg/logger"
)

func init() {
	// Initialize logger for tests
	_ = logger.Init("error", "json")
}

func TestNewPool(t *testing.T) {
	tests := []struct {
		name    string
		cfg     PoolConfig
		wantErr bool
	}{
		{"four workers", PoolConfig{Name: "files", Size: 4}, false},
		{"single worker", PoolConfig{Name: "files", Size: 1}, false},
		{"zero size", PoolConfig{Name: "files", Size: 0}, true},
		{"negative size", PoolConfig{Name: "files", Size: -3}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, err := NewPool(tt.cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer pool.Release(time.Second)
			require.Equal(t, tt.cfg.Size, pool.pool.Cap())
		})
	}
}

func TestPool_Submit(t *testing.T) {
	pool, err := NewPool(PoolConfig{Name: "files", Size: 2})
	require.NoError(t, err)
	defer pool.Release(time.Second)

	var executed atomic.Bool
	var wg sync.WaitGroup
	wg.Add(1)

	err = pool.Submit(func() {
		executed.Store(true)
		wg.Done()
	})
	require.NoError(t, err)

	wg.Wait()
	require.True(t, executed.Load(), "task was not executed")
}

func TestGroup_Go_ClosedPool(t *testing.T) {
	pool, err := NewPool(PoolConfig{Name: "files", Size: 1})
	require.NoError(t, err)
	pool.Release(time.Second)

	group, _ := pool.NewGroup(context.Background())
	err = group.Go(func(ctx context.Context) error {
		t.Error("task should not run on a closed pool")
		return nil
	})
	require.ErrorIs(t, err, ErrPoolClosed)
	require.NoError(t, group.Wait())
}

func TestGroup_Wait_AllSucceed(t *testing.T) {
	pool, err := NewPool(PoolConfig{Name: "files", Size: 3})
	require.NoError(t, err)
	defer pool.Release(time.Second)

	group, _ := pool.NewGroup(context.Background())

	var count atomic.Int32
	for i := 0; i < 20; i++ {
		require.NoError(t, group.Go(func(ctx context.Context) error {
			count.Add(1)
			return nil
		}))
	}

	require.NoError(t, group.Wait())
	require.Equal(t, int32(20), count.Load())
}

func TestGroup_FirstErrorCancels(t *testing.T) {
	pool, err := NewPool(PoolConfig{Name: "files", Size: 1})
	require.NoError(t, err)
	defer pool.Release(time.Second)

	group, gctx := pool.NewGroup(context.Background())
	errBoom := errors.New("boom")

	require.NoError(t, group.Go(func(ctx context.Context) error {
		return errBoom
	}))

	// The single worker is busy or done; either way the group context must
	// be cancelled before anything else gets to run.
	select {
	case <-gctx.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("group context was not cancelled after task failure")
	}

	var ranAfter atomic.Bool
	err = group.Go(func(ctx context.Context) error {
		ranAfter.Store(true)
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)

	require.ErrorIs(t, group.Wait(), errBoom)
	require.False(t, ranAfter.Load())
}

func TestGroup_RecoversPanic(t *testing.T) {
	pool, err := NewPool(PoolConfig{Name: "files", Size: 1})
	require.NoError(t, err)
	defer pool.Release(time.Second)

	group, _ := pool.NewGroup(context.Background())
	require.NoError(t, group.Go(func(ctx context.Context) error {
		panic("bad file")
	}))

	err = group.Wait()
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad file")
}

func TestGroup_ParentCancelled(t *testing.T) {
	pool, err := NewPool(PoolConfig{Name: "files", Size: 2})
	require.NoError(t, err)
	defer pool.Release(time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	group, _ := pool.NewGroup(ctx)
	cancel()

	err = group.Go(func(ctx context.Context) error {
		t.Error("task should not run after parent cancellation")
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.NoError(t, group.Wait())
}
