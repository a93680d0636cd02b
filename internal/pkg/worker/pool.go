// Package worker provides goroutine pool management.
//
// Naked goroutines are not used for file processing. All concurrency goes
// through a Pool with context propagation, and batch work goes through a
// Group so the first failure cancels whatever has not started yet.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"l10nify.io/l10nify/internal/pkg/logger"
)

// ErrPoolClosed is returned when submitting to a closed pool.
var ErrPoolClosed = errors.New("worker pool is closed")

// Pool wraps a blocking ants.Pool.
type Pool struct {
	pool *ants.Pool
	name string
}

// PoolConfig contains Worker Pool configuration.
type PoolConfig struct {
	Name string
	Size int
}

// NewPool creates a blocking pool. Submit waits for a free worker instead of
// failing when the pool is saturated.
func NewPool(cfg PoolConfig) (*Pool, error) {
	if cfg.Size < 1 {
		return nil, fmt.Errorf("worker pool %q: size must be at least 1, got %d", cfg.Name, cfg.Size)
	}

	panicHandler := func(p interface{}) {
		logger.Error("Worker panic recovered",
			zap.String("pool", cfg.Name),
			zap.Any("panic", p),
			zap.Stack("stack"),
		)
	}

	antsPool, err := ants.NewPool(cfg.Size,
		ants.WithPanicHandler(panicHandler),
		ants.WithNonblocking(false),
		ants.WithExpiryDuration(10*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("worker pool %q: %w", cfg.Name, err)
	}
	return &Pool{pool: antsPool, name: cfg.Name}, nil
}

// Submit runs fn on the pool. It blocks while every worker is busy and
// returns ErrPoolClosed after Release.
func (p *Pool) Submit(fn func()) error {
	err := p.pool.Submit(fn)
	if errors.Is(err, ants.ErrPoolClosed) {
		return ErrPoolClosed
	}
	return err
}

// Release waits up to timeout for running tasks, then closes the pool.
func (p *Pool) Release(timeout time.Duration) {
	if err := p.pool.ReleaseTimeout(timeout); err != nil {
		logger.Warn("Worker pool shutdown timeout",
			zap.String("pool", p.name),
			zap.Error(err),
		)
	}
}

// Group runs error-returning tasks on a Pool. The first error cancels the
// group context; tasks that have not started by then are skipped.
type Group struct {
	pool   *Pool
	ctx    context.Context
	cancel context.CancelFunc

	wg      sync.WaitGroup
	errOnce sync.Once
	err     error
}

// NewGroup returns a Group bound to p and the derived context that tasks
// and producers should watch.
func (p *Pool) NewGroup(ctx context.Context) (*Group, context.Context) {
	gctx, cancel := context.WithCancel(ctx)
	return &Group{pool: p, ctx: gctx, cancel: cancel}, gctx
}

// Go submits task. It blocks while the pool is saturated and returns the
// group context error once the group has been cancelled.
func (g *Group) Go(task func(ctx context.Context) error) error {
	if err := g.ctx.Err(); err != nil {
		return err
	}

	g.wg.Add(1)
	err := g.pool.Submit(func() {
		defer g.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				g.fail(fmt.Errorf("worker panic: %v", r))
			}
		}()
		// May have been cancelled while queued.
		if g.ctx.Err() != nil {
			logger.Debug("Task skipped: context cancelled", zap.String("pool", g.pool.name))
			return
		}
		if err := task(g.ctx); err != nil {
			g.fail(err)
		}
	})
	if err != nil {
		g.wg.Done()
		return err
	}
	return nil
}

// Wait blocks until every submitted task has finished or been skipped and
// returns the first task error.
func (g *Group) Wait() error {
	g.wg.Wait()
	g.cancel()
	return g.err
}

func (g *Group) fail(err error) {
	g.errOnce.Do(func() {
		g.err = err
		g.cancel()
	})
}
