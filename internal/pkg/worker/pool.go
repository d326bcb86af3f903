// Package worker provides goroutine pool management.
//
// All fan-out concurrency (the action-provider runtime's per-event tasks)
// goes through a Pool instead of naked goroutines, so panics are recovered
// and the task cap is enforced in one place.
package worker

import (
	"context"
	"errors"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/sport-log/sport-log-server/internal/pkg/logger"
)

// ErrPoolClosed is returned when submitting to a closed pool.
var ErrPoolClosed = errors.New("worker pool is closed")

// Task is a context-aware task function.
type Task func(ctx context.Context)

// Pool wraps ants.Pool with context-aware submission and panic recovery.
type Pool struct {
	pool *ants.Pool
	name string

	serviceCtx    context.Context
	serviceCancel context.CancelFunc
}

// NewPool creates a goroutine pool with the given capacity. size should track
// the concurrency the caller's I/O can actually sustain — for the
// action-provider runtime that is the shared HTTP client's
// MaxIdleConnsPerHost, not a hand-picked constant (§9 design note).
func NewPool(ctx context.Context, name string, size int) (*Pool, error) {
	serviceCtx, serviceCancel := context.WithCancel(ctx)

	panicHandler := func(p interface{}) {
		logger.Error("worker panic recovered",
			zap.String("pool", name),
			zap.Any("panic", p),
			zap.Stack("stack"),
		)
	}

	antsPool, err := ants.NewPool(size,
		ants.WithPanicHandler(panicHandler),
		ants.WithNonblocking(false),
		ants.WithExpiryDuration(10*time.Second),
	)
	if err != nil {
		serviceCancel()
		return nil, err
	}

	return &Pool{pool: antsPool, name: name, serviceCtx: serviceCtx, serviceCancel: serviceCancel}, nil
}

// Submit runs task on a pooled goroutine. The task receives the caller's
// context and should check ctx.Done() at blocking points. If the context is
// already cancelled, Submit returns ctx.Err() without scheduling the task.
func (p *Pool) Submit(ctx context.Context, task Task) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	return p.pool.Submit(func() {
		select {
		case <-ctx.Done():
			logger.Debug("task skipped: context cancelled", zap.String("pool", p.name), zap.Error(ctx.Err()))
			return
		default:
		}
		task(ctx)
	})
}

// Running returns the number of currently running goroutines in the pool.
func (p *Pool) Running() int { return p.pool.Running() }

// Cap returns the pool's capacity.
func (p *Pool) Cap() int { return p.pool.Cap() }

// Shutdown releases the pool, waiting up to timeout for in-flight tasks.
func (p *Pool) Shutdown(timeout time.Duration) {
	p.serviceCancel()
	if err := p.pool.ReleaseTimeout(timeout); err != nil {
		logger.Warn("pool shutdown timeout", zap.String("pool", p.name), zap.Error(err))
	}
}
