// Package batcher groups queued items into rate-limited batches.
package batcher

import (
	"context"
	"sync"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// FlushFunc receives a batch. The slice is reused after it returns.
type FlushFunc[T any] func(ctx context.Context, items []T) error

// Batcher collects items and hands them to a FlushFunc once flushSize items
// are queued or flushInterval elapses. Items still queued when Stop is called
// are flushed before it returns.
type Batcher[T any] struct {
	logger    *zap.Logger
	flushFn   FlushFunc[T]
	size      int
	interval  time.Duration
	limiter   ratelimit.Limiter
	queue     chan T
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New constructs a Batcher flushing at most rps batches per second.
func New[T any](logger *zap.Logger, flushFn FlushFunc[T], flushSize int, flushInterval time.Duration, rps int) *Batcher[T] {
	if flushSize < 1 {
		flushSize = 1
	}
	return &Batcher[T]{
		logger:   logger,
		flushFn:  flushFn,
		size:     flushSize,
		interval: flushInterval,
		limiter:  ratelimit.New(rps),
		queue:    make(chan T, flushSize*2),
		done:     make(chan struct{}),
	}
}

// Start begins the background flushing loop.
func (b *Batcher[T]) Start(ctx context.Context) {
	b.wg.Add(1)
	go b.loop(ctx)
}

// Stop flushes what is queued and waits for the loop to exit. Safe to call
// more than once.
func (b *Batcher[T]) Stop() {
	b.closeOnce.Do(func() { close(b.done) })
	b.wg.Wait()
}

// Add queues item. It blocks while the queue is full and fails with
// context.Canceled once the batcher is stopped.
func (b *Batcher[T]) Add(ctx context.Context, item T) error {
	select {
	case <-b.done:
		return context.Canceled
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.done:
		return context.Canceled
	case b.queue <- item:
		return nil
	}
}

type pending[T any] struct {
	b     *Batcher[T]
	ctx   context.Context
	items []T
}

func (p *pending[T]) push(item T) {
	p.items = append(p.items, item)
	if len(p.items) >= p.b.size {
		p.flush()
	}
}

func (p *pending[T]) flush() {
	if len(p.items) == 0 {
		return
	}

	p.b.limiter.Take()
	if err := p.b.flushFn(p.ctx, p.items); err != nil {
		p.b.logger.Error("batch not flushed", zap.Int("size", len(p.items)), zap.Error(err))
	} else {
		p.b.logger.Debug("batch flushed", zap.Int("size", len(p.items)))
	}
	p.items = p.items[:0]
}

func (b *Batcher[T]) loop(ctx context.Context) {
	defer b.wg.Done()

	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	buf := &pending[T]{b: b, ctx: ctx, items: make([]T, 0, b.size)}
	for {
		select {
		case <-ctx.Done():
			buf.flush()
			return
		case <-b.done:
			for {
				select {
				case item := <-b.queue:
					buf.push(item)
				default:
					buf.flush()
					return
				}
			}
		case item := <-b.queue:
			buf.push(item)
		case <-ticker.C:
			buf.flush()
		}
	}
}
