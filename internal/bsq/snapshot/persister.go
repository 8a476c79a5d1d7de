package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/state"
	"github.com/goodnatureofminers/bsq-ledger/pkg/batcher"
	"go.uber.org/zap"
)

const (
	persistBatchSize     = 16
	persistFlushInterval = 5 * time.Second
	persistRPS           = 1
)

var errPersisterNotStarted = errors.New("snapshot persister not started")

// Persister writes queued snapshots in the background. Of every flushed
// batch only the highest snapshot is saved.
type Persister struct {
	logger  *zap.Logger
	store   Store
	batcher *batcher.Batcher[*state.Snapshot]
	ctx     context.Context
}

// NewPersister builds a Persister over store.
func NewPersister(store Store, logger *zap.Logger) *Persister {
	p := &Persister{
		logger: logger.Named("snapshotPersister"),
		store:  store,
	}
	p.batcher = batcher.New(p.logger, p.flush, persistBatchSize, persistFlushInterval, persistRPS)
	return p
}

// Start runs the background writer until ctx is canceled or Stop is called.
func (p *Persister) Start(ctx context.Context) {
	p.ctx = ctx
	p.batcher.Start(ctx)
}

// Stop flushes pending snapshots and waits for the writer to exit.
func (p *Persister) Stop() {
	p.batcher.Stop()
}

// Enqueue queues snap for persistence.
func (p *Persister) Enqueue(snap *state.Snapshot) error {
	if p.ctx == nil {
		return errPersisterNotStarted
	}
	return p.batcher.Add(p.ctx, snap)
}

func (p *Persister) flush(ctx context.Context, snaps []*state.Snapshot) error {
	latest := snaps[0]
	for _, snap := range snaps[1:] {
		if snap.Height() > latest.Height() {
			latest = snap
		}
	}

	started := time.Now()
	if err := p.store.Save(ctx, latest); err != nil {
		return fmt.Errorf("save snapshot at height %d: %w", latest.Height(), err)
	}
	p.logger.Info("snapshot persisted",
		zap.Uint64("height", latest.Height()),
		zap.Int("skipped", len(snaps)-1),
		zap.Duration("took", time.Since(started)),
	)
	return nil
}
