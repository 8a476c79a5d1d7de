// Package node drives a chain state from a block source: it catches up to
// the source's chain head, follows new blocks and recovers from reorgs.
package node

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/model"
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/parser"
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/state"
	"github.com/goodnatureofminers/bsq-ledger/internal/clock"
	"go.uber.org/zap"
)

// Phase is the controller's position in its lifecycle.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseCatchingUp
	PhaseLive
)

func (p Phase) String() string {
	switch p {
	case PhaseCatchingUp:
		return "catching_up"
	case PhaseLive:
		return "live"
	default:
		return "idle"
	}
}

var errSubscriptionClosed = errors.New("block subscription closed")

// Controller keeps a chain state in sync with a block source.
type Controller struct {
	logger        *zap.Logger
	source        BlockSource
	fetcher       *bulkFetcher
	state         ChainState
	parser        BlockParser
	store         SnapshotStore
	candidate     SnapshotCandidate
	metrics       Metrics
	sleep         func(context.Context, time.Duration) error
	sleepDuration time.Duration
	chunkSize     uint64
	phase         atomic.Int32

	// restoredHeight is the height of the snapshot applied by the last
	// recovery, zero when the last recovery started from genesis.
	restoredHeight uint64
}

// NewController builds a Controller. store and candidate may be nil for
// nodes that do not persist snapshots.
func NewController(
	source BlockSource,
	chainState ChainState,
	blockParser BlockParser,
	store SnapshotStore,
	candidate SnapshotCandidate,
	metrics Metrics,
	coin model.Coin,
	network model.Network,
	logger *zap.Logger,
) (*Controller, error) {
	logger = logger.With(
		zap.String("coin", string(coin)),
		zap.String("network", string(network)),
	)
	if source == nil {
		return nil, errors.New("block source is required")
	}
	if chainState == nil {
		return nil, errors.New("chain state is required")
	}
	if blockParser == nil {
		return nil, errors.New("block parser is required")
	}
	if metrics == nil {
		return nil, errors.New("node metrics is required")
	}

	return &Controller{
		logger:        logger,
		source:        source,
		fetcher:       &bulkFetcher{source: source, workers: defaultWorkerCount},
		state:         chainState,
		parser:        blockParser,
		store:         store,
		candidate:     candidate,
		metrics:       metrics,
		sleep:         clock.SleepWithContext,
		sleepDuration: sleepDuration,
		chunkSize:     fetchChunkSize,
	}, nil
}

// Phase returns the current phase. Safe for concurrent use.
func (c *Controller) Phase() Phase {
	return Phase(c.phase.Load())
}

func (c *Controller) setPhase(p Phase) {
	if Phase(c.phase.Swap(int32(p))) != p {
		c.logger.Info("phase changed", zap.Stringer("phase", p))
	}
	c.metrics.SetPhase(p.String())
}

// Run restores the latest snapshot and keeps the chain state in sync until
// ctx is canceled or classification overflows.
func (c *Controller) Run(ctx context.Context) error {
	defer c.setPhase(PhaseIdle)

	c.restore(ctx)

	recovering := false
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if recovering {
			if err := c.recoverState(ctx); err != nil {
				c.logger.Warn("recovery failed, backing off", zap.Error(err), zap.Duration("sleep", c.sleepDuration))
				if sleepErr := c.sleep(ctx, c.sleepDuration); sleepErr != nil {
					return sleepErr
				}
				continue
			}
			recovering = false
		}

		err := c.run(ctx)
		switch {
		case err == nil:
		case errors.Is(err, parser.ErrClassificationOverflow):
			c.logger.Error("classification overflow, stopping", zap.Error(err))
			return err
		case ctx.Err() != nil:
			return ctx.Err()
		case state.RequiresRecovery(err):
			c.logger.Warn("chain state diverged from source, recovering", zap.Error(err))
			recovering = true
		default:
			c.logger.Warn("run iteration failed, backing off", zap.Error(err), zap.Duration("sleep", c.sleepDuration))
			if sleepErr := c.sleep(ctx, c.sleepDuration); sleepErr != nil {
				return sleepErr
			}
		}
	}
}

func (c *Controller) run(ctx context.Context) error {
	c.setPhase(PhaseCatchingUp)
	if err := c.catchUp(ctx); err != nil {
		return err
	}
	c.setPhase(PhaseLive)
	return c.live(ctx)
}

// restore applies the latest persisted snapshot to an empty chain state.
// Failures fall back to parsing from genesis.
func (c *Controller) restore(ctx context.Context) {
	if c.store == nil || !c.state.IsEmpty() {
		return
	}
	snap, err := c.store.Latest(ctx)
	if err != nil {
		c.logger.Warn("snapshot not loaded, parsing from genesis", zap.Error(err))
		return
	}
	if snap == nil {
		c.logger.Info("no persisted snapshot, parsing from genesis")
		return
	}
	if err := c.state.ApplySnapshot(snap); err != nil {
		c.logger.Warn("snapshot rejected, parsing from genesis", zap.Error(err))
		c.state.Reset()
		return
	}
	c.restoredHeight = snap.Height()
	c.metrics.SetChainHead(snap.Height())
	c.logger.Info("snapshot applied", zap.Uint64("height", snap.Height()))
}

// recoverState rebuilds the chain state from the latest persisted snapshot. A
// snapshot that the chain diverged from again without making progress is
// skipped and the state replays from genesis.
func (c *Controller) recoverState(ctx context.Context) (err error) {
	defer func() { c.metrics.ObserveRecovery(err) }()

	if c.candidate != nil {
		c.candidate.Discard()
	}

	stale := c.restoredHeight > 0 && c.state.ChainHeadHeight() <= c.restoredHeight
	c.restoredHeight = 0

	if c.store == nil || stale {
		if stale {
			c.logger.Warn("persisted snapshot is on an abandoned branch, replaying from genesis")
		}
		c.state.Reset()
		c.metrics.SetChainHead(0)
		return nil
	}

	snap, err := c.store.Latest(ctx)
	if err != nil {
		return fmt.Errorf("load latest snapshot: %w", err)
	}
	if snap == nil {
		c.state.Reset()
		c.metrics.SetChainHead(0)
		c.logger.Info("no persisted snapshot, replaying from genesis")
		return nil
	}
	if err := c.state.ApplySnapshot(snap); err != nil {
		c.logger.Warn("snapshot rejected, replaying from genesis", zap.Error(err))
		c.state.Reset()
		c.metrics.SetChainHead(0)
		return nil
	}

	c.restoredHeight = snap.Height()
	c.metrics.SetChainHead(snap.Height())
	c.logger.Info("recovered from snapshot", zap.Uint64("height", snap.Height()))
	return nil
}

func (c *Controller) nextHeight() uint64 {
	if c.state.IsEmpty() {
		return c.state.GenesisBlockHeight()
	}
	return c.state.ChainHeadHeight() + 1
}

// catchUp parses every block up to the source's chain head, repeating until
// the head stops advancing.
func (c *Controller) catchUp(ctx context.Context) error {
	for {
		remote, err := c.source.ChainHeadHeight(ctx)
		if err != nil {
			return fmt.Errorf("fetch chain head: %w", err)
		}
		if c.nextHeight() > remote {
			c.logger.Debug("caught up", zap.Uint64("remote_head", remote))
			return nil
		}

		c.logger.Info("catching up",
			zap.Uint64("from", c.nextHeight()),
			zap.Uint64("remote_head", remote),
		)
		for from := c.nextHeight(); from <= remote; from = c.nextHeight() {
			to := from + c.chunkSize - 1
			if to > remote {
				to = remote
			}
			if err := c.applyRange(ctx, from, to); err != nil {
				return err
			}
		}
	}
}

func (c *Controller) applyRange(ctx context.Context, from, to uint64) error {
	started := time.Now()
	blocks, err := c.fetcher.fetch(ctx, from, to)
	c.metrics.ObserveFetch(err, len(blocks), started)
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		return fmt.Errorf("source returned no blocks for %d-%d", from, to)
	}

	for _, block := range blocks {
		if err := c.applyBlock(block); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) applyBlock(raw model.Block) error {
	started := time.Now()
	parsed, err := c.parser.ParseBlock(raw)
	c.metrics.ObserveBlock(err, len(parsed.Txs), started)
	if err != nil {
		return fmt.Errorf("parse block %d: %w", raw.Height, err)
	}

	c.metrics.SetChainHead(parsed.Height)
	c.logger.Debug("block parsed",
		zap.Uint64("height", parsed.Height),
		zap.String("hash", parsed.Hash),
		zap.Int("token_txs", len(parsed.Txs)),
	)
	return nil
}

// live follows new blocks until the subscription ends.
func (c *Controller) live(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	blocks, err := c.source.Subscribe(ctx, c.nextHeight())
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case block, ok := <-blocks:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return errSubscriptionClosed
			}
			if err := c.handleLiveBlock(block); err != nil {
				return err
			}
		}
	}
}

func (c *Controller) handleLiveBlock(block model.Block) error {
	if block.Height < c.state.GenesisBlockHeight() {
		return nil
	}
	if c.state.ContainsBlock(block.Hash) {
		c.logger.Debug("known block skipped", zap.Uint64("height", block.Height), zap.String("hash", block.Hash))
		return nil
	}
	if !c.state.IsEmpty() && block.Height <= c.state.ChainHeadHeight() {
		return fmt.Errorf("%w: block %s at height %d competes with chain head at %d",
			state.ErrOrphanBlock, block.Hash, block.Height, c.state.ChainHeadHeight())
	}
	if next := c.nextHeight(); block.Height > next {
		return fmt.Errorf("%w: received block %d, expected %d",
			state.ErrInvariantViolation, block.Height, next)
	}
	return c.applyBlock(block)
}
