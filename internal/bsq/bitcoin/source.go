package bitcoin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/model"
	"github.com/goodnatureofminers/bsq-ledger/internal/clock"
	"github.com/goodnatureofminers/bsq-ledger/pkg/safe"
	"github.com/goodnatureofminers/bsq-ledger/pkg/workerpool"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// Config tunes a Source.
type Config struct {
	Network      model.Network
	RPS          int
	Workers      int
	PollInterval time.Duration
	// BlockSignal wakes the subscription loop ahead of PollInterval, e.g. on a
	// ZMQ block notification. May be nil.
	BlockSignal <-chan struct{}
}

// Source serves raw blocks from a bitcoind node.
type Source struct {
	logger       *zap.Logger
	rpc          RPCClient
	converter    *blockConverter
	limiter      ratelimit.Limiter
	workers      int
	pollInterval time.Duration
	signal       <-chan struct{}
}

// NewSource builds a Source over rpc.
func NewSource(rpc RPCClient, cfg Config, logger *zap.Logger) (*Source, error) {
	if rpc == nil {
		return nil, errors.New("rpc client is required")
	}
	decoder, err := newScriptDecoder(cfg.Network)
	if err != nil {
		return nil, err
	}
	if cfg.RPS < 1 {
		cfg.RPS = 50
	}
	if cfg.Workers < 1 {
		cfg.Workers = 4
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 10 * time.Second
	}

	return &Source{
		logger:       logger.Named("btcSource"),
		rpc:          rpc,
		converter:    &blockConverter{decoder: decoder},
		limiter:      ratelimit.New(cfg.RPS),
		workers:      cfg.Workers,
		pollInterval: cfg.PollInterval,
		signal:       cfg.BlockSignal,
	}, nil
}

// ChainHeadHeight returns the height of the node's best block.
func (s *Source) ChainHeadHeight(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.limiter.Take()
	count, err := s.rpc.GetBlockCount()
	if err != nil {
		return 0, fmt.Errorf("get block count: %w", err)
	}
	height, err := safe.Uint64(count)
	if err != nil {
		return 0, fmt.Errorf("block count overflow: %w", err)
	}
	return height, nil
}

// FetchBlock retrieves the block at height with full transaction details.
func (s *Source) FetchBlock(ctx context.Context, height uint64) (model.Block, error) {
	if err := ctx.Err(); err != nil {
		return model.Block{}, err
	}
	rpcHeight, err := safe.Int64(height)
	if err != nil {
		return model.Block{}, fmt.Errorf("block height %d exceeds rpc limit: %w", height, err)
	}

	s.limiter.Take()
	hash, err := s.rpc.GetBlockHash(rpcHeight)
	if err != nil {
		return model.Block{}, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	s.limiter.Take()
	src, err := s.rpc.GetBlockVerboseTx(hash)
	if err != nil {
		return model.Block{}, fmt.Errorf("get block %s: %w", hash, err)
	}

	block, err := s.converter.convert(*src)
	if err != nil {
		return model.Block{}, err
	}
	if block.Height != height {
		return model.Block{}, fmt.Errorf("node returned block %d for height %d", block.Height, height)
	}
	return block, nil
}

// FetchTransaction retrieves a single confirmed transaction. The node must
// run with txindex. height is the height of the block holding the tx.
func (s *Source) FetchTransaction(ctx context.Context, txID string, height uint64) (model.Tx, error) {
	if err := ctx.Err(); err != nil {
		return model.Tx{}, err
	}
	hash, err := chainhash.NewHashFromStr(txID)
	if err != nil {
		return model.Tx{}, fmt.Errorf("parse tx id %q: %w", txID, err)
	}

	s.limiter.Take()
	src, err := s.rpc.GetRawTransactionVerbose(hash)
	if err != nil {
		return model.Tx{}, fmt.Errorf("get raw transaction %s: %w", txID, err)
	}
	if src.Confirmations == 0 {
		return model.Tx{}, fmt.Errorf("transaction %s is not confirmed", txID)
	}
	return s.converter.convertTx(*src, height, time.Unix(src.Blocktime, 0).UTC())
}

// FetchBlocks retrieves the blocks in [from, to] concurrently and returns
// them in height order.
func (s *Source) FetchBlocks(ctx context.Context, from, to uint64) ([]model.Block, error) {
	if to < from {
		return nil, nil
	}
	heights := make([]uint64, 0, to-from+1)
	for h := from; h <= to; h++ {
		heights = append(heights, h)
	}
	return workerpool.Map(ctx, s.workers, heights, s.FetchBlock)
}

// Subscribe streams blocks starting at fromHeight. New blocks are picked up
// on every poll interval or block signal. The channel is closed when ctx is
// canceled.
func (s *Source) Subscribe(ctx context.Context, fromHeight uint64) (<-chan model.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	blocks := make(chan model.Block)
	go func() {
		defer close(blocks)
		next := fromHeight
		for {
			next = s.deliver(ctx, blocks, next)
			if _, err := clock.WaitForSignal(ctx, s.pollInterval, s.signal); err != nil {
				return
			}
		}
	}()
	return blocks, nil
}

func (s *Source) deliver(ctx context.Context, blocks chan<- model.Block, next uint64) uint64 {
	head, err := s.ChainHeadHeight(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("chain head not fetched", zap.Error(err))
		}
		return next
	}
	for ; next <= head; next++ {
		block, err := s.FetchBlock(ctx, next)
		if err != nil {
			if ctx.Err() == nil {
				s.logger.Warn("block not fetched", zap.Uint64("height", next), zap.Error(err))
			}
			return next
		}
		select {
		case <-ctx.Done():
			return next
		case blocks <- block:
		}
	}
	return next
}
