package node

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/model"
	"go.uber.org/zap"
)

var errBlockNotServed = errors.New("peer did not serve block")

// LiteSource is the BlockSource of a lite node. Blocks come from a full node
// peer and are reset before they reach the parser so every classification is
// derived locally.
type LiteSource struct {
	logger *zap.Logger
	peer   Peer
}

// NewLiteSource wraps peer as a BlockSource.
func NewLiteSource(peer Peer, logger *zap.Logger) (*LiteSource, error) {
	if peer == nil {
		return nil, errors.New("peer is required")
	}
	return &LiteSource{logger: logger.Named("liteSource"), peer: peer}, nil
}

// ChainHeadHeight asks the full node for its chain tip height.
func (s *LiteSource) ChainHeadHeight(ctx context.Context) (uint64, error) {
	return s.peer.ChainHeadHeight(ctx)
}

// FetchBlock returns the single block the peer serves at height.
func (s *LiteSource) FetchBlock(ctx context.Context, height uint64) (model.Block, error) {
	blocks, err := s.FetchBlocks(ctx, height, height)
	if err != nil {
		return model.Block{}, err
	}
	if len(blocks) == 0 {
		return model.Block{}, fmt.Errorf("%w: height %d", errBlockNotServed, height)
	}
	return blocks[0], nil
}

// FetchBlocks returns the contiguous run of blocks the peer serves from
// height from, capped at to.
func (s *LiteSource) FetchBlocks(ctx context.Context, from, to uint64) ([]model.Block, error) {
	served, err := s.peer.RequestBlocks(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("request blocks from %d: %w", from, err)
	}

	blocks := make([]model.Block, 0, len(served))
	next := from
	for _, block := range served {
		if block.Height < next {
			continue
		}
		if block.Height != next || block.Height > to {
			break
		}
		blocks = append(blocks, block.Reset())
		next++
	}
	return blocks, nil
}

// Subscribe replays the blocks the peer already has from fromHeight, then
// forwards gossiped blocks. Blocks below the next expected height are
// dropped as duplicates.
func (s *LiteSource) Subscribe(ctx context.Context, fromHeight uint64) (<-chan model.Block, error) {
	gossip, err := s.peer.NewBlocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("subscribe to peer: %w", err)
	}

	out := make(chan model.Block)
	go func() {
		defer close(out)

		next := fromHeight
		send := func(block model.Block) bool {
			if block.Height < next {
				return true
			}
			select {
			case <-ctx.Done():
				return false
			case out <- block.Reset():
				next = block.Height + 1
				return true
			}
		}

		backlog, err := s.peer.RequestBlocks(ctx, fromHeight)
		if err != nil {
			if ctx.Err() == nil {
				s.logger.Warn("backlog not fetched", zap.Uint64("from", fromHeight), zap.Error(err))
			}
			return
		}
		for _, block := range backlog {
			if !send(block) {
				return
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			case block, ok := <-gossip:
				if !ok {
					return
				}
				if !send(block) {
					return
				}
			}
		}
	}()
	return out, nil
}
