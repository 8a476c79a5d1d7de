package node

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/model"
	"github.com/goodnatureofminers/bsq-ledger/pkg/workerpool"
)

// bulkFetcher loads a height range from a BlockSource, concurrently when the
// source has no range call of its own.
type bulkFetcher struct {
	source  BlockSource
	workers int
}

func (f *bulkFetcher) fetch(ctx context.Context, from, to uint64) ([]model.Block, error) {
	if to < from {
		return nil, nil
	}

	var (
		blocks []model.Block
		err    error
	)
	if rf, ok := f.source.(RangeFetcher); ok {
		blocks, err = rf.FetchBlocks(ctx, from, to)
	} else {
		heights := make([]uint64, 0, to-from+1)
		for h := from; h <= to; h++ {
			heights = append(heights, h)
		}
		blocks, err = workerpool.Map(ctx, f.workers, heights, f.source.FetchBlock)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch blocks %d-%d: %w", from, to, err)
	}

	if uint64(len(blocks)) > to-from+1 {
		return nil, fmt.Errorf("fetch blocks %d-%d: source returned %d blocks", from, to, len(blocks))
	}
	for i, block := range blocks {
		if want := from + uint64(i); block.Height != want {
			return nil, fmt.Errorf("fetch blocks %d-%d: got block %d at position of %d", from, to, block.Height, want)
		}
	}
	return blocks, nil
}
