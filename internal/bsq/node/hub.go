package node

import (
	"context"
	"sync"

	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/model"
	"go.uber.org/zap"
)

// Hub is an in-process Peer backed by a full node's chain state. Register
// OnBlockAdded with the chain state to broadcast appended blocks.
type Hub struct {
	logger *zap.Logger
	state  HubState

	mu     sync.Mutex
	nextID int
	subs   map[int]chan model.Block
}

// NewHub builds a Hub serving chainState.
func NewHub(chainState HubState, logger *zap.Logger) *Hub {
	return &Hub{
		logger: logger.Named("hub"),
		state:  chainState,
		subs:   make(map[int]chan model.Block),
	}
}

// ChainHeadHeight returns the height of the full node's chain tip.
func (h *Hub) ChainHeadHeight(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return h.state.ChainHeadHeight(), nil
}

// RequestBlocks returns copies of the blocks from fromHeight up to the tip.
func (h *Hub) RequestBlocks(ctx context.Context, fromHeight uint64) ([]model.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return h.state.ResetBlocksFrom(fromHeight), nil
}

// NewBlocks registers a subscriber. The channel is closed when ctx is done.
func (h *Hub) NewBlocks(ctx context.Context) (<-chan model.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ch := make(chan model.Block, hubSubscriberBuffer)
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, id)
		close(ch)
		h.mu.Unlock()
	}()
	return ch, nil
}

// OnBlockAdded broadcasts block to every subscriber. A subscriber whose
// buffer is full misses the block and picks it up on its next catch-up.
func (h *Hub) OnBlockAdded(block model.Block) {
	reset := block.Reset()

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, ch := range h.subs {
		select {
		case ch <- reset:
		default:
			h.logger.Warn("subscriber lagging, block dropped", zap.Int("subscriber", id), zap.Uint64("height", block.Height))
		}
	}
}
