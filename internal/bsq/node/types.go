package node

import (
	"context"
	"time"

	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/model"
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/state"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// BlockSource delivers raw host-chain blocks. Full nodes read them from
	// bitcoind, lite nodes from a full node peer.
	BlockSource interface {
		ChainHeadHeight(ctx context.Context) (uint64, error)
		FetchBlock(ctx context.Context, height uint64) (model.Block, error)
		// Subscribe streams blocks starting at fromHeight until ctx is
		// canceled or the source gives up, in which case the channel is closed.
		Subscribe(ctx context.Context, fromHeight uint64) (<-chan model.Block, error)
	}
	// RangeFetcher is implemented by sources that serve a height range in
	// one call. Blocks must be contiguous from the requested start; a
	// shorter result than requested is allowed.
	RangeFetcher interface {
		FetchBlocks(ctx context.Context, from, to uint64) ([]model.Block, error)
	}
	ChainState interface {
		IsEmpty() bool
		ChainHeadHeight() uint64
		ContainsBlock(hash string) bool
		GenesisBlockHeight() uint64
		ApplySnapshot(snap *state.Snapshot) error
		Reset()
	}
	BlockParser interface {
		ParseBlock(raw model.Block) (model.Block, error)
	}
	SnapshotStore interface {
		Latest(ctx context.Context) (*state.Snapshot, error)
	}
	SnapshotCandidate interface {
		Discard()
	}
	Metrics interface {
		ObserveFetch(err error, blocks int, started time.Time)
		ObserveBlock(err error, tokenTxs int, started time.Time)
		ObserveRecovery(err error)
		SetChainHead(height uint64)
		SetPhase(phase string)
	}
	// Peer is the network face of a full node as seen by a lite node.
	Peer interface {
		ChainHeadHeight(ctx context.Context) (uint64, error)
		RequestBlocks(ctx context.Context, fromHeight uint64) ([]model.Block, error)
		NewBlocks(ctx context.Context) (<-chan model.Block, error)
	}
	// HubState is the part of a full node's chain state a Hub serves.
	HubState interface {
		ChainHeadHeight() uint64
		ResetBlocksFrom(fromHeight uint64) []model.Block
	}
)
