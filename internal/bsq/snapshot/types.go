package snapshot

import (
	"context"

	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/state"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Store persists snapshots. Latest returns nil without error when no
	// snapshot has been saved yet.
	Store interface {
		Save(ctx context.Context, snap *state.Snapshot) error
		Latest(ctx context.Context) (*state.Snapshot, error)
	}
	Cloner interface {
		Clone() *state.Snapshot
	}
	Writer interface {
		Enqueue(snap *state.Snapshot) error
	}
)
