package storage

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/model"
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/snapshot"
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/state"
)

const defaultRetain = 2

type (
	Metrics interface {
		Observe(operation string, err error, started time.Time)
	}
)

// SnapshotStore keeps encoded snapshots in a DB keyed by network and height.
// Only the newest retain snapshots are kept.
type SnapshotStore struct {
	db      DB
	prefix  []byte
	retain  int
	metrics Metrics
}

// NewSnapshotStore builds a SnapshotStore over db.
func NewSnapshotStore(db DB, network model.Network, metrics Metrics) *SnapshotStore {
	return &SnapshotStore{
		db:      db,
		prefix:  []byte("snapshot/" + string(network) + "/"),
		retain:  defaultRetain,
		metrics: metrics,
	}
}

func (s *SnapshotStore) key(height uint64) []byte {
	key := make([]byte, len(s.prefix)+8)
	copy(key, s.prefix)
	binary.BigEndian.PutUint64(key[len(s.prefix):], height)
	return key
}

// Save encodes snap and stores it, pruning older snapshots.
func (s *SnapshotStore) Save(ctx context.Context, snap *state.Snapshot) (err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("save_snapshot", err, started)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := snapshot.Encode(snap)
	if err != nil {
		return err
	}
	if err := s.db.Put(s.key(snap.Height()), payload); err != nil {
		return fmt.Errorf("put snapshot %d: %w", snap.Height(), err)
	}
	return s.prune()
}

func (s *SnapshotStore) prune() error {
	var keys [][]byte
	if err := s.db.ForEach(s.prefix, func(key, _ []byte) error {
		keys = append(keys, key)
		return nil
	}); err != nil {
		return fmt.Errorf("list snapshots: %w", err)
	}
	for len(keys) > s.retain {
		if err := s.db.Delete(keys[0]); err != nil {
			return fmt.Errorf("prune snapshot: %w", err)
		}
		keys = keys[1:]
	}
	return nil
}

// Latest returns the highest stored snapshot, or nil when none exists.
func (s *SnapshotStore) Latest(ctx context.Context) (snap *state.Snapshot, err error) {
	started := time.Now()
	defer func() {
		s.metrics.Observe("latest_snapshot", err, started)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var payload []byte
	if err := s.db.ForEach(s.prefix, func(_, value []byte) error {
		payload = value
		return nil
	}); err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	if payload == nil {
		return nil, nil
	}

	snap, err = snapshot.Decode(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", state.ErrInvalidSnapshot, err)
	}
	return snap, nil
}

// Heights lists the stored snapshot heights in ascending order.
func (s *SnapshotStore) Heights() ([]uint64, error) {
	var heights []uint64
	err := s.db.ForEach(s.prefix, func(key, _ []byte) error {
		heights = append(heights, binary.BigEndian.Uint64(key[len(s.prefix):]))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return heights, nil
}
