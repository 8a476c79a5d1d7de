package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/snapshot"
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/state"
)

const saveSnapshotQuery = `
INSERT INTO bsq_snapshots (network, height, created_at, payload)
VALUES (?, ?, ?, ?)`

// Save stores snap as the snapshot for its chain head height. Saving the same
// height again replaces the previous row once ClickHouse merges parts.
func (r *Repository) Save(ctx context.Context, snap *state.Snapshot) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("save_snapshot", r.network, err, start)
	}()

	var payload []byte
	payload, err = snapshot.Encode(snap)
	if err != nil {
		return err
	}

	if err = r.conn.Exec(ctx, saveSnapshotQuery, string(r.network), snap.Height(), start.UTC(), string(payload)); err != nil {
		err = fmt.Errorf("insert snapshot %d: %w", snap.Height(), err)
		return err
	}
	return nil
}
