package clickhouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/snapshot"
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/state"
)

const latestSnapshotQuery = `
SELECT payload
FROM bsq_snapshots FINAL
WHERE network = ?
ORDER BY height DESC
LIMIT 1`

// Latest returns the highest stored snapshot for the repository network, or
// nil when none was saved yet.
func (r *Repository) Latest(ctx context.Context) (*state.Snapshot, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("latest_snapshot", r.network, err, start)
	}()

	var payload string
	row := r.conn.QueryRow(ctx, latestSnapshotQuery, string(r.network))
	if err = row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = nil
			return nil, nil
		}
		err = fmt.Errorf("query latest snapshot: %w", err)
		return nil, err
	}

	var snap *state.Snapshot
	snap, err = snapshot.Decode([]byte(payload))
	if err != nil {
		err = fmt.Errorf("%w: %w", state.ErrInvalidSnapshot, err)
		return nil, err
	}
	return snap, nil
}
