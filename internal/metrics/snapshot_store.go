package metrics

import (
	"time"

	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	snapshotStoreOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "snapshot_store",
		Name:      "operations_total",
		Help:      "Count of embedded snapshot store operations.",
	}, []string{"operation", "network", "status"})
	snapshotStoreOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "snapshot_store",
		Name:      "operation_duration_seconds",
		Help:      "Duration of embedded snapshot store operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "network", "status"})
)

// SnapshotStore tracks metrics for the embedded snapshot store.
type SnapshotStore struct {
	network model.Network
}

// NewSnapshotStore constructs a SnapshotStore collector.
func NewSnapshotStore(network model.Network) *SnapshotStore {
	if network == "" {
		network = "unknown"
	}
	return &SnapshotStore{network: network}
}

// Observe records a store operation outcome and duration.
func (m SnapshotStore) Observe(operation string, err error, started time.Time) {
	status := statusOf(err)
	snapshotStoreOperationsTotal.WithLabelValues(operation, string(m.network), status).Inc()
	snapshotStoreOperationDuration.WithLabelValues(operation, string(m.network), status).Observe(time.Since(started).Seconds())
}
