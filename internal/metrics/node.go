package metrics

import (
	"time"

	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	nodeFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "node",
		Name:      "fetch_total",
		Help:      "Count of block range fetches from the block source.",
	}, []string{"coin", "network", "status"})

	nodeFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "node",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of block range fetches.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	nodeFetchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "node",
		Name:      "fetch_size",
		Help:      "Number of blocks per fetch.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"coin", "network"})

	nodeBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "node",
		Name:      "blocks_total",
		Help:      "Count of parsed blocks.",
	}, []string{"coin", "network", "status"})

	nodeBlockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "node",
		Name:      "block_duration_seconds",
		Help:      "Duration of parsing a block.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"coin", "network", "status"})

	nodeBlockTokenTxs = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "node",
		Name:      "block_token_txs",
		Help:      "Number of token transactions per parsed block.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
	}, []string{"coin", "network"})

	nodeRecoveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "node",
		Name:      "recoveries_total",
		Help:      "Count of chain state recoveries after reorgs or invariant violations.",
	}, []string{"coin", "network", "status"})

	nodeChainHeadHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "node",
		Name:      "chain_head_height",
		Help:      "Height of the last parsed block.",
	}, []string{"coin", "network"})

	nodePhase = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "node",
		Name:      "phase",
		Help:      "Current controller phase; the active phase is set to 1.",
	}, []string{"coin", "network", "phase"})
)

var phases = []string{"idle", "catching_up", "live"}

// Node tracks metrics for the node controller.
type Node struct {
	coin    model.Coin
	network model.Network
}

// NewNode constructs a Node collector.
func NewNode(coin model.Coin, network model.Network) *Node {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return &Node{coin: coin, network: network}
}

// ObserveFetch records a range fetch outcome, duration and size.
func (m Node) ObserveFetch(err error, blocks int, started time.Time) {
	status := statusOf(err)
	nodeFetchTotal.WithLabelValues(string(m.coin), string(m.network), status).Inc()
	nodeFetchDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
	if err == nil {
		nodeFetchSize.WithLabelValues(string(m.coin), string(m.network)).Observe(float64(blocks))
	}
}

// ObserveBlock records parsing of a single block.
func (m Node) ObserveBlock(err error, tokenTxs int, started time.Time) {
	status := statusOf(err)
	nodeBlocksTotal.WithLabelValues(string(m.coin), string(m.network), status).Inc()
	nodeBlockDuration.WithLabelValues(string(m.coin), string(m.network), status).
		Observe(time.Since(started).Seconds())
	if err == nil {
		nodeBlockTokenTxs.WithLabelValues(string(m.coin), string(m.network)).Observe(float64(tokenTxs))
	}
}

// ObserveRecovery records a recovery attempt.
func (m Node) ObserveRecovery(err error) {
	nodeRecoveriesTotal.WithLabelValues(string(m.coin), string(m.network), statusOf(err)).Inc()
}

// SetChainHead publishes the chain head height.
func (m Node) SetChainHead(height uint64) {
	nodeChainHeadHeight.WithLabelValues(string(m.coin), string(m.network)).Set(float64(height))
}

// SetPhase marks phase as the active controller phase.
func (m Node) SetPhase(phase string) {
	for _, p := range phases {
		v := 0.0
		if p == phase {
			v = 1
		}
		nodePhase.WithLabelValues(string(m.coin), string(m.network), p).Set(v)
	}
}
