// Package snapshot periodically persists deep copies of the chain state so
// startup and reorg recovery can resume close to the chain tip.
package snapshot

import (
	"sync"

	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/model"
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/params"
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/state"
	"go.uber.org/zap"
)

// Manager holds the latest snapshot candidate in memory and hands it to the
// writer when the next grid height is reached, so a persisted snapshot is
// always at least one grid interval behind the tip.
type Manager struct {
	logger        *zap.Logger
	state         Cloner
	writer        Writer
	genesisHeight uint64
	grid          uint64

	mu        sync.Mutex
	candidate *state.Snapshot
}

// NewManager builds a Manager. Register OnBlockAdded with the chain state.
func NewManager(chainState Cloner, writer Writer, p params.Params, logger *zap.Logger) *Manager {
	return &Manager{
		logger:        logger.Named("snapshotManager"),
		state:         chainState,
		writer:        writer,
		genesisHeight: p.GenesisBlockHeight,
		grid:          p.SnapshotGrid,
	}
}

// OnBlockAdded reacts to an appended block.
func (m *Manager) OnBlockAdded(block model.Block) {
	if !IsSnapshotHeight(m.genesisHeight, block.Height, m.grid) {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.candidate != nil && m.candidate.Height() == block.Height {
		return
	}
	if m.candidate != nil {
		if err := m.writer.Enqueue(m.candidate); err != nil {
			m.logger.Error("snapshot not queued for persistence",
				zap.Uint64("height", m.candidate.Height()),
				zap.Error(err),
			)
		} else {
			m.logger.Info("snapshot queued for persistence", zap.Uint64("height", m.candidate.Height()))
		}
	}

	m.candidate = m.state.Clone()
	m.logger.Debug("snapshot candidate taken", zap.Uint64("height", m.candidate.Height()))
}

// Discard drops the in-memory candidate. Used when the chain state is
// rolled back.
func (m *Manager) Discard() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.candidate = nil
}

// CandidateHeight returns the height of the held candidate.
func (m *Manager) CandidateHeight() (uint64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.candidate == nil {
		return 0, false
	}
	return m.candidate.Height(), true
}
