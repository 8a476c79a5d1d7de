package state

import (
	"fmt"

	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/model"
	"go.uber.org/zap"
)

// Snapshot is a point-in-time deep copy of a ChainState.
type Snapshot struct {
	GenesisTxID             string
	GenesisBlockHeight      uint64
	ChainHeadHeight         uint64
	GenesisTx               *model.Tx
	Blocks                  []model.Block
	Txs                     map[string]model.Tx
	TxTypes                 map[string]model.TxType
	VerifiedOutputs         map[model.OutPoint]model.TxOutput
	SpendInfos              map[model.OutPoint]model.SpendInfo
	BurntFees               map[string]uint64
	CompensationRequestFees []FeeAtHeight
	VotingFees              []FeeAtHeight
}

// Height is the chain head height the snapshot was taken at.
func (s *Snapshot) Height() uint64 {
	return s.ChainHeadHeight
}

// Clone takes a deep copy of the state under the read lock.
func (s *ChainState) Clone() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &Snapshot{
		GenesisTxID:             s.genesisTxID,
		GenesisBlockHeight:      s.genesisBlockHeight,
		ChainHeadHeight:         s.chainHeadHeightLocked(),
		Blocks:                  make([]model.Block, len(s.blocks)),
		Txs:                     make(map[string]model.Tx, len(s.txs)),
		TxTypes:                 make(map[string]model.TxType, len(s.txTypes)),
		VerifiedOutputs:         make(map[model.OutPoint]model.TxOutput, len(s.verified)),
		SpendInfos:              make(map[model.OutPoint]model.SpendInfo, len(s.spends)),
		BurntFees:               make(map[string]uint64, len(s.burntFees)),
		CompensationRequestFees: append([]FeeAtHeight(nil), s.compensationRequestFees...),
		VotingFees:              append([]FeeAtHeight(nil), s.votingFees...),
	}
	if s.genesisTx != nil {
		tx := s.genesisTx.Clone()
		snap.GenesisTx = &tx
	}
	for i, block := range s.blocks {
		snap.Blocks[i] = block.Clone()
	}
	for id, tx := range s.txs {
		snap.Txs[id] = tx.Clone()
	}
	for id, txType := range s.txTypes {
		snap.TxTypes[id] = txType
	}
	for op, out := range s.verified {
		snap.VerifiedOutputs[op] = out.Clone()
	}
	for op, info := range s.spends {
		snap.SpendInfos[op] = info
	}
	for id, fee := range s.burntFees {
		snap.BurntFees[id] = fee
	}
	return snap
}

// ApplySnapshot replaces the whole state with a copy of snap.
func (s *ChainState) ApplySnapshot(snap *Snapshot) error {
	if err := s.validateSnapshot(snap); err != nil {
		return err
	}

	blocks := make([]model.Block, len(snap.Blocks))
	blockIndex := make(map[string]uint64, len(snap.Blocks))
	for i, block := range snap.Blocks {
		blocks[i] = block.Clone()
		blockIndex[block.Hash] = block.Height
	}
	txs := make(map[string]model.Tx, len(snap.Txs))
	for id, tx := range snap.Txs {
		txs[id] = tx.Clone()
	}
	txTypes := make(map[string]model.TxType, len(snap.TxTypes))
	for id, txType := range snap.TxTypes {
		txTypes[id] = txType
	}
	verified := make(map[model.OutPoint]model.TxOutput, len(snap.VerifiedOutputs))
	for op, out := range snap.VerifiedOutputs {
		verified[op] = out.Clone()
	}
	spends := make(map[model.OutPoint]model.SpendInfo, len(snap.SpendInfos))
	for op, info := range snap.SpendInfos {
		spends[op] = info
	}
	burntFees := make(map[string]uint64, len(snap.BurntFees))
	for id, fee := range snap.BurntFees {
		burntFees[id] = fee
	}
	var genesisTx *model.Tx
	if snap.GenesisTx != nil {
		tx := snap.GenesisTx.Clone()
		genesisTx = &tx
	}

	s.mu.Lock()
	s.blocks = blocks
	s.blockIndex = blockIndex
	s.txs = txs
	s.txTypes = txTypes
	s.verified = verified
	s.spends = spends
	s.burntFees = burntFees
	s.genesisTx = genesisTx
	s.compensationRequestFees = append([]FeeAtHeight(nil), snap.CompensationRequestFees...)
	s.votingFees = append([]FeeAtHeight(nil), snap.VotingFees...)
	s.mu.Unlock()

	s.logger.Info("snapshot applied",
		zap.Uint64("height", snap.ChainHeadHeight),
		zap.Int("blocks", len(blocks)),
		zap.Int("txs", len(txs)),
	)
	return nil
}

func (s *ChainState) validateSnapshot(snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: nil snapshot", ErrInvalidSnapshot)
	}
	if snap.GenesisTxID != s.genesisTxID || snap.GenesisBlockHeight != s.genesisBlockHeight {
		return fmt.Errorf("%w: genesis %s@%d does not match %s@%d", ErrInvalidSnapshot,
			snap.GenesisTxID, snap.GenesisBlockHeight, s.genesisTxID, s.genesisBlockHeight)
	}
	if len(snap.Blocks) == 0 {
		if snap.ChainHeadHeight != 0 {
			return fmt.Errorf("%w: head height %d without blocks", ErrInvalidSnapshot, snap.ChainHeadHeight)
		}
		return nil
	}
	if first := snap.Blocks[0]; first.Height != snap.GenesisBlockHeight {
		return fmt.Errorf("%w: first block height %d, want %d", ErrInvalidSnapshot, first.Height, snap.GenesisBlockHeight)
	}
	for i, block := range snap.Blocks {
		if i > 0 {
			prev := snap.Blocks[i-1]
			if block.Height != prev.Height+1 || block.PreviousHash != prev.Hash {
				return fmt.Errorf("%w: block %s at height %d does not extend %s", ErrInvalidSnapshot, block.Hash, block.Height, prev.Hash)
			}
		}
		for _, tx := range block.Txs {
			if _, ok := snap.Txs[tx.ID]; !ok {
				return fmt.Errorf("%w: tx %s of block %d missing from index", ErrInvalidSnapshot, tx.ID, block.Height)
			}
		}
	}
	if last := snap.Blocks[len(snap.Blocks)-1]; last.Height != snap.ChainHeadHeight {
		return fmt.Errorf("%w: head height %d, last block %d", ErrInvalidSnapshot, snap.ChainHeadHeight, last.Height)
	}
	return nil
}
