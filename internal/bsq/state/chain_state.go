// Package state keeps the parsed token ledger. One writer mutates it while
// any number of readers query it.
package state

import (
	"fmt"
	"sort"
	"sync"

	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/model"
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/params"
	"go.uber.org/zap"
)

// ChainState is the authoritative store of parsed chain data.
type ChainState struct {
	mu     sync.RWMutex
	logger *zap.Logger

	genesisTxID        string
	genesisBlockHeight uint64

	blocks     []model.Block
	blockIndex map[string]uint64
	txs        map[string]model.Tx
	txTypes    map[string]model.TxType
	verified   map[model.OutPoint]model.TxOutput
	spends     map[model.OutPoint]model.SpendInfo
	burntFees  map[string]uint64
	genesisTx  *model.Tx

	compensationRequestFees []FeeAtHeight
	votingFees              []FeeAtHeight

	listenersMu sync.RWMutex
	listeners   []func(model.Block)
}

// BlockUpdate carries the classification results of one block. It is
// committed together with the block by ApplyBlock.
type BlockUpdate struct {
	GenesisTx       *model.Tx
	VerifiedOutputs []model.TxOutput
	Spends          map[model.OutPoint]model.SpendInfo
	BurntFees       map[string]uint64
	TxTypes         map[string]model.TxType
}

// New creates an empty ChainState for the given network constants. Non-zero
// default fees from p are scheduled at the genesis height.
func New(p params.Params, logger *zap.Logger) *ChainState {
	s := &ChainState{
		logger:             logger.Named("chainState"),
		genesisTxID:        p.GenesisTxID,
		genesisBlockHeight: p.GenesisBlockHeight,
	}
	s.resetLocked()
	if p.CompensationRequestFee > 0 {
		s.compensationRequestFees = setFee(s.compensationRequestFees, p.CompensationRequestFee, p.GenesisBlockHeight)
	}
	if p.VotingFee > 0 {
		s.votingFees = setFee(s.votingFees, p.VotingFee, p.GenesisBlockHeight)
	}
	return s
}

func (s *ChainState) resetLocked() {
	s.blocks = nil
	s.blockIndex = make(map[string]uint64)
	s.txs = make(map[string]model.Tx)
	s.txTypes = make(map[string]model.TxType)
	s.verified = make(map[model.OutPoint]model.TxOutput)
	s.spends = make(map[model.OutPoint]model.SpendInfo)
	s.burntFees = make(map[string]uint64)
	s.genesisTx = nil
}

// OnBlockAdded registers fn to be called after every appended block.
// Listeners run on the writer goroutine once the write lock is released.
func (s *ChainState) OnBlockAdded(fn func(model.Block)) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *ChainState) notifyBlockAdded(block model.Block) {
	s.listenersMu.RLock()
	listeners := append([]func(model.Block){}, s.listeners...)
	s.listenersMu.RUnlock()

	for _, fn := range listeners {
		fn(block.Clone())
	}
}

// AddBlock appends a block and registers its transactions.
func (s *ChainState) AddBlock(block model.Block) error {
	return s.ApplyBlock(block, BlockUpdate{})
}

// ApplyBlock validates the block and its classification results and commits
// both atomically. Nothing is applied when an error is returned.
func (s *ChainState) ApplyBlock(block model.Block, update BlockUpdate) error {
	block = block.Clone()

	s.mu.Lock()
	if err := s.validateUpdateLocked(block, update); err != nil {
		s.mu.Unlock()
		return err
	}

	if update.GenesisTx != nil {
		tx := update.GenesisTx.Clone()
		s.genesisTx = &tx
	}
	for _, out := range update.VerifiedOutputs {
		s.addVerifiedOutputLocked(out)
	}
	for op, info := range update.Spends {
		s.spends[op] = info
	}
	for txID, amount := range update.BurntFees {
		s.burntFees[txID] = amount
	}
	for txID, txType := range update.TxTypes {
		s.txTypes[txID] = txType
	}
	for _, tx := range block.Txs {
		s.txs[tx.ID] = tx
	}
	s.blocks = append(s.blocks, block)
	s.blockIndex[block.Hash] = block.Height
	s.mu.Unlock()

	s.logger.Debug("block appended",
		zap.Uint64("height", block.Height),
		zap.String("hash", block.Hash),
		zap.Int("txs", len(block.Txs)),
	)
	s.notifyBlockAdded(block)
	return nil
}

func (s *ChainState) validateUpdateLocked(block model.Block, update BlockUpdate) error {
	if err := s.validateConnectionLocked(block); err != nil {
		return err
	}
	if update.GenesisTx != nil && s.genesisTx != nil && s.genesisTx.ID != update.GenesisTx.ID {
		return fmt.Errorf("%w: genesis tx already set to %s", ErrInvariantViolation, s.genesisTx.ID)
	}

	pending := make(map[model.OutPoint]struct{}, len(update.VerifiedOutputs))
	for _, out := range update.VerifiedOutputs {
		pending[out.OutPoint()] = struct{}{}
	}
	for op, info := range update.Spends {
		if existing, ok := s.spends[op]; ok && existing != info {
			return fmt.Errorf("%w: %w: %s:%d spent by %s", ErrInvariantViolation, ErrOutputAlreadySpent, op.TxID, op.Index, existing.TxID)
		}
		_, verified := s.verified[op]
		_, verifiedHere := pending[op]
		if !verified && !verifiedHere {
			return fmt.Errorf("%w: spend of unverified output %s:%d", ErrInvariantViolation, op.TxID, op.Index)
		}
	}
	for txID, amount := range update.BurntFees {
		if existing, ok := s.burntFees[txID]; ok && existing != amount {
			return fmt.Errorf("%w: burnt fee of %s already recorded as %d", ErrInvariantViolation, txID, existing)
		}
	}
	return nil
}

// ValidateConnection reports whether block can be appended to the chain.
func (s *ChainState) ValidateConnection(block model.Block) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.validateConnectionLocked(block)
}

func (s *ChainState) validateConnectionLocked(block model.Block) error {
	if _, ok := s.blockIndex[block.Hash]; ok {
		return fmt.Errorf("%w: block %s at height %d already present", ErrInvariantViolation, block.Hash, block.Height)
	}
	if len(s.blocks) == 0 {
		if block.Height != s.genesisBlockHeight {
			return fmt.Errorf("%w: first block height %d, want genesis height %d", ErrInvariantViolation, block.Height, s.genesisBlockHeight)
		}
		return nil
	}

	head := s.blocks[len(s.blocks)-1]
	if block.Height != head.Height+1 {
		return fmt.Errorf("%w: block height %d does not follow chain head %d", ErrInvariantViolation, block.Height, head.Height)
	}
	if block.PreviousHash != head.Hash {
		return &BlockNotConnectingError{
			Height:       block.Height,
			Hash:         block.Hash,
			PreviousHash: block.PreviousHash,
			HeadHeight:   head.Height,
			HeadHash:     head.Hash,
		}
	}
	return nil
}

// SetGenesisTx records the transaction that minted the initial supply.
func (s *ChainState) SetGenesisTx(tx model.Tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.genesisTx != nil {
		if s.genesisTx.ID == tx.ID {
			return nil
		}
		return fmt.Errorf("%w: genesis tx already set to %s", ErrInvariantViolation, s.genesisTx.ID)
	}
	if tx.ID != s.genesisTxID {
		return fmt.Errorf("%w: tx %s is not the genesis tx %s", ErrInvariantViolation, tx.ID, s.genesisTxID)
	}
	c := tx.Clone()
	s.genesisTx = &c
	s.txTypes[tx.ID] = model.TxTypeGenesis
	return nil
}

// AddVerifiedOutput marks an output as a token output.
func (s *ChainState) AddVerifiedOutput(out model.TxOutput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addVerifiedOutputLocked(out)
}

func (s *ChainState) addVerifiedOutputLocked(out model.TxOutput) {
	op := out.OutPoint()
	if _, ok := s.verified[op]; ok {
		return
	}
	s.verified[op] = out.Clone()
}

// AddSpendInfo records where an output was spent. A recorded spend is never
// replaced.
func (s *ChainState) AddSpendInfo(op model.OutPoint, info model.SpendInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.spends[op]; ok {
		if existing == info {
			return nil
		}
		return fmt.Errorf("%w: %s:%d spent by %s at height %d", ErrOutputAlreadySpent, op.TxID, op.Index, existing.TxID, existing.BlockHeight)
	}
	s.spends[op] = info
	return nil
}

// AddBurntFee records token value of txID that was not allocated to outputs.
func (s *ChainState) AddBurntFee(txID string, amount uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.burntFees[txID]; ok {
		if existing == amount {
			return nil
		}
		return fmt.Errorf("%w: burnt fee of %s already recorded as %d", ErrInvariantViolation, txID, existing)
	}
	s.burntFees[txID] = amount
	return nil
}

// Reset drops all chain data. Fee schedules are kept.
func (s *ChainState) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	s.logger.Info("chain state reset")
}

// Tx returns a token transaction by id.
func (s *ChainState) Tx(id string) (model.Tx, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.txs[id]
	if !ok {
		return model.Tx{}, false
	}
	return tx.Clone(), true
}

// TxType returns the classification of a token transaction.
func (s *ChainState) TxType(id string) model.TxType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.txTypes[id]
}

// IsVerifiedOutput reports whether op carries tokens, spent or not.
func (s *ChainState) IsVerifiedOutput(op model.OutPoint) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.verified[op]
	return ok
}

// IsOutputSpendable reports whether the output is verified and unspent.
func (s *ChainState) IsOutputSpendable(txID string, index uint32) bool {
	_, ok := s.SpendableOutput(model.OutPoint{TxID: txID, Index: index})
	return ok
}

// SpendableOutput returns a verified, unspent output.
func (s *ChainState) SpendableOutput(op model.OutPoint) (model.TxOutput, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out, ok := s.verified[op]
	if !ok {
		return model.TxOutput{}, false
	}
	if _, spent := s.spends[op]; spent {
		return model.TxOutput{}, false
	}
	return out.Clone(), true
}

// FindOutput looks an output up among the token transactions.
func (s *ChainState) FindOutput(txID string, index uint32) (model.TxOutput, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.txs[txID]
	if !ok || int(index) >= len(tx.Outputs) {
		return model.TxOutput{}, false
	}
	return tx.Outputs[index].Clone(), true
}

// SpendInfo returns the spend record of op, if it has been spent.
func (s *ChainState) SpendInfo(op model.OutPoint) (model.SpendInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	info, ok := s.spends[op]
	return info, ok
}

// IsBlockConnecting reports whether a block with prevHash extends the tip.
func (s *ChainState) IsBlockConnecting(prevHash string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.blocks) == 0 {
		return true
	}
	return s.blocks[len(s.blocks)-1].Hash == prevHash
}

// ChainHeadHeight returns the height of the last block, 0 when empty.
func (s *ChainState) ChainHeadHeight() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chainHeadHeightLocked()
}

func (s *ChainState) chainHeadHeightLocked() uint64 {
	if len(s.blocks) == 0 {
		return 0
	}
	return s.blocks[len(s.blocks)-1].Height
}

// ChainHead returns the last block, false when the chain is empty.
func (s *ChainState) ChainHead() (model.Block, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.blocks) == 0 {
		return model.Block{}, false
	}
	return s.blocks[len(s.blocks)-1].Clone(), true
}

// IsEmpty reports whether no block has been added yet.
func (s *ChainState) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blocks) == 0
}

// ContainsBlock reports whether a block with hash is part of the chain.
func (s *ChainState) ContainsBlock(hash string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.blockIndex[hash]
	return ok
}

// GenesisTxID is the configured id of the genesis transaction.
func (s *ChainState) GenesisTxID() string {
	return s.genesisTxID
}

// GenesisBlockHeight is the configured height of the genesis block.
func (s *ChainState) GenesisBlockHeight() uint64 {
	return s.genesisBlockHeight
}

// GenesisTx returns the genesis transaction once it has been parsed.
func (s *ChainState) GenesisTx() (model.Tx, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.genesisTx == nil {
		return model.Tx{}, false
	}
	return s.genesisTx.Clone(), true
}

// IssuedSupply is the token amount minted by the genesis transaction.
func (s *ChainState) IssuedSupply() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.genesisTx == nil {
		return 0
	}
	var total uint64
	for _, out := range s.genesisTx.Outputs {
		total += out.Value
	}
	return total
}

// BurntFee returns the token value txID burnt, if any.
func (s *ChainState) BurntFee(txID string) (uint64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fee, ok := s.burntFees[txID]
	return fee, ok
}

// TotalBurntFee sums the fees burnt by all token transactions.
func (s *ChainState) TotalBurntFee() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var total uint64
	for _, fee := range s.burntFees {
		total += fee
	}
	return total
}

// UnspentOutputs lists verified outputs without a spend record, ordered by
// height, tx id and index.
func (s *ChainState) UnspentOutputs() []model.TxOutput {
	return s.collectOutputs(false)
}

// SpentOutputs lists verified outputs that have a spend record.
func (s *ChainState) SpentOutputs() []model.TxOutput {
	return s.collectOutputs(true)
}

func (s *ChainState) collectOutputs(spent bool) []model.TxOutput {
	s.mu.RLock()
	result := make([]model.TxOutput, 0)
	for op, out := range s.verified {
		if _, ok := s.spends[op]; ok == spent {
			result = append(result, out.Clone())
		}
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.BlockHeight != b.BlockHeight {
			return a.BlockHeight < b.BlockHeight
		}
		if a.TxID != b.TxID {
			return a.TxID < b.TxID
		}
		return a.Index < b.Index
	})
	return result
}

// ResetBlocksFrom returns reset copies of the blocks at or above fromHeight,
// as served to lite nodes.
func (s *ChainState) ResetBlocksFrom(fromHeight uint64) []model.Block {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]model.Block, 0)
	for _, block := range s.blocks {
		if block.Height >= fromHeight {
			result = append(result, block.Reset())
		}
	}
	return result
}
