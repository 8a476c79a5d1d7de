// Package parser classifies the transactions of a block into token
// transactions and commits the result to the chain state.
package parser

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/model"
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/params"
	"go.uber.org/zap"
)

// ErrClassificationOverflow is returned when the in-block dependencies of a
// block cannot be resolved within the round bound.
var ErrClassificationOverflow = errors.New("transaction classification overflow")

const deepRecursionWarning = 1000

// Parser turns raw blocks into token blocks.
type Parser struct {
	logger             *zap.Logger
	state              ChainState
	genesisTxID        string
	genesisBlockHeight uint64
	maxRecursion       int
}

// New builds a Parser bound to a chain state.
func New(chainState ChainState, p params.Params, logger *zap.Logger) (*Parser, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("parser params: %w", err)
	}
	return &Parser{
		logger:             logger.Named("parser"),
		state:              chainState,
		genesisTxID:        p.GenesisTxID,
		genesisBlockHeight: p.GenesisBlockHeight,
		maxRecursion:       p.MaxRecursion,
	}, nil
}

// ParseBlock classifies raw and appends the resulting token block to the
// chain state. A block that does not extend the chain tip yields an error
// matching state.ErrOrphanBlock and leaves the state untouched.
func (p *Parser) ParseBlock(raw model.Block) (model.Block, error) {
	if err := p.state.ValidateConnection(raw); err != nil {
		return model.Block{}, err
	}

	raw = raw.Reset()
	ws := newWorkingSet(p.state, raw.Height)
	tokenTxs := make([]model.Tx, 0)
	pending := make([]model.Tx, 0, len(raw.Txs))
	for _, tx := range raw.Txs {
		if raw.Height == p.genesisBlockHeight && tx.ID == p.genesisTxID {
			ws.applyGenesis(tx)
			tokenTxs = append(tokenTxs, tx)
			continue
		}
		pending = append(pending, tx)
	}

	rounds := 0
	for len(pending) > 0 {
		rounds++
		if rounds > p.maxRecursion {
			return model.Block{}, fmt.Errorf("%w: block %d has %d unresolved txs after %d rounds",
				ErrClassificationOverflow, raw.Height, len(pending), p.maxRecursion)
		}

		independent, dependent := partition(pending)
		if len(independent) == 0 {
			return model.Block{}, fmt.Errorf("%w: block %d has %d txs with circular inputs",
				ErrClassificationOverflow, raw.Height, len(dependent))
		}
		for _, tx := range independent {
			if ws.classify(tx) {
				tokenTxs = append(tokenTxs, tx)
			}
		}
		pending = dependent
	}
	if rounds > deepRecursionWarning {
		p.logger.Warn("deep in-block dependency chain",
			zap.Uint64("height", raw.Height),
			zap.Int("rounds", rounds),
		)
	}

	block := model.Block{
		Height:       raw.Height,
		Hash:         raw.Hash,
		PreviousHash: raw.PreviousHash,
		Timestamp:    raw.Timestamp,
		Txs:          tokenTxs,
	}
	if err := p.state.ApplyBlock(block, ws.update()); err != nil {
		return model.Block{}, err
	}

	p.logger.Debug("block parsed",
		zap.Uint64("height", block.Height),
		zap.Int("txs", len(raw.Txs)),
		zap.Int("tokenTxs", len(tokenTxs)),
		zap.Int("rounds", rounds),
	)
	return block, nil
}

// partition splits txs into those spending no output of another tx in txs
// and those that do. Both keep the input order.
func partition(txs []model.Tx) (independent, dependent []model.Tx) {
	ids := make(map[string]struct{}, len(txs))
	for _, tx := range txs {
		ids[tx.ID] = struct{}{}
	}

	for _, tx := range txs {
		if spendsFrom(tx, ids) {
			dependent = append(dependent, tx)
		} else {
			independent = append(independent, tx)
		}
	}
	return independent, dependent
}

func spendsFrom(tx model.Tx, ids map[string]struct{}) bool {
	for _, in := range tx.Inputs {
		if _, ok := ids[in.PrevTxID]; ok {
			return true
		}
	}
	return false
}
