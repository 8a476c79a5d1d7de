package parser

import (
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/model"
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/state"
)

// workingSet overlays the classification results of the block being parsed
// on top of the committed chain state.
type workingSet struct {
	base      ChainState
	height    uint64
	genesis   *model.Tx
	verified  map[model.OutPoint]model.TxOutput
	order     []model.TxOutput
	spends    map[model.OutPoint]model.SpendInfo
	burntFees map[string]uint64
	txTypes   map[string]model.TxType
}

func newWorkingSet(base ChainState, height uint64) *workingSet {
	return &workingSet{
		base:      base,
		height:    height,
		verified:  make(map[model.OutPoint]model.TxOutput),
		spends:    make(map[model.OutPoint]model.SpendInfo),
		burntFees: make(map[string]uint64),
		txTypes:   make(map[string]model.TxType),
	}
}

func (w *workingSet) spendable(op model.OutPoint) (model.TxOutput, bool) {
	if _, spent := w.spends[op]; spent {
		return model.TxOutput{}, false
	}
	if out, ok := w.verified[op]; ok {
		return out, true
	}
	return w.base.SpendableOutput(op)
}

func (w *workingSet) addVerified(out model.TxOutput) {
	op := out.OutPoint()
	if _, ok := w.verified[op]; ok {
		return
	}
	w.verified[op] = out
	w.order = append(w.order, out)
}

func (w *workingSet) applyGenesis(tx model.Tx) {
	for _, out := range tx.Outputs {
		w.addVerified(out)
	}
	w.genesis = &tx
	w.txTypes[tx.ID] = model.TxTypeGenesis
}

// classify applies the coloring rule to tx and reports whether it moves
// tokens. Inputs are paid into outputs in index order; whatever is left is
// burnt.
func (w *workingSet) classify(tx model.Tx) bool {
	var available uint64
	for i, in := range tx.Inputs {
		op := in.OutPoint()
		out, ok := w.spendable(op)
		if !ok {
			continue
		}
		available += out.Value
		w.spends[op] = model.SpendInfo{
			BlockHeight: w.height,
			TxID:        tx.ID,
			InputIndex:  uint32(i),
		}
	}
	if available == 0 {
		return false
	}

	txType := model.TxTypePayTradeFee
	for _, out := range tx.Outputs {
		if available == 0 {
			break
		}
		if out.Value == 0 || out.IsOpReturn() {
			continue
		}
		if available >= out.Value {
			w.addVerified(out)
			available -= out.Value
			txType = model.TxTypeTransferBSQ
		}
	}

	// A tx that moves tokens into any output is a transfer even when it
	// also burns; only a tx burning everything pays a trade fee.
	w.txTypes[tx.ID] = txType
	if available > 0 {
		w.burntFees[tx.ID] = available
	}
	return true
}

func (w *workingSet) update() state.BlockUpdate {
	return state.BlockUpdate{
		GenesisTx:       w.genesis,
		VerifiedOutputs: w.order,
		Spends:          w.spends,
		BurntFees:       w.burntFees,
		TxTypes:         w.txTypes,
	}
}
