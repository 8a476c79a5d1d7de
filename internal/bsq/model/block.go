// Package model holds the immutable records the ledger is built from.
package model

import "time"

// OutPoint identifies a transaction output.
type OutPoint struct {
	TxID  string
	Index uint32
}

// TxInput references the output it spends.
type TxInput struct {
	PrevTxID  string
	PrevIndex uint32
}

// OutPoint returns the key of the spent output.
func (in TxInput) OutPoint() OutPoint {
	return OutPoint{TxID: in.PrevTxID, Index: in.PrevIndex}
}

// TxOutput is one output of a host-chain transaction.
type TxOutput struct {
	TxID         string
	Index        uint32
	Value        uint64
	Addresses    []string
	ScriptType   string
	ScriptHex    string
	OpReturnData []byte
	BlockHeight  uint64
}

// OutPoint returns the key of the output.
func (o TxOutput) OutPoint() OutPoint {
	return OutPoint{TxID: o.TxID, Index: o.Index}
}

// IsOpReturn reports whether the output is a null-data output.
func (o TxOutput) IsOpReturn() bool {
	return o.ScriptType == ScriptTypeNullData
}

// Clone returns a copy that shares no slices with o.
func (o TxOutput) Clone() TxOutput {
	c := o
	if o.Addresses != nil {
		c.Addresses = append([]string(nil), o.Addresses...)
	}
	if o.OpReturnData != nil {
		c.OpReturnData = append([]byte(nil), o.OpReturnData...)
	}
	return c
}

// ScriptTypeNullData is the script class of OP_RETURN outputs.
const ScriptTypeNullData = "nulldata"

// Tx is a host-chain transaction.
type Tx struct {
	ID          string
	BlockHeight uint64
	Timestamp   time.Time
	Inputs      []TxInput
	Outputs     []TxOutput
}

// Clone returns a deep copy of the transaction.
func (t Tx) Clone() Tx {
	c := t
	if t.Inputs != nil {
		c.Inputs = append([]TxInput(nil), t.Inputs...)
	}
	if t.Outputs != nil {
		c.Outputs = make([]TxOutput, len(t.Outputs))
		for i, out := range t.Outputs {
			c.Outputs[i] = out.Clone()
		}
	}
	return c
}

// Block is a host-chain block. Blocks returned by the parser only carry
// token transactions.
type Block struct {
	Height       uint64
	Hash         string
	PreviousHash string
	Timestamp    time.Time
	Txs          []Tx
}

// Clone returns a deep copy of the block.
func (b Block) Clone() Block {
	c := b
	if b.Txs != nil {
		c.Txs = make([]Tx, len(b.Txs))
		for i, tx := range b.Txs {
			c.Txs[i] = tx.Clone()
		}
	}
	return c
}

// Reset returns an independent copy of the block holding only raw chain
// data. Blocks received from peers go through Reset before they are parsed
// so every classification is derived locally.
func (b Block) Reset() Block {
	c := b.Clone()
	for i := range c.Txs {
		tx := &c.Txs[i]
		tx.BlockHeight = b.Height
		for j := range tx.Outputs {
			tx.Outputs[j].TxID = tx.ID
			tx.Outputs[j].Index = uint32(j)
			tx.Outputs[j].BlockHeight = b.Height
		}
	}
	return c
}

// SpendInfo records where a token output was spent.
type SpendInfo struct {
	BlockHeight uint64
	TxID        string
	InputIndex  uint32
}

// TxType is the token classification of a transaction.
type TxType string

const (
	TxTypeUndefined   TxType = ""
	TxTypeGenesis     TxType = "GENESIS"
	TxTypeTransferBSQ TxType = "TRANSFER_BSQ"
	TxTypePayTradeFee TxType = "PAY_TRADE_FEE"
)
