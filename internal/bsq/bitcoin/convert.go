// Package bitcoin reads raw blocks from a bitcoind node over JSON-RPC.
package bitcoin

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/model"
	"github.com/goodnatureofminers/bsq-ledger/pkg/safe"
)

// BtcToSatoshis converts BTC amount to satoshis with overflow checks.
func BtcToSatoshis(value float64) (uint64, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return safe.Uint64(int64(amt))
}

type blockConverter struct {
	decoder *scriptDecoder
}

func (c *blockConverter) convert(src btcjson.GetBlockVerboseTxResult) (model.Block, error) {
	height, err := safe.Uint64(src.Height)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %s height: %w", src.Hash, err)
	}
	timestamp := time.Unix(src.Time, 0).UTC()

	block := model.Block{
		Height:       height,
		Hash:         src.Hash,
		PreviousHash: src.PreviousHash,
		Timestamp:    timestamp,
		Txs:          make([]model.Tx, 0, len(src.Tx)),
	}
	for _, rawTx := range src.Tx {
		tx, err := c.convertTx(rawTx, height, timestamp)
		if err != nil {
			return model.Block{}, fmt.Errorf("block %d: %w", height, err)
		}
		block.Txs = append(block.Txs, tx)
	}
	return block, nil
}

func (c *blockConverter) convertTx(src btcjson.TxRawResult, height uint64, timestamp time.Time) (model.Tx, error) {
	tx := model.Tx{
		ID:          src.Txid,
		BlockHeight: height,
		Timestamp:   timestamp,
		Inputs:      make([]model.TxInput, 0, len(src.Vin)),
		Outputs:     make([]model.TxOutput, 0, len(src.Vout)),
	}
	for _, vin := range src.Vin {
		if vin.IsCoinBase() {
			continue
		}
		tx.Inputs = append(tx.Inputs, model.TxInput{PrevTxID: vin.Txid, PrevIndex: vin.Vout})
	}

	for idx, vout := range src.Vout {
		index, err := safe.Uint32(idx)
		if err != nil {
			return model.Tx{}, fmt.Errorf("tx %s output index overflow: %w", src.Txid, err)
		}
		value, err := BtcToSatoshis(vout.Value)
		if err != nil {
			return model.Tx{}, fmt.Errorf("tx %s output %d value: %w", src.Txid, idx, err)
		}
		script, err := c.decoder.decode(vout.ScriptPubKey)
		if err != nil {
			return model.Tx{}, fmt.Errorf("tx %s output %d script: %w", src.Txid, idx, err)
		}

		tx.Outputs = append(tx.Outputs, model.TxOutput{
			TxID:         src.Txid,
			Index:        index,
			Value:        value,
			Addresses:    script.addresses,
			ScriptType:   script.class,
			ScriptHex:    vout.ScriptPubKey.Hex,
			OpReturnData: script.opReturn,
			BlockHeight:  height,
		})
	}
	return tx, nil
}
