package snapshot

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/model"
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/state"
	"github.com/klauspost/compress/zstd"
)

const documentVersion = 1

var (
	encoder, _ = zstd.NewWriter(nil)
	decoder, _ = zstd.NewReader(nil)
)

type document struct {
	Version                 int                     `json:"version"`
	GenesisTxID             string                  `json:"genesisTxId"`
	GenesisBlockHeight      uint64                  `json:"genesisBlockHeight"`
	ChainHeadHeight         uint64                  `json:"chainHeadHeight"`
	GenesisTx               *model.Tx               `json:"genesisTx,omitempty"`
	Blocks                  []model.Block           `json:"blocks"`
	Txs                     []model.Tx              `json:"txs"`
	TxTypes                 map[string]model.TxType `json:"txTypes"`
	VerifiedOutputs         []model.TxOutput        `json:"verifiedOutputs"`
	SpendInfos              []spendRecord           `json:"spendInfos"`
	BurntFees               map[string]uint64       `json:"burntFees"`
	CompensationRequestFees []state.FeeAtHeight     `json:"compensationRequestFees"`
	VotingFees              []state.FeeAtHeight     `json:"votingFees"`
}

type spendRecord struct {
	Output model.OutPoint  `json:"output"`
	Spend  model.SpendInfo `json:"spend"`
}

// Encode serializes a snapshot into a compressed, deterministic document.
func Encode(snap *state.Snapshot) ([]byte, error) {
	if snap == nil {
		return nil, fmt.Errorf("encode snapshot: nil snapshot")
	}

	doc := document{
		Version:                 documentVersion,
		GenesisTxID:             snap.GenesisTxID,
		GenesisBlockHeight:      snap.GenesisBlockHeight,
		ChainHeadHeight:         snap.ChainHeadHeight,
		GenesisTx:               snap.GenesisTx,
		Blocks:                  snap.Blocks,
		Txs:                     make([]model.Tx, 0, len(snap.Txs)),
		TxTypes:                 snap.TxTypes,
		VerifiedOutputs:         make([]model.TxOutput, 0, len(snap.VerifiedOutputs)),
		SpendInfos:              make([]spendRecord, 0, len(snap.SpendInfos)),
		BurntFees:               snap.BurntFees,
		CompensationRequestFees: snap.CompensationRequestFees,
		VotingFees:              snap.VotingFees,
	}
	for _, tx := range snap.Txs {
		doc.Txs = append(doc.Txs, tx)
	}
	sort.Slice(doc.Txs, func(i, j int) bool { return doc.Txs[i].ID < doc.Txs[j].ID })

	for _, out := range snap.VerifiedOutputs {
		doc.VerifiedOutputs = append(doc.VerifiedOutputs, out)
	}
	sort.Slice(doc.VerifiedOutputs, func(i, j int) bool {
		return lessOutPoint(doc.VerifiedOutputs[i].OutPoint(), doc.VerifiedOutputs[j].OutPoint())
	})

	for op, info := range snap.SpendInfos {
		doc.SpendInfos = append(doc.SpendInfos, spendRecord{Output: op, Spend: info})
	}
	sort.Slice(doc.SpendInfos, func(i, j int) bool {
		return lessOutPoint(doc.SpendInfos[i].Output, doc.SpendInfos[j].Output)
	})

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return encoder.EncodeAll(raw, make([]byte, 0, len(raw)/4)), nil
}

// Decode restores a snapshot written by Encode.
func Decode(data []byte) (*state.Snapshot, error) {
	raw, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if doc.Version != documentVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", doc.Version)
	}

	snap := &state.Snapshot{
		GenesisTxID:             doc.GenesisTxID,
		GenesisBlockHeight:      doc.GenesisBlockHeight,
		ChainHeadHeight:         doc.ChainHeadHeight,
		GenesisTx:               doc.GenesisTx,
		Blocks:                  doc.Blocks,
		Txs:                     make(map[string]model.Tx, len(doc.Txs)),
		TxTypes:                 make(map[string]model.TxType, len(doc.TxTypes)),
		VerifiedOutputs:         make(map[model.OutPoint]model.TxOutput, len(doc.VerifiedOutputs)),
		SpendInfos:              make(map[model.OutPoint]model.SpendInfo, len(doc.SpendInfos)),
		BurntFees:               make(map[string]uint64, len(doc.BurntFees)),
		CompensationRequestFees: doc.CompensationRequestFees,
		VotingFees:              doc.VotingFees,
	}
	for _, tx := range doc.Txs {
		snap.Txs[tx.ID] = tx
	}
	for id, txType := range doc.TxTypes {
		snap.TxTypes[id] = txType
	}
	for _, out := range doc.VerifiedOutputs {
		snap.VerifiedOutputs[out.OutPoint()] = out
	}
	for _, rec := range doc.SpendInfos {
		snap.SpendInfos[rec.Output] = rec.Spend
	}
	for id, fee := range doc.BurntFees {
		snap.BurntFees[id] = fee
	}
	return snap, nil
}

func lessOutPoint(a, b model.OutPoint) bool {
	if a.TxID != b.TxID {
		return a.TxID < b.TxID
	}
	return a.Index < b.Index
}
