package parser

import (
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/model"
	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/state"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	ChainState interface {
		ValidateConnection(block model.Block) error
		SpendableOutput(op model.OutPoint) (model.TxOutput, bool)
		ApplyBlock(block model.Block, update state.BlockUpdate) error
	}
)
