// Package params holds the per-network ledger constants.
package params

import (
	"fmt"
	"strings"

	"github.com/goodnatureofminers/bsq-ledger/internal/bsq/model"
)

const (
	DefaultSnapshotGrid uint64 = 100
	DefaultMaxRecursion        = 5300

	// Fees are in token satoshis and apply from the genesis height until the
	// host schedules a change.
	DefaultCompensationRequestFee uint64 = 10_000
	DefaultVotingFee              uint64 = 10_000
)

// Params configures the ledger for one host network.
type Params struct {
	Network            model.Network
	GenesisTxID        string
	GenesisBlockHeight uint64
	SnapshotGrid       uint64
	MaxRecursion       int

	// CompensationRequestFee and VotingFee seed the fee schedules at
	// GenesisBlockHeight. Zero leaves the schedule empty.
	CompensationRequestFee uint64
	VotingFee              uint64
}

var (
	MainNetParams = Params{
		Network:            model.Mainnet,
		GenesisTxID:        "e5c8313c4144d219b5f6b2dacf1d36f2d43a9039bb2fcd1bd57f8352a9c9809a",
		GenesisBlockHeight: 477865,
		SnapshotGrid:       DefaultSnapshotGrid,
		MaxRecursion:       DefaultMaxRecursion,

		CompensationRequestFee: DefaultCompensationRequestFee,
		VotingFee:              DefaultVotingFee,
	}
	TestNetParams = Params{
		Network:            model.Testnet,
		GenesisTxID:        "e360c3c77f43d53cbbf3dc8064c888a10310930a6427770ce4c8ead388edf17c",
		GenesisBlockHeight: 1119668,
		SnapshotGrid:       DefaultSnapshotGrid,
		MaxRecursion:       DefaultMaxRecursion,

		CompensationRequestFee: DefaultCompensationRequestFee,
		VotingFee:              DefaultVotingFee,
	}
	RegTestParams = Params{
		Network:            model.Regtest,
		GenesisTxID:        "389d631bb48bd2f74fcc88c3506e2b03114b18b4e396c3bd2b8bb7d7ff9ee0d6",
		GenesisBlockHeight: 1441,
		SnapshotGrid:       DefaultSnapshotGrid,
		MaxRecursion:       DefaultMaxRecursion,

		CompensationRequestFee: DefaultCompensationRequestFee,
		VotingFee:              DefaultVotingFee,
	}
)

// ForNetwork returns the constants of a known network.
func ForNetwork(network model.Network) (Params, error) {
	switch strings.ToLower(string(network)) {
	case "main", "mainnet", "bitcoin":
		return MainNetParams, nil
	case "testnet", "testnet3":
		return TestNetParams, nil
	case "regtest":
		return RegTestParams, nil
	default:
		return Params{}, fmt.Errorf("unsupported network %q", network)
	}
}

// Validate checks that the constants are usable.
func (p Params) Validate() error {
	if p.GenesisTxID == "" {
		return fmt.Errorf("genesis tx id is required")
	}
	if p.SnapshotGrid == 0 {
		return fmt.Errorf("snapshot grid must be positive")
	}
	if p.MaxRecursion <= 0 {
		return fmt.Errorf("max recursion must be positive")
	}
	return nil
}
