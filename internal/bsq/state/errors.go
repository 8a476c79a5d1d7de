package state

import (
	"errors"
	"fmt"
)

var (
	// ErrOrphanBlock marks a block whose previous hash is not the chain tip.
	ErrOrphanBlock        = errors.New("block does not connect to chain tip")
	ErrInvariantViolation = errors.New("chain state invariant violation")
	ErrOutputAlreadySpent = errors.New("output already spent")
	ErrFeeNotSet          = errors.New("no fee set for height")
	ErrInvalidSnapshot    = errors.New("invalid snapshot")
)

// BlockNotConnectingError describes a block that does not extend the chain tip.
type BlockNotConnectingError struct {
	Height       uint64
	Hash         string
	PreviousHash string
	HeadHeight   uint64
	HeadHash     string
}

func (e *BlockNotConnectingError) Error() string {
	return fmt.Sprintf("block %s at height %d has previous hash %s, chain tip is %s at height %d",
		e.Hash, e.Height, e.PreviousHash, e.HeadHash, e.HeadHeight)
}

func (e *BlockNotConnectingError) Is(target error) bool {
	return target == ErrOrphanBlock
}

// RequiresRecovery reports whether err is resolved by replaying the chain
// from the last persisted snapshot.
func RequiresRecovery(err error) bool {
	return errors.Is(err, ErrOrphanBlock) || errors.Is(err, ErrInvariantViolation)
}
