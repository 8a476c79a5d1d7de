package state

import (
	"fmt"
	"sort"
)

// FeeAtHeight is a fee that applies from Height onwards.
type FeeAtHeight struct {
	Fee    uint64
	Height uint64
}

// SetCompensationRequestFee schedules fee from height onwards. New seeds the
// network default at the genesis height; the host adds later changes.
func (s *ChainState) SetCompensationRequestFee(fee, height uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.compensationRequestFees = setFee(s.compensationRequestFees, fee, height)
}

// CompensationRequestFee returns the fee in effect at blockHeight.
func (s *ChainState) CompensationRequestFee(blockHeight uint64) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return feeAt(s.compensationRequestFees, blockHeight, "compensation request")
}

// SetVotingFee schedules fee from height onwards.
func (s *ChainState) SetVotingFee(fee, height uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.votingFees = setFee(s.votingFees, fee, height)
}

// VotingFee returns the fee in effect at blockHeight.
func (s *ChainState) VotingFee(blockHeight uint64) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return feeAt(s.votingFees, blockHeight, "voting")
}

// setFee keeps fees sorted by height; a fee at an existing height replaces it.
func setFee(fees []FeeAtHeight, fee, height uint64) []FeeAtHeight {
	i := sort.Search(len(fees), func(i int) bool { return fees[i].Height >= height })
	if i < len(fees) && fees[i].Height == height {
		fees[i].Fee = fee
		return fees
	}
	fees = append(fees, FeeAtHeight{})
	copy(fees[i+1:], fees[i:])
	fees[i] = FeeAtHeight{Fee: fee, Height: height}
	return fees
}

func feeAt(fees []FeeAtHeight, blockHeight uint64, kind string) (uint64, error) {
	i := sort.Search(len(fees), func(i int) bool { return fees[i].Height > blockHeight })
	if i == 0 {
		return 0, fmt.Errorf("%w: %s fee at height %d", ErrFeeNotSet, kind, blockHeight)
	}
	return fees[i-1].Fee, nil
}
