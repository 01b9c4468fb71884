package holdings

import (
	"context"

	"github.com/reward-forge/reward_forge/internal/issuance"
	"github.com/reward-forge/reward_forge/internal/ledger"
)

// Service answers read-only holdings queries against the ledger.
type Service struct {
	ledger  ledger.Ledger
	counter issuance.CounterStore
}

// NewService constructs a holdings query service.
func NewService(led ledger.Ledger, counter issuance.CounterStore) *Service {
	return &Service{ledger: led, counter: counter}
}

// HoldingsOf returns the account's nonzero balance values for item ids in
// the inclusive range [1, ids counter], ascending by id, zero balances
// skipped. The counter is the issuance accumulator, so the scanned range can
// under- or overshoot the real id space; the values returned are balances,
// not item ids.
func (s *Service) HoldingsOf(ctx context.Context, account string) ([]int64, error) {
	upper, err := s.counter.Value(ctx)
	if err != nil {
		return nil, err
	}

	// First pass: size the result.
	count := 0
	for id := int64(1); id <= upper; id++ {
		balance, err := s.ledger.BalanceOf(ctx, account, id)
		if err != nil {
			return nil, err
		}
		if balance > 0 {
			count++
		}
	}

	// Second pass: fill a result of exactly that size.
	result := make([]int64, count)
	i := 0
	for id := int64(1); id <= upper; id++ {
		balance, err := s.ledger.BalanceOf(ctx, account, id)
		if err != nil {
			return nil, err
		}
		if balance > 0 {
			result[i] = balance
			i++
		}
	}
	return result, nil
}

// BalanceOf returns the account's balance for a single item id.
func (s *Service) BalanceOf(ctx context.Context, account string, itemID int64) (int64, error) {
	return s.ledger.BalanceOf(ctx, account, itemID)
}

// ItemSupply returns the cumulative minted supply of an item id, failing when
// the id was never minted.
func (s *Service) ItemSupply(ctx context.Context, itemID int64) (int64, error) {
	exists, err := s.ledger.Exists(ctx, itemID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, issuance.ErrItemNotFound
	}
	return s.ledger.TotalSupply(ctx, itemID)
}
