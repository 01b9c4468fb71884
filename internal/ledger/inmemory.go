package ledger

import (
	"context"
	"sync"
)

type inMemoryLedger struct {
	mu       sync.RWMutex
	holdings map[string]map[int64]int64
	supply   map[int64]int64
}

// NewInMemory creates a concurrency-safe in-memory ledger useful for unit
// tests and dev mode.
func NewInMemory() Ledger {
	return &inMemoryLedger{
		holdings: make(map[string]map[int64]int64),
		supply:   make(map[int64]int64),
	}
}

func (l *inMemoryLedger) Mint(_ context.Context, account string, itemID, amount int64) error {
	if amount <= 0 {
		return ErrAmountNotPositive
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.credit(account, itemID, amount)
	return nil
}

func (l *inMemoryLedger) MintBatch(_ context.Context, account string, itemIDs, amounts []int64) error {
	if len(itemIDs) != len(amounts) {
		return ErrLengthMismatch
	}
	for _, amount := range amounts {
		if amount <= 0 {
			return ErrAmountNotPositive
		}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Validation is complete; nothing below can fail, so the batch applies
	// all-or-nothing.
	for i, id := range itemIDs {
		l.credit(account, id, amounts[i])
	}
	return nil
}

func (l *inMemoryLedger) BalanceOf(_ context.Context, account string, itemID int64) (int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.holdings[account][itemID], nil
}

func (l *inMemoryLedger) Exists(_ context.Context, itemID int64) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, exists := l.supply[itemID]
	return exists, nil
}

func (l *inMemoryLedger) TotalSupply(_ context.Context, itemID int64) (int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.supply[itemID], nil
}

// credit assumes l.mu is held for writing.
func (l *inMemoryLedger) credit(account string, itemID, amount int64) {
	balances, ok := l.holdings[account]
	if !ok {
		balances = make(map[int64]int64)
		l.holdings[account] = balances
	}
	balances[itemID] += amount
	l.supply[itemID] += amount
}
