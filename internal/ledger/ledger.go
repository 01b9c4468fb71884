package ledger

import (
	"context"
	"errors"
)

var (
	// ErrLengthMismatch occurs when a batch mint receives id and amount
	// slices of different lengths.
	ErrLengthMismatch = errors.New("ids and amounts length mismatch")

	// ErrAmountNotPositive occurs when a mint is requested for zero or a
	// negative number of units.
	ErrAmountNotPositive = errors.New("amount must be above zero")
)

// Ledger defines the multi-asset balance contract implemented by ledger
// backends (e.g. Postgres). Balances are keyed by (account, item id); an item
// exists once any unit of it has ever been minted and existence never
// reverts, even if balances later drain to zero.
type Ledger interface {
	Mint(ctx context.Context, account string, itemID, amount int64) error
	MintBatch(ctx context.Context, account string, itemIDs, amounts []int64) error
	BalanceOf(ctx context.Context, account string, itemID int64) (int64, error)
	Exists(ctx context.Context, itemID int64) (bool, error)
	TotalSupply(ctx context.Context, itemID int64) (int64, error)
}
