package ledger

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLedger persists item balances and supply in PostgreSQL. Every
// mutating call runs inside a single transaction so a failure at any point
// rolls the whole call back.
type PostgresLedger struct {
	db *pgxpool.Pool
}

// NewPostgresLedger constructs a Postgres-backed ledger implementation.
func NewPostgresLedger(db *pgxpool.Pool) *PostgresLedger {
	return &PostgresLedger{db: db}
}

// Mint credits amount units of itemID to account, creating the item row on
// first mint.
func (l *PostgresLedger) Mint(ctx context.Context, account string, itemID, amount int64) error {
	if amount <= 0 {
		return ErrAmountNotPositive
	}

	tx, err := l.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	if err := creditInTx(ctx, tx, account, itemID, amount); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// MintBatch credits every (itemID, amount) pair to account in one
// transaction.
func (l *PostgresLedger) MintBatch(ctx context.Context, account string, itemIDs, amounts []int64) error {
	if len(itemIDs) != len(amounts) {
		return ErrLengthMismatch
	}
	for _, amount := range amounts {
		if amount <= 0 {
			return ErrAmountNotPositive
		}
	}

	tx, err := l.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	for i, id := range itemIDs {
		if err := creditInTx(ctx, tx, account, id, amounts[i]); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// BalanceOf returns the account's balance for the item, zero when the account
// has never held it.
func (l *PostgresLedger) BalanceOf(ctx context.Context, account string, itemID int64) (int64, error) {
	const query = `SELECT COALESCE(SUM(balance), 0) FROM holdings WHERE account = $1 AND item_id = $2`
	var balance int64
	if err := l.db.QueryRow(ctx, query, account, itemID).Scan(&balance); err != nil {
		return 0, err
	}
	return balance, nil
}

// Exists reports whether any unit of the item has ever been minted.
func (l *PostgresLedger) Exists(ctx context.Context, itemID int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM items WHERE id = $1)`
	var exists bool
	if err := l.db.QueryRow(ctx, query, itemID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// TotalSupply returns the cumulative units ever minted of the item.
func (l *PostgresLedger) TotalSupply(ctx context.Context, itemID int64) (int64, error) {
	const query = `SELECT COALESCE(SUM(total_supply), 0) FROM items WHERE id = $1`
	var supply int64
	if err := l.db.QueryRow(ctx, query, itemID).Scan(&supply); err != nil {
		return 0, err
	}
	return supply, nil
}

func creditInTx(ctx context.Context, tx pgx.Tx, account string, itemID, amount int64) error {
	if _, err := tx.Exec(ctx, `INSERT INTO items (id, total_supply) VALUES ($1, $2)
        ON CONFLICT (id) DO UPDATE SET total_supply = items.total_supply + EXCLUDED.total_supply`, itemID, amount); err != nil {
		return err
	}
	_, err := tx.Exec(ctx, `INSERT INTO holdings (account, item_id, balance) VALUES ($1, $2, $3)
        ON CONFLICT (account, item_id) DO UPDATE SET balance = holdings.balance + EXCLUDED.balance`, account, itemID, amount)
	return err
}
