package access

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const mintEnabledSetting = "mint_enabled"

// Repository persists the whitelist and the mint-enabled flag.
type Repository interface {
	IsWhitelisted(ctx context.Context, principal string) (bool, error)
	SetWhitelisted(ctx context.Context, principal string, enabled bool) error
	MintEnabled(ctx context.Context) (bool, error)
	SetMintEnabled(ctx context.Context, enabled bool) error
	// Seed installs the initial deployment state (owner whitelisted,
	// minting enabled) without touching rows that already exist.
	Seed(ctx context.Context, owner string) error
}

// PostgresRepository stores access state in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// IsWhitelisted reports whether the principal is present and enabled.
func (r *PostgresRepository) IsWhitelisted(ctx context.Context, principal string) (bool, error) {
	var enabled bool
	err := r.db.QueryRow(ctx, `SELECT enabled FROM whitelist WHERE principal = $1`, principal).Scan(&enabled)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return enabled, nil
}

// SetWhitelisted upserts the whitelist entry for the principal.
func (r *PostgresRepository) SetWhitelisted(ctx context.Context, principal string, enabled bool) error {
	_, err := r.db.Exec(ctx, `INSERT INTO whitelist (principal, enabled) VALUES ($1, $2)
        ON CONFLICT (principal) DO UPDATE SET enabled = EXCLUDED.enabled`, principal, enabled)
	return err
}

// MintEnabled reads the process-wide minting gate.
func (r *PostgresRepository) MintEnabled(ctx context.Context) (bool, error) {
	var value string
	err := r.db.QueryRow(ctx, `SELECT value FROM settings WHERE name = $1`, mintEnabledSetting).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return strconv.ParseBool(value)
}

// SetMintEnabled stores the minting gate.
func (r *PostgresRepository) SetMintEnabled(ctx context.Context, enabled bool) error {
	_, err := r.db.Exec(ctx, `INSERT INTO settings (name, value) VALUES ($1, $2)
        ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value`, mintEnabledSetting, strconv.FormatBool(enabled))
	return err
}

// Seed whitelists the owner and enables minting unless those rows already exist.
func (r *PostgresRepository) Seed(ctx context.Context, owner string) error {
	if _, err := r.db.Exec(ctx, `INSERT INTO whitelist (principal, enabled) VALUES ($1, TRUE)
        ON CONFLICT (principal) DO NOTHING`, owner); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `INSERT INTO settings (name, value) VALUES ($1, 'true')
        ON CONFLICT (name) DO NOTHING`, mintEnabledSetting)
	return err
}
