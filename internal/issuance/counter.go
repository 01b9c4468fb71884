package issuance

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const idsCounterSetting = "ids_counter"

// CounterStore persists the running ids accumulator. The holdings query
// service consumes it as the upper bound of its id range scan.
type CounterStore interface {
	Value(ctx context.Context) (int64, error)
	Add(ctx context.Context, delta int64) error
}

// PostgresCounter stores the accumulator in the settings table.
type PostgresCounter struct {
	db *pgxpool.Pool
}

// NewPostgresCounter builds a counter store backed by PostgreSQL.
func NewPostgresCounter(db *pgxpool.Pool) *PostgresCounter {
	return &PostgresCounter{db: db}
}

// Value reads the current accumulator, zero when never written.
func (c *PostgresCounter) Value(ctx context.Context) (int64, error) {
	var value string
	err := c.db.QueryRow(ctx, `SELECT value FROM settings WHERE name = $1`, idsCounterSetting).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(value, 10, 64)
}

// Add raises the accumulator by delta.
func (c *PostgresCounter) Add(ctx context.Context, delta int64) error {
	_, err := c.db.Exec(ctx, `INSERT INTO settings (name, value) VALUES ($1, $2::text)
        ON CONFLICT (name) DO UPDATE SET value = (settings.value::bigint + $2)::text`, idsCounterSetting, delta)
	return err
}

type memoryCounter struct {
	mu    sync.RWMutex
	value int64
}

// NewMemoryCounter constructs an in-memory counter store for tests and dev mode.
func NewMemoryCounter() CounterStore {
	return &memoryCounter{}
}

func (c *memoryCounter) Value(_ context.Context) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value, nil
}

func (c *memoryCounter) Add(_ context.Context, delta int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value += delta
	return nil
}
