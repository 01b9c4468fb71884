package metadata

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const baseLocatorSetting = "base_locator"

// LocatorStore persists the metadata base locator.
type LocatorStore interface {
	BaseLocator(ctx context.Context) (string, error)
	SetBaseLocator(ctx context.Context, locator string) error
	// Seed installs the default locator without touching an existing value.
	Seed(ctx context.Context, locator string) error
}

// PostgresStore keeps the base locator in the settings table.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a locator store backed by PostgreSQL.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// BaseLocator reads the current metadata root.
func (s *PostgresStore) BaseLocator(ctx context.Context) (string, error) {
	var value string
	err := s.db.QueryRow(ctx, `SELECT value FROM settings WHERE name = $1`, baseLocatorSetting).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetBaseLocator replaces the metadata root.
func (s *PostgresStore) SetBaseLocator(ctx context.Context, locator string) error {
	_, err := s.db.Exec(ctx, `INSERT INTO settings (name, value) VALUES ($1, $2)
        ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value`, baseLocatorSetting, locator)
	return err
}

// Seed installs the default root only when none is stored yet.
func (s *PostgresStore) Seed(ctx context.Context, locator string) error {
	_, err := s.db.Exec(ctx, `INSERT INTO settings (name, value) VALUES ($1, $2)
        ON CONFLICT (name) DO NOTHING`, baseLocatorSetting, locator)
	return err
}

type memoryStore struct {
	mu      sync.RWMutex
	locator string
	seeded  bool
}

// NewMemoryStore constructs an in-memory locator store for tests and dev mode.
func NewMemoryStore() LocatorStore {
	return &memoryStore{}
}

func (s *memoryStore) BaseLocator(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.locator, nil
}

func (s *memoryStore) SetBaseLocator(_ context.Context, locator string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locator = locator
	s.seeded = true
	return nil
}

func (s *memoryStore) Seed(_ context.Context, locator string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.seeded {
		return nil
	}
	s.locator = locator
	s.seeded = true
	return nil
}
