package metadata

import (
	"context"
	"strconv"

	"github.com/reward-forge/reward_forge/internal/access"
	"github.com/reward-forge/reward_forge/internal/events"
	"github.com/reward-forge/reward_forge/internal/guard"
	"github.com/reward-forge/reward_forge/internal/issuance"
	"github.com/reward-forge/reward_forge/internal/ledger"
)

// Service derives per-item metadata locators from the configurable base
// locator.
type Service struct {
	store   LocatorStore
	ledger  ledger.Ledger
	access  *access.Service
	emitter events.Emitter
	region  *guard.Region
}

// NewService constructs a metadata service.
func NewService(store LocatorStore, led ledger.Ledger, acc *access.Service, emitter events.Emitter, region *guard.Region) *Service {
	return &Service{store: store, ledger: led, access: acc, emitter: emitter, region: region}
}

// Init installs the default base locator unless one is already stored.
func (s *Service) Init(ctx context.Context, defaultLocator string) error {
	return s.store.Seed(ctx, defaultLocator)
}

// Resolve returns the metadata locator for an existing item id:
// the current base locator, the decimal id, and a ".json" suffix. Evaluated
// live against the stored locator and ledger state, never cached.
func (s *Service) Resolve(ctx context.Context, itemID int64) (string, error) {
	exists, err := s.ledger.Exists(ctx, itemID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", issuance.ErrItemNotFound
	}

	base, err := s.store.BaseLocator(ctx)
	if err != nil {
		return "", err
	}
	return base + strconv.FormatInt(itemID, 10) + ".json", nil
}

// SetBaseLocator replaces the metadata root. Owner only.
func (s *Service) SetBaseLocator(ctx context.Context, caller, locator string) error {
	return s.region.Do(func() error {
		if !s.access.IsOwner(caller) {
			return access.ErrNotOwner
		}
		if err := s.store.SetBaseLocator(ctx, locator); err != nil {
			return err
		}
		if s.emitter != nil {
			_ = s.emitter.Emit(ctx, events.New(events.KindLocatorChanged, caller, map[string]any{"base_locator": locator}))
		}
		return nil
	})
}
