package access

import (
	"context"

	"github.com/reward-forge/reward_forge/internal/events"
	"github.com/reward-forge/reward_forge/internal/guard"
)

// Service enforces owner and whitelist rules for the issuance platform.
type Service struct {
	owner   string
	repo    Repository
	emitter events.Emitter
	region  *guard.Region
}

// NewService builds an access service for the given owner principal.
func NewService(owner string, repo Repository, emitter events.Emitter, region *guard.Region) *Service {
	return &Service{owner: owner, repo: repo, emitter: emitter, region: region}
}

// Init installs the deployment state: the owner is pre-whitelisted and
// minting starts enabled. Safe to call on every boot.
func (s *Service) Init(ctx context.Context) error {
	return s.repo.Seed(ctx, s.owner)
}

// Owner returns the owner principal fixed at construction.
func (s *Service) Owner() string {
	return s.owner
}

// IsOwner reports whether the caller is the owner principal.
func (s *Service) IsOwner(caller string) bool {
	return caller == s.owner
}

// IsWhitelisted reports whether the caller may perform issuance operations.
func (s *Service) IsWhitelisted(ctx context.Context, caller string) (bool, error) {
	return s.repo.IsWhitelisted(ctx, caller)
}

// MintEnabled reads the process-wide minting gate.
func (s *Service) MintEnabled(ctx context.Context) (bool, error) {
	return s.repo.MintEnabled(ctx)
}

// AddWhitelisted grants issuance rights to target. Owner only; fails when the
// target is already whitelisted.
func (s *Service) AddWhitelisted(ctx context.Context, caller, target string) error {
	return s.region.Do(func() error {
		if !s.IsOwner(caller) {
			return ErrNotOwner
		}
		whitelisted, err := s.repo.IsWhitelisted(ctx, target)
		if err != nil {
			return err
		}
		if whitelisted {
			return ErrAlreadyWhitelisted
		}
		if err := s.repo.SetWhitelisted(ctx, target, true); err != nil {
			return err
		}
		s.emit(ctx, events.KindWhitelistAdded, caller, map[string]any{"principal": target})
		return nil
	})
}

// RemoveWhitelisted revokes issuance rights from target. Owner only; fails
// when the target is not currently whitelisted.
func (s *Service) RemoveWhitelisted(ctx context.Context, caller, target string) error {
	return s.region.Do(func() error {
		if !s.IsOwner(caller) {
			return ErrNotOwner
		}
		whitelisted, err := s.repo.IsWhitelisted(ctx, target)
		if err != nil {
			return err
		}
		if !whitelisted {
			return ErrNotWhitelisted
		}
		if err := s.repo.SetWhitelisted(ctx, target, false); err != nil {
			return err
		}
		s.emit(ctx, events.KindWhitelistRemoved, caller, map[string]any{"principal": target})
		return nil
	})
}

// SetMintEnabled toggles the minting gate. Owner only. Setting the current
// value again succeeds and still emits a status event.
func (s *Service) SetMintEnabled(ctx context.Context, caller string, enabled bool) error {
	return s.region.Do(func() error {
		if !s.IsOwner(caller) {
			return ErrNotOwner
		}
		if err := s.repo.SetMintEnabled(ctx, enabled); err != nil {
			return err
		}
		s.emit(ctx, events.KindMintStatusChanged, caller, map[string]any{"enabled": enabled})
		return nil
	})
}

// emit is best effort: a failing emitter must not roll back a committed
// mutation.
func (s *Service) emit(ctx context.Context, kind, caller string, data map[string]any) {
	if s.emitter == nil {
		return
	}
	_ = s.emitter.Emit(ctx, events.New(kind, caller, data))
}
