package issuance

import (
	"context"
	"fmt"

	"github.com/reward-forge/reward_forge/internal/access"
	"github.com/reward-forge/reward_forge/internal/events"
	"github.com/reward-forge/reward_forge/internal/guard"
	"github.com/reward-forge/reward_forge/internal/ledger"
)

// Service executes mint operations against the ledger under the whitelist
// and mint-enabled guards. Every entry point validates fully before touching
// any state, so a failed call leaves no trace.
type Service struct {
	ledger  ledger.Ledger
	access  *access.Service
	counter CounterStore
	emitter events.Emitter
	region  *guard.Region
}

// NewService constructs an issuance service.
func NewService(led ledger.Ledger, acc *access.Service, counter CounterStore, emitter events.Emitter, region *guard.Region) *Service {
	return &Service{ledger: led, access: acc, counter: counter, emitter: emitter, region: region}
}

// MintSingle creates a brand new item id and credits amount units to the
// recipient. The id can never be created again; later supply increases go
// through IncreaseExisting. Returns the minted id.
//
// The ids accumulator grows by the id value itself on this path.
func (s *Service) MintSingle(ctx context.Context, caller string, itemID, amount int64, recipient string) (int64, error) {
	err := s.region.Do(func() error {
		if err := s.authorize(ctx, caller); err != nil {
			return err
		}
		if amount <= 0 {
			return ErrAmountNotPositive
		}
		exists, err := s.ledger.Exists(ctx, itemID)
		if err != nil {
			return err
		}
		if exists {
			return ErrItemExists
		}

		if err := s.ledger.Mint(ctx, recipient, itemID, amount); err != nil {
			return err
		}
		if err := s.counter.Add(ctx, itemID); err != nil {
			return err
		}
		s.emit(ctx, events.KindSingleMint, caller, map[string]any{
			"item_id":   itemID,
			"amount":    amount,
			"recipient": recipient,
		})
		return nil
	})
	if err != nil {
		return 0, err
	}
	return itemID, nil
}

// MintBatch creates several new item ids and credits them to one recipient as
// a single ledger batch. Every index is validated before any unit is minted.
// The ids and amounts slices are not length-checked here; a mismatch surfaces
// as the ledger's batch contract error.
//
// The ids accumulator grows by the number of ids on this path.
func (s *Service) MintBatch(ctx context.Context, caller string, itemIDs, amounts []int64, recipient string) error {
	return s.region.Do(func() error {
		if err := s.authorize(ctx, caller); err != nil {
			return err
		}
		if err := s.validateNewItems(ctx, itemIDs, amounts); err != nil {
			return err
		}

		if err := s.ledger.MintBatch(ctx, recipient, itemIDs, amounts); err != nil {
			return err
		}
		if err := s.counter.Add(ctx, int64(len(itemIDs))); err != nil {
			return err
		}
		s.emit(ctx, events.KindBatchMint, caller, map[string]any{
			"item_ids":  itemIDs,
			"amounts":   amounts,
			"recipient": recipient,
		})
		return nil
	})
}

// MintBatchMulti creates several new item ids, each credited to its own
// recipient. Requires equal ids/recipients lengths. Returns the minted ids.
//
// The ids accumulator grows by the number of ids on this path.
func (s *Service) MintBatchMulti(ctx context.Context, caller string, itemIDs []int64, recipients []string, amounts []int64) ([]int64, error) {
	err := s.region.Do(func() error {
		if err := s.authorize(ctx, caller); err != nil {
			return err
		}
		if len(itemIDs) != len(recipients) {
			return fmt.Errorf("%w: %d ids, %d recipients", errBatchShape, len(itemIDs), len(recipients))
		}
		if len(itemIDs) != len(amounts) {
			return fmt.Errorf("%w: %d ids, %d amounts", errBatchShape, len(itemIDs), len(amounts))
		}
		if err := s.validateNewItems(ctx, itemIDs, amounts); err != nil {
			return err
		}

		for i, id := range itemIDs {
			if err := s.ledger.Mint(ctx, recipients[i], id, amounts[i]); err != nil {
				return err
			}
		}
		if err := s.counter.Add(ctx, int64(len(itemIDs))); err != nil {
			return err
		}
		s.emit(ctx, events.KindBatchMultiMint, caller, map[string]any{
			"item_ids":   itemIDs,
			"amounts":    amounts,
			"recipients": recipients,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return itemIDs, nil
}

// IncreaseExisting mints more units of an already created item id to the
// account. The inverse of the creation paths: the id must exist.
func (s *Service) IncreaseExisting(ctx context.Context, caller, account string, itemID, amount int64) error {
	return s.region.Do(func() error {
		if err := s.authorize(ctx, caller); err != nil {
			return err
		}
		if amount <= 0 {
			return ErrAmountNotPositive
		}
		exists, err := s.ledger.Exists(ctx, itemID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrItemNotFound
		}

		if err := s.ledger.Mint(ctx, account, itemID, amount); err != nil {
			return err
		}
		s.emit(ctx, events.KindSupplyIncrease, caller, map[string]any{
			"item_id": itemID,
			"amount":  amount,
			"account": account,
		})
		return nil
	})
}

// authorize applies the shared entry guard: whitelist membership first, then
// the mint-enabled gate, before any per-item validation.
func (s *Service) authorize(ctx context.Context, caller string) error {
	whitelisted, err := s.access.IsWhitelisted(ctx, caller)
	if err != nil {
		return err
	}
	if !whitelisted {
		return access.ErrNotWhitelisted
	}
	enabled, err := s.access.MintEnabled(ctx)
	if err != nil {
		return err
	}
	if !enabled {
		return ErrMintingDisabled
	}
	return nil
}

// validateNewItems walks the batch index by index: the id must be brand new
// and its amount strictly positive. Amounts beyond the ids slice are left for
// the ledger's batch length contract to reject.
func (s *Service) validateNewItems(ctx context.Context, itemIDs, amounts []int64) error {
	for i, id := range itemIDs {
		exists, err := s.ledger.Exists(ctx, id)
		if err != nil {
			return err
		}
		if exists {
			return ErrItemExists
		}
		if i < len(amounts) && amounts[i] <= 0 {
			return ErrAmountNotPositive
		}
	}
	return nil
}

// emit is best effort: a failing emitter must not roll back a committed mint.
func (s *Service) emit(ctx context.Context, kind, caller string, data map[string]any) {
	if s.emitter == nil {
		return
	}
	_ = s.emitter.Emit(ctx, events.New(kind, caller, data))
}
