package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	// KindMintStatusChanged is emitted when the owner toggles minting.
	KindMintStatusChanged = "mint_status_changed"
	// KindSingleMint is emitted for every single-item mint.
	KindSingleMint = "single_mint"
	// KindBatchMint is emitted for a batch mint to one recipient.
	KindBatchMint = "batch_mint"
	// KindBatchMultiMint is emitted for a batch mint across recipients.
	KindBatchMultiMint = "batch_multi_mint"
	// KindSupplyIncrease is emitted when an existing item gains supply.
	KindSupplyIncrease = "supply_increase"
	// KindLocatorChanged is emitted when the metadata base locator changes.
	KindLocatorChanged = "locator_changed"
	// KindWhitelistAdded is emitted when a principal joins the whitelist.
	KindWhitelistAdded = "whitelist_added"
	// KindWhitelistRemoved is emitted when a principal leaves the whitelist.
	KindWhitelistRemoved = "whitelist_removed"
)

// Event records a successful mutating operation: the kind, the calling
// principal, and the full set of parameters the operation consumed.
type Event struct {
	ID     string
	Kind   string
	Caller string
	At     time.Time
	Data   map[string]any
}

// Emitter delivers events to downstream systems.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// New builds an event for the given kind and caller.
func New(kind, caller string, data map[string]any) Event {
	return Event{
		ID:     uuid.NewString(),
		Kind:   kind,
		Caller: caller,
		At:     time.Now().UTC(),
		Data:   data,
	}
}

// LoggerEmitter writes events to the structured logger.
type LoggerEmitter struct {
	logger *slog.Logger
}

// NewLoggerEmitter constructs a logging emitter.
func NewLoggerEmitter(logger *slog.Logger) *LoggerEmitter {
	return &LoggerEmitter{logger: logger}
}

// Emit writes the event to the structured logger.
func (e *LoggerEmitter) Emit(_ context.Context, event Event) error {
	if e == nil || e.logger == nil {
		return nil
	}
	e.logger.Info("event",
		"event_id", event.ID,
		"kind", event.Kind,
		"caller", event.Caller,
		"data", event.Data,
	)
	return nil
}
