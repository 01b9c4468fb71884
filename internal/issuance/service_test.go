package issuance

import (
	"context"
	"errors"
	"testing"

	"github.com/reward-forge/reward_forge/internal/access"
	"github.com/reward-forge/reward_forge/internal/events"
	"github.com/reward-forge/reward_forge/internal/guard"
	"github.com/reward-forge/reward_forge/internal/ledger"
)

type captureEmitter struct {
	emitted []events.Event
}

func (e *captureEmitter) Emit(_ context.Context, event events.Event) error {
	e.emitted = append(e.emitted, event)
	return nil
}

type fixture struct {
	svc     *Service
	acc     *access.Service
	led     ledger.Ledger
	counter CounterStore
	emitter *captureEmitter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	region := &guard.Region{}
	emitter := &captureEmitter{}
	led := ledger.NewInMemory()
	counter := NewMemoryCounter()
	acc := access.NewService("owner", access.NewMemoryRepository(), emitter, region)
	if err := acc.Init(context.Background()); err != nil {
		t.Fatalf("init access: %v", err)
	}
	svc := NewService(led, acc, counter, emitter, region)
	return &fixture{svc: svc, acc: acc, led: led, counter: counter, emitter: emitter}
}

func (f *fixture) counterValue(t *testing.T) int64 {
	t.Helper()
	v, err := f.counter.Value(context.Background())
	if err != nil {
		t.Fatalf("counter value: %v", err)
	}
	return v
}

func TestMintSingle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	itemID, err := f.svc.MintSingle(ctx, "owner", 1, 10, "player:a")
	if err != nil {
		t.Fatalf("mint single: %v", err)
	}
	if itemID != 1 {
		t.Fatalf("expected returned id 1, got %d", itemID)
	}

	balance, _ := f.led.BalanceOf(ctx, "player:a", 1)
	if balance != 10 {
		t.Fatalf("expected balance 10, got %d", balance)
	}

	// The accumulator grows by the id value on the single path.
	if got := f.counterValue(t); got != 1 {
		t.Fatalf("expected counter 1, got %d", got)
	}

	if _, err := f.svc.MintSingle(ctx, "owner", 7, 3, "player:b"); err != nil {
		t.Fatalf("mint single id 7: %v", err)
	}
	if got := f.counterValue(t); got != 8 {
		t.Fatalf("expected counter 8 after minting id 7, got %d", got)
	}

	last := f.emitter.emitted[len(f.emitter.emitted)-1]
	if last.Kind != events.KindSingleMint || last.Caller != "owner" {
		t.Fatalf("unexpected event %+v", last)
	}
}

func TestMintSingleRejectsExistingID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.MintSingle(ctx, "owner", 1, 10, "player:a"); err != nil {
		t.Fatalf("mint single: %v", err)
	}

	if _, err := f.svc.MintSingle(ctx, "owner", 1, 5, "player:b"); !errors.Is(err, ErrItemExists) {
		t.Fatalf("expected ErrItemExists, got %v", err)
	}

	// Balances untouched by the failed attempt.
	balanceA, _ := f.led.BalanceOf(ctx, "player:a", 1)
	balanceB, _ := f.led.BalanceOf(ctx, "player:b", 1)
	if balanceA != 10 || balanceB != 0 {
		t.Fatalf("balances changed after failed mint: a=%d b=%d", balanceA, balanceB)
	}
	if got := f.counterValue(t); got != 1 {
		t.Fatalf("counter changed after failed mint: %d", got)
	}
}

func TestMintSingleRejectsNonPositiveAmount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, amount := range []int64{0, -1} {
		if _, err := f.svc.MintSingle(ctx, "owner", 1, amount, "player:a"); !errors.Is(err, ErrAmountNotPositive) {
			t.Fatalf("amount %d: expected ErrAmountNotPositive, got %v", amount, err)
		}
	}

	exists, _ := f.led.Exists(ctx, 1)
	if exists {
		t.Fatal("failed mint must not create the item")
	}
}

func TestMintRequiresWhitelist(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.MintSingle(ctx, "stranger", 2, 1, "player:c"); !errors.Is(err, access.ErrNotWhitelisted) {
		t.Fatalf("expected ErrNotWhitelisted, got %v", err)
	}

	exists, _ := f.led.Exists(ctx, 2)
	if exists {
		t.Fatal("unauthorized mint must not create the item")
	}

	// The whitelist check precedes every other validation.
	if _, err := f.svc.MintSingle(ctx, "stranger", 2, 0, "player:c"); !errors.Is(err, access.ErrNotWhitelisted) {
		t.Fatalf("expected ErrNotWhitelisted before amount validation, got %v", err)
	}
}

func TestMintRequiresMintEnabled(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.acc.SetMintEnabled(ctx, "owner", false); err != nil {
		t.Fatalf("disable minting: %v", err)
	}

	if _, err := f.svc.MintSingle(ctx, "owner", 3, 1, "player:d"); !errors.Is(err, ErrMintingDisabled) {
		t.Fatalf("expected ErrMintingDisabled, got %v", err)
	}

	// The mint-enabled check precedes item validation: a bad amount still
	// reports the disabled gate.
	if _, err := f.svc.MintSingle(ctx, "owner", 3, 0, "player:d"); !errors.Is(err, ErrMintingDisabled) {
		t.Fatalf("expected ErrMintingDisabled before amount validation, got %v", err)
	}
}

func TestMintBatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.svc.MintBatch(ctx, "owner", []int64{4, 5, 6}, []int64{1, 2, 3}, "player:e"); err != nil {
		t.Fatalf("mint batch: %v", err)
	}

	for i, id := range []int64{4, 5, 6} {
		balance, _ := f.led.BalanceOf(ctx, "player:e", id)
		if balance != int64(i+1) {
			t.Fatalf("item %d: expected balance %d, got %d", id, i+1, balance)
		}
	}

	// The accumulator grows by the batch length on this path, not the ids.
	if got := f.counterValue(t); got != 3 {
		t.Fatalf("expected counter 3, got %d", got)
	}
}

func TestMintBatchValidatesBeforeMinting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.svc.MintBatch(ctx, "owner", []int64{4, 5}, []int64{0, 1}, "player:e"); !errors.Is(err, ErrAmountNotPositive) {
		t.Fatalf("expected ErrAmountNotPositive, got %v", err)
	}

	for _, id := range []int64{4, 5} {
		exists, _ := f.led.Exists(ctx, id)
		if exists {
			t.Fatalf("item %d must not exist after failed batch", id)
		}
	}
	if got := f.counterValue(t); got != 0 {
		t.Fatalf("counter changed after failed batch: %d", got)
	}
}

func TestMintBatchRejectsExistingID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.MintSingle(ctx, "owner", 5, 1, "player:a"); err != nil {
		t.Fatalf("seed mint: %v", err)
	}

	if err := f.svc.MintBatch(ctx, "owner", []int64{4, 5}, []int64{1, 1}, "player:e"); !errors.Is(err, ErrItemExists) {
		t.Fatalf("expected ErrItemExists, got %v", err)
	}

	exists, _ := f.led.Exists(ctx, 4)
	if exists {
		t.Fatal("item 4 must not exist after failed batch")
	}
}

func TestMintBatchLengthMismatchUsesLedgerContract(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.svc.MintBatch(ctx, "owner", []int64{4, 5}, []int64{1}, "player:e")
	if !errors.Is(err, ledger.ErrLengthMismatch) {
		t.Fatalf("expected ledger length mismatch, got %v", err)
	}

	if got := f.counterValue(t); got != 0 {
		t.Fatalf("counter changed after failed batch: %d", got)
	}
}

func TestMintBatchMulti(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ids, err := f.svc.MintBatchMulti(ctx, "owner", []int64{7, 8}, []string{"player:a", "player:b"}, []int64{10, 20})
	if err != nil {
		t.Fatalf("mint batch multi: %v", err)
	}
	if len(ids) != 2 || ids[0] != 7 || ids[1] != 8 {
		t.Fatalf("unexpected ids %v", ids)
	}

	balanceA, _ := f.led.BalanceOf(ctx, "player:a", 7)
	balanceB, _ := f.led.BalanceOf(ctx, "player:b", 8)
	if balanceA != 10 || balanceB != 20 {
		t.Fatalf("unexpected balances a=%d b=%d", balanceA, balanceB)
	}

	if got := f.counterValue(t); got != 2 {
		t.Fatalf("expected counter 2, got %d", got)
	}

	last := f.emitter.emitted[len(f.emitter.emitted)-1]
	if last.Kind != events.KindBatchMultiMint {
		t.Fatalf("expected batch_multi_mint event, got %s", last.Kind)
	}
}

func TestMintBatchMultiRequiresEqualRecipients(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.MintBatchMulti(ctx, "owner", []int64{7, 8}, []string{"player:a"}, []int64{10, 20})
	if err == nil {
		t.Fatal("expected length mismatch error")
	}
	// A plain precondition failure, not one of the named kinds.
	if errors.Is(err, ErrItemExists) || errors.Is(err, ErrAmountNotPositive) || errors.Is(err, ErrItemNotFound) {
		t.Fatalf("length mismatch must not map to a named error, got %v", err)
	}

	for _, id := range []int64{7, 8} {
		exists, _ := f.led.Exists(ctx, id)
		if exists {
			t.Fatalf("item %d must not exist after failed call", id)
		}
	}
}

func TestIncreaseExisting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.svc.MintSingle(ctx, "owner", 1, 10, "player:a"); err != nil {
		t.Fatalf("mint single: %v", err)
	}

	if err := f.svc.IncreaseExisting(ctx, "owner", "player:a", 1, 4); err != nil {
		t.Fatalf("increase existing: %v", err)
	}

	balance, _ := f.led.BalanceOf(ctx, "player:a", 1)
	if balance != 14 {
		t.Fatalf("expected balance 14, got %d", balance)
	}

	// The accumulator only moves on creation paths.
	if got := f.counterValue(t); got != 1 {
		t.Fatalf("expected counter 1, got %d", got)
	}

	if err := f.svc.IncreaseExisting(ctx, "owner", "player:a", 99, 1); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	if err := f.svc.IncreaseExisting(ctx, "owner", "player:a", 1, 0); !errors.Is(err, ErrAmountNotPositive) {
		t.Fatalf("expected ErrAmountNotPositive, got %v", err)
	}
}

func TestWhitelistedIssuerCanMint(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.acc.AddWhitelisted(ctx, "owner", "issuer-1"); err != nil {
		t.Fatalf("whitelist issuer: %v", err)
	}

	if _, err := f.svc.MintSingle(ctx, "issuer-1", 1, 10, "player:a"); err != nil {
		t.Fatalf("issuer mint: %v", err)
	}

	if err := f.acc.RemoveWhitelisted(ctx, "owner", "issuer-1"); err != nil {
		t.Fatalf("remove issuer: %v", err)
	}
	if _, err := f.svc.MintSingle(ctx, "issuer-1", 2, 10, "player:a"); !errors.Is(err, access.ErrNotWhitelisted) {
		t.Fatalf("expected ErrNotWhitelisted after removal, got %v", err)
	}
}
