package ledger

// SeedHolding is a test helper that sets an account's balance for an item
// when using the in-memory ledger. The item's supply is raised by the same
// amount so existence bookkeeping stays consistent.
func SeedHolding(l Ledger, account string, itemID, amount int64) {
	if mem, ok := l.(*inMemoryLedger); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		mem.credit(account, itemID, amount)
	}
}
