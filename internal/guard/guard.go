package guard

import (
	"errors"
	"sync"
)

// ErrReentrantCall indicates a mutating operation was invoked while another
// guarded operation was still executing. The attempt fails immediately
// instead of blocking.
var ErrReentrantCall = errors.New("reentrant call")

// Region serializes mutating operations. All state-changing entry points of
// the service share a single region; read-only queries never acquire it.
type Region struct {
	mu sync.Mutex
}

// Do runs fn while holding the region. If the region is already held the
// call fails with ErrReentrantCall without running fn.
func (r *Region) Do(fn func() error) error {
	if !r.mu.TryLock() {
		return ErrReentrantCall
	}
	defer r.mu.Unlock()
	return fn()
}
