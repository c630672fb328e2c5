package payments

import (
	"sync"
)

// LockManager manages per-user locks so concurrent deliveries of events for
// the same user do not interleave, while events for different users are
// processed in parallel.
type LockManager struct {
	locks sync.Map // map[string]*sync.Mutex
}

// NewLockManager creates a new lock manager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// LockUser acquires the lock for the given user identifier and returns the
// function that releases it.
func (lm *LockManager) LockUser(userID string) func() {
	lockInterface, _ := lm.locks.LoadOrStore(userID, &sync.Mutex{})
	lock, ok := lockInterface.(*sync.Mutex)
	if !ok {
		// only *sync.Mutex values are ever stored
		panic("unexpected type in lock manager")
	}

	lock.Lock()

	return func() {
		lock.Unlock()
	}
}
