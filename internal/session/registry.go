package session

import "sync"

// Registry serializa as transições de estado por sala dentro do processo.
// Cross-process races are caught by the conditional updates in the
// repository; the registry keeps the common single-process path free of
// database round trips for conflict resolution.
type Registry struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the per-room lock, creating it on first use, and returns
// the unlock function.
func (r *Registry) Lock(roomID string) func() {
	r.mu.Lock()
	lock, ok := r.locks[roomID]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[roomID] = lock
	}
	r.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

// Forget drops the lock entry of a room that reached its terminal state.
// Safe to call while holders are waiting; they keep their own reference.
func (r *Registry) Forget(roomID string) {
	r.mu.Lock()
	delete(r.locks, roomID)
	r.mu.Unlock()
}
