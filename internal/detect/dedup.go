package detect

import (
	"sync"
	"time"
)

// Refractory suppresses repeats of the same event key inside a sliding
// window. Keys combine the event type and the object kind, so a phone and a
// book detected back to back never suppress each other.
type Refractory struct {
	mu       sync.Mutex
	window   time.Duration
	accepted map[string]time.Time
}

func NewRefractory(window time.Duration) *Refractory {
	return &Refractory{
		window:   window,
		accepted: make(map[string]time.Time),
	}
}

// Accept reports whether an event with the given key may pass at the given
// instant and, when it may, records it as the new window anchor. Suppressed
// events leave the anchor untouched, keeping the window sliding from the
// last accepted event.
func (r *Refractory) Accept(key string, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if last, ok := r.accepted[key]; ok && now.Sub(last) < r.window {
		return false
	}
	r.accepted[key] = now
	return true
}

// Reset limpa todas as janelas ativas
func (r *Refractory) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accepted = make(map[string]time.Time)
}
