package position

import (
	"context"
	"log"
	"sync"

	"cloudpicker/internal/types"
)

// Tracker subscribes to a Source once and remembers the result. Pending and
// failed lookups both read as an absent position.
type Tracker struct {
	once sync.Once
	done chan struct{}

	mu  sync.RWMutex
	pos types.UserPosition
}

func NewTracker() *Tracker {
	return &Tracker{done: make(chan struct{})}
}

// Start resolves src in the background. Only the first call does anything.
func (t *Tracker) Start(ctx context.Context, src Source) {
	t.once.Do(func() {
		go func() {
			defer close(t.done)
			c, err := src.Locate(ctx)
			if err != nil {
				log.Printf("position: lookup failed, distance features disabled: %v", err)
				return
			}
			t.mu.Lock()
			t.pos = types.Known(c)
			t.mu.Unlock()
			log.Printf("position: resolved to %.4f,%.4f", c.Latitude, c.Longitude)
		}()
	})
}

func (t *Tracker) Current() types.UserPosition {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pos
}

// Done is closed once the lookup has finished, successfully or not. It is
// never closed if Start was not called.
func (t *Tracker) Done() <-chan struct{} {
	return t.done
}
