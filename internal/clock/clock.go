package clock

import (
	"sync"
	"time"
)

// Ticker drives the live wall-clock display. It is independent of fetch
// concurrency and owns a single goroutine that must be stopped on view
// teardown or it leaks.
type Ticker struct {
	interval time.Duration
	onTick   func(time.Time)

	done     chan struct{}
	stopOnce sync.Once
}

func New(interval time.Duration, onTick func(time.Time)) *Ticker {
	return &Ticker{
		interval: interval,
		onTick:   onTick,
		done:     make(chan struct{}),
	}
}

func (t *Ticker) Start() {
	go func() {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-t.done:
				return
			case now := <-ticker.C:
				t.onTick(now)
			}
		}
	}()
}

// Stop is idempotent.
func (t *Ticker) Stop() {
	t.stopOnce.Do(func() {
		close(t.done)
	})
}
