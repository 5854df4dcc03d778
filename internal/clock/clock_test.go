package clock

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTicker(t *testing.T) {
	t.Run("ticks until stopped", func(t *testing.T) {
		var ticks atomic.Int64
		ticker := New(5*time.Millisecond, func(time.Time) {
			ticks.Add(1)
		})

		ticker.Start()
		require.Eventually(t, func() bool {
			return ticks.Load() >= 2
		}, time.Second, time.Millisecond)

		ticker.Stop()
		settled := ticks.Load()
		time.Sleep(25 * time.Millisecond)
		require.LessOrEqual(t, ticks.Load(), settled+1)
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		ticker := New(time.Millisecond, func(time.Time) {})
		ticker.Start()
		ticker.Stop()
		ticker.Stop()
	})
}
