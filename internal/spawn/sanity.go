//go:build !arcadedebug

package spawn

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// MinInterval is what invalid intervals are clamped to.
const MinInterval = 16 * time.Millisecond

var warnOnce sync.Once

func checkInterval(d time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	warnOnce.Do(func() {
		log.Warn("spawn: non-positive interval clamped", "interval", d, "clamp", MinInterval)
	})
	return MinInterval
}
