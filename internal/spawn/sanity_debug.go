//go:build arcadedebug

package spawn

import (
	"fmt"
	"time"
)

// MinInterval is what invalid intervals are clamped to in release builds.
const MinInterval = 16 * time.Millisecond

func checkInterval(d time.Duration) time.Duration {
	if d <= 0 {
		panic(fmt.Sprintf("spawn: non-positive interval %v", d))
	}
	return d
}
