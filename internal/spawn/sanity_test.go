//go:build !arcadedebug

package spawn

import (
	"testing"
	"time"
)

func TestInvalidIntervalIsClamped(t *testing.T) {
	c := NewCadence(0, 0)
	if c.Interval != MinInterval {
		t.Errorf("Interval = %v, expected %v", c.Interval, MinInterval)
	}
	w := Waves{Length: 0, BaseInterval: 100 * time.Millisecond, Step: 200 * time.Millisecond}
	if got := w.Interval(3); got != MinInterval {
		t.Errorf("Interval = %v, expected clamp to %v", got, MinInterval)
	}
	if got := w.Wave(time.Second); got < 1 {
		t.Errorf("Wave = %d", got)
	}
}
