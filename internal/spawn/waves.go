package spawn

import "time"

// Waves escalates spawn pressure as a run goes on.
type Waves struct {
	Length       time.Duration // duration of one wave
	BaseInterval time.Duration // spawn interval on wave 1
	Step         time.Duration // reduction per wave
	Floor        time.Duration // interval never drops below this
}

// Wave returns the 1-based wave number at elapsed.
func (w Waves) Wave(elapsed time.Duration) int {
	length := checkInterval(w.Length)
	if elapsed < 0 {
		return 1
	}
	return 1 + int(elapsed/length)
}

// Interval returns the spawn interval for wave.
func (w Waves) Interval(wave int) time.Duration {
	if wave < 1 {
		wave = 1
	}
	d := w.BaseInterval - time.Duration(wave-1)*w.Step
	if d < w.Floor {
		d = w.Floor
	}
	return checkInterval(d)
}
