package core

import "time"

// ReferenceFPS is the frame rate all per-frame motion constants are tuned for.
const ReferenceFPS = 60

// ReferenceFrame is the duration of one reference frame.
const ReferenceFrame = time.Second / ReferenceFPS

// FrameScale converts an elapsed duration into reference frames.
// Velocities expressed in pixels per reference frame are multiplied by it,
// so a 60 Hz tick advances exactly one frame's worth of motion.
func FrameScale(dt time.Duration) float64 {
	if dt <= 0 {
		return 0
	}
	return float64(dt) / float64(ReferenceFrame)
}
