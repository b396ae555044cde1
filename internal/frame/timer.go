package frame

import (
	"context"
	"time"
)

// Epsilon is the smallest frame duration, in milliseconds, reported in
// DeltaTime. It keeps FPS finite when two frames start on the same tick.
const Epsilon = 1e-5

// Timer measures frame durations and paces the loop to a target rate. All
// durations are float64 milliseconds.
type Timer struct {
	flags  *Flags
	clock  Clock
	target float64
	start  time.Time
}

// NewTimer returns an uncapped timer that writes into flags. A nil clock
// means SystemClock.
func NewTimer(flags *Flags, clock Clock) *Timer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Timer{
		flags: flags,
		clock: clock,
		start: clock.Now(),
	}
}

// SetTargetFPS caps the loop at fps frames per second. Zero or a negative
// value removes the cap.
func (t *Timer) SetTargetFPS(fps int) {
	if fps > 0 {
		t.target = 1000.0 / float64(fps)
	} else {
		t.target = 0
	}
}

// TargetFrameDuration returns the frame budget in milliseconds, or 0 when
// uncapped.
func (t *Timer) TargetFrameDuration() float64 {
	return t.target
}

// MarkFrameStart records the start of a frame and updates DeltaTime and FPS
// from the time since the previous start.
func (t *Timer) MarkFrameStart() {
	now := t.clock.Now()
	elapsed := milliseconds(now.Sub(t.start))

	t.flags.DeltaTime = max(elapsed, Epsilon)
	t.flags.FPS = 1000.0 / t.flags.DeltaTime
	t.start = now
}

// LimitFrameRate blocks until the current frame has used its budget. It
// returns early when ctx is done.
func (t *Timer) LimitFrameRate(ctx context.Context) {
	if t.target <= 0 {
		return
	}

	spent := milliseconds(t.clock.Now().Sub(t.start))
	remaining := t.target - spent
	if remaining <= 0 {
		return
	}

	select {
	case <-t.clock.After(time.Duration(remaining * float64(time.Millisecond))):
	case <-ctx.Done():
	}
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
