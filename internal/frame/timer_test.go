package frame

import (
	"context"
	"math"
	"testing"
	"time"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestNewFlags(t *testing.T) {
	f := NewFlags()
	if f.FrameCounter != 0 || !f.Focused || f.Resized || f.Minimized {
		t.Errorf("NewFlags() = %+v", *f)
	}

	f.Resized, f.Minimized, f.Focused = true, true, false
	f.Reset()
	if f.Resized {
		t.Error("Reset left Resized set")
	}
	if !f.Minimized || f.Focused {
		t.Error("Reset touched level flags")
	}
}

func TestSetTargetFPS(t *testing.T) {
	tests := []struct {
		fps  int
		want float64
	}{
		{60, 1000.0 / 60},
		{1, 1000},
		{0, 0},
		{-5, 0},
	}
	for _, tt := range tests {
		timer := NewTimer(NewFlags(), NewManualClock(epoch))
		timer.SetTargetFPS(tt.fps)
		if got := timer.TargetFrameDuration(); got != tt.want {
			t.Errorf("SetTargetFPS(%d): TargetFrameDuration() = %v, want %v", tt.fps, got, tt.want)
		}
	}
}

func TestMarkFrameStart(t *testing.T) {
	clock := NewManualClock(epoch)
	flags := NewFlags()
	timer := NewTimer(flags, clock)

	clock.Advance(20 * time.Millisecond)
	timer.MarkFrameStart()

	if flags.DeltaTime != 20 {
		t.Errorf("DeltaTime = %v, want 20", flags.DeltaTime)
	}
	if flags.FPS != 50 {
		t.Errorf("FPS = %v, want 50", flags.FPS)
	}
}

func TestMarkFrameStartClampsToEpsilon(t *testing.T) {
	clock := NewManualClock(epoch)
	flags := NewFlags()
	timer := NewTimer(flags, clock)

	timer.MarkFrameStart()

	if flags.DeltaTime != Epsilon {
		t.Errorf("DeltaTime = %v, want %v", flags.DeltaTime, Epsilon)
	}
	if math.IsInf(flags.FPS, 0) || flags.FPS <= 0 {
		t.Errorf("FPS = %v, want finite and positive", flags.FPS)
	}
}

func TestLimitFrameRateWaitsForRemainder(t *testing.T) {
	clock := NewManualClock(epoch)
	timer := NewTimer(NewFlags(), clock)
	timer.SetTargetFPS(50)

	timer.MarkFrameStart()
	clock.Advance(5 * time.Millisecond)
	timer.LimitFrameRate(context.Background())

	waits := clock.Waits()
	if len(waits) != 1 || waits[0] != 15*time.Millisecond {
		t.Fatalf("waits = %v, want [15ms]", waits)
	}
}

func TestLimitFrameRateNoWait(t *testing.T) {
	tests := []struct {
		name  string
		fps   int
		spent time.Duration
	}{
		{"uncapped", 0, 0},
		{"over budget", 50, 30 * time.Millisecond},
		{"exactly on budget", 50, 20 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock := NewManualClock(epoch)
			timer := NewTimer(NewFlags(), clock)
			timer.SetTargetFPS(tt.fps)

			timer.MarkFrameStart()
			clock.Advance(tt.spent)
			timer.LimitFrameRate(context.Background())

			if waits := clock.Waits(); len(waits) != 0 {
				t.Errorf("waits = %v, want none", waits)
			}
		})
	}
}

func TestPacedFramesReportTarget(t *testing.T) {
	clock := NewManualClock(epoch)
	flags := NewFlags()
	timer := NewTimer(flags, clock)
	timer.SetTargetFPS(100)

	timer.MarkFrameStart()
	for i := 0; i < 5; i++ {
		clock.Advance(2 * time.Millisecond)
		timer.LimitFrameRate(context.Background())
		timer.MarkFrameStart()

		if flags.DeltaTime != 10 {
			t.Fatalf("frame %d: DeltaTime = %v, want 10", i, flags.DeltaTime)
		}
	}
}

func TestLimitFrameRateCancelled(t *testing.T) {
	timer := NewTimer(NewFlags(), SystemClock{})
	timer.SetTargetFPS(1)
	timer.MarkFrameStart()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	begin := time.Now()
	timer.LimitFrameRate(ctx)

	if took := time.Since(begin); took > 500*time.Millisecond {
		t.Errorf("LimitFrameRate ignored cancellation, took %v", took)
	}
}

func TestLimitFrameRateSystemClock(t *testing.T) {
	timer := NewTimer(NewFlags(), SystemClock{})
	timer.SetTargetFPS(50)
	timer.MarkFrameStart()

	begin := time.Now()
	timer.LimitFrameRate(context.Background())

	if took := time.Since(begin); took < 10*time.Millisecond {
		t.Errorf("LimitFrameRate returned after %v, want close to 20ms", took)
	}
}
