package wm

import (
	"context"
	"time"

	"github.com/tinyrange/wma/internal/gl"
	"github.com/tinyrange/wma/internal/window"
)

// minimizedWait bounds how long an iconified window blocks on native input
// per iteration.
const minimizedWait = 100 * time.Millisecond

// Run drives the frame loop until the window is asked to close or ctx is
// done. fn runs once per iteration after all input collected during that
// iteration's pump has been dispatched. Termination is only checked
// between iterations; fn is never interrupted.
//
// Run returns nil when the window closed and ctx.Err() when ctx ended the
// loop.
func (m *Manager) Run(ctx context.Context, fn func()) error {
	if m.destroyed {
		return ErrDestroyed
	}
	if m.win == nil {
		return ErrNotCreated
	}

	m.log.Info("loop started", "frame_budget_ms", m.timer.TargetFrameDuration())
	start := m.flags.FrameCounter

	for !m.ShouldClose() && ctx.Err() == nil {
		m.step(ctx, fn)
	}

	m.log.Info("loop stopped",
		"frames", m.flags.FrameCounter-start,
		"close_requested", m.ShouldClose())

	if !m.ShouldClose() {
		return ctx.Err()
	}
	return nil
}

// RunFunc is Run without a context.
func (m *Manager) RunFunc(fn func()) error {
	return m.Run(context.Background(), fn)
}

func (m *Manager) step(ctx context.Context, fn func()) {
	m.win.Pump(&m.queue)

	m.timer.MarkFrameStart()
	m.flags.FrameCounter++
	m.flags.Reset()

	m.drain()

	if fn != nil {
		fn()
	}

	if m.gl != nil {
		m.win.Swap()
		m.gl.Clear(gl.ColorBufferBit)
	}

	m.timer.LimitFrameRate(ctx)

	if m.flags.Minimized {
		if w, ok := m.win.(window.Waiter); ok && !m.ShouldClose() && ctx.Err() == nil {
			w.Wait(&m.queue, minimizedWait)
		}
	}
}

// drain normalizes and dispatches every queued record in arrival order.
// Handlers may push more records; they are delivered in the same drain.
func (m *Manager) drain() {
	m.queue.Drain(func(ev window.Event) {
		if m.norm.handle(ev) {
			m.Close()
		}
	})

	if m.flags.Resized && m.gl != nil {
		m.gl.Viewport(0, 0, int32(m.cfg.Width), int32(m.cfg.Height))
	}
}
