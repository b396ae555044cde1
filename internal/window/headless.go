package window

import (
	"fmt"
	"sync"
	"time"

	"github.com/tinyrange/wma/internal/gl"
	"github.com/tinyrange/wma/internal/input"
)

// Headless is a window without a display. Its native codes are the
// unified codes themselves, and its input comes from Inject and Script. It
// backs CPU-only runs and the loop tests.
type Headless struct {
	mu      sync.Mutex
	pending []Event
	script  func(pump int) []Event

	width, height int
	x, y          float64
	cursor        bool
	pumps         int
	waits         []time.Duration
	swaps         int
	closeReq      bool
	closed        bool
}

// NewHeadless returns a headless window sized from opts.
func NewHeadless(opts Options) *Headless {
	return &Headless{
		width:  opts.Width,
		height: opts.Height,
		cursor: true,
	}
}

// Inject queues records for the next pump. It may be called from any
// goroutine.
func (h *Headless) Inject(events ...Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pending = append(h.pending, events...)
}

// Script installs fn, which is asked for extra records on every pump. The
// pump number starts at 1. Script records follow injected ones.
func (h *Headless) Script(fn func(pump int) []Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.script = fn
}

// RequestClose makes ShouldClose report true, as a window manager's close
// button would.
func (h *Headless) RequestClose() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closeReq = true
}

func (h *Headless) Pump(q *Queue) {
	h.mu.Lock()
	h.pumps++
	events := h.pending
	h.pending = nil
	script, n := h.script, h.pumps
	h.mu.Unlock()

	if script != nil {
		events = append(events, script(n)...)
	}

	for _, ev := range events {
		h.mu.Lock()
		switch e := ev.(type) {
		case MotionEvent:
			h.x, h.y = e.X, e.Y
		case ResizeEvent:
			h.width, h.height = e.Width, e.Height
		}
		h.mu.Unlock()
		q.Push(ev)
	}
}

// Wait records timeout and pumps without blocking; a headless window has
// nothing to wait on.
func (h *Headless) Wait(q *Queue, timeout time.Duration) {
	h.mu.Lock()
	h.waits = append(h.waits, timeout)
	h.mu.Unlock()
	h.Pump(q)
}

func (h *Headless) ShouldClose() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closeReq || h.closed
}

func (h *Headless) Swap() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.swaps++
}

func (h *Headless) GL() (gl.OpenGL, error) {
	return nil, fmt.Errorf("%w: headless window has no OpenGL context", ErrGraphics)
}

func (h *Headless) SetCursorMode(enabled bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cursor = enabled
}

func (h *Headless) CursorPos() (float64, float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.x, h.y
}

func (h *Headless) Size() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

func (h *Headless) VulkanExtensions() ([]string, error) {
	return nil, fmt.Errorf("%w: headless window has no Vulkan surface", ErrGraphics)
}

func (h *Headless) Keymap() Keymap {
	return Keymap{
		Name:    "headless",
		Key:     func(code int64) input.Key { return input.Key(code) },
		Button:  func(code int32) input.Button { return input.Button(code) },
		InvertY: true,
	}
}

func (h *Headless) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
}

// Pumps returns how many times Pump ran.
func (h *Headless) Pumps() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pumps
}

// Waits returns the timeouts passed to Wait.
func (h *Headless) Waits() []time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]time.Duration(nil), h.waits...)
}

// Swaps returns how many times Swap ran.
func (h *Headless) Swaps() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.swaps
}

// CursorEnabled reports the last mode passed to SetCursorMode.
func (h *Headless) CursorEnabled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor
}

// Closed reports whether Close ran.
func (h *Headless) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.closed
}
