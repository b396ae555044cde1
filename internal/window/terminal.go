package window

import (
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tinyrange/wma/internal/config"
	"github.com/tinyrange/wma/internal/gl"
)

const terminalEventBuffer = 256

// Terminal is a window backed by the controlling terminal. Sizes and
// positions are in cells.
//
// tcell only offers a blocking PollEvent, so a reader goroutine forwards
// events into a buffered channel which Pump drains without blocking.
// Terminals report key presses only; each one becomes a press followed by
// a release.
type Terminal struct {
	screen tcell.Screen
	events chan tcell.Event
	done   chan struct{}
	once   sync.Once

	buttons    tcell.ButtonMask
	x, y       int
	seenMouse  bool
	cursor     bool
	readerDone bool
}

// NewTerminal takes over the terminal. Only the CPU graphics API is
// supported.
func NewTerminal(opts Options) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("%w: terminal: %v", ErrInit, err)
	}
	return newTerminal(screen, opts)
}

func newTerminal(screen tcell.Screen, opts Options) (*Terminal, error) {
	if opts.API != config.CPU {
		return nil, fmt.Errorf("%w: terminal supports only %s, not %s", ErrGraphics, config.CPU, opts.API)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("%w: terminal: %v", ErrInit, err)
	}

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()
	if opts.Title != "" {
		screen.SetTitle(opts.Title)
	}

	t := &Terminal{
		screen: screen,
		events: make(chan tcell.Event, terminalEventBuffer),
		done:   make(chan struct{}),
		cursor: true,
	}
	go t.read()
	return t, nil
}

func (t *Terminal) read() {
	defer close(t.events)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}

// Screen exposes the tcell screen for CPU drawing. Contents become visible
// on Swap.
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

func (t *Terminal) Pump(q *Queue) {
	for {
		select {
		case ev, ok := <-t.events:
			if !ok {
				t.readerDone = true
				return
			}
			t.convert(ev, q)
		default:
			return
		}
	}
}

// Wait blocks until a terminal event arrives or timeout passes, then
// collects everything pending.
func (t *Terminal) Wait(q *Queue, timeout time.Duration) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case ev, ok := <-t.events:
		if !ok {
			t.readerDone = true
			return
		}
		t.convert(ev, q)
		t.Pump(q)
	case <-timer.C:
	}
}

func (t *Terminal) convert(ev tcell.Event, q *Queue) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		code := termKeyCode(e.Key())
		if e.Key() == tcell.KeyRune {
			code = termRuneCode(e.Rune())
		}
		q.Push(KeyEvent{Code: code, Pressed: true})
		q.Push(KeyEvent{Code: code, Pressed: false})

	case *tcell.EventMouse:
		t.convertMouse(e, q)

	case *tcell.EventResize:
		w, h := e.Size()
		q.Push(ResizeEvent{Width: w, Height: h})

	case *tcell.EventFocus:
		q.Push(FocusEvent{Focused: e.Focused})
	}
}

var terminalWheel = []struct {
	mask   tcell.ButtonMask
	dx, dy float64
}{
	{tcell.WheelUp, 0, 1},
	{tcell.WheelDown, 0, -1},
	{tcell.WheelLeft, 1, 0},
	{tcell.WheelRight, -1, 0},
}

// convertMouse turns one tcell mouse report into motion, button edges and
// wheel notches, in that order.
func (t *Terminal) convertMouse(e *tcell.EventMouse, q *Queue) {
	x, y := e.Position()
	if !t.seenMouse || x != t.x || y != t.y {
		t.seenMouse = true
		t.x, t.y = x, y
		q.Push(MotionEvent{X: float64(x), Y: float64(y)})
	}

	const buttonBits = 8
	mask := e.Buttons()
	for i := 0; i < buttonBits; i++ {
		bit := tcell.ButtonMask(1) << i
		now, before := mask&bit != 0, t.buttons&bit != 0
		if now != before {
			q.Push(ButtonEvent{Code: int32(i), Pressed: now})
		}
	}
	t.buttons = mask & (tcell.ButtonMask(1)<<buttonBits - 1)

	for _, w := range terminalWheel {
		if mask&w.mask != 0 {
			q.Push(ScrollEvent{DX: w.dx, DY: w.dy})
		}
	}
}

func (t *Terminal) ShouldClose() bool {
	return t.readerDone
}

func (t *Terminal) Swap() {
	t.screen.Show()
}

func (t *Terminal) GL() (gl.OpenGL, error) {
	return nil, fmt.Errorf("%w: terminal has no OpenGL context", ErrGraphics)
}

// SetCursorMode records the mode. A terminal can neither hide nor capture
// the mouse pointer, so reporting stays on either way.
func (t *Terminal) SetCursorMode(enabled bool) {
	t.cursor = enabled
}

func (t *Terminal) CursorPos() (float64, float64) {
	return float64(t.x), float64(t.y)
}

func (t *Terminal) Size() (int, int) {
	return t.screen.Size()
}

func (t *Terminal) VulkanExtensions() ([]string, error) {
	return nil, fmt.Errorf("%w: terminal has no Vulkan surface", ErrGraphics)
}

func (t *Terminal) Keymap() Keymap {
	return Keymap{
		Name:    "terminal",
		Key:     TerminalKey,
		Button:  TerminalButton,
		InvertY: true,
	}
}

func (t *Terminal) Close() {
	t.once.Do(func() {
		close(t.done)
		t.screen.Fini()
	})
}
