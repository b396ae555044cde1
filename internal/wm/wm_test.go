package wm

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/tinyrange/wma/internal/config"
	"github.com/tinyrange/wma/internal/frame"
	"github.com/tinyrange/wma/internal/input"
	"github.com/tinyrange/wma/internal/window"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

// newTestManager returns a manager with a created headless window and a
// manual clock, so paced loops run at full speed.
func newTestManager(t *testing.T, edit func(*config.WindowConfig)) (*Manager, *window.Headless) {
	t.Helper()

	cfg := config.Default()
	if edit != nil {
		edit(&cfg)
	}
	h := window.NewHeadless(window.OptionsFrom(cfg, config.CPU))

	m, err := New(cfg, config.Headless, config.CPU,
		WithLogger(quiet),
		WithClock(frame.NewManualClock(time.Unix(0, 0))),
		WithWindow(h))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := m.CreateWindow(""); err != nil {
		t.Fatalf("CreateWindow: %v", err)
	}
	t.Cleanup(m.Destroy)
	return m, h
}

// closeAfter returns a frame callback that requests close on frame n and
// calls each on every frame.
func closeAfter(m *Manager, n uint64, each func()) func() {
	return func() {
		if each != nil {
			each()
		}
		if m.Flags().FrameCounter >= n {
			m.Close()
		}
	}
}

func TestRun_FrameCounter(t *testing.T) {
	m, h := newTestManager(t, nil)

	calls := 0
	if err := m.RunFunc(closeAfter(m, 7, func() { calls++ })); err != nil {
		t.Fatalf("RunFunc: %v", err)
	}

	if got := m.Flags().FrameCounter; got != 7 {
		t.Errorf("FrameCounter = %d, want 7", got)
	}
	if calls != 7 || h.Pumps() != 7 {
		t.Errorf("calls = %d, pumps = %d, want 7, 7", calls, h.Pumps())
	}
}

func TestRun_PacesWithTargetFPS(t *testing.T) {
	m, _ := newTestManager(t, func(c *config.WindowConfig) { c.TargetFPS = 50 })

	var deltas []float64
	err := m.RunFunc(closeAfter(m, 3, func() {
		deltas = append(deltas, m.Flags().DeltaTime)
	}))
	if err != nil {
		t.Fatal(err)
	}

	// Nothing has been waited for before the first frame.
	if deltas[0] != frame.Epsilon {
		t.Errorf("first DeltaTime = %v, want %v", deltas[0], frame.Epsilon)
	}
	for i, d := range deltas[1:] {
		if d != 20 {
			t.Errorf("DeltaTime[%d] = %v, want 20", i+1, d)
		}
	}
}

func TestRun_ResizeVisibleThenCleared(t *testing.T) {
	m, h := newTestManager(t, nil)
	h.Script(func(pump int) []window.Event {
		if pump == 2 {
			return []window.Event{window.ResizeEvent{Width: 1024, Height: 768}}
		}
		return nil
	})

	var resized []bool
	err := m.RunFunc(closeAfter(m, 3, func() {
		resized = append(resized, m.Flags().Resized)
	}))
	if err != nil {
		t.Fatal(err)
	}

	want := []bool{false, true, false}
	for i := range want {
		if resized[i] != want[i] {
			t.Errorf("frame %d: Resized = %v, want %v", i+1, resized[i], want[i])
		}
	}
	if cfg := m.Config(); cfg.Width != 1024 || cfg.Height != 768 {
		t.Errorf("Config size = %dx%d, want 1024x768", cfg.Width, cfg.Height)
	}
}

func TestRun_DispatchBeforeFrameCallback(t *testing.T) {
	m, h := newTestManager(t, nil)

	var got []string
	m.RegisterKeyAction(input.KeyW,
		func() { got = append(got, "w+") },
		func() { got = append(got, "w-") })
	m.RegisterMouseButtonAction(input.ButtonLeft,
		func() { got = append(got, "left+") }, nil)

	h.Inject(
		window.KeyEvent{Code: int64(input.KeyW), Pressed: true},
		window.ButtonEvent{Code: int32(input.ButtonLeft), Pressed: true},
	)

	err := m.RunFunc(closeAfter(m, 2, func() {
		got = append(got, "frame")
		if m.Flags().FrameCounter == 1 {
			// Collected by the next pump.
			h.Inject(window.KeyEvent{Code: int64(input.KeyW)})
		}
	}))
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"w+", "left+", "frame", "w-", "frame"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestRun_FirstMouseMoveHasZeroDelta(t *testing.T) {
	m, h := newTestManager(t, func(c *config.WindowConfig) { c.Sensitivity = 2 })

	var moves []input.MousePosition
	m.SetMouseMoveAction(func(p input.MousePosition) { moves = append(moves, p) })

	h.Inject(
		window.MotionEvent{X: 100, Y: 50},
		window.MotionEvent{X: 110, Y: 40},
	)
	if err := m.RunFunc(closeAfter(m, 1, nil)); err != nil {
		t.Fatal(err)
	}

	if len(moves) != 2 {
		t.Fatalf("got %d moves, want 2", len(moves))
	}
	if moves[0].DeltaX != 0 || moves[0].DeltaY != 0 {
		t.Errorf("first delta = (%v, %v), want zero", moves[0].DeltaX, moves[0].DeltaY)
	}
	// Y grows downwards on the window, so moving up is a positive delta.
	if moves[1].DeltaX != 20 || moves[1].DeltaY != 20 {
		t.Errorf("second delta = (%v, %v), want (20, 20)", moves[1].DeltaX, moves[1].DeltaY)
	}
	if got := m.MousePosition(); got.X != 110 || got.Y != 40 {
		t.Errorf("MousePosition = %+v", got)
	}
}

func TestRun_SensitivityChangeAppliesToNextRecord(t *testing.T) {
	m, h := newTestManager(t, nil)

	var dx []float64
	m.SetMouseMoveAction(func(p input.MousePosition) {
		dx = append(dx, p.DeltaX)
		m.SetSensitivity(3)
	})

	h.Inject(
		window.MotionEvent{X: 0},
		window.MotionEvent{X: 1},
		window.MotionEvent{X: 2},
	)
	if err := m.RunFunc(closeAfter(m, 1, nil)); err != nil {
		t.Fatal(err)
	}

	want := []float64{0, 3, 3}
	for i := range want {
		if dx[i] != want[i] {
			t.Errorf("dx[%d] = %v, want %v", i, dx[i], want[i])
		}
	}
	if m.Sensitivity() != 3 {
		t.Errorf("Sensitivity() = %v", m.Sensitivity())
	}
}

func TestRun_FocusRegainRestartsDeltas(t *testing.T) {
	m, h := newTestManager(t, nil)

	var moves []input.MousePosition
	m.SetMouseMoveAction(func(p input.MousePosition) { moves = append(moves, p) })

	h.Script(func(pump int) []window.Event {
		switch pump {
		case 1:
			return []window.Event{window.MotionEvent{X: 10, Y: 10}, window.FocusEvent{Focused: false}}
		case 2:
			return []window.Event{window.FocusEvent{Focused: true}, window.MotionEvent{X: 500, Y: 500}}
		}
		return nil
	})

	var focused []bool
	err := m.RunFunc(closeAfter(m, 2, func() { focused = append(focused, m.Flags().Focused) }))
	if err != nil {
		t.Fatal(err)
	}

	if focused[0] || !focused[1] {
		t.Errorf("Focused per frame = %v, want [false true]", focused)
	}
	if len(moves) != 2 || moves[1].DeltaX != 0 || moves[1].DeltaY != 0 {
		t.Errorf("moves = %+v, want zero delta after refocus", moves)
	}
}

func TestRun_RepeatAndUnknownKeysAreDropped(t *testing.T) {
	m, h := newTestManager(t, nil)

	presses := 0
	m.RegisterKeyAction(input.KeyA, func() { presses++ }, nil)

	h.Inject(
		window.KeyEvent{Code: int64(input.KeyA), Pressed: true},
		window.KeyEvent{Code: int64(input.KeyA), Pressed: true, Repeat: true},
		window.KeyEvent{Code: int64(input.KeyUnknown), Pressed: true},
		window.KeyEvent{Code: 9999, Pressed: true},
	)
	if err := m.RunFunc(closeAfter(m, 1, nil)); err != nil {
		t.Fatal(err)
	}

	if presses != 1 {
		t.Errorf("presses = %d, want 1", presses)
	}
}

func TestRun_ScrollAndButtons(t *testing.T) {
	m, h := newTestManager(t, nil)

	var scroll input.MouseScroll
	var released bool
	m.SetMouseScrollAction(func(s input.MouseScroll) { scroll = s })
	m.RegisterMouseButtonAction(input.ButtonRight, nil, func() { released = true })

	h.Inject(
		window.ScrollEvent{DX: -1, DY: 2},
		window.ButtonEvent{Code: int32(input.ButtonRight), Pressed: false},
	)
	if err := m.RunFunc(closeAfter(m, 1, nil)); err != nil {
		t.Fatal(err)
	}

	if scroll != (input.MouseScroll{XOffset: -1, YOffset: 2}) {
		t.Errorf("scroll = %+v", scroll)
	}
	if !released {
		t.Error("release action did not run")
	}
}

func TestRun_EscapeClosesByDefault(t *testing.T) {
	m, h := newTestManager(t, nil)
	if !m.HasKeyAction(input.KeyEscape) {
		t.Fatal("no default Escape action")
	}

	h.Script(func(pump int) []window.Event {
		if pump == 2 {
			return []window.Event{window.KeyEvent{Code: int64(input.KeyEscape), Pressed: true}}
		}
		return nil
	})

	frames := 0
	if err := m.RunFunc(func() { frames++ }); err != nil {
		t.Fatal(err)
	}
	if frames != 2 {
		t.Errorf("frames = %d, want 2", frames)
	}
}

func TestNew_EscapeActionOptional(t *testing.T) {
	m, _ := newTestManager(t, func(c *config.WindowConfig) { c.CloseOnEscape = false })
	if m.HasKeyAction(input.KeyEscape) {
		t.Error("Escape action installed with CloseOnEscape off")
	}
}

func TestRun_NativeCloseRequests(t *testing.T) {
	tests := []struct {
		name  string
		setup func(h *window.Headless)
		want  uint64
	}{
		{
			name:  "close record",
			setup: func(h *window.Headless) { h.Inject(window.CloseEvent{}) },
			want:  1,
		},
		{
			name: "should close",
			setup: func(h *window.Headless) {
				h.Script(func(pump int) []window.Event {
					if pump == 3 {
						h.RequestClose()
					}
					return nil
				})
			},
			want: 3,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, h := newTestManager(t, nil)
			tt.setup(h)

			if err := m.RunFunc(nil); err != nil {
				t.Fatal(err)
			}
			if got := m.Flags().FrameCounter; got != tt.want {
				t.Errorf("FrameCounter = %d, want %d", got, tt.want)
			}
			if !m.ShouldClose() {
				t.Error("ShouldClose() = false after the loop ended")
			}
		})
	}
}

func TestRun_CloseFromAnotherGoroutine(t *testing.T) {
	m, _ := newTestManager(t, func(c *config.WindowConfig) { c.TargetFPS = 0 })

	started := make(chan struct{})
	go func() {
		<-started
		m.Close()
	}()

	first := true
	err := m.RunFunc(func() {
		if first {
			first = false
			close(started)
		}
	})
	if err != nil {
		t.Fatalf("RunFunc: %v", err)
	}
	if m.Flags().FrameCounter == 0 {
		t.Error("loop ended before the first frame")
	}
}

func TestRun_ContextCancel(t *testing.T) {
	m, _ := newTestManager(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := m.Run(ctx, func() {
		if m.Flags().FrameCounter == 4 {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if got := m.Flags().FrameCounter; got != 4 {
		t.Errorf("FrameCounter = %d, want 4", got)
	}
}

func TestRun_ContextCancelInterruptsPacing(t *testing.T) {
	cfg := config.Default()
	cfg.TargetFPS = 1
	h := window.NewHeadless(window.OptionsFrom(cfg, config.CPU))
	m, err := New(cfg, config.Headless, config.CPU, WithLogger(quiet), WithWindow(h))
	if err != nil {
		t.Fatal(err)
	}
	if err := m.CreateWindow(""); err != nil {
		t.Fatal(err)
	}
	defer m.Destroy()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = m.Run(ctx, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Run error = %v, want DeadlineExceeded", err)
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Run took %v, the one-second frame wait was not interrupted", elapsed)
	}
}

func TestRun_MinimizedWindowWaits(t *testing.T) {
	m, h := newTestManager(t, nil)
	h.Script(func(pump int) []window.Event {
		if pump == 1 {
			return []window.Event{window.IconifyEvent{Iconified: true}}
		}
		return nil
	})

	var minimized []bool
	err := m.RunFunc(closeAfter(m, 3, func() { minimized = append(minimized, m.Flags().Minimized) }))
	if err != nil {
		t.Fatal(err)
	}

	for i, v := range minimized {
		if !v {
			t.Errorf("frame %d: Minimized = false", i+1)
		}
	}
	waits := h.Waits()
	if len(waits) != 2 {
		t.Fatalf("waits = %v, want two", waits)
	}
	for _, w := range waits {
		if w != minimizedWait {
			t.Errorf("wait = %v, want %v", w, minimizedWait)
		}
	}
}

func TestRun_BeforeCreateWindow(t *testing.T) {
	m, err := New(config.Default(), config.Headless, config.CPU, WithLogger(quiet))
	if err != nil {
		t.Fatal(err)
	}
	if err := m.RunFunc(nil); !errors.Is(err, ErrNotCreated) {
		t.Errorf("RunFunc error = %v, want ErrNotCreated", err)
	}
	if _, err := m.VulkanExtensions(); !errors.Is(err, ErrNotCreated) {
		t.Errorf("VulkanExtensions error = %v, want ErrNotCreated", err)
	}
}

func TestNew_Errors(t *testing.T) {
	if _, err := New(config.Default(), config.Headless, config.CPU, WithWindow(nil)); !errors.Is(err, window.ErrNilWindow) {
		t.Errorf("WithWindow(nil) error = %v, want ErrNilWindow", err)
	}

	cfg := config.Default()
	cfg.Width = 0
	_, err := New(cfg, config.Headless, config.CPU)
	var verr *config.ValidationError
	if !errors.As(err, &verr) || verr.Field != "width" {
		t.Errorf("invalid config error = %v, want a width ValidationError", err)
	}
}

func TestNormalizer_NilWindow(t *testing.T) {
	_, err := newNormalizer(nil, input.NewPointer(true), frame.NewFlags(), &config.WindowConfig{}, func(input.Event) {}, quiet)
	if !errors.Is(err, window.ErrNilWindow) {
		t.Errorf("error = %v, want ErrNilWindow", err)
	}
}

func TestCreateWindow(t *testing.T) {
	cfg := config.Default()
	h := window.NewHeadless(window.OptionsFrom(cfg, config.CPU))
	m, err := New(cfg, config.Headless, config.CPU, WithLogger(quiet), WithWindow(h))
	if err != nil {
		t.Fatal(err)
	}

	if err := m.CreateWindow("demo"); err != nil {
		t.Fatal(err)
	}
	if m.Config().Title != "demo" {
		t.Errorf("Title = %q, want demo", m.Config().Title)
	}
	if m.Window() != window.Window(h) {
		t.Error("Window() is not the injected window")
	}
	if err := m.CreateWindow(""); !errors.Is(err, ErrAlreadyCreated) {
		t.Errorf("second CreateWindow error = %v, want ErrAlreadyCreated", err)
	}
	if _, err := m.VulkanExtensions(); !errors.Is(err, window.ErrGraphics) {
		t.Errorf("VulkanExtensions error = %v, want ErrGraphics", err)
	}

	m.Destroy()
	m.Destroy()
	if !h.Closed() {
		t.Error("Destroy did not close the window")
	}
	if err := m.RunFunc(nil); !errors.Is(err, ErrDestroyed) {
		t.Errorf("RunFunc after Destroy error = %v, want ErrDestroyed", err)
	}
}

func TestCreateWindow_OpenGLWithoutContext(t *testing.T) {
	cfg := config.Default()
	h := window.NewHeadless(window.OptionsFrom(cfg, config.OpenGL))
	m, err := New(cfg, config.Headless, config.OpenGL, WithLogger(quiet), WithWindow(h))
	if err != nil {
		t.Fatal(err)
	}

	if err := m.CreateWindow(""); !errors.Is(err, window.ErrGraphics) {
		t.Fatalf("CreateWindow error = %v, want ErrGraphics", err)
	}
	if !h.Closed() {
		t.Error("window left open after a failed CreateWindow")
	}
}

func TestSetCursorEnabled(t *testing.T) {
	m, h := newTestManager(t, nil)

	if !m.CursorEnabled() || !h.CursorEnabled() {
		t.Fatal("cursor should start enabled")
	}

	var moves []input.MousePosition
	m.SetMouseMoveAction(func(p input.MousePosition) { moves = append(moves, p) })

	h.Inject(window.MotionEvent{X: 5, Y: 5}, window.MotionEvent{X: 6, Y: 6})
	m.RunFunc(closeAfter(m, 1, func() { m.SetCursorEnabled(false) }))

	if m.CursorEnabled() || h.CursorEnabled() {
		t.Error("cursor still enabled")
	}

	m.closeRequested.Store(false)
	h.Inject(window.MotionEvent{X: 300, Y: 300})
	m.RunFunc(closeAfter(m, 2, nil))

	if len(moves) != 3 || moves[2].DeltaX != 0 || moves[2].DeltaY != 0 {
		t.Errorf("moves = %+v, want zero delta after capture", moves)
	}
}

func TestMousePosition_SurvivesCursorToggleAndRefocus(t *testing.T) {
	m, h := newTestManager(t, nil)
	want := input.MousePosition{X: 300, Y: 200}

	h.Inject(window.MotionEvent{X: 300, Y: 200})
	m.RunFunc(closeAfter(m, 1, nil))
	if got := m.MousePosition(); got.X != want.X || got.Y != want.Y {
		t.Fatalf("MousePosition() = %+v, want %+v", got, want)
	}

	m.SetCursorEnabled(false)
	if got := m.MousePosition(); got != want {
		t.Errorf("MousePosition() after cursor toggle = %+v, want %+v", got, want)
	}

	m.closeRequested.Store(false)
	h.Inject(window.FocusEvent{Focused: false}, window.FocusEvent{Focused: true})
	m.RunFunc(closeAfter(m, 2, nil))
	if got := m.MousePosition(); got != want {
		t.Errorf("MousePosition() after refocus = %+v, want %+v", got, want)
	}
}

func TestRegistrationHelpers(t *testing.T) {
	m, _ := newTestManager(t, nil)

	m.RegisterKeyAction(input.KeyQ, func() {}, nil)
	m.RegisterMouseButtonAction(input.ButtonMiddle, nil, func() {})
	m.SetMouseMoveAction(func(input.MousePosition) {})

	if !m.HasKeyAction(input.KeyQ) || !m.Keyboard().Has(input.KeyQ) {
		t.Error("KeyQ not registered")
	}
	if !m.HasMouseButtonAction(input.ButtonMiddle) {
		t.Error("middle button not registered")
	}

	m.UnregisterKeyAction(input.KeyQ)
	m.UnregisterMouseButtonAction(input.ButtonMiddle)
	if m.HasKeyAction(input.KeyQ) || m.HasMouseButtonAction(input.ButtonMiddle) {
		t.Error("unregister left actions behind")
	}

	m.ClearKeyActions()
	m.ClearMouseActions()
	if m.HasKeyAction(input.KeyEscape) || m.Mouse().HasMoveAction() {
		t.Error("clear left actions behind")
	}
}

func TestAccessors(t *testing.T) {
	m, _ := newTestManager(t, nil)

	if m.Backend() != config.Headless || m.GraphicsAPI() != config.CPU {
		t.Errorf("Backend/API = %v/%v", m.Backend(), m.GraphicsAPI())
	}
	if len(m.ID()) != 36 {
		t.Errorf("ID() = %q, want a uuid", m.ID())
	}
	if m.ShouldClose() {
		t.Error("ShouldClose() before Close")
	}
	m.Close()
	if !m.ShouldClose() {
		t.Error("ShouldClose() after Close")
	}
}

func TestInfo(t *testing.T) {
	info := Info()
	if !strings.Contains(info, Version) || !strings.Contains(info, "headless") {
		t.Errorf("Info() = %q", info)
	}
	if !BackendAvailable(config.Headless) || !BackendAvailable(config.Terminal) {
		t.Error("headless and terminal must always be available")
	}
}

func TestSetTargetFPS(t *testing.T) {
	m, _ := newTestManager(t, nil)

	m.SetTargetFPS(-5)
	if m.TargetFrameDuration() != 0 {
		t.Errorf("TargetFrameDuration() = %v, want 0", m.TargetFrameDuration())
	}
	if m.Config().TargetFPS != 60 {
		t.Errorf("Config().TargetFPS = %d, want the creation value 60", m.Config().TargetFPS)
	}

	m.SetTargetFPS(100)
	var deltas []float64
	if err := m.RunFunc(closeAfter(m, 2, func() { deltas = append(deltas, m.Flags().DeltaTime) })); err != nil {
		t.Fatal(err)
	}
	if deltas[1] != 10 {
		t.Errorf("DeltaTime = %v, want 10", deltas[1])
	}
}
