// Package wm ties a native window to the input registries and the frame
// timer and runs the frame loop.
package wm

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/tinyrange/wma/internal/config"
	"github.com/tinyrange/wma/internal/frame"
	"github.com/tinyrange/wma/internal/gl"
	"github.com/tinyrange/wma/internal/input"
	"github.com/tinyrange/wma/internal/window"
)

var (
	// ErrNotCreated is returned by calls that need a window before
	// CreateWindow succeeded.
	ErrNotCreated = errors.New("wm: window not created")

	// ErrAlreadyCreated is returned by a second CreateWindow.
	ErrAlreadyCreated = errors.New("wm: window already created")

	// ErrDestroyed is returned by calls made after Destroy.
	ErrDestroyed = errors.New("wm: manager destroyed")
)

// Manager owns one window and everything the frame loop touches: the
// action registries, the pointer state, the per-frame flags and the
// timer. Except for Close, its methods must be called from the goroutine
// that called CreateWindow.
type Manager struct {
	id      string
	cfg     config.WindowConfig
	backend config.Backend
	api     config.GraphicsAPI
	log     *slog.Logger
	clock   frame.Clock

	win      window.Window
	injected window.Window
	gl       gl.OpenGL
	queue    window.Queue
	norm     *normalizer

	flags      *frame.Flags
	timer      *frame.Timer
	keyboard   *input.Keyboard
	mouse      *input.Mouse
	dispatcher *input.Dispatcher
	pointer    *input.Pointer

	closeRequested atomic.Bool
	destroyed      bool
}

// Option configures a Manager.
type Option func(*Manager) error

// WithLogger sets the logger. The manager adds its own attributes.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) error {
		if l != nil {
			m.log = l
		}
		return nil
	}
}

// WithClock replaces the clock used by the frame timer.
func WithClock(c frame.Clock) Option {
	return func(m *Manager) error {
		if c != nil {
			m.clock = c
		}
		return nil
	}
}

// WithWindow makes CreateWindow adopt w instead of opening a native
// window on the configured backend.
func WithWindow(w window.Window) Option {
	return func(m *Manager) error {
		if w == nil {
			return window.ErrNilWindow
		}
		m.injected = w
		return nil
	}
}

// New returns a manager for a window described by cfg. The window itself
// is opened by CreateWindow.
func New(cfg config.WindowConfig, backend config.Backend, api config.GraphicsAPI, opts ...Option) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("wm: %w", err)
	}

	m := &Manager{
		id:      uuid.NewString(),
		cfg:     cfg,
		backend: backend,
		api:     api,
		log:     slog.Default(),
		clock:   frame.SystemClock{},
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, fmt.Errorf("wm: %w", err)
		}
	}

	m.log = m.log.With(
		slog.String("backend", backend.String()),
		slog.String("api", api.String()),
		slog.String("window", m.id),
	)

	m.flags = frame.NewFlags()
	m.timer = frame.NewTimer(m.flags, m.clock)
	m.timer.SetTargetFPS(cfg.TargetFPS)
	m.keyboard = input.NewKeyboard()
	m.mouse = input.NewMouse()
	m.dispatcher = input.NewDispatcher(m.keyboard, m.mouse)
	m.pointer = input.NewPointer(true)
	m.pointer.SetSensitivity(cfg.Sensitivity)

	if cfg.CloseOnEscape {
		m.keyboard.Register(input.KeyEscape, input.KeyAction{OnPress: m.Close})
	}

	return m, nil
}

// CreateWindow opens the window. A non-empty title replaces the configured
// one.
func (m *Manager) CreateWindow(title string) error {
	if m.destroyed {
		return ErrDestroyed
	}
	if m.win != nil {
		return ErrAlreadyCreated
	}
	if title != "" {
		m.cfg.Title = title
	}

	w := m.injected
	if w == nil {
		var err error
		w, err = window.Open(m.backend, window.OptionsFrom(m.cfg, m.api))
		if err != nil {
			return fmt.Errorf("wm: create %s window: %w", m.backend, err)
		}
	}

	if err := m.attach(w); err != nil {
		w.Close()
		return err
	}

	m.log.Info("window created",
		"title", m.cfg.Title,
		"width", m.cfg.Width,
		"height", m.cfg.Height,
		"keymap", w.Keymap().Name)
	return nil
}

func (m *Manager) attach(w window.Window) error {
	keymap := w.Keymap()

	// The pointer is rebuilt for the backend's axis convention; settings
	// made before the window existed carry over.
	p := input.NewPointer(keymap.InvertY)
	p.SetSensitivity(m.pointer.Sensitivity())
	p.SetEnabled(m.pointer.Enabled())
	p.Seed(w.CursorPos())

	norm, err := newNormalizer(w, p, m.flags, &m.cfg, m.dispatcher.Dispatch, m.log)
	if err != nil {
		return err
	}

	if m.api == config.OpenGL {
		m.gl, err = w.GL()
		if err != nil {
			return fmt.Errorf("wm: load OpenGL: %w", err)
		}
		width, height := w.Size()
		m.gl.Viewport(0, 0, int32(width), int32(height))
		m.log.Debug("OpenGL loaded",
			"vendor", m.gl.GetString(gl.Vendor),
			"version", m.gl.GetString(gl.Version))
	}

	w.SetCursorMode(p.Enabled())

	m.win = w
	m.pointer = p
	m.norm = norm
	return nil
}

// Destroy closes the window. Later calls do nothing.
func (m *Manager) Destroy() {
	if m.destroyed {
		return
	}
	m.destroyed = true
	if m.win != nil {
		m.win.Close()
		m.log.Info("window destroyed", "frames", m.flags.FrameCounter)
	}
}

// Close asks the loop to stop at the end of the current iteration. It may
// be called from any goroutine.
func (m *Manager) Close() {
	m.closeRequested.Store(true)
}

// ShouldClose reports whether the loop will stop at the next boundary.
func (m *Manager) ShouldClose() bool {
	if m.closeRequested.Load() {
		return true
	}
	return m.win != nil && m.win.ShouldClose()
}

func (m *Manager) RegisterKeyAction(key input.Key, onPress, onRelease func()) {
	m.keyboard.Register(key, input.KeyAction{OnPress: onPress, OnRelease: onRelease})
}

func (m *Manager) UnregisterKeyAction(key input.Key) {
	m.keyboard.Unregister(key)
}

func (m *Manager) HasKeyAction(key input.Key) bool {
	return m.keyboard.Has(key)
}

// ClearKeyActions removes every key action, the default Escape action
// included.
func (m *Manager) ClearKeyActions() {
	m.keyboard.Clear()
}

func (m *Manager) RegisterMouseButtonAction(button input.Button, onPress, onRelease func()) {
	m.mouse.Register(button, input.MouseAction{OnPress: onPress, OnRelease: onRelease})
}

func (m *Manager) UnregisterMouseButtonAction(button input.Button) {
	m.mouse.Unregister(button)
}

func (m *Manager) HasMouseButtonAction(button input.Button) bool {
	return m.mouse.Has(button)
}

func (m *Manager) SetMouseMoveAction(fn func(input.MousePosition)) {
	m.mouse.SetMoveAction(fn)
}

func (m *Manager) SetMouseScrollAction(fn func(input.MouseScroll)) {
	m.mouse.SetScrollAction(fn)
}

func (m *Manager) ClearMouseActions() {
	m.mouse.Clear()
}

// Keyboard gives direct access to the key registry.
func (m *Manager) Keyboard() *input.Keyboard { return m.keyboard }

// Mouse gives direct access to the mouse registry.
func (m *Manager) Mouse() *input.Mouse { return m.mouse }

// Flags returns the live per-frame flags.
func (m *Manager) Flags() *frame.Flags { return m.flags }

// Config returns the window configuration, including sizes reported by
// resize notifications.
func (m *Manager) Config() config.WindowConfig { return m.cfg }

func (m *Manager) Backend() config.Backend { return m.backend }

func (m *Manager) GraphicsAPI() config.GraphicsAPI { return m.api }

// ID identifies this manager in log records.
func (m *Manager) ID() string { return m.id }

// Window returns the native window, or nil before CreateWindow.
func (m *Manager) Window() window.Window { return m.win }

// MousePosition returns the most recent cursor sample.
func (m *Manager) MousePosition() input.MousePosition {
	return m.pointer.Position()
}

func (m *Manager) Sensitivity() float64 {
	return m.pointer.Sensitivity()
}

// SetSensitivity scales deltas from the next processed movement on.
func (m *Manager) SetSensitivity(s float64) {
	m.pointer.SetSensitivity(s)
}

// SetTargetFPS changes the frame cap from the next iteration on. Zero or
// a negative value removes it. Config keeps the creation-time value.
func (m *Manager) SetTargetFPS(fps int) {
	m.timer.SetTargetFPS(fps)
}

// TargetFrameDuration returns the live frame budget in milliseconds, or 0
// when the loop is uncapped.
func (m *Manager) TargetFrameDuration() float64 {
	return m.timer.TargetFrameDuration()
}

func (m *Manager) CursorEnabled() bool {
	return m.pointer.Enabled()
}

// SetCursorEnabled shows and frees the cursor, or hides and captures it.
// Changing the mode restarts delta tracking so the jump caused by the
// capture is not reported as movement.
func (m *Manager) SetCursorEnabled(enabled bool) {
	if m.pointer.Enabled() == enabled {
		return
	}
	m.pointer.SetEnabled(enabled)
	m.pointer.Reset()
	if m.win != nil {
		m.win.SetCursorMode(enabled)
	}
}

// VulkanExtensions lists the instance extensions the window's surface
// needs.
func (m *Manager) VulkanExtensions() ([]string, error) {
	if m.win == nil {
		return nil, ErrNotCreated
	}
	return m.win.VulkanExtensions()
}
