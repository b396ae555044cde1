// Package window is the native side of wma: every backend opens one window,
// collects its native input into a Queue when pumped and exposes the few
// native services the loop needs.
package window

import (
	"errors"
	"fmt"
	"time"

	"github.com/tinyrange/wma/internal/config"
	"github.com/tinyrange/wma/internal/gl"
	"github.com/tinyrange/wma/internal/input"
)

var (
	// ErrInit means the native library could not be loaded or the window
	// could not be created.
	ErrInit = errors.New("window: initialization failed")

	// ErrGraphics means the graphics context could not be set up or the
	// backend does not support the requested API.
	ErrGraphics = errors.New("window: graphics api unsupported")

	// ErrBackendUnavailable means the backend is not built for this OS.
	ErrBackendUnavailable = errors.New("window: backend unavailable")

	// ErrNilWindow is returned when a nil Window is handed to code that
	// needs a live one.
	ErrNilWindow = errors.New("window: nil window")

	// ErrClosed is returned by queries made after Close.
	ErrClosed = errors.New("window: closed")
)

// Window is an open native window.
//
// All methods except where noted must be called from the goroutine that
// created the window, which native libraries require to be locked to its
// OS thread.
type Window interface {
	// Pump processes pending native events and appends the resulting
	// records to q in arrival order. It never dispatches anything itself.
	Pump(q *Queue)

	// ShouldClose reports a close requested by the native side.
	ShouldClose() bool

	// Swap presents the back buffer of an OpenGL window. Other windows
	// ignore it.
	Swap()

	// GL loads the OpenGL entry points for the window's context.
	GL() (gl.OpenGL, error)

	// SetCursorMode shows and frees the cursor when enabled, hides and
	// captures it otherwise.
	SetCursorMode(enabled bool)

	// CursorPos returns the cursor position in window coordinates.
	CursorPos() (x, y float64)

	// Size returns the current window size.
	Size() (width, height int)

	// VulkanExtensions lists the instance extensions a Vulkan surface for
	// this window needs.
	VulkanExtensions() ([]string, error)

	// Keymap describes how to read this window's native codes.
	Keymap() Keymap

	// Close destroys the native window. It is safe to call more than once.
	Close()
}

// Waiter is implemented by windows that can block until native input
// arrives. Wait collects whatever arrived into q, like Pump.
type Waiter interface {
	Wait(q *Queue, timeout time.Duration)
}

// Keymap translates a backend family's native codes into the unified code
// spaces.
type Keymap struct {
	Name   string
	Key    func(code int64) input.Key
	Button func(code int32) input.Button

	// InvertY flips mouse deltas for backends whose origin is the top-left
	// corner with Y growing downwards.
	InvertY bool
}

// Options describes the window to open.
type Options struct {
	Title      string
	Width      int
	Height     int
	Resizable  bool
	Fullscreen bool
	VSync      bool
	API        config.GraphicsAPI
}

// OptionsFrom builds Options from a window configuration.
func OptionsFrom(cfg config.WindowConfig, api config.GraphicsAPI) Options {
	return Options{
		Title:      cfg.Title,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Resizable:  cfg.Resizable,
		Fullscreen: cfg.Fullscreen,
		VSync:      cfg.VSync,
		API:        api,
	}
}

// Open creates a window on backend.
func Open(backend config.Backend, opts Options) (Window, error) {
	switch backend {
	case config.GLFW:
		return open(NewGLFW(opts))
	case config.SDL2:
		return open(NewSDL(opts))
	case config.X11:
		return open(NewX11(opts))
	case config.Terminal:
		return open(NewTerminal(opts))
	case config.Headless:
		return NewHeadless(opts), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrBackendUnavailable, backend)
}

// open keeps a failed constructor's typed nil out of the interface.
func open[W Window](w W, err error) (Window, error) {
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Available reports whether backend is built for this OS and its native
// library can be loaded.
func Available(backend config.Backend) bool {
	switch backend {
	case config.GLFW:
		return glfwAvailable()
	case config.SDL2:
		return sdlAvailable()
	case config.X11:
		return x11Available()
	case config.Terminal, config.Headless:
		return true
	}
	return false
}
