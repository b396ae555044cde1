//go:build linux || darwin

package window

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/ebitengine/purego"

	"github.com/tinyrange/wma/internal/config"
	"github.com/tinyrange/wma/internal/gl"
)

const (
	glfwTrue  = 1
	glfwFalse = 0

	glfwPress   = 1
	glfwRelease = 0
	glfwRepeat  = 2

	glfwResizable           = 0x00020003
	glfwClientAPI           = 0x00022001
	glfwContextVersionMajor = 0x00022002
	glfwContextVersionMinor = 0x00022003
	glfwOpenGLForwardCompat = 0x00022006
	glfwOpenGLProfile       = 0x00022008
	glfwOpenGLAPI           = 0x00030001
	glfwNoAPI               = 0
	glfwOpenGLCoreProfile   = 0x00032001

	glfwCursor         = 0x00033001
	glfwCursorNormal   = 0x00034001
	glfwCursorDisabled = 0x00034003
)

var (
	glfwOnce sync.Once
	glfwErr  error
	glfwLib  uintptr

	glfwInit                          func() int32
	glfwTerminate                     func()
	glfwWindowHint                    func(int32, int32)
	glfwCreateWindow                  func(int32, int32, *byte, uintptr, uintptr) uintptr
	glfwDestroyWindow                 func(uintptr)
	glfwGetPrimaryMonitor             func() uintptr
	glfwMakeContextCurrent            func(uintptr)
	glfwSwapInterval                  func(int32)
	glfwSwapBuffers                   func(uintptr)
	glfwGetProcAddress                func(*byte) uintptr
	glfwPollEvents                    func()
	glfwWaitEventsTimeout             func(float64)
	glfwWindowShouldClose             func(uintptr) int32
	glfwSetInputMode                  func(uintptr, int32, int32)
	glfwGetCursorPos                  func(uintptr, *float64, *float64)
	glfwGetWindowSize                 func(uintptr, *int32, *int32)
	glfwVulkanSupported               func() int32
	glfwGetRequiredInstanceExtensions func(*uint32) uintptr
	glfwSetKeyCallback                func(uintptr, uintptr) uintptr
	glfwSetMouseButtonCallback        func(uintptr, uintptr) uintptr
	glfwSetCursorPosCallback          func(uintptr, uintptr) uintptr
	glfwSetScrollCallback             func(uintptr, uintptr) uintptr
	glfwSetWindowSizeCallback         func(uintptr, uintptr) uintptr
	glfwSetWindowFocusCallback        func(uintptr, uintptr) uintptr
	glfwSetWindowIconifyCallback      func(uintptr, uintptr) uintptr
	glfwSetWindowCloseCallback        func(uintptr, uintptr) uintptr
)

// GLFW is a window created through a dynamically loaded GLFW 3.
//
// GLFW delivers input through callbacks fired inside glfwPollEvents. The
// callbacks are closures over this window and only append to its pending
// list; Pump moves the list into the caller's queue once polling returns.
type GLFW struct {
	handle  uintptr
	api     config.GraphicsAPI
	pending []Event
	closed  bool
}

// NewGLFW opens a window and locks the calling goroutine to its OS thread
// until Close.
func NewGLFW(opts Options) (*GLFW, error) {
	runtime.LockOSThread()
	w, err := openGLFW(opts)
	if err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}
	return w, nil
}

func openGLFW(opts Options) (*GLFW, error) {
	if err := loadGLFW(); err != nil {
		return nil, fmt.Errorf("%w: glfw: %v", ErrInit, err)
	}
	if glfwInit() != glfwTrue {
		return nil, fmt.Errorf("%w: glfwInit failed", ErrInit)
	}

	glfwWindowHint(glfwResizable, boolHint(opts.Resizable))
	switch opts.API {
	case config.OpenGL:
		glfwWindowHint(glfwClientAPI, glfwOpenGLAPI)
		glfwWindowHint(glfwContextVersionMajor, 3)
		glfwWindowHint(glfwContextVersionMinor, 3)
		glfwWindowHint(glfwOpenGLProfile, glfwOpenGLCoreProfile)
		if runtime.GOOS == "darwin" {
			glfwWindowHint(glfwOpenGLForwardCompat, glfwTrue)
		}
	case config.Vulkan:
		if glfwVulkanSupported() != glfwTrue {
			glfwTerminate()
			return nil, fmt.Errorf("%w: glfw reports no Vulkan loader", ErrGraphics)
		}
		glfwWindowHint(glfwClientAPI, glfwNoAPI)
	default:
		glfwWindowHint(glfwClientAPI, glfwNoAPI)
	}

	var monitor uintptr
	if opts.Fullscreen {
		monitor = glfwGetPrimaryMonitor()
	}

	handle := glfwCreateWindow(int32(opts.Width), int32(opts.Height), cString(opts.Title), monitor, 0)
	if handle == 0 {
		glfwTerminate()
		return nil, fmt.Errorf("%w: glfwCreateWindow failed", ErrInit)
	}

	w := &GLFW{handle: handle, api: opts.API}

	if opts.API == config.OpenGL {
		glfwMakeContextCurrent(handle)
		interval := int32(0)
		if opts.VSync {
			interval = 1
		}
		glfwSwapInterval(interval)
	}

	w.installCallbacks()
	return w, nil
}

func boolHint(b bool) int32 {
	if b {
		return glfwTrue
	}
	return glfwFalse
}

// installCallbacks registers closures over w. purego never frees
// callbacks, so each window costs a fixed handful of slots.
func (w *GLFW) installCallbacks() {
	glfwSetKeyCallback(w.handle, purego.NewCallback(func(_ uintptr, key, _, action, _ int32) {
		w.pending = append(w.pending, KeyEvent{
			Code:    int64(key),
			Pressed: action != glfwRelease,
			Repeat:  action == glfwRepeat,
		})
	}))
	glfwSetMouseButtonCallback(w.handle, purego.NewCallback(func(_ uintptr, button, action, _ int32) {
		w.pending = append(w.pending, ButtonEvent{Code: button, Pressed: action == glfwPress})
	}))
	glfwSetCursorPosCallback(w.handle, purego.NewCallback(func(_ uintptr, x, y float64) {
		w.pending = append(w.pending, MotionEvent{X: x, Y: y})
	}))
	glfwSetScrollCallback(w.handle, purego.NewCallback(func(_ uintptr, dx, dy float64) {
		w.pending = append(w.pending, ScrollEvent{DX: dx, DY: dy})
	}))
	glfwSetWindowSizeCallback(w.handle, purego.NewCallback(func(_ uintptr, width, height int32) {
		w.pending = append(w.pending, ResizeEvent{Width: int(width), Height: int(height)})
	}))
	glfwSetWindowFocusCallback(w.handle, purego.NewCallback(func(_ uintptr, focused int32) {
		w.pending = append(w.pending, FocusEvent{Focused: focused == glfwTrue})
	}))
	glfwSetWindowIconifyCallback(w.handle, purego.NewCallback(func(_ uintptr, iconified int32) {
		w.pending = append(w.pending, IconifyEvent{Iconified: iconified == glfwTrue})
	}))
	glfwSetWindowCloseCallback(w.handle, purego.NewCallback(func(_ uintptr) {
		w.pending = append(w.pending, CloseEvent{})
	}))
}

func (w *GLFW) Pump(q *Queue) {
	if w.closed {
		return
	}
	glfwPollEvents()
	w.flush(q)
}

func (w *GLFW) Wait(q *Queue, timeout time.Duration) {
	if w.closed {
		return
	}
	glfwWaitEventsTimeout(timeout.Seconds())
	w.flush(q)
}

func (w *GLFW) flush(q *Queue) {
	for _, ev := range w.pending {
		q.Push(ev)
	}
	clear(w.pending)
	w.pending = w.pending[:0]
}

func (w *GLFW) ShouldClose() bool {
	return w.closed || glfwWindowShouldClose(w.handle) == glfwTrue
}

func (w *GLFW) Swap() {
	if !w.closed && w.api == config.OpenGL {
		glfwSwapBuffers(w.handle)
	}
}

func (w *GLFW) GL() (gl.OpenGL, error) {
	if w.closed {
		return nil, ErrClosed
	}
	if w.api != config.OpenGL {
		return nil, fmt.Errorf("%w: window was created for %s", ErrGraphics, w.api)
	}
	return gl.Load(func(name string) uintptr {
		return glfwGetProcAddress(cString(name))
	})
}

func (w *GLFW) SetCursorMode(enabled bool) {
	if w.closed {
		return
	}
	mode := int32(glfwCursorDisabled)
	if enabled {
		mode = glfwCursorNormal
	}
	glfwSetInputMode(w.handle, glfwCursor, mode)
}

func (w *GLFW) CursorPos() (float64, float64) {
	var x, y float64
	if w.closed {
		return x, y
	}
	glfwGetCursorPos(w.handle, &x, &y)
	return x, y
}

func (w *GLFW) Size() (int, int) {
	var width, height int32
	if w.closed {
		return 0, 0
	}
	glfwGetWindowSize(w.handle, &width, &height)
	return int(width), int(height)
}

func (w *GLFW) VulkanExtensions() ([]string, error) {
	if w.closed {
		return nil, ErrClosed
	}
	var n uint32
	arr := glfwGetRequiredInstanceExtensions(&n)
	if arr == 0 {
		return nil, fmt.Errorf("%w: glfw has no Vulkan surface support", ErrGraphics)
	}
	return cStrings(arr, int(n)), nil
}

func (w *GLFW) Keymap() Keymap {
	return glfwKeymap
}

func (w *GLFW) Close() {
	if w.closed {
		return
	}
	w.closed = true
	glfwDestroyWindow(w.handle)
	glfwTerminate()
	runtime.UnlockOSThread()
}

func glfwLibrary() string {
	if runtime.GOOS == "darwin" {
		return "libglfw.3.dylib"
	}
	return "libglfw.so.3"
}

func glfwAvailable() bool {
	return loadGLFW() == nil
}

func loadGLFW() error {
	glfwOnce.Do(func() {
		glfwLib, glfwErr = purego.Dlopen(glfwLibrary(), purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if glfwErr != nil {
			return
		}
		register := func(dst any, name string) {
			purego.RegisterLibFunc(dst, glfwLib, name)
		}
		register(&glfwInit, "glfwInit")
		register(&glfwTerminate, "glfwTerminate")
		register(&glfwWindowHint, "glfwWindowHint")
		register(&glfwCreateWindow, "glfwCreateWindow")
		register(&glfwDestroyWindow, "glfwDestroyWindow")
		register(&glfwGetPrimaryMonitor, "glfwGetPrimaryMonitor")
		register(&glfwMakeContextCurrent, "glfwMakeContextCurrent")
		register(&glfwSwapInterval, "glfwSwapInterval")
		register(&glfwSwapBuffers, "glfwSwapBuffers")
		register(&glfwGetProcAddress, "glfwGetProcAddress")
		register(&glfwPollEvents, "glfwPollEvents")
		register(&glfwWaitEventsTimeout, "glfwWaitEventsTimeout")
		register(&glfwWindowShouldClose, "glfwWindowShouldClose")
		register(&glfwSetInputMode, "glfwSetInputMode")
		register(&glfwGetCursorPos, "glfwGetCursorPos")
		register(&glfwGetWindowSize, "glfwGetWindowSize")
		register(&glfwVulkanSupported, "glfwVulkanSupported")
		register(&glfwGetRequiredInstanceExtensions, "glfwGetRequiredInstanceExtensions")
		register(&glfwSetKeyCallback, "glfwSetKeyCallback")
		register(&glfwSetMouseButtonCallback, "glfwSetMouseButtonCallback")
		register(&glfwSetCursorPosCallback, "glfwSetCursorPosCallback")
		register(&glfwSetScrollCallback, "glfwSetScrollCallback")
		register(&glfwSetWindowSizeCallback, "glfwSetWindowSizeCallback")
		register(&glfwSetWindowFocusCallback, "glfwSetWindowFocusCallback")
		register(&glfwSetWindowIconifyCallback, "glfwSetWindowIconifyCallback")
		register(&glfwSetWindowCloseCallback, "glfwSetWindowCloseCallback")
	})
	return glfwErr
}
