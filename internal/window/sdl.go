//go:build linux || darwin

package window

import (
	"encoding/binary"
	"fmt"
	"runtime"
	"sync"
	"time"
	"unsafe"

	"github.com/ebitengine/purego"

	"github.com/tinyrange/wma/internal/config"
	"github.com/tinyrange/wma/internal/gl"
)

const (
	sdlInitVideo  = 0x00000020
	sdlInitEvents = 0x00004000

	sdlWindowFullscreenDesktop = 0x00001001
	sdlWindowOpenGL            = 0x00000002
	sdlWindowShown             = 0x00000004
	sdlWindowResizable         = 0x00000020
	sdlWindowVulkan            = 0x10000000

	sdlWindowPosCentered = 0x2FFF0000

	sdlGLDoubleBuffer        = 5
	sdlGLContextMajorVersion = 17
	sdlGLContextMinorVersion = 18
	sdlGLContextProfileMask  = 21
	sdlGLContextProfileCore  = 1
)

var (
	sdlOnce sync.Once
	sdlErr  error
	sdlLib  uintptr

	sdlInit                        func(uint32) int32
	sdlQuitLib                     func()
	sdlGetError                    func() string
	sdlCreateWindow                func(*byte, int32, int32, int32, int32, uint32) uintptr
	sdlDestroyWindow               func(uintptr)
	sdlGetWindowSize               func(uintptr, *int32, *int32)
	sdlPollEvent                   func(*[sdlEventSize]byte) int32
	sdlWaitEventTimeout            func(*[sdlEventSize]byte, int32) int32
	sdlSetRelativeMouseMode        func(int32) int32
	sdlGetMouseState               func(*int32, *int32) uint32
	sdlGLSetAttribute              func(int32, int32) int32
	sdlGLCreateContext             func(uintptr) uintptr
	sdlGLDeleteContext             func(uintptr)
	sdlGLSetSwapInterval           func(int32) int32
	sdlGLSwapWindow                func(uintptr)
	sdlGLGetProcAddress            func(*byte) uintptr
	sdlVulkanGetInstanceExtensions func(uintptr, *uint32, uintptr) int32
)

// SDL is a window created through a dynamically loaded SDL2.
type SDL struct {
	window uintptr
	ctx    uintptr
	api    config.GraphicsAPI
	buf    [sdlEventSize]byte
	closed bool

	// In relative mouse mode SDL stops moving the reported position, so
	// motion is rebuilt from the relative offsets.
	relative bool
	vx, vy   float64
}

// NewSDL opens a window and locks the calling goroutine to its OS thread
// until Close.
func NewSDL(opts Options) (*SDL, error) {
	runtime.LockOSThread()
	w, err := openSDL(opts)
	if err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}
	return w, nil
}

func openSDL(opts Options) (*SDL, error) {
	if err := loadSDL(); err != nil {
		return nil, fmt.Errorf("%w: sdl2: %v", ErrInit, err)
	}
	if sdlInit(sdlInitVideo|sdlInitEvents) != 0 {
		return nil, fmt.Errorf("%w: SDL_Init: %s", ErrInit, sdlGetError())
	}

	flags := uint32(sdlWindowShown)
	if opts.Resizable {
		flags |= sdlWindowResizable
	}
	if opts.Fullscreen {
		flags |= sdlWindowFullscreenDesktop
	}
	switch opts.API {
	case config.OpenGL:
		flags |= sdlWindowOpenGL
		sdlGLSetAttribute(sdlGLDoubleBuffer, 1)
		sdlGLSetAttribute(sdlGLContextMajorVersion, 3)
		sdlGLSetAttribute(sdlGLContextMinorVersion, 3)
		sdlGLSetAttribute(sdlGLContextProfileMask, sdlGLContextProfileCore)
	case config.Vulkan:
		flags |= sdlWindowVulkan
	}

	handle := sdlCreateWindow(cString(opts.Title),
		sdlWindowPosCentered, sdlWindowPosCentered,
		int32(opts.Width), int32(opts.Height), flags)
	if handle == 0 {
		err := sdlGetError()
		sdlQuitLib()
		if opts.API == config.Vulkan {
			return nil, fmt.Errorf("%w: SDL_CreateWindow: %s", ErrGraphics, err)
		}
		return nil, fmt.Errorf("%w: SDL_CreateWindow: %s", ErrInit, err)
	}

	w := &SDL{window: handle, api: opts.API}

	if opts.API == config.OpenGL {
		w.ctx = sdlGLCreateContext(handle)
		if w.ctx == 0 {
			err := sdlGetError()
			w.destroy()
			return nil, fmt.Errorf("%w: SDL_GL_CreateContext: %s", ErrGraphics, err)
		}
		interval := int32(0)
		if opts.VSync {
			interval = 1
		}
		sdlGLSetSwapInterval(interval)
	}

	return w, nil
}

func (w *SDL) Pump(q *Queue) {
	if w.closed {
		return
	}
	for sdlPollEvent(&w.buf) != 0 {
		w.push(q)
	}
}

// Wait blocks in SDL_WaitEventTimeout for the first event, then drains
// whatever else is pending.
func (w *SDL) Wait(q *Queue, timeout time.Duration) {
	if w.closed {
		return
	}
	if sdlWaitEventTimeout(&w.buf, int32(timeout.Milliseconds())) != 0 {
		w.push(q)
	}
	w.Pump(q)
}

func (w *SDL) push(q *Queue) {
	ev, ok := decodeSDL(&w.buf)
	if !ok {
		return
	}
	switch ev.(type) {
	case MotionEvent:
		if w.relative {
			// SDL_MouseMotionEvent: xrel@28 yrel@32
			le := binary.LittleEndian
			w.vx += float64(int32(le.Uint32(w.buf[28:])))
			w.vy += float64(int32(le.Uint32(w.buf[32:])))
			ev = MotionEvent{X: w.vx, Y: w.vy}
		}
	case CloseEvent:
		w.closed = true
	}
	q.Push(ev)
}

func (w *SDL) ShouldClose() bool {
	return w.closed
}

func (w *SDL) Swap() {
	if w.ctx != 0 {
		sdlGLSwapWindow(w.window)
	}
}

func (w *SDL) GL() (gl.OpenGL, error) {
	if w.window == 0 {
		return nil, ErrClosed
	}
	if w.ctx == 0 {
		return nil, fmt.Errorf("%w: window was created for %s", ErrGraphics, w.api)
	}
	return gl.Load(func(name string) uintptr {
		return sdlGLGetProcAddress(cString(name))
	})
}

func (w *SDL) SetCursorMode(enabled bool) {
	if w.window == 0 {
		return
	}
	if enabled {
		sdlSetRelativeMouseMode(0)
		w.relative = false
		return
	}
	if !w.relative {
		w.vx, w.vy = w.CursorPos()
	}
	sdlSetRelativeMouseMode(1)
	w.relative = true
}

func (w *SDL) CursorPos() (float64, float64) {
	if w.relative {
		return w.vx, w.vy
	}
	if w.window == 0 {
		return 0, 0
	}
	var x, y int32
	sdlGetMouseState(&x, &y)
	return float64(x), float64(y)
}

func (w *SDL) Size() (int, int) {
	var width, height int32
	if w.window == 0 {
		return 0, 0
	}
	sdlGetWindowSize(w.window, &width, &height)
	return int(width), int(height)
}

func (w *SDL) VulkanExtensions() ([]string, error) {
	if w.window == 0 {
		return nil, ErrClosed
	}
	if w.api != config.Vulkan {
		return nil, fmt.Errorf("%w: window was created for %s", ErrGraphics, w.api)
	}
	var n uint32
	if sdlVulkanGetInstanceExtensions(w.window, &n, 0) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrGraphics, sdlGetError())
	}
	names := make([]uintptr, n)
	if n > 0 && sdlVulkanGetInstanceExtensions(w.window, &n, uintptr(unsafe.Pointer(&names[0]))) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrGraphics, sdlGetError())
	}
	if n == 0 {
		return nil, nil
	}
	return cStrings(uintptr(unsafe.Pointer(&names[0])), int(n)), nil
}

func (w *SDL) Keymap() Keymap {
	return sdlKeymap
}

func (w *SDL) Close() {
	if w.window == 0 {
		return
	}
	w.destroy()
	runtime.UnlockOSThread()
}

func (w *SDL) destroy() {
	w.closed = true
	if w.ctx != 0 {
		sdlGLDeleteContext(w.ctx)
		w.ctx = 0
	}
	sdlDestroyWindow(w.window)
	w.window = 0
	sdlQuitLib()
}

func sdlLibrary() string {
	if runtime.GOOS == "darwin" {
		return "libSDL2-2.0.0.dylib"
	}
	return "libSDL2-2.0.so.0"
}

func sdlAvailable() bool {
	return loadSDL() == nil
}

func loadSDL() error {
	sdlOnce.Do(func() {
		sdlLib, sdlErr = purego.Dlopen(sdlLibrary(), purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if sdlErr != nil {
			return
		}
		register := func(dst any, name string) {
			purego.RegisterLibFunc(dst, sdlLib, name)
		}
		register(&sdlInit, "SDL_Init")
		register(&sdlQuitLib, "SDL_Quit")
		register(&sdlGetError, "SDL_GetError")
		register(&sdlCreateWindow, "SDL_CreateWindow")
		register(&sdlDestroyWindow, "SDL_DestroyWindow")
		register(&sdlGetWindowSize, "SDL_GetWindowSize")
		register(&sdlPollEvent, "SDL_PollEvent")
		register(&sdlWaitEventTimeout, "SDL_WaitEventTimeout")
		register(&sdlSetRelativeMouseMode, "SDL_SetRelativeMouseMode")
		register(&sdlGetMouseState, "SDL_GetMouseState")
		register(&sdlGLSetAttribute, "SDL_GL_SetAttribute")
		register(&sdlGLCreateContext, "SDL_GL_CreateContext")
		register(&sdlGLDeleteContext, "SDL_GL_DeleteContext")
		register(&sdlGLSetSwapInterval, "SDL_GL_SetSwapInterval")
		register(&sdlGLSwapWindow, "SDL_GL_SwapWindow")
		register(&sdlGLGetProcAddress, "SDL_GL_GetProcAddress")
		register(&sdlVulkanGetInstanceExtensions, "SDL_Vulkan_GetInstanceExtensions")
	})
	return sdlErr
}
