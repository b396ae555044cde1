//go:build linux

package window

import (
	"fmt"
	"runtime"
	"sync"
	"time"
	"unsafe"

	"github.com/ebitengine/purego"
	"golang.org/x/sys/unix"

	"github.com/tinyrange/wma/internal/config"
	"github.com/tinyrange/wma/internal/gl"
)

const (
	glxRGBA         = 4
	glxDoubleBuffer = 5
	glxDepthSize    = 12
	glxNone         = 0

	inputOutput = 1

	keyPressMask        = 1 << 0
	keyReleaseMask      = 1 << 1
	buttonPressMask     = 1 << 2
	buttonReleaseMask   = 1 << 3
	pointerMotionMask   = 1 << 6
	exposureMask        = 1 << 15
	structureNotifyMask = 1 << 17
	focusChangeMask     = 1 << 21

	grabModeAsync = 1
	currentTime   = 0
	xaAtom        = 4
	propReplace   = 0

	pMinSize = 1 << 4
	pMaxSize = 1 << 5
)

type xVisualInfo struct {
	Visual       uintptr
	VisualID     uint
	Screen       int32
	Depth        int32
	Class        int32
	RedMask      uint64
	GreenMask    uint64
	BlueMask     uint64
	ColormapSize int32
	BitsPerRGB   int32
	MapEntries   int32
	pad          int32
}

type xSetWindowAttributes struct {
	BackgroundPixmap uintptr
	BackgroundPixel  uint64
	BorderPixmap     uint64
	BorderPixel      uint64
	BitGravity       int32
	WinGravity       int32
	BackingStore     int32
	BackingPlanes    uint64
	BackingPixel     uint64
	SaveUnder        int32
	EventMask        int64
	DoNotPropagate   int64
	OverrideRedirect int32
	Colormap         uintptr
	Cursor           uintptr
}

type xSizeHints struct {
	Flags                  int64
	X, Y, Width, Height    int32
	MinWidth, MinHeight    int32
	MaxWidth, MaxHeight    int32
	WidthInc, HeightInc    int32
	MinAspectX, MinAspectY int32
	MaxAspectX, MaxAspectY int32
	BaseWidth, BaseHeight  int32
	WinGravity             int32
}

type xColor struct {
	Pixel            uint64
	Red, Green, Blue uint16
	Flags            uint8
	pad              uint8
}

var (
	x11Once sync.Once
	x11Err  error
	x11lib  uintptr
	gllib   uintptr

	xOpenDisplay               func(*byte) uintptr
	xDefaultScreen             func(uintptr) int32
	xDefaultVisual             func(uintptr, int32) uintptr
	xDefaultDepth              func(uintptr, int32) int32
	xRootWindow                func(uintptr, int32) uintptr
	xCreateColormap            func(uintptr, uintptr, uintptr, int32) uintptr
	xCreateWindow              func(uintptr, uintptr, int32, int32, uint32, uint32, uint32, int32, uint32, uintptr, uint64, unsafe.Pointer) uintptr
	xMapWindow                 func(uintptr, uintptr) int32
	xStoreName                 func(uintptr, uintptr, *byte) int32
	xInternAtom                func(uintptr, *byte, int32) uintptr
	xSetWMProtocols            func(uintptr, uintptr, *uintptr, int32) int32
	xSetWMNormalHints          func(uintptr, uintptr, *xSizeHints)
	xChangeProperty            func(uintptr, uintptr, uintptr, uintptr, int32, int32, unsafe.Pointer, int32) int32
	xSelectInput               func(uintptr, uintptr, int64)
	xPending                   func(uintptr) int32
	xNextEvent                 func(uintptr, unsafe.Pointer)
	xFlush                     func(uintptr) int32
	xConnectionNumber          func(uintptr) int32
	xLookupKeysym              func(unsafe.Pointer, int32) uint64
	xkbSetDetectableAutoRepeat func(uintptr, int32, *int32) int32
	xGetGeometry               func(uintptr, uintptr, *uintptr, *int32, *int32, *uint32, *uint32, *uint32, *uint32) int32
	xQueryPointer              func(uintptr, uintptr, *uintptr, *uintptr, *int32, *int32, *int32, *int32, *uint32) int32
	xGrabPointer               func(uintptr, uintptr, int32, uint32, int32, int32, uintptr, uintptr, uint64) int32
	xUngrabPointer             func(uintptr, uint64) int32
	xCreateBitmapFromData      func(uintptr, uintptr, *byte, uint32, uint32) uintptr
	xCreatePixmapCursor        func(uintptr, uintptr, uintptr, *xColor, *xColor, uint32, uint32) uintptr
	xFreePixmap                func(uintptr, uintptr) int32
	xDefineCursor              func(uintptr, uintptr, uintptr) int32
	xUndefineCursor            func(uintptr, uintptr) int32
	xFreeCursor                func(uintptr, uintptr) int32
	xDisplayWidth              func(uintptr, int32) int32
	xDisplayHeight             func(uintptr, int32) int32
	xDestroyWindow             func(uintptr, uintptr) int32
	xCloseDisplay              func(uintptr) int32

	glxChooseVisual    func(uintptr, int32, *int32) *xVisualInfo
	glxCreateContext   func(uintptr, *xVisualInfo, uintptr, int32) uintptr
	glxMakeCurrent     func(uintptr, uintptr, uintptr) int32
	glxSwapBuffers     func(uintptr, uintptr)
	glxDestroyContext  func(uintptr, uintptr)
	glxSwapIntervalEXT func(uintptr, uintptr, int32)
)

// X11 is a window opened directly on an X server through Xlib, with a GLX
// context for OpenGL windows.
type X11 struct {
	display  uintptr
	window   uintptr
	ctx      uintptr
	blank    uintptr
	wmDelete uintptr
	decoder  *x11Decoder
	closed   bool
	grabbed  bool
}

// NewX11 opens a window on $DISPLAY and locks the calling goroutine to its
// OS thread until Close.
func NewX11(opts Options) (*X11, error) {
	runtime.LockOSThread()
	w, err := openX11(opts)
	if err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}
	return w, nil
}

func openX11(opts Options) (*X11, error) {
	if err := ensureX11(opts.API == config.OpenGL); err != nil {
		return nil, fmt.Errorf("%w: x11: %v", ErrInit, err)
	}

	dpy := xOpenDisplay(nil)
	if dpy == 0 {
		return nil, fmt.Errorf("%w: XOpenDisplay failed", ErrInit)
	}

	screen := xDefaultScreen(dpy)
	root := xRootWindow(dpy, screen)

	width, height := opts.Width, opts.Height
	if opts.Fullscreen {
		width, height = int(xDisplayWidth(dpy, screen)), int(xDisplayHeight(dpy, screen))
	}

	visual, depth := xDefaultVisual(dpy, screen), xDefaultDepth(dpy, screen)
	var vi *xVisualInfo
	if opts.API == config.OpenGL {
		attrs := []int32{glxRGBA, glxDoubleBuffer, glxDepthSize, 24, glxNone}
		vi = glxChooseVisual(dpy, screen, &attrs[0])
		if vi == nil {
			xCloseDisplay(dpy)
			return nil, fmt.Errorf("%w: glXChooseVisual found no double-buffered RGBA visual", ErrGraphics)
		}
		visual, depth = vi.Visual, vi.Depth
	}

	var swa xSetWindowAttributes
	swa.Colormap = xCreateColormap(dpy, root, visual, 0)
	swa.EventMask = exposureMask | structureNotifyMask | keyPressMask | keyReleaseMask |
		buttonPressMask | buttonReleaseMask | pointerMotionMask | focusChangeMask

	const (
		cwColormap    = 1 << 13
		cwEventMask   = 1 << 11
		cwBorderPixel = 1 << 3
	)

	win := xCreateWindow(
		dpy, root,
		0, 0,
		uint32(width), uint32(height),
		0,
		depth,
		inputOutput,
		visual,
		cwBorderPixel|cwColormap|cwEventMask,
		unsafe.Pointer(&swa),
	)
	if win == 0 {
		xCloseDisplay(dpy)
		return nil, fmt.Errorf("%w: XCreateWindow failed", ErrInit)
	}
	xSelectInput(dpy, win, swa.EventMask)

	xStoreName(dpy, win, cString(opts.Title))

	if !opts.Resizable {
		hints := xSizeHints{
			Flags:     pMinSize | pMaxSize,
			MinWidth:  int32(width),
			MinHeight: int32(height),
			MaxWidth:  int32(width),
			MaxHeight: int32(height),
		}
		xSetWMNormalHints(dpy, win, &hints)
	}
	if opts.Fullscreen {
		state := xInternAtom(dpy, cString("_NET_WM_STATE"), 0)
		full := xInternAtom(dpy, cString("_NET_WM_STATE_FULLSCREEN"), 0)
		xChangeProperty(dpy, win, state, xaAtom, 32, propReplace, unsafe.Pointer(&full), 1)
	}

	wmDelete := xInternAtom(dpy, cString("WM_DELETE_WINDOW"), 0)
	xSetWMProtocols(dpy, win, &wmDelete, 1)

	// Without this the server reports every auto-repeat as a release and
	// press pair.
	xkbSetDetectableAutoRepeat(dpy, 1, nil)

	xMapWindow(dpy, win)

	w := &X11{
		display:  dpy,
		window:   win,
		wmDelete: wmDelete,
		decoder:  newX11Decoder(uint64(wmDelete), width, height),
	}

	if opts.API == config.OpenGL {
		ctx := glxCreateContext(dpy, vi, 0, 1)
		if ctx == 0 {
			w.destroy()
			return nil, fmt.Errorf("%w: glXCreateContext failed", ErrGraphics)
		}
		w.ctx = ctx
		if glxMakeCurrent(dpy, win, ctx) == 0 {
			w.destroy()
			return nil, fmt.Errorf("%w: glXMakeCurrent failed", ErrGraphics)
		}
		if glxSwapIntervalEXT != nil {
			interval := int32(0)
			if opts.VSync {
				interval = 1
			}
			glxSwapIntervalEXT(dpy, win, interval)
		}
	}

	return w, nil
}

func (w *X11) Pump(q *Queue) {
	if w.closed {
		return
	}

	var ev [192]byte
	for xPending(w.display) > 0 {
		xNextEvent(w.display, unsafe.Pointer(&ev[0]))

		var keysym uint64
		if t := *(*int32)(unsafe.Pointer(&ev[0])); t == xKeyPress || t == xKeyRelease {
			keysym = xLookupKeysym(unsafe.Pointer(&ev[0]), 0)
		}

		rec, ok := w.decoder.decode(ev[:], keysym)
		if !ok {
			continue
		}
		if _, isClose := rec.(CloseEvent); isClose {
			w.closed = true
		}
		q.Push(rec)
	}
}

// Wait blocks on the display connection until the server has something to
// say or timeout passes.
func (w *X11) Wait(q *Queue, timeout time.Duration) {
	if w.closed {
		return
	}
	xFlush(w.display)
	if xPending(w.display) == 0 {
		fds := []unix.PollFd{{Fd: xConnectionNumber(w.display), Events: unix.POLLIN}}
		_, _ = unix.Poll(fds, int(timeout/time.Millisecond))
	}
	w.Pump(q)
}

func (w *X11) ShouldClose() bool {
	return w.closed
}

func (w *X11) Swap() {
	if w.ctx != 0 && w.display != 0 && w.window != 0 {
		glxSwapBuffers(w.display, w.window)
	}
}

func (w *X11) GL() (gl.OpenGL, error) {
	if w.display == 0 {
		return nil, ErrClosed
	}
	if w.ctx == 0 {
		return nil, fmt.Errorf("%w: window has no GLX context", ErrGraphics)
	}
	return gl.LoadLibrary()
}

func (w *X11) SetCursorMode(enabled bool) {
	if w.display == 0 {
		return
	}
	if enabled {
		if w.grabbed {
			xUngrabPointer(w.display, currentTime)
			w.grabbed = false
		}
		xUndefineCursor(w.display, w.window)
		return
	}

	if w.blank == 0 {
		var data byte
		var black xColor
		pix := xCreateBitmapFromData(w.display, w.window, &data, 1, 1)
		w.blank = xCreatePixmapCursor(w.display, pix, pix, &black, &black, 0, 0)
		xFreePixmap(w.display, pix)
	}
	xDefineCursor(w.display, w.window, w.blank)

	const mask = buttonPressMask | buttonReleaseMask | pointerMotionMask
	if xGrabPointer(w.display, w.window, 1, mask, grabModeAsync, grabModeAsync, w.window, w.blank, currentTime) == 0 {
		w.grabbed = true
	}
}

func (w *X11) CursorPos() (float64, float64) {
	var root, child uintptr
	var rootX, rootY, winX, winY int32
	var mask uint32
	if w.display == 0 {
		return 0, 0
	}
	if xQueryPointer(w.display, w.window, &root, &child, &rootX, &rootY, &winX, &winY, &mask) == 0 {
		return 0, 0
	}
	return float64(winX), float64(winY)
}

func (w *X11) Size() (int, int) {
	var root uintptr
	var x, y int32
	var width, height uint32
	var border, depth uint32
	if w.display == 0 {
		return 0, 0
	}
	if xGetGeometry(w.display, w.window, &root, &x, &y, &width, &height, &border, &depth) == 0 {
		return 0, 0
	}
	return int(width), int(height)
}

func (w *X11) VulkanExtensions() ([]string, error) {
	return []string{"VK_KHR_surface", "VK_KHR_xlib_surface"}, nil
}

func (w *X11) Keymap() Keymap {
	return x11Keymap
}

func (w *X11) Close() {
	if w.display == 0 {
		return
	}
	w.destroy()
	runtime.UnlockOSThread()
}

func (w *X11) destroy() {
	if w.ctx != 0 {
		glxMakeCurrent(w.display, 0, 0)
		glxDestroyContext(w.display, w.ctx)
		w.ctx = 0
	}
	if w.grabbed {
		xUngrabPointer(w.display, currentTime)
		w.grabbed = false
	}
	if w.blank != 0 {
		xFreeCursor(w.display, w.blank)
		w.blank = 0
	}
	if w.window != 0 {
		xDestroyWindow(w.display, w.window)
		w.window = 0
	}
	xCloseDisplay(w.display)
	w.display = 0
	w.closed = true
}

// x11Available reports whether libX11 can be loaded.
func x11Available() bool {
	return ensureX11(false) == nil
}

// ensureX11 loads libX11 once, and libGL when withGL is set.
func ensureX11(withGL bool) error {
	x11Once.Do(func() {
		x11lib, x11Err = purego.Dlopen("libX11.so.6", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if x11Err == nil {
			registerX11()
		}
	})
	if x11Err != nil {
		return x11Err
	}
	if withGL && gllib == 0 {
		var err error
		gllib, err = purego.Dlopen("libGL.so.1", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			return err
		}
		registerGLX()
	}
	return nil
}

func registerX11() {
	purego.RegisterLibFunc(&xOpenDisplay, x11lib, "XOpenDisplay")
	purego.RegisterLibFunc(&xDefaultScreen, x11lib, "XDefaultScreen")
	purego.RegisterLibFunc(&xDefaultVisual, x11lib, "XDefaultVisual")
	purego.RegisterLibFunc(&xDefaultDepth, x11lib, "XDefaultDepth")
	purego.RegisterLibFunc(&xRootWindow, x11lib, "XRootWindow")
	purego.RegisterLibFunc(&xCreateColormap, x11lib, "XCreateColormap")
	purego.RegisterLibFunc(&xCreateWindow, x11lib, "XCreateWindow")
	purego.RegisterLibFunc(&xMapWindow, x11lib, "XMapWindow")
	purego.RegisterLibFunc(&xStoreName, x11lib, "XStoreName")
	purego.RegisterLibFunc(&xInternAtom, x11lib, "XInternAtom")
	purego.RegisterLibFunc(&xSetWMProtocols, x11lib, "XSetWMProtocols")
	purego.RegisterLibFunc(&xSetWMNormalHints, x11lib, "XSetWMNormalHints")
	purego.RegisterLibFunc(&xChangeProperty, x11lib, "XChangeProperty")
	purego.RegisterLibFunc(&xSelectInput, x11lib, "XSelectInput")
	purego.RegisterLibFunc(&xPending, x11lib, "XPending")
	purego.RegisterLibFunc(&xNextEvent, x11lib, "XNextEvent")
	purego.RegisterLibFunc(&xFlush, x11lib, "XFlush")
	purego.RegisterLibFunc(&xConnectionNumber, x11lib, "XConnectionNumber")
	purego.RegisterLibFunc(&xLookupKeysym, x11lib, "XLookupKeysym")
	purego.RegisterLibFunc(&xkbSetDetectableAutoRepeat, x11lib, "XkbSetDetectableAutoRepeat")
	purego.RegisterLibFunc(&xGetGeometry, x11lib, "XGetGeometry")
	purego.RegisterLibFunc(&xQueryPointer, x11lib, "XQueryPointer")
	purego.RegisterLibFunc(&xGrabPointer, x11lib, "XGrabPointer")
	purego.RegisterLibFunc(&xUngrabPointer, x11lib, "XUngrabPointer")
	purego.RegisterLibFunc(&xCreateBitmapFromData, x11lib, "XCreateBitmapFromData")
	purego.RegisterLibFunc(&xCreatePixmapCursor, x11lib, "XCreatePixmapCursor")
	purego.RegisterLibFunc(&xFreePixmap, x11lib, "XFreePixmap")
	purego.RegisterLibFunc(&xDefineCursor, x11lib, "XDefineCursor")
	purego.RegisterLibFunc(&xUndefineCursor, x11lib, "XUndefineCursor")
	purego.RegisterLibFunc(&xFreeCursor, x11lib, "XFreeCursor")
	purego.RegisterLibFunc(&xDisplayWidth, x11lib, "XDisplayWidth")
	purego.RegisterLibFunc(&xDisplayHeight, x11lib, "XDisplayHeight")
	purego.RegisterLibFunc(&xDestroyWindow, x11lib, "XDestroyWindow")
	purego.RegisterLibFunc(&xCloseDisplay, x11lib, "XCloseDisplay")
}

func registerGLX() {
	purego.RegisterLibFunc(&glxChooseVisual, gllib, "glXChooseVisual")
	purego.RegisterLibFunc(&glxCreateContext, gllib, "glXCreateContext")
	purego.RegisterLibFunc(&glxMakeCurrent, gllib, "glXMakeCurrent")
	purego.RegisterLibFunc(&glxSwapBuffers, gllib, "glXSwapBuffers")
	purego.RegisterLibFunc(&glxDestroyContext, gllib, "glXDestroyContext")
	// Optional: only present with GLX_EXT_swap_control.
	if _, err := purego.Dlsym(gllib, "glXSwapIntervalEXT"); err == nil {
		purego.RegisterLibFunc(&glxSwapIntervalEXT, gllib, "glXSwapIntervalEXT")
	}
}
