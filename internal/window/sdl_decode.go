package window

import (
	"encoding/binary"

	"github.com/tinyrange/wma/internal/input"
)

// sdlEventSize is sizeof(SDL_Event).
const sdlEventSize = 56

// SDL_EventType values.
const (
	sdlQuit            = 0x100
	sdlWindowEvent     = 0x200
	sdlKeyDown         = 0x300
	sdlKeyUp           = 0x301
	sdlMouseMotion     = 0x400
	sdlMouseButtonDown = 0x401
	sdlMouseButtonUp   = 0x402
	sdlMouseWheel      = 0x403
)

// SDL_WindowEventID values.
const (
	sdlWindowEventSizeChanged = 6
	sdlWindowEventMinimized   = 7
	sdlWindowEventMaximized   = 8
	sdlWindowEventRestored    = 9
	sdlWindowEventFocusGained = 12
	sdlWindowEventFocusLost   = 13
	sdlWindowEventClose       = 14
)

const sdlMouseWheelFlipped = 1

// decodeSDL reads one SDL_Event union. The layout is fixed by the SDL2 ABI
// and little-endian on every platform this backend loads on.
func decodeSDL(ev *[sdlEventSize]byte) (Event, bool) {
	le := binary.LittleEndian
	u32 := func(off int) uint32 { return le.Uint32(ev[off:]) }
	i32 := func(off int) int32 { return int32(le.Uint32(ev[off:])) }

	switch u32(0) {
	case sdlQuit:
		return CloseEvent{}, true

	case sdlKeyDown, sdlKeyUp:
		// SDL_KeyboardEvent: state@12 repeat@13 keysym.sym@20
		return KeyEvent{
			Code:    int64(i32(20)),
			Pressed: u32(0) == sdlKeyDown,
			Repeat:  ev[13] != 0,
		}, true

	case sdlMouseMotion:
		// SDL_MouseMotionEvent: x@20 y@24
		return MotionEvent{X: float64(i32(20)), Y: float64(i32(24))}, true

	case sdlMouseButtonDown, sdlMouseButtonUp:
		// SDL_MouseButtonEvent: button@16
		return ButtonEvent{
			Code:    int32(ev[16]),
			Pressed: u32(0) == sdlMouseButtonDown,
		}, true

	case sdlMouseWheel:
		// SDL_MouseWheelEvent: x@16 y@20 direction@24
		dx, dy := float64(i32(16)), float64(i32(20))
		if u32(24) == sdlMouseWheelFlipped {
			dx, dy = -dx, -dy
		}
		return ScrollEvent{DX: dx, DY: dy}, true

	case sdlWindowEvent:
		// SDL_WindowEvent: event@12 data1@16 data2@20
		switch ev[12] {
		case sdlWindowEventSizeChanged:
			return ResizeEvent{Width: int(i32(16)), Height: int(i32(20))}, true
		case sdlWindowEventMinimized:
			return IconifyEvent{Iconified: true}, true
		case sdlWindowEventMaximized, sdlWindowEventRestored:
			return IconifyEvent{Iconified: false}, true
		case sdlWindowEventFocusGained:
			return FocusEvent{Focused: true}, true
		case sdlWindowEventFocusLost:
			return FocusEvent{Focused: false}, true
		case sdlWindowEventClose:
			return CloseEvent{}, true
		}
	}
	return nil, false
}

var sdlKeymap = Keymap{
	Name:    "sdl2",
	Key:     func(code int64) input.Key { return input.SDLKey(int32(code)) },
	Button:  input.SDLButton,
	InvertY: true,
}
