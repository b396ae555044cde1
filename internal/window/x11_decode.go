package window

import (
	"encoding/binary"

	"github.com/tinyrange/wma/internal/input"
)

// Core X11 event types.
const (
	xKeyPress        = 2
	xKeyRelease      = 3
	xButtonPress     = 4
	xButtonRelease   = 5
	xMotionNotify    = 6
	xFocusIn         = 9
	xFocusOut        = 10
	xDestroyNotify   = 17
	xUnmapNotify     = 18
	xMapNotify       = 19
	xConfigureNotify = 22
	xClientMessage   = 33
)

// Byte offsets into the 64-bit XEvent union.
const (
	xOffX           = 64 // XKeyEvent, XButtonEvent, XMotionEvent
	xOffY           = 68
	xOffDetail      = 84 // keycode or button
	xOffWidth       = 56 // XConfigureEvent
	xOffHeight      = 60
	xOffClientFmt   = 48 // XClientMessageEvent
	xOffClientData0 = 56
)

// x11Decoder turns raw XEvents into records. It keeps the state needed to
// filter what the server repeats: held keys, so auto-repeat presses can be
// marked, and the last size, since ConfigureNotify also fires on moves.
type x11Decoder struct {
	wmDelete      uint64
	held          map[uint32]bool
	width, height int
}

func newX11Decoder(wmDelete uint64, width, height int) *x11Decoder {
	return &x11Decoder{
		wmDelete: wmDelete,
		held:     make(map[uint32]bool),
		width:    width,
		height:   height,
	}
}

// decode reads one XEvent. keysym is the unshifted keysym of key events
// and is ignored otherwise.
func (d *x11Decoder) decode(ev []byte, keysym uint64) (Event, bool) {
	le := binary.LittleEndian
	i32 := func(off int) int32 { return int32(le.Uint32(ev[off:])) }
	u32 := func(off int) uint32 { return le.Uint32(ev[off:]) }

	switch i32(0) {
	case xKeyPress:
		code := u32(xOffDetail)
		repeat := d.held[code]
		d.held[code] = true
		return KeyEvent{Code: int64(keysym), Pressed: true, Repeat: repeat}, true

	case xKeyRelease:
		delete(d.held, u32(xOffDetail))
		return KeyEvent{Code: int64(keysym), Pressed: false}, true

	case xButtonPress, xButtonRelease:
		pressed := i32(0) == xButtonPress
		button := i32(xOffDetail)
		if dx, dy, ok := x11Wheel(button); ok {
			if !pressed {
				return nil, false
			}
			return ScrollEvent{DX: dx, DY: dy}, true
		}
		return ButtonEvent{Code: button, Pressed: pressed}, true

	case xMotionNotify:
		return MotionEvent{X: float64(i32(xOffX)), Y: float64(i32(xOffY))}, true

	case xConfigureNotify:
		w, h := int(i32(xOffWidth)), int(i32(xOffHeight))
		if w == d.width && h == d.height {
			return nil, false
		}
		d.width, d.height = w, h
		return ResizeEvent{Width: w, Height: h}, true

	case xFocusIn:
		return FocusEvent{Focused: true}, true
	case xFocusOut:
		// Keys held while focus leaves never report their release.
		clear(d.held)
		return FocusEvent{Focused: false}, true

	case xUnmapNotify:
		return IconifyEvent{Iconified: true}, true
	case xMapNotify:
		return IconifyEvent{Iconified: false}, true

	case xClientMessage:
		if i32(xOffClientFmt) == 32 && le.Uint64(ev[xOffClientData0:]) == d.wmDelete {
			return CloseEvent{}, true
		}
	case xDestroyNotify:
		return CloseEvent{}, true
	}
	return nil, false
}

// x11Wheel maps the core-protocol wheel buttons to scroll offsets.
func x11Wheel(button int32) (dx, dy float64, ok bool) {
	switch button {
	case 4:
		return 0, 1, true
	case 5:
		return 0, -1, true
	case 6:
		return 1, 0, true
	case 7:
		return -1, 0, true
	}
	return 0, 0, false
}

var x11Keymap = Keymap{
	Name:    "x11",
	Key:     func(code int64) input.Key { return input.X11Key(uint64(code)) },
	Button:  input.X11Button,
	InvertY: true,
}
