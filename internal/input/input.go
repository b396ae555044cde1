package input

import "fmt"

// Key represents a keyboard key in the backend-agnostic code space. Every
// backend table maps its native codes into this set; anything without a
// mapping becomes KeyUnknown.
type Key int32

const (
	// Letters
	KeyA Key = iota
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	// Numbers
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	// Control keys
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyInsert
	KeyDelete
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd

	// Modifier keys
	KeyCapsLock
	KeyScrollLock
	KeyNumLock
	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt
	KeyLeftSuper  // Windows key on Windows, Command key on macOS
	KeyRightSuper // Windows key on Windows, Command key on macOS

	// Symbols
	KeySpace
	KeyMinus        // -
	KeyEqual        // =
	KeyLeftBracket  // [
	KeyRightBracket // ]
	KeyBackslash    // \
	KeySemicolon    // ;
	KeyApostrophe   // '
	KeyGrave        // `
	KeyComma        // ,
	KeyPeriod       // .
	KeySlash        // /

	// Keypad
	KeyKP0
	KeyKP1
	KeyKP2
	KeyKP3
	KeyKP4
	KeyKP5
	KeyKP6
	KeyKP7
	KeyKP8
	KeyKP9
	KeyKPDecimal
	KeyKPDivide
	KeyKPMultiply
	KeyKPSubtract
	KeyKPAdd
	KeyKPEnter

	keyCount

	KeyUnknown Key = -1
)

var keyNames = [keyCount]string{
	"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M",
	"N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z",
	"0", "1", "2", "3", "4", "5", "6", "7", "8", "9",
	"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F8", "F9", "F10", "F11", "F12",
	"Escape", "Enter", "Tab", "Backspace", "Insert", "Delete",
	"Right", "Left", "Down", "Up", "PageUp", "PageDown", "Home", "End",
	"CapsLock", "ScrollLock", "NumLock",
	"LeftShift", "RightShift", "LeftControl", "RightControl",
	"LeftAlt", "RightAlt", "LeftSuper", "RightSuper",
	"Space", "Minus", "Equal", "LeftBracket", "RightBracket", "Backslash",
	"Semicolon", "Apostrophe", "Grave", "Comma", "Period", "Slash",
	"KP0", "KP1", "KP2", "KP3", "KP4", "KP5", "KP6", "KP7", "KP8", "KP9",
	"KPDecimal", "KPDivide", "KPMultiply", "KPSubtract", "KPAdd", "KPEnter",
}

// Keys returns every unified key in code order.
func Keys() []Key {
	keys := make([]Key, keyCount)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

func (k Key) String() string {
	if k >= 0 && k < keyCount {
		return keyNames[k]
	}
	if k == KeyUnknown {
		return "Unknown"
	}
	return fmt.Sprintf("Key(%d)", int32(k))
}

// Button represents a mouse button. Native buttons without a unified
// equivalent keep their backend value.
type Button int32

const (
	ButtonLeft Button = iota
	ButtonRight
	ButtonMiddle
	Button4 // often "back"
	Button5 // often "forward"
	Button6
	Button7
	Button8
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	case ButtonMiddle:
		return "Middle"
	case Button4, Button5, Button6, Button7, Button8:
		return fmt.Sprintf("Button%d", int32(b)+1)
	default:
		return fmt.Sprintf("Button(%d)", int32(b))
	}
}

// Phase is the edge of a key or button transition.
type Phase uint8

const (
	Press Phase = iota
	Release
)

func (p Phase) String() string {
	if p == Release {
		return "Release"
	}
	return "Press"
}

// Source identifies which kind of input produced an Event.
type Source uint8

const (
	SourceKey Source = iota
	SourceMouseButton
	SourceMouseMove
	SourceMouseScroll
)

func (s Source) String() string {
	switch s {
	case SourceKey:
		return "Key"
	case SourceMouseButton:
		return "MouseButton"
	case SourceMouseMove:
		return "MouseMove"
	case SourceMouseScroll:
		return "MouseScroll"
	default:
		return fmt.Sprintf("Source(%d)", uint8(s))
	}
}

// MousePosition is an absolute window-local position together with the
// sensitivity-scaled movement since the previous sample.
type MousePosition struct {
	X, Y           float64
	DeltaX, DeltaY float64
}

// MouseScroll carries wheel offsets in backend units.
type MouseScroll struct {
	XOffset, YOffset float64
}

// Event is a normalized, backend-independent input record.
//
// Code holds a Key for SourceKey and a Button for SourceMouseButton; it is
// unused for movement and scroll events.
type Event struct {
	Source   Source
	Code     int32
	Phase    Phase
	Position MousePosition
	Scroll   MouseScroll
}

// KeyEvent builds a normalized keyboard event.
func KeyEvent(k Key, p Phase) Event {
	return Event{Source: SourceKey, Code: int32(k), Phase: p}
}

// ButtonEvent builds a normalized mouse button event.
func ButtonEvent(b Button, p Phase) Event {
	return Event{Source: SourceMouseButton, Code: int32(b), Phase: p}
}

// MoveEvent builds a normalized mouse movement event.
func MoveEvent(pos MousePosition) Event {
	return Event{Source: SourceMouseMove, Position: pos}
}

// ScrollEvent builds a normalized scroll event.
func ScrollEvent(s MouseScroll) Event {
	return Event{Source: SourceMouseScroll, Scroll: s}
}
