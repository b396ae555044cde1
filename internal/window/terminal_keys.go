package window

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/tinyrange/wma/internal/input"
)

// Terminal key codes put printable keys at their lowercased rune value and
// named keys at termSpecial plus their tcell.Key value.
const termSpecial int64 = 1 << 32

func termRuneCode(r rune) int64 { return int64(unicode.ToLower(r)) }

func termKeyCode(k tcell.Key) int64 { return termSpecial | int64(k) }

var terminalKeys = map[int64]input.Key{
	'a': input.KeyA, 'b': input.KeyB, 'c': input.KeyC, 'd': input.KeyD,
	'e': input.KeyE, 'f': input.KeyF, 'g': input.KeyG, 'h': input.KeyH,
	'i': input.KeyI, 'j': input.KeyJ, 'k': input.KeyK, 'l': input.KeyL,
	'm': input.KeyM, 'n': input.KeyN, 'o': input.KeyO, 'p': input.KeyP,
	'q': input.KeyQ, 'r': input.KeyR, 's': input.KeyS, 't': input.KeyT,
	'u': input.KeyU, 'v': input.KeyV, 'w': input.KeyW, 'x': input.KeyX,
	'y': input.KeyY, 'z': input.KeyZ,

	'0': input.Key0, '1': input.Key1, '2': input.Key2, '3': input.Key3,
	'4': input.Key4, '5': input.Key5, '6': input.Key6, '7': input.Key7,
	'8': input.Key8, '9': input.Key9,

	' ':  input.KeySpace,
	'-':  input.KeyMinus,
	'=':  input.KeyEqual,
	'[':  input.KeyLeftBracket,
	']':  input.KeyRightBracket,
	'\\': input.KeyBackslash,
	';':  input.KeySemicolon,
	'\'': input.KeyApostrophe,
	'`':  input.KeyGrave,
	',':  input.KeyComma,
	'.':  input.KeyPeriod,
	'/':  input.KeySlash,

	termKeyCode(tcell.KeyEscape):     input.KeyEscape,
	termKeyCode(tcell.KeyEnter):      input.KeyEnter,
	termKeyCode(tcell.KeyLF):         input.KeyEnter,
	termKeyCode(tcell.KeyTab):        input.KeyTab,
	termKeyCode(tcell.KeyBacktab):    input.KeyTab,
	termKeyCode(tcell.KeyBackspace):  input.KeyBackspace,
	termKeyCode(tcell.KeyBackspace2): input.KeyBackspace,
	termKeyCode(tcell.KeyInsert):     input.KeyInsert,
	termKeyCode(tcell.KeyDelete):     input.KeyDelete,
	termKeyCode(tcell.KeyRight):      input.KeyRight,
	termKeyCode(tcell.KeyLeft):       input.KeyLeft,
	termKeyCode(tcell.KeyDown):       input.KeyDown,
	termKeyCode(tcell.KeyUp):         input.KeyUp,
	termKeyCode(tcell.KeyPgUp):       input.KeyPageUp,
	termKeyCode(tcell.KeyPgDn):       input.KeyPageDown,
	termKeyCode(tcell.KeyHome):       input.KeyHome,
	termKeyCode(tcell.KeyEnd):        input.KeyEnd,
	termKeyCode(tcell.KeyCapsLock):   input.KeyCapsLock,
	termKeyCode(tcell.KeyScrollLock): input.KeyScrollLock,
	termKeyCode(tcell.KeyNumLock):    input.KeyNumLock,

	termKeyCode(tcell.KeyF1):  input.KeyF1,
	termKeyCode(tcell.KeyF2):  input.KeyF2,
	termKeyCode(tcell.KeyF3):  input.KeyF3,
	termKeyCode(tcell.KeyF4):  input.KeyF4,
	termKeyCode(tcell.KeyF5):  input.KeyF5,
	termKeyCode(tcell.KeyF6):  input.KeyF6,
	termKeyCode(tcell.KeyF7):  input.KeyF7,
	termKeyCode(tcell.KeyF8):  input.KeyF8,
	termKeyCode(tcell.KeyF9):  input.KeyF9,
	termKeyCode(tcell.KeyF10): input.KeyF10,
	termKeyCode(tcell.KeyF11): input.KeyF11,
	termKeyCode(tcell.KeyF12): input.KeyF12,
}

func init() {
	// Ctrl+letter arrives as its own tcell key; bind it to the letter.
	for i := int64(0); i < 26; i++ {
		terminalKeys[termKeyCode(tcell.KeyCtrlA)+i] = input.KeyA + input.Key(i)
	}
}

// TerminalKey maps a terminal key code to a Key.
func TerminalKey(code int64) input.Key {
	if k, ok := terminalKeys[code]; ok {
		return k
	}
	return input.KeyUnknown
}

// TerminalButton maps a tcell button bit index to a Button. tcell orders
// its buttons primary, secondary, middle, which is the unified order.
func TerminalButton(code int32) input.Button {
	return input.Button(code)
}
