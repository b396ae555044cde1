package input

// sdlScancodeMask marks SDL keycodes derived from scancodes
// (SDLK_SCANCODE_MASK).
const sdlScancodeMask = 1 << 30

func sdlScancodeKey(sc int32) int32 { return sc | sdlScancodeMask }

// SDL2 keycodes (SDL_keycode.h). Printable keys use their ASCII value.
var sdlKeys = map[int32]Key{
	'a': KeyA, 'b': KeyB, 'c': KeyC, 'd': KeyD, 'e': KeyE, 'f': KeyF, 'g': KeyG,
	'h': KeyH, 'i': KeyI, 'j': KeyJ, 'k': KeyK, 'l': KeyL, 'm': KeyM, 'n': KeyN,
	'o': KeyO, 'p': KeyP, 'q': KeyQ, 'r': KeyR, 's': KeyS, 't': KeyT, 'u': KeyU,
	'v': KeyV, 'w': KeyW, 'x': KeyX, 'y': KeyY, 'z': KeyZ,

	'0': Key0, '1': Key1, '2': Key2, '3': Key3, '4': Key4,
	'5': Key5, '6': Key6, '7': Key7, '8': Key8, '9': Key9,

	sdlScancodeKey(58): KeyF1,
	sdlScancodeKey(59): KeyF2,
	sdlScancodeKey(60): KeyF3,
	sdlScancodeKey(61): KeyF4,
	sdlScancodeKey(62): KeyF5,
	sdlScancodeKey(63): KeyF6,
	sdlScancodeKey(64): KeyF7,
	sdlScancodeKey(65): KeyF8,
	sdlScancodeKey(66): KeyF9,
	sdlScancodeKey(67): KeyF10,
	sdlScancodeKey(68): KeyF11,
	sdlScancodeKey(69): KeyF12,

	27:                 KeyEscape,
	'\r':               KeyEnter,
	'\t':               KeyTab,
	'\b':               KeyBackspace,
	sdlScancodeKey(73): KeyInsert,
	127:                KeyDelete,
	sdlScancodeKey(79): KeyRight,
	sdlScancodeKey(80): KeyLeft,
	sdlScancodeKey(81): KeyDown,
	sdlScancodeKey(82): KeyUp,
	sdlScancodeKey(75): KeyPageUp,
	sdlScancodeKey(78): KeyPageDown,
	sdlScancodeKey(74): KeyHome,
	sdlScancodeKey(77): KeyEnd,

	sdlScancodeKey(57):  KeyCapsLock,
	sdlScancodeKey(71):  KeyScrollLock,
	sdlScancodeKey(83):  KeyNumLock,
	sdlScancodeKey(224): KeyLeftControl,
	sdlScancodeKey(225): KeyLeftShift,
	sdlScancodeKey(226): KeyLeftAlt,
	sdlScancodeKey(227): KeyLeftSuper,
	sdlScancodeKey(228): KeyRightControl,
	sdlScancodeKey(229): KeyRightShift,
	sdlScancodeKey(230): KeyRightAlt,
	sdlScancodeKey(231): KeyRightSuper,

	' ':  KeySpace,
	'-':  KeyMinus,
	'=':  KeyEqual,
	'[':  KeyLeftBracket,
	']':  KeyRightBracket,
	'\\': KeyBackslash,
	';':  KeySemicolon,
	'\'': KeyApostrophe,
	'`':  KeyGrave,
	',':  KeyComma,
	'.':  KeyPeriod,
	'/':  KeySlash,

	sdlScancodeKey(98): KeyKP0,
	sdlScancodeKey(89): KeyKP1,
	sdlScancodeKey(90): KeyKP2,
	sdlScancodeKey(91): KeyKP3,
	sdlScancodeKey(92): KeyKP4,
	sdlScancodeKey(93): KeyKP5,
	sdlScancodeKey(94): KeyKP6,
	sdlScancodeKey(95): KeyKP7,
	sdlScancodeKey(96): KeyKP8,
	sdlScancodeKey(97): KeyKP9,
	sdlScancodeKey(99): KeyKPDecimal,
	sdlScancodeKey(84): KeyKPDivide,
	sdlScancodeKey(85): KeyKPMultiply,
	sdlScancodeKey(86): KeyKPSubtract,
	sdlScancodeKey(87): KeyKPAdd,
	sdlScancodeKey(88): KeyKPEnter,
}

// SDLKey maps an SDL2 keycode (SDL_Keycode) to a Key.
func SDLKey(code int32) Key {
	if k, ok := sdlKeys[code]; ok {
		return k
	}
	return KeyUnknown
}

// SDLButton maps an SDL2 mouse button index to a Button. SDL counts from 1
// and puts the middle button second, so the table is not an offset.
func SDLButton(code int32) Button {
	switch code {
	case 1:
		return ButtonLeft
	case 2:
		return ButtonMiddle
	case 3:
		return ButtonRight
	case 4:
		return Button4
	case 5:
		return Button5
	default:
		return Button(code)
	}
}
