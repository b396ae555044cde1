package input

// X11 keysyms (X11/keysymdef.h) as returned by XLookupKeysym with index 0,
// which yields the unshifted symbol, so letters arrive lowercase.
var x11Keys = map[uint64]Key{
	'a': KeyA, 'b': KeyB, 'c': KeyC, 'd': KeyD, 'e': KeyE, 'f': KeyF, 'g': KeyG,
	'h': KeyH, 'i': KeyI, 'j': KeyJ, 'k': KeyK, 'l': KeyL, 'm': KeyM, 'n': KeyN,
	'o': KeyO, 'p': KeyP, 'q': KeyQ, 'r': KeyR, 's': KeyS, 't': KeyT, 'u': KeyU,
	'v': KeyV, 'w': KeyW, 'x': KeyX, 'y': KeyY, 'z': KeyZ,

	'0': Key0, '1': Key1, '2': Key2, '3': Key3, '4': Key4,
	'5': Key5, '6': Key6, '7': Key7, '8': Key8, '9': Key9,

	0xffbe: KeyF1, 0xffbf: KeyF2, 0xffc0: KeyF3, 0xffc1: KeyF4,
	0xffc2: KeyF5, 0xffc3: KeyF6, 0xffc4: KeyF7, 0xffc5: KeyF8,
	0xffc6: KeyF9, 0xffc7: KeyF10, 0xffc8: KeyF11, 0xffc9: KeyF12,

	0xff1b: KeyEscape,
	0xff0d: KeyEnter,
	0xff09: KeyTab,
	0xff08: KeyBackspace,
	0xff63: KeyInsert,
	0xffff: KeyDelete,
	0xff53: KeyRight,
	0xff51: KeyLeft,
	0xff54: KeyDown,
	0xff52: KeyUp,
	0xff55: KeyPageUp,
	0xff56: KeyPageDown,
	0xff50: KeyHome,
	0xff57: KeyEnd,

	0xffe5: KeyCapsLock,
	0xff14: KeyScrollLock,
	0xff7f: KeyNumLock,
	0xffe1: KeyLeftShift,
	0xffe2: KeyRightShift,
	0xffe3: KeyLeftControl,
	0xffe4: KeyRightControl,
	0xffe9: KeyLeftAlt,
	0xffea: KeyRightAlt,
	0xffeb: KeyLeftSuper,
	0xffec: KeyRightSuper,

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

	0xffb0: KeyKP0, 0xffb1: KeyKP1, 0xffb2: KeyKP2, 0xffb3: KeyKP3, 0xffb4: KeyKP4,
	0xffb5: KeyKP5, 0xffb6: KeyKP6, 0xffb7: KeyKP7, 0xffb8: KeyKP8, 0xffb9: KeyKP9,
	0xffae: KeyKPDecimal,
	0xffaf: KeyKPDivide,
	0xffaa: KeyKPMultiply,
	0xffad: KeyKPSubtract,
	0xffab: KeyKPAdd,
	0xff8d: KeyKPEnter,
}

// X11Key maps an X11 keysym to a Key.
func X11Key(keysym uint64) Key {
	if k, ok := x11Keys[keysym]; ok {
		return k
	}
	return KeyUnknown
}

// X11Button maps a core-protocol button number to a Button. Buttons 4-7
// are wheel notches and never reach this table; 8 and 9 are the side
// buttons.
func X11Button(code int32) Button {
	switch code {
	case 1:
		return ButtonLeft
	case 2:
		return ButtonMiddle
	case 3:
		return ButtonRight
	case 8:
		return Button4
	case 9:
		return Button5
	default:
		return Button(code)
	}
}
