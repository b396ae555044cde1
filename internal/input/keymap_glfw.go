package input

// GLFW key codes (glfw3.h).
var glfwKeys = map[int32]Key{
	65: KeyA, 66: KeyB, 67: KeyC, 68: KeyD, 69: KeyE, 70: KeyF, 71: KeyG,
	72: KeyH, 73: KeyI, 74: KeyJ, 75: KeyK, 76: KeyL, 77: KeyM, 78: KeyN,
	79: KeyO, 80: KeyP, 81: KeyQ, 82: KeyR, 83: KeyS, 84: KeyT, 85: KeyU,
	86: KeyV, 87: KeyW, 88: KeyX, 89: KeyY, 90: KeyZ,

	48: Key0, 49: Key1, 50: Key2, 51: Key3, 52: Key4,
	53: Key5, 54: Key6, 55: Key7, 56: Key8, 57: Key9,

	290: KeyF1, 291: KeyF2, 292: KeyF3, 293: KeyF4, 294: KeyF5, 295: KeyF6,
	296: KeyF7, 297: KeyF8, 298: KeyF9, 299: KeyF10, 300: KeyF11, 301: KeyF12,

	256: KeyEscape,
	257: KeyEnter,
	258: KeyTab,
	259: KeyBackspace,
	260: KeyInsert,
	261: KeyDelete,
	262: KeyRight,
	263: KeyLeft,
	264: KeyDown,
	265: KeyUp,
	266: KeyPageUp,
	267: KeyPageDown,
	268: KeyHome,
	269: KeyEnd,

	280: KeyCapsLock,
	281: KeyScrollLock,
	282: KeyNumLock,
	340: KeyLeftShift,
	341: KeyLeftControl,
	342: KeyLeftAlt,
	343: KeyLeftSuper,
	344: KeyRightShift,
	345: KeyRightControl,
	346: KeyRightAlt,
	347: KeyRightSuper,

	32: KeySpace,
	45: KeyMinus,
	61: KeyEqual,
	91: KeyLeftBracket,
	93: KeyRightBracket,
	92: KeyBackslash,
	59: KeySemicolon,
	39: KeyApostrophe,
	96: KeyGrave,
	44: KeyComma,
	46: KeyPeriod,
	47: KeySlash,

	320: KeyKP0, 321: KeyKP1, 322: KeyKP2, 323: KeyKP3, 324: KeyKP4,
	325: KeyKP5, 326: KeyKP6, 327: KeyKP7, 328: KeyKP8, 329: KeyKP9,
	330: KeyKPDecimal,
	331: KeyKPDivide,
	332: KeyKPMultiply,
	333: KeyKPSubtract,
	334: KeyKPAdd,
	335: KeyKPEnter,
}

// GLFWKey maps a GLFW key code to a Key.
func GLFWKey(code int32) Key {
	if k, ok := glfwKeys[code]; ok {
		return k
	}
	return KeyUnknown
}

// GLFWButton maps a GLFW mouse button (GLFW_MOUSE_BUTTON_1..8) to a
// Button. GLFW numbers its buttons the same way, so the table is the
// identity over the known range and passes anything else through.
func GLFWButton(code int32) Button {
	switch code {
	case 0:
		return ButtonLeft
	case 1:
		return ButtonRight
	case 2:
		return ButtonMiddle
	case 3:
		return Button4
	case 4:
		return Button5
	case 5:
		return Button6
	case 6:
		return Button7
	case 7:
		return Button8
	default:
		return Button(code)
	}
}
