package input

import "testing"

func TestNativeKeyTables(t *testing.T) {
	tests := []struct {
		name string
		got  Key
		want Key
	}{
		{"glfw a", GLFWKey(65), KeyA},
		{"glfw escape", GLFWKey(256), KeyEscape},
		{"glfw kp enter", GLFWKey(335), KeyKPEnter},
		{"glfw right super", GLFWKey(347), KeyRightSuper},
		{"glfw unknown", GLFWKey(-1), KeyUnknown},
		{"glfw world 1", GLFWKey(161), KeyUnknown},

		{"sdl a", SDLKey('a'), KeyA},
		{"sdl return", SDLKey('\r'), KeyEnter},
		{"sdl f1", SDLKey(58 | 1<<30), KeyF1},
		{"sdl up", SDLKey(82 | 1<<30), KeyUp},
		{"sdl kp 0", SDLKey(98 | 1<<30), KeyKP0},
		{"sdl lgui", SDLKey(227 | 1<<30), KeyLeftSuper},
		{"sdl unknown", SDLKey(0), KeyUnknown},

		{"x11 a", X11Key('a'), KeyA},
		{"x11 escape", X11Key(0xff1b), KeyEscape},
		{"x11 f12", X11Key(0xffc9), KeyF12},
		{"x11 kp add", X11Key(0xffab), KeyKPAdd},
		{"x11 uppercase not mapped", X11Key('A'), KeyUnknown},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestNativeKeyTablesCoverEveryKey(t *testing.T) {
	tables := map[string]func() map[Key]bool{
		"glfw": func() map[Key]bool { return valuesOf(glfwKeys) },
		"sdl":  func() map[Key]bool { return valuesOf(sdlKeys) },
		"x11":  func() map[Key]bool { return valuesOf(x11Keys) },
	}
	for name, values := range tables {
		seen := values()
		for k := Key(0); k < keyCount; k++ {
			if !seen[k] {
				t.Errorf("%s table has no native code for %v", name, k)
			}
		}
	}
}

func valuesOf[N comparable](m map[N]Key) map[Key]bool {
	out := make(map[Key]bool, len(m))
	for _, k := range m {
		out[k] = true
	}
	return out
}

func TestNativeButtonTables(t *testing.T) {
	tests := []struct {
		name string
		got  Button
		want Button
	}{
		{"glfw left", GLFWButton(0), ButtonLeft},
		{"glfw right", GLFWButton(1), ButtonRight},
		{"glfw 8", GLFWButton(7), Button8},
		{"glfw passthrough", GLFWButton(12), Button(12)},

		{"sdl left", SDLButton(1), ButtonLeft},
		{"sdl middle", SDLButton(2), ButtonMiddle},
		{"sdl right", SDLButton(3), ButtonRight},
		{"sdl x2", SDLButton(5), Button5},
		{"sdl passthrough", SDLButton(9), Button(9)},

		{"x11 left", X11Button(1), ButtonLeft},
		{"x11 middle", X11Button(2), ButtonMiddle},
		{"x11 right", X11Button(3), ButtonRight},
		{"x11 back", X11Button(8), Button4},
		{"x11 forward", X11Button(9), Button5},
		{"x11 passthrough", X11Button(10), Button(10)},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	if len(keys) != int(keyCount) {
		t.Fatalf("len(Keys()) = %d, want %d", len(keys), keyCount)
	}
	if keys[0] != KeyA || keys[len(keys)-1] != KeyKPEnter {
		t.Errorf("Keys() runs from %v to %v", keys[0], keys[len(keys)-1])
	}
}
