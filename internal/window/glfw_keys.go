package window

import "github.com/tinyrange/wma/internal/input"

// glfwKeymap reads GLFW key tokens and button indices. GLFW reports key
// tokens independent of the layout, so KeyEvent.Code is the token itself.
var glfwKeymap = Keymap{
	Name:    "glfw",
	Key:     func(code int64) input.Key { return input.GLFWKey(int32(code)) },
	Button:  input.GLFWButton,
	InvertY: true,
}
