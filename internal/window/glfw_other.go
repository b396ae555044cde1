//go:build !(linux || darwin)

package window

// NewGLFW is only built where purego can load shared libraries.
func NewGLFW(Options) (Window, error) {
	return nil, ErrBackendUnavailable
}

func glfwAvailable() bool { return false }
