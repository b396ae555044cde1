//go:build !(linux || darwin)

package window

// NewSDL is only built where purego can load shared libraries.
func NewSDL(Options) (Window, error) {
	return nil, ErrBackendUnavailable
}

func sdlAvailable() bool { return false }
