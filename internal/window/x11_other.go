//go:build !linux

package window

// NewX11 is only built on Linux.
func NewX11(Options) (Window, error) {
	return nil, ErrBackendUnavailable
}

func x11Available() bool { return false }
