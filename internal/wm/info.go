package wm

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/tinyrange/wma/internal/config"
	"github.com/tinyrange/wma/internal/window"
)

// Version is the library version.
const Version = "1.0.0"

// backendPriority orders the backends DefaultBackend tries.
var backendPriority = []config.Backend{
	config.GLFW,
	config.SDL2,
	config.X11,
	config.Terminal,
	config.Headless,
}

// DefaultBackend returns the first backend whose native library loads,
// preferring GLFW. The terminal and headless backends are always
// available, so it never fails.
func DefaultBackend() config.Backend {
	for _, b := range backendPriority {
		if window.Available(b) {
			return b
		}
	}
	return config.Headless
}

// BackendAvailable reports whether b can open a window on this system.
func BackendAvailable(b config.Backend) bool {
	return window.Available(b)
}

// Info describes the library and the backends usable on this system.
func Info() string {
	var backends []string
	for _, b := range backendPriority {
		if window.Available(b) {
			backends = append(backends, b.String())
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "wma window management and input abstraction v%s\n", Version)
	fmt.Fprintf(&sb, "Backends: %s\n", strings.Join(backends, " "))
	fmt.Fprintf(&sb, "Graphics APIs: %s %s %s\n", config.OpenGL, config.Vulkan, config.CPU)
	fmt.Fprintf(&sb, "Built with %s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return sb.String()
}
