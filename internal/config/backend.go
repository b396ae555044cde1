package config

import (
	"fmt"
	"strings"
)

// Backend selects the native windowing library.
type Backend int

const (
	GLFW Backend = iota
	SDL2
	X11
	Terminal
	Headless
)

var backendNames = map[Backend]string{
	GLFW:     "glfw",
	SDL2:     "sdl2",
	X11:      "x11",
	Terminal: "terminal",
	Headless: "headless",
}

func (b Backend) String() string {
	if name, ok := backendNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Backend(%d)", int(b))
}

// ParseBackend accepts a backend name, case-insensitively. "sdl" and "tty"
// are accepted as aliases.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "glfw":
		return GLFW, nil
	case "sdl2", "sdl":
		return SDL2, nil
	case "x11", "xlib":
		return X11, nil
	case "terminal", "tty":
		return Terminal, nil
	case "headless", "none":
		return Headless, nil
	}
	return 0, fmt.Errorf("%w: backend %q", ErrUnknownValue, s)
}

// GraphicsAPI selects the context created alongside the window.
type GraphicsAPI int

const (
	OpenGL GraphicsAPI = iota
	Vulkan
	CPU
)

func (a GraphicsAPI) String() string {
	switch a {
	case OpenGL:
		return "opengl"
	case Vulkan:
		return "vulkan"
	case CPU:
		return "cpu"
	default:
		return fmt.Sprintf("GraphicsAPI(%d)", int(a))
	}
}

// ParseGraphicsAPI accepts a graphics API name, case-insensitively.
func ParseGraphicsAPI(s string) (GraphicsAPI, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "opengl", "gl":
		return OpenGL, nil
	case "vulkan", "vk":
		return Vulkan, nil
	case "cpu", "software":
		return CPU, nil
	}
	return 0, fmt.Errorf("%w: graphics api %q", ErrUnknownValue, s)
}
