// Package gl binds the handful of OpenGL entry points the frame loop uses.
package gl

import (
	"errors"
	"fmt"

	"github.com/ebitengine/purego"
)

const (
	// ColorBufferBit is a mask used with Clear to clear the color buffer.
	ColorBufferBit = 0x00004000

	// GetString parameters.
	Vendor   = 0x1F00
	Renderer = 0x1F01
	Version  = 0x1F02
)

// ErrMissingProc is returned when an entry point cannot be resolved.
var ErrMissingProc = errors.New("gl: missing entry point")

// OpenGL is the subset of OpenGL the window manager needs. All methods act
// on the context current on the calling thread.
type OpenGL interface {
	// ClearColor sets the color used by Clear.
	ClearColor(r, g, b, a float32)

	// Clear clears buffers to preset values (e.g., ColorBufferBit).
	Clear(mask uint32)

	// Viewport maps normalized device coordinates to window coordinates.
	Viewport(x, y, width, height int32)

	// GetString returns a string describing the current context, such as
	// Vendor or Version. Unknown names yield the empty string.
	GetString(name uint32) string
}

// ProcAddress resolves an OpenGL entry point by name, returning 0 when it
// does not exist. Backends pass glfwGetProcAddress or SDL_GL_GetProcAddress.
type ProcAddress func(name string) uintptr

type openGL struct {
	clearColor func(float32, float32, float32, float32)
	clear      func(uint32)
	viewport   func(int32, int32, int32, int32)
	getString  func(uint32) string
}

func (gl *openGL) ClearColor(r, g, b, a float32) {
	gl.clearColor(r, g, b, a)
}

func (gl *openGL) Clear(mask uint32) {
	gl.clear(mask)
}

func (gl *openGL) Viewport(x, y, width, height int32) {
	gl.viewport(x, y, width, height)
}

func (gl *openGL) GetString(name uint32) string {
	return gl.getString(name)
}

// Load resolves every entry point through proc. It fails on the first name
// proc cannot resolve.
func Load(proc ProcAddress) (OpenGL, error) {
	if proc == nil {
		return nil, fmt.Errorf("%w: no loader", ErrMissingProc)
	}

	gl := &openGL{}
	entries := []struct {
		dst  any
		name string
	}{
		{&gl.clearColor, "glClearColor"},
		{&gl.clear, "glClear"},
		{&gl.viewport, "glViewport"},
		{&gl.getString, "glGetString"},
	}
	for _, e := range entries {
		addr := proc(e.name)
		if addr == 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingProc, e.name)
		}
		purego.RegisterFunc(e.dst, addr)
	}
	return gl, nil
}
