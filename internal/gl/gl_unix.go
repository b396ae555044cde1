//go:build linux || darwin

package gl

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// LoadLibrary binds the entry points exported by the system OpenGL
// library. Backends that create a GLX or CGL context themselves use it
// when they have no loader of their own.
func LoadLibrary() (OpenGL, error) {
	handle, err := purego.Dlopen(libraryPath, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("gl: open %s: %w", libraryPath, err)
	}
	return Load(func(name string) uintptr {
		addr, err := purego.Dlsym(handle, name)
		if err != nil {
			return 0
		}
		return addr
	})
}
