package gl

import (
	"errors"
	"strings"
	"testing"
)

func TestLoad_NilLoader(t *testing.T) {
	if _, err := Load(nil); !errors.Is(err, ErrMissingProc) {
		t.Fatalf("Load(nil) error = %v, want ErrMissingProc", err)
	}
}

func TestLoad_MissingEntryPoint(t *testing.T) {
	var asked []string
	_, err := Load(func(name string) uintptr {
		asked = append(asked, name)
		return 0
	})
	if !errors.Is(err, ErrMissingProc) {
		t.Fatalf("error = %v, want ErrMissingProc", err)
	}
	if !strings.Contains(err.Error(), "glClearColor") {
		t.Errorf("error %q does not name the missing entry point", err)
	}
	if len(asked) != 1 {
		t.Errorf("loader asked for %v, want to stop at the first miss", asked)
	}
}
