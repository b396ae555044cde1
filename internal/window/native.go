//go:build linux || darwin

package window

import "unsafe"

func cString(s string) *byte {
	b := append([]byte(s), 0)
	return &b[0]
}

func goString(ptr *byte) string {
	if ptr == nil {
		return ""
	}
	var bytes []byte
	for p := ptr; *p != 0; p = (*byte)(unsafe.Add(unsafe.Pointer(p), 1)) {
		bytes = append(bytes, *p)
	}
	return string(bytes)
}

// cStrings reads n C strings from a const char** array.
func cStrings(arr uintptr, n int) []string {
	if arr == 0 || n == 0 {
		return nil
	}
	ptrs := unsafe.Slice((**byte)(unsafe.Pointer(arr)), n)
	out := make([]string, n)
	for i, p := range ptrs {
		out[i] = goString(p)
	}
	return out
}
