//go:build windows

package gl

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// Load binds OpenGL through opengl32.dll and wglGetProcAddress, or OpenGL ES
// through an ANGLE libGLESv2.dll on the DLL search path.
func Load(api API) (Functions, error) {
	var lookup func(string) uintptr
	switch api {
	case ES:
		dll := windows.NewLazyDLL("libGLESv2.dll")
		if err := dll.Load(); err != nil {
			return nil, err
		}
		lookup = func(name string) uintptr { return export(dll, name) }
	default:
		dll := windows.NewLazySystemDLL("opengl32.dll")
		if err := dll.Load(); err != nil {
			return nil, err
		}
		wglGetProcAddress := dll.NewProc("wglGetProcAddress")
		lookup = func(name string) uintptr {
			// opengl32.dll only exports the OpenGL 1.1 entry points.
			if addr := export(dll, name); addr != 0 {
				return addr
			}
			b, err := windows.BytePtrFromString(name)
			if err != nil {
				return 0
			}
			r, _, _ := wglGetProcAddress.Call(uintptr(unsafe.Pointer(b)))
			switch r {
			case 0, 1, 2, 3, ^uintptr(0):
				return 0
			}
			return r
		}
	}

	fns := &functions{api: api}
	if err := fns.bind(lookup); err != nil {
		return nil, err
	}
	return fns, nil
}

func export(dll *windows.LazyDLL, name string) uintptr {
	proc := dll.NewProc(name)
	if proc.Find() != nil {
		return 0
	}
	return proc.Addr()
}
