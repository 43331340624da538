//go:build linux

package gl

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// Desktop GL is tried through the GLVND dispatch library first so the same
// binding works for EGL and GLX contexts.
var libraries = map[API][]string{
	Desktop: {"libOpenGL.so.0", "libGL.so.1"},
	ES:      {"libGLESv2.so.2"},
}

// Load binds the OpenGL or OpenGL ES entry points exposed by the system
// libraries. A context must be current on the calling thread before any
// method of the returned Functions is used.
func Load(api API) (Functions, error) {
	handle, err := dlopen(libraries[api])
	if err != nil {
		return nil, err
	}

	// Extension entry points are not always exported by the library itself.
	var getProcAddress func(*byte) uintptr
	for _, name := range []string{"glXGetProcAddressARB", "eglGetProcAddress"} {
		if addr, err := purego.Dlsym(handle, name); err == nil {
			purego.RegisterFunc(&getProcAddress, addr)
			break
		}
	}
	lookup := func(name string) uintptr {
		if addr, err := purego.Dlsym(handle, name); err == nil {
			return addr
		}
		if getProcAddress != nil {
			b := cstring(name)
			return getProcAddress(&b[0])
		}
		return 0
	}

	fns := &functions{api: api}
	if err := fns.bind(lookup); err != nil {
		return nil, err
	}
	return fns, nil
}

func dlopen(names []string) (uintptr, error) {
	var errs []error
	for _, name := range names {
		handle, err := purego.Dlopen(name, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err == nil {
			return handle, nil
		}
		errs = append(errs, err)
	}
	return 0, fmt.Errorf("gl: open %v: %v", names, errs)
}
