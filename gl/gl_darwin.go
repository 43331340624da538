//go:build darwin

package gl

import (
	"errors"

	"github.com/ebitengine/purego"
)

// Load binds the OpenGL entry points exported by OpenGL.framework. macOS has
// no OpenGL ES library.
func Load(api API) (Functions, error) {
	if api != Desktop {
		return nil, errors.New("gl: OpenGL ES is not available on darwin")
	}
	handle, err := purego.Dlopen("/System/Library/Frameworks/OpenGL.framework/OpenGL", purego.RTLD_GLOBAL|purego.RTLD_LAZY)
	if err != nil {
		return nil, err
	}
	lookup := func(name string) uintptr {
		addr, err := purego.Dlsym(handle, name)
		if err != nil {
			return 0
		}
		return addr
	}

	fns := &functions{api: api}
	if err := fns.bind(lookup); err != nil {
		return nil, err
	}
	return fns, nil
}
