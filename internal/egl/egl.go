// Package egl creates an offscreen OpenGL or OpenGL ES context for the
// command line tools.
package egl

import (
	"errors"
	"fmt"

	"github.com/tinyrange/canephora/gl"
)

// ErrUnavailable is returned on platforms without EGL.
var ErrUnavailable = errors.New("egl: headless contexts are not available on this platform")

// Options selects the context to create.
type Options struct {
	API gl.API
	// Major is the requested client major version. Zero picks 2 for ES
	// and lets the driver choose for desktop GL.
	Major         int
	Width, Height int
}

func (o Options) validate() error {
	if o.Width < 1 || o.Height < 1 {
		return fmt.Errorf("egl: surface size %dx%d", o.Width, o.Height)
	}
	if o.API == gl.ES && o.Major != 0 && o.Major != 2 && o.Major != 3 {
		return fmt.Errorf("egl: OpenGL ES %d is not a supported client version", o.Major)
	}
	return nil
}

// Error is an EGL failure code.
type Error struct {
	Call string
	Code int32
}

func (e *Error) Error() string {
	return fmt.Sprintf("egl: %s failed (0x%04x)", e.Call, e.Code)
}
