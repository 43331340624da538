//go:build linux

package egl

import (
	"runtime"

	"github.com/ebitengine/purego"

	"github.com/tinyrange/canephora/gl"
)

const (
	eglAlphaSize      = 0x3021
	eglBlueSize       = 0x3022
	eglGreenSize      = 0x3023
	eglRedSize        = 0x3024
	eglDepthSize      = 0x3025
	eglStencilSize    = 0x3026
	eglSurfaceType    = 0x3033
	eglNone           = 0x3038
	eglRenderableType = 0x3040
	eglHeight         = 0x3056
	eglWidth          = 0x3057
	eglClientVersion  = 0x3098
	eglOpenGLESAPI    = 0x30A0
	eglOpenGLAPI      = 0x30A2

	eglPbufferBit   = 0x0001
	eglOpenGLES2Bit = 0x0004
	eglOpenGLBit    = 0x0008
	eglOpenGLES3Bit = 0x0040
)

var (
	egllib uintptr

	eglGetDisplay           func(uintptr) uintptr
	eglInitialize           func(uintptr, *int32, *int32) uint32
	eglTerminate            func(uintptr) uint32
	eglBindAPI              func(uint32) uint32
	eglChooseConfig         func(uintptr, *int32, *uintptr, int32, *int32) uint32
	eglCreatePbufferSurface func(uintptr, uintptr, *int32) uintptr
	eglCreateContext        func(uintptr, uintptr, uintptr, *int32) uintptr
	eglMakeCurrent          func(uintptr, uintptr, uintptr, uintptr) uint32
	eglDestroySurface       func(uintptr, uintptr) uint32
	eglDestroyContext       func(uintptr, uintptr) uint32
	eglGetError             func() int32
)

func ensureLibs() error {
	if egllib != 0 {
		return nil
	}
	lib, err := purego.Dlopen("libEGL.so.1", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
	if err != nil {
		return err
	}
	purego.RegisterLibFunc(&eglGetDisplay, lib, "eglGetDisplay")
	purego.RegisterLibFunc(&eglInitialize, lib, "eglInitialize")
	purego.RegisterLibFunc(&eglTerminate, lib, "eglTerminate")
	purego.RegisterLibFunc(&eglBindAPI, lib, "eglBindAPI")
	purego.RegisterLibFunc(&eglChooseConfig, lib, "eglChooseConfig")
	purego.RegisterLibFunc(&eglCreatePbufferSurface, lib, "eglCreatePbufferSurface")
	purego.RegisterLibFunc(&eglCreateContext, lib, "eglCreateContext")
	purego.RegisterLibFunc(&eglMakeCurrent, lib, "eglMakeCurrent")
	purego.RegisterLibFunc(&eglDestroySurface, lib, "eglDestroySurface")
	purego.RegisterLibFunc(&eglDestroyContext, lib, "eglDestroyContext")
	purego.RegisterLibFunc(&eglGetError, lib, "eglGetError")
	egllib = lib
	return nil
}

// Headless is a context current on the goroutine that created it. The
// goroutine stays locked to its OS thread until Release.
type Headless struct {
	display uintptr
	surface uintptr
	context uintptr
	fns     gl.Functions
}

func fail(call string) error {
	return &Error{Call: call, Code: eglGetError()}
}

// NewHeadless creates a pbuffer backed context and makes it current.
func NewHeadless(opts Options) (_ *Headless, err error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	runtime.LockOSThread()
	if err := ensureLibs(); err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}

	h := &Headless{}
	defer func() {
		if err != nil {
			h.Release()
		}
	}()

	h.display = eglGetDisplay(0)
	if h.display == 0 {
		return nil, fail("eglGetDisplay")
	}
	var major, minor int32
	if eglInitialize(h.display, &major, &minor) == 0 {
		return nil, fail("eglInitialize")
	}

	api, renderable := uint32(eglOpenGLAPI), int32(eglOpenGLBit)
	var contextAttrs []int32
	if opts.API == gl.ES {
		api, renderable = eglOpenGLESAPI, eglOpenGLES2Bit
		clientVersion := int32(2)
		if opts.Major == 3 {
			renderable, clientVersion = eglOpenGLES3Bit, 3
		}
		contextAttrs = append(contextAttrs, eglClientVersion, clientVersion)
	}
	contextAttrs = append(contextAttrs, eglNone)
	if eglBindAPI(api) == 0 {
		return nil, fail("eglBindAPI")
	}

	configAttrs := []int32{
		eglSurfaceType, eglPbufferBit,
		eglRenderableType, renderable,
		eglRedSize, 8,
		eglGreenSize, 8,
		eglBlueSize, 8,
		eglAlphaSize, 8,
		eglDepthSize, 24,
		eglStencilSize, 8,
		eglNone,
	}
	var config uintptr
	var count int32
	if eglChooseConfig(h.display, &configAttrs[0], &config, 1, &count) == 0 || count == 0 {
		return nil, fail("eglChooseConfig")
	}

	surfaceAttrs := []int32{eglWidth, int32(opts.Width), eglHeight, int32(opts.Height), eglNone}
	h.surface = eglCreatePbufferSurface(h.display, config, &surfaceAttrs[0])
	if h.surface == 0 {
		return nil, fail("eglCreatePbufferSurface")
	}
	h.context = eglCreateContext(h.display, config, 0, &contextAttrs[0])
	if h.context == 0 {
		return nil, fail("eglCreateContext")
	}
	if eglMakeCurrent(h.display, h.surface, h.surface, h.context) == 0 {
		return nil, fail("eglMakeCurrent")
	}

	h.fns, err = gl.Load(opts.API)
	if err != nil {
		return nil, err
	}
	return h, nil
}

// Functions returns the entry points bound for the current context.
func (h *Headless) Functions() gl.Functions { return h.fns }

// Release destroys the context and unlocks the OS thread.
func (h *Headless) Release() {
	if h.display == 0 {
		runtime.UnlockOSThread()
		return
	}
	eglMakeCurrent(h.display, 0, 0, 0)
	if h.context != 0 {
		eglDestroyContext(h.display, h.context)
		h.context = 0
	}
	if h.surface != 0 {
		eglDestroySurface(h.display, h.surface)
		h.surface = 0
	}
	eglTerminate(h.display)
	h.display = 0
	runtime.UnlockOSThread()
}
