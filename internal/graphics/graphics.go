package graphics

import (
	"image"

	"github.com/tinyrange/canephora/jcgl"
)

// Color is a non-premultiplied RGBA color with components in [0, 1].
type Color [4]float32

var (
	ColorWhite = Color{1, 1, 1, 1}
	// ColorBlack is the initial clear color of a surface.
	ColorBlack = Color{0, 0, 0, 1}
)

type Frame interface {
	// Size is the surface size in pixels.
	Size() (width, height int)

	// RenderQuad draws tex tinted by color into the rectangle at x, y, with
	// the origin at the top left corner of the surface.
	RenderQuad(x, y, width, height float32, tex Texture, color Color) error

	Screenshot() (image.Image, error)
}

type Texture interface {
	Size() (width, height int)
}

type Surface interface {
	// Context is the checked GL facade the surface renders with.
	Context() *jcgl.Context

	// Create a new texture from an image.
	NewTexture(image.Image) (Texture, error)
	DeleteTexture(Texture) error

	SetClear(enabled bool)
	SetClearColor(c Color)

	// Frame renders one frame into the surface's framebuffer.
	Frame(func(f Frame) error) error

	// Close deletes every GL object owned by the surface.
	Close() error
}
