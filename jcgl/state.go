package jcgl

import (
	"unsafe"

	"github.com/tinyrange/canephora/gl"
)

func (c *Context) isEnabled(capability uint32, op string) (bool, error) {
	enabled := c.gl.IsEnabled(capability)
	return enabled, c.check(op)
}

// Color buffer.

// ColorBufferClear clears the color buffer to r, g, b, a.
func (c *Context) ColorBufferClear(r, g, b, a float32) error {
	c.gl.ClearColor(r, g, b, a)
	c.gl.Clear(gl.ColorBufferBit)
	return c.check("color buffer clear")
}

// ColorBufferClear3f clears the color buffer to an opaque color.
func (c *Context) ColorBufferClear3f(r, g, b float32) error {
	return c.ColorBufferClear(r, g, b, 1)
}

// ColorBufferMask enables or disables writes to each color channel.
func (c *Context) ColorBufferMask(r, g, b, a bool) error {
	c.gl.ColorMask(r, g, b, a)
	return c.check("color buffer mask")
}

// ColorBufferMaskStatus reports which color channels accept writes.
func (c *Context) ColorBufferMaskStatus() (r, g, b, a bool, err error) {
	c.bools = [4]bool{}
	c.gl.GetBooleanv(gl.ColorWritemask, &c.bools[0])
	if err := c.check("color buffer mask status"); err != nil {
		return false, false, false, false, err
	}
	return c.bools[0], c.bools[1], c.bools[2], c.bools[3], nil
}

// FramebufferReadRGBA reads area of the bound framebuffer as tightly packed
// RGBA bytes, bottom row first.
func (c *Context) FramebufferReadRGBA(area Area) ([]byte, error) {
	if err := checkAtLeast("read width", area.Width, 1); err != nil {
		return nil, err
	}
	if err := checkAtLeast("read height", area.Height, 1); err != nil {
		return nil, err
	}
	if area.X < 0 || area.Y < 0 {
		return nil, constraintf(ErrOutOfRange, "read area", "%+v", area)
	}
	out := make([]byte, area.Width*area.Height*4)
	c.gl.PixelStorei(gl.PackAlignment, 1)
	c.gl.ReadPixels(int32(area.X), int32(area.Y), int32(area.Width), int32(area.Height), gl.RGBA, gl.UnsignedByte, unsafe.Pointer(&out[0]))
	c.gl.PixelStorei(gl.PackAlignment, 4)
	if err := c.check("framebuffer read"); err != nil {
		return nil, err
	}
	return out, nil
}

// Culling.

// CullingEnable culls faces of the given selection, treating polygons wound
// in order as front facing.
func (c *Context) CullingEnable(faces FaceSelection, order FaceWindingOrder) error {
	if faces < 0 || faces >= faceSelectionCount {
		return constraintf(ErrOutOfRange, "face selection", "%d", int(faces))
	}
	if order < 0 || order >= faceWindingOrderCount {
		return constraintf(ErrOutOfRange, "face winding order", "%d", int(order))
	}
	c.gl.Enable(gl.CullFace)
	c.gl.CullFace(faces.ToGL())
	c.gl.FrontFace(order.ToGL())
	return c.check("culling enable")
}

func (c *Context) CullingDisable() error {
	c.gl.Disable(gl.CullFace)
	return c.check("culling disable")
}

func (c *Context) CullingIsEnabled() (bool, error) {
	return c.isEnabled(gl.CullFace, "culling is enabled")
}

// Depth buffer.

// DepthBufferGetBits returns the depth precision of the bound framebuffer.
func (c *Context) DepthBufferGetBits() (int, error) {
	return c.bufferBits(gl.DepthAttachment, gl.FramebufferAttachmentDepthSize, gl.DepthBits, "depth bits")
}

func (c *Context) requireDepth() error {
	bits, err := c.DepthBufferGetBits()
	if err != nil {
		return err
	}
	if bits == 0 {
		return constraint(ErrNoDepthBuffer, "depth buffer")
	}
	return nil
}

// DepthBufferClear clears the depth buffer to depth.
func (c *Context) DepthBufferClear(depth float32) error {
	if err := c.requireDepth(); err != nil {
		return err
	}
	c.gl.ClearDepth(depth)
	c.gl.Clear(gl.DepthBufferBit)
	return c.check("depth buffer clear")
}

// DepthBufferEnable enables depth testing with fn.
func (c *Context) DepthBufferEnable(fn DepthFunction) error {
	if fn < 0 || fn >= depthFunctionCount {
		return constraintf(ErrOutOfRange, "depth function", "%d", int(fn))
	}
	if err := c.requireDepth(); err != nil {
		return err
	}
	c.gl.Enable(gl.DepthTest)
	c.gl.DepthFunc(fn.ToGL())
	return c.check("depth buffer enable")
}

func (c *Context) DepthBufferDisable() error {
	if err := c.requireDepth(); err != nil {
		return err
	}
	c.gl.Disable(gl.DepthTest)
	return c.check("depth buffer disable")
}

func (c *Context) DepthBufferIsEnabled() (bool, error) {
	if err := c.requireDepth(); err != nil {
		return false, err
	}
	return c.isEnabled(gl.DepthTest, "depth buffer is enabled")
}

func (c *Context) DepthBufferWriteEnable() error {
	if err := c.requireDepth(); err != nil {
		return err
	}
	c.gl.DepthMask(true)
	return c.check("depth buffer write enable")
}

func (c *Context) DepthBufferWriteDisable() error {
	if err := c.requireDepth(); err != nil {
		return err
	}
	c.gl.DepthMask(false)
	return c.check("depth buffer write disable")
}

func (c *Context) DepthBufferIsWriteEnabled() (bool, error) {
	if err := c.requireDepth(); err != nil {
		return false, err
	}
	c.bools[0] = false
	c.gl.GetBooleanv(gl.DepthWritemask, &c.bools[0])
	return c.bools[0], c.check("depth buffer is write enabled")
}

// bufferBits queries the size of a depth or stencil buffer. Profiles with
// attachment queries ask the bound framebuffer object and fall back to the
// legacy state for the default framebuffer.
func (c *Context) bufferBits(attachment, size, legacy uint32, op string) (int, error) {
	if c.profile.attachmentBits {
		bound, err := c.getInteger(gl.FramebufferBinding, op)
		if err != nil {
			return 0, err
		}
		if bound != 0 {
			c.ints[0] = 0
			c.gl.GetFramebufferAttachmentParameteriv(gl.Framebuffer, attachment, gl.FramebufferAttachmentObjectType, &c.ints[0])
			if err := c.check(op); err != nil {
				return 0, err
			}
			if c.ints[0] == gl.NoneAttachment {
				return 0, nil
			}
			c.ints[0] = 0
			c.gl.GetFramebufferAttachmentParameteriv(gl.Framebuffer, attachment, size, &c.ints[0])
			if err := c.check(op); err != nil {
				return 0, err
			}
			return int(c.ints[0]), nil
		}
	}
	return c.getInteger(legacy, op)
}

// Stencil buffer.

// StencilBufferGetBits returns the stencil precision of the bound
// framebuffer.
func (c *Context) StencilBufferGetBits() (int, error) {
	return c.bufferBits(gl.StencilAttachment, gl.FramebufferAttachmentStencilSz, gl.StencilBits, "stencil bits")
}

func (c *Context) requireStencil() error {
	bits, err := c.StencilBufferGetBits()
	if err != nil {
		return err
	}
	if bits == 0 {
		return constraint(ErrNoStencilBuffer, "stencil buffer")
	}
	return nil
}

// StencilBufferClear clears the stencil buffer to s.
func (c *Context) StencilBufferClear(s int32) error {
	if err := c.requireStencil(); err != nil {
		return err
	}
	c.gl.ClearStencil(s)
	c.gl.Clear(gl.StencilBufferBit)
	return c.check("stencil buffer clear")
}

func (c *Context) StencilBufferEnable() error {
	if err := c.requireStencil(); err != nil {
		return err
	}
	c.gl.Enable(gl.StencilTest)
	return c.check("stencil buffer enable")
}

func (c *Context) StencilBufferDisable() error {
	if err := c.requireStencil(); err != nil {
		return err
	}
	c.gl.Disable(gl.StencilTest)
	return c.check("stencil buffer disable")
}

func (c *Context) StencilBufferIsEnabled() (bool, error) {
	if err := c.requireStencil(); err != nil {
		return false, err
	}
	return c.isEnabled(gl.StencilTest, "stencil buffer is enabled")
}

// StencilBufferFunction sets the stencil test for faces.
func (c *Context) StencilBufferFunction(faces FaceSelection, fn StencilFunction, ref int32, mask uint32) error {
	if faces < 0 || faces >= faceSelectionCount {
		return constraintf(ErrOutOfRange, "face selection", "%d", int(faces))
	}
	if fn < 0 || fn >= stencilFunctionCount {
		return constraintf(ErrOutOfRange, "stencil function", "%d", int(fn))
	}
	if err := c.requireStencil(); err != nil {
		return err
	}
	c.gl.StencilFuncSeparate(faces.ToGL(), fn.ToGL(), ref, mask)
	return c.check("stencil buffer function")
}

// StencilBufferMask sets the stencil write mask for faces.
func (c *Context) StencilBufferMask(faces FaceSelection, mask uint32) error {
	if faces < 0 || faces >= faceSelectionCount {
		return constraintf(ErrOutOfRange, "face selection", "%d", int(faces))
	}
	if err := c.requireStencil(); err != nil {
		return err
	}
	c.gl.StencilMaskSeparate(faces.ToGL(), mask)
	return c.check("stencil buffer mask")
}

// StencilBufferOperation sets the actions taken when the stencil test
// fails, the depth test fails, and both pass.
func (c *Context) StencilBufferOperation(faces FaceSelection, stencilFail, depthFail, pass StencilOperation) error {
	if faces < 0 || faces >= faceSelectionCount {
		return constraintf(ErrOutOfRange, "face selection", "%d", int(faces))
	}
	for _, op := range []StencilOperation{stencilFail, depthFail, pass} {
		if op < 0 || op >= stencilOperationCount {
			return constraintf(ErrOutOfRange, "stencil operation", "%d", int(op))
		}
	}
	if err := c.requireStencil(); err != nil {
		return err
	}
	c.gl.StencilOpSeparate(faces.ToGL(), stencilFail.ToGL(), depthFail.ToGL(), pass.ToGL())
	return c.check("stencil buffer operation")
}

// Scissor and viewport.

// ScissorEnable restricts drawing to area.
func (c *Context) ScissorEnable(area Area) error {
	if area.Width < 0 || area.Height < 0 {
		return constraintf(ErrOutOfRange, "scissor area", "%+v", area)
	}
	c.gl.Enable(gl.ScissorTest)
	c.gl.Scissor(int32(area.X), int32(area.Y), int32(area.Width), int32(area.Height))
	return c.check("scissor enable")
}

func (c *Context) ScissorDisable() error {
	c.gl.Disable(gl.ScissorTest)
	return c.check("scissor disable")
}

func (c *Context) ScissorIsEnabled() (bool, error) {
	return c.isEnabled(gl.ScissorTest, "scissor is enabled")
}

// ViewportSet maps normalized device coordinates onto area.
func (c *Context) ViewportSet(area Area) error {
	if area.Width < 0 || area.Height < 0 {
		return constraintf(ErrOutOfRange, "viewport area", "%+v", area)
	}
	c.gl.Viewport(int32(area.X), int32(area.Y), int32(area.Width), int32(area.Height))
	return c.check("viewport set")
}

// Lines.

// LineSetWidth sets the rasterized line width. The width must lie within the
// smooth range while line smoothing is enabled and within the aliased range
// otherwise.
func (c *Context) LineSetWidth(width float32) error {
	r, which := c.caps.AliasedLineWidth, "aliased"
	if c.profile.lineSmoothing {
		smooth, err := c.isEnabled(gl.LineSmooth, "line smoothing is enabled")
		if err != nil {
			return err
		}
		if smooth {
			r, which = c.caps.SmoothLineWidth, "smooth"
		}
	}
	if !r.Contains(width) {
		return constraintf(ErrOutOfRange, "line width", "%g outside %s range [%d, %d]", width, which, r.Min, r.Max)
	}
	c.gl.LineWidth(width)
	return c.check("line set width")
}

// LineSmoothingEnable enables line antialiasing. Only desktop profiles
// support it.
func (c *Context) LineSmoothingEnable() error {
	if !c.profile.lineSmoothing {
		return constraintf(ErrUnsupportedOperation, "line smoothing", "on %s", c.profile.kind)
	}
	c.gl.Enable(gl.LineSmooth)
	return c.check("line smoothing enable")
}

func (c *Context) LineSmoothingDisable() error {
	if !c.profile.lineSmoothing {
		return constraintf(ErrUnsupportedOperation, "line smoothing", "on %s", c.profile.kind)
	}
	c.gl.Disable(gl.LineSmooth)
	return c.check("line smoothing disable")
}
