package jcgl

import (
	"slices"

	"github.com/tinyrange/canephora/gl"
)

// Attachment is one image attached to a framebuffer. It is implemented by
// ColorTexture, ColorRenderbuffer, DepthStencil and Depth. Pointers to
// those types are accepted and dereferenced.
type Attachment interface {
	attachment()
}

// ColorTexture attaches a texture at color attachment point Index.
type ColorTexture struct {
	Index   int
	Texture *Texture2D
}

// ColorRenderbuffer attaches a color renderbuffer at color attachment point
// Index.
type ColorRenderbuffer struct {
	Index        int
	Renderbuffer *Renderbuffer
}

// DepthStencil attaches a packed depth/stencil renderbuffer to both the
// depth and stencil attachment points.
type DepthStencil struct {
	Renderbuffer *Renderbuffer
}

// Depth attaches a depth-only renderbuffer.
type Depth struct {
	Renderbuffer *Renderbuffer
}

func (ColorTexture) attachment()      {}
func (ColorRenderbuffer) attachment() {}
func (DepthStencil) attachment()      {}
func (Depth) attachment()             {}

// Framebuffer is a complete framebuffer object.
type Framebuffer struct {
	resource
	colors     []int
	depth      bool
	stencil    bool
	attachment []Attachment
}

func (f *Framebuffer) res() *resource {
	if f == nil {
		return nil
	}
	return &f.resource
}

// ColorIndices lists the used color attachment points in ascending order.
func (f *Framebuffer) ColorIndices() []int { return append([]int(nil), f.colors...) }

func (f *Framebuffer) HasDepth() bool   { return f.depth }
func (f *Framebuffer) HasStencil() bool { return f.stencil }

// Attachments returns the attachments given at allocation.
func (f *Framebuffer) Attachments() []Attachment {
	return append([]Attachment(nil), f.attachment...)
}

// normalizeAttachments dereferences pointer attachments so that later
// switches only see the value forms.
func normalizeAttachments(attachments []Attachment) ([]Attachment, error) {
	out := make([]Attachment, len(attachments))
	for i, a := range attachments {
		switch a := a.(type) {
		case ColorTexture, ColorRenderbuffer, DepthStencil, Depth:
			out[i] = a
		case *ColorTexture:
			if a == nil {
				return nil, constraint(ErrNilArgument, "framebuffer attachment")
			}
			out[i] = *a
		case *ColorRenderbuffer:
			if a == nil {
				return nil, constraint(ErrNilArgument, "framebuffer attachment")
			}
			out[i] = *a
		case *DepthStencil:
			if a == nil {
				return nil, constraint(ErrNilArgument, "framebuffer attachment")
			}
			out[i] = *a
		case *Depth:
			if a == nil {
				return nil, constraint(ErrNilArgument, "framebuffer attachment")
			}
			out[i] = *a
		case nil:
			return nil, constraint(ErrNilArgument, "framebuffer attachment")
		default:
			return nil, constraintf(ErrTypeMismatch, "framebuffer attachment", "%T", a)
		}
	}
	return out, nil
}

// validateAttachments performs every check that needs no driver round trip.
// attachments must already be normalized.
func (c *Context) validateAttachments(attachments []Attachment) ([]int, bool, bool, error) {
	limit := c.caps.MaxColorAttachments
	if c.profile.gl3 {
		limit = min(limit, c.caps.MaxDrawBuffers)
	}
	used := make(map[int]bool)
	var colors []int
	var depth, stencil bool
	color := func(index int, h handle, subject string) error {
		if err := checkLive(h, subject); err != nil {
			return err
		}
		if err := checkRange("color attachment index", index, 0, limit-1); err != nil {
			return err
		}
		if used[index] {
			return constraintf(ErrDuplicateAttachment, "color attachment index", "%d", index)
		}
		used[index] = true
		colors = append(colors, index)
		return nil
	}
	for _, a := range attachments {
		switch a := a.(type) {
		case ColorTexture:
			if err := color(a.Index, a.Texture, "color texture"); err != nil {
				return nil, false, false, err
			}
		case ColorRenderbuffer:
			if err := color(a.Index, a.Renderbuffer, "color renderbuffer"); err != nil {
				return nil, false, false, err
			}
			if !a.Renderbuffer.typ.Color() {
				return nil, false, false, constraintf(ErrTypeMismatch, "color renderbuffer", "%s", a.Renderbuffer.typ)
			}
		case DepthStencil:
			if err := checkLive(a.Renderbuffer, "depth stencil renderbuffer"); err != nil {
				return nil, false, false, err
			}
			if a.Renderbuffer.typ != RenderbufferDepth24Stencil8 {
				return nil, false, false, constraintf(ErrTypeMismatch, "depth stencil renderbuffer", "%s", a.Renderbuffer.typ)
			}
			if depth || stencil {
				return nil, false, false, constraint(ErrMultipleDepthStencil, "depth stencil renderbuffer")
			}
			depth, stencil = true, true
		case Depth:
			if err := checkLive(a.Renderbuffer, "depth renderbuffer"); err != nil {
				return nil, false, false, err
			}
			if a.Renderbuffer.typ != RenderbufferDepth16 {
				return nil, false, false, constraintf(ErrTypeMismatch, "depth renderbuffer", "%s", a.Renderbuffer.typ)
			}
			if depth || stencil {
				return nil, false, false, constraint(ErrMultipleDepthStencil, "depth renderbuffer")
			}
			depth = true
		default:
			return nil, false, false, constraintf(ErrTypeMismatch, "framebuffer attachment", "%T", a)
		}
	}
	if len(colors) == 0 {
		return nil, false, false, constraint(ErrNoColorAttachment, "framebuffer")
	}
	return colors, depth, stencil, nil
}

// FramebufferAllocate creates a framebuffer from attachments and verifies
// it is complete. Whatever the outcome, no framebuffer is bound on return.
func (c *Context) FramebufferAllocate(attachments ...Attachment) (fb *Framebuffer, err error) {
	attachments, err = normalizeAttachments(attachments)
	if err != nil {
		return nil, err
	}
	colors, depth, stencil, err := c.validateAttachments(attachments)
	if err != nil {
		return nil, err
	}

	var name uint32
	c.gl.GenFramebuffers(1, &name)
	if err := c.check("framebuffer allocate"); err != nil {
		return nil, err
	}
	c.log.Debug("framebuffer: allocate", "name", name, "attachments", len(attachments))

	c.gl.BindFramebuffer(gl.Framebuffer, name)
	defer func() {
		c.gl.BindFramebuffer(gl.Framebuffer, 0)
		if err != nil {
			c.gl.DeleteFramebuffers(1, &name)
			c.log.Debug("framebuffer: allocation failed", "name", name, "err", err)
		}
	}()

	for _, a := range attachments {
		switch a := a.(type) {
		case ColorTexture:
			c.log.Debug("framebuffer: attach color texture", "index", a.Index, "texture", a.Texture.name)
			c.gl.FramebufferTexture2D(gl.Framebuffer, drawBuffer(a.Index), gl.Texture2D, a.Texture.name, 0)
		case ColorRenderbuffer:
			c.log.Debug("framebuffer: attach color renderbuffer", "index", a.Index, "renderbuffer", a.Renderbuffer.name)
			c.gl.FramebufferRenderbuffer(gl.Framebuffer, drawBuffer(a.Index), gl.Renderbuffer, a.Renderbuffer.name)
		case DepthStencil:
			c.log.Debug("framebuffer: attach depth stencil", "renderbuffer", a.Renderbuffer.name)
			c.gl.FramebufferRenderbuffer(gl.Framebuffer, gl.DepthAttachment, gl.Renderbuffer, a.Renderbuffer.name)
			c.gl.FramebufferRenderbuffer(gl.Framebuffer, gl.StencilAttachment, gl.Renderbuffer, a.Renderbuffer.name)
		case Depth:
			c.log.Debug("framebuffer: attach depth", "renderbuffer", a.Renderbuffer.name)
			c.gl.FramebufferRenderbuffer(gl.Framebuffer, gl.DepthAttachment, gl.Renderbuffer, a.Renderbuffer.name)
		}
		if err := c.check("framebuffer attach"); err != nil {
			return nil, err
		}
	}

	if c.profile.gl3 {
		// Fragment output i writes color attachment i; holes are left unset.
		bufs := make([]uint32, slices.Max(colors)+1)
		for _, i := range colors {
			bufs[i] = drawBuffer(i)
		}
		c.gl.DrawBuffers(int32(len(bufs)), &bufs[0])
		if err := c.check("framebuffer draw buffers"); err != nil {
			return nil, err
		}
	}

	code := c.gl.CheckFramebufferStatus(gl.Framebuffer)
	if status, ok := framebufferStatus(code); !ok {
		return nil, &FramebufferError{Code: code, Status: status}
	}
	if err := c.check("framebuffer status"); err != nil {
		return nil, err
	}

	slices.Sort(colors)
	c.log.Debug("framebuffer: allocated", "name", name)
	return &Framebuffer{
		resource:   resource{name: name},
		colors:     colors,
		depth:      depth,
		stencil:    stencil,
		attachment: append([]Attachment(nil), attachments...),
	}, nil
}

// FramebufferBind binds f for drawing and reading.
func (c *Context) FramebufferBind(f *Framebuffer) error {
	if err := checkLive(f, "framebuffer"); err != nil {
		return err
	}
	c.gl.BindFramebuffer(gl.Framebuffer, f.name)
	return c.check("framebuffer bind")
}

// FramebufferUnbind restores the default framebuffer.
func (c *Context) FramebufferUnbind() error {
	c.gl.BindFramebuffer(gl.Framebuffer, 0)
	return c.check("framebuffer unbind")
}

// FramebufferIsBound reports whether f is the bound framebuffer.
func (c *Context) FramebufferIsBound(f *Framebuffer) (bool, error) {
	if err := checkLive(f, "framebuffer"); err != nil {
		return false, err
	}
	bound, err := c.getInteger(gl.FramebufferBinding, "framebuffer binding")
	if err != nil {
		return false, err
	}
	return uint32(bound) == f.name, nil
}

// FramebufferDelete deletes f. The attached images are not deleted.
func (c *Context) FramebufferDelete(f *Framebuffer) error {
	if err := checkLive(f, "framebuffer"); err != nil {
		return err
	}
	c.log.Debug("framebuffer: delete", "name", f.name)
	c.gl.DeleteFramebuffers(1, &f.name)
	release(f)
	return c.check("framebuffer delete")
}
