package jcgl

import "github.com/tinyrange/canephora/gl"

// Renderbuffer is an image usable only as a framebuffer attachment.
type Renderbuffer struct {
	resource
	typ           RenderbufferType
	width, height int
}

func (r *Renderbuffer) res() *resource {
	if r == nil {
		return nil
	}
	return &r.resource
}

func (r *Renderbuffer) Type() RenderbufferType { return r.typ }
func (r *Renderbuffer) Width() int             { return r.width }
func (r *Renderbuffer) Height() int            { return r.height }

// RenderbufferAllocate creates a width x height renderbuffer. It is left
// unbound.
func (c *Context) RenderbufferAllocate(t RenderbufferType, width, height int) (*Renderbuffer, error) {
	if t < 0 || t >= renderbufferTypeCount {
		return nil, constraintf(ErrOutOfRange, "renderbuffer type", "%d", int(t))
	}
	if err := checkAtLeast("renderbuffer width", width, 1); err != nil {
		return nil, err
	}
	if err := checkAtLeast("renderbuffer height", height, 1); err != nil {
		return nil, err
	}
	if ext, ok := c.profile.renderbufferExtensions[t]; ok && !c.ExtensionSupported(ext) {
		return nil, &UnsupportedError{Missing: ext}
	}

	c.log.Debug("renderbuffer: allocate", "type", t, "width", width, "height", height)

	var name uint32
	c.gl.GenRenderbuffers(1, &name)
	if err := c.check("renderbuffer allocate"); err != nil {
		return nil, err
	}
	c.gl.BindRenderbuffer(gl.Renderbuffer, name)
	c.gl.RenderbufferStorage(gl.Renderbuffer, t.ToGL(), int32(width), int32(height))
	c.gl.BindRenderbuffer(gl.Renderbuffer, 0)
	if err := c.check("renderbuffer allocate"); err != nil {
		c.gl.DeleteRenderbuffers(1, &name)
		return nil, err
	}

	c.log.Debug("renderbuffer: allocated", "name", name)
	return &Renderbuffer{resource: resource{name: name}, typ: t, width: width, height: height}, nil
}

// RenderbufferDelete deletes r.
func (c *Context) RenderbufferDelete(r *Renderbuffer) error {
	if err := checkLive(r, "renderbuffer"); err != nil {
		return err
	}
	c.log.Debug("renderbuffer: delete", "name", r.name)
	c.gl.DeleteRenderbuffers(1, &r.name)
	release(r)
	return c.check("renderbuffer delete")
}
