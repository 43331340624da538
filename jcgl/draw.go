package jcgl

import "github.com/tinyrange/canephora/gl"

// DrawElements draws every index of b as primitive p.
func (c *Context) DrawElements(p Primitive, b *IndexBuffer) error {
	if err := checkLive(b, "index buffer"); err != nil {
		return err
	}
	if p < 0 || p >= primitiveCount {
		return constraintf(ErrOutOfRange, "primitive", "%d", int(p))
	}
	c.gl.BindBuffer(gl.ElementArrayBuffer, b.name)
	c.gl.DrawElements(p.ToGL(), int32(b.indices), b.typ.ToGL(), 0)
	c.gl.BindBuffer(gl.ElementArrayBuffer, 0)
	return c.check("draw elements")
}

// DrawArrays draws count consecutive elements of the vertex attributes
// currently enabled, starting at first.
func (c *Context) DrawArrays(p Primitive, first, count int) error {
	if p < 0 || p >= primitiveCount {
		return constraintf(ErrOutOfRange, "primitive", "%d", int(p))
	}
	if first < 0 || count < 0 {
		return constraintf(ErrOutOfRange, "draw range", "first %d count %d", first, count)
	}
	c.gl.DrawArrays(p.ToGL(), int32(first), int32(count))
	return c.check("draw arrays")
}
