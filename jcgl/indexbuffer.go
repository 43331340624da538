package jcgl

import (
	"unsafe"

	"github.com/tinyrange/canephora/gl"
)

// IndexBuffer holds element indices into an array buffer.
type IndexBuffer struct {
	resource
	indices int
	typ     UnsignedType
}

func (b *IndexBuffer) res() *resource {
	if b == nil {
		return nil
	}
	return &b.resource
}

// Indices is the number of indices the buffer holds.
func (b *IndexBuffer) Indices() int { return b.indices }

// Type is the index element type.
func (b *IndexBuffer) Type() UnsignedType { return b.typ }

// Range returns the first and last valid index positions.
func (b *IndexBuffer) Range() (first, last int) { return 0, b.indices - 1 }

// indexTypeFor returns the smallest type able to address elements.
func indexTypeFor(elements int) UnsignedType {
	switch {
	case elements > 0xffff:
		return UnsignedInt
	case elements > 0xff:
		return UnsignedShort
	default:
		return UnsignedByte
	}
}

// IndexBufferAllocate creates an index buffer with room for indices
// indices, typed to address every element of b.
func (c *Context) IndexBufferAllocate(b *ArrayBuffer, indices int) (*IndexBuffer, error) {
	if err := checkLive(b, "array buffer"); err != nil {
		return nil, err
	}
	return c.IndexBufferAllocateType(indexTypeFor(b.elements), indices)
}

// IndexBufferAllocateType creates an index buffer of an explicit type.
func (c *Context) IndexBufferAllocateType(t UnsignedType, indices int) (*IndexBuffer, error) {
	if err := checkAtLeast("index buffer indices", indices, 1); err != nil {
		return nil, err
	}
	if t < 0 || t >= unsignedTypeCount {
		return nil, constraintf(ErrOutOfRange, "index buffer type", "%d", int(t))
	}

	size := indices * t.Size()
	c.log.Debug("index-buffer: allocate",
		"indices", indices,
		"type", t,
		"bytes", size)

	var name uint32
	c.gl.GenBuffers(1, &name)
	if err := c.check("index buffer allocate"); err != nil {
		return nil, err
	}
	c.gl.BindBuffer(gl.ElementArrayBuffer, name)
	c.gl.BufferData(gl.ElementArrayBuffer, size, nil, gl.StaticDraw)
	c.gl.BindBuffer(gl.ElementArrayBuffer, 0)
	if err := c.check("index buffer allocate"); err != nil {
		c.gl.DeleteBuffers(1, &name)
		return nil, err
	}

	c.log.Debug("index-buffer: allocated", "name", name)
	return &IndexBuffer{resource: resource{name: name}, indices: indices, typ: t}, nil
}

// IndexBufferUpdate replaces indices starting at position first. data must
// hold a whole number of indices of the buffer's type.
func (c *Context) IndexBufferUpdate(b *IndexBuffer, first int, data []byte) error {
	if err := checkLive(b, "index buffer"); err != nil {
		return err
	}
	size := b.typ.Size()
	if len(data)%size != 0 {
		return constraintf(ErrOutOfRange, "index buffer data", "%d bytes is not a multiple of %d", len(data), size)
	}
	count := len(data) / size
	if err := checkRange("index buffer first index", first, 0, b.indices-count); err != nil {
		return err
	}
	if count == 0 {
		return nil
	}
	c.gl.BindBuffer(gl.ElementArrayBuffer, b.name)
	c.gl.BufferSubData(gl.ElementArrayBuffer, first*size, len(data), unsafe.Pointer(&data[0]))
	c.gl.BindBuffer(gl.ElementArrayBuffer, 0)
	return c.check("index buffer update")
}

// IndexBufferDelete deletes b.
func (c *Context) IndexBufferDelete(b *IndexBuffer) error {
	if err := checkLive(b, "index buffer"); err != nil {
		return err
	}
	c.log.Debug("index-buffer: delete", "name", b.name)
	c.gl.DeleteBuffers(1, &b.name)
	release(b)
	return c.check("index buffer delete")
}
