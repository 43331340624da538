package jcgl

import (
	"unsafe"

	"github.com/tinyrange/canephora/gl"
)

// ArrayAttribute describes one interleaved attribute of an array buffer
// element.
type ArrayAttribute struct {
	Name string
	Type ScalarType
	// Elements is the number of components, 1 to 4.
	Elements int
}

// Size is the size of the attribute in bytes.
func (a ArrayAttribute) Size() int { return a.Type.Size() * a.Elements }

// ArrayDescriptor is the layout of one array buffer element: attributes in
// declaration order, tightly packed.
type ArrayDescriptor struct {
	attributes []ArrayAttribute
	offsets    []int
	size       int
}

// NewArrayDescriptor builds a layout from attrs. Names must be unique.
func NewArrayDescriptor(attrs ...ArrayAttribute) (*ArrayDescriptor, error) {
	if len(attrs) == 0 {
		return nil, constraint(ErrOutOfRange, "array descriptor", "no attributes")
	}
	d := &ArrayDescriptor{
		attributes: make([]ArrayAttribute, len(attrs)),
		offsets:    make([]int, len(attrs)),
	}
	seen := make(map[string]bool, len(attrs))
	for i, a := range attrs {
		if a.Name == "" {
			return nil, constraint(ErrNilArgument, "array attribute name")
		}
		if seen[a.Name] {
			return nil, constraintf(ErrDuplicateName, "array attribute", "%q", a.Name)
		}
		if a.Type < 0 || a.Type >= scalarTypeCount {
			return nil, constraintf(ErrOutOfRange, "array attribute type", "%q", a.Name)
		}
		if err := checkRange("array attribute elements", a.Elements, 1, 4); err != nil {
			return nil, err
		}
		seen[a.Name] = true
		d.attributes[i] = a
		d.offsets[i] = d.size
		d.size += a.Size()
	}
	return d, nil
}

// ElementSize is the size of one element in bytes.
func (d *ArrayDescriptor) ElementSize() int { return d.size }

// Attributes returns the attributes in declaration order.
func (d *ArrayDescriptor) Attributes() []ArrayAttribute {
	return append([]ArrayAttribute(nil), d.attributes...)
}

// Attribute returns the named attribute and its byte offset within an
// element.
func (d *ArrayDescriptor) Attribute(name string) (ArrayAttribute, int, bool) {
	for i, a := range d.attributes {
		if a.Name == name {
			return a, d.offsets[i], true
		}
	}
	return ArrayAttribute{}, 0, false
}

// ArrayBuffer is a vertex buffer holding a fixed number of elements.
type ArrayBuffer struct {
	resource
	elements int
	desc     *ArrayDescriptor
	usage    UsageHint
}

func (b *ArrayBuffer) res() *resource {
	if b == nil {
		return nil
	}
	return &b.resource
}

func (b *ArrayBuffer) Elements() int                { return b.elements }
func (b *ArrayBuffer) Descriptor() *ArrayDescriptor { return b.desc }
func (b *ArrayBuffer) Usage() UsageHint             { return b.usage }

// Size is the size of the buffer in bytes.
func (b *ArrayBuffer) Size() int { return b.elements * b.desc.size }

// ArrayBufferAllocate creates an uninitialised buffer of elements elements.
// The buffer is left unbound.
func (c *Context) ArrayBufferAllocate(elements int, desc *ArrayDescriptor, usage UsageHint) (*ArrayBuffer, error) {
	if err := checkAtLeast("array buffer elements", elements, 1); err != nil {
		return nil, err
	}
	if desc == nil {
		return nil, constraint(ErrNilArgument, "array descriptor")
	}
	if desc.size == 0 {
		return nil, constraint(ErrOutOfRange, "array descriptor", "no attributes; build it with NewArrayDescriptor")
	}
	if err := c.profile.checkUsage(usage); err != nil {
		return nil, err
	}

	size := elements * desc.size
	c.log.Debug("array-buffer: allocate",
		"elements", elements,
		"element_size", desc.size,
		"bytes", size)

	var name uint32
	c.gl.GenBuffers(1, &name)
	if err := c.check("array buffer allocate"); err != nil {
		return nil, err
	}
	c.gl.BindBuffer(gl.ArrayBuffer, name)
	c.gl.BufferData(gl.ArrayBuffer, size, nil, usage.ToGL())
	c.gl.BindBuffer(gl.ArrayBuffer, 0)
	if err := c.check("array buffer allocate"); err != nil {
		c.gl.DeleteBuffers(1, &name)
		return nil, err
	}

	c.log.Debug("array-buffer: allocated", "name", name)
	return &ArrayBuffer{
		resource: resource{name: name},
		elements: elements,
		desc:     desc,
		usage:    usage,
	}, nil
}

// ArrayBufferBind binds b to the array buffer target.
func (c *Context) ArrayBufferBind(b *ArrayBuffer) error {
	if err := checkLive(b, "array buffer"); err != nil {
		return err
	}
	c.gl.BindBuffer(gl.ArrayBuffer, b.name)
	return c.check("array buffer bind")
}

// ArrayBufferUnbind clears the array buffer binding.
func (c *Context) ArrayBufferUnbind() error {
	c.gl.BindBuffer(gl.ArrayBuffer, 0)
	return c.check("array buffer unbind")
}

// ArrayBufferIsBound reports whether b is bound to the array buffer target.
func (c *Context) ArrayBufferIsBound(b *ArrayBuffer) (bool, error) {
	if err := checkLive(b, "array buffer"); err != nil {
		return false, err
	}
	return c.arrayBufferBound(b)
}

func (c *Context) arrayBufferBound(b *ArrayBuffer) (bool, error) {
	bound, err := c.getInteger(gl.ArrayBufferBinding, "array buffer binding")
	if err != nil {
		return false, err
	}
	return uint32(bound) == b.name, nil
}

func (c *Context) requireArrayBufferBound(b *ArrayBuffer) error {
	bound, err := c.arrayBufferBound(b)
	if err != nil {
		return err
	}
	if !bound {
		return constraintf(ErrNotBound, "array buffer", "name %d", b.name)
	}
	return nil
}

// ArrayBufferDelete deletes b. Deleting a deleted buffer is a caller error
// and issues no native call.
func (c *Context) ArrayBufferDelete(b *ArrayBuffer) error {
	if err := checkLive(b, "array buffer"); err != nil {
		return err
	}
	c.log.Debug("array-buffer: delete", "name", b.name)
	c.gl.DeleteBuffers(1, &b.name)
	release(b)
	return c.check("array buffer delete")
}

// ArrayBufferUpdate replaces elements starting at element first with data,
// which must hold a whole number of elements. b must be bound.
func (c *Context) ArrayBufferUpdate(b *ArrayBuffer, first int, data []byte) error {
	if err := checkLive(b, "array buffer"); err != nil {
		return err
	}
	size := b.desc.size
	if len(data)%size != 0 {
		return constraintf(ErrOutOfRange, "array buffer data", "%d bytes is not a multiple of the %d byte element size", len(data), size)
	}
	count := len(data) / size
	if err := checkRange("array buffer first element", first, 0, b.elements-count); err != nil {
		return err
	}
	if err := c.requireArrayBufferBound(b); err != nil {
		return err
	}
	if count == 0 {
		return nil
	}
	c.gl.BufferSubData(gl.ArrayBuffer, first*size, len(data), unsafe.Pointer(&data[0]))
	return c.check("array buffer update")
}

// ArrayBufferRead maps b for reading and returns a copy of its contents. b
// must be bound. Mapping needs an OpenGL 3 or OpenGL ES 3 profile.
func (c *Context) ArrayBufferRead(b *ArrayBuffer) ([]byte, error) {
	if err := checkLive(b, "array buffer"); err != nil {
		return nil, err
	}
	if !c.profile.gl3 {
		return nil, constraintf(ErrUnsupportedOperation, "array buffer read", "buffer mapping on %s", c.profile.kind)
	}
	if err := c.requireArrayBufferBound(b); err != nil {
		return nil, err
	}
	size := b.Size()
	ptr := c.gl.MapBufferRange(gl.ArrayBuffer, 0, size, gl.MapReadBit)
	if err := c.check("array buffer map"); err != nil {
		return nil, err
	}
	out := make([]byte, size)
	copy(out, unsafe.Slice((*byte)(ptr), size))
	c.gl.UnmapBuffer(gl.ArrayBuffer)
	return out, c.check("array buffer unmap")
}

// ArrayBufferBindVertexAttribute feeds the named buffer attribute to a
// program attribute. b must be bound and the types must be convertible.
func (c *Context) ArrayBufferBindVertexAttribute(b *ArrayBuffer, attribute string, pa *ProgramAttribute) error {
	a, offset, err := c.checkVertexAttribute(b, attribute, pa)
	if err != nil {
		return err
	}
	loc := uint32(pa.location)
	c.gl.EnableVertexAttribArray(loc)
	c.gl.VertexAttribPointer(loc, int32(a.Elements), a.Type.ToGL(), false, int32(b.desc.size), uintptr(offset))
	return c.check("array buffer bind vertex attribute")
}

// ArrayBufferUnbindVertexAttribute disables the program attribute fed by
// the named buffer attribute.
func (c *Context) ArrayBufferUnbindVertexAttribute(b *ArrayBuffer, attribute string, pa *ProgramAttribute) error {
	if _, _, err := c.checkVertexAttribute(b, attribute, pa); err != nil {
		return err
	}
	c.gl.DisableVertexAttribArray(uint32(pa.location))
	return c.check("array buffer unbind vertex attribute")
}

func (c *Context) checkVertexAttribute(b *ArrayBuffer, attribute string, pa *ProgramAttribute) (ArrayAttribute, int, error) {
	if err := checkLive(b, "array buffer"); err != nil {
		return ArrayAttribute{}, 0, err
	}
	if pa == nil {
		return ArrayAttribute{}, 0, constraint(ErrNilArgument, "program attribute")
	}
	if err := checkLive(pa.program, "program"); err != nil {
		return ArrayAttribute{}, 0, err
	}
	a, offset, ok := b.desc.Attribute(attribute)
	if !ok {
		return ArrayAttribute{}, 0, constraintf(ErrForeignAttribute, "array attribute", "%q", attribute)
	}
	if !pa.typ.Convertible(a.Type, a.Elements) {
		return ArrayAttribute{}, 0, constraintf(ErrTypeMismatch, "program attribute",
			"%s (%d x %s) cannot feed %s %s", a.Name, a.Elements, a.Type, pa.typ, pa.name)
	}
	if err := c.requireArrayBufferBound(b); err != nil {
		return ArrayAttribute{}, 0, err
	}
	return a, offset, nil
}
