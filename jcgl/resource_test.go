package jcgl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinyrange/canephora/gl"
)

func positionUV(t *testing.T) *ArrayDescriptor {
	t.Helper()
	d, err := NewArrayDescriptor(
		ArrayAttribute{Name: "position", Type: ScalarFloat, Elements: 3},
		ArrayAttribute{Name: "uv", Type: ScalarFloat, Elements: 2},
	)
	require.NoError(t, err)
	return d
}

func TestArrayDescriptor(t *testing.T) {
	d := positionUV(t)
	require.Equal(t, 20, d.ElementSize())
	a, offset, ok := d.Attribute("uv")
	require.True(t, ok)
	require.Equal(t, 12, offset)
	require.Equal(t, 8, a.Size())
	_, _, ok = d.Attribute("normal")
	require.False(t, ok)

	_, err := NewArrayDescriptor()
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = NewArrayDescriptor(ArrayAttribute{Name: "p", Type: ScalarFloat, Elements: 5})
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = NewArrayDescriptor(
		ArrayAttribute{Name: "p", Type: ScalarFloat, Elements: 1},
		ArrayAttribute{Name: "p", Type: ScalarInt, Elements: 1},
	)
	require.ErrorIs(t, err, ErrDuplicateName)
}

func TestDeleteTwiceIsCallerError(t *testing.T) {
	c, f := newContext(t, versionGL3)
	b, err := c.ArrayBufferAllocate(4, positionUV(t), UsageStaticDraw)
	require.NoError(t, err)

	require.NoError(t, c.ArrayBufferDelete(b))
	require.True(t, b.Deleted())

	f.ResetCalls()
	err = c.ArrayBufferDelete(b)
	require.ErrorIs(t, err, ErrDeleted)
	var constraint *ConstraintError
	require.ErrorAs(t, err, &constraint)
	require.Empty(t, f.Calls())
}

func TestDeletedHandleRejectedBeforeNativeCall(t *testing.T) {
	c, f := newContext(t, versionGL3)
	tex, err := c.Texture2DAllocate("albedo", 4, 4, TextureRGBA8888, WrapRepeat, WrapRepeat, FilterLinear, FilterLinear)
	require.NoError(t, err)
	require.NoError(t, c.Texture2DDelete(tex))

	f.ResetCalls()
	unit := c.TextureUnits()[0]
	require.ErrorIs(t, c.Texture2DBind(unit, tex), ErrDeleted)
	require.ErrorIs(t, c.Texture2DUpdate(tex, tex.Area(), make([]byte, 64)), ErrDeleted)
	require.ErrorIs(t, c.Texture2DDelete(tex), ErrDeleted)
	require.Empty(t, f.Calls())
}

func TestNilHandleIsCallerError(t *testing.T) {
	c, f := newContext(t, versionGL3)
	require.ErrorIs(t, c.ArrayBufferBind(nil), ErrNilArgument)
	require.ErrorIs(t, c.IndexBufferDelete(nil), ErrNilArgument)
	require.ErrorIs(t, c.ProgramActivate(nil), ErrNilArgument)
	require.Empty(t, f.Calls())
}

func TestTextureAllocate(t *testing.T) {
	var buf bytes.Buffer
	c, f := newLoggedContext(t, versionGL3, &buf)
	tex, err := c.Texture2DAllocate("screen", 256, 256, TextureRGBA8888, WrapClampToEdge, WrapRepeat, FilterNearest, FilterLinear)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "texture-2d: allocate")
	require.Contains(t, buf.String(), "bytes=262144")

	fake := f.Texture(tex.Name())
	require.NotNil(t, fake)
	require.Equal(t, uint32(gl.RGBA), fake.Format)
	require.Equal(t, uint32(gl.UnsignedByte), fake.Type)
	require.Equal(t, int32(256), fake.Width)
	require.Equal(t, int32(gl.ClampToEdge), fake.Params[gl.TextureWrapS])
	require.Equal(t, int32(gl.Repeat), fake.Params[gl.TextureWrapT])
	require.Equal(t, int32(gl.Nearest), fake.Params[gl.TextureMagFilter])
	require.Zero(t, f.TextureUnit(0), "allocation leaves the texture unbound")

	s, tw := tex.Wrap()
	require.Equal(t, WrapClampToEdge, s)
	require.Equal(t, WrapRepeat, tw)
}

func TestTextureAllocateRejectsBadArguments(t *testing.T) {
	c, f := newContext(t, versionGL3)
	_, err := c.Texture2DAllocate("tiny", 1, 4, TextureRGBA8888, WrapRepeat, WrapRepeat, FilterLinear, FilterLinear)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = c.Texture2DAllocate("huge", 8192, 4, TextureRGBA8888, WrapRepeat, WrapRepeat, FilterLinear, FilterLinear)
	require.ErrorIs(t, err, ErrOutOfRange)
	_, err = c.Texture2DAllocate("legacy", 4, 4, TextureAlpha8, WrapRepeat, WrapRepeat, FilterLinear, FilterLinear)
	require.ErrorIs(t, err, ErrUnsupportedOperation)
	require.Empty(t, f.Calls())

	es2, _ := newContext(t, versionES2)
	_, err = es2.Texture2DAllocate("red", 4, 4, TextureR8, WrapRepeat, WrapRepeat, FilterLinear, FilterLinear)
	require.ErrorIs(t, err, ErrUnsupportedOperation)
	_, err = es2.Texture2DAllocate("alpha", 4, 4, TextureAlpha8, WrapRepeat, WrapRepeat, FilterLinear, FilterLinear)
	require.NoError(t, err)
}

func TestTextureBindAndUpdate(t *testing.T) {
	c, f := newContext(t, versionGL3)
	tex, err := c.Texture2DAllocate("albedo", 4, 4, TextureRGB565, WrapRepeat, WrapRepeat, FilterLinear, FilterLinear)
	require.NoError(t, err)

	unit := c.TextureUnits()[3]
	require.NoError(t, c.Texture2DBind(unit, tex))
	bound, err := c.Texture2DIsBound(unit, tex)
	require.NoError(t, err)
	require.True(t, bound)
	require.Equal(t, tex.Name(), f.TextureUnit(3))

	require.ErrorIs(t, c.Texture2DUpdate(tex, Area{X: 2, Y: 2, Width: 4, Height: 4}, make([]byte, 32)), ErrOutOfRange)
	require.ErrorIs(t, c.Texture2DUpdate(tex, Area{Width: 2, Height: 2}, make([]byte, 7)), ErrOutOfRange)
	require.NoError(t, c.Texture2DUpdate(tex, Area{X: 2, Y: 2, Width: 2, Height: 2}, make([]byte, 8)))
	require.Equal(t, 1, f.Texture(tex.Name()).Uploads)

	require.NoError(t, c.TextureUnitUnbind(unit))
	require.Zero(t, f.TextureUnit(3))
	require.ErrorIs(t, c.Texture2DBind(TextureUnit{index: 99}, tex), ErrOutOfRange)
}

func TestArrayBufferUpdateRequiresBinding(t *testing.T) {
	c, f := newContext(t, versionGL3)
	b, err := c.ArrayBufferAllocate(4, positionUV(t), UsageDynamicDraw)
	require.NoError(t, err)
	require.Len(t, f.Buffer(b.Name()).Data, 80)
	require.Zero(t, f.Binding(gl.ArrayBuffer))

	data := bytes.Repeat([]byte{7}, 40)
	require.ErrorIs(t, c.ArrayBufferUpdate(b, 0, data), ErrNotBound)

	require.NoError(t, c.ArrayBufferBind(b))
	require.ErrorIs(t, c.ArrayBufferUpdate(b, 3, data), ErrOutOfRange)
	require.ErrorIs(t, c.ArrayBufferUpdate(b, 0, data[:39]), ErrOutOfRange)
	require.NoError(t, c.ArrayBufferUpdate(b, 2, data))

	out, err := c.ArrayBufferRead(b)
	require.NoError(t, err)
	require.Equal(t, append(make([]byte, 40), data...), out)

	require.NoError(t, c.ArrayBufferUnbind())
	bound, err := c.ArrayBufferIsBound(b)
	require.NoError(t, err)
	require.False(t, bound)
}

func TestArrayBufferRejectsEmptyDescriptor(t *testing.T) {
	c, f := newContext(t, versionGL3)
	f.ResetCalls()
	_, err := c.ArrayBufferAllocate(4, &ArrayDescriptor{}, UsageStaticDraw)
	require.ErrorIs(t, err, ErrOutOfRange)
	require.Empty(t, f.Calls())
}

func TestArrayBufferProfileRules(t *testing.T) {
	c, _ := newContext(t, versionES2)
	_, err := c.ArrayBufferAllocate(4, positionUV(t), UsageStreamRead)
	require.ErrorIs(t, err, ErrUnsupportedOperation)

	b, err := c.ArrayBufferAllocate(4, positionUV(t), UsageStreamDraw)
	require.NoError(t, err)
	require.NoError(t, c.ArrayBufferBind(b))
	_, err = c.ArrayBufferRead(b)
	require.ErrorIs(t, err, ErrUnsupportedOperation)
}

func TestIndexBuffers(t *testing.T) {
	c, f := newContext(t, versionGL3)
	d, err := NewArrayDescriptor(ArrayAttribute{Name: "position", Type: ScalarFloat, Elements: 2})
	require.NoError(t, err)

	small, err := c.ArrayBufferAllocate(4, d, UsageStaticDraw)
	require.NoError(t, err)
	ib, err := c.IndexBufferAllocate(small, 6)
	require.NoError(t, err)
	require.Equal(t, UnsignedByte, ib.Type())
	require.Len(t, f.Buffer(ib.Name()).Data, 6)

	large, err := c.ArrayBufferAllocate(300, d, UsageStaticDraw)
	require.NoError(t, err)
	ib, err = c.IndexBufferAllocate(large, 6)
	require.NoError(t, err)
	require.Equal(t, UnsignedShort, ib.Type())
	first, last := ib.Range()
	require.Equal(t, 0, first)
	require.Equal(t, 5, last)

	require.NoError(t, c.IndexBufferUpdate(ib, 3, []byte{0, 0, 1, 0, 2, 0}))
	require.ErrorIs(t, c.IndexBufferUpdate(ib, 4, []byte{0, 0, 1, 0, 2, 0}), ErrOutOfRange)
	require.ErrorIs(t, c.IndexBufferUpdate(ib, 0, []byte{1}), ErrOutOfRange)

	require.NoError(t, c.DrawElements(PrimitiveTriangles, ib))
	require.Equal(t, 1, f.Draws())
	require.Zero(t, f.Binding(gl.ElementArrayBuffer))

	require.NoError(t, c.IndexBufferDelete(ib))
	require.ErrorIs(t, c.DrawElements(PrimitiveTriangles, ib), ErrDeleted)
}

func TestRenderbufferNeedsExtensionOnES2(t *testing.T) {
	c, _ := newContext(t, versionES2)
	_, err := c.RenderbufferAllocate(RenderbufferDepth24Stencil8, 16, 16)
	require.EqualError(t, err, "unsupported: missing GL_OES_packed_depth_stencil")

	_, err = c.RenderbufferAllocate(RenderbufferRGBA4444, 16, 16)
	require.NoError(t, err)

	c, f := newContext(t, versionES2, "GL_OES_packed_depth_stencil")
	rb, err := c.RenderbufferAllocate(RenderbufferDepth24Stencil8, 16, 8)
	require.NoError(t, err)
	require.Equal(t, uint32(gl.Depth24Stencil8), f.Renderbuffer(rb.Name()).Format)
	require.Zero(t, f.Binding(gl.Renderbuffer))
	require.NoError(t, c.RenderbufferDelete(rb))
	require.ErrorIs(t, c.RenderbufferDelete(rb), ErrDeleted)
}
