package jcgl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinyrange/canephora/gl"
)

func colorTexture(t *testing.T, c *Context) *Texture2D {
	t.Helper()
	tex, err := c.Texture2DAllocate("color", 64, 64, TextureRGBA8888, WrapClampToEdge, WrapClampToEdge, FilterNearest, FilterNearest)
	require.NoError(t, err)
	return tex
}

func depthStencil(t *testing.T, c *Context) *Renderbuffer {
	t.Helper()
	rb, err := c.RenderbufferAllocate(RenderbufferDepth24Stencil8, 64, 64)
	require.NoError(t, err)
	return rb
}

func TestFramebufferWithoutColorAttachment(t *testing.T) {
	c, f := newContext(t, versionGL3)
	rb := depthStencil(t, c)
	f.ResetCalls()

	_, err := c.FramebufferAllocate(DepthStencil{Renderbuffer: rb})
	require.ErrorIs(t, err, ErrNoColorAttachment)
	require.Contains(t, err.Error(), "no color buffer attached")
	require.Zero(t, f.Binding(gl.Framebuffer))
	require.Zero(t, f.Called("GenFramebuffers"))
}

func TestFramebufferAttachmentValidation(t *testing.T) {
	c, f := newContext(t, versionGL3)
	a, b := colorTexture(t, c), colorTexture(t, c)
	rb := depthStencil(t, c)
	depth, err := c.RenderbufferAllocate(RenderbufferDepth16, 64, 64)
	require.NoError(t, err)
	f.ResetCalls()

	_, err = c.FramebufferAllocate(ColorTexture{Index: 0, Texture: a}, ColorTexture{Index: 0, Texture: b})
	require.ErrorIs(t, err, ErrDuplicateAttachment)

	_, err = c.FramebufferAllocate(ColorTexture{Index: 8, Texture: a})
	require.ErrorIs(t, err, ErrOutOfRange)

	_, err = c.FramebufferAllocate(ColorTexture{Texture: a}, DepthStencil{Renderbuffer: rb}, Depth{Renderbuffer: depth})
	require.ErrorIs(t, err, ErrMultipleDepthStencil)

	_, err = c.FramebufferAllocate(ColorTexture{Texture: a}, Depth{Renderbuffer: rb})
	require.ErrorIs(t, err, ErrTypeMismatch)

	_, err = c.FramebufferAllocate(ColorRenderbuffer{Renderbuffer: depth})
	require.ErrorIs(t, err, ErrTypeMismatch)

	_, err = c.FramebufferAllocate(ColorTexture{Texture: a}, nil)
	require.ErrorIs(t, err, ErrNilArgument)

	require.NoError(t, c.Texture2DDelete(b))
	f.ResetCalls()
	_, err = c.FramebufferAllocate(ColorTexture{Texture: b})
	require.ErrorIs(t, err, ErrDeleted)
	require.Empty(t, f.Calls())
}

func TestFramebufferPointerAttachments(t *testing.T) {
	c, f := newContext(t, versionGL3)
	a, b := colorTexture(t, c), colorTexture(t, c)
	rb := depthStencil(t, c)
	depth, err := c.RenderbufferAllocate(RenderbufferDepth16, 64, 64)
	require.NoError(t, err)
	f.ResetCalls()

	_, err = c.FramebufferAllocate(ColorTexture{Index: 0, Texture: a}, &ColorTexture{Index: 0, Texture: b})
	require.ErrorIs(t, err, ErrDuplicateAttachment)

	_, err = c.FramebufferAllocate(ColorTexture{Texture: a}, &DepthStencil{Renderbuffer: rb}, &Depth{Renderbuffer: depth})
	require.ErrorIs(t, err, ErrMultipleDepthStencil)

	_, err = c.FramebufferAllocate(ColorTexture{Texture: a}, (*Depth)(nil))
	require.ErrorIs(t, err, ErrNilArgument)
	require.Zero(t, f.Called("GenFramebuffers"))

	fb, err := c.FramebufferAllocate(&ColorTexture{Index: 1, Texture: b}, ColorTexture{Texture: a}, &DepthStencil{Renderbuffer: rb})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, fb.ColorIndices())
	require.True(t, fb.HasStencil())
	require.Equal(t, 2, f.Called("FramebufferTexture2D"))

	fake := f.Framebuffer(fb.Name())
	require.Equal(t, b.Name(), fake.Attachments[gl.ColorAttachment0+1].Name)
	require.Equal(t, rb.Name(), fake.Attachments[gl.DepthAttachment].Name)
	require.IsType(t, ColorTexture{}, fb.Attachments()[0])
}

func TestFramebufferAllocate(t *testing.T) {
	c, f := newContext(t, versionGL3)
	a, b := colorTexture(t, c), colorTexture(t, c)
	rb := depthStencil(t, c)

	fb, err := c.FramebufferAllocate(ColorTexture{Index: 2, Texture: b}, ColorTexture{Index: 0, Texture: a}, DepthStencil{Renderbuffer: rb})
	require.NoError(t, err)
	require.Equal(t, []int{0, 2}, fb.ColorIndices())
	require.True(t, fb.HasDepth())
	require.True(t, fb.HasStencil())
	require.Zero(t, f.Binding(gl.Framebuffer), "allocation restores the default framebuffer")

	fake := f.Framebuffer(fb.Name())
	require.Equal(t, []uint32{gl.ColorAttachment0, gl.NoneAttachment, gl.ColorAttachment0 + 2}, fake.DrawBuffers)
	require.Equal(t, rb.Name(), fake.Attachments[gl.DepthAttachment].Name)
	require.Equal(t, rb.Name(), fake.Attachments[gl.StencilAttachment].Name)
	require.Equal(t, a.Name(), fake.Attachments[gl.ColorAttachment0].Name)

	require.NoError(t, c.FramebufferBind(fb))
	bound, err := c.FramebufferIsBound(fb)
	require.NoError(t, err)
	require.True(t, bound)
	require.NoError(t, c.FramebufferUnbind())

	require.NoError(t, c.FramebufferDelete(fb))
	require.ErrorIs(t, c.FramebufferBind(fb), ErrDeleted)
	require.Nil(t, f.Framebuffer(fb.Name()))
}

func TestFramebufferES2HasNoDrawBuffers(t *testing.T) {
	c, f := newContext(t, versionES2)
	a, b := colorTexture(t, c), colorTexture(t, c)

	_, err := c.FramebufferAllocate(ColorTexture{Index: 1, Texture: a})
	require.ErrorIs(t, err, ErrOutOfRange)

	fb, err := c.FramebufferAllocate(ColorTexture{Texture: b})
	require.NoError(t, err)
	require.Zero(t, f.Called("DrawBuffers"))
	require.Nil(t, f.Framebuffer(fb.Name()).DrawBuffers)
}

func TestFramebufferIncomplete(t *testing.T) {
	tests := []struct {
		code uint32
		want FramebufferStatus
		text string
	}{
		{gl.FramebufferIncompleteAttachment, FramebufferIncompleteAttachment, "Framebuffer is incomplete"},
		{gl.FramebufferIncompleteMissingAttachment, FramebufferMissingAttachment, "Framebuffer is missing image attachment"},
		{gl.FramebufferIncompleteDrawBuffer, FramebufferIncompleteDrawBuffer, "Framebuffer has missing draw buffer"},
		{gl.FramebufferIncompleteReadBuffer, FramebufferIncompleteReadBuffer, "Framebuffer has missing read buffer"},
		{gl.FramebufferUnsupported, FramebufferUnsupported, "Framebuffer configuration unsupported"},
		{0x1234, FramebufferUnknown, "Unknown framebuffer error"},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			c, f := newContext(t, versionGL3)
			tex := colorTexture(t, c)
			f.Status = tt.code

			before := f.Called("GenFramebuffers")
			_, err := c.FramebufferAllocate(ColorTexture{Texture: tex})
			var fbErr *FramebufferError
			require.True(t, errors.As(err, &fbErr))
			require.Equal(t, tt.want, fbErr.Status)
			require.Equal(t, tt.code, fbErr.Code)
			require.Contains(t, err.Error(), tt.text)

			require.Zero(t, f.Binding(gl.Framebuffer))
			require.Equal(t, before+1, f.Called("GenFramebuffers"))
			require.Equal(t, 1, f.Called("DeleteFramebuffers"))
		})
	}
}

func TestDepthAndStencilBits(t *testing.T) {
	c, _ := newContext(t, versionGL3)
	color := colorTexture(t, c)
	rb := depthStencil(t, c)
	depth, err := c.RenderbufferAllocate(RenderbufferDepth16, 64, 64)
	require.NoError(t, err)

	withDS, err := c.FramebufferAllocate(ColorTexture{Texture: color}, DepthStencil{Renderbuffer: rb})
	require.NoError(t, err)
	withDepth, err := c.FramebufferAllocate(ColorTexture{Texture: color}, Depth{Renderbuffer: depth})
	require.NoError(t, err)
	colorOnly, err := c.FramebufferAllocate(ColorTexture{Texture: color})
	require.NoError(t, err)

	require.NoError(t, c.FramebufferBind(withDS))
	bits, err := c.DepthBufferGetBits()
	require.NoError(t, err)
	require.Equal(t, 24, bits)
	bits, err = c.StencilBufferGetBits()
	require.NoError(t, err)
	require.Equal(t, 8, bits)
	require.NoError(t, c.StencilBufferClear(0))

	require.NoError(t, c.FramebufferBind(withDepth))
	bits, err = c.DepthBufferGetBits()
	require.NoError(t, err)
	require.Equal(t, 16, bits)
	require.ErrorIs(t, c.StencilBufferEnable(), ErrNoStencilBuffer)

	require.NoError(t, c.FramebufferBind(colorOnly))
	require.ErrorIs(t, c.DepthBufferClear(1), ErrNoDepthBuffer)
	require.ErrorIs(t, c.DepthBufferEnable(DepthLessThan), ErrNoDepthBuffer)

	// The default framebuffer reports the window system's buffers.
	require.NoError(t, c.FramebufferUnbind())
	bits, err = c.DepthBufferGetBits()
	require.NoError(t, err)
	require.Equal(t, 24, bits)
}
