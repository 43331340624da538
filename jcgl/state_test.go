package jcgl

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinyrange/canephora/gl"
)

func TestBlending(t *testing.T) {
	c, f := newContext(t, versionGL3)
	require.ErrorIs(t, c.BlendingEnable(BlendOne, BlendSourceAlphaSaturate), ErrUnsupportedOperation)
	require.Empty(t, f.Calls())

	require.NoError(t, c.BlendingEnable(BlendSourceAlphaSaturate, BlendOneMinusSourceAlpha))
	enabled, err := c.BlendingIsEnabled()
	require.NoError(t, err)
	require.True(t, enabled)

	require.NoError(t, c.BlendingEnableWithEquation(BlendOne, BlendOne, BlendMaximum))
	require.NoError(t, c.BlendingDisable())
	require.False(t, f.Enabled(gl.Blend))
}

func TestBlendMinMaxRejectedOnES2(t *testing.T) {
	c, f := newContext(t, versionES2)
	require.ErrorIs(t, c.BlendingEnableWithEquation(BlendOne, BlendOne, BlendMinimum), ErrUnsupportedOperation)
	require.ErrorIs(t, c.BlendingEnableWith(Blending{
		SourceRGB:        BlendOne,
		SourceAlpha:      BlendOne,
		DestinationRGB:   BlendZero,
		DestinationAlpha: BlendZero,
		EquationRGB:      BlendAdd,
		EquationAlpha:    BlendMaximum,
	}), ErrUnsupportedOperation)
	require.Empty(t, f.Calls())
	require.NoError(t, c.BlendingEnableWithEquation(BlendOne, BlendOne, BlendReverseSubtract))
}

func TestColorBuffer(t *testing.T) {
	c, f := newContext(t, versionES3)
	require.NoError(t, c.ColorBufferMask(true, false, true, false))
	r, g, b, a, err := c.ColorBufferMaskStatus()
	require.NoError(t, err)
	require.Equal(t, []bool{true, false, true, false}, []bool{r, g, b, a})

	require.NoError(t, c.ColorBufferClear3f(1, 0, 0))
	require.Equal(t, [4]float32{1, 0, 0, 1}, f.ClearValue())

	px, err := c.FramebufferReadRGBA(Area{Width: 2, Height: 2})
	require.NoError(t, err)
	require.Equal(t, []byte{255, 0, 0, 255, 255, 0, 0, 255, 255, 0, 0, 255, 255, 0, 0, 255}, px)

	_, err = c.FramebufferReadRGBA(Area{Width: 0, Height: 2})
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestCulling(t *testing.T) {
	c, f := newContext(t, versionGL3)
	require.NoError(t, c.CullingEnable(FaceBack, WindingCounterClockwise))
	enabled, err := c.CullingIsEnabled()
	require.NoError(t, err)
	require.True(t, enabled)
	require.NoError(t, c.CullingDisable())
	require.False(t, f.Enabled(gl.CullFace))
	require.ErrorIs(t, c.CullingEnable(FaceSelection(9), WindingClockwise), ErrOutOfRange)
}

func TestDepthBufferOnDefaultFramebuffer(t *testing.T) {
	c, f := newContext(t, versionES2)
	require.NoError(t, c.DepthBufferEnable(DepthLessThanOrEqual))
	enabled, err := c.DepthBufferIsEnabled()
	require.NoError(t, err)
	require.True(t, enabled)

	require.NoError(t, c.DepthBufferWriteDisable())
	write, err := c.DepthBufferIsWriteEnabled()
	require.NoError(t, err)
	require.False(t, write)
	require.NoError(t, c.DepthBufferWriteEnable())
	require.NoError(t, c.DepthBufferClear(1))
	require.NoError(t, c.DepthBufferDisable())

	f.Params[gl.DepthBits] = []int32{0}
	require.ErrorIs(t, c.DepthBufferClear(1), ErrNoDepthBuffer)
	require.ErrorIs(t, c.DepthBufferWriteEnable(), ErrNoDepthBuffer)
}

func TestStencilBuffer(t *testing.T) {
	c, f := newContext(t, versionGL3)
	require.NoError(t, c.StencilBufferEnable())
	require.NoError(t, c.StencilBufferFunction(FaceFrontAndBack, StencilAlways, 1, 0xff))
	require.NoError(t, c.StencilBufferMask(FaceFront, 0x0f))
	require.NoError(t, c.StencilBufferOperation(FaceBack, StencilOpKeep, StencilOpKeep, StencilOpReplace))
	enabled, err := c.StencilBufferIsEnabled()
	require.NoError(t, err)
	require.True(t, enabled)
	require.NoError(t, c.StencilBufferDisable())

	require.ErrorIs(t, c.StencilBufferOperation(FaceBack, StencilOperation(-1), StencilOpKeep, StencilOpKeep), ErrOutOfRange)
	f.Params[gl.StencilBits] = []int32{0}
	require.ErrorIs(t, c.StencilBufferClear(0), ErrNoStencilBuffer)
}

func TestScissorAndViewport(t *testing.T) {
	c, f := newContext(t, versionGL3)
	require.NoError(t, c.ScissorEnable(Area{X: 1, Y: 2, Width: 3, Height: 4}))
	enabled, err := c.ScissorIsEnabled()
	require.NoError(t, err)
	require.True(t, enabled)
	require.NoError(t, c.ScissorDisable())
	require.ErrorIs(t, c.ScissorEnable(Area{Width: -1}), ErrOutOfRange)

	require.NoError(t, c.ViewportSet(Area{Width: 640, Height: 480}))
	require.Equal(t, [4]int32{0, 0, 640, 480}, f.ViewportValue())
	require.ErrorIs(t, c.ViewportSet(Area{Height: -1}), ErrOutOfRange)
}

func TestLineWidth(t *testing.T) {
	es, f := newContext(t, versionES3)
	require.ErrorIs(t, es.LineSetWidth(9), ErrOutOfRange)
	require.NoError(t, es.LineSetWidth(8))
	require.Equal(t, float32(8), f.LineWidthValue())
	require.ErrorIs(t, es.LineSmoothingEnable(), ErrUnsupportedOperation)

	desktop, _ := newContext(t, versionGL3)
	require.ErrorIs(t, desktop.LineSetWidth(9), ErrOutOfRange)
	require.NoError(t, desktop.LineSmoothingEnable())
	require.NoError(t, desktop.LineSetWidth(9))
	require.ErrorIs(t, desktop.LineSetWidth(11), ErrOutOfRange)
	require.NoError(t, desktop.LineSmoothingDisable())
	require.ErrorIs(t, desktop.LineSetWidth(0.5), ErrOutOfRange)
}

func TestDrawArrays(t *testing.T) {
	c, f := newContext(t, versionGL3)
	require.NoError(t, c.DrawArrays(PrimitiveTriangleStrip, 0, 4))
	require.Equal(t, 1, f.Draws())
	require.ErrorIs(t, c.DrawArrays(PrimitiveTriangles, -1, 3), ErrOutOfRange)
}
