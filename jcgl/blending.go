package jcgl

import "github.com/tinyrange/canephora/gl"

// Blending is a complete blend configuration.
type Blending struct {
	SourceRGB        BlendFunction
	SourceAlpha      BlendFunction
	DestinationRGB   BlendFunction
	DestinationAlpha BlendFunction
	EquationRGB      BlendEquation
	EquationAlpha    BlendEquation
}

// BlendingEnable enables blending with the same factors for color and alpha
// and additive equations.
func (c *Context) BlendingEnable(source, destination BlendFunction) error {
	return c.BlendingEnableSeparate(source, source, destination, destination)
}

// BlendingEnableSeparate enables blending with separate color and alpha
// factors and additive equations.
func (c *Context) BlendingEnableSeparate(sourceRGB, sourceAlpha, destinationRGB, destinationAlpha BlendFunction) error {
	return c.BlendingEnableWith(Blending{
		SourceRGB:        sourceRGB,
		SourceAlpha:      sourceAlpha,
		DestinationRGB:   destinationRGB,
		DestinationAlpha: destinationAlpha,
		EquationRGB:      BlendAdd,
		EquationAlpha:    BlendAdd,
	})
}

// BlendingEnableWithEquation enables blending with shared factors and a
// shared equation.
func (c *Context) BlendingEnableWithEquation(source, destination BlendFunction, eq BlendEquation) error {
	return c.BlendingEnableWith(Blending{
		SourceRGB:        source,
		SourceAlpha:      source,
		DestinationRGB:   destination,
		DestinationAlpha: destination,
		EquationRGB:      eq,
		EquationAlpha:    eq,
	})
}

// BlendingEnableWith enables blending with every factor and equation given
// separately. Source alpha saturate is rejected as a destination factor.
func (c *Context) BlendingEnableWith(b Blending) error {
	for _, f := range []BlendFunction{b.SourceRGB, b.SourceAlpha, b.DestinationRGB, b.DestinationAlpha} {
		if f < 0 || f >= blendFunctionCount {
			return constraintf(ErrOutOfRange, "blend function", "%d", int(f))
		}
	}
	if b.DestinationRGB == BlendSourceAlphaSaturate {
		return constraintf(ErrUnsupportedOperation, "destination RGB blend function", "%s", b.DestinationRGB)
	}
	if b.DestinationAlpha == BlendSourceAlphaSaturate {
		return constraintf(ErrUnsupportedOperation, "destination alpha blend function", "%s", b.DestinationAlpha)
	}
	for _, e := range []BlendEquation{b.EquationRGB, b.EquationAlpha} {
		if e < 0 || e >= blendEquationCount {
			return constraintf(ErrOutOfRange, "blend equation", "%d", int(e))
		}
		if err := c.profile.checkBlendEquation(e); err != nil {
			return err
		}
	}
	c.gl.Enable(gl.Blend)
	c.gl.BlendEquationSeparate(b.EquationRGB.ToGL(), b.EquationAlpha.ToGL())
	c.gl.BlendFuncSeparate(b.SourceRGB.ToGL(), b.DestinationRGB.ToGL(), b.SourceAlpha.ToGL(), b.DestinationAlpha.ToGL())
	return c.check("blending enable")
}

func (c *Context) BlendingDisable() error {
	c.gl.Disable(gl.Blend)
	return c.check("blending disable")
}

func (c *Context) BlendingIsEnabled() (bool, error) {
	return c.isEnabled(gl.Blend, "blending is enabled")
}
