package jcgl

import (
	"unsafe"

	"github.com/tinyrange/canephora/gl"
)

// TextureUnit is one texture image unit exposed by the context.
type TextureUnit struct {
	index int
}

// Index is the zero based unit number.
func (u TextureUnit) Index() int { return u.index }

// TextureUnits lists the units exposed after restrictions.
func (c *Context) TextureUnits() []TextureUnit {
	return append([]TextureUnit(nil), c.units...)
}

func (c *Context) checkUnit(u TextureUnit) error {
	return checkRange("texture unit", u.index, 0, len(c.units)-1)
}

// Texture2D is a two dimensional texture.
type Texture2D struct {
	resource
	label         string
	width, height int
	typ           TextureType
	wrapS, wrapT  TextureWrap
	mag, min      TextureFilter
}

func (t *Texture2D) res() *resource {
	if t == nil {
		return nil
	}
	return &t.resource
}

// Label is the name given at allocation, for diagnostics.
func (t *Texture2D) Label() string     { return t.label }
func (t *Texture2D) Width() int        { return t.width }
func (t *Texture2D) Height() int       { return t.height }
func (t *Texture2D) Type() TextureType { return t.typ }
func (t *Texture2D) Area() Area        { return Area{Width: t.width, Height: t.height} }

// Wrap returns the wrapping modes for the S and T coordinates.
func (t *Texture2D) Wrap() (s, tw TextureWrap) { return t.wrapS, t.wrapT }

// Filters returns the magnification and minification filters.
func (t *Texture2D) Filters() (mag, min TextureFilter) { return t.mag, t.min }

// Texture2DAllocate creates an uninitialised width x height texture.
// Both dimensions must be at least 2. The texture is left unbound.
func (c *Context) Texture2DAllocate(label string, width, height int, t TextureType, wrapS, wrapT TextureWrap, mag, min TextureFilter) (*Texture2D, error) {
	if err := checkAtLeast("texture width", width, 2); err != nil {
		return nil, err
	}
	if err := checkAtLeast("texture height", height, 2); err != nil {
		return nil, err
	}
	if limit := c.caps.MaxTextureSize; limit > 0 {
		if err := checkRange("texture width", width, 2, limit); err != nil {
			return nil, err
		}
		if err := checkRange("texture height", height, 2, limit); err != nil {
			return nil, err
		}
	}
	if err := c.profile.checkTextureType(t); err != nil {
		return nil, err
	}
	for _, w := range []TextureWrap{wrapS, wrapT} {
		if w < 0 || w >= textureWrapCount {
			return nil, constraintf(ErrOutOfRange, "texture wrap", "%d", int(w))
		}
	}
	for _, f := range []TextureFilter{mag, min} {
		if f < 0 || f >= textureFilterCount {
			return nil, constraintf(ErrOutOfRange, "texture filter", "%d", int(f))
		}
	}

	bytes := height * (t.BytesPerPixel() * width)
	c.log.Debug("texture-2d: allocate",
		"label", label,
		"type", t,
		"width", width,
		"height", height,
		"bytes", bytes)

	var name uint32
	c.gl.GenTextures(1, &name)
	if err := c.check("texture 2d allocate"); err != nil {
		return nil, err
	}
	format, xtype := t.Format()
	c.gl.BindTexture(gl.Texture2D, name)
	c.gl.TexParameteri(gl.Texture2D, gl.TextureWrapS, int32(wrapS.ToGL()))
	c.gl.TexParameteri(gl.Texture2D, gl.TextureWrapT, int32(wrapT.ToGL()))
	c.gl.TexParameteri(gl.Texture2D, gl.TextureMagFilter, int32(mag.ToGL()))
	c.gl.TexParameteri(gl.Texture2D, gl.TextureMinFilter, int32(min.ToGL()))
	c.gl.TexImage2D(gl.Texture2D, 0, int32(t.InternalFormat()), int32(width), int32(height), 0, format, xtype, nil)
	c.gl.BindTexture(gl.Texture2D, 0)
	if err := c.check("texture 2d allocate"); err != nil {
		c.gl.DeleteTextures(1, &name)
		return nil, err
	}

	c.log.Debug("texture-2d: allocated", "label", label, "name", name)
	return &Texture2D{
		resource: resource{name: name},
		label:    label,
		width:    width,
		height:   height,
		typ:      t,
		wrapS:    wrapS,
		wrapT:    wrapT,
		mag:      mag,
		min:      min,
	}, nil
}

// Texture2DBind binds t to unit u and makes u the active unit.
func (c *Context) Texture2DBind(u TextureUnit, t *Texture2D) error {
	if err := c.checkUnit(u); err != nil {
		return err
	}
	if err := checkLive(t, "texture"); err != nil {
		return err
	}
	c.gl.ActiveTexture(gl.Texture0 + uint32(u.index))
	c.gl.BindTexture(gl.Texture2D, t.name)
	return c.check("texture 2d bind")
}

// TextureUnitUnbind clears the 2D texture binding of unit u.
func (c *Context) TextureUnitUnbind(u TextureUnit) error {
	if err := c.checkUnit(u); err != nil {
		return err
	}
	c.gl.ActiveTexture(gl.Texture0 + uint32(u.index))
	c.gl.BindTexture(gl.Texture2D, 0)
	return c.check("texture unit unbind")
}

// Texture2DIsBound reports whether t is bound to unit u.
func (c *Context) Texture2DIsBound(u TextureUnit, t *Texture2D) (bool, error) {
	if err := c.checkUnit(u); err != nil {
		return false, err
	}
	if err := checkLive(t, "texture"); err != nil {
		return false, err
	}
	c.gl.ActiveTexture(gl.Texture0 + uint32(u.index))
	bound, err := c.getInteger(gl.TextureBinding2D, "texture binding")
	if err != nil {
		return false, err
	}
	return uint32(bound) == t.name, nil
}

// Texture2DUpdate replaces the texels of area with data, which must hold
// exactly area.Width*area.Height texels of the texture's type.
func (c *Context) Texture2DUpdate(t *Texture2D, area Area, data []byte) error {
	if err := checkLive(t, "texture"); err != nil {
		return err
	}
	if !area.inside(t.width, t.height) {
		return constraintf(ErrOutOfRange, "texture area", "%+v outside %dx%d", area, t.width, t.height)
	}
	if want := area.Width * area.Height * t.typ.BytesPerPixel(); len(data) != want {
		return constraintf(ErrOutOfRange, "texture data", "%d bytes, want %d", len(data), want)
	}
	if len(data) == 0 {
		return nil
	}
	format, xtype := t.typ.Format()
	c.gl.BindTexture(gl.Texture2D, t.name)
	c.gl.PixelStorei(gl.UnpackAlignment, 1)
	c.gl.TexSubImage2D(gl.Texture2D, 0, int32(area.X), int32(area.Y), int32(area.Width), int32(area.Height), format, xtype, unsafe.Pointer(&data[0]))
	c.gl.PixelStorei(gl.UnpackAlignment, 4)
	c.gl.BindTexture(gl.Texture2D, 0)
	return c.check("texture 2d update")
}

// Texture2DDelete deletes t.
func (c *Context) Texture2DDelete(t *Texture2D) error {
	if err := checkLive(t, "texture"); err != nil {
		return err
	}
	c.log.Debug("texture-2d: delete", "label", t.label, "name", t.name)
	c.gl.DeleteTextures(1, &t.name)
	release(t)
	return c.check("texture 2d delete")
}
