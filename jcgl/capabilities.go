package jcgl

import (
	"strings"

	"github.com/tinyrange/canephora/gl"
)

// Range is an inclusive implementation limit.
type Range struct {
	Min, Max int
}

// Contains reports whether v lies within the range.
func (r Range) Contains(v float32) bool {
	return v >= float32(r.Min) && v <= float32(r.Max)
}

// Capabilities is the immutable snapshot taken by New.
type Capabilities struct {
	Profile         Profile
	Version         Version
	ShadingLanguage Version
	Vendor          string
	Renderer        string

	AliasedLineWidth Range
	// SmoothLineWidth equals AliasedLineWidth on ES profiles, which have no
	// line smoothing.
	SmoothLineWidth Range
	PointSize       Range

	MaxVertexAttribs int
	// MaxTextureUnits is the texture unit count after restrictions.
	MaxTextureUnits     int
	MaxTextureSize      int
	MaxColorAttachments int
	MaxDrawBuffers      int
}

// mesaES3Quirk matches Mesa releases whose ES 3 contexts do not accept
// GLSL ES 3.00 sources.
const mesaES3Quirk = "Mesa 9.1."

func (c *Context) probe(version Version) error {
	caps := Capabilities{
		Profile:  c.profile.kind,
		Version:  version,
		Vendor:   c.gl.GetString(gl.Vendor),
		Renderer: c.gl.GetString(gl.Renderer),
	}

	sl, err := ParseShadingLanguageVersion(c.gl.GetString(gl.ShadingLanguageVersion))
	if err != nil {
		return err
	}
	if c.quirks && c.profile.kind == ProfileES3 && strings.Contains(version.Text, mesaES3Quirk) {
		c.log.Debug("context: quirk: using GLSL ES 1.00 on Mesa 9.1", "version", version.Text, "reported", sl.Text)
		sl = Version{Major: 1, Minor: 0, ES: true, Text: sl.Text}
	}
	caps.ShadingLanguage = sl

	if caps.AliasedLineWidth, err = c.getRange(gl.AliasedLineWidthRange, "aliased line width range"); err != nil {
		return err
	}
	caps.SmoothLineWidth = caps.AliasedLineWidth
	if c.profile.lineSmoothing {
		if caps.SmoothLineWidth, err = c.getRange(gl.SmoothLineWidthRange, "smooth line width range"); err != nil {
			return err
		}
	}
	pointRange := uint32(gl.AliasedPointSizeRange)
	if !c.profile.es {
		pointRange = gl.PointSizeRange
	}
	if caps.PointSize, err = c.getRange(pointRange, "point size range"); err != nil {
		return err
	}
	if caps.MaxVertexAttribs, err = c.getInteger(gl.MaxVertexAttribs, "max vertex attribs"); err != nil {
		return err
	}
	units, err := c.getInteger(gl.MaxTextureImageUnits, "max texture image units")
	if err != nil {
		return err
	}
	restricted := c.restrictions.TextureUnitCount(units)
	caps.MaxTextureUnits = max(0, min(units, restricted))
	if caps.MaxTextureUnits != units {
		c.log.Debug("context: restricted texture units", "available", units, "exposed", caps.MaxTextureUnits)
	}
	if caps.MaxTextureSize, err = c.getInteger(gl.MaxTextureSize, "max texture size"); err != nil {
		return err
	}
	// OpenGL ES 2 has a single color attachment and no draw buffers.
	caps.MaxColorAttachments, caps.MaxDrawBuffers = 1, 1
	if c.profile.kind != ProfileES2 {
		if caps.MaxColorAttachments, err = c.getInteger(gl.MaxColorAttachments, "max color attachments"); err != nil {
			return err
		}
		if caps.MaxDrawBuffers, err = c.getInteger(gl.MaxDrawBuffers, "max draw buffers"); err != nil {
			return err
		}
	}

	c.caps = caps
	c.units = make([]TextureUnit, caps.MaxTextureUnits)
	for i := range c.units {
		c.units[i] = TextureUnit{index: i}
	}
	c.log.Debug("context: capabilities",
		"vendor", caps.Vendor,
		"renderer", caps.Renderer,
		"glsl", caps.ShadingLanguage,
		"texture_units", caps.MaxTextureUnits,
		"color_attachments", caps.MaxColorAttachments)
	return nil
}

func (c *Context) getInteger(pname uint32, op string) (int, error) {
	c.ints[0] = 0
	c.gl.GetIntegerv(pname, &c.ints[0])
	if err := c.check(op); err != nil {
		return 0, err
	}
	return int(c.ints[0]), nil
}

func (c *Context) getRange(pname uint32, op string) (Range, error) {
	c.ints[0], c.ints[1] = 0, 0
	c.gl.GetIntegerv(pname, &c.ints[0])
	if err := c.check(op); err != nil {
		return Range{}, err
	}
	return Range{Min: int(c.ints[0]), Max: int(c.ints[1])}, nil
}
