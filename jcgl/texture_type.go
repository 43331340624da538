package jcgl

import "github.com/tinyrange/canephora/gl"

// TextureType is the pixel layout of a texture.
type TextureType int

const (
	TextureAlpha8 TextureType = iota
	TextureLuminance8
	TextureLuminanceAlpha88
	TextureRGBA4444
	TextureRGBA5551
	TextureRGBA8888
	TextureRGB565
	TextureRGB888
	TextureR8
	TextureRG88
	textureTypeCount
)

type pixelFormat struct {
	name string
	// internal is the sized internal format. Legacy formats use the unsized
	// format as their internal format.
	internal uint32
	format   uint32
	xtype    uint32
	bpp      int
	legacy   bool // alpha and luminance formats; absent from core profiles
	modern   bool // R and RG formats; GL 3 and ES 3 only
}

var textureTypes = [textureTypeCount]pixelFormat{
	TextureAlpha8:           {"alpha-8", gl.Alpha, gl.Alpha, gl.UnsignedByte, 1, true, false},
	TextureLuminance8:       {"luminance-8", gl.Luminance, gl.Luminance, gl.UnsignedByte, 1, true, false},
	TextureLuminanceAlpha88: {"luminance-alpha-88", gl.LuminanceAlpha, gl.LuminanceAlpha, gl.UnsignedByte, 2, true, false},
	TextureRGBA4444:         {"rgba-4444", gl.RGBA, gl.RGBA, gl.UnsignedShort4444, 2, false, false},
	TextureRGBA5551:         {"rgba-5551", gl.RGBA, gl.RGBA, gl.UnsignedShort5551, 2, false, false},
	TextureRGBA8888:         {"rgba-8888", gl.RGBA, gl.RGBA, gl.UnsignedByte, 4, false, false},
	TextureRGB565:           {"rgb-565", gl.RGB, gl.RGB, gl.UnsignedShort565, 2, false, false},
	TextureRGB888:           {"rgb-888", gl.RGB, gl.RGB, gl.UnsignedByte, 3, false, false},
	TextureR8:               {"r-8", gl.R8, gl.Red, gl.UnsignedByte, 1, false, true},
	TextureRG88:             {"rg-88", gl.RG8, gl.RG, gl.UnsignedByte, 2, false, true},
}

func (t TextureType) String() string {
	if t < 0 || t >= textureTypeCount {
		return "texture type(?)"
	}
	return textureTypes[t].name
}

// BytesPerPixel is the storage size of one texel.
func (t TextureType) BytesPerPixel() int { return textureTypes[t].bpp }

// Format returns the pixel format and data type passed to TexImage2D.
func (t TextureType) Format() (format, xtype uint32) {
	p := textureTypes[t]
	return p.format, p.xtype
}

// InternalFormat is the internal format passed to TexImage2D.
func (t TextureType) InternalFormat() uint32 { return textureTypes[t].internal }

// TextureTypes lists every texture type.
func TextureTypes() []TextureType {
	out := make([]TextureType, textureTypeCount)
	for i := range out {
		out[i] = TextureType(i)
	}
	return out
}

// RenderbufferType is the storage format of a renderbuffer.
type RenderbufferType int

const (
	RenderbufferDepth24Stencil8 RenderbufferType = iota
	RenderbufferDepth16
	RenderbufferRGBA4444
	RenderbufferRGB565
	RenderbufferRGBA5551
	RenderbufferRGBA8888
	RenderbufferRGB888
	renderbufferTypeCount
)

var (
	renderbufferTypesGL = [renderbufferTypeCount]uint32{
		RenderbufferDepth24Stencil8: gl.Depth24Stencil8,
		RenderbufferDepth16:         gl.DepthComponent16,
		RenderbufferRGBA4444:        gl.RGBA4,
		RenderbufferRGB565:          gl.RGB565,
		RenderbufferRGBA5551:        gl.RGB5A1,
		RenderbufferRGBA8888:        gl.RGBA8,
		RenderbufferRGB888:          gl.RGB8,
	}
	renderbufferTypesNames = [renderbufferTypeCount]string{"depth24-stencil8", "depth16", "rgba-4444", "rgb-565", "rgba-5551", "rgba-8888", "rgb-888"}
	renderbufferTypes      = newEnumTable[RenderbufferType]("renderbuffer type", renderbufferTypesGL[:], renderbufferTypesNames[:])
)

func (r RenderbufferType) ToGL() uint32  { return renderbufferTypes.toGL(r) }
func (r RenderbufferType) String() string { return renderbufferTypes.string(r) }

func RenderbufferTypeFromGL(v uint32) RenderbufferType { return renderbufferTypes.fromGL(v) }

// Color reports whether the renderbuffer can be a color attachment.
func (r RenderbufferType) Color() bool {
	return r != RenderbufferDepth24Stencil8 && r != RenderbufferDepth16
}
