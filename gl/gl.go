// Package gl exposes the raw OpenGL and OpenGL ES entry points used by
// package jcgl, loaded at runtime without cgo.
package gl

import "unsafe"

// API selects which client library Load binds against.
type API int

const (
	// Desktop selects desktop OpenGL (libGL, OpenGL.framework, opengl32.dll).
	Desktop API = iota
	// ES selects OpenGL ES 2.0 or later (libGLESv2).
	ES
)

func (a API) String() string {
	switch a {
	case Desktop:
		return "OpenGL"
	case ES:
		return "OpenGL ES"
	default:
		return "unknown"
	}
}

const (
	NoError          = 0
	InvalidEnum      = 0x0500
	InvalidValue     = 0x0501
	InvalidOperation = 0x0502
	StackOverflow    = 0x0503
	StackUnderflow   = 0x0504
	OutOfMemory      = 0x0505
	// InvalidFramebufferOperation is raised when reading from or drawing to
	// an incomplete framebuffer.
	InvalidFramebufferOperation = 0x0506

	False = 0
	True  = 1
)

// GetString parameters.
const (
	// Vendor returns the company responsible for the GL implementation.
	Vendor = 0x1F00
	// Renderer names the renderer, typically the hardware platform.
	Renderer = 0x1F01
	// Version returns the GL version string of the current context.
	Version = 0x1F02
	// Extensions returns the space separated extension list. Core profile
	// contexts only answer GetStringi.
	Extensions             = 0x1F03
	ShadingLanguageVersion = 0x8B8C
)

// Clear masks.
const (
	DepthBufferBit   = 0x00000100
	StencilBufferBit = 0x00000400
	ColorBufferBit   = 0x00004000
)

// Capabilities for Enable, Disable and IsEnabled.
const (
	Blend       = 0x0BE2
	CullFace    = 0x0B44
	DepthTest   = 0x0B71
	StencilTest = 0x0B90
	ScissorTest = 0x0C11
	LineSmooth  = 0x0B20
)

// Integer state for GetIntegerv and GetBooleanv.
const (
	AliasedLineWidthRange   = 0x846E
	SmoothLineWidthRange    = 0x0B22
	AliasedPointSizeRange   = 0x846D
	PointSizeRange          = 0x0B12
	MaxVertexAttribs        = 0x8869
	MaxTextureImageUnits    = 0x8872
	MaxTextureSize          = 0x0D33
	MaxColorAttachments     = 0x8CDF
	MaxDrawBuffers          = 0x8824
	NumExtensions           = 0x821D
	DepthBits               = 0x0D56
	StencilBits             = 0x0D57
	ColorWritemask          = 0x0C23
	DepthWritemask          = 0x0B72
	CurrentProgram          = 0x8B8D
	ArrayBufferBinding      = 0x8894
	ElementArrayBufferBind  = 0x8895
	FramebufferBinding      = 0x8CA6
	RenderbufferBinding     = 0x8CA7
	TextureBinding2D        = 0x8069
	ActiveTextureUnit       = 0x84E0
	UnpackAlignment         = 0x0CF5
	PackAlignment           = 0x0D05
	ImplementationReadType  = 0x8B9A
	ImplementationReadFmt   = 0x8B9B
	MaxRenderbufferSize     = 0x84E8
	MaxVertexUniformVectors = 0x8DFB
)

// Buffer targets, usage hints and mapping flags.
const (
	ArrayBuffer        = 0x8892
	ElementArrayBuffer = 0x8893

	StreamDraw  = 0x88E0
	StreamRead  = 0x88E1
	StreamCopy  = 0x88E2
	StaticDraw  = 0x88E4
	StaticRead  = 0x88E5
	StaticCopy  = 0x88E6
	DynamicDraw = 0x88E8
	DynamicRead = 0x88E9
	DynamicCopy = 0x88EA

	BufferSize = 0x8764

	MapReadBit  = 0x0001
	MapWriteBit = 0x0002
)

// Scalar data types.
const (
	Byte          = 0x1400
	UnsignedByte  = 0x1401
	Short         = 0x1402
	UnsignedShort = 0x1403
	Int           = 0x1404
	UnsignedInt   = 0x1405
	Float         = 0x1406
	Double        = 0x140A

	UnsignedShort4444 = 0x8033
	UnsignedShort5551 = 0x8034
	UnsignedShort565  = 0x8363
)

// GLSL types reported by GetActiveAttrib and GetActiveUniform.
const (
	FloatVec2        = 0x8B50
	FloatVec3        = 0x8B51
	FloatVec4        = 0x8B52
	IntVec2          = 0x8B53
	IntVec3          = 0x8B54
	IntVec4          = 0x8B55
	Bool             = 0x8B56
	BoolVec2         = 0x8B57
	BoolVec3         = 0x8B58
	BoolVec4         = 0x8B59
	FloatMat2        = 0x8B5A
	FloatMat3        = 0x8B5B
	FloatMat4        = 0x8B5C
	Sampler2D        = 0x8B5E
	Sampler3D        = 0x8B5F
	SamplerCube      = 0x8B60
	Sampler2DShadow  = 0x8B62
	FloatMat2x3      = 0x8B65
	FloatMat2x4      = 0x8B66
	FloatMat3x2      = 0x8B67
	FloatMat3x4      = 0x8B68
	FloatMat4x2      = 0x8B69
	FloatMat4x3      = 0x8B6A
	UnsignedIntVec2  = 0x8DC6
	UnsignedIntVec3  = 0x8DC7
	UnsignedIntVec4  = 0x8DC8
	SamplerCubeArray = 0x900C
)

// Primitives.
const (
	Points        = 0x0000
	Lines         = 0x0001
	LineLoop      = 0x0002
	LineStrip     = 0x0003
	Triangles     = 0x0004
	TriangleStrip = 0x0005
	TriangleFan   = 0x0006
)

// Blending.
const (
	Zero                  = 0
	One                   = 1
	SrcColor              = 0x0300
	OneMinusSrcColor      = 0x0301
	SrcAlpha              = 0x0302
	OneMinusSrcAlpha      = 0x0303
	DstAlpha              = 0x0304
	OneMinusDstAlpha      = 0x0305
	DstColor              = 0x0306
	OneMinusDstColor      = 0x0307
	SrcAlphaSaturate      = 0x0308
	ConstantColor         = 0x8001
	OneMinusConstantColor = 0x8002
	ConstantAlpha         = 0x8003
	OneMinusConstantAlpha = 0x8004

	FuncAdd             = 0x8006
	Min                 = 0x8007
	Max                 = 0x8008
	FuncSubtract        = 0x800A
	FuncReverseSubtract = 0x800B
)

// Comparison functions shared by depth and stencil testing.
const (
	Never    = 0x0200
	Less     = 0x0201
	Equal    = 0x0202
	Lequal   = 0x0203
	Greater  = 0x0204
	Notequal = 0x0205
	Gequal   = 0x0206
	Always   = 0x0207
)

// Stencil operations.
const (
	Keep     = 0x1E00
	Replace  = 0x1E01
	Incr     = 0x1E02
	Decr     = 0x1E03
	Invert   = 0x150A
	IncrWrap = 0x8507
	DecrWrap = 0x8508
)

// Faces and winding.
const (
	Front        = 0x0404
	Back         = 0x0405
	FrontAndBack = 0x0408
	CW           = 0x0900
	CCW          = 0x0901
)

// Textures.
const (
	// Texture2D is the texture target for 2D textures.
	Texture2D = 0x0DE1
	// Texture0 is the first texture unit; unit i is Texture0+i.
	Texture0 = 0x84C0

	// TextureWrapS selects the wrapping function for texture coordinate S.
	TextureWrapS = 0x2802
	// TextureWrapT selects the wrapping function for texture coordinate T.
	TextureWrapT = 0x2803
	// TextureMinFilter selects the texture minification filter.
	TextureMinFilter = 0x2801
	// TextureMagFilter selects the texture magnification filter.
	TextureMagFilter = 0x2800

	Nearest = 0x2600
	Linear  = 0x2601

	ClampToEdge    = 0x812F
	Repeat         = 0x2901
	MirroredRepeat = 0x8370
)

// Pixel formats. Alpha, Luminance and LuminanceAlpha only exist on ES and
// compatibility contexts.
const (
	Alpha          = 0x1906
	RGB            = 0x1907
	RGBA           = 0x1908
	Luminance      = 0x1909
	LuminanceAlpha = 0x190A
	Red            = 0x1903
	RG             = 0x8227
	R8             = 0x8229
	RG8            = 0x822B
	RGB8           = 0x8051
	RGBA8          = 0x8058
	RGBA4          = 0x8056
	RGB5A1         = 0x8057
	RGB565         = 0x8D62

	DepthComponent16 = 0x81A5
	Depth24Stencil8  = 0x88F0
)

// Framebuffers and renderbuffers.
const (
	Framebuffer      = 0x8D40
	ReadFramebuffer  = 0x8CA8
	DrawFramebuffer  = 0x8CA9
	Renderbuffer     = 0x8D41
	ColorAttachment0 = 0x8CE0
	DepthAttachment  = 0x8D00
	// StencilAttachment is attached alongside DepthAttachment for packed
	// depth/stencil renderbuffers; ES2 has no DEPTH_STENCIL_ATTACHMENT.
	StencilAttachment = 0x8D20

	FramebufferComplete                    = 0x8CD5
	FramebufferIncompleteAttachment        = 0x8CD6
	FramebufferIncompleteMissingAttachment = 0x8CD7
	FramebufferIncompleteDimensions        = 0x8CD9
	FramebufferIncompleteDrawBuffer        = 0x8CDB
	FramebufferIncompleteReadBuffer        = 0x8CDC
	FramebufferUnsupported                 = 0x8CDD
	FramebufferIncompleteMultisample       = 0x8D56

	FramebufferAttachmentObjectType = 0x8CD0
	FramebufferAttachmentObjectName = 0x8CD1
	FramebufferAttachmentDepthSize  = 0x8216
	FramebufferAttachmentStencilSz  = 0x8217
	// FramebufferDefault is reported as an attachment object type by
	// desktop drivers for the window-system framebuffer.
	FramebufferDefault = 0x8218

	RenderbufferDepthSize   = 0x8D54
	RenderbufferStencilSize = 0x8D55

	Texture = 0x1702

	NoneAttachment = 0
)

// Shaders and programs.
const (
	FragmentShader = 0x8B30
	VertexShader   = 0x8B31

	CompileStatus            = 0x8B81
	LinkStatus               = 0x8B82
	InfoLogLength            = 0x8B84
	ActiveUniforms           = 0x8B86
	ActiveUniformMaxLength   = 0x8B87
	ActiveAttributes         = 0x8B89
	ActiveAttributeMaxLength = 0x8B8A
	DeleteStatus             = 0x8B80
)

// Functions describes the OpenGL and OpenGL ES entry points this module
// drives. Strings cross the boundary as Go strings; the loader handles NUL
// termination.
//
// All methods operate on the context current on the calling thread.
type Functions interface {
	// GetError returns and clears the oldest recorded error flag.
	GetError() uint32
	// GetString returns a static string describing the current context.
	GetString(name uint32) string
	// GetStringi returns one indexed string; GL 3 and ES 3 only.
	GetStringi(name, index uint32) string
	GetIntegerv(pname uint32, data *int32)
	GetBooleanv(pname uint32, data *bool)
	IsEnabled(cap uint32) bool
	Enable(cap uint32)
	Disable(cap uint32)
	Flush()
	Finish()

	BlendEquationSeparate(modeRGB, modeAlpha uint32)
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32)

	// ClearColor sets the clear color used by Clear when clearing the color buffer.
	ClearColor(r, g, b, a float32)
	// ClearDepth binds glClearDepthf on ES and glClearDepth on desktop GL.
	ClearDepth(d float32)
	ClearStencil(s int32)
	// Clear clears buffers to preset values (e.g., ColorBufferBit).
	Clear(mask uint32)
	ColorMask(r, g, b, a bool)
	CullFace(mode uint32)
	FrontFace(mode uint32)
	DepthFunc(fn uint32)
	DepthMask(flag bool)
	LineWidth(width float32)
	Scissor(x, y, width, height int32)
	// Viewport sets the affine transform from normalized device coordinates to window coordinates.
	Viewport(x, y, width, height int32)
	StencilFuncSeparate(face, fn uint32, ref int32, mask uint32)
	StencilMaskSeparate(face, mask uint32)
	StencilOpSeparate(face, sfail, dpfail, dppass uint32)
	// PixelStorei sets pixel storage modes that affect texture uploads and reads.
	PixelStorei(pname uint32, param int32)
	// ReadPixels reads a block of pixels from the read framebuffer.
	ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer)

	GenBuffers(n int32, buffers *uint32)
	DeleteBuffers(n int32, buffers *uint32)
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, size int, data unsafe.Pointer, usage uint32)
	BufferSubData(target uint32, offset, size int, data unsafe.Pointer)
	// MapBufferRange maps part of a buffer; GL 3 and ES 3 only.
	MapBufferRange(target uint32, offset, length int, access uint32) unsafe.Pointer
	UnmapBuffer(target uint32) bool
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)
	DrawArrays(mode uint32, first, count int32)
	DrawElements(mode uint32, count int32, xtype uint32, offset uintptr)

	CreateShader(xtype uint32) uint32
	// ShaderSource replaces the source of shader with the concatenation of lines.
	ShaderSource(shader uint32, lines []string)
	CompileShader(shader uint32)
	GetShaderiv(shader, pname uint32, params *int32)
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgramiv(program, pname uint32, params *int32)
	GetProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	GetActiveAttrib(program, index uint32) (name string, size int32, xtype uint32)
	GetActiveUniform(program, index uint32) (name string, size int32, xtype uint32)
	GetAttribLocation(program uint32, name string) int32
	GetUniformLocation(program uint32, name string) int32

	Uniform1f(location int32, v0 float32)
	Uniform2f(location int32, v0, v1 float32)
	Uniform3f(location int32, v0, v1, v2 float32)
	Uniform4f(location int32, v0, v1, v2, v3 float32)
	Uniform1i(location int32, v0 int32)
	Uniform2i(location int32, v0, v1 int32)
	UniformMatrix3fv(location, count int32, transpose bool, value *float32)
	UniformMatrix4fv(location, count int32, transpose bool, value *float32)

	// GenTextures generates texture object names.
	GenTextures(n int32, textures *uint32)
	DeleteTextures(n int32, textures *uint32)
	// BindTexture binds a named texture to a texturing target.
	BindTexture(target, texture uint32)
	// ActiveTexture selects the active texture unit (e.g. Texture0+i).
	ActiveTexture(texture uint32)
	// TexParameteri sets an integer texture parameter for the currently bound texture.
	TexParameteri(target, pname uint32, param int32)
	// TexImage2D specifies a two-dimensional texture image.
	TexImage2D(target uint32, level, internalFormat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer)
	// TexSubImage2D updates a subregion of an existing two-dimensional texture image.
	TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pixels unsafe.Pointer)

	GenFramebuffers(n int32, framebuffers *uint32)
	DeleteFramebuffers(n int32, framebuffers *uint32)
	BindFramebuffer(target, framebuffer uint32)
	FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32)
	FramebufferRenderbuffer(target, attachment, renderbufferTarget, renderbuffer uint32)
	CheckFramebufferStatus(target uint32) uint32
	GetFramebufferAttachmentParameteriv(target, attachment, pname uint32, params *int32)
	// DrawBuffers selects the color attachments written by fragment outputs.
	DrawBuffers(n int32, bufs *uint32)

	GenRenderbuffers(n int32, renderbuffers *uint32)
	DeleteRenderbuffers(n int32, renderbuffers *uint32)
	BindRenderbuffer(target, renderbuffer uint32)
	RenderbufferStorage(target, internalFormat uint32, width, height int32)
}

// gostring converts a NUL-terminated C string into a Go string.
func gostring(ptr *byte) string {
	if ptr == nil {
		return ""
	}
	var n int
	for p := unsafe.Pointer(ptr); *(*byte)(p) != 0; p = unsafe.Add(p, 1) {
		n++
	}
	return string(unsafe.Slice(ptr, n))
}

// cstring returns a NUL-terminated copy of s. The returned slice must stay
// reachable for the duration of the native call.
func cstring(s string) []byte {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return b
}
