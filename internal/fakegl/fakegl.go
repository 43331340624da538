// Package fakegl is an in-memory gl.Functions used by tests and by the CLI's
// --fake driver. It models object names, bindings, shader and program status,
// framebuffer completeness and the error flag, and records every call.
package fakegl

import (
	"slices"
	"strings"
	"unsafe"

	"github.com/tinyrange/canephora/gl"
)

// Buffer is a buffer object's storage.
type Buffer struct {
	Data  []byte
	Usage uint32
}

// Texture is a 2D texture object.
type Texture struct {
	Width, Height  int32
	InternalFormat int32
	Format, Type   uint32
	Params         map[uint32]int32
	Uploads        int
}

// Renderbuffer is a renderbuffer object.
type Renderbuffer struct {
	Format        uint32
	Width, Height int32
}

// Attached is one framebuffer attachment.
type Attached struct {
	// Kind is gl.Texture or gl.Renderbuffer.
	Kind uint32
	Name uint32
}

// Framebuffer is a framebuffer object.
type Framebuffer struct {
	Attachments map[uint32]Attached
	DrawBuffers []uint32
}

// AttribPointer is the recorded layout of one vertex attribute.
type AttribPointer struct {
	Buffer  uint32
	Size    int32
	Type    uint32
	Stride  int32
	Offset  uintptr
	Enabled bool
}

// GL is the fake driver. The zero value is not usable; call New.
type GL struct {
	Vendor          string
	Renderer        string
	Version         string
	ShadingLanguage string
	Extensions      []string

	// Status is returned by CheckFramebufferStatus.
	Status uint32
	// Params overrides implementation limits queried with GetIntegerv.
	Params map[uint32][]int32
	// Hidden names attributes and uniforms reported without a location.
	Hidden map[string]bool
	// Unexported lists entry points reported by Missing, as a loader does
	// for a driver that lacks them. The fake still implements them.
	Unexported []string

	calls   []string
	errors  []uint32
	next    uint32
	enabled map[uint32]bool

	buffers       map[uint32]*Buffer
	textures      map[uint32]*Texture
	renderbuffers map[uint32]*Renderbuffer
	framebuffers  map[uint32]*Framebuffer
	shaders       map[uint32]*Shader
	programs      map[uint32]*Program

	bindings   map[uint32]uint32
	units      map[uint32]uint32
	unit       uint32
	program    uint32
	pointers   map[uint32]*AttribPointer
	clear      [4]float32
	colorMask  [4]bool
	depthMask  bool
	lineWidth  float32
	viewport   [4]int32
	scissor    [4]int32
	pixelStore map[uint32]int32
	draws      int
}

// New returns a driver reporting version, with extensions advertised.
func New(version string, extensions ...string) *GL {
	f := &GL{
		Vendor:          "canephora",
		Renderer:        "fakegl",
		Version:         version,
		ShadingLanguage: "1.20",
		Extensions:      extensions,
		Status:          gl.FramebufferComplete,
		Params: map[uint32][]int32{
			gl.AliasedLineWidthRange: {1, 8},
			gl.SmoothLineWidthRange:  {1, 10},
			gl.AliasedPointSizeRange: {1, 64},
			gl.PointSizeRange:        {1, 63},
			gl.MaxVertexAttribs:      {16},
			gl.MaxTextureImageUnits:  {16},
			gl.MaxTextureSize:        {4096},
			gl.MaxColorAttachments:   {8},
			gl.MaxDrawBuffers:        {8},
			gl.DepthBits:             {24},
			gl.StencilBits:           {8},
		},
		Hidden:        map[string]bool{},
		enabled:       map[uint32]bool{},
		buffers:       map[uint32]*Buffer{},
		textures:      map[uint32]*Texture{},
		renderbuffers: map[uint32]*Renderbuffer{},
		framebuffers:  map[uint32]*Framebuffer{},
		shaders:       map[uint32]*Shader{},
		programs:      map[uint32]*Program{},
		bindings:      map[uint32]uint32{},
		units:         map[uint32]uint32{},
		pointers:      map[uint32]*AttribPointer{},
		colorMask:     [4]bool{true, true, true, true},
		depthMask:     true,
		lineWidth:     1,
		pixelStore:    map[uint32]int32{gl.UnpackAlignment: 4, gl.PackAlignment: 4},
	}
	if strings.HasPrefix(version, "OpenGL ES") {
		f.ShadingLanguage = "OpenGL ES GLSL ES 1.00"
		if strings.HasPrefix(version, "OpenGL ES 3") {
			f.ShadingLanguage = "OpenGL ES GLSL ES 3.00"
		}
	} else if strings.HasPrefix(version, "3") || strings.HasPrefix(version, "4") {
		f.ShadingLanguage = "3.30"
	}
	return f
}

// Calls returns the entry points invoked so far, in order.
func (f *GL) Calls() []string { return slices.Clone(f.calls) }

// Called reports how many times the named entry point was invoked.
func (f *GL) Called(name string) int {
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

// Missing implements gl.EntryPointReporter.
func (f *GL) Missing() []string { return slices.Clone(f.Unexported) }

// ResetCalls forgets the recorded calls.
func (f *GL) ResetCalls() { f.calls = f.calls[:0] }

// Raise queues code on the error flag.
func (f *GL) Raise(code uint32) { f.errors = append(f.errors, code) }

func (f *GL) record(name string) { f.calls = append(f.calls, name) }

func (f *GL) gen(n int32, out *uint32) {
	for i, s := 0, unsafe.Slice(out, n); i < len(s); i++ {
		f.next++
		s[i] = f.next
	}
}

func names(n int32, p *uint32) []uint32 { return unsafe.Slice(p, n) }

// Accessors for assertions.

func (f *GL) Buffer(name uint32) *Buffer             { return f.buffers[name] }
func (f *GL) Texture(name uint32) *Texture           { return f.textures[name] }
func (f *GL) Renderbuffer(name uint32) *Renderbuffer { return f.renderbuffers[name] }
func (f *GL) Framebuffer(name uint32) *Framebuffer   { return f.framebuffers[name] }
func (f *GL) Shader(name uint32) *Shader             { return f.shaders[name] }
func (f *GL) Program(name uint32) *Program           { return f.programs[name] }

// Binding returns the object bound to an array, element, framebuffer or
// renderbuffer target.
func (f *GL) Binding(target uint32) uint32 { return f.bindings[target] }

// TextureUnit returns the 2D texture bound to unit i.
func (f *GL) TextureUnit(i int) uint32 { return f.units[uint32(i)] }

// Enabled reports a capability toggled with Enable and Disable.
func (f *GL) Enabled(capability uint32) bool { return f.enabled[capability] }

// Pointer returns the recorded layout of attribute index.
func (f *GL) Pointer(index uint32) *AttribPointer { return f.pointers[index] }

// ClearValue returns the last color passed to ClearColor.
func (f *GL) ClearValue() [4]float32 { return f.clear }

func (f *GL) LineWidthValue() float32 { return f.lineWidth }
func (f *GL) ViewportValue() [4]int32 { return f.viewport }
func (f *GL) Draws() int              { return f.draws }

// Paths used by more than one entry point.

func (f *GL) GetError() uint32 {
	f.record("GetError")
	if len(f.errors) == 0 {
		return gl.NoError
	}
	code := f.errors[0]
	f.errors = f.errors[1:]
	return code
}

func (f *GL) GetString(name uint32) string {
	f.record("GetString")
	switch name {
	case gl.Vendor:
		return f.Vendor
	case gl.Renderer:
		return f.Renderer
	case gl.Version:
		return f.Version
	case gl.ShadingLanguageVersion:
		return f.ShadingLanguage
	case gl.Extensions:
		return strings.Join(f.Extensions, " ")
	}
	f.Raise(gl.InvalidEnum)
	return ""
}

func (f *GL) GetStringi(name, index uint32) string {
	f.record("GetStringi")
	if name != gl.Extensions || int(index) >= len(f.Extensions) {
		f.Raise(gl.InvalidValue)
		return ""
	}
	return f.Extensions[index]
}

func (f *GL) GetIntegerv(pname uint32, data *int32) {
	f.record("GetIntegerv")
	var v []int32
	switch pname {
	case gl.NumExtensions:
		v = []int32{int32(len(f.Extensions))}
	case gl.ArrayBufferBinding:
		v = []int32{int32(f.bindings[gl.ArrayBuffer])}
	case gl.ElementArrayBufferBind:
		v = []int32{int32(f.bindings[gl.ElementArrayBuffer])}
	case gl.FramebufferBinding:
		v = []int32{int32(f.bindings[gl.Framebuffer])}
	case gl.RenderbufferBinding:
		v = []int32{int32(f.bindings[gl.Renderbuffer])}
	case gl.TextureBinding2D:
		v = []int32{int32(f.units[f.unit])}
	case gl.ActiveTextureUnit:
		v = []int32{int32(gl.Texture0 + f.unit)}
	case gl.CurrentProgram:
		v = []int32{int32(f.program)}
	case gl.UnpackAlignment, gl.PackAlignment:
		v = []int32{f.pixelStore[pname]}
	default:
		var ok bool
		if v, ok = f.Params[pname]; !ok {
			f.Raise(gl.InvalidEnum)
			return
		}
	}
	copy(unsafe.Slice(data, len(v)), v)
}

func (f *GL) GetBooleanv(pname uint32, data *bool) {
	f.record("GetBooleanv")
	switch pname {
	case gl.ColorWritemask:
		copy(unsafe.Slice(data, 4), f.colorMask[:])
	case gl.DepthWritemask:
		*data = f.depthMask
	default:
		f.Raise(gl.InvalidEnum)
	}
}

func (f *GL) IsEnabled(capability uint32) bool {
	f.record("IsEnabled")
	return f.enabled[capability]
}

func (f *GL) Enable(capability uint32) {
	f.record("Enable")
	f.enabled[capability] = true
}

func (f *GL) Disable(capability uint32) {
	f.record("Disable")
	f.enabled[capability] = false
}

func (f *GL) Flush()  { f.record("Flush") }
func (f *GL) Finish() { f.record("Finish") }

func (f *GL) BlendEquationSeparate(modeRGB, modeAlpha uint32) { f.record("BlendEquationSeparate") }
func (f *GL) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	f.record("BlendFuncSeparate")
}

func (f *GL) ClearColor(r, g, b, a float32) {
	f.record("ClearColor")
	f.clear = [4]float32{r, g, b, a}
}

func (f *GL) ClearDepth(d float32)  { f.record("ClearDepth") }
func (f *GL) ClearStencil(s int32)  { f.record("ClearStencil") }
func (f *GL) Clear(mask uint32)     { f.record("Clear") }
func (f *GL) CullFace(mode uint32)  { f.record("CullFace") }
func (f *GL) FrontFace(mode uint32) { f.record("FrontFace") }
func (f *GL) DepthFunc(fn uint32)   { f.record("DepthFunc") }

func (f *GL) ColorMask(r, g, b, a bool) {
	f.record("ColorMask")
	f.colorMask = [4]bool{r, g, b, a}
}

func (f *GL) DepthMask(flag bool) {
	f.record("DepthMask")
	f.depthMask = flag
}

func (f *GL) LineWidth(width float32) {
	f.record("LineWidth")
	f.lineWidth = width
}

func (f *GL) Scissor(x, y, width, height int32) {
	f.record("Scissor")
	f.scissor = [4]int32{x, y, width, height}
}

func (f *GL) Viewport(x, y, width, height int32) {
	f.record("Viewport")
	f.viewport = [4]int32{x, y, width, height}
}

func (f *GL) StencilFuncSeparate(face, fn uint32, ref int32, mask uint32) {
	f.record("StencilFuncSeparate")
}
func (f *GL) StencilMaskSeparate(face, mask uint32)                { f.record("StencilMaskSeparate") }
func (f *GL) StencilOpSeparate(face, sfail, dpfail, dppass uint32) { f.record("StencilOpSeparate") }

func (f *GL) PixelStorei(pname uint32, param int32) {
	f.record("PixelStorei")
	f.pixelStore[pname] = param
}

// ReadPixels fills the destination with the clear color. Only RGBA bytes
// are supported.
func (f *GL) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	f.record("ReadPixels")
	if format != gl.RGBA || xtype != gl.UnsignedByte {
		f.Raise(gl.InvalidOperation)
		return
	}
	px := [4]byte{}
	for i, c := range f.clear {
		px[i] = byte(min(max(c, 0), 1)*255 + 0.5)
	}
	out := unsafe.Slice((*byte)(pixels), int(width*height*4))
	for i := 0; i < len(out); i += 4 {
		copy(out[i:], px[:])
	}
}

// Buffers.

func (f *GL) GenBuffers(n int32, buffers *uint32) {
	f.record("GenBuffers")
	f.gen(n, buffers)
	for _, name := range names(n, buffers) {
		f.buffers[name] = &Buffer{}
	}
}

func (f *GL) DeleteBuffers(n int32, buffers *uint32) {
	f.record("DeleteBuffers")
	for _, name := range names(n, buffers) {
		delete(f.buffers, name)
		for t, b := range f.bindings {
			if b == name && (t == gl.ArrayBuffer || t == gl.ElementArrayBuffer) {
				f.bindings[t] = 0
			}
		}
	}
}

func (f *GL) BindBuffer(target, buffer uint32) {
	f.record("BindBuffer")
	if _, ok := f.buffers[buffer]; buffer != 0 && !ok {
		f.Raise(gl.InvalidOperation)
		return
	}
	f.bindings[target] = buffer
}

func (f *GL) bound(target uint32) *Buffer {
	b := f.buffers[f.bindings[target]]
	if b == nil {
		f.Raise(gl.InvalidOperation)
	}
	return b
}

func (f *GL) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	f.record("BufferData")
	if b := f.bound(target); b != nil {
		b.Data = make([]byte, size)
		b.Usage = usage
		if data != nil {
			copy(b.Data, unsafe.Slice((*byte)(data), size))
		}
	}
}

func (f *GL) BufferSubData(target uint32, offset, size int, data unsafe.Pointer) {
	f.record("BufferSubData")
	b := f.bound(target)
	if b == nil {
		return
	}
	if offset < 0 || offset+size > len(b.Data) {
		f.Raise(gl.InvalidValue)
		return
	}
	copy(b.Data[offset:], unsafe.Slice((*byte)(data), size))
}

func (f *GL) MapBufferRange(target uint32, offset, length int, access uint32) unsafe.Pointer {
	f.record("MapBufferRange")
	b := f.bound(target)
	if b == nil || length == 0 {
		return nil
	}
	if offset < 0 || offset+length > len(b.Data) {
		f.Raise(gl.InvalidValue)
		return nil
	}
	return unsafe.Pointer(&b.Data[offset])
}

func (f *GL) UnmapBuffer(target uint32) bool {
	f.record("UnmapBuffer")
	return f.bound(target) != nil
}

func (f *GL) pointer(index uint32) *AttribPointer {
	p := f.pointers[index]
	if p == nil {
		p = &AttribPointer{}
		f.pointers[index] = p
	}
	return p
}

func (f *GL) EnableVertexAttribArray(index uint32) {
	f.record("EnableVertexAttribArray")
	f.pointer(index).Enabled = true
}

func (f *GL) DisableVertexAttribArray(index uint32) {
	f.record("DisableVertexAttribArray")
	f.pointer(index).Enabled = false
}

func (f *GL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	f.record("VertexAttribPointer")
	if f.bindings[gl.ArrayBuffer] == 0 {
		f.Raise(gl.InvalidOperation)
		return
	}
	p := f.pointer(index)
	p.Buffer, p.Size, p.Type, p.Stride, p.Offset = f.bindings[gl.ArrayBuffer], size, xtype, stride, offset
}

func (f *GL) DrawArrays(mode uint32, first, count int32) {
	f.record("DrawArrays")
	f.draws++
}

func (f *GL) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	f.record("DrawElements")
	if f.bindings[gl.ElementArrayBuffer] == 0 {
		f.Raise(gl.InvalidOperation)
		return
	}
	f.draws++
}

// Textures.

func (f *GL) GenTextures(n int32, textures *uint32) {
	f.record("GenTextures")
	f.gen(n, textures)
	for _, name := range names(n, textures) {
		f.textures[name] = &Texture{Params: map[uint32]int32{}}
	}
}

func (f *GL) DeleteTextures(n int32, textures *uint32) {
	f.record("DeleteTextures")
	for _, name := range names(n, textures) {
		delete(f.textures, name)
		for u, t := range f.units {
			if t == name {
				f.units[u] = 0
			}
		}
	}
}

func (f *GL) BindTexture(target, texture uint32) {
	f.record("BindTexture")
	if _, ok := f.textures[texture]; texture != 0 && !ok {
		f.Raise(gl.InvalidOperation)
		return
	}
	f.units[f.unit] = texture
}

func (f *GL) ActiveTexture(texture uint32) {
	f.record("ActiveTexture")
	f.unit = texture - gl.Texture0
}

func (f *GL) boundTexture() *Texture {
	t := f.textures[f.units[f.unit]]
	if t == nil {
		f.Raise(gl.InvalidOperation)
	}
	return t
}

func (f *GL) TexParameteri(target, pname uint32, param int32) {
	f.record("TexParameteri")
	if t := f.boundTexture(); t != nil {
		t.Params[pname] = param
	}
}

func (f *GL) TexImage2D(target uint32, level, internalFormat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer) {
	f.record("TexImage2D")
	if t := f.boundTexture(); t != nil {
		t.Width, t.Height, t.InternalFormat, t.Format, t.Type = width, height, internalFormat, format, xtype
	}
}

func (f *GL) TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	f.record("TexSubImage2D")
	t := f.boundTexture()
	if t == nil {
		return
	}
	if xoffset+width > t.Width || yoffset+height > t.Height {
		f.Raise(gl.InvalidValue)
		return
	}
	t.Uploads++
}

// Framebuffers and renderbuffers.

func (f *GL) GenFramebuffers(n int32, framebuffers *uint32) {
	f.record("GenFramebuffers")
	f.gen(n, framebuffers)
	for _, name := range names(n, framebuffers) {
		f.framebuffers[name] = &Framebuffer{Attachments: map[uint32]Attached{}}
	}
}

func (f *GL) DeleteFramebuffers(n int32, framebuffers *uint32) {
	f.record("DeleteFramebuffers")
	for _, name := range names(n, framebuffers) {
		delete(f.framebuffers, name)
		if f.bindings[gl.Framebuffer] == name {
			f.bindings[gl.Framebuffer] = 0
		}
	}
}

func (f *GL) BindFramebuffer(target, framebuffer uint32) {
	f.record("BindFramebuffer")
	if _, ok := f.framebuffers[framebuffer]; framebuffer != 0 && !ok {
		f.Raise(gl.InvalidOperation)
		return
	}
	f.bindings[gl.Framebuffer] = framebuffer
}

func (f *GL) boundFramebuffer() *Framebuffer {
	fb := f.framebuffers[f.bindings[gl.Framebuffer]]
	if fb == nil {
		f.Raise(gl.InvalidOperation)
	}
	return fb
}

func (f *GL) FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32) {
	f.record("FramebufferTexture2D")
	if fb := f.boundFramebuffer(); fb != nil {
		fb.Attachments[attachment] = Attached{Kind: gl.Texture, Name: texture}
	}
}

func (f *GL) FramebufferRenderbuffer(target, attachment, renderbufferTarget, renderbuffer uint32) {
	f.record("FramebufferRenderbuffer")
	if fb := f.boundFramebuffer(); fb != nil {
		fb.Attachments[attachment] = Attached{Kind: gl.Renderbuffer, Name: renderbuffer}
	}
}

func (f *GL) CheckFramebufferStatus(target uint32) uint32 {
	f.record("CheckFramebufferStatus")
	if f.boundFramebuffer() == nil {
		return 0
	}
	return f.Status
}

func (f *GL) GetFramebufferAttachmentParameteriv(target, attachment, pname uint32, params *int32) {
	f.record("GetFramebufferAttachmentParameteriv")
	fb := f.framebuffers[f.bindings[gl.Framebuffer]]
	if fb == nil {
		*params = gl.FramebufferDefault
		return
	}
	a, ok := fb.Attachments[attachment]
	switch pname {
	case gl.FramebufferAttachmentObjectType:
		*params = int32(a.Kind)
		if !ok {
			*params = gl.NoneAttachment
		}
	case gl.FramebufferAttachmentDepthSize, gl.FramebufferAttachmentStencilSz:
		*params = 0
		if rb := f.renderbuffers[a.Name]; ok && a.Kind == gl.Renderbuffer && rb != nil {
			*params = renderbufferBits(rb.Format, pname == gl.FramebufferAttachmentStencilSz)
		}
	default:
		f.Raise(gl.InvalidEnum)
	}
}

func renderbufferBits(format uint32, stencil bool) int32 {
	switch {
	case format == gl.Depth24Stencil8 && stencil:
		return 8
	case format == gl.Depth24Stencil8:
		return 24
	case format == gl.DepthComponent16 && !stencil:
		return 16
	}
	return 0
}

func (f *GL) DrawBuffers(n int32, bufs *uint32) {
	f.record("DrawBuffers")
	if fb := f.boundFramebuffer(); fb != nil {
		fb.DrawBuffers = slices.Clone(unsafe.Slice(bufs, n))
	}
}

func (f *GL) GenRenderbuffers(n int32, renderbuffers *uint32) {
	f.record("GenRenderbuffers")
	f.gen(n, renderbuffers)
	for _, name := range names(n, renderbuffers) {
		f.renderbuffers[name] = &Renderbuffer{}
	}
}

func (f *GL) DeleteRenderbuffers(n int32, renderbuffers *uint32) {
	f.record("DeleteRenderbuffers")
	for _, name := range names(n, renderbuffers) {
		delete(f.renderbuffers, name)
		if f.bindings[gl.Renderbuffer] == name {
			f.bindings[gl.Renderbuffer] = 0
		}
	}
}

func (f *GL) BindRenderbuffer(target, renderbuffer uint32) {
	f.record("BindRenderbuffer")
	if _, ok := f.renderbuffers[renderbuffer]; renderbuffer != 0 && !ok {
		f.Raise(gl.InvalidOperation)
		return
	}
	f.bindings[gl.Renderbuffer] = renderbuffer
}

func (f *GL) RenderbufferStorage(target, internalFormat uint32, width, height int32) {
	f.record("RenderbufferStorage")
	rb := f.renderbuffers[f.bindings[gl.Renderbuffer]]
	if rb == nil {
		f.Raise(gl.InvalidOperation)
		return
	}
	rb.Format, rb.Width, rb.Height = internalFormat, width, height
}

var (
	_ gl.Functions          = (*GL)(nil)
	_ gl.EntryPointReporter = (*GL)(nil)
)

func unsafeFloats(p *float32, n int) []float32 { return slices.Clone(unsafe.Slice(p, n)) }
