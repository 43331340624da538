package gl

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/ebitengine/purego"
)

// functions is the binding table filled by Load. Fields left nil belong to
// optional entry points the driver does not export; see Missing.
type functions struct {
	api     API
	missing []string

	getError     func() uint32
	getString    func(uint32) *byte
	getStringi   func(uint32, uint32) *byte
	getIntegerv  func(uint32, *int32)
	getBooleanv  func(uint32, *uint8)
	isEnabled    func(uint32) uint8
	enable       func(uint32)
	disable      func(uint32)
	flush        func()
	finish       func()
	blendEqSep   func(uint32, uint32)
	blendFuncSep func(uint32, uint32, uint32, uint32)
	clearColor   func(float32, float32, float32, float32)
	clearDepthf  func(float32)
	clearDepth   func(float64)
	clearStencil func(int32)
	clear        func(uint32)
	colorMask    func(uint8, uint8, uint8, uint8)
	cullFace     func(uint32)
	frontFace    func(uint32)
	depthFunc    func(uint32)
	depthMask    func(uint8)
	lineWidth    func(float32)
	scissor      func(int32, int32, int32, int32)
	viewport     func(int32, int32, int32, int32)
	stencilFunc  func(uint32, uint32, int32, uint32)
	stencilMask  func(uint32, uint32)
	stencilOp    func(uint32, uint32, uint32, uint32)
	pixelStorei  func(uint32, int32)
	readPixels   func(int32, int32, int32, int32, uint32, uint32, unsafe.Pointer)

	genBuffers       func(int32, *uint32)
	deleteBuffers    func(int32, *uint32)
	bindBuffer       func(uint32, uint32)
	bufferData       func(uint32, uintptr, unsafe.Pointer, uint32)
	bufferSubData    func(uint32, uintptr, uintptr, unsafe.Pointer)
	mapBufferRange   func(uint32, uintptr, uintptr, uint32) unsafe.Pointer
	unmapBuffer      func(uint32) uint8
	enableAttrib     func(uint32)
	disableAttrib    func(uint32)
	attribPointer    func(uint32, int32, uint32, uint8, int32, uintptr)
	drawArrays       func(uint32, int32, int32)
	drawElements     func(uint32, int32, uint32, uintptr)
	createShader     func(uint32) uint32
	shaderSource     func(uint32, int32, **byte, *int32)
	compileShader    func(uint32)
	getShaderiv      func(uint32, uint32, *int32)
	getShaderInfoLog func(uint32, int32, *int32, *byte)
	deleteShader     func(uint32)

	createProgram     func() uint32
	attachShader      func(uint32, uint32)
	linkProgram       func(uint32)
	getProgramiv      func(uint32, uint32, *int32)
	getProgramInfoLog func(uint32, int32, *int32, *byte)
	deleteProgram     func(uint32)
	useProgram        func(uint32)
	getActiveAttrib   func(uint32, uint32, int32, *int32, *int32, *uint32, *byte)
	getActiveUniform  func(uint32, uint32, int32, *int32, *int32, *uint32, *byte)
	getAttribLoc      func(uint32, *byte) int32
	getUniformLoc     func(uint32, *byte) int32
	uniform1f         func(int32, float32)
	uniform2f         func(int32, float32, float32)
	uniform3f         func(int32, float32, float32, float32)
	uniform4f         func(int32, float32, float32, float32, float32)
	uniform1i         func(int32, int32)
	uniform2i         func(int32, int32, int32)
	uniformMatrix3fv  func(int32, int32, uint8, *float32)
	uniformMatrix4fv  func(int32, int32, uint8, *float32)

	genTextures    func(int32, *uint32)
	deleteTextures func(int32, *uint32)
	bindTexture    func(uint32, uint32)
	activeTexture  func(uint32)
	texParameteri  func(uint32, uint32, int32)
	texImage2D     func(uint32, int32, int32, int32, int32, int32, uint32, uint32, unsafe.Pointer)
	texSubImage2D  func(uint32, int32, int32, int32, int32, int32, uint32, uint32, unsafe.Pointer)

	genFramebuffers      func(int32, *uint32)
	deleteFramebuffers   func(int32, *uint32)
	bindFramebuffer      func(uint32, uint32)
	framebufferTexture2D func(uint32, uint32, uint32, uint32, int32)
	framebufferRb        func(uint32, uint32, uint32, uint32)
	checkFbStatus        func(uint32) uint32
	getFbAttachParam     func(uint32, uint32, uint32, *int32)
	drawBuffers          func(int32, *uint32)

	genRenderbuffers    func(int32, *uint32)
	deleteRenderbuffers func(int32, *uint32)
	bindRenderbuffer    func(uint32, uint32)
	renderbufferStorage func(uint32, uint32, int32, int32)
}

// symbol names one entry point. Alternative names are tried in order, which
// lets OpenGL 2.1 drivers satisfy framebuffer entry points with their EXT
// variants.
type symbol struct {
	dst      any
	names    []string
	optional bool
}

func sym(dst any, names ...string) symbol { return symbol{dst: dst, names: names} }

func opt(dst any, names ...string) symbol { return symbol{dst: dst, names: names, optional: true} }

func (f *functions) symbols() []symbol {
	s := []symbol{
		sym(&f.getError, "glGetError"),
		sym(&f.getString, "glGetString"),
		opt(&f.getStringi, "glGetStringi"),
		sym(&f.getIntegerv, "glGetIntegerv"),
		sym(&f.getBooleanv, "glGetBooleanv"),
		sym(&f.isEnabled, "glIsEnabled"),
		sym(&f.enable, "glEnable"),
		sym(&f.disable, "glDisable"),
		sym(&f.flush, "glFlush"),
		sym(&f.finish, "glFinish"),
		sym(&f.blendEqSep, "glBlendEquationSeparate", "glBlendEquationSeparateEXT"),
		sym(&f.blendFuncSep, "glBlendFuncSeparate", "glBlendFuncSeparateEXT"),
		sym(&f.clearColor, "glClearColor"),
		sym(&f.clearStencil, "glClearStencil"),
		sym(&f.clear, "glClear"),
		sym(&f.colorMask, "glColorMask"),
		sym(&f.cullFace, "glCullFace"),
		sym(&f.frontFace, "glFrontFace"),
		sym(&f.depthFunc, "glDepthFunc"),
		sym(&f.depthMask, "glDepthMask"),
		sym(&f.lineWidth, "glLineWidth"),
		sym(&f.scissor, "glScissor"),
		sym(&f.viewport, "glViewport"),
		sym(&f.stencilFunc, "glStencilFuncSeparate"),
		sym(&f.stencilMask, "glStencilMaskSeparate"),
		sym(&f.stencilOp, "glStencilOpSeparate"),
		sym(&f.pixelStorei, "glPixelStorei"),
		sym(&f.readPixels, "glReadPixels"),

		sym(&f.genBuffers, "glGenBuffers", "glGenBuffersARB"),
		sym(&f.deleteBuffers, "glDeleteBuffers", "glDeleteBuffersARB"),
		sym(&f.bindBuffer, "glBindBuffer", "glBindBufferARB"),
		sym(&f.bufferData, "glBufferData", "glBufferDataARB"),
		sym(&f.bufferSubData, "glBufferSubData", "glBufferSubDataARB"),
		opt(&f.mapBufferRange, "glMapBufferRange"),
		opt(&f.unmapBuffer, "glUnmapBuffer"),
		sym(&f.enableAttrib, "glEnableVertexAttribArray"),
		sym(&f.disableAttrib, "glDisableVertexAttribArray"),
		sym(&f.attribPointer, "glVertexAttribPointer"),
		sym(&f.drawArrays, "glDrawArrays"),
		sym(&f.drawElements, "glDrawElements"),
		sym(&f.createShader, "glCreateShader"),
		sym(&f.shaderSource, "glShaderSource"),
		sym(&f.compileShader, "glCompileShader"),
		sym(&f.getShaderiv, "glGetShaderiv"),
		sym(&f.getShaderInfoLog, "glGetShaderInfoLog"),
		sym(&f.deleteShader, "glDeleteShader"),

		sym(&f.createProgram, "glCreateProgram"),
		sym(&f.attachShader, "glAttachShader"),
		sym(&f.linkProgram, "glLinkProgram"),
		sym(&f.getProgramiv, "glGetProgramiv"),
		sym(&f.getProgramInfoLog, "glGetProgramInfoLog"),
		sym(&f.deleteProgram, "glDeleteProgram"),
		sym(&f.useProgram, "glUseProgram"),
		sym(&f.getActiveAttrib, "glGetActiveAttrib"),
		sym(&f.getActiveUniform, "glGetActiveUniform"),
		sym(&f.getAttribLoc, "glGetAttribLocation"),
		sym(&f.getUniformLoc, "glGetUniformLocation"),
		sym(&f.uniform1f, "glUniform1f"),
		sym(&f.uniform2f, "glUniform2f"),
		sym(&f.uniform3f, "glUniform3f"),
		sym(&f.uniform4f, "glUniform4f"),
		sym(&f.uniform1i, "glUniform1i"),
		sym(&f.uniform2i, "glUniform2i"),
		sym(&f.uniformMatrix3fv, "glUniformMatrix3fv"),
		sym(&f.uniformMatrix4fv, "glUniformMatrix4fv"),

		sym(&f.genTextures, "glGenTextures"),
		sym(&f.deleteTextures, "glDeleteTextures"),
		sym(&f.bindTexture, "glBindTexture"),
		sym(&f.activeTexture, "glActiveTexture"),
		sym(&f.texParameteri, "glTexParameteri"),
		sym(&f.texImage2D, "glTexImage2D"),
		sym(&f.texSubImage2D, "glTexSubImage2D"),

		opt(&f.genFramebuffers, "glGenFramebuffers", "glGenFramebuffersEXT"),
		opt(&f.deleteFramebuffers, "glDeleteFramebuffers", "glDeleteFramebuffersEXT"),
		opt(&f.bindFramebuffer, "glBindFramebuffer", "glBindFramebufferEXT"),
		opt(&f.framebufferTexture2D, "glFramebufferTexture2D", "glFramebufferTexture2DEXT"),
		opt(&f.framebufferRb, "glFramebufferRenderbuffer", "glFramebufferRenderbufferEXT"),
		opt(&f.checkFbStatus, "glCheckFramebufferStatus", "glCheckFramebufferStatusEXT"),
		opt(&f.getFbAttachParam, "glGetFramebufferAttachmentParameteriv", "glGetFramebufferAttachmentParameterivEXT"),
		opt(&f.drawBuffers, "glDrawBuffers", "glDrawBuffersEXT"),
		opt(&f.genRenderbuffers, "glGenRenderbuffers", "glGenRenderbuffersEXT"),
		opt(&f.deleteRenderbuffers, "glDeleteRenderbuffers", "glDeleteRenderbuffersEXT"),
		opt(&f.bindRenderbuffer, "glBindRenderbuffer", "glBindRenderbufferEXT"),
		opt(&f.renderbufferStorage, "glRenderbufferStorage", "glRenderbufferStorageEXT"),
	}
	if f.api == ES {
		s = append(s, sym(&f.clearDepthf, "glClearDepthf"))
	} else {
		s = append(s, sym(&f.clearDepth, "glClearDepth"))
	}
	return s
}

// bind resolves every symbol through lookup, which returns 0 for names the
// library does not provide, and registers the resolved addresses.
func (f *functions) bind(lookup func(name string) uintptr) error {
	syms := f.symbols()
	addrs, err := f.resolve(syms, lookup)
	if err != nil {
		return err
	}
	for i, s := range syms {
		if addrs[i] != 0 {
			purego.RegisterFunc(s.dst, addrs[i])
		}
	}
	return nil
}

func (f *functions) resolve(syms []symbol, lookup func(name string) uintptr) ([]uintptr, error) {
	addrs := make([]uintptr, len(syms))
	f.missing = f.missing[:0]
	for i, s := range syms {
		for _, name := range s.names {
			if addrs[i] = lookup(name); addrs[i] != 0 {
				break
			}
		}
		if addrs[i] == 0 {
			if !s.optional {
				return nil, fmt.Errorf("gl: %s: missing entry point %s", f.api, s.names[0])
			}
			f.missing = append(f.missing, s.names[0])
		}
	}
	return addrs, nil
}

// EntryPointReporter is implemented by Functions values that know which
// optional entry points are unbound. The value returned by Load implements
// it; callers must not invoke an entry point it reports.
type EntryPointReporter interface {
	Missing() []string
}

var _ EntryPointReporter = (*functions)(nil)

// Missing lists the optional entry points the driver did not export, by
// their core name.
func (f *functions) Missing() []string {
	return append([]string(nil), f.missing...)
}

func glBool(b bool) uint8 {
	if b {
		return True
	}
	return False
}

func (f *functions) GetError() uint32 { return f.getError() }

func (f *functions) GetString(name uint32) string { return gostring(f.getString(name)) }

func (f *functions) GetStringi(name, index uint32) string {
	return gostring(f.getStringi(name, index))
}

func (f *functions) GetIntegerv(pname uint32, data *int32) { f.getIntegerv(pname, data) }

func (f *functions) GetBooleanv(pname uint32, data *bool) {
	// GetBooleanv may write several values (ColorWritemask writes four).
	var raw [4]uint8
	f.getBooleanv(pname, &raw[0])
	out := unsafe.Slice(data, 1)
	if pname == ColorWritemask {
		out = unsafe.Slice(data, 4)
	}
	for i := range out {
		out[i] = raw[i] != False
	}
}

func (f *functions) IsEnabled(cap uint32) bool { return f.isEnabled(cap) != False }
func (f *functions) Enable(cap uint32)         { f.enable(cap) }
func (f *functions) Disable(cap uint32)        { f.disable(cap) }
func (f *functions) Flush()                    { f.flush() }
func (f *functions) Finish()                   { f.finish() }

func (f *functions) BlendEquationSeparate(modeRGB, modeAlpha uint32) {
	f.blendEqSep(modeRGB, modeAlpha)
}

func (f *functions) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	f.blendFuncSep(srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (f *functions) ClearColor(r, g, b, a float32) { f.clearColor(r, g, b, a) }

func (f *functions) ClearDepth(d float32) {
	if f.clearDepthf != nil {
		f.clearDepthf(d)
		return
	}
	f.clearDepth(float64(d))
}

func (f *functions) ClearStencil(s int32) { f.clearStencil(s) }
func (f *functions) Clear(mask uint32)    { f.clear(mask) }

func (f *functions) ColorMask(r, g, b, a bool) {
	f.colorMask(glBool(r), glBool(g), glBool(b), glBool(a))
}

func (f *functions) CullFace(mode uint32)     { f.cullFace(mode) }
func (f *functions) FrontFace(mode uint32)    { f.frontFace(mode) }
func (f *functions) DepthFunc(fn uint32)      { f.depthFunc(fn) }
func (f *functions) DepthMask(flag bool)      { f.depthMask(glBool(flag)) }
func (f *functions) LineWidth(width float32)  { f.lineWidth(width) }
func (f *functions) Scissor(x, y, w, h int32) { f.scissor(x, y, w, h) }

func (f *functions) Viewport(x, y, width, height int32) { f.viewport(x, y, width, height) }

func (f *functions) StencilFuncSeparate(face, fn uint32, ref int32, mask uint32) {
	f.stencilFunc(face, fn, ref, mask)
}

func (f *functions) StencilMaskSeparate(face, mask uint32) { f.stencilMask(face, mask) }

func (f *functions) StencilOpSeparate(face, sfail, dpfail, dppass uint32) {
	f.stencilOp(face, sfail, dpfail, dppass)
}

func (f *functions) PixelStorei(pname uint32, param int32) { f.pixelStorei(pname, param) }

func (f *functions) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	f.readPixels(x, y, width, height, format, xtype, pixels)
}

func (f *functions) GenBuffers(n int32, buffers *uint32)    { f.genBuffers(n, buffers) }
func (f *functions) DeleteBuffers(n int32, buffers *uint32) { f.deleteBuffers(n, buffers) }
func (f *functions) BindBuffer(target, buffer uint32)       { f.bindBuffer(target, buffer) }

func (f *functions) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	f.bufferData(target, uintptr(size), data, usage)
}

func (f *functions) BufferSubData(target uint32, offset, size int, data unsafe.Pointer) {
	f.bufferSubData(target, uintptr(offset), uintptr(size), data)
}

func (f *functions) MapBufferRange(target uint32, offset, length int, access uint32) unsafe.Pointer {
	return f.mapBufferRange(target, uintptr(offset), uintptr(length), access)
}

func (f *functions) UnmapBuffer(target uint32) bool { return f.unmapBuffer(target) != False }

func (f *functions) EnableVertexAttribArray(index uint32)  { f.enableAttrib(index) }
func (f *functions) DisableVertexAttribArray(index uint32) { f.disableAttrib(index) }

func (f *functions) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	f.attribPointer(index, size, xtype, glBool(normalized), stride, offset)
}

func (f *functions) DrawArrays(mode uint32, first, count int32) { f.drawArrays(mode, first, count) }

func (f *functions) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	f.drawElements(mode, count, xtype, offset)
}

func (f *functions) CreateShader(xtype uint32) uint32 { return f.createShader(xtype) }

func (f *functions) ShaderSource(shader uint32, lines []string) {
	if len(lines) == 0 {
		f.shaderSource(shader, 0, nil, nil)
		return
	}
	bufs := make([][]byte, len(lines))
	ptrs := make([]*byte, len(lines))
	lens := make([]int32, len(lines))
	for i, line := range lines {
		bufs[i] = cstring(line)
		ptrs[i] = &bufs[i][0]
		lens[i] = int32(len(line))
	}
	f.shaderSource(shader, int32(len(lines)), &ptrs[0], &lens[0])
	runtime.KeepAlive(bufs)
}

func (f *functions) CompileShader(shader uint32) { f.compileShader(shader) }

func (f *functions) GetShaderiv(shader, pname uint32, params *int32) {
	f.getShaderiv(shader, pname, params)
}

func (f *functions) GetShaderInfoLog(shader uint32) string {
	var n int32
	f.getShaderiv(shader, InfoLogLength, &n)
	return infoLog(n, func(size int32, length *int32, buf *byte) {
		f.getShaderInfoLog(shader, size, length, buf)
	})
}

func (f *functions) DeleteShader(shader uint32) { f.deleteShader(shader) }

func (f *functions) CreateProgram() uint32               { return f.createProgram() }
func (f *functions) AttachShader(program, shader uint32) { f.attachShader(program, shader) }
func (f *functions) LinkProgram(program uint32)          { f.linkProgram(program) }

func (f *functions) GetProgramiv(program, pname uint32, params *int32) {
	f.getProgramiv(program, pname, params)
}

func (f *functions) GetProgramInfoLog(program uint32) string {
	var n int32
	f.getProgramiv(program, InfoLogLength, &n)
	return infoLog(n, func(size int32, length *int32, buf *byte) {
		f.getProgramInfoLog(program, size, length, buf)
	})
}

func (f *functions) DeleteProgram(program uint32) { f.deleteProgram(program) }
func (f *functions) UseProgram(program uint32)    { f.useProgram(program) }

func (f *functions) GetActiveAttrib(program, index uint32) (string, int32, uint32) {
	var max int32
	f.getProgramiv(program, ActiveAttributeMaxLength, &max)
	return active(max, func(bufSize int32, length, size *int32, xtype *uint32, name *byte) {
		f.getActiveAttrib(program, index, bufSize, length, size, xtype, name)
	})
}

func (f *functions) GetActiveUniform(program, index uint32) (string, int32, uint32) {
	var max int32
	f.getProgramiv(program, ActiveUniformMaxLength, &max)
	return active(max, func(bufSize int32, length, size *int32, xtype *uint32, name *byte) {
		f.getActiveUniform(program, index, bufSize, length, size, xtype, name)
	})
}

func (f *functions) GetAttribLocation(program uint32, name string) int32 {
	b := cstring(name)
	return f.getAttribLoc(program, &b[0])
}

func (f *functions) GetUniformLocation(program uint32, name string) int32 {
	b := cstring(name)
	return f.getUniformLoc(program, &b[0])
}

func (f *functions) Uniform1f(location int32, v0 float32)         { f.uniform1f(location, v0) }
func (f *functions) Uniform2f(location int32, v0, v1 float32)     { f.uniform2f(location, v0, v1) }
func (f *functions) Uniform3f(location int32, v0, v1, v2 float32) { f.uniform3f(location, v0, v1, v2) }

func (f *functions) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	f.uniform4f(location, v0, v1, v2, v3)
}

func (f *functions) Uniform1i(location int32, v0 int32)     { f.uniform1i(location, v0) }
func (f *functions) Uniform2i(location int32, v0, v1 int32) { f.uniform2i(location, v0, v1) }

func (f *functions) UniformMatrix3fv(location, count int32, transpose bool, value *float32) {
	f.uniformMatrix3fv(location, count, glBool(transpose), value)
}

func (f *functions) UniformMatrix4fv(location, count int32, transpose bool, value *float32) {
	f.uniformMatrix4fv(location, count, glBool(transpose), value)
}

func (f *functions) GenTextures(n int32, textures *uint32)    { f.genTextures(n, textures) }
func (f *functions) DeleteTextures(n int32, textures *uint32) { f.deleteTextures(n, textures) }
func (f *functions) BindTexture(target, texture uint32)       { f.bindTexture(target, texture) }
func (f *functions) ActiveTexture(texture uint32)             { f.activeTexture(texture) }

func (f *functions) TexParameteri(target, pname uint32, param int32) {
	f.texParameteri(target, pname, param)
}

func (f *functions) TexImage2D(target uint32, level, internalFormat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer) {
	f.texImage2D(target, level, internalFormat, width, height, border, format, xtype, pixels)
}

func (f *functions) TexSubImage2D(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	f.texSubImage2D(target, level, xoffset, yoffset, width, height, format, xtype, pixels)
}

func (f *functions) GenFramebuffers(n int32, framebuffers *uint32) {
	f.genFramebuffers(n, framebuffers)
}

func (f *functions) DeleteFramebuffers(n int32, framebuffers *uint32) {
	f.deleteFramebuffers(n, framebuffers)
}

func (f *functions) BindFramebuffer(target, framebuffer uint32) {
	f.bindFramebuffer(target, framebuffer)
}

func (f *functions) FramebufferTexture2D(target, attachment, texTarget, texture uint32, level int32) {
	f.framebufferTexture2D(target, attachment, texTarget, texture, level)
}

func (f *functions) FramebufferRenderbuffer(target, attachment, renderbufferTarget, renderbuffer uint32) {
	f.framebufferRb(target, attachment, renderbufferTarget, renderbuffer)
}

func (f *functions) CheckFramebufferStatus(target uint32) uint32 { return f.checkFbStatus(target) }

func (f *functions) GetFramebufferAttachmentParameteriv(target, attachment, pname uint32, params *int32) {
	f.getFbAttachParam(target, attachment, pname, params)
}

func (f *functions) DrawBuffers(n int32, bufs *uint32) { f.drawBuffers(n, bufs) }

func (f *functions) GenRenderbuffers(n int32, renderbuffers *uint32) {
	f.genRenderbuffers(n, renderbuffers)
}

func (f *functions) DeleteRenderbuffers(n int32, renderbuffers *uint32) {
	f.deleteRenderbuffers(n, renderbuffers)
}

func (f *functions) BindRenderbuffer(target, renderbuffer uint32) {
	f.bindRenderbuffer(target, renderbuffer)
}

func (f *functions) RenderbufferStorage(target, internalFormat uint32, width, height int32) {
	f.renderbufferStorage(target, internalFormat, width, height)
}

func infoLog(n int32, get func(size int32, length *int32, buf *byte)) string {
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	var length int32
	get(n, &length, &buf[0])
	return string(buf[:length])
}

func active(max int32, get func(bufSize int32, length, size *int32, xtype *uint32, name *byte)) (string, int32, uint32) {
	if max <= 0 {
		max = 256
	}
	buf := make([]byte, max)
	var length, size int32
	var xtype uint32
	get(max, &length, &size, &xtype, &buf[0])
	return string(buf[:length]), size, xtype
}
