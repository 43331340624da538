package fakegl

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/tinyrange/canephora/gl"
)

// Shader is a shader object. A source containing a line starting with
// "#error" fails to compile, with that line as the info log.
type Shader struct {
	Kind     uint32
	Source   string
	Compiled bool
	Log      string
}

// Variable is an attribute or uniform declared by a linked program.
type Variable struct {
	Name     string
	Type     uint32
	Size     int32
	Location int32
}

// Program is a program object. Linking collects the attribute and uniform
// declarations of the attached shaders.
type Program struct {
	Shaders    []uint32
	Linked     bool
	Log        string
	Attributes []Variable
	Uniforms   []Variable
	// Values holds the last value written to each uniform location.
	Values map[int32][]float32
}

var glslTypes = map[string]uint32{
	"float":           gl.Float,
	"vec2":            gl.FloatVec2,
	"vec3":            gl.FloatVec3,
	"vec4":            gl.FloatVec4,
	"int":             gl.Int,
	"ivec2":           gl.IntVec2,
	"ivec3":           gl.IntVec3,
	"ivec4":           gl.IntVec4,
	"bool":            gl.Bool,
	"bvec2":           gl.BoolVec2,
	"bvec3":           gl.BoolVec3,
	"bvec4":           gl.BoolVec4,
	"mat2":            gl.FloatMat2,
	"mat3":            gl.FloatMat3,
	"mat4":            gl.FloatMat4,
	"mat2x3":          gl.FloatMat2x3,
	"sampler2D":       gl.Sampler2D,
	"sampler2DShadow": gl.Sampler2DShadow,
	"sampler3D":       gl.Sampler3D,
	"samplerCube":     gl.SamplerCube,
}

// declarations returns the variables declared with one of the qualifiers.
// Precision qualifiers are ignored; arrays are reported as name[0].
func declarations(source string, qualifiers ...string) []Variable {
	var out []Variable
	for _, line := range strings.Split(source, "\n") {
		fields := strings.Fields(strings.TrimSuffix(strings.TrimSpace(line), ";"))
		if len(fields) < 3 || !slices.Contains(qualifiers, fields[0]) {
			continue
		}
		fields = fields[1:]
		if p := fields[0]; p == "lowp" || p == "mediump" || p == "highp" {
			fields = fields[1:]
		}
		if len(fields) != 2 {
			continue
		}
		xtype, ok := glslTypes[fields[0]]
		if !ok {
			continue
		}
		name, size := fields[1], int32(1)
		if i := strings.IndexByte(name, '['); i > 0 && strings.HasSuffix(name, "]") {
			n, err := strconv.Atoi(name[i+1 : len(name)-1])
			if err != nil {
				continue
			}
			name, size = name[:i]+"[0]", int32(n)
		}
		out = append(out, Variable{Name: name, Type: xtype, Size: size})
	}
	return out
}

func (f *GL) CreateShader(xtype uint32) uint32 {
	f.record("CreateShader")
	if xtype != gl.VertexShader && xtype != gl.FragmentShader {
		f.Raise(gl.InvalidEnum)
		return 0
	}
	f.next++
	f.shaders[f.next] = &Shader{Kind: xtype}
	return f.next
}

func (f *GL) shader(name uint32) *Shader {
	s := f.shaders[name]
	if s == nil {
		f.Raise(gl.InvalidValue)
	}
	return s
}

func (f *GL) ShaderSource(shader uint32, lines []string) {
	f.record("ShaderSource")
	if s := f.shader(shader); s != nil {
		s.Source = strings.Join(lines, "")
	}
}

func (f *GL) CompileShader(shader uint32) {
	f.record("CompileShader")
	s := f.shader(shader)
	if s == nil {
		return
	}
	s.Compiled, s.Log = true, ""
	for _, line := range strings.Split(s.Source, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#error") {
			s.Compiled, s.Log = false, strings.TrimSpace(line)
			return
		}
	}
}

func (f *GL) GetShaderiv(shader, pname uint32, params *int32) {
	f.record("GetShaderiv")
	s := f.shader(shader)
	if s == nil {
		return
	}
	switch pname {
	case gl.CompileStatus:
		*params = boolean(s.Compiled)
	case gl.InfoLogLength:
		*params = logLength(s.Log)
	default:
		f.Raise(gl.InvalidEnum)
	}
}

func (f *GL) GetShaderInfoLog(shader uint32) string {
	f.record("GetShaderInfoLog")
	if s := f.shader(shader); s != nil {
		return s.Log
	}
	return ""
}

func (f *GL) DeleteShader(shader uint32) {
	f.record("DeleteShader")
	delete(f.shaders, shader)
}

func (f *GL) CreateProgram() uint32 {
	f.record("CreateProgram")
	f.next++
	f.programs[f.next] = &Program{Values: map[int32][]float32{}}
	return f.next
}

func (f *GL) prog(name uint32) *Program {
	p := f.programs[name]
	if p == nil {
		f.Raise(gl.InvalidValue)
	}
	return p
}

func (f *GL) AttachShader(program, shader uint32) {
	f.record("AttachShader")
	p, s := f.prog(program), f.shader(shader)
	if p == nil || s == nil {
		return
	}
	p.Shaders = append(p.Shaders, shader)
}

// LinkProgram needs one compiled shader of each kind.
func (f *GL) LinkProgram(program uint32) {
	f.record("LinkProgram")
	p := f.prog(program)
	if p == nil {
		return
	}
	p.Linked, p.Log, p.Attributes, p.Uniforms = false, "", nil, nil
	var vertex, fragment *Shader
	for _, name := range p.Shaders {
		s := f.shaders[name]
		switch {
		case s == nil:
			continue
		case !s.Compiled:
			p.Log = fmt.Sprintf("error: shader %d is not compiled", name)
			return
		case s.Kind == gl.VertexShader:
			vertex = s
		case s.Kind == gl.FragmentShader:
			fragment = s
		}
	}
	if vertex == nil || fragment == nil {
		p.Log = "error: program needs a vertex and a fragment shader"
		return
	}

	for i, v := range declarations(vertex.Source, "attribute", "in") {
		v.Location = int32(i)
		p.Attributes = append(p.Attributes, v)
	}
	seen := map[string]bool{}
	for _, s := range []*Shader{vertex, fragment} {
		for _, v := range declarations(s.Source, "uniform") {
			if seen[v.Name] {
				continue
			}
			seen[v.Name] = true
			v.Location = int32(len(p.Uniforms))
			p.Uniforms = append(p.Uniforms, v)
		}
	}
	p.Linked = true
}

func (f *GL) GetProgramiv(program, pname uint32, params *int32) {
	f.record("GetProgramiv")
	p := f.prog(program)
	if p == nil {
		return
	}
	switch pname {
	case gl.LinkStatus:
		*params = boolean(p.Linked)
	case gl.InfoLogLength:
		*params = logLength(p.Log)
	case gl.ActiveAttributes:
		*params = int32(len(p.Attributes))
	case gl.ActiveUniforms:
		*params = int32(len(p.Uniforms))
	default:
		f.Raise(gl.InvalidEnum)
	}
}

func (f *GL) GetProgramInfoLog(program uint32) string {
	f.record("GetProgramInfoLog")
	if p := f.prog(program); p != nil {
		return p.Log
	}
	return ""
}

func (f *GL) DeleteProgram(program uint32) {
	f.record("DeleteProgram")
	delete(f.programs, program)
	if f.program == program {
		f.program = 0
	}
}

func (f *GL) UseProgram(program uint32) {
	f.record("UseProgram")
	if p, ok := f.programs[program]; program != 0 && (!ok || !p.Linked) {
		f.Raise(gl.InvalidOperation)
		return
	}
	f.program = program
}

func active(vars []Variable, index uint32, f *GL) (string, int32, uint32) {
	if int(index) >= len(vars) {
		f.Raise(gl.InvalidValue)
		return "", 0, 0
	}
	v := vars[index]
	return v.Name, v.Size, v.Type
}

func (f *GL) GetActiveAttrib(program, index uint32) (string, int32, uint32) {
	f.record("GetActiveAttrib")
	if p := f.prog(program); p != nil {
		return active(p.Attributes, index, f)
	}
	return "", 0, 0
}

func (f *GL) GetActiveUniform(program, index uint32) (string, int32, uint32) {
	f.record("GetActiveUniform")
	if p := f.prog(program); p != nil {
		return active(p.Uniforms, index, f)
	}
	return "", 0, 0
}

func (f *GL) location(vars []Variable, name string) int32 {
	if f.Hidden[name] {
		return -1
	}
	for _, v := range vars {
		if v.Name == name {
			return v.Location
		}
	}
	return -1
}

func (f *GL) GetAttribLocation(program uint32, name string) int32 {
	f.record("GetAttribLocation")
	if p := f.prog(program); p != nil {
		return f.location(p.Attributes, name)
	}
	return -1
}

func (f *GL) GetUniformLocation(program uint32, name string) int32 {
	f.record("GetUniformLocation")
	if p := f.prog(program); p != nil {
		return f.location(p.Uniforms, name)
	}
	return -1
}

// uniform stores v for location of the current program.
func (f *GL) uniform(name string, location int32, v ...float32) {
	f.record(name)
	p := f.programs[f.program]
	if p == nil {
		f.Raise(gl.InvalidOperation)
		return
	}
	if location == -1 {
		return
	}
	p.Values[location] = v
}

func (f *GL) Uniform1f(location int32, v0 float32)         { f.uniform("Uniform1f", location, v0) }
func (f *GL) Uniform2f(location int32, v0, v1 float32)     { f.uniform("Uniform2f", location, v0, v1) }
func (f *GL) Uniform3f(location int32, v0, v1, v2 float32) { f.uniform("Uniform3f", location, v0, v1, v2) }
func (f *GL) Uniform4f(location int32, v0, v1, v2, v3 float32) {
	f.uniform("Uniform4f", location, v0, v1, v2, v3)
}
func (f *GL) Uniform1i(location int32, v0 int32) { f.uniform("Uniform1i", location, float32(v0)) }
func (f *GL) Uniform2i(location int32, v0, v1 int32) {
	f.uniform("Uniform2i", location, float32(v0), float32(v1))
}

func (f *GL) UniformMatrix3fv(location, count int32, transpose bool, value *float32) {
	f.uniform("UniformMatrix3fv", location, unsafeFloats(value, 9*int(count))...)
}

func (f *GL) UniformMatrix4fv(location, count int32, transpose bool, value *float32) {
	f.uniform("UniformMatrix4fv", location, unsafeFloats(value, 16*int(count))...)
}

func boolean(b bool) int32 {
	if b {
		return gl.True
	}
	return gl.False
}

// logLength counts the NUL terminator, as drivers do.
func logLength(log string) int32 {
	if log == "" {
		return 0
	}
	return int32(len(log) + 1)
}
