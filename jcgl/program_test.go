package jcgl

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinyrange/canephora/gl"
)

const (
	testVertexShader = `#version 120
attribute vec3 v_position;
attribute vec2 v_uv;
uniform mat4 m_projection;
uniform mat3 m_normal;
varying vec2 f_uv;
void main() {
	f_uv = v_uv;
	gl_Position = m_projection * vec4(v_position, 1.0);
}`
	testFragmentShader = `#version 120
uniform sampler2D t_albedo;
uniform vec4 f_color;
uniform float f_alpha;
uniform vec2 f_offset;
uniform ivec2 f_cell;
uniform vec3 f_tint;
uniform float f_weights[4];
varying vec2 f_uv;
void main() {
	gl_FragColor = texture2D(t_albedo, f_uv) * f_color;
}`
)

func linkedProgram(t *testing.T, c *Context) *Program {
	t.Helper()
	vs, err := c.VertexShaderCompile("quad.vert", strings.NewReader(testVertexShader))
	require.NoError(t, err)
	fs, err := c.FragmentShaderCompile("quad.frag", strings.NewReader(testFragmentShader))
	require.NoError(t, err)
	p, err := c.ProgramCreate("quad")
	require.NoError(t, err)
	require.NoError(t, c.ProgramAttach(p, vs))
	require.NoError(t, c.ProgramAttach(p, fs))
	require.NoError(t, c.ProgramLink(p))
	require.NoError(t, c.ShaderDelete(vs))
	require.NoError(t, c.ShaderDelete(fs))
	return p
}

func TestShaderCompile(t *testing.T) {
	c, f := newContext(t, versionGL3)
	s, err := c.ShaderCompile(ShaderVertex, "quad.vert", strings.NewReader("void main() {}\nint x;"))
	require.NoError(t, err)
	require.Equal(t, ShaderVertex, s.Kind())
	require.Equal(t, "void main() {}\nint x;\n", f.Shader(s.Name()).Source, "every line reaches the driver newline terminated")
}

func TestShaderCompileError(t *testing.T) {
	c, f := newContext(t, versionGL3)
	_, err := c.FragmentShaderCompile("broken.frag", strings.NewReader("void main() {\n#error unexpected token\n}"))
	var compile *CompileError
	require.True(t, errors.As(err, &compile))
	require.Equal(t, "broken.frag", compile.Name)
	require.Equal(t, "#error unexpected token", compile.Log)
	require.Equal(t, 1, f.Called("DeleteShader"))

	_, err = c.ShaderCompile(ShaderVertex, "nil", nil)
	require.ErrorIs(t, err, ErrNilArgument)
}

func TestProgramLinkError(t *testing.T) {
	c, _ := newContext(t, versionGL3)
	vs, err := c.VertexShaderCompile("quad.vert", strings.NewReader(testVertexShader))
	require.NoError(t, err)
	p, err := c.ProgramCreate("vertex-only")
	require.NoError(t, err)
	require.NoError(t, c.ProgramAttach(p, vs))

	err = c.ProgramLink(p)
	var compile *CompileError
	require.True(t, errors.As(err, &compile))
	require.Equal(t, "vertex-only", compile.Name)
	require.Contains(t, compile.Log, "fragment")
	require.False(t, p.Linked())
}

func TestProgramAttributesAndUniforms(t *testing.T) {
	c, f := newContext(t, versionGL3)
	f.Hidden["m_normal"] = true
	p := linkedProgram(t, c)

	attrs, err := c.ProgramAttributes(p)
	require.NoError(t, err)
	require.Len(t, attrs, 2)
	require.Equal(t, TypeFloatVector3, attrs["v_position"].Type())
	require.Equal(t, TypeFloatVector2, attrs["v_uv"].Type())
	require.Equal(t, 1, attrs["v_uv"].Location())

	uniforms, err := c.ProgramUniforms(p)
	require.NoError(t, err)
	require.NotContains(t, uniforms, "m_normal", "uniforms without a location are skipped")
	require.Equal(t, TypeFloatMatrix4, uniforms["m_projection"].Type())
	require.Equal(t, TypeSampler2D, uniforms["t_albedo"].Type())
	require.Equal(t, 4, uniforms["f_weights[0]"].Size())
	require.Same(t, p, uniforms["f_color"].Program())
}

func TestProgramSkipsUnsupportedTypes(t *testing.T) {
	c, _ := newContext(t, versionGL3)
	vs, err := c.VertexShaderCompile("skin.vert", strings.NewReader("#version 330\nin vec3 v_position;\nuniform mat2x3 m_skin;\nvoid main() {}"))
	require.NoError(t, err)
	fs, err := c.FragmentShaderCompile("skin.frag", strings.NewReader("#version 330\nuniform vec4 f_color;\nvoid main() {}"))
	require.NoError(t, err)
	p, err := c.ProgramCreate("skin")
	require.NoError(t, err)
	require.NoError(t, c.ProgramAttach(p, vs))
	require.NoError(t, c.ProgramAttach(p, fs))
	require.NoError(t, c.ProgramLink(p))

	uniforms, err := c.ProgramUniforms(p)
	require.NoError(t, err)
	require.NotContains(t, uniforms, "m_skin")
	require.Contains(t, uniforms, "f_color")

	_, ok := LookupType(gl.FloatMat2x3)
	require.False(t, ok)
	typ, ok := LookupType(gl.FloatVec4)
	require.True(t, ok)
	require.Equal(t, TypeFloatVector4, typ)
}

func TestProgramActivation(t *testing.T) {
	c, _ := newContext(t, versionGL3)
	p := linkedProgram(t, c)

	active, err := c.ProgramIsActive(p)
	require.NoError(t, err)
	require.False(t, active)

	require.NoError(t, c.ProgramActivate(p))
	active, err = c.ProgramIsActive(p)
	require.NoError(t, err)
	require.True(t, active)

	require.NoError(t, c.ProgramDeactivate())
	active, err = c.ProgramIsActive(p)
	require.NoError(t, err)
	require.False(t, active)
}

func TestUniformChecks(t *testing.T) {
	c, f := newContext(t, versionGL3)
	p := linkedProgram(t, c)
	uniforms, err := c.ProgramUniforms(p)
	require.NoError(t, err)
	color := uniforms["f_color"]

	require.ErrorIs(t, c.ProgramPutUniformVector4f(nil, [4]float32{}), ErrNilArgument)
	require.ErrorIs(t, c.ProgramPutUniformVector4f(color, [4]float32{1, 0, 0, 1}), ErrNotActive)

	require.NoError(t, c.ProgramActivate(p))
	require.ErrorIs(t, c.ProgramPutUniformFloat(color, 1), ErrTypeMismatch)
	require.NoError(t, c.ProgramPutUniformVector4f(color, [4]float32{1, 0.5, 0, 1}))
	require.Equal(t, []float32{1, 0.5, 0, 1}, f.Program(p.Name()).Values[int32(color.Location())])

	require.NoError(t, c.ProgramPutUniformFloat(uniforms["f_alpha"], 0.25))
	require.NoError(t, c.ProgramPutUniformVector2f(uniforms["f_offset"], [2]float32{1, 2}))
	require.NoError(t, c.ProgramPutUniformVector2i(uniforms["f_cell"], [2]int32{3, 4}))
	require.NoError(t, c.ProgramPutUniformVector3f(uniforms["f_tint"], [3]float32{1, 1, 1}))
	require.NoError(t, c.ProgramPutUniformMatrix4x4f(uniforms["m_projection"], [16]float32{0: 1, 5: 1, 10: 1, 15: 1}))
	require.NoError(t, c.ProgramPutUniformTextureUnit(uniforms["t_albedo"], c.TextureUnits()[1]))
	require.Equal(t, []float32{1}, f.Program(p.Name()).Values[int32(uniforms["t_albedo"].Location())])
	require.ErrorIs(t, c.ProgramPutUniformTextureUnit(uniforms["t_albedo"], TextureUnit{index: 40}), ErrOutOfRange)
	require.ErrorIs(t, c.ProgramPutUniformMatrix3x3f(uniforms["m_projection"], [9]float32{}), ErrTypeMismatch)

	require.NoError(t, c.ProgramDelete(p))
	f.ResetCalls()
	require.ErrorIs(t, c.ProgramPutUniformVector4f(color, [4]float32{}), ErrDeleted)
	require.Empty(t, f.Calls())
}

func TestBindVertexAttribute(t *testing.T) {
	c, f := newContext(t, versionGL3)
	p := linkedProgram(t, c)
	attrs, err := c.ProgramAttributes(p)
	require.NoError(t, err)

	d, err := NewArrayDescriptor(
		ArrayAttribute{Name: "position", Type: ScalarFloat, Elements: 3},
		ArrayAttribute{Name: "uv", Type: ScalarFloat, Elements: 2},
	)
	require.NoError(t, err)
	b, err := c.ArrayBufferAllocate(4, d, UsageStaticDraw)
	require.NoError(t, err)

	require.ErrorIs(t, c.ArrayBufferBindVertexAttribute(b, "uv", attrs["v_uv"]), ErrNotBound)
	require.NoError(t, c.ArrayBufferBind(b))
	require.ErrorIs(t, c.ArrayBufferBindVertexAttribute(b, "normal", attrs["v_uv"]), ErrForeignAttribute)
	require.ErrorIs(t, c.ArrayBufferBindVertexAttribute(b, "position", attrs["v_uv"]), ErrTypeMismatch)
	require.ErrorIs(t, c.ArrayBufferBindVertexAttribute(b, "uv", nil), ErrNilArgument)

	require.NoError(t, c.ArrayBufferBindVertexAttribute(b, "uv", attrs["v_uv"]))
	ptr := f.Pointer(uint32(attrs["v_uv"].Location()))
	require.True(t, ptr.Enabled)
	require.Equal(t, b.Name(), ptr.Buffer)
	require.Equal(t, int32(2), ptr.Size)
	require.Equal(t, uint32(gl.Float), ptr.Type)
	require.Equal(t, int32(20), ptr.Stride)
	require.Equal(t, uintptr(12), ptr.Offset)

	require.NoError(t, c.ArrayBufferUnbindVertexAttribute(b, "uv", attrs["v_uv"]))
	require.False(t, ptr.Enabled)

	require.NoError(t, c.ProgramDelete(p))
	require.ErrorIs(t, c.ArrayBufferBindVertexAttribute(b, "uv", attrs["v_uv"]), ErrDeleted)
}
