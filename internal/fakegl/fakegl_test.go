package fakegl

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinyrange/canephora/gl"
)

func TestErrorFlagQueue(t *testing.T) {
	f := New("3.3.0 fakegl")
	f.Raise(gl.InvalidValue)
	f.Raise(gl.OutOfMemory)
	require.Equal(t, uint32(gl.InvalidValue), f.GetError())
	require.Equal(t, uint32(gl.OutOfMemory), f.GetError())
	require.Equal(t, uint32(gl.NoError), f.GetError())
}

func TestBindUnknownNameRaises(t *testing.T) {
	f := New("3.3.0 fakegl")
	f.BindBuffer(gl.ArrayBuffer, 42)
	require.Equal(t, uint32(gl.InvalidOperation), f.GetError())
	require.Zero(t, f.Binding(gl.ArrayBuffer))

	var name uint32
	f.GenBuffers(1, &name)
	f.BindBuffer(gl.ArrayBuffer, name)
	require.Equal(t, name, f.Binding(gl.ArrayBuffer))
	f.DeleteBuffers(1, &name)
	require.Zero(t, f.Binding(gl.ArrayBuffer), "deleting a bound buffer clears the binding")
}

func TestDefaultShadingLanguage(t *testing.T) {
	require.Equal(t, "OpenGL ES GLSL ES 1.00", New("OpenGL ES 2.0 fakegl").ShadingLanguage)
	require.Equal(t, "1.20", New("2.1 fakegl").ShadingLanguage)
}

func TestExtensionsIndexed(t *testing.T) {
	f := New("3.3.0 fakegl", "GL_A", "GL_B")
	var n int32
	f.GetIntegerv(gl.NumExtensions, &n)
	require.EqualValues(t, 2, n)
	require.Equal(t, "GL_B", f.GetStringi(gl.Extensions, 1))
	require.Empty(t, f.GetStringi(gl.Extensions, 2))
	require.Equal(t, uint32(gl.InvalidValue), f.GetError())
	require.Equal(t, 2, f.Called("GetStringi"))
}

func TestCompileErrorDirective(t *testing.T) {
	f := New("3.3.0 fakegl")
	name := f.CreateShader(gl.VertexShader)
	f.ShaderSource(name, []string{"void main() {}\n", "  #error unsupported\n"})
	f.CompileShader(name)

	var status int32
	f.GetShaderiv(name, gl.CompileStatus, &status)
	require.EqualValues(t, gl.False, status)
	require.Equal(t, "#error unsupported", f.GetShaderInfoLog(name))
}

func TestDeclarations(t *testing.T) {
	src := "uniform mediump vec4 u_color;\nuniform float u_weights[4];\nattribute vec2 a_position;\n"
	uniforms := declarations(src, "uniform")
	require.Len(t, uniforms, 2)
	require.Equal(t, "u_color", uniforms[0].Name)
	require.Equal(t, "u_weights[0]", uniforms[1].Name)
	require.EqualValues(t, 4, uniforms[1].Size)
}
