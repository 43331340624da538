package jcgl

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinyrange/canephora/gl"
)

func roundTrip[T ~int](t *testing.T, tbl *enumTable[T]) {
	t.Helper()
	seen := map[uint32]T{}
	for _, v := range tbl.values() {
		code := tbl.toGL(v)
		prev, dup := seen[code]
		require.Falsef(t, dup, "%s: %v and %v share 0x%04x", tbl.what, prev, v, code)
		seen[code] = v
		require.Equal(t, v, tbl.fromGL(code))
	}
}

func TestEnumTablesRoundTrip(t *testing.T) {
	t.Run("blend equation", func(t *testing.T) { roundTrip(t, blendEquations) })
	t.Run("blend function", func(t *testing.T) { roundTrip(t, blendFunctions) })
	t.Run("depth function", func(t *testing.T) { roundTrip(t, depthFunctions) })
	t.Run("stencil function", func(t *testing.T) { roundTrip(t, stencilFunctions) })
	t.Run("stencil operation", func(t *testing.T) { roundTrip(t, stencilOperations) })
	t.Run("face selection", func(t *testing.T) { roundTrip(t, faceSelections) })
	t.Run("winding order", func(t *testing.T) { roundTrip(t, faceWindingOrders) })
	t.Run("primitive", func(t *testing.T) { roundTrip(t, primitives) })
	t.Run("scalar type", func(t *testing.T) { roundTrip(t, scalarTypes) })
	t.Run("unsigned type", func(t *testing.T) { roundTrip(t, unsignedTypes) })
	t.Run("glsl type", func(t *testing.T) { roundTrip(t, glslTypes) })
	t.Run("texture filter", func(t *testing.T) { roundTrip(t, textureFilters) })
	t.Run("texture wrap", func(t *testing.T) { roundTrip(t, textureWraps) })
	t.Run("usage hint", func(t *testing.T) { roundTrip(t, usageHints) })
	t.Run("shader kind", func(t *testing.T) { roundTrip(t, shaderKinds) })
	t.Run("renderbuffer type", func(t *testing.T) { roundTrip(t, renderbufferTypes) })
}

func TestEnumFromGLPanicsOnUnknownValue(t *testing.T) {
	require.Panics(t, func() { BlendEquationFromGL(0xdead) })
	require.Panics(t, func() { TypeFromGL(gl.FloatMat2x3) })
	require.Panics(t, func() { PrimitiveFromGL(0xdead) })
}

func TestEnumNames(t *testing.T) {
	require.Equal(t, "reverse-subtract", BlendReverseSubtract.String())
	require.Equal(t, "sampler2D", TypeSampler2D.String())
	require.Equal(t, uint32(gl.FuncReverseSubtract), BlendReverseSubtract.ToGL())
	require.Equal(t, BlendSourceAlphaSaturate, BlendFunctionFromGL(gl.SrcAlphaSaturate))
}

func TestTextureTypeFormats(t *testing.T) {
	format, xtype := TextureRGBA8888.Format()
	require.Equal(t, uint32(gl.RGBA), format)
	require.Equal(t, uint32(gl.UnsignedByte), xtype)
	require.Equal(t, 4, TextureRGBA8888.BytesPerPixel())

	format, xtype = TextureRGB565.Format()
	require.Equal(t, uint32(gl.RGB), format)
	require.Equal(t, uint32(gl.UnsignedShort565), xtype)
	require.Equal(t, 2, TextureRGB565.BytesPerPixel())

	require.Equal(t, uint32(gl.R8), TextureR8.InternalFormat())
	require.Len(t, TextureTypes(), int(textureTypeCount))
}

func TestTypeConvertible(t *testing.T) {
	tests := []struct {
		typ      Type
		scalar   ScalarType
		elements int
		want     bool
	}{
		{TypeFloatVector3, ScalarFloat, 3, true},
		{TypeFloatVector3, ScalarFloat, 2, false},
		{TypeFloatVector2, ScalarInt, 2, false},
		{TypeIntegerVector4, ScalarUnsignedByte, 4, true},
		{TypeInteger, ScalarFloat, 1, false},
		{TypeFloatMatrix4, ScalarFloat, 4, false},
		{TypeSampler2D, ScalarInt, 1, false},
	}
	for _, tt := range tests {
		require.Equalf(t, tt.want, tt.typ.Convertible(tt.scalar, tt.elements), "%s <- %d x %s", tt.typ, tt.elements, tt.scalar)
	}
}

func TestIndexTypeFor(t *testing.T) {
	require.Equal(t, UnsignedByte, indexTypeFor(3))
	require.Equal(t, UnsignedByte, indexTypeFor(0xff))
	require.Equal(t, UnsignedShort, indexTypeFor(0x100))
	require.Equal(t, UnsignedShort, indexTypeFor(0xffff))
	require.Equal(t, UnsignedInt, indexTypeFor(0x10000))
}
