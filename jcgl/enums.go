package jcgl

import (
	"fmt"

	"github.com/tinyrange/canephora/gl"
)

// enumTable is a two-way mapping between a domain enumeration and GL
// constants. The forward table is indexed by the enumeration value; the
// reverse map is built from it once at package initialisation.
type enumTable[T ~int] struct {
	what  string
	glv   []uint32
	names []string
	rev   map[uint32]T
}

func newEnumTable[T ~int](what string, glv []uint32, names []string) *enumTable[T] {
	if len(glv) != len(names) {
		panic(fmt.Sprintf("jcgl: %s: %d constants for %d names", what, len(glv), len(names)))
	}
	t := &enumTable[T]{what: what, glv: glv, names: names, rev: make(map[uint32]T, len(glv))}
	for i, v := range glv {
		if prev, ok := t.rev[v]; ok {
			panic(fmt.Sprintf("jcgl: %s: %s and %s both map to 0x%04x", what, names[prev], names[i], v))
		}
		t.rev[v] = T(i)
	}
	return t
}

func (t *enumTable[T]) toGL(e T) uint32 {
	if int(e) < 0 || int(e) >= len(t.glv) {
		panic(fmt.Sprintf("jcgl: invalid %s %d", t.what, int(e)))
	}
	return t.glv[e]
}

// fromGL panics on values outside the table.
func (t *enumTable[T]) fromGL(v uint32) T {
	e, ok := t.rev[v]
	if !ok {
		panic(fmt.Sprintf("jcgl: unrecognized %s 0x%04x", t.what, v))
	}
	return e
}

func (t *enumTable[T]) lookup(v uint32) (T, bool) {
	e, ok := t.rev[v]
	return e, ok
}

func (t *enumTable[T]) string(e T) string {
	if int(e) < 0 || int(e) >= len(t.names) {
		return fmt.Sprintf("%s(%d)", t.what, int(e))
	}
	return t.names[e]
}

func (t *enumTable[T]) values() []T {
	out := make([]T, len(t.glv))
	for i := range out {
		out[i] = T(i)
	}
	return out
}

// BlendEquation selects how source and destination terms are combined.
type BlendEquation int

const (
	BlendAdd BlendEquation = iota
	BlendMaximum
	BlendMinimum
	BlendReverseSubtract
	BlendSubtract
	blendEquationCount
)

var (
	blendEquationsGL = [blendEquationCount]uint32{
		BlendAdd:             gl.FuncAdd,
		BlendMaximum:         gl.Max,
		BlendMinimum:         gl.Min,
		BlendReverseSubtract: gl.FuncReverseSubtract,
		BlendSubtract:        gl.FuncSubtract,
	}
	blendEquationsNames = [blendEquationCount]string{"add", "maximum", "minimum", "reverse-subtract", "subtract"}
	blendEquations      = newEnumTable[BlendEquation]("blend equation", blendEquationsGL[:], blendEquationsNames[:])
)

func (e BlendEquation) ToGL() uint32  { return blendEquations.toGL(e) }
func (e BlendEquation) String() string { return blendEquations.string(e) }

// BlendEquationFromGL panics if v is not a blend equation.
func BlendEquationFromGL(v uint32) BlendEquation { return blendEquations.fromGL(v) }

// BlendFunction is a blending factor.
type BlendFunction int

const (
	BlendConstantAlpha BlendFunction = iota
	BlendConstantColor
	BlendDestinationAlpha
	BlendDestinationColor
	BlendOne
	BlendOneMinusConstantAlpha
	BlendOneMinusConstantColor
	BlendOneMinusDestinationAlpha
	BlendOneMinusDestinationColor
	BlendOneMinusSourceAlpha
	BlendOneMinusSourceColor
	BlendSourceAlpha
	// BlendSourceAlphaSaturate is only valid as a source factor.
	BlendSourceAlphaSaturate
	BlendSourceColor
	BlendZero
	blendFunctionCount
)

var (
	blendFunctionsGL = [blendFunctionCount]uint32{
		BlendConstantAlpha:            gl.ConstantAlpha,
		BlendConstantColor:            gl.ConstantColor,
		BlendDestinationAlpha:         gl.DstAlpha,
		BlendDestinationColor:         gl.DstColor,
		BlendOne:                      gl.One,
		BlendOneMinusConstantAlpha:    gl.OneMinusConstantAlpha,
		BlendOneMinusConstantColor:    gl.OneMinusConstantColor,
		BlendOneMinusDestinationAlpha: gl.OneMinusDstAlpha,
		BlendOneMinusDestinationColor: gl.OneMinusDstColor,
		BlendOneMinusSourceAlpha:      gl.OneMinusSrcAlpha,
		BlendOneMinusSourceColor:      gl.OneMinusSrcColor,
		BlendSourceAlpha:              gl.SrcAlpha,
		BlendSourceAlphaSaturate:      gl.SrcAlphaSaturate,
		BlendSourceColor:              gl.SrcColor,
		BlendZero:                     gl.Zero,
	}
	blendFunctionsNames = [blendFunctionCount]string{
		"constant-alpha", "constant-color", "destination-alpha", "destination-color", "one",
		"one-minus-constant-alpha", "one-minus-constant-color", "one-minus-destination-alpha",
		"one-minus-destination-color", "one-minus-source-alpha", "one-minus-source-color",
		"source-alpha", "source-alpha-saturate", "source-color", "zero",
	}
	blendFunctions = newEnumTable[BlendFunction]("blend function", blendFunctionsGL[:], blendFunctionsNames[:])
)

func (f BlendFunction) ToGL() uint32  { return blendFunctions.toGL(f) }
func (f BlendFunction) String() string { return blendFunctions.string(f) }

func BlendFunctionFromGL(v uint32) BlendFunction { return blendFunctions.fromGL(v) }

// DepthFunction is the comparison used by the depth test.
type DepthFunction int

const (
	DepthAlways DepthFunction = iota
	DepthEqual
	DepthGreaterThan
	DepthGreaterThanOrEqual
	DepthLessThan
	DepthLessThanOrEqual
	DepthNever
	DepthNotEqual
	depthFunctionCount
)

var (
	depthFunctionsGL = [depthFunctionCount]uint32{
		DepthAlways:             gl.Always,
		DepthEqual:              gl.Equal,
		DepthGreaterThan:        gl.Greater,
		DepthGreaterThanOrEqual: gl.Gequal,
		DepthLessThan:           gl.Less,
		DepthLessThanOrEqual:    gl.Lequal,
		DepthNever:              gl.Never,
		DepthNotEqual:           gl.Notequal,
	}
	depthFunctionsNames = [depthFunctionCount]string{"always", "equal", "greater", "greater-or-equal", "less", "less-or-equal", "never", "not-equal"}
	depthFunctions      = newEnumTable[DepthFunction]("depth function", depthFunctionsGL[:], depthFunctionsNames[:])
)

func (f DepthFunction) ToGL() uint32  { return depthFunctions.toGL(f) }
func (f DepthFunction) String() string { return depthFunctions.string(f) }

func DepthFunctionFromGL(v uint32) DepthFunction { return depthFunctions.fromGL(v) }

// StencilFunction is the comparison used by the stencil test.
type StencilFunction int

const (
	StencilAlways StencilFunction = iota
	StencilEqual
	StencilGreaterThan
	StencilGreaterThanOrEqual
	StencilLessThan
	StencilLessThanOrEqual
	StencilNever
	StencilNotEqual
	stencilFunctionCount
)

var (
	stencilFunctionsGL = [stencilFunctionCount]uint32{
		StencilAlways:             gl.Always,
		StencilEqual:              gl.Equal,
		StencilGreaterThan:        gl.Greater,
		StencilGreaterThanOrEqual: gl.Gequal,
		StencilLessThan:           gl.Less,
		StencilLessThanOrEqual:    gl.Lequal,
		StencilNever:              gl.Never,
		StencilNotEqual:           gl.Notequal,
	}
	stencilFunctionsNames = [stencilFunctionCount]string{"always", "equal", "greater", "greater-or-equal", "less", "less-or-equal", "never", "not-equal"}
	stencilFunctions      = newEnumTable[StencilFunction]("stencil function", stencilFunctionsGL[:], stencilFunctionsNames[:])
)

func (f StencilFunction) ToGL() uint32  { return stencilFunctions.toGL(f) }
func (f StencilFunction) String() string { return stencilFunctions.string(f) }

func StencilFunctionFromGL(v uint32) StencilFunction { return stencilFunctions.fromGL(v) }

// StencilOperation is applied to the stencil buffer after a test.
type StencilOperation int

const (
	StencilOpDecrement StencilOperation = iota
	StencilOpDecrementWrap
	StencilOpIncrement
	StencilOpIncrementWrap
	StencilOpInvert
	StencilOpKeep
	StencilOpReplace
	StencilOpZero
	stencilOperationCount
)

var (
	stencilOperationsGL = [stencilOperationCount]uint32{
		StencilOpDecrement:     gl.Decr,
		StencilOpDecrementWrap: gl.DecrWrap,
		StencilOpIncrement:     gl.Incr,
		StencilOpIncrementWrap: gl.IncrWrap,
		StencilOpInvert:        gl.Invert,
		StencilOpKeep:          gl.Keep,
		StencilOpReplace:       gl.Replace,
		StencilOpZero:          gl.Zero,
	}
	stencilOperationsNames = [stencilOperationCount]string{"decrement", "decrement-wrap", "increment", "increment-wrap", "invert", "keep", "replace", "zero"}
	stencilOperations      = newEnumTable[StencilOperation]("stencil operation", stencilOperationsGL[:], stencilOperationsNames[:])
)

func (o StencilOperation) ToGL() uint32  { return stencilOperations.toGL(o) }
func (o StencilOperation) String() string { return stencilOperations.string(o) }

func StencilOperationFromGL(v uint32) StencilOperation { return stencilOperations.fromGL(v) }

// FaceSelection picks the polygon faces an operation applies to.
type FaceSelection int

const (
	FaceBack FaceSelection = iota
	FaceFront
	FaceFrontAndBack
	faceSelectionCount
)

var (
	faceSelectionsGL = [faceSelectionCount]uint32{
		FaceBack:         gl.Back,
		FaceFront:        gl.Front,
		FaceFrontAndBack: gl.FrontAndBack,
	}
	faceSelectionsNames = [faceSelectionCount]string{"back", "front", "front-and-back"}
	faceSelections      = newEnumTable[FaceSelection]("face selection", faceSelectionsGL[:], faceSelectionsNames[:])
)

func (f FaceSelection) ToGL() uint32  { return faceSelections.toGL(f) }
func (f FaceSelection) String() string { return faceSelections.string(f) }

func FaceSelectionFromGL(v uint32) FaceSelection { return faceSelections.fromGL(v) }

// FaceWindingOrder defines which winding is front facing.
type FaceWindingOrder int

const (
	WindingClockwise FaceWindingOrder = iota
	WindingCounterClockwise
	faceWindingOrderCount
)

var (
	faceWindingOrdersGL = [faceWindingOrderCount]uint32{
		WindingClockwise:        gl.CW,
		WindingCounterClockwise: gl.CCW,
	}
	faceWindingOrdersNames = [faceWindingOrderCount]string{"clockwise", "counter-clockwise"}
	faceWindingOrders      = newEnumTable[FaceWindingOrder]("face winding order", faceWindingOrdersGL[:], faceWindingOrdersNames[:])
)

func (o FaceWindingOrder) ToGL() uint32  { return faceWindingOrders.toGL(o) }
func (o FaceWindingOrder) String() string { return faceWindingOrders.string(o) }

func FaceWindingOrderFromGL(v uint32) FaceWindingOrder { return faceWindingOrders.fromGL(v) }

// Primitive is the kind of geometry assembled by a draw call.
type Primitive int

const (
	PrimitiveLines Primitive = iota
	PrimitiveLineLoop
	PrimitivePoints
	PrimitiveTriangles
	PrimitiveTriangleStrip
	primitiveCount
)

var (
	primitivesGL = [primitiveCount]uint32{
		PrimitiveLines:         gl.Lines,
		PrimitiveLineLoop:      gl.LineLoop,
		PrimitivePoints:        gl.Points,
		PrimitiveTriangles:     gl.Triangles,
		PrimitiveTriangleStrip: gl.TriangleStrip,
	}
	primitivesNames = [primitiveCount]string{"lines", "line-loop", "points", "triangles", "triangle-strip"}
	primitives      = newEnumTable[Primitive]("primitive", primitivesGL[:], primitivesNames[:])
)

func (p Primitive) ToGL() uint32  { return primitives.toGL(p) }
func (p Primitive) String() string { return primitives.string(p) }

func PrimitiveFromGL(v uint32) Primitive { return primitives.fromGL(v) }

// ScalarType is the component type of an array buffer attribute.
type ScalarType int

const (
	ScalarByte ScalarType = iota
	ScalarFloat
	ScalarInt
	ScalarShort
	ScalarUnsignedByte
	ScalarUnsignedInt
	ScalarUnsignedShort
	scalarTypeCount
)

var (
	scalarTypesGL = [scalarTypeCount]uint32{
		ScalarByte:          gl.Byte,
		ScalarFloat:         gl.Float,
		ScalarInt:           gl.Int,
		ScalarShort:         gl.Short,
		ScalarUnsignedByte:  gl.UnsignedByte,
		ScalarUnsignedInt:   gl.UnsignedInt,
		ScalarUnsignedShort: gl.UnsignedShort,
	}
	scalarTypesNames = [scalarTypeCount]string{"byte", "float", "int", "short", "unsigned-byte", "unsigned-int", "unsigned-short"}
	scalarTypes      = newEnumTable[ScalarType]("scalar type", scalarTypesGL[:], scalarTypesNames[:])
)

var scalarSizes = [scalarTypeCount]int{
	ScalarByte:          1,
	ScalarFloat:         4,
	ScalarInt:           4,
	ScalarShort:         2,
	ScalarUnsignedByte:  1,
	ScalarUnsignedInt:   4,
	ScalarUnsignedShort: 2,
}

func (s ScalarType) ToGL() uint32  { return scalarTypes.toGL(s) }
func (s ScalarType) String() string { return scalarTypes.string(s) }

// Size is the size of one component in bytes.
func (s ScalarType) Size() int { return scalarSizes[s] }

func ScalarTypeFromGL(v uint32) ScalarType { return scalarTypes.fromGL(v) }

// UnsignedType is the element type of an index buffer.
type UnsignedType int

const (
	UnsignedByte UnsignedType = iota
	UnsignedShort
	UnsignedInt
	unsignedTypeCount
)

var (
	unsignedTypesGL = [unsignedTypeCount]uint32{
		UnsignedByte:  gl.UnsignedByte,
		UnsignedShort: gl.UnsignedShort,
		UnsignedInt:   gl.UnsignedInt,
	}
	unsignedTypesNames = [unsignedTypeCount]string{"unsigned-byte", "unsigned-short", "unsigned-int"}
	unsignedTypes      = newEnumTable[UnsignedType]("unsigned type", unsignedTypesGL[:], unsignedTypesNames[:])
)

var unsignedSizes = [unsignedTypeCount]int{UnsignedByte: 1, UnsignedShort: 2, UnsignedInt: 4}

func (u UnsignedType) ToGL() uint32  { return unsignedTypes.toGL(u) }
func (u UnsignedType) String() string { return unsignedTypes.string(u) }
func (u UnsignedType) Size() int      { return unsignedSizes[u] }

func UnsignedTypeFromGL(v uint32) UnsignedType { return unsignedTypes.fromGL(v) }

// Type is a GLSL attribute or uniform type.
type Type int

const (
	TypeBool Type = iota
	TypeBoolVector2
	TypeBoolVector3
	TypeBoolVector4
	TypeFloat
	TypeFloatMatrix2
	TypeFloatMatrix3
	TypeFloatMatrix4
	TypeFloatVector2
	TypeFloatVector3
	TypeFloatVector4
	TypeInteger
	TypeIntegerVector2
	TypeIntegerVector3
	TypeIntegerVector4
	TypeSampler2D
	TypeSampler2DShadow
	TypeSampler3D
	TypeSamplerCube
	typeCount
)

var (
	glslTypesGL = [typeCount]uint32{
		TypeBool:            gl.Bool,
		TypeBoolVector2:     gl.BoolVec2,
		TypeBoolVector3:     gl.BoolVec3,
		TypeBoolVector4:     gl.BoolVec4,
		TypeFloat:           gl.Float,
		TypeFloatMatrix2:    gl.FloatMat2,
		TypeFloatMatrix3:    gl.FloatMat3,
		TypeFloatMatrix4:    gl.FloatMat4,
		TypeFloatVector2:    gl.FloatVec2,
		TypeFloatVector3:    gl.FloatVec3,
		TypeFloatVector4:    gl.FloatVec4,
		TypeInteger:         gl.Int,
		TypeIntegerVector2:  gl.IntVec2,
		TypeIntegerVector3:  gl.IntVec3,
		TypeIntegerVector4:  gl.IntVec4,
		TypeSampler2D:       gl.Sampler2D,
		TypeSampler2DShadow: gl.Sampler2DShadow,
		TypeSampler3D:       gl.Sampler3D,
		TypeSamplerCube:     gl.SamplerCube,
	}
	glslTypesNames = [typeCount]string{
		"bool", "bvec2", "bvec3", "bvec4", "float", "mat2", "mat3", "mat4", "vec2", "vec3", "vec4",
		"int", "ivec2", "ivec3", "ivec4", "sampler2D", "sampler2DShadow", "sampler3D", "samplerCube",
	}
	glslTypes = newEnumTable[Type]("type", glslTypesGL[:], glslTypesNames[:])
)

func (t Type) ToGL() uint32  { return glslTypes.toGL(t) }
func (t Type) String() string { return glslTypes.string(t) }

func TypeFromGL(v uint32) Type { return glslTypes.fromGL(v) }

// LookupType is TypeFromGL without the panic.
func LookupType(v uint32) (Type, bool) { return glslTypes.lookup(v) }

// vector reports the component kind and count of scalar and vector types.
func (t Type) vector() (float bool, n int, ok bool) {
	switch t {
	case TypeFloat:
		return true, 1, true
	case TypeFloatVector2:
		return true, 2, true
	case TypeFloatVector3:
		return true, 3, true
	case TypeFloatVector4:
		return true, 4, true
	case TypeInteger:
		return false, 1, true
	case TypeIntegerVector2:
		return false, 2, true
	case TypeIntegerVector3:
		return false, 3, true
	case TypeIntegerVector4:
		return false, 4, true
	}
	return false, 0, false
}

// Convertible reports whether a buffer attribute with the given component
// type and count can feed a program attribute of type t.
func (t Type) Convertible(s ScalarType, elements int) bool {
	float, n, ok := t.vector()
	if !ok || n != elements {
		return false
	}
	if float {
		return s == ScalarFloat
	}
	return s != ScalarFloat
}

// TextureFilter selects magnification and minification filtering.
type TextureFilter int

const (
	FilterLinear TextureFilter = iota
	FilterNearest
	textureFilterCount
)

var (
	textureFiltersGL    = [textureFilterCount]uint32{FilterLinear: gl.Linear, FilterNearest: gl.Nearest}
	textureFiltersNames = [textureFilterCount]string{"linear", "nearest"}
	textureFilters      = newEnumTable[TextureFilter]("texture filter", textureFiltersGL[:], textureFiltersNames[:])
)

func (f TextureFilter) ToGL() uint32  { return textureFilters.toGL(f) }
func (f TextureFilter) String() string { return textureFilters.string(f) }

func TextureFilterFromGL(v uint32) TextureFilter { return textureFilters.fromGL(v) }

// TextureWrap selects how out of range texture coordinates are handled.
type TextureWrap int

const (
	WrapClampToEdge TextureWrap = iota
	WrapMirroredRepeat
	WrapRepeat
	textureWrapCount
)

var (
	textureWrapsGL = [textureWrapCount]uint32{
		WrapClampToEdge:    gl.ClampToEdge,
		WrapMirroredRepeat: gl.MirroredRepeat,
		WrapRepeat:         gl.Repeat,
	}
	textureWrapsNames = [textureWrapCount]string{"clamp-to-edge", "mirrored-repeat", "repeat"}
	textureWraps      = newEnumTable[TextureWrap]("texture wrap", textureWrapsGL[:], textureWrapsNames[:])
)

func (w TextureWrap) ToGL() uint32  { return textureWraps.toGL(w) }
func (w TextureWrap) String() string { return textureWraps.string(w) }

func TextureWrapFromGL(v uint32) TextureWrap { return textureWraps.fromGL(v) }

// UsageHint tells the driver how buffer contents will be used. Only the draw
// hints exist on OpenGL ES 2.
type UsageHint int

const (
	UsageStaticDraw UsageHint = iota
	UsageDynamicDraw
	UsageStreamDraw
	UsageStaticRead
	UsageDynamicRead
	UsageStreamRead
	UsageStaticCopy
	UsageDynamicCopy
	UsageStreamCopy
	usageHintCount
)

var (
	usageHintsGL = [usageHintCount]uint32{
		UsageStaticDraw:  gl.StaticDraw,
		UsageDynamicDraw: gl.DynamicDraw,
		UsageStreamDraw:  gl.StreamDraw,
		UsageStaticRead:  gl.StaticRead,
		UsageDynamicRead: gl.DynamicRead,
		UsageStreamRead:  gl.StreamRead,
		UsageStaticCopy:  gl.StaticCopy,
		UsageDynamicCopy: gl.DynamicCopy,
		UsageStreamCopy:  gl.StreamCopy,
	}
	usageHintsNames = [usageHintCount]string{
		"static-draw", "dynamic-draw", "stream-draw", "static-read", "dynamic-read",
		"stream-read", "static-copy", "dynamic-copy", "stream-copy",
	}
	usageHints = newEnumTable[UsageHint]("usage hint", usageHintsGL[:], usageHintsNames[:])
)

func (u UsageHint) ToGL() uint32  { return usageHints.toGL(u) }
func (u UsageHint) String() string { return usageHints.string(u) }

func UsageHintFromGL(v uint32) UsageHint { return usageHints.fromGL(v) }

func (u UsageHint) draw() bool {
	return u == UsageStaticDraw || u == UsageDynamicDraw || u == UsageStreamDraw
}

// ShaderKind distinguishes vertex and fragment shaders.
type ShaderKind int

const (
	ShaderVertex ShaderKind = iota
	ShaderFragment
	shaderKindCount
)

var (
	shaderKindsGL    = [shaderKindCount]uint32{ShaderVertex: gl.VertexShader, ShaderFragment: gl.FragmentShader}
	shaderKindsNames = [shaderKindCount]string{"vertex", "fragment"}
	shaderKinds      = newEnumTable[ShaderKind]("shader kind", shaderKindsGL[:], shaderKindsNames[:])
)

func (k ShaderKind) ToGL() uint32  { return shaderKinds.toGL(k) }
func (k ShaderKind) String() string { return shaderKinds.string(k) }

func ShaderKindFromGL(v uint32) ShaderKind { return shaderKinds.fromGL(v) }
