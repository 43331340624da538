package jcgl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinyrange/canephora/gl"
	"github.com/tinyrange/canephora/internal/fakegl"
)

var extFramebuffer = []string{
	"GL_EXT_framebuffer_object",
	"GL_EXT_framebuffer_multisample",
	"GL_EXT_framebuffer_blit",
	"GL_EXT_packed_depth_stencil",
}

func TestProfileSelection(t *testing.T) {
	tests := []struct {
		name       string
		version    string
		extensions []string
		want       Profile
	}{
		{"es2", versionES2, nil, ProfileES2},
		{"es3", versionES3, nil, ProfileES3},
		{"gl3", versionGL3, nil, ProfileGL3},
		{"gl30", "3.0 Mesa 23.1.4", nil, ProfileGL3},
		{"gl46", "4.6.0 NVIDIA 535.54", nil, ProfileGL3},
		{"gl21 arb", versionGL2, []string{"GL_ARB_framebuffer_object"}, ProfileGL2},
		{"gl21 ext", versionGL2, extFramebuffer, ProfileGL2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(fakegl.New(tt.version, tt.extensions...))
			require.NoError(t, err)
			require.Equal(t, tt.want, c.Profile())
			require.Equal(t, tt.want, c.Capabilities().Profile)
		})
	}
}

func TestGL21WithoutFramebufferObject(t *testing.T) {
	_, err := New(fakegl.New(versionGL2))
	require.EqualError(t, err, "unsupported: missing GL_EXT_framebuffer_object")

	var unsupported *UnsupportedError
	require.True(t, errors.As(err, &unsupported))
	require.Equal(t, "GL_EXT_framebuffer_object", unsupported.Missing)
}

func TestGL21NamesFirstMissingExtension(t *testing.T) {
	_, err := New(fakegl.New(versionGL2, "GL_EXT_framebuffer_object", "GL_EXT_framebuffer_multisample", "GL_EXT_packed_depth_stencil"))
	require.EqualError(t, err, "unsupported: missing GL_EXT_framebuffer_blit")
}

func TestMissingEntryPoints(t *testing.T) {
	tests := []struct {
		version string
		missing []string
		want    string
	}{
		{versionGL3, []string{"glDrawBuffers"}, "glDrawBuffers"},
		{versionGL3, []string{"glGetFramebufferAttachmentParameteriv"}, "glGetFramebufferAttachmentParameteriv"},
		{versionES3, []string{"glUnmapBuffer", "glMapBufferRange"}, "glMapBufferRange"},
		{versionES2, []string{"glBindFramebuffer"}, "glBindFramebuffer"},
		{versionES2, []string{"glDrawBuffers", "glGetStringi"}, ""},
		{versionES3, []string{"glGetFramebufferAttachmentParameteriv"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.version+" "+tt.missing[0], func(t *testing.T) {
			f := fakegl.New(tt.version)
			f.Unexported = tt.missing
			c, err := New(f)
			if tt.want == "" {
				require.NoError(t, err)
				require.Equal(t, tt.missing, c.MissingEntryPoints())
				return
			}
			var unsupported *UnsupportedError
			require.True(t, errors.As(err, &unsupported))
			require.Equal(t, tt.want, unsupported.Missing)
			require.EqualError(t, err, "unsupported: missing "+tt.want)
		})
	}
}

func TestMissingGetStringiCheckedBeforeUse(t *testing.T) {
	f := fakegl.New(versionGL3, "GL_ARB_texture_float")
	f.Unexported = []string{"glGetStringi"}
	_, err := New(f)
	require.EqualError(t, err, "unsupported: missing glGetStringi")
	require.Zero(t, f.Called("GetStringi"))
}

func TestOldContextsUnsupported(t *testing.T) {
	for _, version := range []string{"1.5 Mesa", "2.0 Mesa", "OpenGL ES-CM 1.1"} {
		_, err := New(fakegl.New(version, extFramebuffer...))
		var unsupported *UnsupportedError
		require.Truef(t, errors.As(err, &unsupported), "%s: %v", version, err)
	}
}

func TestNewRejectsNilFunctions(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrNilArgument)
}

func TestNewRejectsGarbageVersion(t *testing.T) {
	_, err := New(fakegl.New("not a version"))
	require.Error(t, err)
}

func TestRestrictionsHideExtensions(t *testing.T) {
	f := fakegl.New(versionGL2, "GL_ARB_framebuffer_object")
	_, err := New(f, WithRestrictions(Limits{HiddenExtensions: []string{"GL_ARB_framebuffer_object"}}))
	require.EqualError(t, err, "unsupported: missing GL_EXT_framebuffer_object")

	c, err := New(fakegl.New(versionES2, "GL_OES_rgb8_rgba8"), WithRestrictions(Limits{HiddenExtensions: []string{"GL_OES_rgb8_rgba8"}}))
	require.NoError(t, err)
	require.False(t, c.ExtensionSupported("GL_OES_rgb8_rgba8"))
	require.Empty(t, c.Extensions())
}

func TestRestrictionsTextureUnits(t *testing.T) {
	c, err := New(fakegl.New(versionGL3), WithRestrictions(Limits{TextureUnits: 2}))
	require.NoError(t, err)
	require.Len(t, c.TextureUnits(), 2)
	require.Equal(t, 2, c.Capabilities().MaxTextureUnits)

	c, err = New(fakegl.New(versionGL3), WithRestrictions(Limits{TextureUnits: 64}))
	require.NoError(t, err)
	require.Len(t, c.TextureUnits(), 16)
}

func TestExtensionsFromIndexedStrings(t *testing.T) {
	f := fakegl.New(versionGL3, "GL_ARB_debug_output", "GL_ARB_framebuffer_object")
	c, err := New(f)
	require.NoError(t, err)
	require.Equal(t, 2, f.Called("GetStringi"))
	require.True(t, c.ExtensionSupported("GL_ARB_debug_output"))
	require.Equal(t, []string{"GL_ARB_debug_output", "GL_ARB_framebuffer_object"}, c.Extensions())
}

func TestCapabilityProbe(t *testing.T) {
	f := fakegl.New(versionGL3)
	f.Params[gl.MaxTextureSize] = []int32{8192}
	c, err := New(f)
	require.NoError(t, err)

	caps := c.Capabilities()
	require.Equal(t, Range{Min: 1, Max: 8}, caps.AliasedLineWidth)
	require.Equal(t, Range{Min: 1, Max: 10}, caps.SmoothLineWidth)
	require.Equal(t, Range{Min: 1, Max: 63}, caps.PointSize)
	require.Equal(t, 16, caps.MaxVertexAttribs)
	require.Equal(t, 8192, caps.MaxTextureSize)
	require.Equal(t, 8, caps.MaxColorAttachments)
	require.Equal(t, 8, caps.MaxDrawBuffers)
	require.Equal(t, "fakegl", c.Renderer())
	require.Equal(t, "canephora", c.Vendor())
	require.Equal(t, Version{Major: 3, Minor: 3, Text: versionGL3}, c.Version())

	// The probe runs once; later queries are served from the snapshot.
	f.ResetCalls()
	_ = c.Capabilities()
	require.Empty(t, f.Calls())
}

func TestCapabilityProbeES2(t *testing.T) {
	c, _ := newContext(t, versionES2)
	caps := c.Capabilities()
	require.Equal(t, 1, caps.MaxColorAttachments)
	require.Equal(t, 1, caps.MaxDrawBuffers)
	require.Equal(t, caps.AliasedLineWidth, caps.SmoothLineWidth)
	require.Equal(t, Range{Min: 1, Max: 64}, caps.PointSize)
	require.Equal(t, Version{Major: 1, Minor: 0, ES: true, Text: "OpenGL ES GLSL ES 1.00"}, c.ShadingLanguageVersion())
}

func TestMesaES3ShadingLanguageQuirk(t *testing.T) {
	const version = "OpenGL ES 3.0 Mesa 9.1.7"

	c, err := New(fakegl.New(version))
	require.NoError(t, err)
	sl := c.ShadingLanguageVersion()
	require.Equal(t, 1, sl.Major)
	require.Equal(t, 0, sl.Minor)
	require.True(t, sl.ES)

	c, err = New(fakegl.New(version), WithQuirks(false))
	require.NoError(t, err)
	require.Equal(t, 3, c.ShadingLanguageVersion().Major)
}

func TestDriverErrorSurfaces(t *testing.T) {
	c, f := newContext(t, versionGL3)
	f.Raise(gl.OutOfMemory)
	err := c.ViewportSet(Area{Width: 10, Height: 10})

	var driver *DriverError
	require.True(t, errors.As(err, &driver))
	require.Equal(t, uint32(gl.OutOfMemory), driver.Code)
	require.Equal(t, "viewport set", driver.Op)
	require.Contains(t, err.Error(), "out of memory")
	require.Equal(t, uint32(gl.NoError), c.ErrorCode())
}
