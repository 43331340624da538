package gl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGostring(t *testing.T) {
	b := cstring("OpenGL ES 3.0 Mesa 9.1.7")
	require.Equal(t, "OpenGL ES 3.0 Mesa 9.1.7", gostring(&b[0]))
	require.Equal(t, "", gostring(nil))

	empty := cstring("")
	require.Equal(t, "", gostring(&empty[0]))
}

func TestResolveFallsBackToAlternativeNames(t *testing.T) {
	fns := &functions{api: Desktop}
	syms := fns.symbols()
	// Export only the last alias of every entry point, as an OpenGL 2.1
	// driver with EXT framebuffer objects does.
	exported := map[string]uintptr{}
	for i, s := range syms {
		exported[s.names[len(s.names)-1]] = uintptr(0x1000 + i)
	}
	addrs, err := fns.resolve(syms, func(name string) uintptr { return exported[name] })
	require.NoError(t, err)
	require.Empty(t, fns.Missing())
	for i, s := range syms {
		require.Equal(t, exported[s.names[len(s.names)-1]], addrs[i], s.names[0])
	}
}

func TestResolveRequiredEntryPoint(t *testing.T) {
	fns := &functions{api: ES}
	var seen []string
	_, err := fns.resolve(fns.symbols(), func(name string) uintptr {
		seen = append(seen, name)
		return 0
	})
	require.ErrorContains(t, err, "missing entry point glGetError")
	require.Equal(t, []string{"glGetError"}, seen)
}

func TestResolveRecordsMissingOptionalEntryPoints(t *testing.T) {
	fns := &functions{api: ES}
	syms := fns.symbols()
	addrs, err := fns.resolve(syms, func(name string) uintptr {
		switch name {
		case "glGetStringi", "glMapBufferRange", "glUnmapBuffer", "glDrawBuffers", "glDrawBuffersEXT":
			return 0
		}
		return 0x2000
	})
	require.NoError(t, err)
	require.Equal(t, []string{"glGetStringi", "glMapBufferRange", "glUnmapBuffer", "glDrawBuffers"}, fns.Missing())
	for i, s := range syms {
		if s.names[0] == "glGetStringi" {
			require.Zero(t, addrs[i])
		}
	}
}

func TestSymbolsSelectClearDepthVariant(t *testing.T) {
	names := func(api API) map[string]bool {
		out := map[string]bool{}
		for _, s := range (&functions{api: api}).symbols() {
			for _, n := range s.names {
				out[n] = true
			}
		}
		return out
	}
	require.True(t, names(ES)["glClearDepthf"])
	require.False(t, names(ES)["glClearDepth"])
	require.True(t, names(Desktop)["glClearDepth"])
	require.False(t, names(Desktop)["glClearDepthf"])
	require.True(t, names(Desktop)["glGenFramebuffersEXT"])
}

func TestAPIString(t *testing.T) {
	require.Equal(t, "OpenGL", Desktop.String())
	require.Equal(t, "OpenGL ES", ES.String())
}
