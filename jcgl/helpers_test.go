package jcgl

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tinyrange/canephora/internal/fakegl"
)

const (
	versionES2 = "OpenGL ES 2.0 Mesa 23.1.4"
	versionES3 = "OpenGL ES 3.2 Mesa 23.1.4"
	versionGL2 = "2.1 Mesa 23.1.4"
	versionGL3 = "3.3.0 NVIDIA 535.54"
)

func newContext(t *testing.T, version string, extensions ...string) (*Context, *fakegl.GL) {
	t.Helper()
	f := fakegl.New(version, extensions...)
	c, err := New(f)
	require.NoError(t, err)
	f.ResetCalls()
	return c, f
}

// newLoggedContext returns a context logging at debug level into buf.
func newLoggedContext(t *testing.T, version string, buf *bytes.Buffer) (*Context, *fakegl.GL) {
	t.Helper()
	f := fakegl.New(version)
	log := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c, err := New(f, WithLogger(log))
	require.NoError(t, err)
	f.ResetCalls()
	return c, f
}
