package jcgl

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/tinyrange/canephora/gl"
)

// Context is the checked facade over one GL context. It is bound to the
// thread that owns the native context and is not safe for concurrent use.
type Context struct {
	gl           gl.Functions
	log          *slog.Logger
	restrictions Restrictions
	quirks       bool

	profile    *profile
	caps       Capabilities
	extensions map[string]struct{}
	units      []TextureUnit
	// missing holds the unbound optional entry points reported by the
	// functions table, if it reports them.
	missing []string

	// Scratch space for queries. Operations never nest, so a single buffer
	// serves every call.
	ints  [16]int32
	bools [4]bool
}

// New selects a profile for the context current on the calling thread and
// probes its capabilities. It fails with an *UnsupportedError when the
// context is neither OpenGL ES 2+, OpenGL 3+, nor OpenGL 2.1 with framebuffer
// object extensions, or when an entry point the profile calls is unbound.
func New(fn gl.Functions, opts ...Option) (*Context, error) {
	if fn == nil {
		return nil, constraint(ErrNilArgument, "functions")
	}
	o := options{
		logger:       newNopLogger(),
		restrictions: DefaultRestrictions,
		quirks:       true,
	}
	for _, opt := range opts {
		opt(&o)
	}
	c := &Context{
		gl:           fn,
		log:          o.logger,
		restrictions: o.restrictions,
		quirks:       o.quirks,
	}

	if r, ok := fn.(gl.EntryPointReporter); ok {
		c.missing = r.Missing()
	}

	version, err := ParseVersion(fn.GetString(gl.Version))
	if err != nil {
		return nil, err
	}
	if version.Major >= 3 {
		if err := c.requireEntryPoints("glGetStringi"); err != nil {
			return nil, err
		}
	}
	if err := c.loadExtensions(version); err != nil {
		return nil, err
	}
	kind, err := selectProfile(version, c.ExtensionSupported)
	if err != nil {
		c.log.Debug("context: no usable profile", "version", version.Text, "err", err)
		return nil, err
	}
	c.profile = &profiles[kind]
	c.log.Debug("context: selected profile", "profile", kind, "version", version.Text)
	if err := c.requireEntryPoints(c.profile.entryPoints()...); err != nil {
		return nil, err
	}

	if err := c.probe(version); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Context) loadExtensions(v Version) error {
	c.extensions = make(map[string]struct{})
	if v.Major >= 3 {
		c.ints[0] = 0
		c.gl.GetIntegerv(gl.NumExtensions, &c.ints[0])
		if err := c.check("extensions"); err != nil {
			return err
		}
		for i := range uint32(max(0, c.ints[0])) {
			c.extensions[c.gl.GetStringi(gl.Extensions, i)] = struct{}{}
		}
	} else {
		for _, ext := range strings.Fields(c.gl.GetString(gl.Extensions)) {
			c.extensions[ext] = struct{}{}
		}
	}
	return c.check("extensions")
}

// requireEntryPoints fails with the first of names that is unbound.
func (c *Context) requireEntryPoints(names ...string) error {
	for _, name := range names {
		if slices.Contains(c.missing, name) {
			c.log.Debug("context: missing entry point", "entry_point", name)
			return &UnsupportedError{Missing: name}
		}
	}
	return nil
}

// MissingEntryPoints lists the optional entry points the driver did not
// export. None of them is needed by the selected profile.
func (c *Context) MissingEntryPoints() []string { return slices.Clone(c.missing) }

// check converts a raised GL error flag into a *DriverError.
func (c *Context) check(op string) error {
	if code := c.gl.GetError(); code != gl.NoError {
		return &DriverError{Code: code, Op: op}
	}
	return nil
}

// Functions returns the native entry points. Calls made through them bypass
// every check of this package.
func (c *Context) Functions() gl.Functions { return c.gl }

// Profile returns the profile selected at construction.
func (c *Context) Profile() Profile { return c.profile.kind }

// Capabilities returns the snapshot taken at construction.
func (c *Context) Capabilities() Capabilities { return c.caps }

func (c *Context) Vendor() string   { return c.caps.Vendor }
func (c *Context) Renderer() string { return c.caps.Renderer }

// Version returns the context version.
func (c *Context) Version() Version { return c.caps.Version }

// ShadingLanguageVersion returns the GLSL version, after quirks.
func (c *Context) ShadingLanguageVersion() Version { return c.caps.ShadingLanguage }

// ErrorCode returns and clears the raw GL error flag.
func (c *Context) ErrorCode() uint32 { return c.gl.GetError() }

// ExtensionSupported reports whether the driver advertises name and the
// restrictions leave it visible.
func (c *Context) ExtensionSupported(name string) bool {
	_, ok := c.extensions[name]
	return ok && c.restrictions.ExtensionVisible(name)
}

// Extensions lists the visible extensions in sorted order.
func (c *Context) Extensions() []string {
	out := make([]string, 0, len(c.extensions))
	for ext := range c.extensions {
		if c.restrictions.ExtensionVisible(ext) {
			out = append(out, ext)
		}
	}
	slices.Sort(out)
	return out
}
