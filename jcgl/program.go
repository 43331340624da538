package jcgl

import "github.com/tinyrange/canephora/gl"

// Program is a linked pair of vertex and fragment shaders.
type Program struct {
	resource
	label   string
	shaders []*Shader
	linked  bool
}

func (p *Program) res() *resource {
	if p == nil {
		return nil
	}
	return &p.resource
}

func (p *Program) Label() string { return p.label }
func (p *Program) Linked() bool  { return p.linked }

// ProgramAttribute is an active vertex attribute of a linked program. It is
// invalid once the program is deleted.
type ProgramAttribute struct {
	program  *Program
	name     string
	location int32
	typ      Type
}

func (a *ProgramAttribute) Program() *Program { return a.program }
func (a *ProgramAttribute) Name() string      { return a.name }
func (a *ProgramAttribute) Location() int     { return int(a.location) }
func (a *ProgramAttribute) Type() Type        { return a.typ }

// ProgramUniform is an active uniform of a linked program.
type ProgramUniform struct {
	program  *Program
	name     string
	location int32
	typ      Type
	size     int
}

func (u *ProgramUniform) Program() *Program { return u.program }
func (u *ProgramUniform) Name() string      { return u.name }
func (u *ProgramUniform) Location() int     { return int(u.location) }
func (u *ProgramUniform) Type() Type        { return u.typ }

// Size is the array length of the uniform; 1 for non-arrays.
func (u *ProgramUniform) Size() int { return u.size }

// ProgramCreate creates an empty program.
func (c *Context) ProgramCreate(label string) (*Program, error) {
	c.log.Debug("program: create", "label", label)
	name := c.gl.CreateProgram()
	if err := c.check("program create"); err != nil {
		return nil, err
	}
	if name == 0 {
		return nil, &DriverError{Op: "program create"}
	}
	c.log.Debug("program: created", "label", label, "name", name)
	return &Program{resource: resource{name: name}, label: label}, nil
}

// ProgramAttach attaches s to p.
func (c *Context) ProgramAttach(p *Program, s *Shader) error {
	if err := checkLive(p, "program"); err != nil {
		return err
	}
	if err := checkLive(s, "shader"); err != nil {
		return err
	}
	c.log.Debug("program: attach", "program", p.label, "shader", s.label, "kind", s.kind)
	c.gl.AttachShader(p.name, s.name)
	if err := c.check("program attach"); err != nil {
		return err
	}
	p.shaders = append(p.shaders, s)
	return nil
}

// ProgramLink links p. A failed link yields a *CompileError carrying the
// program info log.
func (c *Context) ProgramLink(p *Program) error {
	if err := checkLive(p, "program"); err != nil {
		return err
	}
	c.log.Debug("program: link", "label", p.label, "shaders", len(p.shaders))
	c.gl.LinkProgram(p.name)
	c.ints[0] = 0
	c.gl.GetProgramiv(p.name, gl.LinkStatus, &c.ints[0])
	status := c.ints[0]
	if err := c.check("program link"); err != nil {
		return err
	}
	if status == gl.False {
		p.linked = false
		return &CompileError{Name: p.label, Log: c.gl.GetProgramInfoLog(p.name)}
	}
	p.linked = true
	return nil
}

// ProgramActivate makes p the current program.
func (c *Context) ProgramActivate(p *Program) error {
	if err := checkLive(p, "program"); err != nil {
		return err
	}
	c.gl.UseProgram(p.name)
	return c.check("program activate")
}

// ProgramDeactivate clears the current program.
func (c *Context) ProgramDeactivate() error {
	c.gl.UseProgram(0)
	return c.check("program deactivate")
}

// ProgramIsActive reports whether p is the current program.
func (c *Context) ProgramIsActive(p *Program) (bool, error) {
	if err := checkLive(p, "program"); err != nil {
		return false, err
	}
	return c.programActive(p)
}

func (c *Context) programActive(p *Program) (bool, error) {
	current, err := c.getInteger(gl.CurrentProgram, "current program")
	if err != nil {
		return false, err
	}
	return uint32(current) == p.name, nil
}

// ProgramDelete deletes p. Its attributes and uniforms become unusable.
func (c *Context) ProgramDelete(p *Program) error {
	if err := checkLive(p, "program"); err != nil {
		return err
	}
	c.log.Debug("program: delete", "label", p.label, "name", p.name)
	c.gl.DeleteProgram(p.name)
	release(p)
	return c.check("program delete")
}

// ProgramAttributes returns the active attributes of p by name. Attributes
// the driver reports without a location, or with a type outside Type, are
// skipped.
func (c *Context) ProgramAttributes(p *Program) (map[string]*ProgramAttribute, error) {
	if err := checkLive(p, "program"); err != nil {
		return nil, err
	}
	n, err := c.programInteger(p, gl.ActiveAttributes, "program active attributes")
	if err != nil {
		return nil, err
	}
	out := make(map[string]*ProgramAttribute, n)
	for i := range uint32(n) {
		name, _, xtype := c.gl.GetActiveAttrib(p.name, i)
		loc := c.gl.GetAttribLocation(p.name, name)
		if loc == -1 {
			c.log.Debug("program: attribute has no location", "program", p.label, "attribute", name)
			continue
		}
		typ, ok := LookupType(xtype)
		if !ok {
			c.log.Debug("program: attribute has an unsupported type", "program", p.label, "attribute", name, "type", xtype)
			continue
		}
		a := &ProgramAttribute{program: p, name: name, location: loc, typ: typ}
		c.log.Debug("program: attribute", "program", p.label, "attribute", name, "location", loc, "type", a.typ)
		out[name] = a
	}
	return out, c.check("program attributes")
}

// ProgramUniforms returns the active uniforms of p by name. Uniforms the
// driver reports without a location, or with a type outside Type, are
// skipped.
func (c *Context) ProgramUniforms(p *Program) (map[string]*ProgramUniform, error) {
	if err := checkLive(p, "program"); err != nil {
		return nil, err
	}
	n, err := c.programInteger(p, gl.ActiveUniforms, "program active uniforms")
	if err != nil {
		return nil, err
	}
	out := make(map[string]*ProgramUniform, n)
	for i := range uint32(n) {
		name, size, xtype := c.gl.GetActiveUniform(p.name, i)
		loc := c.gl.GetUniformLocation(p.name, name)
		if loc == -1 {
			c.log.Debug("program: uniform has no location", "program", p.label, "uniform", name)
			continue
		}
		typ, ok := LookupType(xtype)
		if !ok {
			c.log.Debug("program: uniform has an unsupported type", "program", p.label, "uniform", name, "type", xtype)
			continue
		}
		u := &ProgramUniform{program: p, name: name, location: loc, typ: typ, size: int(size)}
		c.log.Debug("program: uniform", "program", p.label, "uniform", name, "location", loc, "type", u.typ)
		out[name] = u
	}
	return out, c.check("program uniforms")
}

func (c *Context) programInteger(p *Program, pname uint32, op string) (int, error) {
	c.ints[0] = 0
	c.gl.GetProgramiv(p.name, pname, &c.ints[0])
	if err := c.check(op); err != nil {
		return 0, err
	}
	return max(0, int(c.ints[0])), nil
}
