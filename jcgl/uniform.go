package jcgl

func (c *Context) checkUniform(u *ProgramUniform, want ...Type) error {
	if u == nil {
		return constraint(ErrNilArgument, "uniform")
	}
	if err := checkLive(u.program, "program"); err != nil {
		return err
	}
	ok := false
	for _, t := range want {
		ok = ok || u.typ == t
	}
	if !ok {
		return constraintf(ErrTypeMismatch, "uniform", "%s is %s, not %s", u.name, u.typ, want[0])
	}
	active, err := c.programActive(u.program)
	if err != nil {
		return err
	}
	if !active {
		return constraintf(ErrNotActive, "uniform", "%s of program %q", u.name, u.program.label)
	}
	return nil
}

// ProgramPutUniformFloat sets a float uniform. The uniform's program must be
// active; this holds for every ProgramPutUniform method.
func (c *Context) ProgramPutUniformFloat(u *ProgramUniform, v float32) error {
	if err := c.checkUniform(u, TypeFloat); err != nil {
		return err
	}
	c.gl.Uniform1f(u.location, v)
	return c.check("uniform float")
}

// ProgramPutUniformInteger sets an int or bool uniform.
func (c *Context) ProgramPutUniformInteger(u *ProgramUniform, v int32) error {
	if err := c.checkUniform(u, TypeInteger, TypeBool); err != nil {
		return err
	}
	c.gl.Uniform1i(u.location, v)
	return c.check("uniform integer")
}

func (c *Context) ProgramPutUniformVector2f(u *ProgramUniform, v [2]float32) error {
	if err := c.checkUniform(u, TypeFloatVector2); err != nil {
		return err
	}
	c.gl.Uniform2f(u.location, v[0], v[1])
	return c.check("uniform vec2")
}

func (c *Context) ProgramPutUniformVector2i(u *ProgramUniform, v [2]int32) error {
	if err := c.checkUniform(u, TypeIntegerVector2); err != nil {
		return err
	}
	c.gl.Uniform2i(u.location, v[0], v[1])
	return c.check("uniform ivec2")
}

func (c *Context) ProgramPutUniformVector3f(u *ProgramUniform, v [3]float32) error {
	if err := c.checkUniform(u, TypeFloatVector3); err != nil {
		return err
	}
	c.gl.Uniform3f(u.location, v[0], v[1], v[2])
	return c.check("uniform vec3")
}

func (c *Context) ProgramPutUniformVector4f(u *ProgramUniform, v [4]float32) error {
	if err := c.checkUniform(u, TypeFloatVector4); err != nil {
		return err
	}
	c.gl.Uniform4f(u.location, v[0], v[1], v[2], v[3])
	return c.check("uniform vec4")
}

// ProgramPutUniformMatrix3x3f sets a mat3 uniform from a column-major matrix.
func (c *Context) ProgramPutUniformMatrix3x3f(u *ProgramUniform, m [9]float32) error {
	if err := c.checkUniform(u, TypeFloatMatrix3); err != nil {
		return err
	}
	c.gl.UniformMatrix3fv(u.location, 1, false, &m[0])
	return c.check("uniform mat3")
}

// ProgramPutUniformMatrix4x4f sets a mat4 uniform from a column-major matrix.
func (c *Context) ProgramPutUniformMatrix4x4f(u *ProgramUniform, m [16]float32) error {
	if err := c.checkUniform(u, TypeFloatMatrix4); err != nil {
		return err
	}
	c.gl.UniformMatrix4fv(u.location, 1, false, &m[0])
	return c.check("uniform mat4")
}

// ProgramPutUniformTextureUnit points a sampler2D uniform at unit.
func (c *Context) ProgramPutUniformTextureUnit(u *ProgramUniform, unit TextureUnit) error {
	if err := c.checkUniform(u, TypeSampler2D, TypeSampler2DShadow); err != nil {
		return err
	}
	if err := c.checkUnit(unit); err != nil {
		return err
	}
	c.gl.Uniform1i(u.location, int32(unit.index))
	return c.check("uniform sampler")
}
