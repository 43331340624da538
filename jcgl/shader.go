package jcgl

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tinyrange/canephora/gl"
)

// Shader is a compiled vertex or fragment shader.
type Shader struct {
	resource
	kind  ShaderKind
	label string
}

func (s *Shader) res() *resource {
	if s == nil {
		return nil
	}
	return &s.resource
}

func (s *Shader) Kind() ShaderKind { return s.kind }
func (s *Shader) Label() string    { return s.label }

// readLines splits r into lines, each terminated by a newline as the driver
// receives them.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	for sc.Scan() {
		lines = append(lines, sc.Text()+"\n")
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// ShaderCompile compiles the source read from r. A rejected source yields a
// *CompileError carrying the driver's info log.
func (c *Context) ShaderCompile(kind ShaderKind, label string, r io.Reader) (*Shader, error) {
	if r == nil {
		return nil, constraint(ErrNilArgument, "shader source")
	}
	if kind < 0 || kind >= shaderKindCount {
		return nil, constraintf(ErrOutOfRange, "shader kind", "%d", int(kind))
	}
	lines, err := readLines(r)
	if err != nil {
		return nil, fmt.Errorf("jcgl: read shader %q: %w", label, err)
	}

	c.log.Debug("shader: compile", "kind", kind, "label", label, "lines", len(lines))
	name := c.gl.CreateShader(kind.ToGL())
	if err := c.check("shader create"); err != nil {
		return nil, err
	}
	if name == 0 {
		return nil, &DriverError{Op: "shader create"}
	}
	c.gl.ShaderSource(name, lines)
	c.gl.CompileShader(name)
	c.ints[0] = 0
	c.gl.GetShaderiv(name, gl.CompileStatus, &c.ints[0])
	status := c.ints[0]
	if err := c.check("shader compile"); err != nil {
		c.gl.DeleteShader(name)
		return nil, err
	}
	if status == gl.False {
		log := c.gl.GetShaderInfoLog(name)
		c.gl.DeleteShader(name)
		return nil, &CompileError{Name: label, Log: log}
	}

	c.log.Debug("shader: compiled", "kind", kind, "label", label, "name", name)
	return &Shader{resource: resource{name: name}, kind: kind, label: label}, nil
}

// VertexShaderCompile compiles a vertex shader.
func (c *Context) VertexShaderCompile(label string, r io.Reader) (*Shader, error) {
	return c.ShaderCompile(ShaderVertex, label, r)
}

// FragmentShaderCompile compiles a fragment shader.
func (c *Context) FragmentShaderCompile(label string, r io.Reader) (*Shader, error) {
	return c.ShaderCompile(ShaderFragment, label, r)
}

// ShaderDelete deletes s. Programs already linked with s keep working.
func (c *Context) ShaderDelete(s *Shader) error {
	if err := checkLive(s, "shader"); err != nil {
		return err
	}
	c.log.Debug("shader: delete", "label", s.label, "name", s.name)
	c.gl.DeleteShader(s.name)
	release(s)
	return c.check("shader delete")
}
