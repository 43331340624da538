package graphics

import "fmt"

const vertexShaderBody = `
attribute vec2 a_position;
attribute vec2 a_uv;
uniform vec4 u_rect;
uniform vec2 u_viewport;
varying vec2 v_uv;
void main() {
	vec2 p = u_rect.xy + a_position * u_rect.zw;
	vec2 ndc = p / u_viewport * 2.0 - 1.0;
	gl_Position = vec4(ndc.x, -ndc.y, 0.0, 1.0);
	v_uv = a_uv;
}
`

const fragmentShaderBody = `
uniform sampler2D u_texture;
uniform vec4 u_color;
varying vec2 v_uv;
void main() {
	gl_FragColor = texture2D(u_texture, v_uv) * u_color;
}
`

// shaderSources returns the quad program for the shading language the
// context accepts. OpenGL ES takes GLSL ES 1.00; desktop contexts take GLSL
// 1.20 through the compatibility profile.
func shaderSources(es bool) (vertex, fragment string) {
	header := "#version 120\n"
	if es {
		header = "#version 100\nprecision mediump float;\n"
	}
	return fmt.Sprint(header, vertexShaderBody), fmt.Sprint(header, fragmentShaderBody)
}
