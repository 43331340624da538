package graphics

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"unsafe"

	"golang.org/x/image/draw"

	"github.com/tinyrange/canephora/jcgl"
)

type glSurface struct {
	ctx           *jcgl.Context
	width, height int

	color   *jcgl.Texture2D
	depth   *jcgl.Renderbuffer
	fb      *jcgl.Framebuffer
	program *jcgl.Program
	quad    *jcgl.ArrayBuffer
	indices *jcgl.IndexBuffer

	position, uv            *jcgl.ProgramAttribute
	rect, viewport, sampler *jcgl.ProgramUniform
	tint                    *jcgl.ProgramUniform

	clearEnabled bool
	clearColor   Color
}

type glTexture struct {
	tex *jcgl.Texture2D
	w   int
	h   int
}

type glFrame struct {
	s *glSurface
}

// Screenshot implements Frame.
func (f glFrame) Screenshot() (image.Image, error) {
	bw, bh := f.s.width, f.s.height
	pix, err := f.s.ctx.FramebufferReadRGBA(jcgl.Area{Width: bw, Height: bh})
	if err != nil {
		return nil, fmt.Errorf("read framebuffer: %w", err)
	}

	// Flip the image vertically
	flipped := image.NewRGBA(image.Rect(0, 0, bw, bh))
	stride := bw * 4
	for y := 0; y < bh; y++ {
		srcStart := y * stride
		srcEnd := srcStart + stride
		dstStart := (bh - 1 - y) * flipped.Stride
		dstEnd := dstStart + flipped.Stride
		copy(flipped.Pix[dstStart:dstEnd], pix[srcStart:srcEnd])
	}

	return flipped, nil
}

// New builds an off-screen surface of width x height pixels on ctx. All
// rendering goes to a framebuffer backed by a color texture and a depth
// buffer.
func New(ctx *jcgl.Context, width, height int) (_ Surface, err error) {
	s := &glSurface{
		ctx:          ctx,
		width:        width,
		height:       height,
		clearEnabled: true,
		clearColor:   ColorBlack,
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, s.Close())
		}
	}()

	s.color, err = ctx.Texture2DAllocate("surface", width, height, jcgl.TextureRGBA8888,
		jcgl.WrapClampToEdge, jcgl.WrapClampToEdge, jcgl.FilterNearest, jcgl.FilterNearest)
	if err != nil {
		return nil, fmt.Errorf("color buffer: %w", err)
	}
	attachments := []jcgl.Attachment{jcgl.ColorTexture{Index: 0, Texture: s.color}}
	s.depth, err = ctx.RenderbufferAllocate(jcgl.RenderbufferDepth24Stencil8, width, height)
	var unsupported *jcgl.UnsupportedError
	switch {
	case errors.As(err, &unsupported):
		s.depth, err = ctx.RenderbufferAllocate(jcgl.RenderbufferDepth16, width, height)
		if err != nil {
			return nil, fmt.Errorf("depth buffer: %w", err)
		}
		attachments = append(attachments, jcgl.Depth{Renderbuffer: s.depth})
	case err != nil:
		return nil, fmt.Errorf("depth buffer: %w", err)
	default:
		attachments = append(attachments, jcgl.DepthStencil{Renderbuffer: s.depth})
	}
	if s.fb, err = ctx.FramebufferAllocate(attachments...); err != nil {
		return nil, fmt.Errorf("framebuffer: %w", err)
	}

	if err := s.buildProgram(); err != nil {
		return nil, err
	}
	if err := s.buildQuad(); err != nil {
		return nil, err
	}

	if err := ctx.BlendingEnable(jcgl.BlendSourceAlpha, jcgl.BlendOneMinusSourceAlpha); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *glSurface) buildProgram() error {
	vsrc, fsrc := shaderSources(s.ctx.Profile().ES())
	vs, err := s.ctx.VertexShaderCompile("quad.vert", strings.NewReader(vsrc))
	if err != nil {
		return fmt.Errorf("vertex shader: %w", err)
	}
	defer s.ctx.ShaderDelete(vs)
	fs, err := s.ctx.FragmentShaderCompile("quad.frag", strings.NewReader(fsrc))
	if err != nil {
		return fmt.Errorf("fragment shader: %w", err)
	}
	defer s.ctx.ShaderDelete(fs)

	if s.program, err = s.ctx.ProgramCreate("quad"); err != nil {
		return err
	}
	if err := s.ctx.ProgramAttach(s.program, vs); err != nil {
		return err
	}
	if err := s.ctx.ProgramAttach(s.program, fs); err != nil {
		return err
	}
	if err := s.ctx.ProgramLink(s.program); err != nil {
		return fmt.Errorf("link quad program: %w", err)
	}

	attrs, err := s.ctx.ProgramAttributes(s.program)
	if err != nil {
		return err
	}
	uniforms, err := s.ctx.ProgramUniforms(s.program)
	if err != nil {
		return err
	}
	s.position, s.uv = attrs["a_position"], attrs["a_uv"]
	s.rect, s.viewport = uniforms["u_rect"], uniforms["u_viewport"]
	s.sampler, s.tint = uniforms["u_texture"], uniforms["u_color"]
	if s.position == nil || s.uv == nil || s.rect == nil || s.viewport == nil || s.sampler == nil || s.tint == nil {
		return fmt.Errorf("quad program: driver optimised away a required input")
	}
	return nil
}

// quadVertices is a unit square as a triangle strip: position then texture
// coordinate.
var quadVertices = [16]float32{
	0, 0, 0, 0,
	1, 0, 1, 0,
	0, 1, 0, 1,
	1, 1, 1, 1,
}

func (s *glSurface) buildQuad() error {
	desc, err := jcgl.NewArrayDescriptor(
		jcgl.ArrayAttribute{Name: "position", Type: jcgl.ScalarFloat, Elements: 2},
		jcgl.ArrayAttribute{Name: "uv", Type: jcgl.ScalarFloat, Elements: 2},
	)
	if err != nil {
		return err
	}
	if s.quad, err = s.ctx.ArrayBufferAllocate(4, desc, jcgl.UsageStaticDraw); err != nil {
		return err
	}
	if err := s.ctx.ArrayBufferBind(s.quad); err != nil {
		return err
	}
	data := unsafe.Slice((*byte)(unsafe.Pointer(&quadVertices[0])), len(quadVertices)*4)
	if err := s.ctx.ArrayBufferUpdate(s.quad, 0, data); err != nil {
		return err
	}
	if err := s.ctx.ArrayBufferUnbind(); err != nil {
		return err
	}

	if s.indices, err = s.ctx.IndexBufferAllocate(s.quad, 4); err != nil {
		return err
	}
	return s.ctx.IndexBufferUpdate(s.indices, 0, []byte{0, 1, 2, 3})
}

func (s *glSurface) Context() *jcgl.Context { return s.ctx }

// NewTexture uploads img. Images outside the texture size limits are scaled
// to fit.
func (s *glSurface) NewTexture(img image.Image) (Texture, error) {
	b := img.Bounds()
	w, h := fitTexture(b.Dx(), b.Dy(), s.ctx.Capabilities().MaxTextureSize)
	nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(nrgba, nrgba.Bounds(), img, b, draw.Src, nil)
	}

	tex, err := s.ctx.Texture2DAllocate("image", w, h, jcgl.TextureRGBA8888,
		jcgl.WrapClampToEdge, jcgl.WrapClampToEdge, jcgl.FilterNearest, jcgl.FilterNearest)
	if err != nil {
		return nil, err
	}
	if err := s.ctx.Texture2DUpdate(tex, tex.Area(), nrgba.Pix); err != nil {
		return nil, errors.Join(err, s.ctx.Texture2DDelete(tex))
	}
	return &glTexture{tex: tex, w: w, h: h}, nil
}

// fitTexture clamps a size to [2, limit] on both axes, keeping the aspect
// ratio when shrinking.
func fitTexture(w, h, limit int) (int, int) {
	if limit > 0 && (w > limit || h > limit) {
		if w >= h {
			w, h = limit, max(1, h*limit/w)
		} else {
			w, h = max(1, w*limit/h), limit
		}
	}
	return max(w, 2), max(h, 2)
}

func (s *glSurface) SetClear(enabled bool) {
	s.clearEnabled = enabled
}

func (s *glSurface) SetClearColor(c Color) {
	s.clearColor = c
}

func (s *glSurface) Frame(step func(f Frame) error) (err error) {
	if err := s.ctx.FramebufferBind(s.fb); err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, s.ctx.ProgramDeactivate(), s.ctx.FramebufferUnbind())
	}()

	if err := s.prepareFrame(); err != nil {
		return err
	}
	return step(glFrame{s: s})
}

func (s *glSurface) prepareFrame() error {
	if err := s.ctx.ViewportSet(jcgl.Area{Width: s.width, Height: s.height}); err != nil {
		return err
	}
	if s.clearEnabled {
		c := s.clearColor
		if err := s.ctx.ColorBufferClear(c[0], c[1], c[2], c[3]); err != nil {
			return err
		}
		if err := s.ctx.DepthBufferClear(1); err != nil {
			return err
		}
	}
	if err := s.ctx.ProgramActivate(s.program); err != nil {
		return err
	}
	return s.ctx.ProgramPutUniformVector2f(s.viewport, [2]float32{float32(s.width), float32(s.height)})
}

func (f glFrame) Size() (int, int) {
	return f.s.width, f.s.height
}

func (f glFrame) RenderQuad(x, y, width, height float32, tex Texture, color Color) error {
	t, ok := tex.(*glTexture)
	if !ok {
		return fmt.Errorf("render quad: texture %T was not created by this surface", tex)
	}
	ctx := f.s.ctx
	unit := ctx.TextureUnits()[0]

	if err := ctx.Texture2DBind(unit, t.tex); err != nil {
		return err
	}
	if err := ctx.ProgramPutUniformTextureUnit(f.s.sampler, unit); err != nil {
		return err
	}
	if err := ctx.ProgramPutUniformVector4f(f.s.rect, [4]float32{x, y, width, height}); err != nil {
		return err
	}
	if err := ctx.ProgramPutUniformVector4f(f.s.tint, color); err != nil {
		return err
	}

	if err := ctx.ArrayBufferBind(f.s.quad); err != nil {
		return err
	}
	if err := ctx.ArrayBufferBindVertexAttribute(f.s.quad, "position", f.s.position); err != nil {
		return err
	}
	if err := ctx.ArrayBufferBindVertexAttribute(f.s.quad, "uv", f.s.uv); err != nil {
		return err
	}
	if err := ctx.DrawElements(jcgl.PrimitiveTriangleStrip, f.s.indices); err != nil {
		return err
	}
	return errors.Join(
		ctx.ArrayBufferUnbindVertexAttribute(f.s.quad, "position", f.s.position),
		ctx.ArrayBufferUnbindVertexAttribute(f.s.quad, "uv", f.s.uv),
		ctx.ArrayBufferUnbind(),
		ctx.TextureUnitUnbind(unit),
	)
}

func (t *glTexture) Size() (int, int) {
	return t.w, t.h
}

// Close deletes the surface's GL objects. Textures returned by NewTexture
// are not tracked and stay alive.
func (s *glSurface) Close() error {
	var errs []error
	if s.fb != nil && !s.fb.Deleted() {
		errs = append(errs, s.ctx.FramebufferDelete(s.fb))
	}
	if s.color != nil && !s.color.Deleted() {
		errs = append(errs, s.ctx.Texture2DDelete(s.color))
	}
	if s.depth != nil && !s.depth.Deleted() {
		errs = append(errs, s.ctx.RenderbufferDelete(s.depth))
	}
	if s.program != nil && !s.program.Deleted() {
		errs = append(errs, s.ctx.ProgramDelete(s.program))
	}
	if s.indices != nil && !s.indices.Deleted() {
		errs = append(errs, s.ctx.IndexBufferDelete(s.indices))
	}
	if s.quad != nil && !s.quad.Deleted() {
		errs = append(errs, s.ctx.ArrayBufferDelete(s.quad))
	}
	return errors.Join(errs...)
}

// DeleteTexture releases a texture created by NewTexture.
func (s *glSurface) DeleteTexture(tex Texture) error {
	t, ok := tex.(*glTexture)
	if !ok {
		return fmt.Errorf("delete texture: texture %T was not created by this surface", tex)
	}
	return s.ctx.Texture2DDelete(t.tex)
}
