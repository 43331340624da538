package main

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/urfave/cli/v2"

	"github.com/tinyrange/canephora/gl"
	"github.com/tinyrange/canephora/internal/config"
	"github.com/tinyrange/canephora/internal/egl"
	"github.com/tinyrange/canephora/internal/fakegl"
	"github.com/tinyrange/canephora/internal/graphics"
	"github.com/tinyrange/canephora/jcgl"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "configuration file",
		Value: config.DefaultPath(),
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "debug, info, warn or error; overrides the configuration file",
	}
	esFlag = &cli.BoolFlag{
		Name:  "es",
		Usage: "create an OpenGL ES context instead of desktop OpenGL",
	}
	esMajorFlag = &cli.IntFlag{
		Name:  "es-major",
		Usage: "OpenGL ES major version, 2 or 3",
		Value: 2,
	}
	fakeFlag = &cli.BoolFlag{
		Name:  "fake",
		Usage: "use the in-process recording driver instead of the system libraries",
	}
	fakeVersionFlag = &cli.StringFlag{
		Name:  "fake-version",
		Usage: "GL_VERSION reported by the recording driver; derived from --es and --es-major by default",
	}
	fakeExtFlag = &cli.StringSliceFlag{
		Name:  "fake-ext",
		Usage: "extension advertised by the recording driver",
	}
	fakeMissingFlag = &cli.StringSliceFlag{
		Name:  "fake-missing",
		Usage: "entry point the recording driver reports as not exported",
	}
	noQuirksFlag = &cli.BoolFlag{
		Name:  "no-quirks",
		Usage: "disable driver specific workarounds",
	}

	imageFlag = &cli.StringFlag{
		Name:  "image",
		Usage: "image drawn onto the quad (png, jpeg, bmp or webp); a checker pattern by default",
	}
	outputFlag = &cli.StringFlag{
		Name:  "output",
		Usage: "png file written with the rendered frame",
	}
	widthFlag = &cli.IntFlag{
		Name:  "width",
		Usage: "framebuffer width",
	}
	heightFlag = &cli.IntFlag{
		Name:  "height",
		Usage: "framebuffer height",
	}
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "canephora",
		Usage:     "inspect and exercise an OpenGL or OpenGL ES driver through the checked jcgl facade",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			configFlag,
			logLevelFlag,
			esFlag,
			esMajorFlag,
			fakeFlag,
			fakeVersionFlag,
			fakeExtFlag,
			fakeMissingFlag,
			noQuirksFlag,
		},
		Commands: []*cli.Command{
			{
				Name:   "probe",
				Usage:  "print the context profile, capabilities and extensions",
				Action: probe,
			},
			{
				Name:   "render",
				Usage:  "render a textured quad offscreen and save it as png",
				Flags:  []cli.Flag{imageFlag, outputFlag, widthFlag, heightFlag},
				Action: render,
			},
		},
	}
}

// session is the state shared by every command.
type session struct {
	cfg     config.Config
	log     *slog.Logger
	ctx     *jcgl.Context
	release func()
}

func open(c *cli.Context, width, height int) (*session, error) {
	cfg, err := config.Load(c.String(configFlag.Name))
	if err != nil {
		return nil, err
	}
	if c.IsSet(logLevelFlag.Name) {
		cfg.Log.Level = c.String(logLevelFlag.Name)
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, err
	}
	log := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: level}))

	if width == 0 {
		width = cfg.Render.Width
	}
	if height == 0 {
		height = cfg.Render.Height
	}

	api := gl.Desktop
	if c.Bool(esFlag.Name) {
		api = gl.ES
	}

	var (
		fns     gl.Functions
		release = func() {}
	)
	if c.Bool(fakeFlag.Name) {
		version := c.String(fakeVersionFlag.Name)
		if version == "" {
			version = fakeVersion(api, c.Int(esMajorFlag.Name))
		}
		fake := fakegl.New(version, c.StringSlice(fakeExtFlag.Name)...)
		fake.Unexported = c.StringSlice(fakeMissingFlag.Name)
		fns = fake
	} else {
		h, err := egl.NewHeadless(egl.Options{API: api, Major: c.Int(esMajorFlag.Name), Width: width, Height: height})
		if err != nil {
			return nil, fmt.Errorf("create context: %w", err)
		}
		fns, release = h.Functions(), h.Release
	}

	ctx, err := jcgl.New(fns,
		jcgl.WithLogger(log),
		jcgl.WithRestrictions(cfg.Restrictions),
		jcgl.WithQuirks(!c.Bool(noQuirksFlag.Name)))
	if err != nil {
		release()
		return nil, err
	}
	cfg.Render.Width, cfg.Render.Height = width, height
	return &session{cfg: cfg, log: log, ctx: ctx, release: release}, nil
}

func fakeVersion(api gl.API, esMajor int) string {
	if api == gl.ES {
		return fmt.Sprintf("OpenGL ES %d.0 fakegl", esMajor)
	}
	return "3.3.0 fakegl"
}

func probe(c *cli.Context) error {
	s, err := open(c, 0, 0)
	if err != nil {
		return err
	}
	defer s.release()

	caps := s.ctx.Capabilities()
	w := c.App.Writer
	fmt.Fprintf(w, "vendor:             %s\n", caps.Vendor)
	fmt.Fprintf(w, "renderer:           %s\n", caps.Renderer)
	fmt.Fprintf(w, "version:            %s\n", caps.Version)
	fmt.Fprintf(w, "shading language:   %s\n", caps.ShadingLanguage)
	fmt.Fprintf(w, "profile:            %s\n", caps.Profile)
	fmt.Fprintf(w, "aliased line width: %d-%d\n", caps.AliasedLineWidth.Min, caps.AliasedLineWidth.Max)
	fmt.Fprintf(w, "smooth line width:  %d-%d\n", caps.SmoothLineWidth.Min, caps.SmoothLineWidth.Max)
	fmt.Fprintf(w, "point size:         %d-%d\n", caps.PointSize.Min, caps.PointSize.Max)
	fmt.Fprintf(w, "vertex attributes:  %d\n", caps.MaxVertexAttribs)
	fmt.Fprintf(w, "texture units:      %d\n", caps.MaxTextureUnits)
	fmt.Fprintf(w, "texture size:       %d\n", caps.MaxTextureSize)
	fmt.Fprintf(w, "color attachments:  %d\n", caps.MaxColorAttachments)
	fmt.Fprintf(w, "draw buffers:       %d\n", caps.MaxDrawBuffers)
	missing := "none"
	if m := s.ctx.MissingEntryPoints(); len(m) > 0 {
		missing = strings.Join(m, " ")
	}
	fmt.Fprintf(w, "missing functions:  %s\n", missing)
	fmt.Fprintf(w, "extensions:         %s\n", strings.Join(s.ctx.Extensions(), " "))
	return nil
}

func render(c *cli.Context) error {
	s, err := open(c, c.Int(widthFlag.Name), c.Int(heightFlag.Name))
	if err != nil {
		return err
	}
	defer s.release()

	output := s.cfg.Render.Output
	if c.IsSet(outputFlag.Name) {
		output = c.String(outputFlag.Name)
	}

	surface, err := graphics.New(s.ctx, s.cfg.Render.Width, s.cfg.Render.Height)
	if err != nil {
		return fmt.Errorf("create surface: %w", err)
	}
	defer surface.Close()

	surface.SetClear(true)
	surface.SetClearColor(graphics.Color{0.1, 0.12, 0.16, 1.0})

	img, err := loadImage(c.String(imageFlag.Name))
	if err != nil {
		return err
	}
	tex, err := surface.NewTexture(img)
	if err != nil {
		return fmt.Errorf("texture: %w", err)
	}
	defer surface.DeleteTexture(tex)

	var shot image.Image
	err = surface.Frame(func(f graphics.Frame) error {
		w, h := f.Size()
		size := float32(min(w, h)) / 2
		if err := f.RenderQuad((float32(w)-size)/2, (float32(h)-size)/2, size, size, tex, graphics.ColorWhite); err != nil {
			return err
		}
		shot, err = f.Screenshot()
		return err
	})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer file.Close()
	if err := png.Encode(file, shot); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	s.log.Info("rendered", "output", output, "width", s.cfg.Render.Width, "height", s.cfg.Render.Height)
	return file.Close()
}

func loadImage(path string) (image.Image, error) {
	if path == "" {
		return checkerImage(), nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

func checkerImage() image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	red := color.NRGBA{R: 0xff, G: 0x66, B: 0x66, A: 0xff}
	green := color.NRGBA{R: 0x66, G: 0xff, B: 0x66, A: 0xff}

	for y := range 4 {
		for x := range 4 {
			if (x+y)%2 == 0 {
				img.Set(x, y, red)
			} else {
				img.Set(x, y, green)
			}
		}
	}
	return img
}
