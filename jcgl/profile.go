package jcgl

import (
	"fmt"
	"slices"

	"github.com/tinyrange/canephora/gl"
)

// Profile is the feature level selected once for a context.
type Profile int

const (
	// ProfileES2 is OpenGL ES 2.0.
	ProfileES2 Profile = iota
	// ProfileES3 is OpenGL ES 3.x.
	ProfileES3
	// ProfileGL2 is OpenGL 2.1 with framebuffer object extensions.
	ProfileGL2
	// ProfileGL3 is OpenGL 3.x and later.
	ProfileGL3
)

func (p Profile) String() string {
	switch p {
	case ProfileES2:
		return "es2"
	case ProfileES3:
		return "es3"
	case ProfileGL2:
		return "gl2"
	case ProfileGL3:
		return "gl3"
	default:
		return fmt.Sprintf("profile(%d)", int(p))
	}
}

// ES reports whether the profile is an OpenGL ES profile.
func (p Profile) ES() bool { return p == ProfileES2 || p == ProfileES3 }

// profile is the binding table for one feature level. The facade consults it
// instead of branching on the profile kind.
type profile struct {
	kind Profile
	es   bool
	// gl3 covers the features common to OpenGL 3 and OpenGL ES 3: indexed
	// extension strings, draw buffers, buffer mapping, red/green textures
	// and the read/copy usage hints.
	gl3            bool
	blendMinMax    bool
	lineSmoothing  bool
	legacyTextures bool
	// attachmentBits queries depth and stencil sizes from the attachments
	// of the bound framebuffer rather than DEPTH_BITS and STENCIL_BITS.
	attachmentBits bool
	// renderbufferExtensions lists the extension a renderbuffer type
	// needs on this profile, if any.
	renderbufferExtensions map[RenderbufferType]string
}

var profiles = [...]profile{
	ProfileES2: {
		kind:           ProfileES2,
		es:             true,
		legacyTextures: true,
		renderbufferExtensions: map[RenderbufferType]string{
			RenderbufferDepth24Stencil8: "GL_OES_packed_depth_stencil",
			RenderbufferRGBA8888:        "GL_OES_rgb8_rgba8",
			RenderbufferRGB888:          "GL_OES_rgb8_rgba8",
		},
	},
	ProfileES3: {
		kind:           ProfileES3,
		es:             true,
		gl3:            true,
		blendMinMax:    true,
		legacyTextures: true,
	},
	ProfileGL2: {
		kind:           ProfileGL2,
		blendMinMax:    true,
		lineSmoothing:  true,
		legacyTextures: true,
	},
	ProfileGL3: {
		kind:           ProfileGL3,
		gl3:            true,
		blendMinMax:    true,
		lineSmoothing:  true,
		attachmentBits: true,
	},
}

// Entry points resolved as optional by package gl, grouped by the feature
// that needs them. They are named by their core name.
var (
	framebufferEntryPoints = []string{
		"glGenFramebuffers",
		"glDeleteFramebuffers",
		"glBindFramebuffer",
		"glFramebufferTexture2D",
		"glFramebufferRenderbuffer",
		"glCheckFramebufferStatus",
		"glGenRenderbuffers",
		"glDeleteRenderbuffers",
		"glBindRenderbuffer",
		"glRenderbufferStorage",
	}
	gl3EntryPoints = []string{
		"glGetStringi",
		"glMapBufferRange",
		"glUnmapBuffer",
		"glDrawBuffers",
	}
)

// entryPoints lists the optional entry points the profile calls.
func (p *profile) entryPoints() []string {
	out := slices.Clone(framebufferEntryPoints)
	if p.gl3 {
		out = append(out, gl3EntryPoints...)
	}
	if p.attachmentBits {
		out = append(out, "glGetFramebufferAttachmentParameteriv")
	}
	return out
}

// framebufferExtensions are required by OpenGL 2.1 contexts that lack
// GL_ARB_framebuffer_object. The first one missing is reported.
var framebufferExtensions = []string{
	"GL_EXT_framebuffer_object",
	"GL_EXT_framebuffer_multisample",
	"GL_EXT_framebuffer_blit",
	"GL_EXT_packed_depth_stencil",
}

// selectProfile picks the profile for a context. visible reports whether an
// extension is both supported and not hidden by restrictions.
func selectProfile(v Version, visible func(string) bool) (Profile, error) {
	if v.ES {
		switch {
		case v.Major >= 3:
			return ProfileES3, nil
		case v.Major == 2:
			return ProfileES2, nil
		}
		return 0, &UnsupportedError{Missing: fmt.Sprintf("OpenGL ES 2.0 (context is OpenGL ES %d.%d)", v.Major, v.Minor)}
	}
	switch {
	case v.Major >= 3:
		return ProfileGL3, nil
	case v.AtLeast(2, 1):
		if visible("GL_ARB_framebuffer_object") {
			return ProfileGL2, nil
		}
		for _, ext := range framebufferExtensions {
			if !visible(ext) {
				return 0, &UnsupportedError{Missing: ext}
			}
		}
		return ProfileGL2, nil
	}
	return 0, &UnsupportedError{Missing: fmt.Sprintf("OpenGL 2.1 (context is OpenGL %d.%d)", v.Major, v.Minor)}
}

func (p *profile) checkTextureType(t TextureType) error {
	if t < 0 || t >= textureTypeCount {
		return constraintf(ErrOutOfRange, "texture type", "%d", int(t))
	}
	f := textureTypes[t]
	if f.legacy && !p.legacyTextures || f.modern && !p.gl3 {
		return constraintf(ErrUnsupportedOperation, "texture type", "%s on %s", t, p.kind)
	}
	return nil
}

func (p *profile) checkUsage(u UsageHint) error {
	if u < 0 || u >= usageHintCount {
		return constraintf(ErrOutOfRange, "usage hint", "%d", int(u))
	}
	if !u.draw() && !p.gl3 && p.es {
		return constraintf(ErrUnsupportedOperation, "usage hint", "%s on %s", u, p.kind)
	}
	return nil
}

func (p *profile) checkBlendEquation(e BlendEquation) error {
	if (e == BlendMinimum || e == BlendMaximum) && !p.blendMinMax {
		return constraintf(ErrUnsupportedOperation, "blend equation", "%s on %s", e, p.kind)
	}
	return nil
}

// drawBuffer maps a color attachment index to its GL attachment point.
func drawBuffer(index int) uint32 { return gl.ColorAttachment0 + uint32(index) }
