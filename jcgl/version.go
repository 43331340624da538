package jcgl

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a parsed GL or GLSL version string.
type Version struct {
	Major, Minor int
	// ES is set for OpenGL ES and GLSL ES versions.
	ES bool
	// Text is the string reported by the driver.
	Text string
}

func (v Version) String() string {
	if v.ES {
		return fmt.Sprintf("ES %d.%d", v.Major, v.Minor)
	}
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// AtLeast reports whether v is major.minor or later.
func (v Version) AtLeast(major, minor int) bool {
	return v.Major > major || v.Major == major && v.Minor >= minor
}

const (
	esVersionPrefix   = "OpenGL ES "
	glslESPrefix      = "OpenGL ES GLSL ES "
	esProfileSuffixCM = "-CM "
)

// ParseVersion parses a GL_VERSION string such as "4.6.0 NVIDIA 535.54" or
// "OpenGL ES 3.0 Mesa 9.1.7".
func ParseVersion(s string) (Version, error) {
	v := Version{Text: s}
	rest := s
	if after, ok := strings.CutPrefix(rest, esVersionPrefix); ok {
		v.ES = true
		rest = after
	} else if after, ok := strings.CutPrefix(rest, "OpenGL ES"); ok && strings.HasPrefix(after, esProfileSuffixCM) {
		// OpenGL ES 1.x common profile contexts.
		v.ES = true
		rest = strings.TrimPrefix(after, esProfileSuffixCM)
	}
	major, minor, err := parseMajorMinor(rest)
	if err != nil {
		return Version{}, fmt.Errorf("jcgl: parse version %q: %w", s, err)
	}
	v.Major, v.Minor = major, minor
	return v, nil
}

// ParseShadingLanguageVersion parses a GL_SHADING_LANGUAGE_VERSION string
// such as "1.20 NVIDIA" or "OpenGL ES GLSL ES 3.00".
func ParseShadingLanguageVersion(s string) (Version, error) {
	v := Version{Text: s}
	rest := s
	if after, ok := strings.CutPrefix(rest, glslESPrefix); ok {
		v.ES = true
		rest = after
	}
	major, minor, err := parseMajorMinor(rest)
	if err != nil {
		return Version{}, fmt.Errorf("jcgl: parse shading language version %q: %w", s, err)
	}
	v.Major, v.Minor = major, minor
	return v, nil
}

func parseMajorMinor(s string) (int, int, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		s = s[:i]
	}
	majorText, rest, ok := strings.Cut(s, ".")
	if !ok {
		return 0, 0, fmt.Errorf("no minor version in %q", s)
	}
	if i := strings.IndexByte(rest, '.'); i >= 0 {
		rest = rest[:i]
	}
	major, err := strconv.Atoi(majorText)
	if err != nil {
		return 0, 0, err
	}
	minor, err := strconv.Atoi(rest)
	if err != nil {
		return 0, 0, err
	}
	return major, minor, nil
}
