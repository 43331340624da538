package jcgl

import (
	"log/slog"
	"slices"
)

// Restrictions let a developer emulate a weaker driver than the one present.
// They are consulted by construction only.
type Restrictions interface {
	// ExtensionVisible reports whether a supported extension may be used.
	ExtensionVisible(name string) bool
	// TextureUnitCount returns the number of texture units to expose given
	// the count reported by the driver.
	TextureUnitCount(available int) int
}

// DefaultRestrictions exposes everything the driver reports.
var DefaultRestrictions Restrictions = noRestrictions{}

type noRestrictions struct{}

func (noRestrictions) ExtensionVisible(string) bool { return true }
func (noRestrictions) TextureUnitCount(n int) int   { return n }

// Limits is a Restrictions value built from plain fields.
type Limits struct {
	// TextureUnits caps the texture unit count; zero means no cap.
	TextureUnits int
	// HiddenExtensions are treated as unsupported.
	HiddenExtensions []string
}

func (l Limits) ExtensionVisible(name string) bool {
	return !slices.Contains(l.HiddenExtensions, name)
}

func (l Limits) TextureUnitCount(n int) int {
	if l.TextureUnits > 0 && l.TextureUnits < n {
		return l.TextureUnits
	}
	return n
}

type options struct {
	logger       *slog.Logger
	restrictions Restrictions
	quirks       bool
}

// Option configures New.
type Option func(*options)

// WithLogger sets the logger used for lifecycle diagnostics. Resource
// operations log at debug level. A nil logger disables logging, which is
// also the default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = newNopLogger()
		}
		o.logger = l
	}
}

// WithRestrictions installs soft restrictions.
func WithRestrictions(r Restrictions) Option {
	return func(o *options) {
		if r == nil {
			r = DefaultRestrictions
		}
		o.restrictions = r
	}
}

// WithQuirks enables or disables driver specific workarounds. They are
// enabled by default.
func WithQuirks(enabled bool) Option {
	return func(o *options) { o.quirks = enabled }
}
