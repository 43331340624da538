//go:build !linux

package egl

import "github.com/tinyrange/canephora/gl"

type Headless struct{}

func NewHeadless(opts Options) (*Headless, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return nil, ErrUnavailable
}

func (h *Headless) Functions() gl.Functions { return nil }
func (h *Headless) Release()                {}
