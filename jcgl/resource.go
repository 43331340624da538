package jcgl

type lifecycle uint8

const (
	live lifecycle = iota
	deleted
)

// resource is the state shared by every handle: the driver-assigned name and
// whether the object has been deleted. Deletion is one-way.
type resource struct {
	name  uint32
	state lifecycle
}

// Name returns the driver-assigned object name.
func (r *resource) Name() uint32 { return r.name }

// Deleted reports whether the resource has been deleted.
func (r *resource) Deleted() bool { return r.state == deleted }

// handle is implemented by every resource type. res returns nil for typed
// nil pointers.
type handle interface {
	res() *resource
}

// Resource is a driver object owned by a Context.
type Resource interface {
	Name() uint32
	Deleted() bool
}

// checkLive is the single liveness guard. It rejects nil handles, including
// typed nil pointers, then deleted handles.
func checkLive(h handle, subject string) error {
	if h == nil {
		return constraint(ErrNilArgument, subject)
	}
	r := h.res()
	if r == nil {
		return constraint(ErrNilArgument, subject)
	}
	if r.state == deleted {
		return constraintf(ErrDeleted, subject, "name %d", r.name)
	}
	return nil
}

func release(h handle) {
	h.res().state = deleted
}

func checkRange(subject string, v, lo, hi int) error {
	if v < lo || v > hi {
		return constraintf(ErrOutOfRange, subject, "%d not in [%d, %d]", v, lo, hi)
	}
	return nil
}

func checkAtLeast(subject string, v, lo int) error {
	if v < lo {
		return constraintf(ErrOutOfRange, subject, "%d < %d", v, lo)
	}
	return nil
}

// Area is an inclusive-exclusive rectangle of texels or pixels.
type Area struct {
	X, Y          int
	Width, Height int
}

func (a Area) inside(width, height int) bool {
	return a.X >= 0 && a.Y >= 0 && a.Width >= 0 && a.Height >= 0 &&
		a.X+a.Width <= width && a.Y+a.Height <= height
}
