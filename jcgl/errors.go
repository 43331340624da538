package jcgl

import (
	"errors"
	"fmt"

	"github.com/tinyrange/canephora/gl"
)

// Caller errors. They are reported wrapped in a *ConstraintError, before any
// native call is issued.
var (
	ErrNilArgument          = errors.New("required argument is nil")
	ErrDeleted              = errors.New("resource has been deleted")
	ErrNotBound             = errors.New("resource is not bound")
	ErrNotActive            = errors.New("program is not active")
	ErrOutOfRange           = errors.New("value out of range")
	ErrDuplicateAttachment  = errors.New("color attachment point already used")
	ErrDuplicateName        = errors.New("name declared twice")
	ErrMultipleDepthStencil = errors.New("more than one depth or stencil attachment")
	ErrNoColorAttachment    = errors.New("no color buffer attached")
	ErrTypeMismatch         = errors.New("type mismatch")
	ErrForeignAttribute     = errors.New("attribute does not belong to the array buffer")
	ErrUnsupportedOperation = errors.New("operation not supported by the current profile")
	ErrNoDepthBuffer        = errors.New("no depth buffer")
	ErrNoStencilBuffer      = errors.New("no stencil buffer")
)

// ConstraintError is a violated precondition on a caller supplied argument.
type ConstraintError struct {
	// Subject is the argument or operation the constraint applies to.
	Subject string
	Detail  string
	Err     error
}

func (e *ConstraintError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("jcgl: %s: %v: %s", e.Subject, e.Err, e.Detail)
	}
	return fmt.Sprintf("jcgl: %s: %v", e.Subject, e.Err)
}

func (e *ConstraintError) Unwrap() error { return e.Err }

func constraint(err error, subject string, detail ...any) *ConstraintError {
	e := &ConstraintError{Subject: subject, Err: err}
	if len(detail) > 0 {
		e.Detail = fmt.Sprint(detail...)
	}
	return e
}

func constraintf(err error, subject, format string, args ...any) *ConstraintError {
	return &ConstraintError{Subject: subject, Err: err, Detail: fmt.Sprintf(format, args...)}
}

// DriverError is a code raised by the driver through the GL error flag.
type DriverError struct {
	Code uint32
	// Op is the facade operation that observed the error.
	Op string
}

func (e *DriverError) Error() string {
	return fmt.Sprintf("jcgl: %s: driver error 0x%04x (%s)", e.Op, e.Code, errorName(e.Code))
}

func errorName(code uint32) string {
	switch code {
	case gl.InvalidEnum:
		return "invalid enum"
	case gl.InvalidValue:
		return "invalid value"
	case gl.InvalidOperation:
		return "invalid operation"
	case gl.StackOverflow:
		return "stack overflow"
	case gl.StackUnderflow:
		return "stack underflow"
	case gl.OutOfMemory:
		return "out of memory"
	case gl.InvalidFramebufferOperation:
		return "invalid framebuffer operation"
	default:
		return "unknown error"
	}
}

// CompileError is a failed shader compilation or program link. Log holds the
// driver's info log verbatim.
type CompileError struct {
	Name string
	Log  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("jcgl: compile %q: %s", e.Name, e.Log)
}

// FramebufferStatus names the reason a framebuffer is incomplete.
type FramebufferStatus int

const (
	FramebufferIncompleteAttachment FramebufferStatus = iota
	FramebufferMissingAttachment
	FramebufferIncompleteDrawBuffer
	FramebufferIncompleteReadBuffer
	FramebufferUnsupported
	FramebufferUnknown
)

func (s FramebufferStatus) String() string {
	switch s {
	case FramebufferIncompleteAttachment:
		return "Framebuffer is incomplete"
	case FramebufferMissingAttachment:
		return "Framebuffer is missing image attachment"
	case FramebufferIncompleteDrawBuffer:
		return "Framebuffer has missing draw buffer"
	case FramebufferIncompleteReadBuffer:
		return "Framebuffer has missing read buffer"
	case FramebufferUnsupported:
		return "Framebuffer configuration unsupported"
	default:
		return "Unknown framebuffer error"
	}
}

// framebufferStatus maps a CheckFramebufferStatus result. Complete reports
// ok; every other code, known or not, yields an incompleteness kind.
func framebufferStatus(code uint32) (FramebufferStatus, bool) {
	switch code {
	case gl.FramebufferComplete:
		return 0, true
	case gl.FramebufferIncompleteAttachment:
		return FramebufferIncompleteAttachment, false
	case gl.FramebufferIncompleteMissingAttachment:
		return FramebufferMissingAttachment, false
	case gl.FramebufferIncompleteDrawBuffer:
		return FramebufferIncompleteDrawBuffer, false
	case gl.FramebufferIncompleteReadBuffer:
		return FramebufferIncompleteReadBuffer, false
	case gl.FramebufferUnsupported:
		return FramebufferUnsupported, false
	default:
		return FramebufferUnknown, false
	}
}

// FramebufferError reports an incomplete framebuffer.
type FramebufferError struct {
	Code   uint32
	Status FramebufferStatus
}

func (e *FramebufferError) Error() string {
	return fmt.Sprintf("jcgl: %s (0x%04x)", e.Status, e.Code)
}

// UnsupportedError reports a context that lacks a capability this module
// requires.
type UnsupportedError struct {
	// Missing names the absent extension or version.
	Missing string
}

func (e *UnsupportedError) Error() string {
	return "unsupported: missing " + e.Missing
}
