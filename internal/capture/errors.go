package capture

import (
	"errors"
	"fmt"
)

// Kind classifies capture failures.
type Kind int

const (
	KindUnknown Kind = iota
	// KindUnavailable: enumeration or a required field is inaccessible.
	KindUnavailable
	// KindNotFound: a lookup by name, point or handle matched nothing.
	KindNotFound
	// KindAmbiguous: a lookup matched more than the one entity expected.
	KindAmbiguous
	// KindBoundsViolation: a crop rectangle leaves the source image.
	KindBoundsViolation
	// KindCaptureFailed: the platform refused or failed a pixel capture.
	KindCaptureFailed
)

var (
	ErrUnavailable     = errors.New("capture: unavailable")
	ErrNotFound        = errors.New("capture: not found")
	ErrAmbiguous       = errors.New("capture: ambiguous")
	ErrBoundsViolation = errors.New("capture: bounds violation")
	ErrCaptureFailed   = errors.New("capture: capture failed")
)

func (k Kind) String() string {
	switch k {
	case KindUnavailable:
		return "unavailable"
	case KindNotFound:
		return "not_found"
	case KindAmbiguous:
		return "ambiguous"
	case KindBoundsViolation:
		return "bounds_violation"
	case KindCaptureFailed:
		return "capture_failed"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindUnavailable:
		return ErrUnavailable
	case KindNotFound:
		return ErrNotFound
	case KindAmbiguous:
		return ErrAmbiguous
	case KindBoundsViolation:
		return ErrBoundsViolation
	case KindCaptureFailed:
		return ErrCaptureFailed
	default:
		return nil
	}
}

// Error is the typed failure returned by every Service operation.
// errors.Is matches the sentinel for its Kind; errors.Unwrap yields the
// platform cause, if any.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.String()
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// KindOf returns the Kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

func newError(kind Kind, op string, cause error, format string, args ...any) *Error {
	return &Error{
		Kind: kind,
		Op:   op,
		Msg:  fmt.Sprintf(format, args...),
		Err:  cause,
	}
}

// passthrough keeps an inner *Error intact and wraps anything else as kind.
func passthrough(kind Kind, op string, err error) error {
	var ce *Error
	if errors.As(err, &ce) {
		return err
	}
	return &Error{Kind: kind, Op: op, Err: err}
}
