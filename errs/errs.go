// Package errs holds the error kinds shared by the stream engine, the
// compression backends and the alias registry. Call sites wrap these with
// context; callers test for a kind with errors.Is.
package errs

import (
	"github.com/pkg/errors"
)

var (
	// ErrBoundsViolation is returned when a cursor or length would exceed a
	// buffer's capacity, or a numeric value is outside its representable range.
	ErrBoundsViolation = errors.New("bounds violation")

	// ErrInvalidArgument is returned for absent required arguments or values of
	// the wrong shape.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedEncoding is returned for unrecognized protocol versions,
	// compression algorithms and charsets.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")

	// ErrTimeout is returned when a blocking backend does not complete in time.
	ErrTimeout = errors.New("operation timed out")
)

func Bounds(format string, args ...interface{}) error {
	return errors.Wrapf(ErrBoundsViolation, format, args...)
}

func InvalidArgument(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}

func Unsupported(format string, args ...interface{}) error {
	return errors.Wrapf(ErrUnsupportedEncoding, format, args...)
}

func Timeout(format string, args ...interface{}) error {
	return errors.Wrapf(ErrTimeout, format, args...)
}
