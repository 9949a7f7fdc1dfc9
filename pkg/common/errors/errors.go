package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode is matched by every failure to decode a stored value.
	ErrDecode = errors.New("decode stored value")
	// ErrUnsupportedValue is returned when storing a zero Value.
	ErrUnsupportedValue = errors.New("unsupported value")
	// ErrNotInteger is returned by Incr when the existing value is not an integer.
	ErrNotInteger = errors.New("value is not an integer")
	// ErrOverflow is returned by Incr when the counter already holds the largest int64.
	ErrOverflow       = errors.New("increment would overflow")
	ErrEmptyPrefix    = errors.New("key prefix must not be empty")
	ErrUnknownBackend = errors.New("unknown store backend")
)

func Wrap(err error, msg string) error {
	return fmt.Errorf("%s: %w", msg, err)
}

func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

func New(msg string) error {
	return errors.New(msg)
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}
