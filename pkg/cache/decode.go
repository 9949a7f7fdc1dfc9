package cache

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/fystack/kvcache/pkg/common/errors"
)

// Decoder turns raw stored bytes into a typed value.
type Decoder[T any] func(raw []byte) (T, error)

// DecodeError reports stored bytes that could not be decoded into Target.
// It matches errors.ErrDecode with errors.Is.
type DecodeError struct {
	Target string
	Raw    []byte
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q as %s: %v", truncate(e.Raw, 32), e.Target, e.Err)
}

func (e *DecodeError) Unwrap() []error {
	return []error{errors.ErrDecode, e.Err}
}

func truncate(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[:n]
}

// DecodeString interprets raw as UTF-8 text.
func DecodeString(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", &DecodeError{Target: "string", Raw: raw, Err: errors.New("invalid utf-8")}
	}
	return string(raw), nil
}

// DecodeInt interprets raw as UTF-8 text holding a base-10 int64.
func DecodeInt(raw []byte) (int64, error) {
	s, err := DecodeString(raw)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &DecodeError{Target: "int", Raw: raw, Err: err}
	}
	return n, nil
}

// DecodeFloat interprets raw as UTF-8 text holding a float64.
func DecodeFloat(raw []byte) (float64, error) {
	s, err := DecodeString(raw)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &DecodeError{Target: "float", Raw: raw, Err: err}
	}
	return f, nil
}
