package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrNotInteger, "incr calls:Cache.Store")

	assert.Equal(t, "incr calls:Cache.Store: value is not an integer", wrapped.Error())
	assert.True(t, Is(wrapped, ErrNotInteger))
}

func TestWrap_NilError(t *testing.T) {
	wrapped := Wrap(nil, "flush store")

	assert.Error(t, wrapped)
	assert.Contains(t, wrapped.Error(), "<nil>")
}

func TestWrapf(t *testing.T) {
	base := errors.New("connection refused")
	wrapped := Wrapf(base, "get %s", "3f2c")

	assert.Equal(t, "get 3f2c: connection refused", wrapped.Error())
	assert.True(t, errors.Is(wrapped, base))
}

func TestWrap_ChainedErrors(t *testing.T) {
	first := Wrap(ErrDecode, "decode int")
	second := Wrap(first, "get_int")

	assert.Contains(t, second.Error(), "get_int")
	assert.Contains(t, second.Error(), "decode int")
	assert.True(t, Is(second, ErrDecode))
	assert.True(t, Is(second, first))
}

type codeErr struct{ code int }

func (e *codeErr) Error() string { return "code" }

func TestAs(t *testing.T) {
	wrapped := Wrap(&codeErr{code: 7}, "outer")

	var target *codeErr
	assert.True(t, As(wrapped, &target))
	assert.Equal(t, 7, target.code)
}

func TestNew(t *testing.T) {
	err := New("store unreachable")
	assert.Equal(t, "store unreachable", err.Error())
	assert.False(t, Is(err, ErrDecode))
}
