package cache

import (
	"testing"

	"github.com/fystack/kvcache/pkg/common/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Encode(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		kind  Kind
		want  string
	}{
		{name: "text", value: Text("hello"), kind: KindText, want: "hello"},
		{name: "empty text", value: Text(""), kind: KindText, want: ""},
		{name: "blob", value: Blob([]byte{0x00, 0x01}), kind: KindBlob, want: "\x00\x01"},
		{name: "int", value: Int(-42), kind: KindInt, want: "-42"},
		{name: "float", value: Float(3.5), kind: KindFloat, want: "3.5"},
		{name: "float integral", value: Float(2), kind: KindFloat, want: "2"},
		{name: "float large", value: Float(1e21), kind: KindFloat, want: "1e+21"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.value.Encode()
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
			assert.Equal(t, tt.kind, tt.value.Kind())
		})
	}
}

func TestValue_ZeroIsRejected(t *testing.T) {
	var v Value
	_, err := v.Encode()
	assert.True(t, errors.Is(err, errors.ErrUnsupportedValue))
	assert.Equal(t, KindInvalid, v.Kind())
	assert.Equal(t, "invalid", v.Kind().String())
}

func TestBlob_CopiesInput(t *testing.T) {
	in := []byte("abc")
	v := Blob(in)
	in[0] = 'z'

	got, err := v.Encode()
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, `"hi"`, Text("hi").String())
	assert.Equal(t, "blob(3 bytes)", Blob([]byte("abc")).String())
	assert.Equal(t, "7", Int(7).String())
	assert.Equal(t, "0.25", Float(0.25).String())
}

func TestDecoders(t *testing.T) {
	s, err := DecodeString([]byte("hello"))
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	n, err := DecodeInt([]byte("-17"))
	require.NoError(t, err)
	assert.Equal(t, int64(-17), n)

	f, err := DecodeFloat([]byte("2.5"))
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)

	_, err = DecodeInt([]byte("2.5"))
	assert.True(t, errors.Is(err, errors.ErrDecode))

	_, err = DecodeFloat([]byte{0xc3, 0x28})
	var decodeErr *DecodeError
	require.True(t, errors.As(err, &decodeErr))
	assert.Equal(t, "string", decodeErr.Target)
	assert.Contains(t, err.Error(), "invalid utf-8")
}
