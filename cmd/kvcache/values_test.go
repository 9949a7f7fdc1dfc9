package main

import (
	"context"
	"testing"

	"github.com/fystack/kvcache/pkg/cache"
	"github.com/fystack/kvcache/pkg/kvstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		kind    string
		arg     string
		want    cache.Kind
		encoded string
		wantErr bool
	}{
		{kind: "auto", arg: "42", want: cache.KindInt, encoded: "42"},
		{kind: "auto", arg: "3.5", want: cache.KindFloat, encoded: "3.5"},
		{kind: "auto", arg: "hello", want: cache.KindText, encoded: "hello"},
		{kind: "text", arg: "42", want: cache.KindText, encoded: "42"},
		{kind: "int", arg: "-7", want: cache.KindInt, encoded: "-7"},
		{kind: "int", arg: "x", wantErr: true},
		{kind: "float", arg: "1e3", want: cache.KindFloat, encoded: "1000"},
		{kind: "float", arg: "nope", wantErr: true},
		{kind: "blob", arg: "0001ff", want: cache.KindBlob, encoded: "\x00\x01\xff"},
		{kind: "blob", arg: "zz", wantErr: true},
		{kind: "json", arg: "{}", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.kind+"/"+tt.arg, func(t *testing.T) {
			v, err := parseValue(tt.kind, tt.arg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Kind())
			encoded, err := v.Encode()
			require.NoError(t, err)
			assert.Equal(t, tt.encoded, string(encoded))
		})
	}
}

func TestParseValues(t *testing.T) {
	values, err := parseValues("auto", []string{"1", "two", "3.0"})
	require.NoError(t, err)
	require.Len(t, values, 3)
	assert.Equal(t, cache.KindInt, values[0].Kind())
	assert.Equal(t, cache.KindText, values[1].Kind())
	assert.Equal(t, cache.KindFloat, values[2].Kind())

	_, err = parseValues("int", []string{"1", "two"})
	assert.Error(t, err)

	_, err = parseValues("yaml", []string{"1"})
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	ctx := context.Background()
	kv, err := cache.New(ctx, kvstore.NewMemoryStore())
	require.NoError(t, err)

	cases := []struct {
		value cache.Value
		want  string
	}{
		{cache.Text("hello"), `"hello"`},
		{cache.Int(42), "42"},
		{cache.Float(0.5), "0.5"},
		{cache.Blob([]byte{0x00, 0x01}), "0001"},
	}
	for _, tc := range cases {
		key, err := kv.Store(ctx, tc.value)
		require.NoError(t, err)

		got, err := describe(ctx, kv, key, tc.value.Kind())
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	got, err := describe(ctx, kv, "missing", cache.KindInt)
	require.NoError(t, err)
	assert.Equal(t, "<absent>", got)
}

func TestMaskString(t *testing.T) {
	assert.Equal(t, "", maskString(""))
	assert.Equal(t, "*", maskString("x"))
	assert.Equal(t, "**", maskString("ab"))
	assert.Equal(t, "a*c", maskString("abc"))
	assert.Equal(t, "s****t", maskString("secret"))
}
