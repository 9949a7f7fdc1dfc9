package cache

import (
	"fmt"
	"strconv"

	"github.com/fystack/kvcache/pkg/common/errors"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindText
	KindBlob
	KindInt
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindBlob:
		return "blob"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "invalid"
	}
}

// Value is one of text, binary blob, integer or float. Build it with Text,
// Blob, Int or Float; the zero Value is rejected by Cache.Store.
type Value struct {
	kind Kind
	text string
	blob []byte
	i    int64
	f    float64
}

func Text(s string) Value { return Value{kind: KindText, text: s} }

func Blob(b []byte) Value { return Value{kind: KindBlob, blob: append([]byte{}, b...)} }

func Int(i int64) Value { return Value{kind: KindInt, i: i} }

func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

func (v Value) Kind() Kind { return v.kind }

// Encode returns the bytes written to the store. Numbers are stored as their
// canonical decimal text so GetInt and GetFloat can parse them back.
func (v Value) Encode() ([]byte, error) {
	switch v.kind {
	case KindText:
		return []byte(v.text), nil
	case KindBlob:
		return append([]byte{}, v.blob...), nil
	case KindInt:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case KindFloat:
		return []byte(strconv.FormatFloat(v.f, 'g', -1, 64)), nil
	default:
		return nil, errors.ErrUnsupportedValue
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindText:
		return strconv.Quote(v.text)
	case KindBlob:
		return fmt.Sprintf("blob(%d bytes)", len(v.blob))
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	default:
		return "<invalid>"
	}
}
