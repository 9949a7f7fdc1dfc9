package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/fystack/kvcache/pkg/cache"
	"github.com/samber/lo"
)

var valueTypes = []string{"auto", "text", "int", "float", "blob"}

// parseValue converts a command-line argument into a cache.Value. "auto"
// picks int, then float, then falls back to text.
func parseValue(kind, arg string) (cache.Value, error) {
	switch kind {
	case "text":
		return cache.Text(arg), nil
	case "int":
		n, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return cache.Value{}, fmt.Errorf("parse %q as int: %w", arg, err)
		}
		return cache.Int(n), nil
	case "float":
		f, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return cache.Value{}, fmt.Errorf("parse %q as float: %w", arg, err)
		}
		return cache.Float(f), nil
	case "blob":
		b, err := hex.DecodeString(arg)
		if err != nil {
			return cache.Value{}, fmt.Errorf("parse %q as hex blob: %w", arg, err)
		}
		return cache.Blob(b), nil
	case "auto":
		if n, err := strconv.ParseInt(arg, 10, 64); err == nil {
			return cache.Int(n), nil
		}
		if f, err := strconv.ParseFloat(arg, 64); err == nil {
			return cache.Float(f), nil
		}
		return cache.Text(arg), nil
	}
	return cache.Value{}, fmt.Errorf("unknown value type %q (want one of %v)", kind, valueTypes)
}

func parseValues(kind string, args []string) ([]cache.Value, error) {
	if !lo.Contains(valueTypes, kind) {
		return nil, fmt.Errorf("unknown value type %q (want one of %v)", kind, valueTypes)
	}

	var firstErr error
	values := lo.Map(args, func(arg string, _ int) cache.Value {
		v, err := parseValue(kind, arg)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return v
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return values, nil
}

// describe reads key back with the decoder matching kind.
func describe(ctx context.Context, kv *cache.Cache, key string, kind cache.Kind) (string, error) {
	var (
		out   string
		found bool
		err   error
	)

	switch kind {
	case cache.KindText:
		var s string
		s, found, err = kv.GetString(ctx, key)
		out = strconv.Quote(s)
	case cache.KindInt:
		var n int64
		n, found, err = kv.GetInt(ctx, key)
		out = strconv.FormatInt(n, 10)
	case cache.KindFloat:
		var f float64
		f, found, err = kv.GetFloat(ctx, key)
		out = strconv.FormatFloat(f, 'g', -1, 64)
	default:
		var raw []byte
		raw, found, err = kv.Get(ctx, key)
		out = hex.EncodeToString(raw)
	}

	if err != nil {
		return "", err
	}
	if !found {
		return "<absent>", nil
	}
	return out, nil
}
