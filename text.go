package liner

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"
)

// toText converts v the way fmt's %v would, except that a panicking method
// or a failing MarshalText is reported as an error.
func toText(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case error:
		return textOf(v, "Error", func() (string, error) { return x.Error(), nil })
	case fmt.Stringer:
		return textOf(v, "String", func() (string, error) { return x.String(), nil })
	case encoding.TextMarshaler:
		return textOf(v, "MarshalText", func() (string, error) {
			b, err := x.MarshalText()
			if err != nil {
				return "", fmt.Errorf("%w: %T: %w", ErrConversion, v, err)
			}
			return string(b), nil
		})
	}
	return fmt.Sprint(v), nil
}

// textOf calls method, turning a panic into ErrConversion. A nil pointer
// receiver that panics renders as "<nil>", as fmt does.
func textOf(v any, method string, call func() (string, error)) (out string, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			out, err = "<nil>", nil
			return
		}
		out, err = "", fmt.Errorf("%w: %T.%s panicked: %v", ErrConversion, v, method, r)
	}()
	return call()
}

func repr(v any) string {
	if s, ok := v.(string); ok {
		return strconv.Quote(s)
	}
	return fmt.Sprintf("%#v", v)
}

func asciiRepr(v any) string {
	if s, ok := v.(string); ok {
		return strconv.QuoteToASCII(s)
	}
	s := fmt.Sprintf("%#v", v)
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r < utf8.RuneSelf:
			sb.WriteRune(r)
		case r <= 0xFFFF:
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			fmt.Fprintf(&sb, `\U%08x`, r)
		}
	}
	return sb.String()
}

// lookup follows the accessor path starting from v. name is only used in
// error messages.
func lookup(v any, name string, path []accessor) (out any, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("%w: %s: %v", ErrConversion, name, r)
		}
	}()
	for _, a := range path {
		next, ok := a.apply(v)
		if !ok {
			if a.attr {
				return nil, fmt.Errorf("%w: %s: %T has no attribute %q", ErrConversion, name, v, a.key)
			}
			return nil, fmt.Errorf("%w: %s: cannot index %T with [%s]", ErrConversion, name, v, a.key)
		}
		name += a.String()
		v = next
	}
	return v, nil
}

func (a accessor) String() string {
	if a.attr {
		return "." + a.key
	}
	return "[" + a.key + "]"
}

func (a accessor) apply(v any) (any, bool) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, false
	}
	if a.attr {
		if m := rv.MethodByName(a.key); m.IsValid() && m.Type().NumIn() == 0 && m.Type().NumOut() == 1 {
			return m.Call(nil)[0].Interface(), true
		}
	}
	rv = indirect(rv)
	switch rv.Kind() {
	case reflect.Struct:
		if !a.attr {
			return nil, false
		}
		f := rv.FieldByName(a.key)
		if !f.IsValid() || !f.CanInterface() {
			return nil, false
		}
		return f.Interface(), true
	case reflect.Map:
		key, ok := mapKey(rv.Type().Key(), a)
		if !ok {
			return nil, false
		}
		e := rv.MapIndex(key)
		if !e.IsValid() {
			return nil, false
		}
		return e.Interface(), true
	case reflect.Slice, reflect.Array:
		if a.attr {
			return nil, false
		}
		n, err := strconv.Atoi(a.key)
		if err != nil || n < 0 || n >= rv.Len() {
			return nil, false
		}
		return rv.Index(n).Interface(), true
	}
	return nil, false
}

func mapKey(t reflect.Type, a accessor) (reflect.Value, bool) {
	switch t.Kind() {
	case reflect.String:
		return reflect.ValueOf(a.key).Convert(t), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if a.attr {
			return reflect.Value{}, false
		}
		n, err := strconv.ParseInt(a.key, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(n).Convert(t), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if a.attr {
			return reflect.Value{}, false
		}
		n, err := strconv.ParseUint(a.key, 10, t.Bits())
		if err != nil {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(n).Convert(t), true
	case reflect.Interface:
		return reflect.ValueOf(a.key), t.NumMethod() == 0
	}
	return reflect.Value{}, false
}

func indirect(rv reflect.Value) reflect.Value {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return rv
		}
		rv = rv.Elem()
	}
	return rv
}
