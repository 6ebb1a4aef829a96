// Package structure contains type-related operations over values of type any,
// such as iterating over keys, reading a key out of a value, checking whether a
// value is falsy and comparing primitives.
//
// Struct fields are addressed by the name they would have in JSON: the name in
// the "json" tag if present, the field name otherwise. Embedded structs without
// a tag are flattened, like encoding/json does.
package structure

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-reflect"
)

var (
	// ErrNilObj may be returned by [Seq2] when a nil value is passed as
	// argument.
	ErrNilObj = errors.New("nil object")
)

// ErrorNonObject is returned by [Seq2] when a value that is neither a struct,
// map, slice nor array is passed as argument.
type ErrorNonObject struct {
	Kind reflect.Kind
}

func (e ErrorNonObject) Error() string {
	return fmt.Sprintf("value of kind %s is not an object", e.Kind)
}

// Falsy reports whether v is nil, false, an empty string, a numeric zero or
// NaN. Pointers and interfaces are followed; a nil map, slice, pointer, func or
// channel is falsy as well. Non-nil objects are never falsy, even if empty.
func Falsy(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case time.Time:
		return false
	}
	if n, ok := AsNumber(v); ok {
		return n == 0 || math.IsNaN(n)
	}
	rv := reflect.ValueNoEscapeOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return Falsy(rv.Elem().Interface())
	case reflect.Map, reflect.Slice, reflect.Func, reflect.Chan,
		reflect.UnsafePointer:
		return rv.IsNil()
	case reflect.Bool:
		return !rv.Bool()
	case reflect.String:
		return rv.Len() == 0
	}
	return false
}

// IsObject reports whether v has keys that can be iterated with [Seq2]: maps,
// structs, slices and arrays, or pointers to them. [time.Time] and []byte are
// treated as primitives.
func IsObject(v any) bool {
	switch v.(type) {
	case time.Time, []byte, json.Number:
		return false
	}
	rv := indirect(v)
	if !rv.IsValid() {
		return false
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return true
	case reflect.Struct:
		_, isTime := rv.Interface().(time.Time)
		return !isTime
	}
	return false
}

// Seq2 returns an iterator over the keys and values of obj, along with the
// number of keys. Slices and arrays are iterated with their indexes as keys.
func Seq2(obj any) (iter.Seq2[string, any], int, error) {
	if m, ok := obj.(map[string]any); ok {
		return iterMap(m), len(m), nil
	}
	v := indirect(obj)
	if !v.IsValid() {
		return nil, 0, ErrNilObj
	}
	switch v.Kind() {
	case reflect.Map:
		return iterReflectMap(v), v.Len(), nil
	case reflect.Struct:
		fields := structFields(v)
		return func(yield func(string, any) bool) {
			for _, f := range fields {
				if !yield(f.name, f.value.Interface()) {
					return
				}
			}
		}, len(fields), nil
	case reflect.Slice, reflect.Array:
		return func(yield func(string, any) bool) {
			for n := range v.Len() {
				if !yield(strconv.Itoa(n), v.Index(n).Interface()) {
					return
				}
			}
		}, v.Len(), nil
	}
	return nil, 0, ErrorNonObject{Kind: v.Kind()}
}

// Get returns the value stored under key in obj and whether it is defined.
// Maps are read by key, structs by field name, slices and arrays by index
// and strings by rune index. Anything else is undefined.
func Get(obj any, key string) (any, bool) {
	if m, ok := obj.(map[string]any); ok {
		value, ok := m[key]
		return value, ok
	}
	v := indirect(obj)
	if !v.IsValid() {
		return nil, false
	}
	switch v.Kind() {
	case reflect.Map:
		for _, k := range v.MapKeys() {
			if keyString(k) == key {
				return v.MapIndex(k).Interface(), true
			}
		}
	case reflect.Struct:
		fields := structFields(v)
		for _, f := range fields {
			if f.name == key {
				return f.value.Interface(), true
			}
		}
		for _, f := range fields {
			if strings.EqualFold(f.name, key) {
				return f.value.Interface(), true
			}
		}
	case reflect.Slice, reflect.Array:
		if n, err := strconv.Atoi(key); err == nil && n >= 0 && n < v.Len() {
			return v.Index(n).Interface(), true
		}
	case reflect.String:
		runes := []rune(v.String())
		if n, err := strconv.Atoi(key); err == nil && n >= 0 && n < len(runes) {
			return string(runes[n]), true
		}
	}
	return nil, false
}

// Equal reports whether a and b are equal primitives. Numbers are compared by
// value regardless of their Go type, so int(1) equals float64(1).
func Equal(a, b any) bool {
	if an, ok := AsNumber(a); ok {
		bn, ok := AsNumber(b)
		return ok && an == bn
	}
	switch at := a.(type) {
	case time.Time:
		bt, ok := b.(time.Time)
		return ok && at.Equal(bt)
	case []byte:
		bt, ok := b.([]byte)
		return ok && bytes.Equal(at, bt)
	}
	va, vb := indirect(a), indirect(b)
	if !va.IsValid() || !vb.IsValid() {
		return !va.IsValid() && !vb.IsValid()
	}
	switch va.Kind() {
	case reflect.String:
		return vb.Kind() == reflect.String && va.String() == vb.String()
	case reflect.Bool:
		return vb.Kind() == reflect.Bool && va.Bool() == vb.Bool()
	}
	return false
}

// AsNumber converts any number, including named numeric types and
// [json.Number], to float64 and reports whether v is a number.
func AsNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	}
	rv := indirect(v)
	if !rv.IsValid() {
		return 0, false
	}
	if n, ok := rv.Interface().(json.Number); ok {
		f, err := n.Float64()
		return f, err == nil
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func indirect(v any) reflect.Value {
	if v == nil {
		return reflect.Value{}
	}
	rv := reflect.ValueNoEscapeOf(v)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}
		}
		rv = rv.Elem()
	}
	return rv
}

func keyString(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	return fmt.Sprint(k.Interface())
}

type field struct {
	name  string
	value reflect.Value
}

func structFields(v reflect.Value) []field {
	typ := v.Type()
	fields := make([]field, 0, typ.NumField())
	var sf reflect.StructField
	for n := range typ.NumField() {
		sf = typ.Field(n)
		tag, hasTag := sf.Tag.Lookup("json")
		name, _, _ := strings.Cut(tag, ",")
		if name == "-" && tag == "-" {
			continue
		}

		if sf.Anonymous && name == "" {
			embedded := v.Field(n)
			for embedded.Kind() == reflect.Ptr {
				if embedded.IsNil() {
					break
				}
				embedded = embedded.Elem()
			}
			switch embedded.Kind() {
			case reflect.Struct:
				fields = append(fields, structFields(embedded)...)
				continue
			case reflect.Ptr:
				continue
			}
		}

		if sf.PkgPath != "" {
			continue
		}
		if !hasTag || name == "" {
			name = sf.Name
		}
		fields = append(fields, field{name: name, value: v.Field(n)})
	}
	return fields
}

func iterMap(m map[string]any) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for k, v := range m {
			if !yield(k, v) {
				return
			}
		}
	}
}

func iterReflectMap(v reflect.Value) iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, k := range v.MapKeys() {
			if !yield(keyString(k), v.MapIndex(k).Interface()) {
				return
			}
		}
	}
}
