package plog

import (
	"fmt"
	"reflect"
	"strings"
)

const NULL_TEXT = "null"

// objectFormatters maps a dynamic type to the function rendering it. The
// table is filled by WithObjectFormatter while a Config is built and is
// read-only afterwards.
type objectFormatters map[reflect.Type]func(any) string

// WithObjectFormatter registers f for values whose dynamic type is exactly T.
// Values of other types fall back to fmt's %+v (which honours Stringer and
// error), nil prints as "null".
func WithObjectFormatter[T any](f func(T) string) Option {
	return func(c *Config) {
		next := make(objectFormatters, len(c.objects)+1)
		for k, v := range c.objects {
			next[k] = v
		}
		next[reflect.TypeFor[T]()] = func(v any) string { return f(v.(T)) }
		c.objects = next
	}
}

func (m objectFormatters) format(obj any) string {
	if isNil(obj) {
		return NULL_TEXT
	}
	if f, ok := m[reflect.TypeOf(obj)]; ok {
		return f(obj)
	}
	return fmt.Sprintf("%+v", obj)
}

// formatArray renders slices and arrays deeply: "[1, [2, 3], null]".
func formatArray(arr any) string {
	if isNil(arr) {
		return NULL_TEXT
	}
	var sb strings.Builder
	writeDeep(&sb, reflect.ValueOf(arr))
	return sb.String()
}

func writeDeep(sb *strings.Builder, v reflect.Value) {
	for v.Kind() == reflect.Interface || v.Kind() == reflect.Pointer {
		if v.IsNil() {
			sb.WriteString(NULL_TEXT)
			return
		}
		if v.Kind() == reflect.Pointer && v.Elem().Kind() != reflect.Slice && v.Elem().Kind() != reflect.Array {
			break
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			sb.WriteString(NULL_TEXT)
			return
		}
		sb.WriteByte('[')
		for i := range v.Len() {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeDeep(sb, v.Index(i))
		}
		sb.WriteByte(']')
	default:
		sb.WriteString(fmt.Sprint(v.Interface()))
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
