package grid

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Record is the only capability the pipeline needs from a row: reading a
// value by field name. Missing fields return nil.
type Record interface {
	Field(key string) any
}

// Map is a Record backed by a plain map. Keys containing dots are resolved
// as paths through nested maps when the literal key is absent, so
// "address.city" reads m["address"]["city"].
type Map map[string]any

// Field implements Record.
func (m Map) Field(key string) any {
	if v, ok := m[key]; ok {
		return v
	}
	if !strings.Contains(key, ".") {
		return nil
	}

	var cur any = map[string]any(m)
	for _, part := range strings.Split(key, ".") {
		switch node := cur.(type) {
		case Map:
			cur = node[part]
		case map[string]any:
			cur = node[part]
		default:
			return nil
		}
	}
	return cur
}

// isNull reports whether v should be treated as a missing value.
// Typed nil pointers count as missing.
func isNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

// Stringify converts a field value to the text used for searching, default
// cell rendering and mixed-type comparison. nil becomes "".
func Stringify(v any) string {
	if isNull(v) {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case fmt.Stringer:
		return val.String()
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		return Stringify(rv.Elem().Interface())
	}
	return fmt.Sprint(v)
}

// toNumber reports v as a float64 when it holds any Go numeric kind.
func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
