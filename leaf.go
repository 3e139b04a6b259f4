package dumper

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/google/uuid"
)

var (
	timeType     = reflect.TypeFor[time.Time]()
	durationType = reflect.TypeFor[time.Duration]()
	uuidType     = reflect.TypeFor[uuid.UUID]()
)

// isLeaf reports whether values of t are printed as a single line of text
// instead of field by field.
func isLeaf(t reflect.Type) bool {
	switch t {
	case timeType, durationType, uuidType:
		return true
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

// leafText returns the default textual form of a leaf value.
func leafText(v reflect.Value) string {
	switch v.Type() {
	case timeType:
		return v.Interface().(time.Time).Format(time.RFC3339Nano)
	case durationType:
		return time.Duration(v.Int()).String()
	case uuidType:
		return v.Interface().(uuid.UUID).String()
	}
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'g', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// text converts an arbitrary value to a string: strings pass through, leaves
// use their default form, anything else falls back to fmt.
func text(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return nullToken
	}
	rv := reflect.ValueOf(v)
	if isLeaf(rv.Type()) {
		return leafText(rv)
	}
	if str, ok := v.(fmt.Stringer); ok {
		return str.String()
	}
	return fmt.Sprintf("%v", v)
}

// typeName returns the short name of t, or its full description when t is
// unnamed.
func typeName(t reflect.Type) string {
	if name := t.Name(); name != "" {
		return name
	}
	return t.String()
}
