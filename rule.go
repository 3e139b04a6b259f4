package dumper

import (
	"fmt"
	"reflect"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Rule appends transformation steps to the chain of one type or one field.
// Every terminal operation returns the updated [Config], so configuration
// continues fluently from the new state.
type Rule[T, V any] struct {
	cfg   Config[T]
	typ   reflect.Type
	field FieldID
}

// SerializeType starts a rule for every value of type V.
//
//	cfg = dumper.SerializeType[int](cfg).Using(func(n int) string { return "<int>" })
func SerializeType[V, T any](c Config[T]) Rule[T, V] {
	return Rule[T, V]{cfg: c, typ: reflect.TypeFor[V]()}
}

// SerializeField starts a rule for one declared field.
func SerializeField[T, O, V any](c Config[T], f FieldRef[O, V]) Rule[T, V] {
	return Rule[T, V]{cfg: c, field: f.Field()}
}

// Step appends a raw step.
func (r Rule[T, V]) Step(s Step) Config[T] {
	if r.typ != nil {
		return r.cfg.WithTypeRule(r.typ, s)
	}
	return r.cfg.WithFieldRule(r.field, s)
}

// Using appends a conversion from V to string. When V is a pointer type and
// the step receives the value it points to, fn gets a pointer to a copy of
// that value. When the step receives something else, such as the output of
// an earlier step, the value passes through in its default text form.
func (r Rule[T, V]) Using(fn func(V) string) Config[T] {
	return r.Step(func(v any) string {
		if tv, ok := as[V](v); ok {
			return fn(tv)
		}
		return text(v)
	})
}

// Then appends a post-processing step on the string form of the value.
func (r Rule[T, V]) Then(fn func(string) string) Config[T] {
	return r.Step(func(v any) string { return fn(text(v)) })
}

// Format appends a step that formats the value with a fmt verb, e.g. "%.2f".
func (r Rule[T, V]) Format(verb string) Config[T] {
	return r.Step(func(v any) string { return fmt.Sprintf(verb, v) })
}

// TrimTo appends a step that cuts the string form to at most n display
// columns. Wide characters are never split.
func (r Rule[T, V]) TrimTo(n int) Config[T] {
	return r.Then(func(s string) string { return trim(s, n) })
}

// Style appends a step that renders the string form with s.
func (r Rule[T, V]) Style(s lipgloss.Style) Config[T] {
	return r.Then(func(str string) string { return s.Render(str) })
}

// Template appends a step that executes a text/template against the value.
// A template that fails to parse yields an error wrapping
// [ErrInvalidTemplate] and no new configuration.
func (r Rule[T, V]) Template(tmpl string) (Config[T], error) {
	step, err := templateStep(tmpl)
	if err != nil {
		return r.cfg, err
	}
	return r.Step(step), nil
}

// JSON appends a step that encodes the value as compact JSON.
func (r Rule[T, V]) JSON() Config[T] {
	return r.Step(jsonStep)
}

func trim(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= n {
		return s
	}
	return runewidth.Truncate(s, n, "")
}

// as converts v to V, taking the address of a copy for every pointer layer
// of V that the renderer has already stripped.
func as[V any](v any) (V, bool) {
	if tv, ok := v.(V); ok {
		return tv, true
	}
	var zero V
	if v == nil {
		return zero, false
	}
	rv := reflect.ValueOf(v)
	want := reflect.TypeFor[V]()
	depth := 0
	for t := want; t != rv.Type(); t = t.Elem() {
		if t.Kind() != reflect.Pointer {
			return zero, false
		}
		depth++
	}
	for range depth {
		p := reflect.New(rv.Type())
		p.Elem().Set(rv)
		rv = p
	}
	return rv.Interface().(V), true
}
