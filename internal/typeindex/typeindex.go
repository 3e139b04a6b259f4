// Package typeindex resolves human-written type names such as "int",
// "time.Duration" or "model.Person" to reflect types.
//
// An [Index] is built from a root type and covers every named type reachable
// from it through pointers, containers, and exported struct fields, plus the
// builtin kinds and a few well-known standard types. Types declared in a
// package are reachable both as "pkg.Type" and as the bare "Type"; a bare
// name shared by two types only resolves through its qualified form.
package typeindex

import (
	"errors"
	"fmt"
	"path"
	"reflect"
	"time"
)

var (
	// ErrNotFound is returned when no reachable type carries the name.
	ErrNotFound = errors.New("typeindex: type not found")
	// ErrAmbiguous is returned when two distinct types share the same name.
	ErrAmbiguous = errors.New("typeindex: ambiguous type name")
)

var wellKnown = []reflect.Type{
	reflect.TypeFor[bool](),
	reflect.TypeFor[string](),
	reflect.TypeFor[int](),
	reflect.TypeFor[int8](),
	reflect.TypeFor[int16](),
	reflect.TypeFor[int32](),
	reflect.TypeFor[int64](),
	reflect.TypeFor[uint](),
	reflect.TypeFor[uint8](),
	reflect.TypeFor[uint16](),
	reflect.TypeFor[uint32](),
	reflect.TypeFor[uint64](),
	reflect.TypeFor[uintptr](),
	reflect.TypeFor[float32](),
	reflect.TypeFor[float64](),
	reflect.TypeFor[complex64](),
	reflect.TypeFor[complex128](),
	reflect.TypeFor[time.Time](),
	reflect.TypeFor[time.Duration](),
}

// Index maps type names to types.
type Index struct {
	types     map[string]reflect.Type
	ambiguous map[string]bool
}

// New builds an index of every named type reachable from root. Extra types
// are added as well, e.g. leaf types a caller treats specially.
func New(root reflect.Type, extra ...reflect.Type) *Index {
	idx := &Index{
		types:     make(map[string]reflect.Type),
		ambiguous: make(map[string]bool),
	}
	seen := make(map[reflect.Type]bool)
	for _, t := range wellKnown {
		idx.walk(t, seen)
	}
	for _, t := range extra {
		idx.walk(t, seen)
	}
	if root != nil {
		idx.walk(root, seen)
	}
	return idx
}

// Lookup returns the type registered under name.
func (idx *Index) Lookup(name string) (reflect.Type, error) {
	if idx.ambiguous[name] {
		return nil, fmt.Errorf("%w: %q", ErrAmbiguous, name)
	}
	t, ok := idx.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return t, nil
}

// Len returns the number of distinct names in the index.
func (idx *Index) Len() int { return len(idx.types) }

func (idx *Index) walk(t reflect.Type, seen map[reflect.Type]bool) {
	if t == nil || seen[t] {
		return
	}
	seen[t] = true

	if name := Name(t); name != "" {
		idx.add(name, t)
		if short := t.Name(); short != name {
			idx.add(short, t)
		}
	}

	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan:
		idx.walk(t.Elem(), seen)
	case reflect.Map:
		idx.walk(t.Key(), seen)
		idx.walk(t.Elem(), seen)
	case reflect.Struct:
		for i := range t.NumField() {
			if sf := t.Field(i); sf.IsExported() {
				idx.walk(sf.Type, seen)
			}
		}
	}
}

func (idx *Index) add(name string, t reflect.Type) {
	if prev, ok := idx.types[name]; ok && prev != t {
		idx.ambiguous[name] = true
		return
	}
	idx.types[name] = t
}

// Name returns the index name of t: the bare name for builtin types,
// "pkg.Type" for named types declared in a package, and "" for unnamed types.
func Name(t reflect.Type) string {
	if t.Name() == "" {
		return ""
	}
	if p := t.PkgPath(); p != "" {
		return path.Base(p) + "." + t.Name()
	}
	return t.Name()
}
