package dumper

import (
	"reflect"
	"strings"

	"github.com/charmbracelet/log"
)

const (
	nullToken = "null"
	indent    = "\t"
	assign    = " = "
)

// printer walks a value graph and writes its dump to out. It only reads the
// rule collections of the Config it was built from.
type printer struct {
	excludedTypes  map[reflect.Type]struct{}
	excludedFields map[FieldID]struct{}
	typeRules      map[reflect.Type]Chain
	fieldRules     map[FieldID]Chain
	logger         *log.Logger
	out            *strings.Builder
}

// render writes v at the given nesting depth. Rules are checked in the same
// order at every depth: exclusion, custom chain, leaf default, then
// structural descent.
func (p *printer) render(v reflect.Value, depth int) {
	v, ok := deref(v)
	if !ok {
		p.out.WriteString(nullToken + "\n")
		return
	}

	t := v.Type()
	if p.typeExcluded(t) {
		p.debug("type excluded", "type", t)
		return
	}
	if chain, ok := p.typeRules[t]; ok && len(chain) > 0 {
		p.debug("type rule", "type", t, "steps", len(chain))
		p.out.WriteString(chain.Apply(v.Interface()))
		return
	}
	if isLeaf(t) {
		p.out.WriteString(leafText(v) + "\n")
		return
	}

	p.out.WriteString(typeName(t) + "\n")
	if t.Kind() != reflect.Struct {
		return
	}

	pad := strings.Repeat(indent, depth+1)
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := v.Field(i)
		id := FieldID{owner: t, name: sf.Name}
		if p.fieldTypeExcluded(sf.Type, fv) {
			p.debug("field skipped", "field", id, "reason", "type excluded")
			continue
		}
		if _, ok := p.excludedFields[id]; ok {
			p.debug("field skipped", "field", id, "reason", "field excluded")
			continue
		}

		p.out.WriteString(pad + sf.Name + assign)
		if chain, ok := p.fieldRules[id]; ok && len(chain) > 0 {
			p.debug("field rule", "field", id, "steps", len(chain))
			p.out.WriteString(chain.Apply(fv.Interface()))
			continue
		}
		p.render(fv, depth+1)
	}
}

func (p *printer) typeExcluded(t reflect.Type) bool {
	_, ok := p.excludedTypes[baseType(t)]
	return ok
}

// fieldTypeExcluded checks both the declared type of a field and, for
// interface or pointer fields, the type of the value it currently holds.
func (p *printer) fieldTypeExcluded(declared reflect.Type, v reflect.Value) bool {
	if len(p.excludedTypes) == 0 {
		return false
	}
	if p.typeExcluded(declared) {
		return true
	}
	if dv, ok := deref(v); ok {
		return p.typeExcluded(dv.Type())
	}
	return false
}

func (p *printer) debug(msg string, keyvals ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, keyvals...)
	}
}

// deref follows pointers and interfaces. It reports false when the value is
// absent: invalid, or a nil pointer, interface, map, slice, func, or chan.
func deref(v reflect.Value) (reflect.Value, bool) {
	for {
		if !v.IsValid() {
			return v, false
		}
		switch v.Kind() {
		case reflect.Pointer, reflect.Interface:
			if v.IsNil() {
				return v, false
			}
			v = v.Elem()
		case reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return v, !v.IsNil()
		default:
			return v, true
		}
	}
}
