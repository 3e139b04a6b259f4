package dumper

import (
	"errors"
	"io"
	"maps"
	"reflect"
	"strings"

	"github.com/charmbracelet/log"
)

// Sentinel errors for programmatic error handling.
var (
	ErrInvalidSelector   = errors.New("invalid field selector")
	ErrInvalidTemplate   = errors.New("invalid template")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrUnknownType       = errors.New("unknown type")
	ErrInvalidProfile    = errors.New("invalid profile")
)

// Config is an immutable set of rendering rules for values of type T.
//
// Every method that adds a rule returns a new Config. The receiver is never
// modified, so one Config can serve as the base of any number of divergent
// extensions. The zero value is ready to use and renders everything with the
// default rules.
type Config[T any] struct {
	excludedTypes  map[reflect.Type]struct{}
	excludedFields map[FieldID]struct{}
	typeRules      map[reflect.Type]Chain
	fieldRules     map[FieldID]Chain
	logger         *log.Logger
}

// New returns an empty configuration for root values of type T.
func New[T any]() Config[T] {
	return Config[T]{}
}

// clone copies all rule collections so the result can be extended without
// affecting c.
func (c Config[T]) clone() Config[T] {
	return Config[T]{
		excludedTypes:  cloneOrMake(c.excludedTypes),
		excludedFields: cloneOrMake(c.excludedFields),
		typeRules:      cloneOrMake(c.typeRules),
		fieldRules:     cloneOrMake(c.fieldRules),
		logger:         c.logger,
	}
}

func cloneOrMake[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return make(map[K]V)
	}
	return maps.Clone(m)
}

// Exclude returns a copy of c that never renders values of type V.
//
//	cfg = dumper.Exclude[uuid.UUID](cfg)
func Exclude[V, T any](c Config[T]) Config[T] {
	return c.ExcludingType(reflect.TypeFor[V]())
}

// ExcludingType returns a copy of c that never renders values of type t,
// anywhere in the graph. Pointer types are identified with their element
// type. Excluding the same type twice has no further effect.
func (c Config[T]) ExcludingType(t reflect.Type) Config[T] {
	if t == nil {
		return c
	}
	out := c.clone()
	out.excludedTypes[baseType(t)] = struct{}{}
	return out
}

// ExcludingField returns a copy of c that skips the selected field. Other
// fields of the same type are still rendered. A nil selector or a zero
// FieldID is ignored.
func (c Config[T]) ExcludingField(f Selector) Config[T] {
	id, ok := fieldOf(f)
	if !ok {
		return c
	}
	out := c.clone()
	out.excludedFields[id] = struct{}{}
	return out
}

// ExcludeField resolves sel and returns a copy of c that skips that field.
// It fails with [ErrInvalidSelector] when sel does not point at a direct
// exported field of O.
func ExcludeField[T, O, V any](c Config[T], sel func(*O) *V) (Config[T], error) {
	f, err := Field(sel)
	if err != nil {
		return c, err
	}
	return c.ExcludingField(f), nil
}

// WithTypeRule returns a copy of c with step appended to the chain for type t.
func (c Config[T]) WithTypeRule(t reflect.Type, step Step) Config[T] {
	if t == nil || step == nil {
		return c
	}
	out := c.clone()
	t = baseType(t)
	out.typeRules[t] = out.typeRules[t].Append(step)
	return out
}

// WithFieldRule returns a copy of c with step appended to the chain for the
// selected field. A nil selector or a zero FieldID is ignored.
func (c Config[T]) WithFieldRule(f Selector, step Step) Config[T] {
	id, ok := fieldOf(f)
	if !ok || step == nil {
		return c
	}
	out := c.clone()
	out.fieldRules[id] = out.fieldRules[id].Append(step)
	return out
}

// WithLogger returns a copy of c that traces rendering decisions to l at
// debug level. A nil logger disables tracing.
func (c Config[T]) WithLogger(l *log.Logger) Config[T] {
	out := c.clone()
	out.logger = l
	return out
}

// PrintToString renders v using the accumulated rules.
func (c Config[T]) PrintToString(v T) string {
	var sb strings.Builder
	p := printer{
		excludedTypes:  c.excludedTypes,
		excludedFields: c.excludedFields,
		typeRules:      c.typeRules,
		fieldRules:     c.fieldRules,
		logger:         c.logger,
		out:            &sb,
	}
	p.render(reflect.ValueOf(&v).Elem(), 0)
	return sb.String()
}

// Write renders v and writes the result to w.
func (c Config[T]) Write(w io.Writer, v T) error {
	_, err := io.WriteString(w, c.PrintToString(v))
	return err
}

func fieldOf(f Selector) (FieldID, bool) {
	if f == nil {
		return FieldID{}, false
	}
	id := f.Field()
	return id, id.owner != nil && id.name != ""
}

// baseType strips pointer layers so *T and T share exclusions and rules.
func baseType(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}
