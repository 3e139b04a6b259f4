package dumper

import (
	"fmt"
	"reflect"
)

// Selector identifies a single declared field.
// Both [FieldID] and [FieldRef] implement it.
type Selector interface {
	Field() FieldID
}

// FieldID identifies a declared field by its owner struct type and name.
// Two FieldIDs are equal when they name the same field of the same type.
type FieldID struct {
	owner reflect.Type
	name  string
}

// Field returns f itself.
func (f FieldID) Field() FieldID { return f }

// Owner returns the struct type that declares the field.
func (f FieldID) Owner() reflect.Type { return f.owner }

// Name returns the field name.
func (f FieldID) Name() string { return f.name }

// String returns "Owner.Field".
func (f FieldID) String() string {
	if f.owner == nil {
		return f.name
	}
	return typeName(f.owner) + "." + f.name
}

// FieldRef is a typed reference to field of type V declared on struct O.
// Obtain one with [Field] or [MustField].
type FieldRef[O, V any] struct {
	id FieldID
}

// Field returns the untyped identifier.
func (r FieldRef[O, V]) Field() FieldID { return r.id }

// String returns "Owner.Field".
func (r FieldRef[O, V]) String() string { return r.id.String() }

// Field resolves a selector of the form
//
//	func(p *Person) *int { return &p.Age }
//
// to a reference to the selected field. The selector must return the address
// of a direct, exported field of O. Anything else (a computed value, a nested
// field, a promoted field, nil) fails with [ErrInvalidSelector].
func Field[O, V any](sel func(*O) *V) (FieldRef[O, V], error) {
	owner := reflect.TypeFor[O]()
	if owner.Kind() != reflect.Struct {
		return FieldRef[O, V]{}, fmt.Errorf("%w: %s is not a struct", ErrInvalidSelector, owner)
	}
	if sel == nil {
		return FieldRef[O, V]{}, fmt.Errorf("%w: nil selector", ErrInvalidSelector)
	}

	zero := new(O)
	ptr, err := evalSelector(sel, zero)
	if err != nil {
		return FieldRef[O, V]{}, err
	}
	if ptr == nil {
		return FieldRef[O, V]{}, fmt.Errorf("%w: selector on %s returned nil", ErrInvalidSelector, typeName(owner))
	}

	target := reflect.ValueOf(ptr).Pointer()
	want := reflect.TypeFor[V]()
	pv := reflect.ValueOf(zero).Elem()
	var matches []reflect.StructField
	for i := range owner.NumField() {
		sf := owner.Field(i)
		if sf.Type == want && pv.Field(i).Addr().Pointer() == target {
			matches = append(matches, sf)
		}
	}
	switch {
	case len(matches) == 0:
		return FieldRef[O, V]{}, fmt.Errorf("%w: selector does not address a field of %s", ErrInvalidSelector, typeName(owner))
	case len(matches) > 1:
		// Zero-size fields of one type share an address.
		return FieldRef[O, V]{}, fmt.Errorf("%w: selector on %s is ambiguous between %s and %s, use FieldNamed",
			ErrInvalidSelector, typeName(owner), matches[0].Name, matches[1].Name)
	}
	sf := matches[0]
	if !sf.IsExported() {
		return FieldRef[O, V]{}, fmt.Errorf("%w: field %s.%s is not exported", ErrInvalidSelector, typeName(owner), sf.Name)
	}
	return FieldRef[O, V]{id: FieldID{owner: owner, name: sf.Name}}, nil
}

// MustField is like [Field] but panics if the selector cannot be resolved.
func MustField[O, V any](sel func(*O) *V) FieldRef[O, V] {
	f, err := Field(sel)
	if err != nil {
		panic(err)
	}
	return f
}

// FieldNamed resolves an exported field of O by name. It trades the compile
// time checking of [Field] for a runtime existence check.
func FieldNamed[O any](name string) (FieldID, error) {
	return fieldByName(reflect.TypeFor[O](), name)
}

func fieldByName(owner reflect.Type, name string) (FieldID, error) {
	if owner.Kind() != reflect.Struct {
		return FieldID{}, fmt.Errorf("%w: %s is not a struct", ErrInvalidSelector, owner)
	}
	sf, ok := owner.FieldByName(name)
	if !ok || len(sf.Index) != 1 {
		return FieldID{}, fmt.Errorf("%w: %s has no field %q", ErrInvalidSelector, typeName(owner), name)
	}
	if !sf.IsExported() {
		return FieldID{}, fmt.Errorf("%w: field %s.%s is not exported", ErrInvalidSelector, typeName(owner), name)
	}
	return FieldID{owner: owner, name: sf.Name}, nil
}

// evalSelector runs sel against zero, turning a panic (for example a nil
// pointer dereference in a nested selector) into an error.
func evalSelector[O, V any](sel func(*O) *V, zero *O) (ptr *V, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: selector panicked: %v", ErrInvalidSelector, r)
		}
	}()
	return sel(zero), nil
}
