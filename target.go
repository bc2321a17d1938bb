package insightful

import (
	"fmt"
	"reflect"
)

var stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()

// resolveTarget returns the struct type to observe and, when target is an instance
// given by pointer, the instance itself.
func resolveTarget(target any) (reflect.Type, reflect.Value, error) {
	switch v := target.(type) {
	case nil:
		return nil, reflect.Value{}, fmt.Errorf("insightful: nil target: %w", ErrTarget)
	case reflect.Type:
		typ := v
		if typ.Kind() == reflect.Pointer {
			typ = typ.Elem()
		}
		if typ.Kind() != reflect.Struct {
			return nil, reflect.Value{}, fmt.Errorf("insightful: unsupported target type %v: %w", v, ErrTarget)
		}
		return typ, reflect.Value{}, nil
	case *Proxy:
		if v == nil {
			return nil, reflect.Value{}, fmt.Errorf("insightful: nil proxy target: %w", ErrTarget)
		}
		return v.typ, v.ptr, nil
	}

	val := reflect.ValueOf(target)
	typ := val.Type()

	if typ.Kind() == reflect.Pointer {
		if val.IsNil() {
			return nil, reflect.Value{}, fmt.Errorf("insightful: nil pointer target %T: %w", target, ErrTarget)
		}
		if typ.Elem().Kind() != reflect.Struct {
			return nil, reflect.Value{}, fmt.Errorf("insightful: unsupported target %T: %w", target, ErrTarget)
		}
		return typ.Elem(), val, nil
	}

	if typ.Kind() == reflect.Struct {
		return typ, reflect.Value{}, nil
	}

	return nil, reflect.Value{}, fmt.Errorf("insightful: unsupported target %T: %w", target, ErrTarget)
}

// reprOf renders an instance given by pointer. fmt.Stringer is used when either the
// pointer or the value implements it, otherwise the type name and fields are printed.
// The instance is used directly, never through a Proxy, so rendering is never observed.
func reprOf(ptr reflect.Value) string {
	if ptr.Type().Implements(stringerType) {
		return fmt.Sprint(ptr.Interface())
	}
	elem := ptr.Elem()
	if elem.Type().Implements(stringerType) {
		return fmt.Sprint(elem.Interface())
	}
	return fmt.Sprintf("%s%+v", typeName(elem.Type()), elem.Interface())
}

// typeName returns the unqualified name of t, or its literal form for unnamed types.
func typeName(t reflect.Type) string {
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}
