package insightful

import (
	"fmt"
	"math"
	"reflect"
	"sync"
)

// hooks is the dispatch table of a type: every Proxy of that type resolves, assigns and
// deletes attributes through the hooks currently installed for it.
type hooks interface {
	getattr(p *Proxy, name string) (any, error)
	setattr(p *Proxy, name string, v any) error
	delattr(p *Proxy, name string) error
}

// registry maps observed types to their installed hooks. Types without an entry use
// the plain hooks.
type registry struct {
	mu    sync.Mutex
	table map[reflect.Type]hooks
}

var dispatch = &registry{table: map[reflect.Type]hooks{}}

func (r *registry) lookup(t reflect.Type) hooks {
	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.table[t]; ok {
		return h
	}
	return plain{}
}

// install makes h the hooks of t and returns the hooks it replaced.
func (r *registry) install(t reflect.Type, h hooks) hooks {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.table[t]
	if !ok {
		prev = plain{}
	}
	r.table[t] = h
	return prev
}

// restore puts prev back as the hooks of t, provided installed is still on top.
func (r *registry) restore(t reflect.Type, installed, prev hooks) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.table[t]
	if !ok || cur != installed {
		return fmt.Errorf("insightful: restore %s: %w", typeName(t), ErrOutOfOrder)
	}
	if _, isPlain := prev.(plain); isPlain {
		delete(r.table, t)
		return nil
	}
	r.table[t] = prev
	return nil
}

// plain resolves attributes by reflection, without logging.
type plain struct{}

func (plain) getattr(p *Proxy, name string) (any, error) {
	f, ok, err := p.field(name)
	if err != nil {
		return nil, err
	}
	if ok && f.CanInterface() {
		return f.Interface(), nil
	}
	if m := p.ptr.MethodByName(name); m.IsValid() {
		return newMethod(p, name, m), nil
	}
	return nil, noAttribute(p, name)
}

func (plain) setattr(p *Proxy, name string, v any) error {
	f, ok, err := p.field(name)
	if err != nil {
		return err
	}
	if !ok || !f.CanSet() {
		return noAttribute(p, name)
	}
	val, err := valueFor(v, f.Type())
	if err != nil {
		return fmt.Errorf("insightful: set %s.%s: %w", typeName(p.typ), name, err)
	}
	f.Set(val)
	return nil
}

// delattr resets the field to its zero value; Go has no way to remove a field.
func (plain) delattr(p *Proxy, name string) error {
	f, ok, err := p.field(name)
	if err != nil {
		return err
	}
	if !ok || !f.CanSet() {
		return noAttribute(p, name)
	}
	f.SetZero()
	return nil
}

func noAttribute(p *Proxy, name string) error {
	return fmt.Errorf("insightful: %s has no attribute %q: %w", typeName(p.typ), name, ErrNoAttribute)
}

// valueFor converts v to a value assignable to t. nil yields the zero value, and
// numeric values convert between numeric kinds.
func valueFor(v any, t reflect.Type) (reflect.Value, error) {
	if v == nil {
		return reflect.Zero(t), nil
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}
	switch {
	case isInteger(rv.Kind()) && (isInteger(t.Kind()) || isFloat(t.Kind())),
		isFloat(rv.Kind()) && isFloat(t.Kind()),
		rv.Kind() == reflect.String && t.Kind() == reflect.String:
		if !fits(rv, t) {
			return reflect.Value{}, fmt.Errorf("%v overflows %v: %w", v, t, ErrType)
		}
		return rv.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot use %T as %v: %w", v, t, ErrType)
}

// fits reports whether the numeric value rv converts to t without wrapping or
// truncating.
func fits(rv reflect.Value, t reflect.Type) bool {
	if isFloat(t.Kind()) {
		if isFloat(rv.Kind()) {
			return !reflect.Zero(t).OverflowFloat(rv.Float())
		}
		return true
	}
	dst := reflect.Zero(t)
	switch {
	case isSigned(rv.Kind()):
		n := rv.Int()
		if isUnsigned(t.Kind()) {
			return n >= 0 && !dst.OverflowUint(uint64(n))
		}
		return !dst.OverflowInt(n)
	case isUnsigned(rv.Kind()):
		n := rv.Uint()
		if isUnsigned(t.Kind()) {
			return !dst.OverflowUint(n)
		}
		return n <= math.MaxInt64 && !dst.OverflowInt(int64(n))
	}
	return true
}

func isInteger(k reflect.Kind) bool {
	return isSigned(k) || isUnsigned(k)
}

func isSigned(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func isUnsigned(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
