package insightful

import (
	"context"
	"fmt"
	"reflect"
)

// Proxy is the facade through which an instance is observed. Every operation goes
// through the hooks installed for the instance's type, so a Proxy created before an
// Insight is entered is observed while the Insight is active, and passes through
// untouched otherwise.
type Proxy struct {
	ptr reflect.Value // *T
	typ reflect.Type  // T
}

// Observe wraps ptr, which must be a non-nil pointer to a struct.
func Observe(ptr any) (*Proxy, error) {
	v := reflect.ValueOf(ptr)
	if !v.IsValid() || v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("insightful: cannot observe %T: %w", ptr, ErrTarget)
	}
	return &Proxy{ptr: v, typ: v.Type().Elem()}, nil
}

// MustObserve is like Observe but panics on an invalid target.
func MustObserve(ptr any) *Proxy {
	p, err := Observe(ptr)
	if err != nil {
		panic(err)
	}
	return p
}

// Target returns the wrapped pointer.
func (p *Proxy) Target() any {
	return p.ptr.Interface()
}

// Type returns the struct type of the wrapped instance.
func (p *Proxy) Type() reflect.Type {
	return p.typ
}

// String renders the wrapped instance, as it appears in log lines.
func (p *Proxy) String() string {
	return reprOf(p.ptr)
}

// Get reads an exported field, or returns a *Method for a method of the instance.
func (p *Proxy) Get(name string) (any, error) {
	return dispatch.lookup(p.typ).getattr(p, name)
}

// Set assigns an exported field. A nil value assigns the zero value.
func (p *Proxy) Set(name string, v any) error {
	return dispatch.lookup(p.typ).setattr(p, name, v)
}

// Delete resets an exported field to its zero value.
func (p *Proxy) Delete(name string) error {
	return dispatch.lookup(p.typ).delattr(p, name)
}

// Update reads a field, passes it to fn and assigns the result, like an augmented
// assignment such as +=.
func (p *Proxy) Update(name string, fn func(v any) any) error {
	v, err := p.Get(name)
	if err != nil {
		return err
	}
	return p.Set(name, fn(v))
}

// Method looks up a method by name.
func (p *Proxy) Method(name string) (*Method, error) {
	v, err := p.Get(name)
	if err != nil {
		return nil, err
	}
	m, ok := v.(*Method)
	if !ok || p.hasField(name) {
		return nil, fmt.Errorf("insightful: %s.%s: %w", typeName(p.typ), name, ErrNotCallable)
	}
	return m, nil
}

// Call looks up a method and invokes it with args. A trailing error result is returned
// as the error; the remaining results are returned in order.
func (p *Proxy) Call(ctx context.Context, name string, args ...any) ([]any, error) {
	m, err := p.Method(name)
	if err != nil {
		return nil, err
	}
	return m.Call(ctx, args...)
}

func (p *Proxy) hasField(name string) bool {
	sf, ok := p.typ.FieldByName(name)
	return ok && sf.IsExported()
}

// field returns the exported field called name, and whether one exists.
func (p *Proxy) field(name string) (reflect.Value, bool, error) {
	sf, ok := p.typ.FieldByName(name)
	if !ok || !sf.IsExported() {
		return reflect.Value{}, false, nil
	}
	f, err := p.ptr.Elem().FieldByIndexErr(sf.Index)
	if err != nil {
		return reflect.Value{}, true, fmt.Errorf("insightful: %s.%s: %w", typeName(p.typ), name, err)
	}
	return f, true, nil
}
