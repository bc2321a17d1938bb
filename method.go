package insightful

import (
	"context"
	"fmt"
	"reflect"
)

var (
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
)

// Method is a method bound to an observed instance.
type Method struct {
	name  string
	recv  *Proxy
	fn    reflect.Value
	call  func(ctx context.Context, args []any) ([]any, error)
	owner *activation // nil when not wrapped
}

func newMethod(p *Proxy, name string, fn reflect.Value) *Method {
	m := &Method{name: name, recv: p, fn: fn}
	m.call = m.invoke
	return m
}

func (m *Method) Name() string {
	return m.name
}

func (m *Method) Receiver() *Proxy {
	return m.recv
}

func (m *Method) String() string {
	return fmt.Sprintf("<bound method %s.%s of %s>", typeName(m.recv.typ), m.name, m.recv)
}

// Call invokes the method. If its first parameter is a context.Context it receives ctx
// carrying the receiver's Proxy (see ProxyFrom).
func (m *Method) Call(ctx context.Context, args ...any) ([]any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := m.check(args); err != nil {
		return nil, err
	}
	return m.call(ctx, args)
}

func (m *Method) takesContext() bool {
	ft := m.fn.Type()
	return ft.NumIn() > 0 && ft.In(0) == contextType
}

// check validates args against the method's parameters.
func (m *Method) check(args []any) error {
	ft := m.fn.Type()
	off := 0
	if m.takesContext() {
		off = 1
	}
	want := ft.NumIn() - off
	if ft.IsVariadic() {
		if len(args) < want-1 {
			return fmt.Errorf("insightful: %s.%s takes at least %d arguments, got %d: %w",
				typeName(m.recv.typ), m.name, want-1, len(args), ErrArguments)
		}
	} else if len(args) != want {
		return fmt.Errorf("insightful: %s.%s takes %d arguments, got %d: %w",
			typeName(m.recv.typ), m.name, want, len(args), ErrArguments)
	}
	for i, a := range args {
		if _, err := valueFor(a, paramType(ft, off+i)); err != nil {
			return fmt.Errorf("insightful: %s.%s argument %d: %w", typeName(m.recv.typ), m.name, i, err)
		}
	}
	return nil
}

func (m *Method) invoke(ctx context.Context, args []any) ([]any, error) {
	ft := m.fn.Type()
	in := make([]reflect.Value, 0, len(args)+1)
	off := 0
	if m.takesContext() {
		in = append(in, reflect.ValueOf(WithProxy(ctx, m.recv)))
		off = 1
	}
	for i, a := range args {
		v, err := valueFor(a, paramType(ft, off+i))
		if err != nil {
			return nil, fmt.Errorf("insightful: %s.%s argument %d: %w", typeName(m.recv.typ), m.name, i, err)
		}
		in = append(in, v)
	}
	return results(m.fn.Call(in))
}

// paramType returns the type of the i-th argument, unpacking the variadic tail.
func paramType(ft reflect.Type, i int) reflect.Type {
	if ft.IsVariadic() && i >= ft.NumIn()-1 {
		return ft.In(ft.NumIn() - 1).Elem()
	}
	return ft.In(i)
}

// results splits off a trailing error result.
func results(out []reflect.Value) ([]any, error) {
	var err error
	if n := len(out); n > 0 && out[n-1].Type() == errorType {
		if !out[n-1].IsNil() {
			err = out[n-1].Interface().(error)
		}
		out = out[:n-1]
	}
	res := make([]any, len(out))
	for i, v := range out {
		res[i] = v.Interface()
	}
	return res, err
}
