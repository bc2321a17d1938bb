// Package insightful is a debugging patch: put an Insight on a misbehaving type or
// instance and every interaction with it is printed while the Insight is active.
//
// Go has no overridable attribute lookup, so instances are observed through a Proxy.
// Field reads, writes and deletions, and method calls made through a Proxy are
// dispatched through hooks installed per type; an active Insight replaces those hooks
// with logging ones and puts the previous ones back when it exits.
package insightful

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"

	"github.com/muesli/termenv"

	"github.com/mickamy/insightful/internal/render"
	"github.com/mickamy/insightful/internal/signature"
	"github.com/mickamy/insightful/internal/stack"
)

// Insight prints interactions with a type, or with one instance of it, between Enter
// and Exit.
type Insight struct {
	cfg      Config
	target   reflect.Type
	instance reflect.Value // valid when the target was given by pointer
	err      error
	printer  Printer
	profile  *termenv.Profile
	prefix   string
	params   map[string][]string
	active   *activation
}

// New creates an Insight for target: a reflect.Type of a struct (or pointer to one), a
// struct value, a pointer to a struct, or a *Proxy. For an instance the whole type is
// observed unless InstanceOnly is given. New never fails; an invalid target is
// reported by Enter.
func New(target any, opts ...Option) *Insight {
	i := &Insight{cfg: DefaultConfig(), printer: WriterPrinter(os.Stdout)}
	i.target, i.instance, i.err = resolveTarget(target)
	for _, opt := range opts {
		opt(i)
	}

	i.params = make(map[string][]string, len(i.cfg.Params))
	for _, s := range i.cfg.Params {
		sig, ok := signature.Parse(s)
		if !ok {
			if i.err == nil {
				i.err = fmt.Errorf("insightful: invalid signature %q: %w", s, ErrSignature)
			}
			continue
		}
		i.params[sig.Method] = sig.Params
	}

	i.prefix = i.cfg.Prefix
	if i.cfg.Color {
		profile := termenv.ColorProfile()
		if i.profile != nil {
			profile = *i.profile
		}
		i.prefix = colorize(i.cfg.Prefix, profile)
	}
	return i
}

// Config returns the configuration the Insight was built with.
func (i *Insight) Config() Config {
	return i.cfg
}

// Active reports whether the Insight is between Enter and Exit.
func (i *Insight) Active() bool {
	return i.active != nil
}

// Enter installs the logging hooks for the target type. The hooks delegate to whatever
// was installed before, so nested Insights on the same type both log.
func (i *Insight) Enter() error {
	if i.err != nil {
		return i.err
	}
	if i.active != nil {
		return fmt.Errorf("insightful: enter %s: %w", typeName(i.target), ErrActive)
	}
	a := &activation{in: i, stack: stack.New[string]()}
	if i.cfg.InstanceOnly {
		if !i.instance.IsValid() {
			return fmt.Errorf("insightful: instance only needs a pointer or proxy target, got %s: %w", typeName(i.target), ErrTarget)
		}
		a.instance = i.instance
	}
	a.original = dispatch.install(i.target, a)
	i.active = a
	return nil
}

// Exit restores the hooks that were installed when Enter was called. Methods obtained
// while the Insight was active keep working but are no longer logged.
//
// Exit fails with ErrOutOfOrder while an Insight entered later on the same type is
// still active; the hooks then stay installed and the Insight stays active, so Exit
// can be retried once the later Insight has exited.
func (i *Insight) Exit() error {
	if i.err != nil {
		return i.err
	}
	a := i.active
	if a == nil {
		return fmt.Errorf("insightful: exit %s: %w", typeName(i.target), ErrNotActive)
	}
	if err := dispatch.restore(i.target, a, a.original); err != nil {
		return err
	}
	a.done = true
	i.active = nil
	if i.cfg.Summary {
		i.print(summarize(typeName(i.target), a.counts))
	}
	return nil
}

// Run calls fn between Enter and Exit. The hooks are restored even if fn panics, and
// the panic continues. fn's error is returned unchanged.
//
// If fn leaves a later Insight on the same type active, Exit cannot restore the hooks.
// Run then deactivates its own hooks, which pass every operation through from then on,
// and returns ErrOutOfOrder.
func (i *Insight) Run(fn func() error) (err error) {
	if err := i.Enter(); err != nil {
		return err
	}
	defer func() {
		xerr := i.Exit()
		if xerr == nil {
			return
		}
		i.abandon()
		if err == nil {
			err = xerr
		}
	}()
	return fn()
}

// abandon stops the active hooks from logging without uninstalling them.
func (i *Insight) abandon() {
	if a := i.active; a != nil {
		a.done = true
		i.active = nil
	}
}

func (i *Insight) print(line string) {
	i.printer.Print(i.prefix + line)
}

// activation is the state of one Enter/Exit scope and the hooks it installs.
type activation struct {
	in       *Insight
	original hooks
	instance reflect.Value
	stack    *stack.Stack[string] // descriptions of operations in flight, outermost first
	failure  any                  // last reported failure, while it propagates
	counts   counts
	done     bool
}

// bypass reports whether operations on p skip logging.
func (a *activation) bypass(p *Proxy) bool {
	if a.done {
		return true
	}
	return a.instance.IsValid() && a.instance.Pointer() != p.ptr.Pointer()
}

func (a *activation) emit(k kind, line string) {
	a.counts.add(k)
	a.in.print(line)
}

func (a *activation) getattr(p *Proxy, name string) (any, error) {
	if a.bypass(p) {
		return a.original.getattr(p, name)
	}
	recv := p.String()
	a.stack.Push(render.Attr(recv, name))
	v, err := a.original.getattr(p, name)
	a.stack.Pop()
	if err != nil {
		return nil, err
	}

	cfg := a.in.cfg
	if m, ok := v.(*Method); ok && !p.hasField(name) {
		if cfg.ShowMethodAccess {
			a.emit(kindRead, render.Read(recv, name, m))
		}
		if m.owner == a {
			return m, nil
		}
		return a.wrap(m), nil
	}
	if cfg.AttributeAccess && !isInternal(v) {
		a.emit(kindRead, render.Read(recv, name, v))
	}
	return v, nil
}

func (a *activation) setattr(p *Proxy, name string, v any) error {
	if !a.in.cfg.AttributeAssignment || a.bypass(p) || isInternal(v) {
		return a.original.setattr(p, name, v)
	}
	line := render.Write(p.String(), name, v)
	a.stack.Push(line)
	err := a.original.setattr(p, name, v)
	a.stack.Pop()
	if err != nil {
		return err
	}
	a.emit(kindWrite, line)
	return nil
}

func (a *activation) delattr(p *Proxy, name string) error {
	if !a.in.cfg.AttributeDeletion || a.bypass(p) {
		return a.original.delattr(p, name)
	}
	line := render.Delete(p.String(), name)
	a.stack.Push(line)
	err := a.original.delattr(p, name)
	a.stack.Pop()
	if err != nil {
		return err
	}
	a.emit(kindDelete, line)
	return nil
}

// wrap returns m with call logging. The wrapper delegates to m, so a method already
// wrapped by an enclosing activation is logged by both. Failures are reported even
// when calls are not logged.
func (a *activation) wrap(m *Method) *Method {
	w := &Method{name: m.name, recv: m.recv, fn: m.fn, owner: a}
	w.call = func(ctx context.Context, args []any) (out []any, err error) {
		if a.bypass(m.recv) || isQuiet(ctx) {
			return m.call(ctx, args)
		}
		desc := render.Call(m.recv.String(), m.name, a.in.params[m.name], args)
		if a.in.cfg.FunctionCalls {
			a.counts.add(kindCall)
			if a.in.cfg.CallStart {
				a.in.print(desc)
			}
		}

		// A new call means any earlier failure was handled.
		a.failure = nil
		a.stack.Push(desc)
		defer func() {
			if r := recover(); r != nil {
				a.fail(r)
				a.stack.Pop()
				panic(r)
			}
			if err != nil {
				a.fail(err)
			}
			a.stack.Pop()
		}()

		out, err = m.call(ctx, args)
		if err == nil && a.in.cfg.FunctionCalls {
			a.in.print(render.Returned(desc, out))
		}
		return out, err
	}
	return w
}

// fail prints the failure and the operations in flight, unless this failure was
// already reported by an inner call it is propagating through.
func (a *activation) fail(f any) {
	if a.failure != nil && sameFailure(f, a.failure) {
		return
	}
	a.failure = f
	a.emit(kindFailure, render.Failure(f))
	for _, desc := range a.stack.Snapshot() {
		a.in.print(render.During(desc))
	}
}

func sameFailure(f, reported any) bool {
	if fe, ok := f.(error); ok {
		if re, ok := reported.(error); ok {
			return errors.Is(fe, re)
		}
	}
	ft := reflect.TypeOf(f)
	if ft != reflect.TypeOf(reported) {
		return false
	}
	if !ft.Comparable() {
		// A slice or map panic value is re-panicked unchanged by each enclosing wrapper.
		return reflect.DeepEqual(f, reported)
	}
	return f == reported
}

// isInternal reports whether v is bookkeeping of this package rather than state of the
// observed type. Such values are never logged.
func isInternal(v any) bool {
	switch v.(type) {
	case *Insight, *Proxy, Config, *Config, Option:
		return true
	}
	return false
}
