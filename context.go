package insightful

import (
	"context"
)

// proxyKey is an unexported context key type.
type proxyKey struct{}
type quietKey struct{}

// WithProxy attaches the proxy a method was invoked through to the context.
// Methods that take a context.Context receive it automatically.
func WithProxy(ctx context.Context, p *Proxy) context.Context {
	return context.WithValue(ctx, proxyKey{}, p)
}

// ProxyFrom returns the proxy attached to ctx, or nil.
// A method uses it to route its own inner calls through the facade so they are observed.
func ProxyFrom(ctx context.Context) *Proxy {
	if ctx == nil {
		return nil
	}
	if p, ok := ctx.Value(proxyKey{}).(*Proxy); ok {
		return p
	}
	return nil
}

// Quiet marks the context so calls made with it are not logged.
func Quiet(ctx context.Context) context.Context {
	return context.WithValue(ctx, quietKey{}, true)
}

// isQuiet extracts the quiet flag from context.
func isQuiet(ctx context.Context) bool {
	if v, ok := ctx.Value(quietKey{}).(bool); ok {
		return v
	}
	return false
}
