package form

import "context"

type providerKey struct{}

// WithProvider mounts p as the provider for everything running under the
// returned context.
func WithProvider(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, providerKey{}, p)
}

// FromContext returns the provider mounted on ctx. It fails with a
// ScopeError when none was mounted or the provider has been closed.
func FromContext(ctx context.Context) (*Provider, error) {
	return lookup(ctx, "provider")
}

// StateFrom returns a copy of the state of the provider mounted on ctx.
func StateFrom(ctx context.Context) (State, error) {
	p, err := lookup(ctx, "state")
	if err != nil {
		return State{}, err
	}
	return p.State()
}

// DispatchFrom returns the dispatch handle of the provider mounted on ctx.
func DispatchFrom(ctx context.Context) (Dispatcher, error) {
	p, err := lookup(ctx, "dispatch")
	if err != nil {
		return nil, err
	}
	return p.Dispatcher(), nil
}

func lookup(ctx context.Context, access string) (*Provider, error) {
	if ctx == nil {
		return nil, &ScopeError{Access: access}
	}
	p, ok := ctx.Value(providerKey{}).(*Provider)
	if !ok || p == nil || p.Closed() {
		return nil, &ScopeError{Access: access}
	}
	return p, nil
}
