package form

import (
	"sync"

	"formstate/internal/logging"
	"formstate/internal/record"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Dispatcher submits one operation to a provider. It is the stable dispatch
// handle handed to readers of a scope.
type Dispatcher func(Op) error

// Change describes one applied transition.
type Change struct {
	Op      Op
	State   State
	Version uint64
}

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithOptions sets the transition options.
func WithOptions(opts Options) ProviderOption {
	return func(p *Provider) { p.opts = opts }
}

// WithDirtyTracking enables or disables dirty tracking.
func WithDirtyTracking(on bool) ProviderOption {
	return func(p *Provider) { p.opts.TrackDirty = on }
}

// WithPolicy selects the dirty recomputation policy.
func WithPolicy(policy DirtyPolicy) ProviderOption {
	return func(p *Provider) { p.opts.Policy = policy }
}

// WithLogger replaces the provider category logger.
func WithLogger(l *logging.Logger) ProviderOption {
	return func(p *Provider) { p.log = l }
}

type listener struct {
	id int
	fn func(Change)
}

// Provider owns the state slot for one subtree. Dispatch is serialized:
// each operation is fully applied before the next one starts.
type Provider struct {
	id   string
	opts Options
	log  *logging.Logger

	mu        sync.Mutex
	state     State
	version   uint64
	closed    bool
	listeners []listener
	nextID    int

	dispatch Dispatcher
}

// NewProvider mounts a provider seeded with copies of defaults and values.
func NewProvider(defaults, values []record.Record, opts ...ProviderOption) *Provider {
	p := &Provider{
		id:   uuid.NewString(),
		opts: DefaultOptions(),
		log:  logging.Get(logging.CategoryProvider),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.With(zap.String("provider", p.id))
	p.state = NewState(defaults, values, p.opts.TrackDirty)
	p.dispatch = p.Dispatch

	p.log.Debug("mounted with %d defaults, %d values, %d dirty",
		len(p.state.Defaults), len(p.state.Values), p.state.Dirty.Len())
	return p
}

// ID returns the unique provider identifier.
func (p *Provider) ID() string {
	return p.id
}

// Options returns the transition options in effect.
func (p *Provider) Options() Options {
	return p.opts
}

// State returns a deep copy of the current state.
func (p *Provider) State() (State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return State{}, &ScopeError{Access: "state"}
	}
	return p.state.Clone(), nil
}

// view runs fn on the live state under the slot lock. fn must not retain
// or modify s.
func (p *Provider) view(access string, fn func(s State)) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return &ScopeError{Access: access}
	}
	fn(p.state)
	return nil
}

// Version returns the number of operations applied so far.
func (p *Provider) Version() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.version
}

// Dispatcher returns the stable dispatch handle for this provider.
func (p *Provider) Dispatcher() Dispatcher {
	return p.dispatch
}

// Dispatch applies op. The state is replaced only when the transition
// succeeds; a rejected operation leaves it untouched. Listeners are called
// after the slot is released, so they may read state but the order in which
// concurrent dispatchers' listeners run is not defined.
func (p *Provider) Dispatch(op Op) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return &ScopeError{Access: "dispatch"}
	}

	next, err := Reduce(p.state, op, p.opts)
	if err != nil {
		p.mu.Unlock()
		logging.Get(logging.CategoryReducer).With(zap.String("provider", p.id)).
			Warn("rejected %s: %v", kindOf(op), err)
		return err
	}

	p.state = next
	p.version++
	version := p.version
	listeners := append([]listener(nil), p.listeners...)
	p.mu.Unlock()

	p.log.Debug("applied %s (version=%d len=%d dirty=%v)",
		op.Kind(), version, next.Len(), next.Dirty.Indices())

	for _, l := range listeners {
		l.fn(Change{Op: op, State: next.Clone(), Version: version})
	}
	return nil
}

// Subscribe registers fn to be called after every applied operation and
// returns a function removing it. Subscribing to a closed provider returns
// a no-op cancel.
func (p *Provider) Subscribe(fn func(Change)) (cancel func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return func() {}
	}

	id := p.nextID
	p.nextID++
	p.listeners = append(p.listeners, listener{id: id, fn: fn})

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		for i, l := range p.listeners {
			if l.id == id {
				p.listeners = append(p.listeners[:i:i], p.listeners[i+1:]...)
				return
			}
		}
	}
}

// Close unmounts the provider. The state and listeners are released and
// every later read or dispatch fails with a ScopeError. Close is idempotent.
func (p *Provider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	p.state = State{}
	p.listeners = nil
	p.log.Debug("unmounted at version %d", p.version)
}

// Closed reports whether Close has been called.
func (p *Provider) Closed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func kindOf(op Op) string {
	if op == nil {
		return "<nil>"
	}
	return op.Kind()
}
