package shopping

import "sync"

// StrategyFactory builds a fresh strategy instance for one resolution
type StrategyFactory func() (AuthenticationStrategy, error)

// StrategyResolver maps authentication metadata to a strategy. Endpoints with
// no metadata resolve to (nil, nil) and stay public; metadata naming an
// unregistered strategy is an error that names the missing strategy.
type StrategyResolver struct {
	mu        sync.RWMutex
	factories map[string]StrategyFactory
}

// NewStrategyResolver creates a resolver preloaded with the JWT strategy
func NewStrategyResolver(validator TokenValidator, opts ...JWTStrategyOption) *StrategyResolver {
	r := &StrategyResolver{
		factories: map[string]StrategyFactory{},
	}

	r.Register(JWTStrategyName, func() (AuthenticationStrategy, error) {
		return NewJWTStrategy(validator, opts...), nil
	})

	return r
}

// Register adds or replaces a named strategy factory
func (r *StrategyResolver) Register(name string, factory StrategyFactory) {
	if name == "" || factory == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Resolve returns the strategy for the given metadata. Nil or empty metadata
// means the endpoint is unprotected.
func (r *StrategyResolver) Resolve(meta *AuthenticationMetadata) (AuthenticationStrategy, error) {
	if meta == nil || meta.Strategy == "" {
		return nil, nil
	}

	r.mu.RLock()
	factory, ok := r.factories[meta.Strategy]
	r.mu.RUnlock()

	if !ok {
		return nil, NewStrategyNotAvailable(meta.Strategy)
	}

	return factory()
}
