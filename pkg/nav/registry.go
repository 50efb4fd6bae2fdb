package nav

// Registry is an insertion-ordered collection of compiled route entries.
//
// Iteration order is registration order. Re-registering an existing
// pattern replaces the entry's handler and flags but keeps its position
// in the order, so match priority relative to other routes is stable.
// Lookup is first-match-wins over that order — not best-match — which is
// linear in the number of routes and fine at the tens-of-routes scale the
// portal registers.
//
// Registration happens during page bootstrap and entries live for the
// document's lifetime; the registry is not safe for concurrent mutation.
type Registry struct {
	order     []*RouteEntry
	byPattern map[string]*RouteEntry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byPattern: make(map[string]*RouteEntry)}
}

// Register compiles pattern and stores an entry for it. When the pattern
// was registered before, the existing entry is updated in place.
func (r *Registry) Register(pattern string, handler Handler, requiresAuth bool) error {
	if handler == nil {
		return ErrNilHandler
	}

	if e, ok := r.byPattern[pattern]; ok {
		e.Handler = handler
		e.RequiresAuth = requiresAuth
		return nil
	}

	m, err := Compile(pattern)
	if err != nil {
		return err
	}

	e := &RouteEntry{
		Pattern:      pattern,
		Handler:      handler,
		RequiresAuth: requiresAuth,
		matcher:      m,
	}
	r.byPattern[pattern] = e
	r.order = append(r.order, e)
	return nil
}

// Lookup returns the first entry in registration order whose matcher
// accepts pathname, with the extracted parameters attached.
func (r *Registry) Lookup(pathname string) (Match, bool) {
	for _, e := range r.order {
		if params, ok := e.matcher.Match(pathname); ok {
			return Match{Entry: e, Params: params}, true
		}
	}
	return Match{}, false
}

// Len reports the number of registered routes.
func (r *Registry) Len() int {
	return len(r.order)
}

// Patterns returns the registered patterns in registration order.
func (r *Registry) Patterns() []string {
	out := make([]string, len(r.order))
	for i, e := range r.order {
		out[i] = e.Pattern
	}
	return out
}
