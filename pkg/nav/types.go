package nav

import "context"

// Handler renders the page for a matched route. It receives the extracted
// parameters and the full requested location including any query string.
// A returned error is treated as a handler fault and converted into a full
// browser navigation; it is never surfaced to the page half-applied.
type Handler func(ctx context.Context, params Params, location string) error

// RouteEntry is one registered route: the declarative pattern, the matcher
// derived from it once at registration time, the page handler, and whether
// the authorization gate must pass before the handler runs.
type RouteEntry struct {
	Pattern      string
	Handler      Handler
	RequiresAuth bool

	matcher *Matcher
}

// Matcher returns the compiled matcher for the entry's pattern.
func (e *RouteEntry) Matcher() *Matcher {
	return e.matcher
}

// Match is the result of a registry lookup: the winning entry with the
// parameter values its matcher extracted from the path.
type Match struct {
	Entry  *RouteEntry
	Params Params
}

// Middleware is an asynchronous gate run before a push navigation is
// committed. Middleware runs sequentially in registration order; the first
// one returning false aborts the navigation with no later middleware, no
// history change, and no handler call. A returned error is a fault and
// degrades to a full navigation.
type Middleware func(ctx context.Context, pathname string, route *RouteEntry) (bool, error)

// AuthGate is the external per-route authorization check. The router only
// calls it; it must be side-effect-free from the router's point of view.
// A false result aborts the navigation exactly like a rejecting middleware.
type AuthGate interface {
	RequireAuth(ctx context.Context, pathname string, route *RouteEntry) (bool, error)
}

// GateFunc is a function adapter for AuthGate.
type GateFunc func(ctx context.Context, pathname string, route *RouteEntry) (bool, error)

// RequireAuth implements AuthGate.
func (f GateFunc) RequireAuth(ctx context.Context, pathname string, route *RouteEntry) (bool, error) {
	return f(ctx, pathname, route)
}

// AllowAll returns the default gate used when no collaborator is
// installed: every route passes, including those marked RequiresAuth.
func AllowAll() AuthGate {
	return GateFunc(func(context.Context, string, *RouteEntry) (bool, error) {
		return true, nil
	})
}
