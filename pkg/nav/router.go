package nav

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Router is the navigation interceptor: it matches activations against the
// registry, drives the middleware pipeline and the authorization gate,
// invokes the matched handler, and keeps the in-memory current route, the
// history stack, and the scroll position consistent.
//
// One Router exists per document load. It is constructed explicitly by the
// page bootstrap and passed by reference to code that needs to navigate;
// there is no ambient global instance. It carries no state across reloads
// beyond what the platform history stack retains.
type Router struct {
	registry   *Registry
	middleware []Middleware
	gate       AuthGate

	history  History
	viewport Viewport
	loader   Loader
	links    LinkHighlighter

	logger    *slog.Logger
	observers []Observer

	// middlewareOnPop extends the middleware pipeline to back/forward
	// traversals. The reference behavior runs middleware only on pushes;
	// the asymmetry is preserved as the default and made a policy knob.
	middlewareOnPop bool

	// seq tags each navigation; a navigation whose tag is no longer the
	// latest by commit time discards its history/scroll effects.
	seq atomic.Uint64

	mu      sync.Mutex
	current string
	scroll  ScrollPosition
}

// Option configures a Router.
type Option func(*Router)

// WithAuthGate installs the external authorization collaborator. Absent a
// gate, routes marked RequiresAuth pass through unchecked.
func WithAuthGate(gate AuthGate) Option {
	return func(r *Router) {
		r.gate = gate
	}
}

// WithLinkHighlighter installs the active-link recomputation hook.
func WithLinkHighlighter(links LinkHighlighter) Option {
	return func(r *Router) {
		r.links = links
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithMiddlewareOnPop runs the middleware pipeline on back/forward
// traversals as well as pushes. Off by default.
func WithMiddlewareOnPop(enabled bool) Option {
	return func(r *Router) {
		r.middlewareOnPop = enabled
	}
}

// WithObserver attaches a navigation lifecycle observer.
func WithObserver(obs Observer) Option {
	return func(r *Router) {
		r.observers = append(r.observers, obs)
	}
}

// New creates a router over the given platform primitives.
func New(history History, viewport Viewport, loader Loader, opts ...Option) *Router {
	r := &Router{
		registry: NewRegistry(),
		history:  history,
		viewport: viewport,
		loader:   loader,
		gate:     AllowAll(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RouteOption configures a route registration.
type RouteOption func(*routeOptions)

type routeOptions struct {
	requiresAuth bool
}

// WithRequiresAuth marks the route as gated: the authorization
// collaborator must pass before its handler runs.
func WithRequiresAuth() RouteOption {
	return func(o *routeOptions) {
		o.requiresAuth = true
	}
}

// Register compiles pattern and adds a route for it. Registering a
// pattern again replaces its handler and flags without moving it in
// match order.
func (r *Router) Register(pattern string, handler Handler, opts ...RouteOption) error {
	var options routeOptions
	for _, opt := range opts {
		opt(&options)
	}
	return r.registry.Register(pattern, handler, options.requiresAuth)
}

// Use appends a middleware to the pipeline. Middleware runs sequentially
// in registration order on every push.
func (r *Router) Use(mw Middleware) {
	r.middleware = append(r.middleware, mw)
}

// SetAuthGate replaces the authorization collaborator. Like Use, call it
// during setup, before the first navigation.
func (r *Router) SetAuthGate(gate AuthGate) {
	r.gate = gate
}

// Registry exposes the route registry, mainly for introspection.
func (r *Router) Registry() *Registry {
	return r.registry
}

// CurrentRoute returns the pathname of the current route, or "" when no
// in-page navigation has committed yet.
func (r *Router) CurrentRoute() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Init records the location the document was loaded at, so the first
// push can bookkeep the initial entry's scroll position. It runs no
// handler and writes no history.
func (r *Router) Init(location string) {
	pathname, _ := splitLocation(location)
	r.mu.Lock()
	r.current = pathname
	r.mu.Unlock()
}

// Back traverses one history entry backwards. The platform delivers the
// resulting pop event through HandlePop.
func (r *Router) Back() {
	r.history.Back()
}

// Push performs a programmatic navigation to location (a path with an
// optional query string). Extra state is merged into the history entry.
//
// When no route matches, the platform performs a full navigation instead;
// this is graceful degradation, reported as StatusNoMatch.
func (r *Router) Push(ctx context.Context, location string, extra map[string]any) Result {
	res, intercepted := r.push(ctx, location, extra)
	if !intercepted {
		r.loader.Assign(location)
	}
	return res
}

// HandleClick processes a document click. It returns the navigation
// result and whether the default action must be prevented. When
// intercepted is false the platform lets the browser handle the click
// natively — including the no-match case.
func (r *Router) HandleClick(ctx context.Context, click Click) (res Result, intercepted bool) {
	if !click.Interceptable() {
		return Result{Status: StatusNoMatch, Location: click.Href}, false
	}
	return r.push(ctx, click.Href, nil)
}

// push runs the shared push procedure. intercepted is false only when no
// route matched, in which case nothing was prevented and callers decide
// how to degrade.
func (r *Router) push(ctx context.Context, location string, extra map[string]any) (Result, bool) {
	pathname, _ := splitLocation(location)

	match, ok := r.registry.Lookup(pathname)
	if !ok {
		return Result{Status: StatusNoMatch, Location: location}, false
	}

	seq := r.seq.Add(1)
	start := time.Now()
	r.notifyStarted(KindPush, location)
	finish := func(status Status, err error) (Result, bool) {
		r.notifyFinished(KindPush, location, status, err, time.Since(start))
		return Result{Status: status, Location: location, Err: err}, true
	}

	// Gate chain: middleware in order, then the auth gate. The first
	// rejection aborts with no visible change; a gate error is a fault.
	for _, mw := range r.middleware {
		pass, err := mw(ctx, pathname, match.Entry)
		if err != nil {
			r.logger.Error("middleware fault", "path", pathname, "error", err)
			r.loader.Assign(location)
			return finish(StatusFault, err)
		}
		if !pass {
			r.logger.Debug("navigation rejected by middleware", "path", pathname)
			return finish(StatusRejectedByMiddleware, nil)
		}
	}
	if match.Entry.RequiresAuth && r.gate != nil {
		pass, err := r.gate.RequireAuth(ctx, pathname, match.Entry)
		if err != nil {
			r.logger.Error("auth gate fault", "path", pathname, "error", err)
			r.loader.Assign(location)
			return finish(StatusFault, err)
		}
		if !pass {
			r.logger.Debug("navigation rejected by auth gate", "path", pathname)
			return finish(StatusRejectedByAuth, nil)
		}
	}

	// Capture the offset before leaving and bookkeep it into the entry
	// being left, so a later pop back restores the exact position.
	offset := r.viewport.Offset()
	r.mu.Lock()
	r.scroll = offset
	leaving := r.current
	r.mu.Unlock()
	if leaving != "" {
		r.history.Replace(State{Pathname: leaving, Scroll: &offset}, leaving)
	}

	if err := r.invoke(ctx, match, location); err != nil {
		r.logger.Error("handler fault", "path", pathname, "error", err)
		r.loader.Assign(location)
		return finish(StatusFault, err)
	}

	// A navigation that lost the race commits nothing: the winning
	// navigation's history and scroll writes stand.
	if r.seq.Load() != seq {
		return finish(StatusSuperseded, nil)
	}

	scroll := offset
	r.history.Push(State{Pathname: pathname, Scroll: &scroll, Extra: extra}, location)
	r.mu.Lock()
	r.current = pathname
	r.mu.Unlock()
	if r.links != nil {
		r.links.SetActive(pathname)
	}
	r.viewport.ScrollTo(ScrollPosition{}, ScrollSmooth)

	return finish(StatusOK, nil)
}

// HandlePop processes a back/forward traversal. location is the document
// location after the pop; state is the entry's stored state, nil when the
// entry carries none.
//
// A pop to a path with no registered route forces a full reload: there is
// no in-page way to render it. Middleware does not run on pops unless
// WithMiddlewareOnPop was set; the auth gate always runs for gated routes.
func (r *Router) HandlePop(ctx context.Context, location string, state *State) Result {
	pathname, _ := splitLocation(location)

	match, ok := r.registry.Lookup(pathname)
	if !ok {
		r.loader.Reload()
		return Result{Status: StatusNoMatch, Location: location}
	}

	seq := r.seq.Add(1)
	start := time.Now()
	r.notifyStarted(KindPop, location)
	finish := func(status Status, err error) Result {
		r.notifyFinished(KindPop, location, status, err, time.Since(start))
		return Result{Status: status, Location: location, Err: err}
	}

	if r.middlewareOnPop {
		for _, mw := range r.middleware {
			pass, err := mw(ctx, pathname, match.Entry)
			if err != nil {
				r.loader.Reload()
				return finish(StatusFault, err)
			}
			if !pass {
				return finish(StatusRejectedByMiddleware, nil)
			}
		}
	}
	if match.Entry.RequiresAuth && r.gate != nil {
		pass, err := r.gate.RequireAuth(ctx, pathname, match.Entry)
		if err != nil {
			r.loader.Reload()
			return finish(StatusFault, err)
		}
		if !pass {
			return finish(StatusRejectedByAuth, nil)
		}
	}

	if err := r.invoke(ctx, match, location); err != nil {
		r.logger.Error("handler fault on pop", "path", pathname, "error", err)
		r.loader.Reload()
		return finish(StatusFault, err)
	}

	if r.seq.Load() != seq {
		return finish(StatusSuperseded, nil)
	}

	r.mu.Lock()
	r.current = pathname
	r.mu.Unlock()
	if r.links != nil {
		r.links.SetActive(pathname)
	}
	if state != nil && state.Scroll != nil {
		r.mu.Lock()
		r.scroll = *state.Scroll
		r.mu.Unlock()
		r.viewport.ScrollTo(*state.Scroll, ScrollAuto)
	} else {
		r.viewport.ScrollTo(ScrollPosition{}, ScrollAuto)
	}

	return finish(StatusOK, nil)
}

// invoke runs the matched handler, converting a panic into an error so a
// faulty handler degrades to a full navigation instead of tearing down
// the event loop.
func (r *Router) invoke(ctx context.Context, match Match, location string) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &HandlerPanic{Pattern: match.Entry.Pattern, Value: rec}
		}
	}()
	return match.Entry.Handler(ctx, match.Params, location)
}

func (r *Router) notifyStarted(kind Kind, location string) {
	for _, obs := range r.observers {
		obs.NavigationStarted(kind, location)
	}
}

func (r *Router) notifyFinished(kind Kind, location string, status Status, err error, elapsed time.Duration) {
	for _, obs := range r.observers {
		obs.NavigationFinished(kind, location, status, err, elapsed)
	}
}
