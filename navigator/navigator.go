package navigator

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
)

// Route identifies a screen of the interactive menu.
// The built-in routes are listed as constants, but any non-empty Route may be registered.
type Route string

const (
	RouteHome        Route = "home"
	RouteInstall     Route = "install"
	RouteRun         Route = "run"
	RouteClearConfig Route = "clearConfig"
	RouteUpdate      Route = "update"
	RouteHelp        Route = "help"
	RouteExit        Route = "exit"
)

// Handler implements the behavior of a [Route].
// It receives the [Navigator] it was registered with as its shared context, along with any extra arguments passed to [Navigator.Navigate].
//
// A Handler moves to the next screen by calling [Navigator.Navigate], and ends the session by returning without doing so.
type Handler func(ctx context.Context, nav *Navigator, args ...any) error

// Environment is the generator-discovery environment consulted by handlers.
type Environment interface {
	// Generators lists the generator packages that are currently installed.
	Generators(ctx context.Context) ([]Generator, error)
	// Get looks up a single installed generator by package name.
	Get(name string) (Generator, bool)
	// Run executes the generator registered under the given namespace.
	Run(ctx context.Context, namespace string, args ...string) error
}

// Config is a key-value store that handlers read to rank or annotate generators.
type Config interface {
	Get(key string) any
}

// Option configures a [Navigator] at construction time.
type Option func(*Navigator)

// WithLogger sets the logger used to trace navigation.
func WithLogger(logger *slog.Logger) Option {
	return func(n *Navigator) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// Navigator owns the route registry and the shared context passed to every [Handler].
type Navigator struct {
	env    Environment
	config Config
	logger *slog.Logger
	depth  atomic.Int32

	mux        sync.RWMutex
	routes     map[Route]Handler
	generators map[string]Generator
}

// New creates a [Navigator] bound to the given [Environment] and [Config].
// Either may be nil if no handler needs it.
func New(env Environment, conf Config, opts ...Option) *Navigator {
	n := &Navigator{
		env:        env,
		config:     conf,
		logger:     slog.New(slog.DiscardHandler),
		routes:     map[Route]Handler{},
		generators: map[string]Generator{},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// RegisterRoute stores handler under name, replacing any handler previously registered with the same name.
//
// Passing an empty name or a nil handler will panic.
func (n *Navigator) RegisterRoute(name Route, handler Handler) *Navigator {
	if len(name) == 0 {
		panic("empty route name")
	}
	if handler == nil {
		panic("nil route handler")
	}
	n.mux.Lock()
	_, replaced := n.routes[name]
	n.routes[name] = handler
	n.mux.Unlock()
	if replaced {
		n.logger.Debug("Replaced route handler", "route", name)
	}
	return n
}

// HasRoute reports whether a [Handler] is registered for name.
func (n *Navigator) HasRoute(name Route) bool {
	n.mux.RLock()
	defer n.mux.RUnlock()
	_, ok := n.routes[name]
	return ok
}

// Routes returns the registered route names in sorted order.
func (n *Navigator) Routes() []Route {
	n.mux.RLock()
	defer n.mux.RUnlock()
	routes := make([]Route, 0, len(n.routes))
	for route := range n.routes {
		routes = append(routes, route)
	}
	slices.Sort(routes)
	return routes
}

// Navigate runs the [Handler] registered for name and returns once it, and every navigation it triggers, has finished.
// Errors returned from the handler are passed through unchanged.
//
// A [*RouteNotFoundError] is returned if nothing is registered for name.
func (n *Navigator) Navigate(ctx context.Context, name Route, args ...any) error {
	n.mux.RLock()
	handler, ok := n.routes[name]
	n.mux.RUnlock()
	if !ok {
		n.logger.Debug("Navigation to unregistered route", "route", name)
		return &RouteNotFoundError{Route: name}
	}

	depth := n.depth.Add(1)
	defer n.depth.Add(-1)
	n.logger.Debug("Navigating", "route", name, "depth", depth)
	return handler(ctx, n, args...)
}

// Depth returns how many navigations are currently in progress.
// It's 0 outside of any handler, and 1 within the first screen.
func (n *Navigator) Depth() int {
	return int(n.depth.Load())
}

// Env returns the generator-discovery [Environment] this Navigator was created with.
func (n *Navigator) Env() Environment {
	return n.env
}

// Config returns the [Config] this Navigator was created with.
func (n *Navigator) Config() Config {
	return n.config
}

// Logger returns the logger used by this Navigator, so handlers can log consistently.
func (n *Navigator) Logger() *slog.Logger {
	return n.logger
}
