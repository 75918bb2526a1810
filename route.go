package oahttp

import (
	"net/http"
	"strings"

	"github.com/cockroachdb/errors"
)

// SetupFunc produces the handler for a [Route]. It runs once, lazily, when the route is
// registered against a concrete registry/mux pair. Dependencies the handler needs are closed over
// by whatever constructed the route, typically a provider in the application's dependency
// container.
type SetupFunc func() (OperationHandlerFunc, error)

// Route is a deferred registration unit: it captures method(s), path, operation and a handler
// setup so independently-defined routes can be declared up front and registered later, in one
// batch, against a shared [Paths] registry and [ServeMux].
type Route struct {
	methods []string
	path    string
	op      *Operation
	setup   SetupFunc

	name       string
	middleware []Middleware

	handler OperationHandlerFunc
}

// RouteOption configures a [Route].
type RouteOption func(*Route)

// WithRouteName names the route for URL reversing.
func WithRouteName(name string) RouteOption {
	return func(r *Route) { r.name = name }
}

// WithRouteMiddleware wraps the route's handler with per-route middleware, innermost last.
func WithRouteMiddleware(mw ...Middleware) RouteOption {
	return func(r *Route) { r.middleware = append(r.middleware, mw...) }
}

// NewRoute declares a route for a single HTTP method.
func NewRoute(method, path string, op *Operation, setup SetupFunc, opts ...RouteOption) *Route {
	return NewRouteMethods([]string{method}, path, op, setup, opts...)
}

// NewRouteMethods declares a route served by multiple HTTP methods at once.
func NewRouteMethods(methods []string, path string, op *Operation, setup SetupFunc, opts ...RouteOption) *Route {
	route := &Route{methods: methods, path: path, op: op, setup: setup}
	for _, opt := range opts {
		opt(route)
	}

	return route
}

// Register resolves the route's handler (invoking setup on first use), registers the operation at
// the converted path and mounts the handler at the original path.
func (r *Route) Register(paths *Paths, mux *ServeMux) error {
	if r.handler == nil {
		handler, err := r.setup()
		if err != nil {
			return errors.Wrapf(err, "setup route %s %s", strings.Join(r.methods, ","), r.path)
		}

		r.handler = handler
	}

	opctx := paths.On(r.methods, ToOpenAPIPath(r.path), r.op)

	handler := r.handler
	bound := Wrap(HandlerFunc(func(w ResponseWriter, req *http.Request) error {
		return handler(w, req, opctx)
	}), r.middleware...)

	for i, method := range r.methods {
		if i == 0 && r.name != "" {
			mux.Handle(method+" "+r.path, bound, r.name)
		} else {
			mux.Handle(method+" "+r.path, bound)
		}
	}

	return nil
}

// RegisterRoutes registers a batch of routes against the same registry/mux pair, stopping at the
// first setup failure.
func RegisterRoutes(paths *Paths, mux *ServeMux, routes ...*Route) error {
	for _, route := range routes {
		if err := route.Register(paths, mux); err != nil {
			return err
		}
	}

	return nil
}
