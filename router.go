package oahttp

import "net/http"

// Router makes registering an OpenAPI operation and its live HTTP route a single call: every verb
// method converts the pattern to the OpenAPI parameter syntax for the [Paths] registry, mounts
// the handler at the original pattern on the [ServeMux], and injects the resulting
// [RouterContext] into the handler. All verb methods return the router itself so route
// configuration chains.
type Router struct {
	mux   *ServeMux
	paths *Paths
}

// NewRouter composes a mux with an operation registry.
func NewRouter(mux *ServeMux, paths *Paths) *Router {
	return &Router{mux: mux, paths: paths}
}

// Mux returns the underlying serve mux.
func (rt *Router) Mux() *ServeMux { return rt.mux }

// Paths returns the underlying operation registry.
func (rt *Router) Paths() *Paths { return rt.paths }

// Get registers op and handler for "GET path".
func (rt *Router) Get(path string, op *Operation, handler OperationHandlerFunc, name ...string) *Router {
	return rt.on([]string{http.MethodGet}, path, op, handler, name...)
}

// Post registers op and handler for "POST path".
func (rt *Router) Post(path string, op *Operation, handler OperationHandlerFunc, name ...string) *Router {
	return rt.on([]string{http.MethodPost}, path, op, handler, name...)
}

// Put registers op and handler for "PUT path".
func (rt *Router) Put(path string, op *Operation, handler OperationHandlerFunc, name ...string) *Router {
	return rt.on([]string{http.MethodPut}, path, op, handler, name...)
}

// Delete registers op and handler for "DELETE path".
func (rt *Router) Delete(path string, op *Operation, handler OperationHandlerFunc, name ...string) *Router {
	return rt.on([]string{http.MethodDelete}, path, op, handler, name...)
}

// Patch registers op and handler for "PATCH path".
func (rt *Router) Patch(path string, op *Operation, handler OperationHandlerFunc, name ...string) *Router {
	return rt.on([]string{http.MethodPatch}, path, op, handler, name...)
}

// All registers op and handler for GET, POST, PUT, DELETE and PATCH on the path.
func (rt *Router) All(path string, op *Operation, handler OperationHandlerFunc, name ...string) *Router {
	return rt.on(allMethods, path, op, handler, name...)
}

func (rt *Router) on(methods []string, path string, op *Operation, handler OperationHandlerFunc, name ...string) *Router {
	opctx := rt.paths.On(methods, ToOpenAPIPath(path), op)

	bound := HandlerFunc(func(w ResponseWriter, r *http.Request) error {
		return handler(w, r, opctx)
	})

	for i, method := range methods {
		// only the first registration carries the route name, the reverser
		// rejects duplicates.
		if i == 0 {
			rt.mux.Handle(method+" "+path, bound, name...)
		} else {
			rt.mux.Handle(method+" "+path, bound)
		}
	}

	return rt
}
