package oaapp

import (
	"net/http"

	"github.com/carlmjohnson/requests"
)

// Runtime provides access to app-scoped dependencies. Inject this into handler constructors via
// fx instead of pulling from context.
//
// Example:
//
//	type Handlers struct {
//	    rt *oaapp.Runtime[Env]
//	}
//
//	func NewHandlers(rt *oaapp.Runtime[Env]) *Handlers {
//	    return &Handlers{rt: rt}
//	}
//
//	func (h *Handlers) GetItem(w oahttp.ResponseWriter, r *http.Request, op *oahttp.RouterContext) error {
//	    env := h.rt.Env()
//	    url, _ := h.rt.Reverse("get-item", id)
//	    // ...
//	}
type Runtime[E Environment] struct {
	env       E
	mux       *Mux
	transport http.RoundTripper
}

// NewRuntime creates a new Runtime with the given dependencies.
func NewRuntime[E Environment](env E, mux *Mux, transport http.RoundTripper) *Runtime[E] {
	return &Runtime[E]{env: env, mux: mux, transport: transport}
}

// Env returns the environment configuration.
func (r *Runtime[E]) Env() E {
	return r.env
}

// Reverse returns the URL for a named route with the given parameters. The route must have been
// registered with a name.
func (r *Runtime[E]) Reverse(name string, params ...string) (string, error) {
	return r.mux.Reverse(name, params...)
}

// NewRequest returns a fresh [requests.Builder] wired to the instrumented outbound transport, so
// requests made with it become child spans of the active trace with propagated context headers.
func (r *Runtime[E]) NewRequest() *requests.Builder {
	return newRequestBuilder(r.transport)
}
