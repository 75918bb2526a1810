package oahttp

import (
	"net/http"
	"strings"
)

// methods covered by [Paths.All] and [Router.All].
var allMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodPatch,
}

// PathItem maps a lower-cased HTTP method name to the operation registered for it on one path.
type PathItem map[string]*Operation

// Paths accumulates operations under (path, method) keys: the "paths" object of the eventual
// OpenAPI document. Registration happens during single-threaded application setup; the
// accumulated tree is only read afterwards, by [NewDocument].
type Paths struct {
	items map[string]PathItem
}

// NewPaths inits an empty registry.
func NewPaths() *Paths {
	return &Paths{items: make(map[string]PathItem)}
}

// On registers the operation for every given method and returns the [RouterContext] bound to it.
// The path is normalized and converted to the OpenAPI parameter syntax before it becomes a key,
// so express-style paths register under their document form ("/users/:id" under "/users/{id}").
// Registration cannot fail: it is pure structural accumulation.
//
// Duplicate registrations follow the accumulate-first-wins policy: the first operation registered
// for a (path, method) pair is kept and later registrations for that exact pair are dropped
// silently. Different methods on the same path always accumulate.
func (p *Paths) On(methods []string, path string, op *Operation) *RouterContext {
	path = ToOpenAPIPath(path)

	item, ok := p.items[path]
	if !ok {
		item = make(PathItem)
		p.items[path] = item
	}

	for _, method := range methods {
		method = strings.ToLower(method)
		if _, exists := item[method]; !exists {
			item[method] = op
		}
	}

	return newRouterContext(op, pathParamNames(path))
}

// Get registers the operation for the GET method.
func (p *Paths) Get(path string, op *Operation) *RouterContext {
	return p.On([]string{http.MethodGet}, path, op)
}

// Post registers the operation for the POST method.
func (p *Paths) Post(path string, op *Operation) *RouterContext {
	return p.On([]string{http.MethodPost}, path, op)
}

// Put registers the operation for the PUT method.
func (p *Paths) Put(path string, op *Operation) *RouterContext {
	return p.On([]string{http.MethodPut}, path, op)
}

// Delete registers the operation for the DELETE method.
func (p *Paths) Delete(path string, op *Operation) *RouterContext {
	return p.On([]string{http.MethodDelete}, path, op)
}

// Patch registers the operation for the PATCH method.
func (p *Paths) Patch(path string, op *Operation) *RouterContext {
	return p.On([]string{http.MethodPatch}, path, op)
}

// All registers the operation for GET, POST, PUT, DELETE and PATCH at once.
func (p *Paths) All(path string, op *Operation) *RouterContext {
	return p.On(allMethods, path, op)
}

// Item returns the path item registered for the path, nil when nothing was registered on it. The
// path goes through the same conversion as [Paths.On], so the express and OpenAPI forms resolve
// to the same item.
func (p *Paths) Item(path string) PathItem {
	return p.items[ToOpenAPIPath(path)]
}

// Items returns a shallow copy of the accumulated path tree, keyed by converted path.
func (p *Paths) Items() map[string]PathItem {
	out := make(map[string]PathItem, len(p.items))
	for path, item := range p.items {
		out[path] = item
	}

	return out
}
