package oahttp

import (
	"net/http"
	"net/url"
	"strings"
)

// Mount mounts a Handler on a sub-path pattern. The mounted handler receives requests with the
// mount prefix stripped from the path. Middleware registered via [ServeMux.Use] is applied and
// sees the original path; the strip happens after middleware.
func (m *ServeMux) Mount(pattern string, handler Handler) {
	method, path := splitMethodPattern(pattern)

	stripped := stripPrefix(path, handler)
	wrapped := Wrap(stripped, m.middlewares.stack...)
	stdHandler := ToStd(wrapped, m.bufLimit, m.logs)

	m.middlewares.captured = true
	m.mux.Handle(method+path, stdHandler)
	m.mux.Handle(method+path+"/", stdHandler)
}

// MountFunc mounts a HandlerFunc on a sub-path pattern.
func (m *ServeMux) MountFunc(pattern string, handler HandlerFunc) {
	m.Mount(pattern, handler)
}

// MountStd mounts a standard library [http.Handler] on a sub-path pattern. Errors are owned by
// the standard handler itself.
func (m *ServeMux) MountStd(pattern string, handler http.Handler) {
	m.Mount(pattern, HandlerFunc(func(w ResponseWriter, r *http.Request) error {
		handler.ServeHTTP(w, r)
		return nil
	}))
}

func stripPrefix(prefix string, handler Handler) Handler {
	return HandlerFunc(func(w ResponseWriter, r *http.Request) error {
		p := strings.TrimPrefix(r.URL.Path, prefix)
		if p == "" {
			p = "/"
		}

		rp := ""
		if r.URL.RawPath != "" {
			rp = strings.TrimPrefix(r.URL.RawPath, prefix)
			if rp == "" {
				rp = "/"
			}
		}

		r2 := new(http.Request)
		*r2 = *r
		r2.URL = new(url.URL)
		*r2.URL = *r.URL
		r2.URL.Path = p
		r2.URL.RawPath = rp

		return handler.ServeOAHTTP(w, r2)
	})
}
