package oahttp

import "net/http"

// ResponseWriter implements http.ResponseWriter but the underlying bytes are buffered. This allows
// middleware to reset the writer and formulate a completely new response.
type ResponseWriter interface {
	http.ResponseWriter
	Reset()
	Free()
	FlushBuffer() error
	Status() int
}

// Handler mirrors http.Handler but writes to a buffered response and returns an error instead of
// requiring inline error handling. The request context carries cancellation and request-scoped
// values as usual.
type Handler interface {
	ServeOAHTTP(w ResponseWriter, r *http.Request) error
}

// HandlerFunc allows casting a function to implement [Handler].
type HandlerFunc func(ResponseWriter, *http.Request) error

// ServeOAHTTP implements the [Handler] interface.
func (f HandlerFunc) ServeOAHTTP(w ResponseWriter, r *http.Request) error {
	return f(w, r)
}

// OperationHandlerFunc handles a request for a route that was registered together with an OpenAPI
// operation. Next to the buffered response and the request it receives the [RouterContext] bound
// to that operation, for validated parameter/body access and typed replies.
type OperationHandlerFunc func(w ResponseWriter, r *http.Request, op *RouterContext) error

// ToStd converts a handler into a standard library http.Handler. The implementation creates a
// buffered response writer and flushes it implicitly after serving the request.
//
// When the handler returns an [*Error] the buffer is reset and a plain response with the error's
// status code is rendered instead. Any other error is logged and rendered as a 500. Validation
// detail is never echoed back to the caller.
func ToStd(h Handler, bufLimit int, logs Logger) http.Handler {
	return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
		bresp := NewBufferResponse(resp, bufLimit)
		defer bresp.Free()

		if err := h.ServeOAHTTP(bresp, req); err != nil {
			code := CodeOf(err)
			if code == CodeUnknown {
				code = CodeInternalServerError
				logs.LogUnhandledServeError(err)
			}

			bresp.Reset()
			http.Error(bresp, http.StatusText(int(code)), int(code))
		}

		if err := bresp.FlushBuffer(); err != nil {
			logs.LogImplicitFlushError(err)
		}
	})
}
