package oaapp

import (
	"context"
	"net/http"

	"github.com/advdv/oahttp"
	"github.com/google/uuid"
)

// RequestIDHeader is the header the request id is read from and echoed back on.
const RequestIDHeader = "X-Request-Id"

// WithRequestID returns middleware that assigns every request an id: an inbound
// [RequestIDHeader] value is trusted and re-used, otherwise a fresh UUID is generated. The id
// ends up in the request context and on the response headers.
func WithRequestID() oahttp.Middleware {
	return func(next oahttp.Handler) oahttp.Handler {
		return oahttp.HandlerFunc(func(w oahttp.ResponseWriter, r *http.Request) error {
			rid := r.Header.Get(RequestIDHeader)
			if rid == "" {
				rid = uuid.NewString()
			}

			w.Header().Set(RequestIDHeader, rid)
			ctx := context.WithValue(r.Context(), ctxKeyRequestID, rid)

			return next.ServeOAHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestID retrieves the request id from the context, empty when the middleware did not run.
func RequestID(ctx context.Context) string {
	rid, _ := ctx.Value(ctxKeyRequestID).(string)
	return rid
}
