package oaapp

import (
	"context"
	"net/http"
	"time"

	"github.com/advdv/oahttp"
	"github.com/cockroachdb/errors"
)

// DefaultTimeoutHeadroom is the slack the server-level timeouts keep beyond the per-request
// timeout, so the handler timeout fires first and the 504 response can still be written.
const DefaultTimeoutHeadroom = 500 * time.Millisecond

// TimeoutConfig derives http.Server timeout values from the configured per-request timeout.
type TimeoutConfig struct {
	// RequestTimeout bounds a single request's handling, enforced per-request by
	// [WithRequestTimeout].
	RequestTimeout time.Duration

	// Headroom is added on top of RequestTimeout for the server-level bounds. Defaults to
	// DefaultTimeoutHeadroom.
	Headroom time.Duration
}

// ServerTimeouts returns the http.Server timeout values. The server-level timeouts act as outer
// bounds only: the per-request context deadline from [WithRequestTimeout] is the one that
// resolves into a response.
func (tc TimeoutConfig) ServerTimeouts() (readHeaderTimeout, readTimeout, writeTimeout, idleTimeout time.Duration) {
	headroom := tc.Headroom
	if headroom <= 0 {
		headroom = DefaultTimeoutHeadroom
	}

	outer := tc.RequestTimeout + headroom

	readHeaderTimeout = min(outer, 5*time.Second)
	readTimeout = outer
	writeTimeout = outer
	idleTimeout = outer

	return
}

// WithRequestTimeout returns middleware that bounds each request with a context timeout. When
// the downstream chain fails because that deadline expired the error resolves to a gateway
// timeout instead of a generic internal error, so timeouts are distinguishable at the edge. A
// non-positive timeout disables the bound.
func WithRequestTimeout(timeout time.Duration) oahttp.Middleware {
	return func(next oahttp.Handler) oahttp.Handler {
		return oahttp.HandlerFunc(func(w oahttp.ResponseWriter, r *http.Request) error {
			ctx := r.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			err := next.ServeOAHTTP(w, r.WithContext(ctx))
			if err != nil && errors.Is(err, context.DeadlineExceeded) && oahttp.CodeOf(err) == oahttp.CodeUnknown {
				return oahttp.NewError(oahttp.CodeGatewayTimeout, err)
			}

			return err
		})
	}
}

// RequestDeadline returns the context deadline for the current request. Returns the zero time
// and false if no deadline is set.
func RequestDeadline(ctx context.Context) (time.Time, bool) {
	return ctx.Deadline()
}

// RequestRemainingTime returns the duration until the request context deadline. Returns 0 if no
// deadline is set or if the deadline has passed.
func RequestRemainingTime(ctx context.Context) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return 0
	}

	remaining := time.Until(deadline)
	if remaining < 0 {
		return 0
	}

	return remaining
}
