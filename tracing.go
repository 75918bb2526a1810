package oahttp

import (
	"net"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope reported on spans created by [WithTracing].
const tracerName = "github.com/advdv/oahttp"

type tracingOptions struct {
	provider        trace.TracerProvider
	propagator      propagation.TextMapPropagator
	spanName        func(*http.Request) string
	attributes      func(*http.Request) []attribute.KeyValue
	requestHeaders  []string
	responseHeaders []string
	disableExtract  bool
	injectResponse  bool
}

// TracingOption configures the middleware returned by [WithTracing].
type TracingOption func(*tracingOptions)

// WithTracerProvider uses an explicit tracer provider instead of the otel global.
func WithTracerProvider(tp trace.TracerProvider) TracingOption {
	return func(o *tracingOptions) { o.provider = tp }
}

// WithPropagator uses an explicit propagator instead of the otel global.
func WithPropagator(p propagation.TextMapPropagator) TracingOption {
	return func(o *tracingOptions) { o.propagator = p }
}

// WithSpanNameFormatter names spans with f instead of the default "METHOD path".
func WithSpanNameFormatter(f func(*http.Request) string) TracingOption {
	return func(o *tracingOptions) { o.spanName = f }
}

// WithSpanAttributes adds custom attributes produced by f to every request span.
func WithSpanAttributes(f func(*http.Request) []attribute.KeyValue) TracingOption {
	return func(o *tracingOptions) { o.attributes = f }
}

// WithCaptureRequestHeaders allow-lists request headers to capture as span attributes. Headers
// not named here never show up on the span, regardless of their presence on the request.
func WithCaptureRequestHeaders(names ...string) TracingOption {
	return func(o *tracingOptions) { o.requestHeaders = append(o.requestHeaders, names...) }
}

// WithCaptureResponseHeaders allow-lists response headers to capture as span attributes.
func WithCaptureResponseHeaders(names ...string) TracingOption {
	return func(o *tracingOptions) { o.responseHeaders = append(o.responseHeaders, names...) }
}

// WithoutPropagationExtract skips trace-context extraction from inbound request headers; spans
// then parent to the ambient context unchanged.
func WithoutPropagationExtract() TracingOption {
	return func(o *tracingOptions) { o.disableExtract = true }
}

// WithResponseInjection injects the active trace context into the response headers. Disabled by
// default.
func WithResponseInjection() TracingOption {
	return func(o *tracingOptions) { o.injectResponse = true }
}

// WithTracing returns middleware that wraps every request in a SERVER span: it extracts the
// propagated trace context from the inbound headers, annotates the span with the HTTP semantic
// convention attributes, runs the downstream chain with the span active in the request context,
// and maps the response status to the span status (codes below 500 map to OK, 500 and above to
// ERROR).
//
// An error returned by the downstream chain is recorded on the span as an exception event, sets
// the span status to ERROR with the error's message, and is returned unchanged: tracing never
// swallows errors, outer error handlers see the exact same error value. Consequently the
// middleware must sit outside any layer that resolves errors into responses, or it will never
// observe them. The span always ends exactly once, also when the downstream chain panics or the
// request is cancelled mid-flight.
//
// A missing or malformed trace header is never a failure: extraction then simply yields no parent
// context. Tracer and propagator resolve to the otel globals unless overridden, so tests can
// substitute fakes without patching global state. The middleware keeps no shared mutable state:
// concurrent in-flight requests each get their own span.
func WithTracing(opts ...TracingOption) Middleware {
	o := tracingOptions{
		spanName: func(r *http.Request) string { return r.Method + " " + r.URL.Path },
	}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next Handler) Handler {
		return HandlerFunc(func(w ResponseWriter, r *http.Request) error {
			provider := o.provider
			if provider == nil {
				provider = otel.GetTracerProvider()
			}

			prop := o.propagator
			if prop == nil {
				prop = otel.GetTextMapPropagator()
			}

			ctx := r.Context()
			if !o.disableExtract {
				ctx = prop.Extract(ctx, propagation.HeaderCarrier(r.Header))
			}

			ctx, span := provider.Tracer(tracerName).Start(ctx, o.spanName(r),
				trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()

			if span.IsRecording() {
				span.SetAttributes(requestAttributes(r, o)...)
			}

			err := next.ServeOAHTTP(w, r.WithContext(ctx))
			if err != nil {
				if span.IsRecording() {
					span.RecordError(err)
					span.SetStatus(codes.Error, err.Error())
				}

				return err
			}

			if span.IsRecording() {
				status := w.Status()
				span.SetAttributes(semconv.HTTPResponseStatusCode(status))

				if status >= http.StatusInternalServerError {
					span.SetStatus(codes.Error, http.StatusText(status))
				} else {
					span.SetStatus(codes.Ok, "")
				}

				span.SetAttributes(headerAttributes("http.response.header.", w.Header(), o.responseHeaders)...)
			}

			if o.injectResponse {
				prop.Inject(ctx, propagation.HeaderCarrier(w.Header()))
			}

			return nil
		})
	}
}

func requestAttributes(r *http.Request, o tracingOptions) []attribute.KeyValue {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	attrs := []attribute.KeyValue{
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.URLFull(fullURL(r, scheme)),
		semconv.URLPath(r.URL.Path),
		semconv.URLScheme(scheme),
		semconv.ServerAddress(hostOnly(r.Host)),
	}

	if q := r.URL.RawQuery; q != "" {
		attrs = append(attrs, semconv.URLQuery(q))
	}

	if ua := r.UserAgent(); ua != "" {
		attrs = append(attrs, semconv.UserAgentOriginal(ua))
	}

	attrs = append(attrs, headerAttributes("http.request.header.", r.Header, o.requestHeaders)...)

	if o.attributes != nil {
		attrs = append(attrs, o.attributes(r)...)
	}

	return attrs
}

// headerAttributes captures the allow-listed headers present in hdrs, one single-element list
// attribute per header, keyed by the lower-cased header name.
func headerAttributes(prefix string, hdrs http.Header, names []string) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	for _, name := range names {
		if val := hdrs.Get(name); val != "" {
			attrs = append(attrs, attribute.StringSlice(prefix+strings.ToLower(name), []string{val}))
		}
	}

	return attrs
}

// fullURL resolves the request's absolute URL with any userinfo redacted before it ends up in an
// attribute.
func fullURL(r *http.Request, scheme string) string {
	u := *r.URL
	if u.User != nil {
		u.User = url.UserPassword("REDACTED", "REDACTED")
	}

	if u.Host == "" {
		u.Host = r.Host
	}
	if u.Scheme == "" {
		u.Scheme = scheme
	}

	return u.String()
}

func hostOnly(hostport string) string {
	host, _, err := net.SplitHostPort(hostport)
	if err != nil {
		return hostport
	}

	return host
}
