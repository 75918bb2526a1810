// Package oaapp provides a batteries-included application layer for building HTTP services with
// the oahttp router.
//
// # Overview
//
// oaapp handles the boilerplate of setting up a production HTTP server: environment parsing,
// structured logging, OpenTelemetry tracing, request ids, request timeouts, the OpenAPI document
// endpoint and graceful shutdown. A complete application can be created in a single call:
//
//	oaapp.NewApp[Env](func(r *oahttp.Router, h *Handlers) {
//	    r.Get("/items", listItemsOp, h.ListItems).
//	        Get("/items/:id", getItemOp, h.GetItem, "get-item")
//	},
//	    oaapp.WithFx(fx.Provide(NewHandlers)),
//	).Run()
//
// # Environment Configuration
//
// Define your environment by embedding [BaseEnvironment]:
//
//	type Env struct {
//	    oaapp.BaseEnvironment
//	    UpstreamURL string `env:"UPSTREAM_URL,required"`
//	}
//
// BaseEnvironment provides the following environment variables:
//
//	| Variable             | Required | Default        | Description                                  |
//	|----------------------|----------|----------------|----------------------------------------------|
//	| OA_PORT              | Yes      | -              | Port the HTTP server listens on              |
//	| OA_SERVICE_NAME      | Yes      | -              | Service name for logging and tracing         |
//	| OA_HEALTH_CHECK_PATH | No       | /healthz       | Health check endpoint path                   |
//	| OA_LOG_LEVEL         | No       | info           | Log level (debug, info, warn, error)         |
//	| OA_OTEL_EXPORTER     | No       | stdout         | Trace exporter: "stdout", "otlp" or "none"   |
//	| OA_OTEL_ENDPOINT     | No       | localhost:4317 | OTLP gRPC collector endpoint                 |
//	| OA_REQUEST_TIMEOUT   | No       | 30s            | Per-request handling timeout                 |
//	| OA_DOCUMENT_PATH     | No       | /openapi.json  | OpenAPI document path, empty disables        |
//	| OA_DOCS_PATH         | No       | -              | Interactive docs UI path, empty disables     |
//	| OA_API_VERSION       | No       | 0.0.0          | Version reported in the OpenAPI document     |
//
// # Runtime
//
// [Runtime] provides access to app-scoped dependencies and should be injected into handler
// constructors via fx. This follows idiomatic Go patterns where app-level dependencies are
// passed explicitly, not pulled from context.
//
// Runtime provides:
//   - [Runtime.Env] returns the typed environment configuration
//   - [Runtime.Reverse] generates URLs for named routes
//   - [Runtime.NewRequest] returns an instrumented outbound request builder
//
// # Context
//
// Handlers receive a standard context.Context through the request. Use the package-level
// functions to access request-scoped values:
//
//	func (h *Handlers) GetItem(w oahttp.ResponseWriter, r *http.Request, op *oahttp.RouterContext) error {
//	    oaapp.Log(r.Context()).Info("fetching item")
//	    oaapp.Span(r.Context()).AddEvent("fetching item")
//	    // ...
//	}
//
// Available functions:
//
//   - [Log] - trace-correlated zap logger, also carrying the request id
//   - [Span] - current OpenTelemetry span for custom instrumentation
//   - [RequestID] - the request id assigned by the middleware
//
// # Tracing
//
// OpenTelemetry tracing is configured automatically based on OA_OTEL_EXPORTER:
//
//   - "stdout" (default): pretty-printed spans for local development
//   - "otlp": OTLP gRPC exporter with batched export, for a collector at OA_OTEL_ENDPOINT
//   - "none": no-op provider, useful in tests
//
// The tracer provider and propagator are injected explicitly (no globals), allowing for proper
// testing and isolation. The same pair instruments the outbound HTTP transport, so outbound
// requests automatically become child spans of the active trace.
//
// # Routes
//
// Next to the routing function, standalone [oahttp.Route] values can be contributed through the
// "routes" fx value group with [AsRoute]. All grouped routes are registered in one batch during
// startup, with each route's setup resolving its handler lazily against the injected
// dependencies.
//
// # HTTP Client
//
// All three outbound abstraction levels are available via fx injection:
//
//   - http.RoundTripper — instrumented transport for building custom clients
//   - *http.Client — ready-to-use client with tracing
//   - [Runtime.NewRequest] — fluent API via [github.com/carlmjohnson/requests]
//
// # Testing
//
// The companion oaapptest package constructs the identical DI graph on an fxtest app and
// provides handler-invocation helpers. Combine [WithLogger] with oaapptest.CallHandler to
// unit-test handlers that call [Log] without the server middleware.
package oaapp
