package oaapp

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/advdv/oahttp"
	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ServerConfig holds optional configuration for the HTTP server.
type ServerConfig struct {
	HealthHandler func(http.ResponseWriter, *http.Request)
}

// ServerParams holds the dependencies for creating an HTTP server.
type ServerParams struct {
	fx.In

	Env        Environment
	Mux        *Mux
	Paths      *oahttp.Paths
	Logger     *zap.Logger
	TracerProv trace.TracerProvider
	Propagator propagation.TextMapPropagator
}

// NewServer creates an HTTP server with all middleware and routing configured.
func NewServer(params ServerParams, cfg ServerConfig) *http.Server {
	d := &requestDep{
		logger: params.Logger,
	}

	// tracing sits outermost so every inner layer observes the active span,
	// the timeout bound is innermost so its 504 mapping sees handler errors first.
	params.Mux.Use(oahttp.WithTracing(
		oahttp.WithTracerProvider(params.TracerProv),
		oahttp.WithPropagator(params.Propagator),
	))
	params.Mux.Use(withRequestDep(d))
	params.Mux.Use(WithRequestID())
	params.Mux.Use(WithRequestTimeout(params.Env.requestTimeout()))

	healthHandler := cfg.HealthHandler
	if healthHandler == nil {
		healthHandler = defaultHealthHandler
	}
	params.Mux.HandleFunc("GET "+params.Env.healthCheckPath(), func(w oahttp.ResponseWriter, r *http.Request) error {
		healthHandler(w, r)
		return nil
	})

	registerDocumentRoutes(params)

	tc := TimeoutConfig{RequestTimeout: params.Env.requestTimeout()}
	readHeaderTimeout, readTimeout, writeTimeout, idleTimeout := tc.ServerTimeouts()

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", params.Env.port()),
		Handler:           params.Mux,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}

// registerDocumentRoutes serves the OpenAPI document (and optionally the docs UI). The document
// is assembled per request so it reflects routes registered after server construction.
func registerDocumentRoutes(params ServerParams) {
	docPath := params.Env.documentPath()
	if docPath == "" {
		return
	}

	info := oahttp.Info{Title: params.Env.serviceName(), Version: params.Env.apiVersion()}

	params.Mux.HandleFunc("GET "+docPath, func(w oahttp.ResponseWriter, _ *http.Request) error {
		enc, err := oahttp.NewDocument(info, params.Paths).JSON()
		if err != nil {
			return err
		}

		w.Header().Set("Content-Type", oahttp.MediaTypeJSON)
		_, err = w.Write(enc)

		return err
	})

	if docsPath := params.Env.docsPath(); docsPath != "" {
		oahttp.ServeDocsUI(params.Mux, docsPath, params.Env.serviceName(), docPath)
	}
}

// startServerHook registers lifecycle hooks for the HTTP server. The listener is bound
// synchronously so requests arriving right after start are never refused.
func startServerHook(lc fx.Lifecycle, server *http.Server, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", server.Addr)
			if err != nil {
				return errors.Wrapf(err, "listen on %s", server.Addr)
			}

			logger.Info("starting server", zap.String("addr", ln.Addr().String()))
			go func() {
				if err := server.Serve(ln); err != nil && err != http.ErrServerClosed {
					logger.Error("server error", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping server")
			return server.Shutdown(ctx)
		},
	})
}

func defaultHealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
