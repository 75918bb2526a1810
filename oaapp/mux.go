package oaapp

import (
	"net/http"

	"github.com/advdv/oahttp"
	"go.uber.org/zap"
)

// MaxResponseBodyBytes bounds the buffered response body. Handlers producing more than this get
// a buffer-full error instead of a partial response.
const MaxResponseBodyBytes = 6*1024*1024 - 1024

// Mux is an alias for oahttp.ServeMux.
type Mux = oahttp.ServeMux

// NewMux creates a new Mux with the app's defaults: a bounded response buffer and zap-backed
// logging.
func NewMux(logs *zap.Logger) *Mux {
	return oahttp.NewServeMuxWith(
		MaxResponseBodyBytes,
		newZapMuxLogger(logs),
		http.NewServeMux(),
		oahttp.NewReverser(),
	)
}

// NewRouter composes the app's mux with its operation registry.
func NewRouter(mux *Mux, paths *oahttp.Paths) *oahttp.Router {
	return oahttp.NewRouter(mux, paths)
}
