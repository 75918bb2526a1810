package oaapptest

import (
	"net/http"
	"net/http/httptest"

	"github.com/advdv/oahttp"
)

// CallHandler invokes a [oahttp.HandlerFunc] with a buffered response writer and returns the
// recorded response. It handles the boilerplate of wrapping [httptest.ResponseRecorder] in a
// [oahttp.ResponseWriter] and flushing the buffer afterward.
func CallHandler(handler oahttp.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	w := oahttp.NewBufferResponse(rec, -1)
	defer w.Free()

	if err := handler(w, req); err != nil {
		panic("oaapptest: handler returned error: " + err.Error())
	}

	if err := w.FlushBuffer(); err != nil {
		panic("oaapptest: FlushBuffer failed: " + err.Error())
	}

	return rec
}

// CallOperationHandler invokes a [oahttp.OperationHandlerFunc] the same way, passing the given
// router context along.
func CallOperationHandler(handler oahttp.OperationHandlerFunc, opctx *oahttp.RouterContext, req *http.Request) *httptest.ResponseRecorder {
	return CallHandler(func(w oahttp.ResponseWriter, r *http.Request) error {
		return handler(w, r, opctx)
	}, req)
}
