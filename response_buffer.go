package oahttp

import (
	"bytes"
	"net/http"
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrBufferFull is returned from writes that would grow the response buffer past its limit.
var ErrBufferFull = errors.New("oahttp: response buffer is full")

var bufPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// ResponseBuffer is a http.ResponseWriter that keeps the response body (and the status code) in
// memory until it is flushed to the underlying writer. Until then the response can be reset
// completely, which is what enables error-returning handlers to replace partial output.
type ResponseBuffer struct {
	resp     http.ResponseWriter
	buf      *bytes.Buffer
	limit    int
	header   http.Header
	status   int
	flushed  bool // headers/status written to the underlying writer
	explicit bool // an explicit flush was requested, reset is no longer possible
	freed    bool
}

// NewBufferResponse inits a buffered response writer on top of w. A limit >= 0 bounds the number
// of bytes the buffer will hold, with -1 the buffer is unbounded.
func NewBufferResponse(w http.ResponseWriter, limit int) *ResponseBuffer {
	buf, _ := bufPool.Get().(*bytes.Buffer)
	buf.Reset()

	return &ResponseBuffer{
		resp:   w,
		buf:    buf,
		limit:  limit,
		header: make(http.Header),
	}
}

// Header returns the buffered header map. Unlike the standard library writer it may be modified
// until the buffer is flushed.
func (w *ResponseBuffer) Header() http.Header {
	return w.header
}

// WriteHeader buffers the status code. Only the first call has an effect, mirroring the standard
// library behavior.
func (w *ResponseBuffer) WriteHeader(statusCode int) {
	if w.status == 0 {
		w.status = statusCode
	}
}

// Write appends p to the buffer. If a limit is configured and the write would exceed it, nothing
// is written and [ErrBufferFull] is returned.
func (w *ResponseBuffer) Write(p []byte) (int, error) {
	if w.limit >= 0 && w.buf.Len()+len(p) > w.limit {
		return 0, errors.WithStack(ErrBufferFull)
	}

	return w.buf.Write(p)
}

// Status returns the buffered status code, or the implicit 200 when none was set (yet).
func (w *ResponseBuffer) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}

	return w.status
}

// Reset clears the buffered body, headers and status code so a fresh response can be written. It
// panics when the response was already (explicitly) flushed to the underlying writer.
func (w *ResponseBuffer) Reset() {
	if w.explicit {
		panic("oahttp: cannot reset response buffer: already flushed")
	}

	w.buf.Reset()
	w.status = 0
	w.header = make(http.Header)
}

// FlushError flushes the buffered headers, status code and body to the underlying writer. It is
// picked up by http.ResponseController as the explicit flush implementation: after calling it the
// buffer can no longer be reset.
func (w *ResponseBuffer) FlushError() error {
	w.explicit = true

	return w.flush()
}

// FlushBuffer performs the implicit flush at the end of the request. Unlike [ResponseBuffer.FlushError]
// it leaves the reset guard untouched, it is called by [ToStd] after the handler chain returns.
func (w *ResponseBuffer) FlushBuffer() error {
	return w.flush()
}

func (w *ResponseBuffer) flush() error {
	if !w.flushed {
		dst := w.resp.Header()
		for k, vals := range w.header {
			dst[k] = vals
		}

		w.resp.WriteHeader(w.Status())
		w.flushed = true
	}

	if w.buf.Len() > 0 {
		if _, err := w.resp.Write(w.buf.Bytes()); err != nil {
			return errors.Wrap(err, "write buffered response")
		}

		w.buf.Reset()
	}

	return nil
}

// Free returns the internal buffer to a pool for re-use. The writer must not be used afterwards.
func (w *ResponseBuffer) Free() {
	if w.freed {
		return
	}

	w.freed = true
	bufPool.Put(w.buf)
	w.buf = nil
}

// Unwrap returns the underlying response writer, it allows http.ResponseController to reach
// optional interfaces implemented by the original writer.
func (w *ResponseBuffer) Unwrap() http.ResponseWriter {
	return w.resp
}

var _ ResponseWriter = &ResponseBuffer{}
