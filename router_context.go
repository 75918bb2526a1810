package oahttp

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RouterContext bridges one registered [Operation] to per-request validated data access and typed
// reply construction. It is created once per registration and holds no mutable state, so a single
// instance is safely shared by all in-flight requests for its route.
type RouterContext struct {
	op         *Operation
	pathParams []string
}

func newRouterContext(op *Operation, pathParams []string) *RouterContext {
	return &RouterContext{op: op, pathParams: pathParams}
}

// Operation returns the operation this context is bound to.
func (c *RouterContext) Operation() *Operation {
	return c.op
}

// Params resolves the route's path parameters. With a declared path schema the raw string values
// are parsed through it and the (possibly coerced) result is returned; a parse failure yields a
// validation error carrying [CodeBadRequest]. Without a schema the raw map[string]string passes
// through unchanged.
func (c *RouterContext) Params(r *http.Request) (any, error) {
	raw := make(map[string]string, len(c.pathParams))
	for _, name := range c.pathParams {
		raw[name] = r.PathValue(name)
	}

	schema := pathSchema(c.op)
	if schema == nil {
		return raw, nil
	}

	parsed, err := schema.Parse(raw)
	if err != nil {
		return nil, NewValidationError(errors.Wrap(err, "path parameters"))
	}

	return parsed, nil
}

// Query resolves the request's query parameters with the same contract as
// [RouterContext.Params]. The raw passthrough shape is url.Values.
func (c *RouterContext) Query(r *http.Request) (any, error) {
	raw := r.URL.Query()

	schema := querySchema(c.op)
	if schema == nil {
		return raw, nil
	}

	parsed, err := schema.Parse(raw)
	if err != nil {
		return nil, NewValidationError(errors.Wrap(err, "query parameters"))
	}

	return parsed, nil
}

// Body reads and resolves the request body. With a declared body schema the body is decoded
// according to the request's content type (JSON, or form-urlencoded when the content type says
// so) and parsed through the schema; decode and schema failures yield a validation error carrying
// [CodeBadRequest]. Without a schema the decoded body passes through as-is, and a content type
// that cannot be decoded this way yields [CodeUnsupportedMediaType].
func (c *RouterContext) Body(r *http.Request) (any, error) {
	mediaType := requestMediaType(r)

	schema := requestBodySchema(c.op, mediaType)
	if schema == nil {
		schema = requestBodySchema(c.op, MediaTypeJSON)
	}

	if schema == nil && !decodableMediaType(mediaType) {
		return nil, NewError(CodeUnsupportedMediaType,
			errors.Newf("cannot decode request body of type %q", mediaType))
	}

	raw, err := decodeBody(r, mediaType)
	if err != nil {
		return nil, NewValidationError(errors.Wrap(err, "request body"))
	}

	if schema == nil {
		return raw, nil
	}

	parsed, err := schema.Parse(raw)
	if err != nil {
		return nil, NewValidationError(errors.Wrap(err, "request body"))
	}

	return parsed, nil
}

// Reply sets the response status code and any given header key/value pairs, then writes data as
// the JSON response body. No runtime validation is performed on this path: it exists to thread
// compile-time-checked shapes through without a runtime cost. Use [RouterContext.ValidReply] when
// the outgoing data must be checked against the declared response schema.
func (c *RouterContext) Reply(w ResponseWriter, status int, data any, headers ...map[string]string) error {
	return writeReply(w, status, data, mergeHeaders(headers))
}

// ValidReply behaves like [RouterContext.Reply] but first looks up the response declared for the
// status code. If that response declares a body schema, data is validated against it and the
// validated (possibly coerced) value is written; a violation yields an internal validation error
// carrying [CodeInternalServerError]. A declared header schema validates the given headers the
// same way, including the case where a schema requires headers but none were supplied. Without a
// declared schema values pass through unchanged.
func (c *RouterContext) ValidReply(w ResponseWriter, status int, data any, headers ...map[string]string) error {
	hdrs := mergeHeaders(headers)
	resp := responseDescriptor(c.op, status)

	if schema := responseBodySchema(resp, MediaTypeJSON); schema != nil {
		parsed, err := schema.Parse(data)
		if err != nil {
			return NewInternalValidationError(errors.Wrapf(err, "response body for status %d", status))
		}

		data = parsed
	}

	if resp != nil && resp.Headers != nil {
		parsed, err := resp.Headers.Parse(hdrs)
		if err != nil {
			return NewInternalValidationError(errors.Wrapf(err, "response headers for status %d", status))
		}

		hdrs = stringifyHeaders(parsed)
	}

	return writeReply(w, status, data, hdrs)
}

func writeReply(w ResponseWriter, status int, data any, headers map[string]string) error {
	for k, v := range headers {
		w.Header().Set(k, v)
	}

	w.Header().Set("Content-Type", MediaTypeJSON)
	w.WriteHeader(status)

	enc, err := json.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "encode reply")
	}

	if _, err := w.Write(enc); err != nil {
		return errors.Wrap(err, "write reply")
	}

	return nil
}

func mergeHeaders(headers []map[string]string) map[string]string {
	if len(headers) == 0 {
		return nil
	}

	merged := make(map[string]string)
	for _, hdrs := range headers {
		for k, v := range hdrs {
			merged[k] = v
		}
	}

	return merged
}

// stringifyHeaders brings a schema's parse result back to header-shaped string pairs.
func stringifyHeaders(parsed any) map[string]string {
	switch vals := parsed.(type) {
	case map[string]string:
		return vals
	case map[string]any:
		out := make(map[string]string, len(vals))
		for k, v := range vals {
			out[k] = fmt.Sprint(v)
		}

		return out
	default:
		enc, err := json.Marshal(parsed)
		if err != nil {
			return nil
		}

		var m map[string]any
		if err := json.Unmarshal(enc, &m); err != nil {
			return nil
		}

		return stringifyHeaders(m)
	}
}

func requestMediaType(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return MediaTypeJSON
	}

	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ct
	}

	return mediaType
}

func decodableMediaType(mediaType string) bool {
	return isJSONMediaType(mediaType) || mediaType == MediaTypeForm
}

func isJSONMediaType(mediaType string) bool {
	return mediaType == MediaTypeJSON || strings.HasSuffix(mediaType, "+json")
}

func decodeBody(r *http.Request, mediaType string) (any, error) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read body")
	}

	if len(raw) == 0 {
		return nil, nil
	}

	if mediaType == MediaTypeForm {
		vals, err := url.ParseQuery(string(raw))
		if err != nil {
			return nil, errors.Wrap(err, "decode form body")
		}

		return vals, nil
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, errors.Wrap(err, "decode json body")
	}

	return decoded, nil
}
