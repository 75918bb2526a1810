package oahttp

// Media types that get first-class treatment in request/response handling.
const (
	MediaTypeJSON = "application/json"
	MediaTypeForm = "application/x-www-form-urlencoded"
)

// Operation describes a single API operation as it ends up in the OpenAPI document. It is
// supplied by the caller at registration time and treated as immutable from then on.
type Operation struct {
	OperationID   string
	Summary       string
	Description   string
	Tags          []string
	Deprecated    bool
	RequestParams *RequestParams
	RequestBody   *RequestBody

	// Responses maps a status code in its numeral string form ("200", "404") to the response
	// declared for it. The key "default" declares the fallback response.
	Responses map[string]*Response
}

// RequestParams holds the schemas for the four parameter locations. Any of them may be nil, in
// which case the raw values pass through unvalidated.
type RequestParams struct {
	Path   Schema
	Query  Schema
	Header Schema
	Cookie Schema
}

// RequestBody describes the request body, keyed by media type.
type RequestBody struct {
	Description string
	Required    bool
	Content     map[string]*MediaType
}

// MediaType carries the schema (and an optional example) for one media type.
type MediaType struct {
	Schema  Schema
	Example any
}

// Response describes a single declared response: its body content by media type and an optional
// schema for the response headers.
type Response struct {
	Description string
	Content     map[string]*MediaType
	Headers     Schema
}

// RequestBodyOption configures a request body built by [JSONRequest].
type RequestBodyOption func(*RequestBody)

// WithBodyDescription sets the request body description.
func WithBodyDescription(desc string) RequestBodyOption {
	return func(b *RequestBody) { b.Description = desc }
}

// WithBodyOptional marks the request body as not required. JSON request bodies are required by
// default.
func WithBodyOptional() RequestBodyOption {
	return func(b *RequestBody) { b.Required = false }
}

// WithBodyExample attaches an example value to the JSON media type.
func WithBodyExample(example any) RequestBodyOption {
	return func(b *RequestBody) { b.Content[MediaTypeJSON].Example = example }
}

// JSONRequest builds a required request body with an application/json content entry for the
// given schema.
func JSONRequest(schema Schema, opts ...RequestBodyOption) *RequestBody {
	body := &RequestBody{
		Required: true,
		Content: map[string]*MediaType{
			MediaTypeJSON: {Schema: schema},
		},
	}

	for _, opt := range opts {
		opt(body)
	}

	return body
}

// ResponseOption configures a response built by [JSONResponse].
type ResponseOption func(*Response)

// WithResponseHeaders declares a schema for the response headers.
func WithResponseHeaders(schema Schema) ResponseOption {
	return func(r *Response) { r.Headers = schema }
}

// WithResponseExample attaches an example value to the JSON media type.
func WithResponseExample(example any) ResponseOption {
	return func(r *Response) { r.Content[MediaTypeJSON].Example = example }
}

// JSONResponse builds a response with an application/json content entry for the given schema.
func JSONResponse(schema Schema, description string, opts ...ResponseOption) *Response {
	resp := &Response{
		Description: description,
		Content: map[string]*MediaType{
			MediaTypeJSON: {Schema: schema},
		},
	}

	for _, opt := range opts {
		opt(resp)
	}

	return resp
}
