package oahttp

import "strconv"

// Schema is the capability interface every pluggable validation engine must implement. Parse
// validates (and possibly coerces) the given value and returns the result, or an error describing
// why the value does not conform. Operations merely store schemas by reference; they are never
// inspected for well-formedness at registration time.
type Schema interface {
	Parse(value any) (any, error)
}

// DocumentedSchema is optionally implemented by schemas that can describe themselves as a JSON
// Schema object. Only documented schemas contribute to the generated OpenAPI document; a bare
// [Schema] still validates but leaves its document slot empty.
type DocumentedSchema interface {
	Schema
	JSONSchema() map[string]any
}

// requestBodySchema picks the request body schema for the given media type off the operation,
// nil when the operation declares no body (or no content for that media type).
func requestBodySchema(op *Operation, mediaType string) Schema {
	if op == nil || op.RequestBody == nil {
		return nil
	}

	if mt, ok := op.RequestBody.Content[mediaType]; ok && mt != nil {
		return mt.Schema
	}

	return nil
}

// responseDescriptor resolves the response declared for a numeric status code. Response keys are
// stored as their numeral string form ("200"); a "default" entry acts as the fallback.
func responseDescriptor(op *Operation, status int) *Response {
	if op == nil || op.Responses == nil {
		return nil
	}

	if resp, ok := op.Responses[strconv.Itoa(status)]; ok {
		return resp
	}

	return op.Responses["default"]
}

// responseBodySchema picks the body schema for the given media type off a response descriptor,
// nil when absent.
func responseBodySchema(resp *Response, mediaType string) Schema {
	if resp == nil {
		return nil
	}

	if mt, ok := resp.Content[mediaType]; ok && mt != nil {
		return mt.Schema
	}

	return nil
}

func pathSchema(op *Operation) Schema {
	if op == nil || op.RequestParams == nil {
		return nil
	}

	return op.RequestParams.Path
}

func querySchema(op *Operation) Schema {
	if op == nil || op.RequestParams == nil {
		return nil
	}

	return op.RequestParams.Query
}
