package oahttp

import (
	"html/template"
	"net/http"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Info holds the metadata of the generated OpenAPI document.
type Info struct {
	Title       string `json:"title" yaml:"title"`
	Version     string `json:"version" yaml:"version"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Document is the OpenAPI 3.1 document assembled from a [Paths] registry. Schemas only show up in
// the document when they implement [DocumentedSchema]; bare schemas still validate at runtime but
// leave their schema object empty.
type Document struct {
	OpenAPI string                    `json:"openapi" yaml:"openapi"`
	Info    Info                      `json:"info" yaml:"info"`
	Paths   map[string]map[string]any `json:"paths" yaml:"paths"`
}

// NewDocument builds the document from everything registered on paths at the time of the call.
func NewDocument(info Info, paths *Paths) *Document {
	doc := &Document{
		OpenAPI: "3.1.0",
		Info:    info,
		Paths:   make(map[string]map[string]any),
	}

	for path, item := range paths.Items() {
		ops := make(map[string]any, len(item))
		for method, op := range item {
			ops[method] = operationObject(op)
		}

		doc.Paths[path] = ops
	}

	return doc
}

// JSON serializes the document.
func (d *Document) JSON() ([]byte, error) {
	enc, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshal document")
	}

	return enc, nil
}

// YAML serializes the document.
func (d *Document) YAML() ([]byte, error) {
	enc, err := yaml.Marshal(d)
	if err != nil {
		return nil, errors.Wrap(err, "marshal document")
	}

	return enc, nil
}

func operationObject(op *Operation) map[string]any {
	out := make(map[string]any)
	if op.OperationID != "" {
		out["operationId"] = op.OperationID
	}
	if op.Summary != "" {
		out["summary"] = op.Summary
	}
	if op.Description != "" {
		out["description"] = op.Description
	}
	if len(op.Tags) > 0 {
		out["tags"] = op.Tags
	}
	if op.Deprecated {
		out["deprecated"] = true
	}

	if params := parameterObjects(op.RequestParams); len(params) > 0 {
		out["parameters"] = params
	}

	if op.RequestBody != nil {
		body := map[string]any{
			"required": op.RequestBody.Required,
			"content":  contentObject(op.RequestBody.Content),
		}
		if op.RequestBody.Description != "" {
			body["description"] = op.RequestBody.Description
		}

		out["requestBody"] = body
	}

	responses := make(map[string]any, len(op.Responses))
	for status, resp := range op.Responses {
		obj := map[string]any{"description": resp.Description}
		if len(resp.Content) > 0 {
			obj["content"] = contentObject(resp.Content)
		}

		responses[status] = obj
	}

	out["responses"] = responses

	return out
}

// parameterObjects expands the documented parameter schemas into OpenAPI parameter objects, one
// per declared property. Undocumented schemas contribute nothing.
func parameterObjects(params *RequestParams) []map[string]any {
	if params == nil {
		return nil
	}

	var out []map[string]any
	for _, loc := range []struct {
		in     string
		schema Schema
	}{
		{"path", params.Path},
		{"query", params.Query},
		{"header", params.Header},
		{"cookie", params.Cookie},
	} {
		documented, ok := loc.schema.(DocumentedSchema)
		if !ok {
			continue
		}

		obj := documented.JSONSchema()
		props, _ := obj["properties"].(map[string]any)
		required, _ := obj["required"].([]string)

		names := lo.Keys(props)
		sort.Strings(names)

		for _, name := range names {
			out = append(out, map[string]any{
				"name":     name,
				"in":       loc.in,
				"required": loc.in == "path" || lo.Contains(required, name),
				"schema":   props[name],
			})
		}
	}

	return out
}

func contentObject(content map[string]*MediaType) map[string]any {
	out := make(map[string]any, len(content))
	for mediaType, mt := range content {
		obj := make(map[string]any)
		if documented, ok := mt.Schema.(DocumentedSchema); ok {
			obj["schema"] = documented.JSONSchema()
		}
		if mt.Example != nil {
			obj["example"] = mt.Example
		}

		out[mediaType] = obj
	}

	return out
}

// ServeDocument registers GET handlers for the JSON and YAML renditions of the document at
// jsonPath and the same path with a ".yaml" extension swapped in for ".json".
func ServeDocument(mux *ServeMux, doc *Document, jsonPath string) {
	mux.HandleFunc("GET "+jsonPath, func(w ResponseWriter, _ *http.Request) error {
		enc, err := doc.JSON()
		if err != nil {
			return err
		}

		w.Header().Set("Content-Type", MediaTypeJSON)
		_, err = w.Write(enc)

		return err
	})

	yamlPath := yamlVariant(jsonPath)
	if yamlPath == jsonPath {
		return
	}

	mux.HandleFunc("GET "+yamlPath, func(w ResponseWriter, _ *http.Request) error {
		enc, err := doc.YAML()
		if err != nil {
			return err
		}

		w.Header().Set("Content-Type", "application/yaml")
		_, err = w.Write(enc)

		return err
	})
}

func yamlVariant(jsonPath string) string {
	const ext = ".json"
	if len(jsonPath) <= len(ext) || jsonPath[len(jsonPath)-len(ext):] != ext {
		return jsonPath
	}

	return jsonPath[:len(jsonPath)-len(ext)] + ".yaml"
}

// ServeDocsUI registers an interactive documentation page at the given path, rendering Stoplight
// Elements pointed at specURL.
func ServeDocsUI(mux *ServeMux, path, title, specURL string) {
	tmpl := template.Must(template.New("docs").Parse(docsHTML))

	mux.HandleFunc("GET "+path, func(w ResponseWriter, _ *http.Request) error {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		return tmpl.Execute(w, struct{ Title, SpecURL string }{title, specURL})
	})
}

const docsHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <link rel="stylesheet" href="https://unpkg.com/@stoplight/elements/styles.min.css">
  <script src="https://unpkg.com/@stoplight/elements/web-components.min.js"></script>
</head>
<body>
  <elements-api
    apiDescriptionUrl="{{.SpecURL}}"
    router="hash"
    layout="sidebar"
  />
</body>
</html>`
