package oahttp_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/advdv/oahttp"
	"github.com/stretchr/testify/require"
)

type widget struct {
	Name    string        `json:"name" validate:"required" doc:"display name"`
	Count   int           `json:"count" validate:"min=0"`
	Ratio   float64       `json:"ratio"`
	Active  bool          `json:"active"`
	Labels  []string      `json:"labels"`
	Skipped string        `json:"-"`
	Created time.Time     `json:"created"`
	TTL     time.Duration `json:"ttl"`
}

func TestStructSchemaParseStrings(t *testing.T) {
	schema := oahttp.NewStructSchema[widget]()

	parsed, err := schema.Parse(map[string]string{
		"name":   "gear",
		"count":  "3",
		"ratio":  "0.5",
		"active": "true",
	})
	require.NoError(t, err)

	out, ok := parsed.(widget)
	require.True(t, ok)
	require.Equal(t, "gear", out.Name)
	require.Equal(t, 3, out.Count)
	require.InEpsilon(t, 0.5, out.Ratio, 0.001)
	require.True(t, out.Active)
}

func TestStructSchemaParseValues(t *testing.T) {
	schema := oahttp.NewStructSchema[widget]()

	parsed, err := schema.Parse(url.Values{
		"name":   {"gear"},
		"labels": {"a", "b"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, parsed.(widget).Labels)
}

func TestStructSchemaParseDecoded(t *testing.T) {
	schema := oahttp.NewStructSchema[widget]()

	// json-decoded input arrives as map[string]any and skips coercion.
	parsed, err := schema.Parse(map[string]any{"name": "gear", "count": float64(3)})
	require.NoError(t, err)
	require.Equal(t, 3, parsed.(widget).Count)
}

func TestStructSchemaParseErrors(t *testing.T) {
	schema := oahttp.NewStructSchema[widget]()

	_, err := schema.Parse(map[string]string{"name": "gear", "count": "many"})
	require.ErrorContains(t, err, `field "count"`)
	require.ErrorContains(t, err, "is not an integer")

	_, err = schema.Parse(map[string]string{"count": "1"})
	require.ErrorContains(t, err, "validate input")

	_, err = schema.Parse(map[string]string{"name": "gear", "count": "-1"})
	require.ErrorContains(t, err, "validate input")
}

func TestStructSchemaUnknownKeysIgnored(t *testing.T) {
	schema := oahttp.NewStructSchema[widget]()

	parsed, err := schema.Parse(map[string]string{"name": "gear", "bogus": "x"})
	require.NoError(t, err)
	require.Equal(t, "gear", parsed.(widget).Name)
}

func TestStructSchemaJSONSchema(t *testing.T) {
	obj := oahttp.NewStructSchema[widget]().JSONSchema()
	require.Equal(t, "object", obj["type"])

	props, ok := obj["properties"].(map[string]any)
	require.True(t, ok)
	require.NotContains(t, props, "Skipped")

	name, ok := props["name"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "string", name["type"])
	require.Equal(t, "display name", name["description"])

	require.Equal(t, map[string]any{"type": "integer"}, props["count"])
	require.Equal(t, map[string]any{"type": "number"}, props["ratio"])
	require.Equal(t, map[string]any{"type": "boolean"}, props["active"])
	require.Equal(t, map[string]any{"type": "array", "items": map[string]any{"type": "string"}}, props["labels"])
	require.Equal(t, map[string]any{"type": "string", "format": "date-time"}, props["created"])
	require.Equal(t, map[string]any{"type": "string", "format": "duration"}, props["ttl"])

	require.Equal(t, []string{"name"}, obj["required"])
}
