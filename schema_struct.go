package oahttp

import (
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// structValidate is shared by all struct schemas; the validator instance caches struct metadata
// and is safe for concurrent use.
var structValidate = validator.New(validator.WithRequiredStructEnabled())

// StructSchema implements the [Schema] capability for a Go struct type T. Parse decodes the value
// into T (coercing string-shaped input such as path and query parameters to the field's kind) and
// validates the result against the struct's `validate` tags. It also implements
// [DocumentedSchema] so the struct's shape shows up in the generated OpenAPI document.
type StructSchema[T any] struct{}

// NewStructSchema inits a schema for T.
func NewStructSchema[T any]() *StructSchema[T] {
	return &StructSchema[T]{}
}

// Parse decodes value into T and validates it. The accepted input shapes are the ones the router
// context produces: map[string]string (path params), url.Values (query and form bodies) and
// anything JSON-decoded (body). The returned value is a T.
func (s *StructSchema[T]) Parse(value any) (any, error) {
	var out T

	coerced, err := coerceForStruct(reflect.TypeFor[T](), value)
	if err != nil {
		return nil, err
	}

	enc, err := json.Marshal(coerced)
	if err != nil {
		return nil, errors.Wrap(err, "encode input")
	}

	if err := json.Unmarshal(enc, &out); err != nil {
		return nil, errors.Wrap(err, "decode input")
	}

	if err := structValidate.Struct(&out); err != nil {
		return nil, errors.Wrap(err, "validate input")
	}

	return out, nil
}

// JSONSchema implements [DocumentedSchema] by reflecting T into a JSON Schema object.
func (s *StructSchema[T]) JSONSchema() map[string]any {
	return typeToSchema(reflect.TypeFor[T]())
}

// coerceForStruct turns string-shaped input maps into a value the JSON round-trip can decode into
// the target struct: each entry's string value is converted to the kind its field declares.
// Non-map input passes through untouched.
func coerceForStruct(target reflect.Type, value any) (any, error) {
	var raw map[string][]string

	switch vals := value.(type) {
	case map[string]string:
		raw = make(map[string][]string, len(vals))
		for k, v := range vals {
			raw[k] = []string{v}
		}
	case url.Values:
		raw = vals
	case map[string][]string:
		raw = vals
	default:
		return value, nil
	}

	for target.Kind() == reflect.Pointer {
		target = target.Elem()
	}
	if target.Kind() != reflect.Struct {
		return value, nil
	}

	fields := fieldsByJSONName(target)
	out := make(map[string]any, len(raw))

	for name, vals := range raw {
		field, ok := fields[name]
		if !ok || len(vals) == 0 {
			continue
		}

		typ := field.Type
		for typ.Kind() == reflect.Pointer {
			typ = typ.Elem()
		}

		if typ.Kind() == reflect.Slice && typ.Elem().Kind() != reflect.Uint8 {
			coerced := make([]any, 0, len(vals))
			for _, v := range vals {
				cv, err := coerceString(typ.Elem(), v)
				if err != nil {
					return nil, errors.Wrapf(err, "field %q", name)
				}

				coerced = append(coerced, cv)
			}

			out[name] = coerced

			continue
		}

		cv, err := coerceString(typ, vals[0])
		if err != nil {
			return nil, errors.Wrapf(err, "field %q", name)
		}

		out[name] = cv
	}

	return out, nil
}

func coerceString(typ reflect.Type, val string) (any, error) {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return nil, errors.Newf("%q is not an integer", val)
		}

		return n, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			return nil, errors.Newf("%q is not an unsigned integer", val)
		}

		return n, nil
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, errors.Newf("%q is not a number", val)
		}

		return n, nil
	case reflect.Bool:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return nil, errors.Newf("%q is not a boolean", val)
		}

		return b, nil
	default:
		return val, nil
	}
}

func fieldsByJSONName(t reflect.Type) map[string]reflect.StructField {
	out := make(map[string]reflect.StructField, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name := jsonFieldName(f)
		if name == "-" {
			continue
		}

		out[name] = f
	}

	return out
}

func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" {
		return f.Name
	}

	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}

	return name
}

// typeToSchema reflects a Go type into a JSON Schema object (the subset OpenAPI 3.1 uses).
func typeToSchema(t reflect.Type) map[string]any {
	if t.Kind() == reflect.Pointer {
		return typeToSchema(t.Elem())
	}

	switch t {
	case reflect.TypeFor[time.Time]():
		return map[string]any{"type": "string", "format": "date-time"}
	case reflect.TypeFor[time.Duration]():
		return map[string]any{"type": "string", "format": "duration"}
	}

	switch t.Kind() {
	case reflect.String:
		return map[string]any{"type": "string"}
	case reflect.Bool:
		return map[string]any{"type": "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]any{"type": "integer"}
	case reflect.Float32, reflect.Float64:
		return map[string]any{"type": "number"}
	case reflect.Slice, reflect.Array:
		if t.Kind() == reflect.Slice && t.Elem().Kind() == reflect.Uint8 {
			return map[string]any{"type": "string", "format": "byte"}
		}

		return map[string]any{"type": "array", "items": typeToSchema(t.Elem())}
	case reflect.Map:
		if t.Key().Kind() != reflect.String {
			return map[string]any{"type": "object"}
		}

		return map[string]any{"type": "object", "additionalProperties": typeToSchema(t.Elem())}
	case reflect.Struct:
		return structToSchema(t)
	default:
		return map[string]any{}
	}
}

func structToSchema(t reflect.Type) map[string]any {
	props := make(map[string]any)
	var required []string

	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}

		name := jsonFieldName(f)
		if name == "-" {
			continue
		}

		prop := typeToSchema(f.Type)
		if doc := f.Tag.Get("doc"); doc != "" {
			prop["description"] = doc
		}

		props[name] = prop

		if strings.Contains(f.Tag.Get("validate"), "required") {
			required = append(required, name)
		}
	}

	out := map[string]any{"type": "object", "properties": props}
	if len(required) > 0 {
		out["required"] = required
	}

	return out
}

var _ DocumentedSchema = &StructSchema[struct{}]{}
