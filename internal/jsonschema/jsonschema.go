package jsonschema

import (
	"reflect"
	"strings"
)

// Schema is the subset of JSON Schema used to describe tool parameters and
// structured responses. It supports objects, arrays, primitives, enums, and
// required-field lists.
type Schema struct {
	// Type specifies the data type (e.g. "object", "array", "string", "number").
	Type        string   `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	Required    []string `json:"required,omitempty"`
	// Properties of an object type, each with its own schema.
	Properties map[string]*Schema `json:"properties,omitempty"`
	// Items defines the element schema for array types.
	Items *Schema `json:"items,omitempty"`
	// Default value for the parameter.
	Default any `json:"default,omitempty"`
	// Enum lists the allowed values for the parameter.
	Enum []any `json:"enum,omitempty"`
}

// GenerateJSONSchema derives a [Schema] from the Go type T via reflection.
// Struct fields are named after their json tags; metadata comes from the
// jsonschema tag, using comma-separated directives:
//
//	Op string `json:"op" jsonschema:"description=Operation type,enum=add,enum=sub,required"`
//
// Supported directives are description=, enum= (repeatable), default=, and
// the bare required marker. Fields tagged json:"-" and unexported fields are
// skipped. Pointer fields are described by their element type.
func GenerateJSONSchema[T any]() *Schema {
	return generate(reflect.TypeFor[T]())
}

func generate(t reflect.Type) *Schema {
	switch t.Kind() {
	case reflect.Ptr:
		return generate(t.Elem())

	case reflect.Struct:
		return generateStruct(t)

	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: generate(t.Elem())}

	case reflect.Map:
		// Values are described, keys are assumed to be strings per JSON.
		return &Schema{Type: "object", Items: generate(t.Elem())}

	case reflect.String:
		return &Schema{Type: "string"}

	case reflect.Bool:
		return &Schema{Type: "boolean"}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}

	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}

	default:
		// Interfaces and anything else fall back to an unconstrained schema.
		return &Schema{}
	}
}

func generateStruct(t reflect.Type) *Schema {
	schema := &Schema{
		Type:       "object",
		Properties: map[string]*Schema{},
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name := fieldName(field)
		if name == "" {
			continue
		}

		fieldSchema := generate(field.Type)
		required := applyTag(fieldSchema, field.Tag.Get("jsonschema"))

		schema.Properties[name] = fieldSchema
		if required {
			schema.Required = append(schema.Required, name)
		}
	}

	return schema
}

// fieldName resolves the JSON property name for a struct field.
// Returns "" when the field is excluded via json:"-".
func fieldName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	if tag == "" {
		return field.Name
	}
	name := strings.Split(tag, ",")[0]
	if name == "" {
		return field.Name
	}
	return name
}

// applyTag parses the jsonschema struct tag into the field schema and reports
// whether the field is required.
func applyTag(schema *Schema, tag string) bool {
	if tag == "" {
		return false
	}

	required := false
	for _, directive := range strings.Split(tag, ",") {
		switch {
		case directive == "required":
			required = true
		case strings.HasPrefix(directive, "description="):
			schema.Description = strings.TrimPrefix(directive, "description=")
		case strings.HasPrefix(directive, "enum="):
			schema.Enum = append(schema.Enum, strings.TrimPrefix(directive, "enum="))
		case strings.HasPrefix(directive, "default="):
			schema.Default = strings.TrimPrefix(directive, "default=")
		}
	}
	return required
}
