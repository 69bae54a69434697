package prompt

import "encoding/json"

// Type names the JSON type of a schema node.
type Type string

const (
	TypeObject  Type = "object"
	TypeArray   Type = "array"
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeBoolean Type = "boolean"
)

// Schema is a provider-neutral output-shape declaration. Each model adapter
// converts it into its own structured-output format.
type Schema struct {
	Type        Type
	Description string
	Properties  map[string]*Schema
	// Order fixes property ordering for providers that honour it.
	Order    []string
	Required []string
	Items    *Schema
	Enum     []string
	MinItems *int
	MaxItems *int
	Minimum  *float64
	Maximum  *float64
}

// IsArray reports whether the schema root is an array.
func (s *Schema) IsArray() bool {
	return s != nil && s.Type == TypeArray
}

// MarshalJSON renders the schema as JSON Schema. Objects are closed
// (additionalProperties false) so OpenAI strict mode accepts them.
func (s *Schema) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.JSONSchema())
}

// JSONSchema renders the schema as a generic JSON Schema document.
func (s *Schema) JSONSchema() map[string]any {
	if s == nil {
		return nil
	}

	out := map[string]any{"type": string(s.Type)}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		out["enum"] = s.Enum
	}
	if s.Minimum != nil {
		out["minimum"] = *s.Minimum
	}
	if s.Maximum != nil {
		out["maximum"] = *s.Maximum
	}

	switch s.Type {
	case TypeObject:
		props := make(map[string]any, len(s.Properties))
		for name, p := range s.Properties {
			props[name] = p.JSONSchema()
		}
		out["properties"] = props
		out["required"] = s.requiredOrAll()
		out["additionalProperties"] = false
	case TypeArray:
		out["items"] = s.Items.JSONSchema()
		if s.MinItems != nil {
			out["minItems"] = *s.MinItems
		}
		if s.MaxItems != nil {
			out["maxItems"] = *s.MaxItems
		}
	}
	return out
}

func (s *Schema) requiredOrAll() []string {
	if len(s.Required) > 0 {
		return s.Required
	}
	names := make([]string, 0, len(s.Properties))
	if len(s.Order) > 0 {
		return append(names, s.Order...)
	}
	for name := range s.Properties {
		names = append(names, name)
	}
	return names
}

// ObjectOf builds an object schema whose properties are all required, in the
// given order.
func ObjectOf(description string, props ...Property) *Schema {
	s := &Schema{
		Type:        TypeObject,
		Description: description,
		Properties:  make(map[string]*Schema, len(props)),
	}
	for _, p := range props {
		s.Properties[p.Name] = p.Schema
		s.Order = append(s.Order, p.Name)
		s.Required = append(s.Required, p.Name)
	}
	return s
}

// Property is a named object member used with ObjectOf.
type Property struct {
	Name   string
	Schema *Schema
}

// Prop is shorthand for a Property literal.
func Prop(name string, schema *Schema) Property {
	return Property{Name: name, Schema: schema}
}

// String returns a string schema.
func String(description string) *Schema {
	return &Schema{Type: TypeString, Description: description}
}

// Boolean returns a boolean schema.
func Boolean(description string) *Schema {
	return &Schema{Type: TypeBoolean, Description: description}
}

// Percent returns a number schema bounded to 0..100.
func Percent(description string) *Schema {
	lo, hi := 0.0, 100.0
	return &Schema{Type: TypeNumber, Description: description, Minimum: &lo, Maximum: &hi}
}

// Enum returns a string schema restricted to values.
func Enum(description string, values ...string) *Schema {
	return &Schema{Type: TypeString, Description: description, Enum: values}
}

// ArrayOf returns an array schema with optional length bounds (0 means unbounded).
func ArrayOf(description string, items *Schema, minItems, maxItems int) *Schema {
	s := &Schema{Type: TypeArray, Description: description, Items: items}
	if minItems > 0 {
		s.MinItems = &minItems
	}
	if maxItems > 0 {
		s.MaxItems = &maxItems
	}
	return s
}
