package schemalens

import "github.com/google/jsonschema-go/jsonschema"

// This file implements the "JSON Schema" export of §4.6: a pure,
// stateless translation from a Schema to a *jsonschema.Schema, the same
// output type the teacher's magicschema.Generator produces from a YAML
// AST walk (generator.go's walkMapping/walkSequence/walkScalar), here
// driven by our Schema tree instead.

// JSONSchemaVersion selects which JSON Schema dialect [Schema.ToJSONSchema]
// targets; it controls only how nullability and the draft URI are
// rendered, not the overall shape.
type JSONSchemaVersion int

const (
	// JSONSchemaDraft201909 is the default target dialect.
	JSONSchemaDraft201909 JSONSchemaVersion = iota
	JSONSchemaDraft07
	// JSONSchemaOpenAPI3 renders nullability as anyOf-with-null, since
	// OpenAPI 3.0's subset of JSON Schema has no type array or "null" type
	// keyword usable the same way draft dialects do.
	JSONSchemaOpenAPI3
)

func (v JSONSchemaVersion) draftURI() string {
	switch v {
	case JSONSchemaDraft07:
		return "http://json-schema.org/draft-07/schema#"
	case JSONSchemaOpenAPI3:
		return ""
	case JSONSchemaDraft201909:
		fallthrough
	default:
		return "https://json-schema.org/draft/2019-09/schema"
	}
}

// ToJSONSchema translates s to a *jsonschema.Schema targeting version. The
// root schema carries version's draft URI in its Schema field (empty for
// OpenAPI 3, which has no such keyword).
func (s *Schema) ToJSONSchema(version JSONSchemaVersion) *jsonschema.Schema {
	out := schemaToJSONSchema(s, version)
	out.Schema = version.draftURI()

	return out
}

func schemaToJSONSchema(s *Schema, version JSONSchemaVersion) *jsonschema.Schema {
	if s == nil {
		return TrueSchema()
	}

	switch s.Kind {
	case KindNull:
		return &jsonschema.Schema{Type: "null"}
	case KindBoolean:
		return &jsonschema.Schema{Type: "boolean"}
	case KindInteger:
		out := &jsonschema.Schema{Type: "integer"}

		if agg, ok := s.Integer.(*IntegerContext); ok {
			if agg.MinMax.Min != nil {
				min := agg.MinMax.Min.float64Approx()
				out.Minimum = &min
			}

			if agg.MinMax.Max != nil {
				max := agg.MinMax.Max.float64Approx()
				out.Maximum = &max
			}
		}

		return out
	case KindFloat:
		out := &jsonschema.Schema{Type: "number"}

		if agg, ok := s.Float.(*FloatContext); ok {
			if agg.MinMax.Min != nil {
				min := *agg.MinMax.Min
				out.Minimum = &min
			}

			if agg.MinMax.Max != nil {
				max := *agg.MinMax.Max
				out.Maximum = &max
			}
		}

		return out
	case KindString:
		out := &jsonschema.Schema{Type: "string"}

		if agg, ok := s.String.(*StringContext); ok {
			if agg.MinMaxLength.Min != nil {
				min := *agg.MinMaxLength.Min
				out.MinLength = &min
			}

			if agg.MinMaxLength.Max != nil {
				max := *agg.MinMaxLength.Max
				out.MaxLength = &max
			}
		}

		return out
	case KindBytes:
		// Bytes has no native JSON instance type; serialize as an array
		// of byte values, per §4.6.
		return &jsonschema.Schema{Type: "array", Items: &jsonschema.Schema{Type: "integer"}}
	case KindSequence:
		return &jsonschema.Schema{Type: "array", Items: fieldToJSONSchema(s.Sequence.Element, version)}
	case KindStruct:
		return structToJSONSchema(s.Struct, version)
	case KindUnion:
		variants := make([]*jsonschema.Schema, 0, len(s.Union))
		for _, v := range s.Union {
			variants = append(variants, schemaToJSONSchema(v, version))
		}

		return &jsonschema.Schema{AnyOf: variants}
	default:
		invariantf("schemalens: cannot render schema kind %s as JSON Schema", s.Kind)

		return nil
	}
}

func structToJSONSchema(st *StructSchema, version JSONSchemaVersion) *jsonschema.Schema {
	out := &jsonschema.Schema{
		Type:                 "object",
		Properties:           make(map[string]*jsonschema.Schema, st.Fields.Len()),
		AdditionalProperties: TrueSchema(),
	}

	var order, required []string

	st.Fields.Range(func(key string, f *Field) bool {
		out.Properties[key] = fieldToJSONSchema(f, version)
		order = append(order, key)

		if !f.Status.MayBeMissing {
			required = append(required, key)
		}

		return true
	})

	out.PropertyOrder = order
	out.Required = required

	return out
}

// fieldToJSONSchema renders f, applying nullability per §4.6: a field
// that has been observed holding an explicit null adds "null" to the
// instance-type set (or wraps in anyOf with null for OpenAPI 3).
// Possibly-missing alone does not affect the instance type — it only
// excludes the key from the enclosing object's "required" list.
func fieldToJSONSchema(f *Field, version JSONSchemaVersion) *jsonschema.Schema {
	if f == nil || f.Schema == nil {
		return TrueSchema()
	}

	out := schemaToJSONSchema(f.Schema, version)
	if !f.Status.MayBeNull {
		return out
	}

	return wrapNullable(out, version)
}

func wrapNullable(s *jsonschema.Schema, version JSONSchemaVersion) *jsonschema.Schema {
	if version != JSONSchemaOpenAPI3 && s.Type != "" && len(s.Types) == 0 {
		s.Types = []string{s.Type, "null"}
		s.Type = ""

		return s
	}

	return &jsonschema.Schema{AnyOf: []*jsonschema.Schema{s, {Type: "null"}}}
}
