// Package xml normalizes the schema shapes produced by inferring over an
// XML document into the idiomatic shapes §4.5 describes: XML parsers
// wrap textual content in a "$value" child and represent repeated sibling
// tags as the same struct key visited more than once (tripping
// may_be_duplicate rather than producing a sequence), and Cleanup turns
// both of those quirks back into what a reader of the inferred schema
// would expect.
package xml

import "github.com/inferlab/schemalens"

// valueKey is the synthetic child key an XML source adapter uses to carry
// a tag's own text content alongside its attributes/children.
const valueKey = "$value"

// Cleanup applies the three XML post-processing steps of §4.5 to every
// node reachable from schema, each as its own full recursive pass over the
// tree, in order:
//
//  1. collapse a struct whose sole field is "$value" into that field's
//     schema;
//  2. promote any field with may_be_duplicate set into a Sequence wrapping
//     the repeated shape;
//  3. rewrite a field whose schema is an empty Struct to have no schema.
//
// Running the steps as three separate passes (rather than interleaving
// them per field) matches the ordering of the original's
// cleanup_xml_schema and ensures step 3 sees the shapes step 2 produced —
// an empty struct newly wrapped in a Sequence by step 2 is still caught by
// step 3. schema is mutated in place.
func Cleanup(schema *schemalens.Schema) {
	collapseValuePass(schema)
	promoteDuplicatesPass(schema)
	emptyStructPass(schema)
}

// collapseValuePass applies step 1 everywhere reachable from s.
func collapseValuePass(s *schemalens.Schema) {
	if s == nil {
		return
	}

	switch s.Kind {
	case schemalens.KindSequence:
		collapseValuePassField(s.Sequence.Element)
	case schemalens.KindStruct:
		if collapseValueOnly(s) {
			// s may have become any kind (including another
			// $value-only Struct one level down); re-dispatch.
			collapseValuePass(s)

			return
		}

		s.Struct.Fields.Range(func(_ string, f *schemalens.Field) bool {
			collapseValuePassField(f)

			return true
		})
	case schemalens.KindUnion:
		for _, v := range s.Union {
			collapseValuePass(v)
		}
	}
}

func collapseValuePassField(f *schemalens.Field) {
	if f == nil {
		return
	}

	collapseValuePass(f.Schema)
}

// promoteDuplicatesPass applies step 2 everywhere reachable from s.
func promoteDuplicatesPass(s *schemalens.Schema) {
	if s == nil {
		return
	}

	switch s.Kind {
	case schemalens.KindSequence:
		promoteDuplicatesPassField(s.Sequence.Element)
	case schemalens.KindStruct:
		s.Struct.Fields.Range(func(_ string, f *schemalens.Field) bool {
			promoteDuplicatesPassField(f)

			return true
		})
	case schemalens.KindUnion:
		for _, v := range s.Union {
			promoteDuplicatesPass(v)
		}
	}
}

func promoteDuplicatesPassField(f *schemalens.Field) {
	if f == nil {
		return
	}

	if f.Status.MayBeDuplicate {
		promoteDuplicate(f)

		// The promoted element carries the field's former contents;
		// recurse into it rather than f itself, which is now a
		// Sequence wrapper with no duplicates of its own.
		promoteDuplicatesPassField(f.Schema.Sequence.Element)

		return
	}

	promoteDuplicatesPass(f.Schema)
}

// emptyStructPass applies step 3 everywhere reachable from s.
func emptyStructPass(s *schemalens.Schema) {
	if s == nil {
		return
	}

	switch s.Kind {
	case schemalens.KindSequence:
		emptyStructPassField(s.Sequence.Element)
	case schemalens.KindStruct:
		s.Struct.Fields.Range(func(_ string, f *schemalens.Field) bool {
			emptyStructPassField(f)

			return true
		})
	case schemalens.KindUnion:
		for _, v := range s.Union {
			emptyStructPass(v)
		}
	}
}

func emptyStructPassField(f *schemalens.Field) {
	if f == nil {
		return
	}

	emptyStructPass(f.Schema)

	if isEmptyStruct(f.Schema) {
		f.Schema = nil
	}
}

// collapseValueOnly rewrites s in place to its "$value" field's schema
// when s is a Struct whose only field is "$value", and reports whether it
// did.
func collapseValueOnly(s *schemalens.Schema) bool {
	fields := s.Struct.Fields
	if fields.Len() != 1 {
		return false
	}

	valueField, ok := fields.Get(valueKey)
	if !ok {
		return false
	}

	replacement := valueField.Schema
	if replacement == nil {
		*s = schemalens.Schema{Kind: schemalens.KindNull, Null: &schemalens.NullContext{}}

		return true
	}

	*s = *replacement

	return true
}

// promoteDuplicate wraps f's current schema in a Sequence whose element is
// a copy of f with may_be_duplicate cleared, matching §4.5 step 2.
func promoteDuplicate(f *schemalens.Field) {
	inner := &schemalens.Field{Schema: f.Schema, Status: f.Status}
	inner.Status.MayBeDuplicate = false

	f.Schema = schemalens.NewSequenceSchema(inner, &schemalens.SequenceContext{})
	f.Status.MayBeDuplicate = false
}

// isEmptyStruct reports whether s is a Struct schema with no fields.
func isEmptyStruct(s *schemalens.Schema) bool {
	return s != nil && s.Kind == schemalens.KindStruct && s.Struct.Fields.Len() == 0
}
