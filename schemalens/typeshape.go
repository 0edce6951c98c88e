package schemalens

// This file implements the "Generic type-shape" export of §4.6: a pure,
// stateless translation from a Schema to a target-language-agnostic
// shape meant to drive code generation. Each Schema kind maps directly to
// one shape; no widening is applied, so every Union (including one of
// Integer and Float) becomes ShapeAny.

// TypeShapeKind tags a [TypeShape].
type TypeShapeKind int

const (
	// ShapeNullableBottom is the shape of a Null schema: a bottom type
	// that is always nullable, since nothing else was ever observed.
	ShapeNullableBottom TypeShapeKind = iota
	ShapeBool
	ShapeInteger
	ShapeFloating
	ShapeString
	// ShapeAny is the shape of Bytes (no target-language scalar maps
	// cleanly) and Union (a code generator is expected to fall back to an
	// untyped/any representation rather than a tagged sum type).
	ShapeAny
	ShapeList
	ShapeRecord
)

// TypeShape is the generic, code-generation-facing shape derived from a
// Schema.
type TypeShape struct {
	Kind TypeShapeKind

	// Element is populated for ShapeList.
	Element *TypeShapeField

	// Fields is populated for ShapeRecord, in the same order as the
	// originating Struct.Fields.
	Fields []RecordField
}

// RecordField is one named field of a ShapeRecord TypeShape.
type RecordField struct {
	Name  string
	Field *TypeShapeField
}

// TypeShapeField pairs a TypeShape with whether the target language should
// treat it as optional, derived from [FieldStatus.IsOption].
type TypeShapeField struct {
	Shape    *TypeShape
	Optional bool
}

// ToTypeShape translates s to its generic type shape.
func (s *Schema) ToTypeShape() *TypeShape {
	if s == nil {
		return &TypeShape{Kind: ShapeNullableBottom}
	}

	switch s.Kind {
	case KindNull:
		return &TypeShape{Kind: ShapeNullableBottom}
	case KindBoolean:
		return &TypeShape{Kind: ShapeBool}
	case KindInteger:
		return &TypeShape{Kind: ShapeInteger}
	case KindFloat:
		return &TypeShape{Kind: ShapeFloating}
	case KindString:
		return &TypeShape{Kind: ShapeString}
	case KindBytes:
		return &TypeShape{Kind: ShapeAny}
	case KindSequence:
		return &TypeShape{Kind: ShapeList, Element: fieldToTypeShape(s.Sequence.Element)}
	case KindStruct:
		fields := make([]RecordField, 0, s.Struct.Fields.Len())
		s.Struct.Fields.Range(func(key string, f *Field) bool {
			fields = append(fields, RecordField{Name: key, Field: fieldToTypeShape(f)})

			return true
		})

		return &TypeShape{Kind: ShapeRecord, Fields: fields}
	case KindUnion:
		return &TypeShape{Kind: ShapeAny}
	default:
		invariantf("schemalens: cannot render schema kind %s as a type shape", s.Kind)

		return nil
	}
}

// fieldToTypeShape renders f, propagating element/field optionality from
// its FieldStatus. An absent schema (never observed) becomes the bottom
// shape, marked optional.
func fieldToTypeShape(f *Field) *TypeShapeField {
	if f == nil || f.Schema == nil {
		return &TypeShapeField{Shape: &TypeShape{Kind: ShapeNullableBottom}, Optional: true}
	}

	return &TypeShapeField{Shape: f.Schema.ToTypeShape(), Optional: f.Status.IsOption()}
}
