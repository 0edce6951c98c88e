package schemalens

import "sort"

// SchemaKind tags the variant a Schema holds. The ordering of the constants
// is the "rank" form Open Questions resolve structural_eq's union
// ordering to: ranks compare as integers rather than via a fully tabulated
// pairwise function.
type SchemaKind int

const (
	KindNull SchemaKind = iota
	KindBoolean
	KindInteger
	KindFloat
	KindString
	KindBytes
	KindSequence
	KindStruct
	KindUnion
)

// String returns the persistence discriminator value for k.
func (k SchemaKind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBoolean:
		return "Boolean"
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	case KindBytes:
		return "Bytes"
	case KindSequence:
		return "Sequence"
	case KindStruct:
		return "Struct"
	case KindUnion:
		return "Union"
	default:
		invariantf("schemalens: unknown SchemaKind %d", int(k))

		return ""
	}
}

// SequenceSchema is the payload of a Schema in KindSequence: the merged
// shape of every element observed, plus length statistics.
type SequenceSchema struct {
	Element *Field
	Agg     SequenceAggregator
}

// StructSchema is the payload of a Schema in KindStruct: the struct's
// fields in first-seen order, plus key-set statistics.
type StructSchema struct {
	Fields *OrderedFields
	Agg    StructAggregator
}

// Schema is the tagged variant holding the inferred shape of one position
// in the data. Exactly one of the payload fields matching Kind is
// populated; the rest are zero.
type Schema struct {
	Kind SchemaKind

	Null    NullAggregator
	Boolean BooleanAggregator
	Integer IntegerAggregator
	Float   FloatAggregator
	String  StringAggregator
	Bytes   BytesAggregator

	Sequence *SequenceSchema
	Struct   *StructSchema
	Union    []*Schema
}

// NewNullSchema returns a fresh Null schema carrying agg.
func NewNullSchema(agg NullAggregator) *Schema {
	return &Schema{Kind: KindNull, Null: agg}
}

// NewBooleanSchema returns a fresh Boolean schema carrying agg.
func NewBooleanSchema(agg BooleanAggregator) *Schema {
	return &Schema{Kind: KindBoolean, Boolean: agg}
}

// NewIntegerSchema returns a fresh Integer schema carrying agg.
func NewIntegerSchema(agg IntegerAggregator) *Schema {
	return &Schema{Kind: KindInteger, Integer: agg}
}

// NewFloatSchema returns a fresh Float schema carrying agg.
func NewFloatSchema(agg FloatAggregator) *Schema {
	return &Schema{Kind: KindFloat, Float: agg}
}

// NewStringSchema returns a fresh String schema carrying agg.
func NewStringSchema(agg StringAggregator) *Schema {
	return &Schema{Kind: KindString, String: agg}
}

// NewBytesSchema returns a fresh Bytes schema carrying agg.
func NewBytesSchema(agg BytesAggregator) *Schema {
	return &Schema{Kind: KindBytes, Bytes: agg}
}

// NewSequenceSchema returns a fresh Sequence schema.
func NewSequenceSchema(element *Field, agg SequenceAggregator) *Schema {
	return &Schema{Kind: KindSequence, Sequence: &SequenceSchema{Element: element, Agg: agg}}
}

// NewStructSchema returns a fresh Struct schema.
func NewStructSchema(fields *OrderedFields, agg StructAggregator) *Schema {
	return &Schema{Kind: KindStruct, Struct: &StructSchema{Fields: fields, Agg: agg}}
}

// NewUnionSchema returns a fresh Union schema. Callers are responsible for
// the invariants: at least 2 variants, none itself a Union, no two sharing
// a top-level tag.
func NewUnionSchema(variants []*Schema) *Schema {
	return &Schema{Kind: KindUnion, Union: variants}
}

// FieldStatus is the four independent observation flags tracked for a
// field across every value seen at its position.
type FieldStatus struct {
	MayBeNull      bool `json:"may_be_null"`
	MayBeNormal    bool `json:"may_be_normal"`
	MayBeMissing   bool `json:"may_be_missing"`
	MayBeDuplicate bool `json:"may_be_duplicate"`
}

// IsOption reports whether the field may be absent from the value entirely
// (null or missing).
func (s FieldStatus) IsOption() bool {
	return s.MayBeNull || s.MayBeMissing
}

// Merge ORs other's flags into s, one by one.
func (s *FieldStatus) Merge(other FieldStatus) {
	s.MayBeNull = s.MayBeNull || other.MayBeNull
	s.MayBeNormal = s.MayBeNormal || other.MayBeNormal
	s.MayBeMissing = s.MayBeMissing || other.MayBeMissing
	s.MayBeDuplicate = s.MayBeDuplicate || other.MayBeDuplicate
}

// Field bundles an optional Schema with its FieldStatus. Schema is nil
// exactly when no value has ever been observed at this position.
type Field struct {
	Schema *Schema
	Status FieldStatus
}

// NewField returns a Field with no schema and the zero status.
func NewField() *Field {
	return &Field{}
}

// WithSchema returns a Field with the zero status and schema s, matching
// the Rust source's Field::with_schema.
func WithSchema(s *Schema) *Field {
	return &Field{Schema: s}
}

// SortFields recursively sorts struct fields by key and union variants by
// tag.
func (s *Schema) SortFields() {
	if s == nil {
		return
	}

	switch s.Kind {
	case KindSequence:
		s.Sequence.Element.Schema.SortFields()
	case KindStruct:
		s.Struct.Fields.SortByKey()
		s.Struct.Fields.Range(func(_ string, f *Field) bool {
			f.Schema.SortFields()

			return true
		})
	case KindUnion:
		s.sortUnionVariants()

		for _, v := range s.Union {
			v.SortFields()
		}
	}
}

// SortVariants recursively sorts only union variants, leaving struct field
// order untouched.
func (s *Schema) SortVariants() {
	if s == nil {
		return
	}

	switch s.Kind {
	case KindSequence:
		s.Sequence.Element.Schema.SortVariants()
	case KindStruct:
		s.Struct.Fields.Range(func(_ string, f *Field) bool {
			f.Schema.SortVariants()

			return true
		})
	case KindUnion:
		s.sortUnionVariants()

		for _, v := range s.Union {
			v.SortVariants()
		}
	}
}

func (s *Schema) sortUnionVariants() {
	sort.Slice(s.Union, func(i, j int) bool { return s.Union[i].Kind < s.Union[j].Kind })
}

// StructuralEq reports whether s and other have the same shape, ignoring
// aggregator contents.
func (s *Schema) StructuralEq(other *Schema) bool {
	if s == nil || other == nil {
		return s == other
	}

	if s.Kind != other.Kind {
		return false
	}

	switch s.Kind {
	case KindNull, KindBoolean, KindInteger, KindFloat, KindString, KindBytes:
		return true
	case KindSequence:
		return s.Sequence.Element.StructuralEq(other.Sequence.Element)
	case KindStruct:
		return structFieldsEq(s.Struct.Fields, other.Struct.Fields)
	case KindUnion:
		return unionVariantsEq(s.Union, other.Union)
	default:
		invariantf("schemalens: unknown SchemaKind %d", int(s.Kind))

		return false
	}
}

func structFieldsEq(a, b *OrderedFields) bool {
	if a.Len() != b.Len() {
		return false
	}

	eq := true
	a.Range(func(key string, fa *Field) bool {
		fb, ok := b.Get(key)
		if !ok || !fa.StructuralEq(fb) {
			eq = false

			return false
		}

		return true
	})

	return eq
}

func unionVariantsEq(a, b []*Schema) bool {
	if len(a) != len(b) {
		return false
	}

	as := append([]*Schema(nil), a...)
	bs := append([]*Schema(nil), b...)

	sort.Slice(as, func(i, j int) bool { return as[i].Kind < as[j].Kind })
	sort.Slice(bs, func(i, j int) bool { return bs[i].Kind < bs[j].Kind })

	for i := range as {
		if !as[i].StructuralEq(bs[i]) {
			return false
		}
	}

	return true
}

// StructuralEq reports whether f and other have equal status flags and
// structurally equal schemas.
func (f *Field) StructuralEq(other *Field) bool {
	if f == nil || other == nil {
		return f == other
	}

	return f.Status == other.Status && f.Schema.StructuralEq(other.Schema)
}
