package schemalens

// This file implements the Context capability bundle: a static
// description of how to aggregate each kind of value. Each leaf/container
// kind gets its own small interface so the engine can swap in a no-op
// ("Unit") implementation without the Schema/Field model ever knowing which
// concrete aggregator it holds.

// NullAggregator aggregates Schema Null leaves.
type NullAggregator interface {
	Aggregate()
	Merge(NullAggregator)
	Clone() NullAggregator
}

// BooleanAggregator aggregates Schema Boolean leaves.
type BooleanAggregator interface {
	Aggregate(value bool)
	Merge(BooleanAggregator)
	Clone() BooleanAggregator
}

// IntegerAggregator aggregates Schema Integer leaves.
type IntegerAggregator interface {
	Aggregate(value Int128)
	Merge(IntegerAggregator)
	Clone() IntegerAggregator
}

// FloatAggregator aggregates Schema Float leaves.
type FloatAggregator interface {
	Aggregate(value float64)
	Merge(FloatAggregator)
	Clone() FloatAggregator
}

// StringAggregator aggregates Schema String leaves.
type StringAggregator interface {
	Aggregate(value string)
	Merge(StringAggregator)
	Clone() StringAggregator
}

// BytesAggregator aggregates Schema Bytes leaves.
type BytesAggregator interface {
	Aggregate(value []byte)
	Merge(BytesAggregator)
	Clone() BytesAggregator
}

// SequenceAggregator aggregates Schema Sequence containers, once per
// sequence event over its element count.
type SequenceAggregator interface {
	Aggregate(length int)
	Merge(SequenceAggregator)
	Clone() SequenceAggregator
}

// StructAggregator aggregates Schema Struct containers, once per map event
// over its observed key list.
type StructAggregator interface {
	Aggregate(keys []string)
	Merge(StructAggregator)
	Clone() StructAggregator
}

// Context fixes the concrete aggregator type for each of the eight
// scalar/container kinds and how to construct a fresh one. Two standard
// contexts exist ([DefaultContext], [UnitContext]); callers may build a
// custom one by setting the factory fields directly.
type Context struct {
	// kind distinguishes Default from Unit (and from custom contexts) for
	// [Context.Equal], which ignores OtherAggregators.
	kind contextKind

	NewNull     func() NullAggregator
	NewBoolean  func() BooleanAggregator
	NewInteger  func() IntegerAggregator
	NewFloat    func() FloatAggregator
	NewString   func() StringAggregator
	NewBytes    func() BytesAggregator
	NewSequence func() SequenceAggregator
	NewStruct   func() StructAggregator

	// OtherAggregators holds user-attached dynamic aggregators per leaf
	// kind name ("null", "boolean", "integer", "float", "string", "bytes",
	// "sequence", "struct").
	OtherAggregators map[string][]DynamicAggregator
}

type contextKind int

const (
	contextKindCustom contextKind = iota
	contextKindDefault
	contextKindUnit
)

// Equal reports whether c and other select the same aggregator kind,
// ignoring OtherAggregators since dynamic aggregators carry no identity.
func (c Context) Equal(other Context) bool {
	return c.kind == other.kind
}

// DefaultContext returns the standard context: statistics-tracking
// aggregators for every leaf and container kind.
func DefaultContext() Context {
	return Context{
		kind: contextKindDefault,
		NewNull: func() NullAggregator {
			return &NullContext{}
		},
		NewBoolean: func() BooleanAggregator {
			return &BooleanContext{}
		},
		NewInteger: func() IntegerAggregator {
			c := NewIntegerContext()
			return &c
		},
		NewFloat: func() FloatAggregator {
			c := NewFloatContext()
			return &c
		},
		NewString: func() StringAggregator {
			c := NewStringContext()
			return &c
		},
		NewBytes: func() BytesAggregator {
			return &BytesContext{}
		},
		NewSequence: func() SequenceAggregator {
			return &SequenceContext{}
		},
		NewStruct: func() StructAggregator {
			return &MapStructContext{}
		},
	}
}

// UnitContext returns a context whose aggregators are all no-ops, for
// callers that want inference without the statistics overhead.
func UnitContext() Context {
	return Context{
		kind:        contextKindUnit,
		NewNull:     func() NullAggregator { return unitNull{} },
		NewBoolean:  func() BooleanAggregator { return unitBoolean{} },
		NewInteger:  func() IntegerAggregator { return unitInteger{} },
		NewFloat:    func() FloatAggregator { return unitFloat{} },
		NewString:   func() StringAggregator { return unitString{} },
		NewBytes:    func() BytesAggregator { return unitBytes{} },
		NewSequence: func() SequenceAggregator { return unitSequence{} },
		NewStruct:   func() StructAggregator { return unitStruct{} },
	}
}

// DynamicAggregator is the user-extension slot on a Context: a runtime-
// typed aggregator attached to a Context alongside the static one. Merge
// uses a typed-downcast-or-return-foreign idiom: implementations type-
// assert other and, on mismatch, return it unchanged so the caller can
// fold it in elsewhere (or drop it).
type DynamicAggregator interface {
	Aggregate(value any)
	Merge(other DynamicAggregator) DynamicAggregator
	Clone() DynamicAggregator
}

type unitNull struct{}

func (unitNull) Aggregate()            {}
func (unitNull) Merge(NullAggregator)  {}
func (unitNull) Clone() NullAggregator { return unitNull{} }

type unitBoolean struct{}

func (unitBoolean) Aggregate(bool)           {}
func (unitBoolean) Merge(BooleanAggregator)  {}
func (unitBoolean) Clone() BooleanAggregator { return unitBoolean{} }

type unitInteger struct{}

func (unitInteger) Aggregate(Int128)         {}
func (unitInteger) Merge(IntegerAggregator)  {}
func (unitInteger) Clone() IntegerAggregator { return unitInteger{} }

type unitFloat struct{}

func (unitFloat) Aggregate(float64)      {}
func (unitFloat) Merge(FloatAggregator)  {}
func (unitFloat) Clone() FloatAggregator { return unitFloat{} }

type unitString struct{}

func (unitString) Aggregate(string)        {}
func (unitString) Merge(StringAggregator)  {}
func (unitString) Clone() StringAggregator { return unitString{} }

type unitBytes struct{}

func (unitBytes) Aggregate([]byte)       {}
func (unitBytes) Merge(BytesAggregator)  {}
func (unitBytes) Clone() BytesAggregator { return unitBytes{} }

type unitSequence struct{}

func (unitSequence) Aggregate(int)             {}
func (unitSequence) Merge(SequenceAggregator)  {}
func (unitSequence) Clone() SequenceAggregator { return unitSequence{} }

type unitStruct struct{}

func (unitStruct) Aggregate([]string)      {}
func (unitStruct) Merge(StructAggregator)  {}
func (unitStruct) Clone() StructAggregator { return unitStruct{} }
