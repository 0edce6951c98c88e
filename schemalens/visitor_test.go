package schemalens_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inferlab/schemalens"
	"github.com/inferlab/schemalens/source/genericvalue"
)

// tokens builds a replayable TokenSource from a plain Go value (nil,
// bool, int, float64, string, []byte, []any, or map[string]any), the same
// generic shape the TOML/BSON/CBOR adapters walk.
func tokens(t *testing.T, v any) schemalens.TokenSource {
	t.Helper()

	toks, err := genericvalue.Tokens(v, nil)
	require.NoError(t, err)

	return genericvalue.NewSource(toks)
}

func infer(t *testing.T, v any) *schemalens.Schema {
	t.Helper()

	s, err := schemalens.InferFromTokens(tokens(t, v))
	require.NoError(t, err)

	return s
}

// Scenario (1): null document.
func TestScenarioNull(t *testing.T) {
	t.Parallel()

	s := infer(t, nil)

	assert.Equal(t, schemalens.KindNull, s.Kind)
}

// Scenario (2): empty sequence marks its element field possibly missing.
func TestScenarioEmptySequence(t *testing.T) {
	t.Parallel()

	s := infer(t, []any{})

	require.Equal(t, schemalens.KindSequence, s.Kind)
	assert.Nil(t, s.Sequence.Element.Schema)
	assert.True(t, s.Sequence.Element.Status.MayBeMissing)
	assert.False(t, s.Sequence.Element.Status.MayBeNull)
	assert.False(t, s.Sequence.Element.Status.MayBeNormal)
}

// Scenario (3): mixed-type sequence with a null widens its element to a
// Union(Integer, String) field that is both normal and nullable.
func TestScenarioMixedSequence(t *testing.T) {
	t.Parallel()

	s := infer(t, []any{int64(1), "two", int64(3), nil})

	require.Equal(t, schemalens.KindSequence, s.Kind)

	elem := s.Sequence.Element
	assert.True(t, elem.Status.MayBeNormal)
	assert.True(t, elem.Status.MayBeNull)
	assert.False(t, elem.Status.MayBeMissing)

	require.Equal(t, schemalens.KindUnion, elem.Schema.Kind)
	assert.ElementsMatch(t,
		[]schemalens.SchemaKind{schemalens.KindInteger, schemalens.KindString},
		kindsOf(elem.Schema.Union))
}

// Scenario (4): a sequence of structs with a field absent in one element
// is struct-merged, and the missing field is marked possibly missing.
func TestScenarioSequenceOfStructs(t *testing.T) {
	t.Parallel()

	s := infer(t, []any{
		map[string]any{"a": int64(1), "b": "x"},
		map[string]any{"a": int64(2)},
	})

	require.Equal(t, schemalens.KindSequence, s.Kind)

	elemSchema := s.Sequence.Element.Schema
	require.Equal(t, schemalens.KindStruct, elemSchema.Kind)

	aField, ok := elemSchema.Struct.Fields.Get("a")
	require.True(t, ok)
	assert.True(t, aField.Status.MayBeNormal)
	assert.False(t, aField.Status.MayBeMissing)
	assert.Equal(t, schemalens.KindInteger, aField.Schema.Kind)

	bField, ok := elemSchema.Struct.Fields.Get("b")
	require.True(t, ok)
	assert.True(t, bField.Status.MayBeNormal)
	assert.True(t, bField.Status.MayBeMissing)
	assert.Equal(t, schemalens.KindString, bField.Schema.Kind)
}

// Scenario (5): Extend across two documents of different top-level type
// produces a Union, the same shape Coalesce would produce directly.
func TestScenarioExtendAcrossDocumentsProducesUnion(t *testing.T) {
	t.Parallel()

	s, err := schemalens.InferFromTokens(tokens(t, int64(1)))
	require.NoError(t, err)

	err = schemalens.Extend(s, tokens(t, "hello"))
	require.NoError(t, err)

	require.Equal(t, schemalens.KindUnion, s.Kind)
	assert.ElementsMatch(t,
		[]schemalens.SchemaKind{schemalens.KindInteger, schemalens.KindString},
		kindsOf(s.Union))
}

// Scenario (7): a date-shaped string is recorded by the semantic extractor
// and never flagged as suspicious.
func TestScenarioDateStringSemanticLabel(t *testing.T) {
	t.Parallel()

	s := infer(t, "2020-01-31")

	require.Equal(t, schemalens.KindString, s.Kind)

	str, ok := s.String.(*schemalens.StringContext)
	require.True(t, ok)

	assert.Equal(t, 1, str.SemanticExtractor.Counts["Date 2001-12-31"])
	assert.Zero(t, str.SuspiciousStrings.Len())
}

func TestScenarioSuspiciousString(t *testing.T) {
	t.Parallel()

	s := infer(t, "n/a")

	str, ok := s.String.(*schemalens.StringContext)
	require.True(t, ok)
	assert.Equal(t, 1, str.SuspiciousStrings.Counts["n/a"])
	assert.Zero(t, str.SemanticExtractor.Len())
}

// Property (3): infer(d1); extend(s, d2) is structurally equal to
// coalesce(infer(d1), infer(d2)), when both documents share the same
// struct keys (§4.3.2's seeded-expansion may_be_missing inference only
// diverges from plain coalesce when a struct gains or loses a key across
// documents — see DESIGN.md's Open Question decisions).
func TestExtendEqualsCoalesce(t *testing.T) {
	t.Parallel()

	d1 := map[string]any{"a": int64(1), "b": "x"}
	d2 := map[string]any{"a": int64(2), "b": "y"}

	viaExtend, err := schemalens.InferFromTokens(tokens(t, d1))
	require.NoError(t, err)
	require.NoError(t, schemalens.Extend(viaExtend, tokens(t, d2)))

	viaCoalesce := infer(t, d1)
	other := infer(t, d2)
	schemalens.Coalesce(viaCoalesce, other)

	assert.True(t, viaExtend.StructuralEq(viaCoalesce))
}

// Property (4): repeated none at a field only ever sets may_be_null once;
// later values never clear it.
func TestIdempotentNullObservation(t *testing.T) {
	t.Parallel()

	s := infer(t, []any{nil, nil, int64(1)})

	elem := s.Sequence.Element
	assert.True(t, elem.Status.MayBeNull)
	assert.True(t, elem.Status.MayBeNormal)
}

// Field-level duplicate detection: a repeated key within one map event
// sets may_be_duplicate.
func TestDuplicateKeyWithinOneMap(t *testing.T) {
	t.Parallel()

	toks := []schemalens.Token{
		schemalens.MapStartToken(),
		schemalens.MapKeyToken("a"),
		schemalens.Int64Token(1),
		schemalens.MapKeyToken("a"),
		schemalens.Int64Token(2),
		schemalens.MapEndToken(),
	}

	s, err := schemalens.InferFromTokens(genericvalue.NewSource(toks))
	require.NoError(t, err)

	require.Equal(t, schemalens.KindStruct, s.Kind)

	f, ok := s.Struct.Fields.Get("a")
	require.True(t, ok)
	assert.True(t, f.Status.MayBeDuplicate)
}

// Seeded struct expansion: a field absent from a later map gets
// may_be_missing set, and a field introduced for the first time during
// seed also gets may_be_missing set (§4.3.2).
func TestSeededStructExpansionMissingFlags(t *testing.T) {
	t.Parallel()

	s, err := schemalens.InferFromTokens(tokens(t, map[string]any{"a": int64(1), "b": int64(2)}))
	require.NoError(t, err)

	require.NoError(t, schemalens.Extend(s, tokens(t, map[string]any{"a": int64(3), "c": int64(4)})))

	a, ok := s.Struct.Fields.Get("a")
	require.True(t, ok)
	assert.False(t, a.Status.MayBeMissing)

	b, ok := s.Struct.Fields.Get("b")
	require.True(t, ok)
	assert.True(t, b.Status.MayBeMissing, "b was absent from the second document")

	c, ok := s.Struct.Fields.Get("c")
	require.True(t, ok)
	assert.True(t, c.Status.MayBeMissing, "c was newly introduced during seed expansion")
}

// Enum/newtype-shaped events are never expected: an optional at the
// schema root is UnsupportedKind.
func TestOptionalAtRootIsUnsupported(t *testing.T) {
	t.Parallel()

	toks := []schemalens.Token{schemalens.SomeToken(), schemalens.Int64Token(1)}

	_, err := schemalens.InferFromTokens(genericvalue.NewSource(toks))
	require.Error(t, err)
	assert.ErrorIs(t, err, schemalens.ErrUnsupportedKind)
}

func kindsOf(schemas []*schemalens.Schema) []schemalens.SchemaKind {
	out := make([]schemalens.SchemaKind, len(schemas))
	for i, s := range schemas {
		out[i] = s.Kind
	}

	return out
}
