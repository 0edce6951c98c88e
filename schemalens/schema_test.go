package schemalens_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inferlab/schemalens"
)

func TestFieldStatusIsOption(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		status schemalens.FieldStatus
		want   bool
	}{
		"normal only":  {schemalens.FieldStatus{MayBeNormal: true}, false},
		"null":         {schemalens.FieldStatus{MayBeNull: true}, true},
		"missing":      {schemalens.FieldStatus{MayBeMissing: true}, true},
		"null+missing": {schemalens.FieldStatus{MayBeNull: true, MayBeMissing: true}, true},
		"zero value":   {schemalens.FieldStatus{}, false},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.status.IsOption())
		})
	}
}

func TestFieldStatusMerge(t *testing.T) {
	t.Parallel()

	a := schemalens.FieldStatus{MayBeNull: true}
	a.Merge(schemalens.FieldStatus{MayBeNormal: true, MayBeDuplicate: true})

	assert.Equal(t, schemalens.FieldStatus{
		MayBeNull: true, MayBeNormal: true, MayBeDuplicate: true,
	}, a)
}

func TestWithSchema(t *testing.T) {
	t.Parallel()

	s := schemalens.NewNullSchema(&schemalens.NullContext{})
	f := schemalens.WithSchema(s)

	assert.Same(t, s, f.Schema)
	assert.Equal(t, schemalens.FieldStatus{}, f.Status)
}

func TestSortFieldsIdempotent(t *testing.T) {
	t.Parallel()

	fields := schemalens.NewOrderedFields()
	fields.Set("z", schemalens.WithSchema(schemalens.NewBooleanSchema(&schemalens.BooleanContext{})))
	fields.Set("a", schemalens.WithSchema(schemalens.NewIntegerSchema(&schemalens.IntegerContext{})))

	s := schemalens.NewStructSchema(fields, &schemalens.MapStructContext{})

	s.SortFields()
	first := append([]string(nil), s.Struct.Fields.Keys()...)

	s.SortFields()
	second := append([]string(nil), s.Struct.Fields.Keys()...)

	assert.Equal(t, []string{"a", "z"}, first)
	assert.Equal(t, first, second)
}

func TestSortVariantsIdempotentAndLeavesFieldsAlone(t *testing.T) {
	t.Parallel()

	union := schemalens.NewUnionSchema([]*schemalens.Schema{
		schemalens.NewStringSchema(&schemalens.StringContext{}),
		schemalens.NewIntegerSchema(&schemalens.IntegerContext{}),
	})

	fields := schemalens.NewOrderedFields()
	fields.Set("z", schemalens.WithSchema(union))
	fields.Set("a", schemalens.WithSchema(schemalens.NewBooleanSchema(&schemalens.BooleanContext{})))

	s := schemalens.NewStructSchema(fields, &schemalens.MapStructContext{})
	s.SortVariants()

	// Field order untouched by SortVariants.
	assert.Equal(t, []string{"z", "a"}, s.Struct.Fields.Keys())

	zField, ok := s.Struct.Fields.Get("z")
	require.True(t, ok)
	assert.Equal(t, schemalens.KindInteger, zField.Schema.Union[0].Kind)
	assert.Equal(t, schemalens.KindString, zField.Schema.Union[1].Kind)

	before := append([]schemalens.SchemaKind(nil), kindsOf(zField.Schema.Union)...)
	s.SortVariants()
	after := kindsOf(zField.Schema.Union)
	assert.Equal(t, before, after)
}

func TestStructuralEqIgnoresAggregatorContents(t *testing.T) {
	t.Parallel()

	aggA := &schemalens.IntegerContext{}
	aggA.Aggregate(schemalens.NewInt128FromInt64(1))

	aggB := &schemalens.IntegerContext{}
	aggB.Aggregate(schemalens.NewInt128FromInt64(999))
	aggB.Aggregate(schemalens.NewInt128FromInt64(1000))

	a := schemalens.NewIntegerSchema(aggA)
	b := schemalens.NewIntegerSchema(aggB)

	assert.True(t, a.StructuralEq(b))
}

func TestStructuralEqDiffersOnShape(t *testing.T) {
	t.Parallel()

	a := schemalens.NewIntegerSchema(&schemalens.IntegerContext{})
	b := schemalens.NewStringSchema(&schemalens.StringContext{})

	assert.False(t, a.StructuralEq(b))
}

func TestStructuralEqUnionIgnoresOrder(t *testing.T) {
	t.Parallel()

	a := schemalens.NewUnionSchema([]*schemalens.Schema{
		schemalens.NewIntegerSchema(&schemalens.IntegerContext{}),
		schemalens.NewStringSchema(&schemalens.StringContext{}),
	})
	b := schemalens.NewUnionSchema([]*schemalens.Schema{
		schemalens.NewStringSchema(&schemalens.StringContext{}),
		schemalens.NewIntegerSchema(&schemalens.IntegerContext{}),
	})

	assert.True(t, a.StructuralEq(b))
}

func TestFieldStructuralEqComparesStatus(t *testing.T) {
	t.Parallel()

	schema := schemalens.NewBooleanSchema(&schemalens.BooleanContext{})

	a := &schemalens.Field{Schema: schema, Status: schemalens.FieldStatus{MayBeNormal: true}}
	b := &schemalens.Field{Schema: schema, Status: schemalens.FieldStatus{MayBeNormal: true, MayBeNull: true}}

	assert.False(t, a.StructuralEq(b))
}
