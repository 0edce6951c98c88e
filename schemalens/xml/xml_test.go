package xml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inferlab/schemalens"
	xmlpost "github.com/inferlab/schemalens/xml"
)

func TestCleanupCollapsesValueOnlyStruct(t *testing.T) {
	t.Parallel()

	fields := schemalens.NewOrderedFields()
	fields.Set("$value", schemalens.WithSchema(schemalens.NewStringSchema(&schemalens.StringContext{})))

	s := schemalens.NewStructSchema(fields, &schemalens.MapStructContext{})

	xmlpost.Cleanup(s)

	assert.Equal(t, schemalens.KindString, s.Kind)
}

func TestCleanupValueOnlyStructWithNoSchemaBecomesNull(t *testing.T) {
	t.Parallel()

	fields := schemalens.NewOrderedFields()
	fields.Set("$value", schemalens.NewField())

	s := schemalens.NewStructSchema(fields, &schemalens.MapStructContext{})

	xmlpost.Cleanup(s)

	assert.Equal(t, schemalens.KindNull, s.Kind)
}

func TestCleanupLeavesMultiFieldStructAlone(t *testing.T) {
	t.Parallel()

	fields := schemalens.NewOrderedFields()
	fields.Set("$value", schemalens.WithSchema(schemalens.NewStringSchema(&schemalens.StringContext{})))
	fields.Set("id", schemalens.WithSchema(schemalens.NewIntegerSchema(&schemalens.IntegerContext{})))

	s := schemalens.NewStructSchema(fields, &schemalens.MapStructContext{})

	xmlpost.Cleanup(s)

	require.Equal(t, schemalens.KindStruct, s.Kind)
	assert.Equal(t, 2, s.Struct.Fields.Len())
}

func TestCleanupPromotesDuplicateFieldToSequence(t *testing.T) {
	t.Parallel()

	fields := schemalens.NewOrderedFields()
	item := schemalens.WithSchema(schemalens.NewIntegerSchema(&schemalens.IntegerContext{}))
	item.Status.MayBeDuplicate = true
	item.Status.MayBeNormal = true
	fields.Set("item", item)

	s := schemalens.NewStructSchema(fields, &schemalens.MapStructContext{})

	xmlpost.Cleanup(s)

	itemField, ok := s.Struct.Fields.Get("item")
	require.True(t, ok)
	require.Equal(t, schemalens.KindSequence, itemField.Schema.Kind)
	assert.False(t, itemField.Status.MayBeDuplicate)

	elem := itemField.Schema.Sequence.Element
	assert.Equal(t, schemalens.KindInteger, elem.Schema.Kind)
	assert.False(t, elem.Status.MayBeDuplicate)
	assert.True(t, elem.Status.MayBeNormal)
}

func TestCleanupDropsEmptyStructField(t *testing.T) {
	t.Parallel()

	fields := schemalens.NewOrderedFields()
	empty := schemalens.WithSchema(schemalens.NewStructSchema(schemalens.NewOrderedFields(), &schemalens.MapStructContext{}))
	fields.Set("empty", empty)

	s := schemalens.NewStructSchema(fields, &schemalens.MapStructContext{})

	xmlpost.Cleanup(s)

	emptyField, ok := s.Struct.Fields.Get("empty")
	require.True(t, ok)
	assert.Nil(t, emptyField.Schema)
}

func TestCleanupDropsEmptyStructInPromotedDuplicateElement(t *testing.T) {
	t.Parallel()

	fields := schemalens.NewOrderedFields()
	item := schemalens.WithSchema(
		schemalens.NewStructSchema(schemalens.NewOrderedFields(), &schemalens.MapStructContext{}),
	)
	item.Status.MayBeDuplicate = true
	item.Status.MayBeNormal = true
	fields.Set("x", item)

	s := schemalens.NewStructSchema(fields, &schemalens.MapStructContext{})

	xmlpost.Cleanup(s)

	xField, ok := s.Struct.Fields.Get("x")
	require.True(t, ok)
	require.Equal(t, schemalens.KindSequence, xField.Schema.Kind)

	elem := xField.Schema.Sequence.Element
	assert.Nil(t, elem.Schema)
}

func TestCleanupRecursesIntoSequenceAndUnion(t *testing.T) {
	t.Parallel()

	innerFields := schemalens.NewOrderedFields()
	innerFields.Set("$value", schemalens.WithSchema(schemalens.NewStringSchema(&schemalens.StringContext{})))
	inner := schemalens.NewStructSchema(innerFields, &schemalens.MapStructContext{})

	seq := schemalens.NewSequenceSchema(schemalens.WithSchema(inner), &schemalens.SequenceContext{})

	xmlpost.Cleanup(seq)

	assert.Equal(t, schemalens.KindString, seq.Sequence.Element.Schema.Kind)
}
