package bson_test

import (
	"testing"

	mongobson "go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inferlab/schemalens"
	bsonsrc "github.com/inferlab/schemalens/source/bson"
)

func mustInfer(t *testing.T, doc any) *schemalens.Schema {
	t.Helper()

	data, err := mongobson.Marshal(doc)
	require.NoError(t, err)

	src, err := bsonsrc.NewSource(data)
	require.NoError(t, err)

	s, err := schemalens.InferFromTokens(src)
	require.NoError(t, err)

	return s
}

func TestBSONSourcePreservesFieldOrder(t *testing.T) {
	t.Parallel()

	s := mustInfer(t, mongobson.D{
		{Key: "z", Value: int32(1)},
		{Key: "a", Value: "x"},
	})

	require.Equal(t, schemalens.KindStruct, s.Kind)
	assert.Equal(t, []string{"z", "a"}, s.Struct.Fields.Keys())
}

func TestBSONSourceArray(t *testing.T) {
	t.Parallel()

	s := mustInfer(t, mongobson.D{
		{Key: "items", Value: mongobson.A{int32(1), int32(2)}},
	})

	items, ok := s.Struct.Fields.Get("items")
	require.True(t, ok)
	assert.Equal(t, schemalens.KindSequence, items.Schema.Kind)
}

func TestBSONSourceObjectIDWidensToString(t *testing.T) {
	t.Parallel()

	s := mustInfer(t, mongobson.D{
		{Key: "id", Value: primitive.NewObjectID()},
	})

	id, ok := s.Struct.Fields.Get("id")
	require.True(t, ok)
	assert.Equal(t, schemalens.KindString, id.Schema.Kind)
}

func TestBSONSourceBinaryWidensToBytes(t *testing.T) {
	t.Parallel()

	s := mustInfer(t, mongobson.D{
		{Key: "blob", Value: primitive.Binary{Data: []byte("hi")}},
	})

	blob, ok := s.Struct.Fields.Get("blob")
	require.True(t, ok)
	assert.Equal(t, schemalens.KindBytes, blob.Schema.Kind)
}

func TestBSONSourceNull(t *testing.T) {
	t.Parallel()

	s := mustInfer(t, mongobson.D{
		{Key: "maybe", Value: nil},
	})

	maybe, ok := s.Struct.Fields.Get("maybe")
	require.True(t, ok)
	assert.True(t, maybe.Status.MayBeNull)
}
