package schemalens_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inferlab/schemalens"
	"github.com/inferlab/schemalens/stringtest"
)

func roundTrip(t *testing.T, s *schemalens.Schema) *schemalens.Schema {
	t.Helper()

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var out schemalens.Schema
	require.NoError(t, json.Unmarshal(data, &out))

	return &out
}

func TestSchemaJSONRoundTripPreservesShape(t *testing.T) {
	t.Parallel()

	s := infer(t, map[string]any{
		"id":   int64(1),
		"name": "hi",
		"tags": []any{"a", "b"},
	})

	out := roundTrip(t, s)

	assert.True(t, s.StructuralEq(out))
}

func TestSchemaJSONRoundTripPreservesFieldOrder(t *testing.T) {
	t.Parallel()

	s := infer(t, map[string]any{"z": int64(1), "a": "x", "m": true})

	out := roundTrip(t, s)

	require.Equal(t, schemalens.KindStruct, out.Kind)
	assert.Equal(t, s.Struct.Fields.Keys(), out.Struct.Fields.Keys())
}

func TestSchemaJSONRoundTripHasTypeDiscriminator(t *testing.T) {
	t.Parallel()

	s := schemalens.NewIntegerSchema(&schemalens.IntegerContext{})

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	assert.Equal(t, "Integer", raw["type"])
}

func TestSchemaJSONRoundTripUnion(t *testing.T) {
	t.Parallel()

	s, err := schemalens.InferFromTokens(tokens(t, int64(1)))
	require.NoError(t, err)
	require.NoError(t, schemalens.Extend(s, tokens(t, "x")))

	out := roundTrip(t, s)

	assert.True(t, s.StructuralEq(out))
}

func TestFieldJSONRoundTripWithNoSchema(t *testing.T) {
	t.Parallel()

	f := schemalens.NewField()
	f.Status.MayBeMissing = true

	data, err := json.Marshal(f)
	require.NoError(t, err)

	var out schemalens.Field
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Nil(t, out.Schema)
	assert.True(t, out.Status.MayBeMissing)
}

func TestFieldJSONRoundTripWithSchema(t *testing.T) {
	t.Parallel()

	f := schemalens.WithSchema(schemalens.NewBooleanSchema(&schemalens.BooleanContext{}))
	f.Status.MayBeNormal = true

	data, err := json.Marshal(f)
	require.NoError(t, err)

	var out schemalens.Field
	require.NoError(t, json.Unmarshal(data, &out))

	require.NotNil(t, out.Schema)
	assert.Equal(t, schemalens.KindBoolean, out.Schema.Kind)
	assert.True(t, out.Status.MayBeNormal)
}

func TestFieldStatusJSONMarshalIndentMatchesExpectedLines(t *testing.T) {
	t.Parallel()

	status := schemalens.FieldStatus{MayBeNull: true, MayBeNormal: true}

	data, err := json.MarshalIndent(status, "", "  ")
	require.NoError(t, err)

	want := stringtest.JoinLF(
		"{",
		`  "may_be_null": true,`,
		`  "may_be_normal": true,`,
		`  "may_be_missing": false,`,
		`  "may_be_duplicate": false`,
		"}",
	)

	assert.Equal(t, want, string(data))
}

func TestSchemaUnmarshalUnknownDiscriminatorErrors(t *testing.T) {
	t.Parallel()

	var s schemalens.Schema
	err := json.Unmarshal([]byte(`{"type":"Nonsense"}`), &s)

	assert.Error(t, err)
}
