package genericvalue_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inferlab/schemalens"
	"github.com/inferlab/schemalens/source/genericvalue"
)

func TestTokensWidensIntVariants(t *testing.T) {
	t.Parallel()

	for _, v := range []any{int(1), int8(1), int16(1), int32(1), int64(1)} {
		toks, err := genericvalue.Tokens(v, nil)
		require.NoError(t, err)
		require.Len(t, toks, 1)
		assert.Equal(t, schemalens.TokenInteger, toks[0].Kind)
	}
}

func TestTokensWidensUintVariants(t *testing.T) {
	t.Parallel()

	toks, err := genericvalue.Tokens(uint32(7), nil)
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, schemalens.TokenInteger, toks[0].Kind)
}

func TestTokensSequenceAndMap(t *testing.T) {
	t.Parallel()

	toks, err := genericvalue.Tokens(map[string]any{"a": []any{int64(1), "x"}}, nil)
	require.NoError(t, err)

	src := genericvalue.NewSource(toks)
	schema, err := schemalens.InferFromTokens(src)
	require.NoError(t, err)

	require.Equal(t, schemalens.KindStruct, schema.Kind)

	a, ok := schema.Struct.Fields.Get("a")
	require.True(t, ok)
	require.Equal(t, schemalens.KindSequence, a.Schema.Kind)
}

func TestTokensMapAnyAnyRejectsNonStringKey(t *testing.T) {
	t.Parallel()

	_, err := genericvalue.Tokens(map[any]any{1: "x"}, nil)

	assert.ErrorIs(t, err, schemalens.ErrUnsupportedKind)
}

func TestTokensMapAnyAnyAcceptsStringKey(t *testing.T) {
	t.Parallel()

	toks, err := genericvalue.Tokens(map[any]any{"a": int64(1)}, nil)

	require.NoError(t, err)
	assert.Equal(t, schemalens.TokenMapKey, toks[1].Kind)
}

func TestTokensSpecialInterceptsValue(t *testing.T) {
	t.Parallel()

	type marker struct{}

	special := func(v any) (schemalens.Token, bool, error) {
		if _, ok := v.(marker); ok {
			return schemalens.StringToken("special"), true, nil
		}

		return schemalens.Token{}, false, nil
	}

	toks, err := genericvalue.Tokens(marker{}, special)
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, schemalens.TokenString, toks[0].Kind)
}

func TestTokensUnhandledTypeErrors(t *testing.T) {
	t.Parallel()

	_, err := genericvalue.Tokens(struct{ X int }{X: 1}, nil)

	assert.ErrorIs(t, err, schemalens.ErrUnsupportedKind)
}

func TestSourceExhaustedErrors(t *testing.T) {
	t.Parallel()

	src := genericvalue.NewSource([]schemalens.Token{schemalens.NoneToken()})

	_, err := src.Next()
	require.NoError(t, err)

	_, err = src.Next()
	assert.ErrorIs(t, err, schemalens.ErrFormatError)
}
