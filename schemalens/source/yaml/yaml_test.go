package yaml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inferlab/schemalens"
	yamlsrc "github.com/inferlab/schemalens/source/yaml"
)

func mustInfer(t *testing.T, doc string) *schemalens.Schema {
	t.Helper()

	src, err := yamlsrc.NewSource([]byte(doc))
	require.NoError(t, err)

	s, err := schemalens.InferFromTokens(src)
	require.NoError(t, err)

	return s
}

func TestYAMLSourceEmptyDocumentIsNull(t *testing.T) {
	t.Parallel()

	s := mustInfer(t, "")

	assert.Equal(t, schemalens.KindNull, s.Kind)
}

func TestYAMLSourceBlankDocumentIsNull(t *testing.T) {
	t.Parallel()

	s := mustInfer(t, "   \n\t\n")

	assert.Equal(t, schemalens.KindNull, s.Kind)
}

func TestYAMLSourceScalarKinds(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		doc  string
		kind schemalens.SchemaKind
	}{
		"integer": {"42", schemalens.KindInteger},
		"float":   {"4.2", schemalens.KindFloat},
		"bool":    {"true", schemalens.KindBoolean},
		"string":  {"hello", schemalens.KindString},
		"null":    {"null", schemalens.KindNull},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.kind, mustInfer(t, tc.doc).Kind)
		})
	}
}

func TestYAMLSourceMapping(t *testing.T) {
	t.Parallel()

	s := mustInfer(t, "a: 1\nb: two\n")

	require.Equal(t, schemalens.KindStruct, s.Kind)

	a, ok := s.Struct.Fields.Get("a")
	require.True(t, ok)
	assert.Equal(t, schemalens.KindInteger, a.Schema.Kind)
}

func TestYAMLSourceSequence(t *testing.T) {
	t.Parallel()

	s := mustInfer(t, "- 1\n- 2\n- 3\n")

	require.Equal(t, schemalens.KindSequence, s.Kind)
}

func TestYAMLSourceResolvesAnchorsAndAliases(t *testing.T) {
	t.Parallel()

	s := mustInfer(t, "base: &b\n  x: 1\nref: *b\n")

	require.Equal(t, schemalens.KindStruct, s.Kind)

	ref, ok := s.Struct.Fields.Get("ref")
	require.True(t, ok)
	require.Equal(t, schemalens.KindStruct, ref.Schema.Kind)

	x, ok := ref.Schema.Struct.Fields.Get("x")
	require.True(t, ok)
	assert.Equal(t, schemalens.KindInteger, x.Schema.Kind)
}

func TestYAMLSourceMergeKeySplicesFields(t *testing.T) {
	t.Parallel()

	s := mustInfer(t, "base: &b\n  x: 1\n  y: 2\nderived:\n  <<: *b\n  y: 3\n  z: 4\n")

	derived, ok := s.Struct.Fields.Get("derived")
	require.True(t, ok)
	require.Equal(t, schemalens.KindStruct, derived.Schema.Kind)

	for _, key := range []string{"x", "y", "z"} {
		_, ok := derived.Schema.Struct.Fields.Get(key)
		assert.True(t, ok, "expected merged key %q", key)
	}
}

func TestYAMLSourceUnresolvableAliasIsNull(t *testing.T) {
	t.Parallel()

	s := mustInfer(t, "ref: *missing\n")

	ref, ok := s.Struct.Fields.Get("ref")
	require.True(t, ok)
	assert.True(t, ref.Status.MayBeNull)
}
