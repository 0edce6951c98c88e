// Package toml adapts pelletier/go-toml/v2 into a schemalens.TokenSource.
// go-toml has no streaming decode API (its own unstable/unmarshaler docs
// point users at whole-document unmarshal), so this decodes to a generic
// Go value tree and walks it through the shared genericvalue core, the
// same shape the CBOR adapter uses.
package toml

import (
	"fmt"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/inferlab/schemalens"
	"github.com/inferlab/schemalens/source/genericvalue"
)

// Tokens decodes input as a single TOML document and returns the token
// sequence for its root value. TOML documents are always tables, so the
// root value is always a struct.
func Tokens(input []byte) ([]schemalens.Token, error) {
	var doc map[string]any
	if err := toml.Unmarshal(input, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", schemalens.ErrFormatError, err)
	}

	return genericvalue.Tokens(doc, special)
}

// NewSource decodes input and returns a replayable [schemalens.TokenSource]
// over its root value.
func NewSource(input []byte) (*genericvalue.Source, error) {
	toks, err := Tokens(input)
	if err != nil {
		return nil, err
	}

	return genericvalue.NewSource(toks), nil
}

// special widens go-toml's one non-generic leaf type, time.Time (TOML's
// native datetime literal), to a string token rather than letting the
// generic walker reject it as an unhandled type.
func special(v any) (schemalens.Token, bool, error) {
	t, ok := v.(time.Time)
	if !ok {
		return schemalens.Token{}, false, nil
	}

	return schemalens.StringToken(t.Format(time.RFC3339Nano)), true, nil
}
