// Package cbor adapts fxamacker/cbor/v2 into a schemalens.TokenSource. Like
// the TOML adapter, this decodes to a generic Go value tree and
// walks it through the shared genericvalue core, since cbor.Decoder's own
// token-level API does not expose typed values the way encoding/json's
// does.
package cbor

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/inferlab/schemalens"
	"github.com/inferlab/schemalens/source/genericvalue"
)

// Tokens decodes input as a single CBOR document and returns the token
// sequence for its root value.
func Tokens(input []byte) ([]schemalens.Token, error) {
	var doc any
	if err := cbor.Unmarshal(input, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", schemalens.ErrFormatError, err)
	}

	return genericvalue.Tokens(doc, nil)
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
