// Package genericvalue is the shared "decode to any, then walk" adapter
// core used by the TOML and CBOR format adapters. Neither library exposes
// a true pull-based streaming decoder (go-toml's own unstable package says
// as much), so each adapter unmarshals a whole document into a generic Go
// value tree first and walks that tree with [Tokens] to produce the same
// []schemalens.Token sequence a true streaming adapter would have pushed.
// The BSON, YAML, and XML adapters build their tokens themselves and use
// only [Source] to replay them.
package genericvalue

import (
	"fmt"

	"github.com/inferlab/schemalens"
)

// Special lets a caller intercept a value before the generic conversion
// runs, to turn a format-specific type (a BSON ObjectID, a CBOR tagged
// value) into a Token. It returns ok=false to fall through to generic
// handling.
type Special func(v any) (schemalens.Token, bool, error)

// Tokens walks v (built from map[string]any/[]any/scalars, as produced by
// unmarshaling into an empty interface) and returns the token sequence
// InferFromTokens/Extend expect, a single root value's worth of tokens.
func Tokens(v any, special Special) ([]schemalens.Token, error) {
	var toks []schemalens.Token
	if err := walk(&toks, v, special); err != nil {
		return nil, err
	}

	return toks, nil
}

func walk(dst *[]schemalens.Token, v any, special Special) error {
	if special != nil {
		tok, ok, err := special(v)
		if err != nil {
			return err
		}

		if ok {
			*dst = append(*dst, tok)

			return nil
		}
	}

	switch val := v.(type) {
	case nil:
		*dst = append(*dst, schemalens.NoneToken())
	case bool:
		*dst = append(*dst, schemalens.BoolToken(val))
	case string:
		*dst = append(*dst, schemalens.StringToken(val))
	case []byte:
		*dst = append(*dst, schemalens.BytesToken(val))
	case int:
		*dst = append(*dst, schemalens.Int64Token(int64(val)))
	case int8:
		*dst = append(*dst, schemalens.Int64Token(int64(val)))
	case int16:
		*dst = append(*dst, schemalens.Int64Token(int64(val)))
	case int32:
		*dst = append(*dst, schemalens.Int64Token(int64(val)))
	case int64:
		*dst = append(*dst, schemalens.Int64Token(val))
	case uint:
		*dst = append(*dst, schemalens.Uint64Token(uint64(val)))
	case uint8:
		*dst = append(*dst, schemalens.Uint64Token(uint64(val)))
	case uint16:
		*dst = append(*dst, schemalens.Uint64Token(uint64(val)))
	case uint32:
		*dst = append(*dst, schemalens.Uint64Token(uint64(val)))
	case uint64:
		*dst = append(*dst, schemalens.Uint64Token(val))
	case float32:
		*dst = append(*dst, schemalens.Float32Token(val))
	case float64:
		*dst = append(*dst, schemalens.FloatToken(val))
	case []any:
		*dst = append(*dst, schemalens.SeqStartToken())

		for _, elem := range val {
			if err := walk(dst, elem, special); err != nil {
				return err
			}
		}

		*dst = append(*dst, schemalens.SeqEndToken())
	case map[string]any:
		*dst = append(*dst, schemalens.MapStartToken())

		for k, mv := range val {
			*dst = append(*dst, schemalens.MapKeyToken(k))

			if err := walk(dst, mv, special); err != nil {
				return err
			}
		}

		*dst = append(*dst, schemalens.MapEndToken())
	case map[any]any:
		*dst = append(*dst, schemalens.MapStartToken())

		for k, mv := range val {
			key, ok := k.(string)
			if !ok {
				return fmt.Errorf("%w: non-string map key %v (%T)", schemalens.ErrUnsupportedKind, k, k)
			}

			*dst = append(*dst, schemalens.MapKeyToken(key))

			if err := walk(dst, mv, special); err != nil {
				return err
			}
		}

		*dst = append(*dst, schemalens.MapEndToken())
	default:
		return fmt.Errorf("%w: unhandled decoded value type %T", schemalens.ErrUnsupportedKind, v)
	}

	return nil
}

// Source replays a pre-built token slice as a [schemalens.TokenSource].
type Source struct {
	toks []schemalens.Token
	pos  int
}

// NewSource wraps toks for replay.
func NewSource(toks []schemalens.Token) *Source {
	return &Source{toks: toks}
}

// Next implements [schemalens.TokenSource].
func (s *Source) Next() (schemalens.Token, error) {
	if s.pos >= len(s.toks) {
		return schemalens.Token{}, fmt.Errorf("%w: token stream exhausted", schemalens.ErrFormatError)
	}

	tok := s.toks[s.pos]
	s.pos++

	return tok, nil
}
