// Package json adapts encoding/json's token-streaming Decoder into a
// schemalens.TokenSource. No example repo in the retrieval pack parses
// JSON directly, so there is no third-party library to ground this
// adapter on; encoding/json's Decoder.Token is the idiomatic Go choice
// and the only true pull-based token stream available for this format.
package json

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/inferlab/schemalens"
)

// frame tracks one open container on the decoder's implicit stack.
// encoding/json's Token stream interleaves object keys and values without
// saying which is which; awaitKey disambiguates for object frames.
type frame struct {
	object   bool
	awaitKey bool
}

// Source adapts a *json.Decoder into a schemalens.TokenSource.
type Source struct {
	dec   *json.Decoder
	stack []frame
}

// New returns a Source reading JSON from r.
func New(r io.Reader) *Source {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	return &Source{dec: dec}
}

// NewFromBytes returns a Source reading JSON from data.
func NewFromBytes(data []byte) *Source {
	return New(bytes.NewReader(data))
}

func (s *Source) top() *frame {
	if len(s.stack) == 0 {
		return nil
	}

	return &s.stack[len(s.stack)-1]
}

// markValueConsumed flips the enclosing object frame (if any) back to
// awaiting its next key, now that one value has been fully produced.
func (s *Source) markValueConsumed() {
	if f := s.top(); f != nil && f.object {
		f.awaitKey = true
	}
}

// Next implements [schemalens.TokenSource].
func (s *Source) Next() (schemalens.Token, error) {
	if f := s.top(); f != nil && f.object && f.awaitKey {
		return s.nextKeyOrEnd(f)
	}

	tok, err := s.dec.Token()
	if err != nil {
		return schemalens.Token{}, fmt.Errorf("%w: %w", schemalens.ErrFormatError, err)
	}

	if d, ok := tok.(json.Delim); ok {
		return s.handleDelim(d)
	}

	out, err := scalarToken(tok)
	if err != nil {
		return schemalens.Token{}, err
	}

	s.markValueConsumed()

	return out, nil
}

func (s *Source) nextKeyOrEnd(f *frame) (schemalens.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		return schemalens.Token{}, fmt.Errorf("%w: %w", schemalens.ErrFormatError, err)
	}

	if d, ok := tok.(json.Delim); ok && d == '}' {
		s.stack = s.stack[:len(s.stack)-1]
		s.markValueConsumed()

		return schemalens.MapEndToken(), nil
	}

	key, ok := tok.(string)
	if !ok {
		return schemalens.Token{}, fmt.Errorf("%w: non-string JSON object key", schemalens.ErrUnsupportedKind)
	}

	f.awaitKey = false

	return schemalens.MapKeyToken(key), nil
}

func (s *Source) handleDelim(d json.Delim) (schemalens.Token, error) {
	switch d {
	case '[':
		s.stack = append(s.stack, frame{})

		return schemalens.SeqStartToken(), nil
	case ']':
		s.stack = s.stack[:len(s.stack)-1]
		s.markValueConsumed()

		return schemalens.SeqEndToken(), nil
	case '{':
		s.stack = append(s.stack, frame{object: true, awaitKey: true})

		return schemalens.MapStartToken(), nil
	default:
		return schemalens.Token{}, fmt.Errorf("%w: unexpected JSON delimiter %q", schemalens.ErrFormatError, d)
	}
}

func scalarToken(tok json.Token) (schemalens.Token, error) {
	switch v := tok.(type) {
	case bool:
		return schemalens.BoolToken(v), nil
	case string:
		return schemalens.StringToken(v), nil
	case nil:
		return schemalens.NoneToken(), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return schemalens.Int64Token(i), nil
		}

		f, err := v.Float64()
		if err != nil {
			return schemalens.Token{}, fmt.Errorf("%w: invalid JSON number %q", schemalens.ErrFormatError, v)
		}

		return schemalens.FloatToken(f), nil
	default:
		return schemalens.Token{}, fmt.Errorf("%w: unexpected JSON token %v (%T)", schemalens.ErrFormatError, tok, tok)
	}
}
