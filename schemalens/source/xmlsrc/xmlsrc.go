// Package xmlsrc adapts encoding/xml into a schemalens.TokenSource. No
// example repo in the retrieval pack parses XML, and the ecosystem has no
// direct analogue of the Rust streaming XML reader this shape is modeled
// on, so this builds the same shape by hand on top of encoding/xml's own
// token stream: every element becomes a struct, attributes and child
// elements become its fields, and any of the element's own text becomes a
// "$value" field. schemalens/xml.Cleanup then collapses the $value-only
// wrapping this produces for leaf text elements and promotes repeated
// child tags to sequences.
package xmlsrc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/inferlab/schemalens"
	"github.com/inferlab/schemalens/source/genericvalue"
)

const valueKey = "$value"

// Tokens parses input as a single XML document and returns the token
// sequence for its root element, always a struct.
func Tokens(input []byte) ([]schemalens.Token, error) {
	return TokensFromReader(bytes.NewReader(input))
}

// TokensFromReader parses XML read from r.
func TokensFromReader(r io.Reader) ([]schemalens.Token, error) {
	dec := xml.NewDecoder(r)

	start, err := nextStartElement(dec)
	if err != nil {
		return nil, err
	}

	var toks []schemalens.Token
	if err := walkElement(&toks, dec, start); err != nil {
		return nil, err
	}

	return toks, nil
}

// NewSource parses input and returns a replayable [schemalens.TokenSource]
// over its root element.
func NewSource(input []byte) (*genericvalue.Source, error) {
	toks, err := Tokens(input)
	if err != nil {
		return nil, err
	}

	return genericvalue.NewSource(toks), nil
}

// nextStartElement skips the prolog (directives, processing instructions,
// comments) and returns the document's root start tag.
func nextStartElement(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return xml.StartElement{}, fmt.Errorf("%w: empty XML document", schemalens.ErrFormatError)
			}

			return xml.StartElement{}, fmt.Errorf("%w: %w", schemalens.ErrFormatError, err)
		}

		if start, ok := tok.(xml.StartElement); ok {
			return start, nil
		}
	}
}

// walkElement appends the struct token sequence for start, consuming
// tokens from dec up to and including its matching end tag.
func walkElement(dst *[]schemalens.Token, dec *xml.Decoder, start xml.StartElement) error {
	*dst = append(*dst, schemalens.MapStartToken())

	for _, attr := range start.Attr {
		*dst = append(*dst, schemalens.MapKeyToken(attr.Name.Local))
		*dst = append(*dst, schemalens.StringToken(attr.Value))
	}

	var text strings.Builder

	for {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %w", schemalens.ErrFormatError, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			*dst = append(*dst, schemalens.MapKeyToken(t.Name.Local))

			if err := walkElement(dst, dec, t); err != nil {
				return err
			}
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			if trimmed := strings.TrimSpace(text.String()); trimmed != "" {
				*dst = append(*dst, schemalens.MapKeyToken(valueKey))
				*dst = append(*dst, schemalens.StringToken(trimmed))
			}

			*dst = append(*dst, schemalens.MapEndToken())

			return nil
		}
	}
}
