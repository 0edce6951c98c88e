// Package bson adapts go.mongodb.org/mongo-driver/bson into a
// schemalens.TokenSource. Grounded on the teacher's sibling example's own
// MongoDB schema inference path, which also decodes a whole document
// before inferring from it; unlike that example's map[string]interface{}
// sampling target, this package decodes into bson.D/bson.A so that
// struct field order survives the walk, since BSON documents (unlike a
// Go map) are themselves ordered.
package bson

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inferlab/schemalens"
	"github.com/inferlab/schemalens/source/genericvalue"
)

// Tokens decodes input as a single BSON document and returns the token
// sequence for its root value. BSON documents are always objects, so the
// root value is always a struct.
func Tokens(input []byte) ([]schemalens.Token, error) {
	var doc bson.D
	if err := bson.Unmarshal(input, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", schemalens.ErrFormatError, err)
	}

	var toks []schemalens.Token
	if err := walk(&toks, doc); err != nil {
		return nil, err
	}

	return toks, nil
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

func walk(dst *[]schemalens.Token, v any) error {
	switch val := v.(type) {
	case bson.D:
		*dst = append(*dst, schemalens.MapStartToken())

		for _, elem := range val {
			*dst = append(*dst, schemalens.MapKeyToken(elem.Key))

			if err := walk(dst, elem.Value); err != nil {
				return err
			}
		}

		*dst = append(*dst, schemalens.MapEndToken())

		return nil
	case bson.A:
		*dst = append(*dst, schemalens.SeqStartToken())

		for _, elem := range val {
			if err := walk(dst, elem); err != nil {
				return err
			}
		}

		*dst = append(*dst, schemalens.SeqEndToken())

		return nil
	case primitive.ObjectID:
		*dst = append(*dst, schemalens.StringToken(val.Hex()))

		return nil
	case primitive.DateTime:
		*dst = append(*dst, schemalens.StringToken(val.Time().Format(timeLayout)))

		return nil
	case primitive.Decimal128:
		*dst = append(*dst, schemalens.StringToken(val.String()))

		return nil
	case primitive.Binary:
		*dst = append(*dst, schemalens.BytesToken(val.Data))

		return nil
	case primitive.Null:
		*dst = append(*dst, schemalens.NoneToken())

		return nil
	default:
		return walkScalar(dst, v)
	}
}

// timeLayout matches encoding/json's RFC3339Nano rendering of time.Time,
// so a BSON date and a JSON date string infer to the same schema shape.
const timeLayout = "2006-01-02T15:04:05.999999999Z07:00"

func walkScalar(dst *[]schemalens.Token, v any) error {
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
	case int32:
		*dst = append(*dst, schemalens.Int64Token(int64(val)))
	case int64:
		*dst = append(*dst, schemalens.Int64Token(val))
	case float32:
		*dst = append(*dst, schemalens.Float32Token(val))
	case float64:
		*dst = append(*dst, schemalens.FloatToken(val))
	default:
		return fmt.Errorf("%w: unhandled BSON value type %T", schemalens.ErrUnsupportedKind, v)
	}

	return nil
}
