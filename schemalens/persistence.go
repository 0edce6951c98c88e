package schemalens

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// This file implements the "Persistence" contract : Schema, Field,
// and FieldStatus round-trip through JSON via a "type" discriminator field
// on Schema, with Field flattening its status flags and schema inline into
// one object. Dynamic user-attached Context aggregators are never part of
// this and are not persisted.

// jsonObjectBuilder assembles a single flat JSON object out of several
// already-JSON-able pieces, preserving the field order each piece
// contributes (struct field order is stable under encoding/json; only map
// iteration is not).
type jsonObjectBuilder struct {
	buf bytes.Buffer
}

func newJSONObjectBuilder() *jsonObjectBuilder {
	b := &jsonObjectBuilder{}
	b.buf.WriteByte('{')

	return b
}

// field marshals value and adds it under key.
func (b *jsonObjectBuilder) field(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if b.buf.Len() > 1 {
		b.buf.WriteByte(',')
	}

	keyData, err := json.Marshal(key)
	if err != nil {
		return err
	}

	b.buf.Write(keyData)
	b.buf.WriteByte(':')
	b.buf.Write(data)

	return nil
}

// mergeObject marshals value, which must encode to a JSON object, and
// splices its top-level key/value pairs into b.
func (b *jsonObjectBuilder) mergeObject(value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	inner := bytes.TrimSpace(data)
	if len(inner) < 2 || inner[0] != '{' || inner[len(inner)-1] != '}' {
		return fmt.Errorf("schemalens: expected JSON object, got %s", data)
	}

	inner = inner[1 : len(inner)-1]
	if len(inner) == 0 {
		return nil
	}

	if b.buf.Len() > 1 {
		b.buf.WriteByte(',')
	}

	b.buf.Write(inner)

	return nil
}

func (b *jsonObjectBuilder) bytes() []byte {
	b.buf.WriteByte('}')

	return b.buf.Bytes()
}

// MarshalJSON renders o as a JSON object whose keys appear in insertion
// order, matching the "Struct.fields preserves first-seen insertion order"
// invariant.
func (o *OrderedFields) MarshalJSON() ([]byte, error) {
	b := newJSONObjectBuilder()

	var rangeErr error

	o.Range(func(key string, f *Field) bool {
		if err := b.field(key, f); err != nil {
			rangeErr = err

			return false
		}

		return true
	})

	if rangeErr != nil {
		return nil, rangeErr
	}

	return b.bytes(), nil
}

// UnmarshalJSON reads a JSON object into o, preserving the key order it was
// written in. encoding/json's map decoding loses order, so this walks the
// object token by token instead.
func (o *OrderedFields) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}

	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("schemalens: expected object for OrderedFields, got %v", tok)
	}

	fresh := NewOrderedFields()

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}

		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("schemalens: expected string object key, got %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}

		f := &Field{}
		if err := json.Unmarshal(raw, f); err != nil {
			return err
		}

		fresh.Set(key, f)
	}

	if _, err := dec.Token(); err != nil { // closing '}'
		return err
	}

	*o = *fresh

	return nil
}

// MarshalJSON renders s as a JSON object carrying the "type" discriminator
// plus the leaf/container payload for s.Kind.
func (s *Schema) MarshalJSON() ([]byte, error) {
	b := newJSONObjectBuilder()
	if err := b.field("type", s.Kind.String()); err != nil {
		return nil, err
	}

	var mergeErr error

	switch s.Kind {
	case KindNull:
		mergeErr = b.mergeObject(s.Null)
	case KindBoolean:
		mergeErr = b.mergeObject(s.Boolean)
	case KindInteger:
		mergeErr = b.mergeObject(s.Integer)
	case KindFloat:
		mergeErr = b.mergeObject(s.Float)
	case KindString:
		mergeErr = b.mergeObject(s.String)
	case KindBytes:
		mergeErr = b.mergeObject(s.Bytes)
	case KindSequence:
		if err := b.field("element", s.Sequence.Element); err != nil {
			return nil, err
		}

		mergeErr = b.mergeObject(s.Sequence.Agg)
	case KindStruct:
		if err := b.field("fields", s.Struct.Fields); err != nil {
			return nil, err
		}

		mergeErr = b.mergeObject(s.Struct.Agg)
	case KindUnion:
		mergeErr = b.field("variants", s.Union)
	default:
		invariantf("schemalens: cannot marshal schema kind %s", s.Kind)
	}

	if mergeErr != nil {
		return nil, mergeErr
	}

	return b.bytes(), nil
}

// UnmarshalJSON reads a JSON object written by [Schema.MarshalJSON] back
// into s.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	kind, err := parseSchemaKind(head.Type)
	if err != nil {
		return err
	}

	s.Kind = kind

	switch kind {
	case KindNull:
		var agg NullContext
		if err := json.Unmarshal(data, &agg); err != nil {
			return err
		}

		s.Null = &agg
	case KindBoolean:
		var agg BooleanContext
		if err := json.Unmarshal(data, &agg); err != nil {
			return err
		}

		s.Boolean = &agg
	case KindInteger:
		var agg IntegerContext
		if err := json.Unmarshal(data, &agg); err != nil {
			return err
		}

		s.Integer = &agg
	case KindFloat:
		var agg FloatContext
		if err := json.Unmarshal(data, &agg); err != nil {
			return err
		}

		s.Float = &agg
	case KindString:
		var agg StringContext
		if err := json.Unmarshal(data, &agg); err != nil {
			return err
		}

		s.String = &agg
	case KindBytes:
		var agg BytesContext
		if err := json.Unmarshal(data, &agg); err != nil {
			return err
		}

		s.Bytes = &agg
	case KindSequence:
		var payload struct {
			Element *Field `json:"element"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return err
		}

		var agg SequenceContext
		if err := json.Unmarshal(data, &agg); err != nil {
			return err
		}

		s.Sequence = &SequenceSchema{Element: payload.Element, Agg: &agg}
	case KindStruct:
		var payload struct {
			Fields *OrderedFields `json:"fields"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return err
		}

		var agg MapStructContext
		if err := json.Unmarshal(data, &agg); err != nil {
			return err
		}

		if payload.Fields == nil {
			payload.Fields = NewOrderedFields()
		}

		s.Struct = &StructSchema{Fields: payload.Fields, Agg: &agg}
	case KindUnion:
		var payload struct {
			Variants []*Schema `json:"variants"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return err
		}

		s.Union = payload.Variants
	default:
		invariantf("schemalens: cannot unmarshal schema kind %s", kind)
	}

	return nil
}

func parseSchemaKind(tag string) (SchemaKind, error) {
	switch tag {
	case "Null":
		return KindNull, nil
	case "Boolean":
		return KindBoolean, nil
	case "Integer":
		return KindInteger, nil
	case "Float":
		return KindFloat, nil
	case "String":
		return KindString, nil
	case "Bytes":
		return KindBytes, nil
	case "Sequence":
		return KindSequence, nil
	case "Struct":
		return KindStruct, nil
	case "Union":
		return KindUnion, nil
	default:
		return 0, fmt.Errorf("schemalens: unknown schema type discriminator %q", tag)
	}
}

// MarshalJSON renders f with its status flags and (if present) its schema
// flattened into one JSON object.
func (f *Field) MarshalJSON() ([]byte, error) {
	b := newJSONObjectBuilder()
	if err := b.mergeObject(f.Status); err != nil {
		return nil, err
	}

	if f.Schema != nil {
		if err := b.mergeObject(f.Schema); err != nil {
			return nil, err
		}
	}

	return b.bytes(), nil
}

// UnmarshalJSON reads a JSON object written by [Field.MarshalJSON] back
// into f.
func (f *Field) UnmarshalJSON(data []byte) error {
	var status FieldStatus
	if err := json.Unmarshal(data, &status); err != nil {
		return err
	}

	f.Status = status

	var probe struct {
		Type *string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}

	if probe.Type == nil {
		f.Schema = nil

		return nil
	}

	schema := &Schema{}
	if err := json.Unmarshal(data, schema); err != nil {
		return err
	}

	f.Schema = schema

	return nil
}
