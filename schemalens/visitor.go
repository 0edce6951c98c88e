package schemalens

import "fmt"

// This file is the inference visitor: the event-driven consumer that
// builds or extends a Schema from a Token stream. Fresh dispatch
// constructs new schema/field nodes; seed dispatch mutates existing ones
// in place, falling back to Coalesce on a type mismatch.

// InferFromTokens runs a fresh analysis over src using the default
// context.
func InferFromTokens(src TokenSource) (*Schema, error) {
	return InferFromTokensWithContext(DefaultContext(), src)
}

// InferFromTokensWithContext runs a fresh analysis over src using ctx.
func InferFromTokensWithContext(ctx Context, src TokenSource) (*Schema, error) {
	return schemaFresh(ctx, &tokenReader{src: src})
}

// Extend incrementally expands schema with one more document read from
// src, using the default context for any newly introduced aggregators.
func Extend(schema *Schema, src TokenSource) error {
	return ExtendWithContext(schema, DefaultContext(), src)
}

// ExtendWithContext is Extend with an explicit context.
func ExtendWithContext(schema *Schema, ctx Context, src TokenSource) error {
	return schemaSeed(ctx, schema, &tokenReader{src: src})
}

// freshScalarSchema builds a Schema leaf from a single already-read
// scalar-or-none token.
func freshScalarSchema(ctx Context, tok Token) (*Schema, error) {
	switch tok.Kind {
	case TokenBool:
		agg := ctx.NewBoolean()
		agg.Aggregate(tok.Bool)

		return NewBooleanSchema(agg), nil
	case TokenInteger:
		agg := ctx.NewInteger()
		agg.Aggregate(tok.Integer)

		return NewIntegerSchema(agg), nil
	case TokenFloat:
		agg := ctx.NewFloat()
		agg.Aggregate(tok.Float)

		return NewFloatSchema(agg), nil
	case TokenString:
		agg := ctx.NewString()
		agg.Aggregate(tok.Str)

		return NewStringSchema(agg), nil
	case TokenBytes:
		agg := ctx.NewBytes()
		agg.Aggregate(tok.Bytes)

		return NewBytesSchema(agg), nil
	case TokenNone:
		agg := ctx.NewNull()
		agg.Aggregate()

		return NewNullSchema(agg), nil
	default:
		invariantf("schemalens: freshScalarSchema called with non-scalar token kind %d", int(tok.Kind))

		return nil, nil
	}
}

// seedScalarSchema aggregates tok into existing in place if its kind
// matches. It reports whether it did.
func seedScalarSchema(existing *Schema, tok Token) bool {
	switch tok.Kind {
	case TokenBool:
		if existing.Kind != KindBoolean {
			return false
		}

		existing.Boolean.Aggregate(tok.Bool)
	case TokenInteger:
		if existing.Kind != KindInteger {
			return false
		}

		existing.Integer.Aggregate(tok.Integer)
	case TokenFloat:
		if existing.Kind != KindFloat {
			return false
		}

		existing.Float.Aggregate(tok.Float)
	case TokenString:
		if existing.Kind != KindString {
			return false
		}

		existing.String.Aggregate(tok.Str)
	case TokenBytes:
		if existing.Kind != KindBytes {
			return false
		}

		existing.Bytes.Aggregate(tok.Bytes)
	case TokenNone:
		if existing.Kind != KindNull {
			return false
		}

		existing.Null.Aggregate()
	default:
		invariantf("schemalens: seedScalarSchema called with non-scalar token kind %d", int(tok.Kind))
	}

	return true
}

// schemaFresh is schema-level fresh dispatch.
func schemaFresh(ctx Context, r *tokenReader) (*Schema, error) {
	tok, err := r.next()
	if err != nil {
		return nil, err
	}

	switch {
	case tok.Kind == TokenSome:
		return nil, fmt.Errorf("%w: optional value at schema root", ErrUnsupportedKind)
	case isScalarOrNoneToken(tok.Kind):
		return freshScalarSchema(ctx, tok)
	case tok.Kind == TokenSeqStart:
		return readSeqFreshBody(ctx, r)
	case tok.Kind == TokenMapStart:
		return readStructFreshBody(ctx, r)
	default:
		return nil, fmt.Errorf("%w: unexpected token kind %d at schema root", ErrUnsupportedKind, int(tok.Kind))
	}
}

// schemaSeed is schema-level seed dispatch.
func schemaSeed(ctx Context, existing *Schema, r *tokenReader) error {
	tok, err := r.next()
	if err != nil {
		return err
	}

	switch {
	case tok.Kind == TokenSome:
		return fmt.Errorf("%w: optional value at schema root", ErrUnsupportedKind)
	case isScalarOrNoneToken(tok.Kind):
		if seedScalarSchema(existing, tok) {
			return nil
		}

		fresh, err := freshScalarSchema(ctx, tok)
		if err != nil {
			return err
		}

		Coalesce(existing, fresh)

		return nil
	case tok.Kind == TokenSeqStart:
		if existing.Kind == KindSequence {
			return readSeqSeedBody(ctx, existing, r)
		}

		fresh, err := readSeqFreshBody(ctx, r)
		if err != nil {
			return err
		}

		Coalesce(existing, fresh)

		return nil
	case tok.Kind == TokenMapStart:
		if existing.Kind == KindStruct {
			return readStructSeedBody(ctx, existing, r)
		}

		fresh, err := readStructFreshBody(ctx, r)
		if err != nil {
			return err
		}

		Coalesce(existing, fresh)

		return nil
	default:
		return fmt.Errorf("%w: unexpected token kind %d", ErrUnsupportedKind, int(tok.Kind))
	}
}

// fieldFresh is field-level fresh dispatch. It loops to peel off any number of leading
// TokenSome wrappers.
func fieldFresh(ctx Context, f *Field, r *tokenReader) error {
	for {
		tok, err := r.next()
		if err != nil {
			return err
		}

		switch {
		case tok.Kind == TokenSome:
			f.Status.MayBeNull = true

			continue
		case tok.Kind == TokenNone:
			f.Status.MayBeNull = true

			return nil
		case isScalarToken(tok.Kind):
			schema, err := freshScalarSchema(ctx, tok)
			if err != nil {
				return err
			}

			f.Schema = schema
			f.Status.MayBeNormal = true

			return nil
		case tok.Kind == TokenSeqStart:
			schema, err := readSeqFreshBody(ctx, r)
			if err != nil {
				return err
			}

			f.Schema = schema
			f.Status.MayBeNormal = true

			return nil
		case tok.Kind == TokenMapStart:
			schema, err := readStructFreshBody(ctx, r)
			if err != nil {
				return err
			}

			f.Schema = schema
			f.Status.MayBeNormal = true

			return nil
		default:
			return fmt.Errorf("%w: unexpected token kind %d", ErrUnsupportedKind, int(tok.Kind))
		}
	}
}

// fieldFreshNew builds a brand new Field via fieldFresh.
func fieldFreshNew(ctx Context, r *tokenReader) (*Field, error) {
	f := NewField()
	if err := fieldFresh(ctx, f, r); err != nil {
		return nil, err
	}

	return f, nil
}

// fieldSeed is field-level seed dispatch. It loops to peel off any number of leading TokenSome wrappers.
func fieldSeed(ctx Context, f *Field, r *tokenReader) error {
	for {
		tok, err := r.next()
		if err != nil {
			return err
		}

		switch {
		case tok.Kind == TokenSome:
			f.Status.MayBeNull = true

			continue
		case tok.Kind == TokenNone:
			f.Status.MayBeNull = true

			return nil
		case isScalarToken(tok.Kind):
			if f.Schema != nil {
				if !seedScalarSchema(f.Schema, tok) {
					fresh, err := freshScalarSchema(ctx, tok)
					if err != nil {
						return err
					}

					Coalesce(f.Schema, fresh)
				}
			} else {
				schema, err := freshScalarSchema(ctx, tok)
				if err != nil {
					return err
				}

				f.Schema = schema
			}

			f.Status.MayBeNormal = true

			return nil
		case tok.Kind == TokenSeqStart:
			if err := seedOrCreateContainer(f, tok, func() (*Schema, error) { return readSeqFreshBody(ctx, r) },
				func(existing *Schema) error { return readSeqSeedBody(ctx, existing, r) }, KindSequence); err != nil {
				return err
			}

			f.Status.MayBeNormal = true

			return nil
		case tok.Kind == TokenMapStart:
			if err := seedOrCreateContainer(f, tok, func() (*Schema, error) { return readStructFreshBody(ctx, r) },
				func(existing *Schema) error { return readStructSeedBody(ctx, existing, r) }, KindStruct); err != nil {
				return err
			}

			f.Status.MayBeNormal = true

			return nil
		default:
			return fmt.Errorf("%w: unexpected token kind %d", ErrUnsupportedKind, int(tok.Kind))
		}
	}
}

// seedOrCreateContainer implements the shared shape of sequence/struct
// field-seed handling: seed in place if f.Schema already matches kind,
// else build fresh and either adopt it (f.Schema was nil) or coalesce it
// in (f.Schema held something else).
func seedOrCreateContainer(f *Field, _ Token, buildFresh func() (*Schema, error), seedExisting func(*Schema) error, kind SchemaKind) error {
	if f.Schema != nil && f.Schema.Kind == kind {
		return seedExisting(f.Schema)
	}

	fresh, err := buildFresh()
	if err != nil {
		return err
	}

	if f.Schema == nil {
		f.Schema = fresh
	} else {
		Coalesce(f.Schema, fresh)
	}

	return nil
}

// readSeqFreshBody builds a fresh Sequence schema; the caller has already
// consumed the TokenSeqStart.
func readSeqFreshBody(ctx Context, r *tokenReader) (*Schema, error) {
	field := NewField()
	count := 0

	for {
		tok, err := r.next()
		if err != nil {
			return nil, err
		}

		if tok.Kind == TokenSeqEnd {
			break
		}

		r.pushback(tok)

		var visitErr error
		if count == 0 {
			visitErr = fieldFresh(ctx, field, r)
		} else {
			visitErr = fieldSeed(ctx, field, r)
		}

		if visitErr != nil {
			return nil, visitErr
		}

		count++
	}

	if count == 0 {
		field.Status.MayBeMissing = true
	}

	agg := ctx.NewSequence()
	agg.Aggregate(count)

	return NewSequenceSchema(field, agg), nil
}

// readSeqSeedBody seeds an existing Sequence schema; the caller has
// already consumed the TokenSeqStart and confirmed existing.Kind ==
// KindSequence.
func readSeqSeedBody(ctx Context, existing *Schema, r *tokenReader) error {
	seq := existing.Sequence
	count := 0

	for {
		tok, err := r.next()
		if err != nil {
			return err
		}

		if tok.Kind == TokenSeqEnd {
			break
		}

		r.pushback(tok)

		if err := fieldSeed(ctx, seq.Element, r); err != nil {
			return err
		}

		count++
	}

	if count == 0 {
		seq.Element.Status.MayBeMissing = true
	}

	seq.Agg.Aggregate(count)

	return nil
}

// readStructFreshBody builds a fresh Struct schema; the caller has already
// consumed the TokenMapStart.
func readStructFreshBody(ctx Context, r *tokenReader) (*Schema, error) {
	fields := NewOrderedFields()

	var keysSeen []string

	for {
		tok, err := r.next()
		if err != nil {
			return nil, err
		}

		if tok.Kind == TokenMapEnd {
			break
		}

		if tok.Kind != TokenMapKey {
			return nil, fmt.Errorf("%w: expected map key, got token kind %d", ErrFormatError, int(tok.Kind))
		}

		key := tok.Str

		if existing, ok := fields.Get(key); ok {
			if err := fieldSeed(ctx, existing, r); err != nil {
				return nil, err
			}

			existing.Status.MayBeDuplicate = true
		} else {
			f, err := fieldFreshNew(ctx, r)
			if err != nil {
				return nil, err
			}

			fields.Set(key, f)
		}

		keysSeen = append(keysSeen, key)
	}

	agg := ctx.NewStruct()
	agg.Aggregate(keysSeen)

	return NewStructSchema(fields, agg), nil
}

// readStructSeedBody seeds an existing Struct schema; the caller has
// already consumed the TokenMapStart and confirmed existing.Kind ==
// KindStruct.
func readStructSeedBody(ctx Context, existing *Schema, r *tokenReader) error {
	st := existing.Struct
	keysSeenSet := make(map[string]bool)

	var keysSeen []string

	for {
		tok, err := r.next()
		if err != nil {
			return err
		}

		if tok.Kind == TokenMapEnd {
			break
		}

		if tok.Kind != TokenMapKey {
			return fmt.Errorf("%w: expected map key, got token kind %d", ErrFormatError, int(tok.Kind))
		}

		key := tok.Str

		if f, ok := st.Fields.Get(key); ok {
			f.Status.MayBeDuplicate = keysSeenSet[key]

			if err := fieldSeed(ctx, f, r); err != nil {
				return err
			}
		} else {
			f, err := fieldFreshNew(ctx, r)
			if err != nil {
				return err
			}

			f.Status.MayBeMissing = true
			f.Status.MayBeDuplicate = keysSeenSet[key]
			st.Fields.Set(key, f)
		}

		keysSeenSet[key] = true

		keysSeen = append(keysSeen, key)
	}

	st.Fields.Range(func(key string, f *Field) bool {
		if !keysSeenSet[key] {
			f.Status.MayBeMissing = true
		}

		return true
	})

	st.Agg.Aggregate(keysSeen)

	return nil
}
