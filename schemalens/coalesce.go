package schemalens

// Coalesce merges b into a in place. It takes ownership of b's substructure:
// callers must not reuse b's Schema/Field pointers afterward, since a may
// end up holding them directly rather than copies.
//
// Coalesce is associative and, on the structural level, commutative up to
// union-variant and struct-field ordering.
func Coalesce(a, b *Schema) {
	switch {
	case a.Kind == KindUnion && b.Kind == KindUnion:
		for _, w := range b.Union {
			unionAbsorb(a, w)
		}
	case a.Kind == KindUnion:
		unionAbsorb(a, b)
	case b.Kind == KindUnion:
		coalesceIntoUnion(a, b)
	case a.Kind == b.Kind:
		mergeSameKind(a, b)
	default:
		aCopy := snapshotSchema(a)
		*a = Schema{Kind: KindUnion, Union: []*Schema{aCopy, b}}
	}
}

// coalesceIntoUnion handles a non-Union, b Union: a must become a Union
// absorbing every variant of b.
func coalesceIntoUnion(a, b *Schema) {
	aCopy := snapshotSchema(a)
	*a = Schema{Kind: KindUnion, Union: []*Schema{aCopy}}

	for _, w := range b.Union {
		unionAbsorb(a, w)
	}
}

// unionAbsorb folds x into the union a (a.Kind == KindUnion): merging into
// the variant sharing x's top tag if one exists, else appending x. Per the
// Union invariants, neither a's variants nor x can themselves be a Union.
func unionAbsorb(a *Schema, x *Schema) {
	for _, v := range a.Union {
		if v.Kind == x.Kind {
			mergeSameKind(v, x)

			return
		}
	}

	a.Union = append(a.Union, x)
}

// mergeSameKind merges b into a for two non-Union schemas sharing a Kind.
func mergeSameKind(a, b *Schema) {
	switch a.Kind {
	case KindNull:
		a.Null.Merge(b.Null)
	case KindBoolean:
		a.Boolean.Merge(b.Boolean)
	case KindInteger:
		a.Integer.Merge(b.Integer)
	case KindFloat:
		a.Float.Merge(b.Float)
	case KindString:
		a.String.Merge(b.String)
	case KindBytes:
		a.Bytes.Merge(b.Bytes)
	case KindSequence:
		a.Sequence.Agg.Merge(b.Sequence.Agg)
		CoalesceField(a.Sequence.Element, b.Sequence.Element)
	case KindStruct:
		a.Struct.Agg.Merge(b.Struct.Agg)
		b.Struct.Fields.Range(func(key string, bf *Field) bool {
			if af, ok := a.Struct.Fields.Get(key); ok {
				CoalesceField(af, bf)
			} else {
				a.Struct.Fields.Set(key, bf)
			}

			return true
		})
	default:
		invariantf("schemalens: cannot coalesce schema kind %s", a.Kind)
	}
}

// CoalesceField merges b into a in place: statuses combine by logical OR,
// and schemas combine per the table (Some,Some) → merge; (Some,None) →
// Some; (None,Some) → Some; (None,None) → None.
func CoalesceField(a, b *Field) {
	a.Status.Merge(b.Status)

	switch {
	case a.Schema != nil && b.Schema != nil:
		Coalesce(a.Schema, b.Schema)
	case a.Schema == nil && b.Schema != nil:
		a.Schema = b.Schema
	}
}

// snapshotSchema returns a shallow copy of s: a distinct *Schema value
// sharing s's current payload, used when s itself must be overwritten to
// become a Union wrapping its former contents.
func snapshotSchema(s *Schema) *Schema {
	cp := *s

	return &cp
}
