package schemalens

// NullContext aggregates statistics for [Schema] Null leaves: just an
// occurrence count.
type NullContext struct {
	Count Counter `json:"count"`
}

// Aggregate records one null/unit occurrence.
func (c *NullContext) Aggregate() {
	c.Count.Aggregate()
}

// Merge combines other into c. If other is not a *NullContext it is left
// untouched, per the typed-downcast-or-return-foreign merge idiom.
func (c *NullContext) Merge(other NullAggregator) {
	o, ok := other.(*NullContext)
	if !ok {
		return
	}

	c.Count.Merge(o.Count)
}

// Clone returns an independent copy of c.
func (c *NullContext) Clone() NullAggregator {
	cp := &NullContext{}
	cp.Merge(c)

	return cp
}

// BooleanContext aggregates statistics for [Schema] Boolean leaves: an
// occurrence count plus separate true/false tallies.
type BooleanContext struct {
	Count  Counter `json:"count"`
	Trues  int     `json:"trues"`
	Falses int     `json:"falses"`
}

// Aggregate folds one boolean value into the context.
func (c *BooleanContext) Aggregate(value bool) {
	c.Count.Aggregate()

	if value {
		c.Trues++
	} else {
		c.Falses++
	}
}

// Merge combines other into c. If other is not a *BooleanContext it is
// left untouched, per the typed-downcast-or-return-foreign merge idiom.
func (c *BooleanContext) Merge(other BooleanAggregator) {
	o, ok := other.(*BooleanContext)
	if !ok {
		return
	}

	c.Count.Merge(o.Count)
	c.Trues += o.Trues
	c.Falses += o.Falses
}

// Clone returns an independent copy of c.
func (c *BooleanContext) Clone() BooleanAggregator {
	cp := &BooleanContext{}
	cp.Merge(c)

	return cp
}

// BytesContext aggregates statistics for [Schema] Bytes leaves: an
// occurrence count and the running length range.
type BytesContext struct {
	Count        Counter     `json:"count"`
	MinMaxLength MinMax[int] `json:"min_max_length"`
}

// Aggregate folds one byte-slice value into the context.
func (c *BytesContext) Aggregate(value []byte) {
	c.Count.Aggregate()
	c.MinMaxLength.Aggregate(len(value))
}

// Merge combines other into c. If other is not a *BytesContext it is left
// untouched, per the typed-downcast-or-return-foreign merge idiom.
func (c *BytesContext) Merge(other BytesAggregator) {
	o, ok := other.(*BytesContext)
	if !ok {
		return
	}

	c.Count.Merge(o.Count)
	c.MinMaxLength.Merge(o.MinMaxLength)
}

// Clone returns an independent copy of c.
func (c *BytesContext) Clone() BytesAggregator {
	cp := &BytesContext{}
	cp.Merge(c)

	return cp
}

// SequenceContext aggregates statistics for [Schema] Sequence containers:
// an occurrence count and the running length range, aggregated once per
// sequence event over its element count.
type SequenceContext struct {
	Count        Counter     `json:"count"`
	LengthMinMax MinMax[int] `json:"length_min_max"`
}

// Aggregate folds one sequence's length into the context.
func (c *SequenceContext) Aggregate(length int) {
	c.Count.Aggregate()
	c.LengthMinMax.Aggregate(length)
}

// Merge combines other into c. If other is not a *SequenceContext it is
// left untouched, per the typed-downcast-or-return-foreign merge idiom.
func (c *SequenceContext) Merge(other SequenceAggregator) {
	o, ok := other.(*SequenceContext)
	if !ok {
		return
	}

	c.Count.Merge(o.Count)
	c.LengthMinMax.Merge(o.LengthMinMax)
}

// Clone returns an independent copy of c.
func (c *SequenceContext) Clone() SequenceAggregator {
	cp := &SequenceContext{}
	cp.Merge(c)

	return cp
}

// MapStructContext aggregates statistics for [Schema] Struct containers: an
// occurrence count, plus how many times each key was present across the
// structs observed.
type MapStructContext struct {
	Count Counter             `json:"count"`
	Keys  CountingSet[string] `json:"keys,omitempty"`
}

// Aggregate folds one struct's observed key list into the context.
func (c *MapStructContext) Aggregate(keys []string) {
	c.Count.Aggregate()

	for _, k := range keys {
		c.Keys.Insert(k)
	}
}

// Merge combines other into c. If other is not a *MapStructContext it is
// left untouched, per the typed-downcast-or-return-foreign merge idiom.
func (c *MapStructContext) Merge(other StructAggregator) {
	o, ok := other.(*MapStructContext)
	if !ok {
		return
	}

	c.Count.Merge(o.Count)
	c.Keys.Merge(o.Keys)
}

// Clone returns an independent copy of c.
func (c *MapStructContext) Clone() StructAggregator {
	cp := &MapStructContext{}
	cp.Merge(c)

	return cp
}
