package schemalens

// IntegerMinMax tracks the running min/max of [Int128] values. Integers
// never produce NaN, so unlike [MinMax] there is nothing to ignore.
type IntegerMinMax struct {
	Min *Int128 `json:"min,omitempty"`
	Max *Int128 `json:"max,omitempty"`
}

// Aggregate folds value into the running min/max.
func (m *IntegerMinMax) Aggregate(value Int128) {
	if m.Min == nil || value.Less(*m.Min) {
		v := value
		m.Min = &v
	}

	if m.Max == nil || m.Max.Less(value) {
		v := value
		m.Max = &v
	}
}

// Merge combines other's range into m.
func (m *IntegerMinMax) Merge(other IntegerMinMax) {
	if other.Min != nil {
		m.Aggregate(*other.Min)
	}

	if other.Max != nil {
		m.Aggregate(*other.Max)
	}
}

// IntegerSampler is [Sampler] specialized for [Int128], which cannot
// participate in the cmp.Ordered generic used by [Sampler] since it is a
// struct rather than a primitive ordered kind.
type IntegerSampler struct {
	Values     []Int128 `json:"samples"`
	Exhaustive bool     `json:"exhaustive"`
}

// NewIntegerSampler returns a sampler that starts out exhaustive.
func NewIntegerSampler() IntegerSampler {
	return IntegerSampler{Exhaustive: true}
}

func (s *IntegerSampler) search(value Int128) (int, bool) {
	lo, hi := 0, len(s.Values)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case s.Values[mid].Less(value):
			lo = mid + 1
		case value.Less(s.Values[mid]):
			hi = mid
		default:
			return mid, true
		}
	}

	return lo, false
}

// Aggregate records value if it is new and there is room, otherwise clears
// Exhaustive if it was not already seen.
func (s *IntegerSampler) Aggregate(value Int128) {
	idx, found := s.search(value)
	if found {
		return
	}

	if len(s.Values) < sampleLimit {
		s.Values = append(s.Values, Int128{})
		copy(s.Values[idx+1:], s.Values[idx:])
		s.Values[idx] = value

		return
	}

	s.Exhaustive = false
}

// Merge unions the distinct values of both samplers, keeps the lowest K in
// sorted order, and clears Exhaustive if either side already had or this
// union produces more than K distinct values.
func (s *IntegerSampler) Merge(other IntegerSampler) {
	merged := IntegerSampler{Values: append([]Int128(nil), s.Values...), Exhaustive: true}
	for _, v := range other.Values {
		merged.insertSorted(v)
	}

	exhaustive := s.Exhaustive && other.Exhaustive && len(merged.Values) <= sampleLimit

	if len(merged.Values) > sampleLimit {
		merged.Values = merged.Values[:sampleLimit]
	}

	s.Values = merged.Values
	s.Exhaustive = exhaustive
}

func (s *IntegerSampler) insertSorted(value Int128) {
	idx, found := s.search(value)
	if found {
		return
	}

	s.Values = append(s.Values, Int128{})
	copy(s.Values[idx+1:], s.Values[idx:])
	s.Values[idx] = value
}

// IntegerContext aggregates statistics for [Schema] Integer leaves: an
// occurrence count, up to 5 distinct sorted samples, and the running range.
type IntegerContext struct {
	Count   Counter        `json:"count"`
	Samples IntegerSampler `json:"samples"`
	MinMax  IntegerMinMax  `json:"min_max"`
}

// NewIntegerContext returns a zero-valued, ready-to-use IntegerContext.
func NewIntegerContext() IntegerContext {
	return IntegerContext{Samples: NewIntegerSampler()}
}

// Aggregate folds one integer value into the context.
func (c *IntegerContext) Aggregate(value Int128) {
	c.Count.Aggregate()
	c.Samples.Aggregate(value)
	c.MinMax.Aggregate(value)
}

// Merge combines other into c. If other is not a *IntegerContext it is
// left untouched, per the typed-downcast-or-return-foreign merge idiom.
func (c *IntegerContext) Merge(other IntegerAggregator) {
	o, ok := other.(*IntegerContext)
	if !ok {
		return
	}

	c.Count.Merge(o.Count)
	c.Samples.Merge(o.Samples)
	c.MinMax.Merge(o.MinMax)
}

// Clone returns an independent copy of c.
func (c *IntegerContext) Clone() IntegerAggregator {
	cp := &IntegerContext{Samples: NewIntegerSampler()}
	cp.Merge(c)

	return cp
}

// FloatContext aggregates statistics for [Schema] Float leaves. NaN values
// are counted but never recorded as samples or folded into the running
// range, since NaN compares unequal to itself under any ordering.
type FloatContext struct {
	Count   Counter          `json:"count"`
	Samples Sampler[float64] `json:"samples"`
	MinMax  MinMax[float64]  `json:"min_max"`
}

// NewFloatContext returns a zero-valued, ready-to-use FloatContext.
func NewFloatContext() FloatContext {
	return FloatContext{Samples: NewSampler[float64]()}
}

// Aggregate folds one float value into the context.
func (c *FloatContext) Aggregate(value float64) {
	c.Count.Aggregate()

	if value == value { //nolint:staticcheck // deliberate NaN self-inequality check.
		c.Samples.Aggregate(value)
	}

	c.MinMax.Aggregate(value)
}

// Merge combines other into c. If other is not a *FloatContext it is left
// untouched, per the typed-downcast-or-return-foreign merge idiom.
func (c *FloatContext) Merge(other FloatAggregator) {
	o, ok := other.(*FloatContext)
	if !ok {
		return
	}

	c.Count.Merge(o.Count)
	c.Samples.Merge(o.Samples)
	c.MinMax.Merge(o.MinMax)
}

// Clone returns an independent copy of c.
func (c *FloatContext) Clone() FloatAggregator {
	cp := &FloatContext{Samples: NewSampler[float64]()}
	cp.Merge(c)

	return cp
}
