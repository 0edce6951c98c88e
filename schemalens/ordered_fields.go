package schemalens

import "sort"

// OrderedFields is a string-keyed map of *Field that preserves first-seen
// insertion order while still giving O(1) lookup by key.
type OrderedFields struct {
	keys   []string
	lookup map[string]int
	values []*Field
}

// NewOrderedFields returns an empty OrderedFields.
func NewOrderedFields() *OrderedFields {
	return &OrderedFields{lookup: make(map[string]int)}
}

// Get returns the field stored under key, if any.
func (o *OrderedFields) Get(key string) (*Field, bool) {
	idx, ok := o.lookup[key]
	if !ok {
		return nil, false
	}

	return o.values[idx], true
}

// Has reports whether key is present.
func (o *OrderedFields) Has(key string) bool {
	_, ok := o.lookup[key]

	return ok
}

// Set inserts key at the end if new, or overwrites the field at its
// existing position, never disturbing insertion order.
func (o *OrderedFields) Set(key string, field *Field) {
	if idx, ok := o.lookup[key]; ok {
		o.values[idx] = field

		return
	}

	if o.lookup == nil {
		o.lookup = make(map[string]int)
	}

	o.lookup[key] = len(o.keys)
	o.keys = append(o.keys, key)
	o.values = append(o.values, field)
}

// Len returns the number of keys stored.
func (o *OrderedFields) Len() int {
	return len(o.keys)
}

// Keys returns the keys in insertion order. The returned slice must not be
// mutated by the caller.
func (o *OrderedFields) Keys() []string {
	return o.keys
}

// Range calls fn for each (key, field) pair in insertion order, stopping
// early if fn returns false.
func (o *OrderedFields) Range(fn func(key string, field *Field) bool) {
	for i, k := range o.keys {
		if !fn(k, o.values[i]) {
			return
		}
	}
}

// SortByKey reorders the fields lexicographically by key, in place.
func (o *OrderedFields) SortByKey() {
	idx := make([]int, len(o.keys))
	for i := range idx {
		idx[i] = i
	}

	sort.Slice(idx, func(i, j int) bool { return o.keys[idx[i]] < o.keys[idx[j]] })

	keys := make([]string, len(o.keys))
	values := make([]*Field, len(o.values))

	for i, j := range idx {
		keys[i] = o.keys[j]
		values[i] = o.values[j]
		o.lookup[keys[i]] = i
	}

	o.keys = keys
	o.values = values
}

// Clone returns a shallow copy: keys are copied but Field pointers are
// shared with the original.
func (o *OrderedFields) Clone() *OrderedFields {
	cp := NewOrderedFields()
	o.Range(func(key string, field *Field) bool {
		cp.Set(key, field)

		return true
	})

	return cp
}
