package schemalens

import "math/big"

// Int128 is the widened signed 128-bit integer channel every incoming
// integer event flows through. It is backed by [big.Int], the
// big-integer fallback for a language without a native 128-bit integer
// type.
type Int128 struct {
	v *big.Int
}

// NewInt128FromInt64 widens a signed 64-bit integer.
func NewInt128FromInt64(i int64) Int128 {
	return Int128{v: big.NewInt(i)}
}

// NewInt128FromUint64 widens an unsigned 64-bit integer.
func NewInt128FromUint64(u uint64) Int128 {
	return Int128{v: new(big.Int).SetUint64(u)}
}

// maxInt128 bounds the representable signed 128-bit range, used to
// validate widened u128 values (which are always non-negative, so only
// the upper bound matters here).
var maxInt128 = func() *big.Int {
	v := new(big.Int).Lsh(big.NewInt(1), 127)
	return v.Sub(v, big.NewInt(1))
}()

// NewInt128FromBigUint widens an unsigned 128-bit integer represented as a
// non-negative [big.Int]. It reports ok=false (and the caller should return
// [ErrIntegerTooLarge]) if the value does not fit in a signed 128-bit
// integer.
func NewInt128FromBigUint(u *big.Int) (Int128, bool) {
	if u.Cmp(maxInt128) > 0 {
		return Int128{}, false
	}

	return Int128{v: new(big.Int).Set(u)}, true
}

// Less reports whether a is strictly less than b.
func (a Int128) Less(b Int128) bool {
	return a.v.Cmp(b.v) < 0
}

// Equal reports whether a and b represent the same integer.
func (a Int128) Equal(b Int128) bool {
	return a.v.Cmp(b.v) == 0
}

// float64Approx converts a to the nearest float64, for embedding as a
// JSON Schema "minimum"/"maximum" numeric keyword. Precision beyond
// float64's 53-bit mantissa is not preserved.
func (a Int128) float64Approx() float64 {
	if a.v == nil {
		return 0
	}

	f, _ := new(big.Float).SetInt(a.v).Float64()

	return f
}

// String returns the base-10 representation.
func (a Int128) String() string {
	if a.v == nil {
		return "0"
	}

	return a.v.String()
}

// MarshalJSON renders the integer as a bare JSON number, matching how
// [big.Int] itself marshals.
func (a Int128) MarshalJSON() ([]byte, error) {
	if a.v == nil {
		return []byte("0"), nil
	}

	return a.v.MarshalJSON()
}

// UnmarshalJSON parses a bare JSON number into the integer.
func (a *Int128) UnmarshalJSON(data []byte) error {
	v := new(big.Int)
	if err := v.UnmarshalJSON(data); err != nil {
		return err
	}

	a.v = v

	return nil
}
