package schemalens

import "math/big"

// TokenKind tags a Token. This is the token-stream alternative to nested
// deserializer callbacks: the adapter emits StartSeq/EndSeq/StartMap/
// EndMap/Key(...)/Value(...) and the engine runs a small state machine.
type TokenKind int

const (
	TokenBool TokenKind = iota
	TokenInteger
	TokenFloat
	TokenString
	TokenBytes
	// TokenNone covers both "none" and "unit" events: the widening table
	// treats unit as none, so adapters never need a separate unit token.
	TokenNone
	// TokenSome marks an explicit present-optional wrapper. None of the
	// format adapters in this module emit it; it exists so the engine
	// implements the full inbound contract for optionals nested below the
	// root (at the root it is rejected with ErrUnsupportedKind).
	TokenSome
	TokenSeqStart
	TokenSeqEnd
	TokenMapStart
	TokenMapKey
	TokenMapEnd
)

// Token is one unit of the inbound event stream a format adapter pushes
// into the inference visitor. Only the field matching Kind is meaningful.
type Token struct {
	Kind    TokenKind
	Bool    bool
	Integer Int128
	Float   float64
	Str     string
	Bytes   []byte
}

// TokenSource is the pull-based event stream a format adapter implements.
// Next returns io.EOF-equivalent only via the final TokenSeqEnd/TokenMapEnd
// pair closing out the document; a well-formed single-document stream ends
// after the root value's closing token, and the caller (InferFromTokens /
// Extend) stops reading once that value is fully consumed.
type TokenSource interface {
	Next() (Token, error)
}

// BoolToken widens a bool event.
func BoolToken(v bool) Token { return Token{Kind: TokenBool, Bool: v} }

// IntToken wraps an already-widened Int128.
func IntToken(v Int128) Token { return Token{Kind: TokenInteger, Integer: v} }

// Int64Token widens a signed integer of 64 bits or fewer (the i8..i64
// widening row).
func Int64Token(v int64) Token { return IntToken(NewInt128FromInt64(v)) }

// Uint64Token widens an unsigned integer of 64 bits or fewer (the
// u8..u64 widening row).
func Uint64Token(v uint64) Token { return IntToken(NewInt128FromUint64(v)) }

// BigUintToken widens a full-width unsigned 128-bit integer (the u128
// widening row). It returns ErrIntegerTooLarge if v does not fit in a
// signed 128-bit integer.
func BigUintToken(v *big.Int) (Token, error) {
	i, ok := NewInt128FromBigUint(v)
	if !ok {
		return Token{}, ErrIntegerTooLarge
	}

	return IntToken(i), nil
}

// FloatToken wraps an f64 event.
func FloatToken(v float64) Token { return Token{Kind: TokenFloat, Float: v} }

// Float32Token widens an f32 event per the widening table.
func Float32Token(v float32) Token { return FloatToken(float64(v)) }

// StringToken wraps a borrowed_str event. string and char events both
// widen to this.
func StringToken(v string) Token { return Token{Kind: TokenString, Str: v} }

// BytesToken wraps a borrowed_bytes event. byte_buf events widen to this.
func BytesToken(v []byte) Token { return Token{Kind: TokenBytes, Bytes: v} }

// NoneToken represents a none or unit event; unit widens to none.
func NoneToken() Token { return Token{Kind: TokenNone} }

// SomeToken marks the start of a present-optional value; the wrapped
// value's token(s) follow immediately.
func SomeToken() Token { return Token{Kind: TokenSome} }

// SeqStartToken/SeqEndToken bracket a seq event's element tokens.
func SeqStartToken() Token { return Token{Kind: TokenSeqStart} }
func SeqEndToken() Token   { return Token{Kind: TokenSeqEnd} }

// MapStartToken/MapKeyToken/MapEndToken bracket a map event: a MapStart,
// then for each entry a MapKey followed by the value's token(s), then a
// MapEnd.
func MapStartToken() Token          { return Token{Kind: TokenMapStart} }
func MapKeyToken(key string) Token  { return Token{Kind: TokenMapKey, Str: key} }
func MapEndToken() Token            { return Token{Kind: TokenMapEnd} }

func isScalarOrNoneToken(k TokenKind) bool {
	switch k {
	case TokenBool, TokenInteger, TokenFloat, TokenString, TokenBytes, TokenNone:
		return true
	default:
		return false
	}
}

func isScalarToken(k TokenKind) bool {
	switch k {
	case TokenBool, TokenInteger, TokenFloat, TokenString, TokenBytes:
		return true
	default:
		return false
	}
}

// tokenReader adds one-token pushback on top of a TokenSource, so the
// sequence/struct loops below can "peek" for an end marker by reading and,
// if it wasn't the end, pushing the token back for the element visitor to
// consume.
type tokenReader struct {
	src TokenSource
	buf *Token
}

func (r *tokenReader) next() (Token, error) {
	if r.buf != nil {
		t := *r.buf
		r.buf = nil

		return t, nil
	}

	return r.src.Next()
}

func (r *tokenReader) pushback(t Token) {
	r.buf = &t
}
