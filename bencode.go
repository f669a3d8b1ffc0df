// Package bencode implements bencoding of data as defined in BEP 3 using a
// sealed value model instead of reflection.
//
// Decoding is strict: input that deviates from the grammar, contains
// duplicate dictionary keys, or exceeds the configured resource limits is
// rejected with a position-tagged error. Encoding is canonical: a given
// Value has exactly one encoding, with dictionary keys emitted in ascending
// raw byte order, so encoded output is stable under hashing.
package bencode

// A Value is a bencoded value. The four kinds defined by BEP 3 — Integer,
// String, List and Dict — are the only implementations.
type Value interface {
	value()
}

// An Integer is a bencode integer.
//
// The wire format places no bound on magnitude; this implementation stores
// integers as int64 and rejects input outside that range at decode time
// rather than truncating.
type Integer int64

// A String is a bencode byte string. It holds raw bytes and is not assumed
// to be valid UTF-8; pieces hashes and other binary payloads are Strings.
type String string

// A List is an ordered sequence of Values. Order is preserved exactly
// through decode and encode.
type List []Value

// A Dict maps byte-string keys to Values. Decoding normalizes dictionaries
// to map storage, discarding the on-wire key order; the encoder always
// emits keys sorted by raw byte order, so re-encoding any decoded
// dictionary produces canonical bytes.
type Dict map[string]Value

func (Integer) value() {}
func (String) value()  {}
func (List) value()    {}
func (Dict) value()    {}

// NewDict allocates the memory for a Dict.
func NewDict() Dict {
	return make(Dict)
}

// NewList allocates the memory for a List.
func NewList() List {
	return make(List, 0)
}
