package bencode

import "fmt"

// A Kind classifies the grammar violation that aborted a decode.
type Kind int

const (
	// UnexpectedEOF means the input ended before the current value was
	// complete.
	UnexpectedEOF Kind = iota

	// InvalidTypeMarker means a byte that cannot begin a value was found
	// where a value was expected.
	InvalidTypeMarker

	// MalformedInteger covers empty digit sequences, a bare minus, -0,
	// leading zeros, stray bytes inside an integer, and values outside
	// the int64 range.
	MalformedInteger

	// MalformedLength covers string length prefixes with leading zeros,
	// a missing colon, or a length that overflows int64.
	MalformedLength

	// TrailingBytes means input remained after the single top-level value.
	TrailingBytes

	// DuplicateKey means a dictionary contained the same key twice.
	DuplicateKey

	// NonStringKey means a dictionary key was not a byte string.
	NonStringKey

	// KeysNotSorted means dictionary keys were not in strictly ascending
	// byte order. Only reported when Limits.EnforceSortedKeys is set.
	KeysNotSorted

	// DepthExceeded means container nesting passed Limits.MaxDepth.
	DepthExceeded

	// SizeLimitExceeded means the input or a string length passed
	// Limits.MaxInputSize or Limits.MaxStringLength.
	SizeLimitExceeded
)

var kindNames = [...]string{
	UnexpectedEOF:     "unexpected end of input",
	InvalidTypeMarker: "invalid type marker",
	MalformedInteger:  "malformed integer",
	MalformedLength:   "malformed length",
	TrailingBytes:     "trailing bytes",
	DuplicateKey:      "duplicate key",
	NonStringKey:      "non-string key",
	KeysNotSorted:     "keys not sorted",
	DepthExceeded:     "depth exceeded",
	SizeLimitExceeded: "size limit exceeded",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// A DecodeError reports the first grammar violation found in the input.
// Offset is the byte position at which the violation was detected; the
// parse is aborted there and no partial value is returned.
type DecodeError struct {
	Kind   Kind
	Offset int
	reason string
}

func (e *DecodeError) Error() string {
	if e.reason == "" {
		return fmt.Sprintf("bencode: %s at offset %d", e.Kind, e.Offset)
	}
	return fmt.Sprintf("bencode: %s at offset %d: %s", e.Kind, e.Offset, e.reason)
}

func errAt(kind Kind, offset int, reason string) *DecodeError {
	return &DecodeError{Kind: kind, Offset: offset, reason: reason}
}
