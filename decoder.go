package bencode

import (
	"fmt"
	"io"
	"strconv"
)

// Limits bounds the resources a decode may consume. Bencoded input is
// usually untrusted (torrent files, peer and tracker traffic), so nesting
// depth and allocation need hard caps independent of host stack size.
type Limits struct {
	// MaxDepth caps container nesting. 0 means no limit.
	MaxDepth int `yaml:"max_depth"`

	// MaxStringLength caps the declared length of a single byte string.
	// 0 means no limit.
	MaxStringLength int64 `yaml:"max_string_length"`

	// MaxInputSize caps the total input size. 0 means no limit.
	MaxInputSize int64 `yaml:"max_input_size"`

	// EnforceSortedKeys rejects dictionaries whose keys are not in
	// strictly ascending byte order instead of accepting them and
	// re-sorting at encode time.
	EnforceSortedKeys bool `yaml:"enforce_sorted_keys"`
}

// DefaultLimits returns the limits applied by Unmarshal: nesting capped at
// 1024, no string or input size caps, unsorted keys accepted.
func DefaultLimits() Limits {
	return Limits{MaxDepth: 1024}
}

// Unmarshal deserializes the single bencoded value in buf using
// DefaultLimits. Trailing bytes after the value are an error.
func Unmarshal(buf []byte) (Value, error) {
	return UnmarshalWith(DefaultLimits(), buf)
}

// UnmarshalWith deserializes the single bencoded value in buf, applying lim.
func UnmarshalWith(lim Limits, buf []byte) (Value, error) {
	if lim.MaxInputSize > 0 && int64(len(buf)) > lim.MaxInputSize {
		return nil, errAt(SizeLimitExceeded, 0, fmt.Sprintf("input is %d bytes, limit is %d", len(buf), lim.MaxInputSize))
	}

	d := decoder{buf: buf, limits: lim}
	v, err := d.decodeValue(0)
	if err != nil {
		return nil, err
	}
	if d.pos != len(d.buf) {
		return nil, errAt(TrailingBytes, d.pos, fmt.Sprintf("%d bytes after top-level value", len(d.buf)-d.pos))
	}
	return v, nil
}

// A Decoder reads a single bencoded value from an input stream.
type Decoder struct {
	r      io.Reader
	limits Limits
}

// NewDecoder returns a new decoder that reads from r using DefaultLimits.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r, limits: DefaultLimits()}
}

// NewDecoderLimits returns a new decoder that reads from r, applying lim.
func NewDecoderLimits(r io.Reader, lim Limits) *Decoder {
	return &Decoder{r: r, limits: lim}
}

// Decode reads the rest of the stream and unmarshals it as one bencoded
// value. The whole input is buffered first; this is a convenience over
// UnmarshalWith, not an incremental parser.
func (dec *Decoder) Decode() (Value, error) {
	r := dec.r
	if dec.limits.MaxInputSize > 0 {
		r = io.LimitReader(r, dec.limits.MaxInputSize+1)
	}
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return UnmarshalWith(dec.limits, buf)
}

// decoder walks buf left to right with a single cursor. Each production
// consumes its leading type marker and leaves pos on the byte after its
// terminator.
type decoder struct {
	buf    []byte
	pos    int
	limits Limits
}

func (d *decoder) fail(kind Kind, reason string) error {
	return errAt(kind, d.pos, reason)
}

// decodeValue parses one value. depth is the container nesting level of the
// value, counted from 0 at the top; decodeList and decodeDict refuse to
// open a container at MaxDepth, which bounds recursion deterministically.
func (d *decoder) decodeValue(depth int) (Value, error) {
	if d.pos >= len(d.buf) {
		return nil, d.fail(UnexpectedEOF, "expected a value")
	}

	switch c := d.buf[d.pos]; {
	case c == 'i':
		return d.decodeInteger()
	case c == 'l':
		return d.decodeList(depth)
	case c == 'd':
		return d.decodeDict(depth)
	case isDigit(c):
		return d.decodeString()
	default:
		return nil, d.fail(InvalidTypeMarker, fmt.Sprintf("byte %q cannot begin a value", c))
	}
}

func (d *decoder) decodeInteger() (Value, error) {
	d.pos++ // 'i'
	numStart := d.pos

	if d.pos < len(d.buf) && d.buf[d.pos] == '-' {
		d.pos++
	}
	digitStart := d.pos
	for d.pos < len(d.buf) && isDigit(d.buf[d.pos]) {
		d.pos++
	}

	if d.pos == digitStart {
		if d.pos >= len(d.buf) {
			return nil, d.fail(UnexpectedEOF, "unterminated integer")
		}
		return nil, errAt(MalformedInteger, numStart, "integer has no digits")
	}
	digits := d.buf[digitStart:d.pos]
	if digits[0] == '0' {
		if digitStart != numStart {
			return nil, errAt(MalformedInteger, numStart, "-0 is not a valid integer")
		}
		if len(digits) > 1 {
			return nil, errAt(MalformedInteger, numStart, "leading zero")
		}
	}

	if d.pos >= len(d.buf) {
		return nil, d.fail(UnexpectedEOF, "unterminated integer")
	}
	if d.buf[d.pos] != 'e' {
		return nil, d.fail(MalformedInteger, fmt.Sprintf("unexpected byte %q in integer", d.buf[d.pos]))
	}

	n, err := strconv.ParseInt(string(d.buf[numStart:d.pos]), 10, 64)
	if err != nil {
		return nil, errAt(MalformedInteger, numStart, "integer outside int64 range")
	}
	d.pos++ // 'e'
	return Integer(n), nil
}

func (d *decoder) decodeString() (Value, error) {
	lenStart := d.pos
	for d.pos < len(d.buf) && isDigit(d.buf[d.pos]) {
		d.pos++
	}
	digits := d.buf[lenStart:d.pos]
	if digits[0] == '0' && len(digits) > 1 {
		return nil, errAt(MalformedLength, lenStart, "leading zero in string length")
	}

	if d.pos >= len(d.buf) {
		return nil, d.fail(UnexpectedEOF, "unterminated string length")
	}
	if d.buf[d.pos] != ':' {
		return nil, d.fail(MalformedLength, fmt.Sprintf("expected ':' after string length, found %q", d.buf[d.pos]))
	}

	n, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		return nil, errAt(MalformedLength, lenStart, "string length outside int64 range")
	}
	if d.limits.MaxStringLength > 0 && n > d.limits.MaxStringLength {
		return nil, errAt(SizeLimitExceeded, lenStart, fmt.Sprintf("string length %d exceeds limit %d", n, d.limits.MaxStringLength))
	}

	d.pos++ // ':'
	if int64(len(d.buf)-d.pos) < n {
		return nil, d.fail(UnexpectedEOF, fmt.Sprintf("string length %d exceeds remaining input", n))
	}
	s := String(d.buf[d.pos : d.pos+int(n)])
	d.pos += int(n)
	return s, nil
}

func (d *decoder) decodeList(depth int) (Value, error) {
	if d.limits.MaxDepth > 0 && depth >= d.limits.MaxDepth {
		return nil, d.fail(DepthExceeded, fmt.Sprintf("nesting exceeds %d", d.limits.MaxDepth))
	}
	d.pos++ // 'l'

	list := NewList()
	for {
		if d.pos >= len(d.buf) {
			return nil, d.fail(UnexpectedEOF, "unterminated list")
		}
		if d.buf[d.pos] == 'e' {
			d.pos++
			return list, nil
		}

		v, err := d.decodeValue(depth + 1)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
}

func (d *decoder) decodeDict(depth int) (Value, error) {
	if d.limits.MaxDepth > 0 && depth >= d.limits.MaxDepth {
		return nil, d.fail(DepthExceeded, fmt.Sprintf("nesting exceeds %d", d.limits.MaxDepth))
	}
	d.pos++ // 'd'

	dict := NewDict()
	var lastKey string
	for {
		if d.pos >= len(d.buf) {
			return nil, d.fail(UnexpectedEOF, "unterminated dictionary")
		}
		if d.buf[d.pos] == 'e' {
			d.pos++
			return dict, nil
		}

		keyOffset := d.pos
		if !isDigit(d.buf[d.pos]) {
			return nil, d.fail(NonStringKey, "dictionary key is not a byte string")
		}
		kv, err := d.decodeString()
		if err != nil {
			return nil, err
		}
		key := string(kv.(String))

		if _, dup := dict[key]; dup {
			return nil, errAt(DuplicateKey, keyOffset, fmt.Sprintf("key %q appears twice", key))
		}
		if d.limits.EnforceSortedKeys && len(dict) > 0 && key < lastKey {
			return nil, errAt(KeysNotSorted, keyOffset, fmt.Sprintf("key %q after %q", key, lastKey))
		}

		v, err := d.decodeValue(depth + 1)
		if err != nil {
			return nil, err
		}
		dict[key] = v
		lastKey = key
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
