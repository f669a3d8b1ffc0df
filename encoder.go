package bencode

import (
	"io"
	"sort"
	"strconv"
)

// An Encoder writes bencoded values to an output stream.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes the canonical bencoding of v to the stream. The only
// failure source is the underlying writer.
func (enc *Encoder) Encode(v Value) error {
	_, err := enc.w.Write(Marshal(v))
	return err
}

// Marshal returns the canonical bencoding of v: integers in minimal decimal
// form and dictionary keys in ascending raw byte order, regardless of how
// the Dict was built. Every well-formed Value encodes; the sealed Value
// interface leaves no unsupported variant, so there is no error path.
// Marshal panics on a nil Value.
func Marshal(v Value) []byte {
	return appendValue(nil, v)
}

func appendValue(dst []byte, v Value) []byte {
	switch v := v.(type) {
	case Integer:
		return appendInteger(dst, v)
	case String:
		return appendString(dst, string(v))
	case List:
		return appendList(dst, v)
	case Dict:
		return appendDict(dst, v)
	}
	panic("bencode: cannot marshal a nil Value")
}

func appendInteger(dst []byte, v Integer) []byte {
	dst = append(dst, 'i')
	dst = strconv.AppendInt(dst, int64(v), 10)
	return append(dst, 'e')
}

func appendString(dst []byte, v string) []byte {
	dst = strconv.AppendInt(dst, int64(len(v)), 10)
	dst = append(dst, ':')
	return append(dst, v...)
}

func appendList(dst []byte, v List) []byte {
	dst = append(dst, 'l')
	for _, val := range v {
		dst = appendValue(dst, val)
	}
	return append(dst, 'e')
}

func appendDict(dst []byte, v Dict) []byte {
	dst = append(dst, 'd')

	keys := make([]string, 0, len(v))
	for key := range v {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		dst = appendString(dst, key)
		dst = appendValue(dst, v[key])
	}
	return append(dst, 'e')
}
