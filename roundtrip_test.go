package bencode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roundTripValues = []Value{
	Integer(0),
	Integer(-12345),
	String(""),
	String("spam"),
	String("\x00\xde\xad\xbe\xef"),
	List{},
	List{Integer(1), String("two"), List{Integer(3)}},
	Dict{},
	Dict{
		"announce": String("http://tracker.example.com/announce"),
		"info": Dict{
			"name":         String("example"),
			"piece length": Integer(262144),
			"pieces":       String("\x01\x02\x03"),
		},
	},
}

func TestRoundTrip(t *testing.T) {
	for _, v := range roundTripValues {
		got, err := Unmarshal(Marshal(v))
		require.NoError(t, err, "round trip of %v should decode", v)
		assert.Equal(t, v, got, "round trip of %v should be lossless", v)
	}
}

func TestCanonicalIdempotence(t *testing.T) {
	inputs := []string{
		"i42e",
		"4:spam",
		"l4:spam4:eggse",
		"d3:cow3:moo4:spam4:eggse",
		// Unsorted on the wire; the first re-encode must already be the
		// fixed point.
		"d4:spam4:eggs3:cow3:mooe",
	}

	for _, input := range inputs {
		v1, err := Unmarshal([]byte(input))
		require.NoError(t, err)
		first := Marshal(v1)

		v2, err := Unmarshal(first)
		require.NoError(t, err)
		second := Marshal(v2)

		assert.Equal(t, string(first), string(second), "encode(decode()) should be idempotent for %q", input)
	}
}

func TestSortedKeyCanonicalization(t *testing.T) {
	// Keys arrive in reverse order; non-strict decode accepts them and the
	// encoder re-sorts.
	v, err := Unmarshal([]byte("d4:spam4:eggs3:cow3:mooe"))
	require.NoError(t, err)
	assert.Equal(t, "d3:cow3:moo4:spam4:eggse", string(Marshal(v)))
}

func TestNegativeZeroNeverNormalized(t *testing.T) {
	// i-0e is invalid input, not an alias for i0e.
	_, err := Unmarshal([]byte("i-0e"))

	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, MalformedInteger, decodeErr.Kind)
}
