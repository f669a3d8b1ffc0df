package bencode

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var marshalTests = []struct {
	input    Value
	expected string
}{
	{Integer(42), "i42e"},
	{Integer(-42), "i-42e"},
	{Integer(0), "i0e"},
	{Integer(9223372036854775807), "i9223372036854775807e"},
	{Integer(-9223372036854775808), "i-9223372036854775808e"},

	{String("example"), "7:example"},
	{String(""), "0:"},
	{String("\x00\x01\xff"), "3:\x00\x01\xff"},

	{List{String("one"), String("two")}, "l3:one3:twoe"},
	{List{Integer(1), List{Integer(2)}}, "li1eli2eee"},
	{List{}, "le"},

	{Dict{"one": String("aa"), "two": String("bb")}, "d3:one2:aa3:two2:bbe"},
	{Dict{"two": String("bb"), "one": String("aa")}, "d3:one2:aa3:two2:bbe"},
	{Dict{}, "de"},

	// Key order is raw byte order, not any collation: "Z" < "a" < "\xff".
	{Dict{"a": Integer(1), "Z": Integer(2), "\xff": Integer(3)}, "d1:Zi2e1:ai1e1:\xffi3ee"},
	{Dict{"spam": List{String("a")}, "cow": String("moo")}, "d3:cow3:moo4:spaml1:aee"},
}

func TestMarshal(t *testing.T) {
	for _, tt := range marshalTests {
		got := Marshal(tt.input)
		assert.Equal(t, tt.expected, string(got), "the marshaled result of %v should be canonical", tt.input)
	}
}

func TestEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	require.NoError(t, enc.Encode(Dict{"cow": String("moo")}))
	require.NoError(t, enc.Encode(Integer(42)))
	assert.Equal(t, "d3:cow3:mooei42e", buf.String())
}

func TestMarshalNilValuePanics(t *testing.T) {
	assert.Panics(t, func() { Marshal(nil) })
}

func BenchmarkMarshalScalar(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Marshal(String("test"))
		Marshal(Integer(123))
	}
}

func BenchmarkMarshalLarge(b *testing.B) {
	data := Dict{
		"k1": List{String("a"), String("b"), String("c")},
		"k2": Integer(42),
		"k3": String("val"),
		"k4": Integer(-42),
	}

	for i := 0; i < b.N; i++ {
		Marshal(data)
	}
}
