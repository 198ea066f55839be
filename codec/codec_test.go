package codec

import (
	"bytes"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/matryer/is"
	"github.com/pkg/errors"
)

type data struct {
	Text   string `cbor:"text"`
	Number uint64 `cbor:"number"`
}

type differentData struct {
	Number1 uint64 `cbor:"number1"`
	Number2 uint64 `cbor:"number2"`
}

func TestRoundTrip(t *testing.T) {
	is := is.New(t)
	for _, v := range []data{
		{},
		{Text: "Hello, world!", Number: 7},
		{Text: "ünïcödé", Number: 1<<64 - 1},
	} {
		b, err := Marshal(v)
		is.NoErr(err)
		var out data
		is.NoErr(Unmarshal(b, &out))
		is.Equal(out, v)
	}
}

func TestDeterministic(t *testing.T) {
	is := is.New(t)
	m := map[string]int{"b": 2, "a": 1, "c": 3}
	first, err := Marshal(m)
	is.NoErr(err)
	for i := 0; i < 10; i++ {
		b, err := Marshal(m)
		is.NoErr(err)
		is.True(bytes.Equal(first, b))
	}
}

func TestStrictDecode(t *testing.T) {
	is := is.New(t)
	b, err := Marshal(data{Text: "Hello, world!", Number: 7})
	is.NoErr(err)

	var dd differentData
	err = Unmarshal(b, &dd)
	is.True(err != nil) // unknown fields

	var s string
	err = Unmarshal([]byte("Hello, world!"), &s)
	is.True(err != nil) // not cbor

	trailing := append(append([]byte{}, b...), 0x01)
	var d data
	err = Unmarshal(trailing, &d)
	var extra *cbor.ExtraneousDataError
	is.True(errors.As(err, &extra))
}

func TestAnyMapKeys(t *testing.T) {
	is := is.New(t)
	for _, in := range []map[any]any{
		{"a": uint64(1)},
		{uint64(1): "a", uint64(2): "b"},
		{int64(-1): []byte{1}, "b": true},
	} {
		b, err := Marshal(in)
		is.NoErr(err)
		var v any
		is.NoErr(Unmarshal(b, &v))
		m, ok := v.(map[any]any)
		is.True(ok)
		is.Equal(m, in)
	}
}

func TestMissingFields(t *testing.T) {
	is := is.New(t)
	b, err := Marshal(map[string]uint64{"number1": 1})
	is.NoErr(err)
	var dd differentData
	is.NoErr(Unmarshal(b, &dd))
	is.Equal(dd, differentData{Number1: 1})
}

func TestFuncs(t *testing.T) {
	is := is.New(t)
	var marshaled, unmarshaled bool
	c := Funcs(
		func(v any) ([]byte, error) { marshaled = true; return []byte("x"), nil },
		func(b []byte, dst any) error { unmarshaled = true; return nil },
	)
	b, err := c.Marshal(1)
	is.NoErr(err)
	is.Equal(string(b), "x")
	is.NoErr(c.Unmarshal(b, nil))
	is.True(marshaled)
	is.True(unmarshaled)
}
